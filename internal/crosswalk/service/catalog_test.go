package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalogAliasResolution(t *testing.T) {
	headers := []string{"NDIS Code", "Item Name", "AT Category", "Unit Price"}
	rows := []map[string]string{
		{
			"NDIS Code":   "05_221336811_0113_1_2",
			"Item Name":   "Manual wheelchair - standard",
			"AT Category": "Personal Mobility",
			"Unit Price":  "$1,500.00",
		},
	}

	entries, err := BuildCatalog(headers, rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "05_221336811_0113_1_2", e.ItemCode)
	assert.Equal(t, "Manual wheelchair - standard", e.ItemName)
	assert.Equal(t, "Personal Mobility", e.Category)
	assert.Equal(t, "Manual wheelchair - standard", e.Description) // defaults to name
	assert.InDelta(t, 1500.0, e.UnitPrice, 0.001)
	assert.Equal(t, "Unknown", e.SourceLabel)
}

func TestBuildCatalogContentFallback(t *testing.T) {
	headers := []string{"A", "B"}
	rows := []map[string]string{
		{"A": "05_221336811_0113_1_2", "B": "Manual wheelchair - standard"},
		{"A": "03_040000919_0103_1_1", "B": "Power wheelchair - scripted"},
		{"A": "05_501234_0113", "B": "Mobility scooter - portable"},
	}

	entries, err := BuildCatalog(headers, rows)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "05_221336811_0113_1_2", entries[0].ItemCode)
	assert.Equal(t, "Manual wheelchair - standard", entries[0].ItemName)
	assert.Equal(t, "Unknown", entries[0].Category)
}

func TestBuildCatalogSchemaError(t *testing.T) {
	headers := []string{"X", "Y"}
	rows := []map[string]string{
		{"X": "a", "Y": "b"},
		{"X": "c", "Y": "d"},
	}

	_, err := BuildCatalog(headers, rows)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Missing, "Support_Item_Number")
	assert.Contains(t, schemaErr.Missing, "Support_Item_Name")
	assert.Contains(t, err.Error(), "Support_Item_Number")
}

func TestBuildCatalogRowCleaning(t *testing.T) {
	headers := []string{"Code", "Name"}
	rows := []map[string]string{
		{"Code": "05_123456_0113", "Name": "Shower chair - wheeled"},
		{"Code": "", "Name": "orphan name"},
		{"Code": "05_777", "Name": "  "},
		{"Code": "nan", "Name": "null-marker code"},
		{"Code": "05_888", "Name": "nan"},
		{"Code": "  05_999  ", "Name": "  Commode seat  "},
	}

	entries, err := BuildCatalog(headers, rows)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "05_123456_0113", entries[0].ItemCode)
	assert.Equal(t, "05_999", entries[1].ItemCode)
	assert.Equal(t, "Commode seat", entries[1].ItemName)
}

func TestBuildCatalogSourceTablePreserved(t *testing.T) {
	headers := []string{"Code", "Name", "Source_Table"}
	rows := []map[string]string{
		{"Code": "05_1", "Name": "Manual wheelchair", "Source_Table": "Assistive Technology"},
		{"Code": "05_2", "Name": "Power wheelchair", "Source_Table": ""},
	}

	entries, err := BuildCatalog(headers, rows)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Assistive Technology", entries[0].SourceLabel)
	assert.Equal(t, "Unknown", entries[1].SourceLabel)
}

func TestBuildCatalogPriceDefaults(t *testing.T) {
	headers := []string{"Code", "Name", "Price"}
	rows := []map[string]string{
		{"Code": "05_1", "Name": "Manual wheelchair", "Price": "not a price"},
		{"Code": "05_2", "Name": "Power wheelchair", "Price": "2,345.67"},
	}

	entries, err := BuildCatalog(headers, rows)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Zero(t, entries[0].UnitPrice)
	assert.InDelta(t, 2345.67, entries[1].UnitPrice, 0.001)
}
