package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
)

func testCatalog() []model.CatalogEntry {
	return []model.CatalogEntry{
		{ItemCode: "05_1", ItemName: "Manual wheelchair - standard", Description: "Self propelled manual wheelchair"},
		{ItemCode: "05_2", ItemName: "Power wheelchair - scripted", Description: "Motorised wheelchair"},
		{ItemCode: "05_3", ItemName: "Pressure cushion - contoured", Description: "Seating support cushion"},
	}
}

func TestFuzzyMatchFindsSimilarEntry(t *testing.T) {
	idx := newCatalogIndex(testCatalog())

	cands := idx.match("Manual Wheelchairs", 80)
	require.NotEmpty(t, cands)
	assert.Equal(t, 0, cands[0].Index)
	assert.GreaterOrEqual(t, cands[0].Score, 80.0)
}

func TestFuzzyMatchRespectsThreshold(t *testing.T) {
	idx := newCatalogIndex(testCatalog())

	for _, threshold := range []int{60, 80, 95} {
		for _, c := range idx.match("Manual Wheelchairs", threshold) {
			assert.GreaterOrEqual(t, c.Score, float64(threshold))
		}
	}
}

func TestFuzzyMatchNoCandidates(t *testing.T) {
	idx := newCatalogIndex(testCatalog())

	assert.Nil(t, idx.match("Left-handed scissors", 80))
	assert.Nil(t, idx.match("", 60))
}

func TestFuzzyMatchLimitAndTieBreak(t *testing.T) {
	catalog := []model.CatalogEntry{
		{ItemCode: "a", ItemName: "Shower chair", Description: "Shower chair"},
		{ItemCode: "b", ItemName: "Shower chair", Description: "Shower chair"},
		{ItemCode: "c", ItemName: "Shower chair", Description: "Shower chair"},
		{ItemCode: "d", ItemName: "Shower chair", Description: "Shower chair"},
	}
	idx := newCatalogIndex(catalog)

	cands := idx.match("Shower chair shower chair", 60)
	require.Len(t, cands, 3)
	// equal scores keep catalog order
	assert.Equal(t, []int{0, 1, 2}, []int{cands[0].Index, cands[1].Index, cands[2].Index})
	for _, c := range cands {
		assert.InDelta(t, cands[0].Score, c.Score, 0.001)
	}
}

func TestFuzzyMatchEmptyCatalog(t *testing.T) {
	idx := newCatalogIndex(nil)
	assert.Nil(t, idx.match("anything", 60))
}
