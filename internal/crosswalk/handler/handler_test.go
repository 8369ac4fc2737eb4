package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stu2454/enableNSWmapping/internal/config"
	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
)

const enableCSV = "Category,Subcategory,Description\n" +
	"Personal Mobility,Manual Wheelchairs,Standard manual wheelchairs\n" +
	"Stationery,Left-handed scissors,\n"

const ndisCSV = "Support_Item_Number,Support_Item_Name,Category,Unit_Price\n" +
	"05_221336811_0113_1_2,Manual wheelchair - standard,Personal Mobility,1500.00\n" +
	"15_046239234_0105_1_1,Wheelchair repair - labour,Personal Mobility,100.00\n"

func testConfig() config.Config {
	return config.Config{
		MaxUploadMB:         16,
		ConfidenceThreshold: 80,
		IncludeRepairCodes:  true,
	}
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestCrosswalkHandler(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string]string{"enable_file": enableCSV, "ndis_file": ndisCSV},
		nil,
	)

	req := httptest.NewRequest(http.MethodPost, "/crosswalk", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	Crosswalk(testConfig(), zerolog.Nop())(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Len(t, res.Records, 2)
	assert.Equal(t, 2, res.Meta.TotalItems)
	assert.Equal(t, 1, res.Meta.MappedItems)
	assert.Equal(t, 80, res.Meta.ConfidenceThreshold)

	mapped := res.Records[0]
	assert.Equal(t, "05_221336811_0113_1_2", mapped.NDISItemCode)
	assert.Equal(t, model.TierHigh, mapped.Confidence)
	assert.Equal(t, model.MethodRule, mapped.Method)
	require.NotNil(t, mapped.NDISUnitPrice)
	assert.InDelta(t, 1500.0, *mapped.NDISUnitPrice, 0.001)
	assert.Equal(t, "15_046239234_0105_1_1", mapped.RepairCode)

	unmapped := res.Records[1]
	assert.Empty(t, unmapped.NDISItemCode)
	assert.Equal(t, model.TierReview, unmapped.Confidence)

	require.Len(t, res.Summary, 2)
	assert.Equal(t, "Personal Mobility", res.Summary[0].Category)
	assert.Equal(t, "100.0%", res.Summary[0].MappingRate)
}

func TestCrosswalkHandlerThresholdOverride(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string]string{"enable_file": enableCSV, "ndis_file": ndisCSV},
		map[string]string{"confidence_threshold": "200", "include_repair_codes": "false"},
	)

	req := httptest.NewRequest(http.MethodPost, "/crosswalk", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	Crosswalk(testConfig(), zerolog.Nop())(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 95, res.Meta.ConfidenceThreshold) // clamped
	assert.Empty(t, res.Records[0].RepairCode)
}

func TestCrosswalkHandlerMissingFile(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string]string{"enable_file": enableCSV},
		nil,
	)

	req := httptest.NewRequest(http.MethodPost, "/crosswalk", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	Crosswalk(testConfig(), zerolog.Nop())(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ndis_file")
}

func TestCrosswalkHandlerSchemaError(t *testing.T) {
	badNDIS := "X,Y\na,b\nc,d\n"
	body, contentType := multipartBody(t,
		map[string]string{"enable_file": enableCSV, "ndis_file": badNDIS},
		nil,
	)

	req := httptest.NewRequest(http.MethodPost, "/crosswalk", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	Crosswalk(testConfig(), zerolog.Nop())(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Support_Item_Number")
}

func TestCrosswalkReportHandler(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string]string{"enable_file": enableCSV, "ndis_file": ndisCSV},
		nil,
	)

	req := httptest.NewRequest(http.MethodPost, "/crosswalk/report", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	CrosswalkReport(testConfig(), zerolog.Nop())(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, rec.Body.Len())
}

func TestSourceEntriesMissingColumns(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string]string{"enable_file": "Foo,Bar\n1,2\n", "ndis_file": ndisCSV},
		nil,
	)

	req := httptest.NewRequest(http.MethodPost, "/crosswalk", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	Crosswalk(testConfig(), zerolog.Nop())(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Subcategory")
}
