// Package report renders the crosswalk result as a styled Excel workbook
// with Introduction, Crosswalk Table and Pivot Summary sheets.
package report

import (
	"fmt"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
)

const (
	sheetIntro     = "Introduction"
	sheetCrosswalk = "Crosswalk Table"
	sheetSummary   = "Pivot Summary"

	headerFill  = "CCCCCC"
	highFill    = "C6EFCE"
	bestFitFill = "FFEB9C"
	reviewFill  = "FFC7CE"

	maxCrosswalkColWidth = 50
	maxSummaryColWidth   = 30
)

var crosswalkHeaders = []string{
	"EnableNSW_Category", "EnableNSW_Subcategory", "EnableNSW_Description",
	"NDIS_Support_Item_Number", "NDIS_Support_Item_Name", "NDIS_Category",
	"NDIS_Description", "NDIS_Unit_Price", "NDIS_Source_Table",
	"Mapping_Confidence", "Match_Score", "Matching_Method",
	"Keywords_Matched", "Repair_Maintenance_Code",
}

var summaryHeaders = []string{
	"EnableNSW_Category", "Total_Subcategories", "Mapped_Items",
	"Mapping_Rate", "NDIS_Categories", "High_Confidence", "Best_Fit",
	"Review_Required",
}

// Build renders the workbook. The caller owns the returned file and must
// Close it.
func Build(res *model.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), sheetIntro); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetCrosswalk); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, err
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeIntro(f, st, res.Meta); err != nil {
		return nil, err
	}
	if err := writeCrosswalk(f, st, res.Records); err != nil {
		return nil, err
	}
	if err := writeSummary(f, st, res.Summary); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

type styles struct {
	title   int
	heading int
	header  int
	high    int
	bestFit int
	review  int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}); err != nil {
		return st, err
	}
	if st.heading, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	}); err != nil {
		return st, err
	}
	tierFill := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
	}
	if st.high, err = tierFill(highFill); err != nil {
		return st, err
	}
	if st.bestFit, err = tierFill(bestFitFill); err != nil {
		return st, err
	}
	if st.review, err = tierFill(reviewFill); err != nil {
		return st, err
	}
	return st, nil
}

func writeIntro(f *excelize.File, st styles, meta model.Metadata) error {
	rate := "0.0%"
	if meta.TotalItems > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(meta.MappedItems)/float64(meta.TotalItems)*100)
	}

	if err := f.SetCellValue(sheetIntro, "A1", "EnableNSW to NDIS Crosswalk Analysis Report"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetIntro, "A1", "A1", st.title); err != nil {
		return err
	}

	pairs := [][2]any{
		{"Analysis Date:", meta.AnalysisDate},
		{"Total Items Analyzed:", meta.TotalItems},
		{"Successfully Mapped:", meta.MappedItems},
		{"Mapping Success Rate:", rate},
	}
	row := 3
	for _, p := range pairs {
		if err := f.SetSheetRow(sheetIntro, fmt.Sprintf("A%d", row), &[]any{p[0], p[1]}); err != nil {
			return err
		}
		row++
	}

	row += 2
	if err := f.SetCellValue(sheetIntro, fmt.Sprintf("A%d", row), "METHODOLOGY"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetIntro, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), st.heading); err != nil {
		return err
	}

	methodology := []string{
		"",
		"This crosswalk analysis uses a two-stage matching approach:",
		"",
		"1. RULE-BASED MATCHING",
		"   - Direct mappings for known equipment categories",
		"   - High confidence matches based on predefined rules",
		"   - Examples: manual wheelchair -> NDIS personal mobility codes",
		"",
		"2. FUZZY STRING MATCHING",
		"   - Approximate matching on item names and descriptions",
		fmt.Sprintf("   - Confidence threshold: %d%%", meta.ConfidenceThreshold),
		"   - Best-fit matches for similar descriptions",
		"",
		"CONFIDENCE LEVELS:",
		"",
		"- " + string(model.TierHigh),
		"  Exact or rule-based matches, match score >= 90%",
		"",
		"- " + string(model.TierBestFit),
		"  Good fuzzy matches, match score 75-89%",
		"",
		"- " + string(model.TierReview),
		"  Low confidence or no matches found",
		"",
		"LIMITATIONS:",
		"",
		"- Automated matching may miss contextual nuances",
		"- Manual review recommended for 'Review required' items",
		"- NDIS pricing and availability subject to change",
	}
	for _, line := range methodology {
		row++
		if err := f.SetCellValue(sheetIntro, fmt.Sprintf("A%d", row), line); err != nil {
			return err
		}
	}
	return nil
}

func writeCrosswalk(f *excelize.File, st styles, records []model.MappingRecord) error {
	if err := f.SetCellValue(sheetCrosswalk, "A1", "EnableNSW to NDIS Crosswalk Mapping"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetCrosswalk, "A1", "A1", st.heading); err != nil {
		return err
	}

	if err := writeHeaderRow(f, st, sheetCrosswalk, 3, crosswalkHeaders); err != nil {
		return err
	}

	confidenceCol, _ := excelize.ColumnNumberToName(10) // Mapping_Confidence
	for i, r := range records {
		row := i + 4
		var price any
		if r.NDISUnitPrice != nil {
			price = *r.NDISUnitPrice
		}
		cells := []any{
			r.EnableNSWCategory, r.EnableNSWSubcategory, r.EnableNSWDescription,
			r.NDISItemCode, r.NDISItemName, r.NDISCategory,
			r.NDISDescription, price, r.NDISSourceTable,
			string(r.Confidence), r.MatchScore, string(r.Method),
			strings.Join(r.KeywordsMatched, ", "), r.RepairCode,
		}
		if err := f.SetSheetRow(sheetCrosswalk, fmt.Sprintf("A%d", row), &cells); err != nil {
			return err
		}

		var tierStyle int
		switch r.Confidence {
		case model.TierHigh:
			tierStyle = st.high
		case model.TierBestFit:
			tierStyle = st.bestFit
		default:
			tierStyle = st.review
		}
		cell := fmt.Sprintf("%s%d", confidenceCol, row)
		if err := f.SetCellStyle(sheetCrosswalk, cell, cell, tierStyle); err != nil {
			return err
		}
	}

	widths := columnWidths(crosswalkHeaders, len(records), func(i, c int) string {
		r := records[i]
		switch c {
		case 0:
			return r.EnableNSWCategory
		case 1:
			return r.EnableNSWSubcategory
		case 2:
			return r.EnableNSWDescription
		case 3:
			return r.NDISItemCode
		case 4:
			return r.NDISItemName
		case 5:
			return r.NDISCategory
		case 6:
			return r.NDISDescription
		case 8:
			return r.NDISSourceTable
		case 9:
			return string(r.Confidence)
		case 12:
			return strings.Join(r.KeywordsMatched, ", ")
		case 13:
			return r.RepairCode
		default:
			return ""
		}
	}, maxCrosswalkColWidth)
	return applyWidths(f, sheetCrosswalk, widths)
}

func writeSummary(f *excelize.File, st styles, summary []model.CategorySummary) error {
	if err := f.SetCellValue(sheetSummary, "A1", "EnableNSW to NDIS Mapping Summary"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "A1", st.heading); err != nil {
		return err
	}

	if err := writeHeaderRow(f, st, sheetSummary, 3, summaryHeaders); err != nil {
		return err
	}

	for i, s := range summary {
		cells := []any{
			s.Category, s.Total, s.Mapped, s.MappingRate,
			s.NDISCategories, s.HighConfidence, s.BestFit, s.ReviewRequired,
		}
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", i+4), &cells); err != nil {
			return err
		}
	}

	widths := columnWidths(summaryHeaders, len(summary), func(i, c int) string {
		s := summary[i]
		switch c {
		case 0:
			return s.Category
		case 3:
			return s.MappingRate
		case 4:
			return s.NDISCategories
		default:
			return ""
		}
	}, maxSummaryColWidth)
	return applyWidths(f, sheetSummary, widths)
}

func writeHeaderRow(f *excelize.File, st styles, sheet string, row int, headers []string) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", last, row), st.header)
}

// columnWidths sizes each column to its longest value plus padding, capped.
func columnWidths(headers []string, rows int, value func(row, col int) string, maxWidth float64) []float64 {
	widths := make([]float64, len(headers))
	for c, h := range headers {
		widths[c] = float64(len(h))
	}
	for i := 0; i < rows; i++ {
		for c := range headers {
			if l := float64(len(value(i, c))); l > widths[c] {
				widths[c] = l
			}
		}
	}
	for c := range widths {
		widths[c] += 2
		if widths[c] > maxWidth {
			widths[c] = maxWidth
		}
	}
	return widths
}

func applyWidths(f *excelize.File, sheet string, widths []float64) error {
	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
