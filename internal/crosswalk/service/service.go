package service

import (
	"time"

	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
)

// Tunable bounds for the fuzzy acceptance threshold.
const (
	MinThreshold     = 60
	MaxThreshold     = 95
	DefaultThreshold = 80
)

// Order in which repair patterns are tried. Pattern order, not proximity to
// the matched item, is the tie-break.
var repairPatterns = []string{"repair", "maintenance", "service"}

// ClampThreshold forces a threshold into the supported range.
func ClampThreshold(t int) int {
	if t < MinThreshold {
		return MinThreshold
	}
	if t > MaxThreshold {
		return MaxThreshold
	}
	return t
}

// Run performs the crosswalk: for each source entry the rule stage is tried
// first, then the approximate matcher over the whole catalog. Exactly one
// mapping record is produced per entry, in input order. The catalog is
// read-only throughout.
func Run(entries []model.SourceEntry, catalog []model.CatalogEntry, rules []model.Rule, opts model.Options) model.Result {
	opts.Threshold = ClampThreshold(opts.Threshold)
	idx := newCatalogIndex(catalog)

	records := make([]model.MappingRecord, 0, len(entries))
	for _, e := range entries {
		rec := model.MappingRecord{
			EnableNSWCategory:    e.Category,
			EnableNSWSubcategory: e.Subcategory,
			EnableNSWDescription: e.Description,
			Confidence:           model.TierReview,
			Method:               model.MethodNone,
		}

		if rm := matchRules(rules, e.Subcategory, e.Description); rm != nil {
			if i, ok := bindRuleMatch(catalog, rm); ok {
				fillMatch(&rec, catalog[i])
				rec.Confidence = rm.Tier
				rec.MatchScore = rm.Score
				rec.Method = model.MethodRule
				rec.KeywordsMatched = rm.KeywordsMatched
			}
		}

		// No rule fired, or the rule's category filter found nothing:
		// fall through to approximate matching over the full catalog.
		if !rec.Mapped() {
			if cands := idx.match(e.Subcategory+" "+e.Description, opts.Threshold); len(cands) > 0 {
				best := cands[0]
				fillMatch(&rec, catalog[best.Index])
				rec.Confidence = classify(best.Score, false)
				rec.MatchScore = best.Score
				rec.Method = model.MethodFuzzy
				rec.KeywordsMatched = firstN(Keywords(e.Subcategory), 3)
			}
		}

		if rec.Mapped() && opts.IncludeRepairCodes {
			rec.RepairCode = findRepairCode(catalog)
		}

		records = append(records, rec)
	}

	mapped := 0
	for _, r := range records {
		if r.Mapped() {
			mapped++
		}
	}

	return model.Result{
		Records: records,
		Summary: Summarize(records),
		Meta: model.Metadata{
			TotalItems:          len(records),
			MappedItems:         mapped,
			AnalysisDate:        time.Now().Format("2006-01-02 15:04:05"),
			ConfidenceThreshold: opts.Threshold,
		},
		Opts: opts,
	}
}

// bindRuleMatch selects the first catalog row (catalog order, FIRST_MATCH
// policy) whose category contains the rule's target category or whose item
// name contains any matched keyword.
func bindRuleMatch(catalog []model.CatalogEntry, rm *model.RuleMatch) (int, bool) {
	for i, e := range catalog {
		if containsFold(e.Category, rm.TargetCategory) {
			return i, true
		}
		for _, kw := range rm.KeywordsMatched {
			if containsFold(e.ItemName, kw) {
				return i, true
			}
		}
	}
	return 0, false
}

func fillMatch(rec *model.MappingRecord, e model.CatalogEntry) {
	price := e.UnitPrice
	rec.NDISItemCode = e.ItemCode
	rec.NDISItemName = e.ItemName
	rec.NDISCategory = e.Category
	rec.NDISDescription = e.Description
	rec.NDISUnitPrice = &price
	rec.NDISSourceTable = e.SourceLabel
}

// findRepairCode returns the code of the first catalog row whose name
// contains the first repair pattern that has any match at all. The lookup
// is global over the catalog, not scoped to the matched item.
func findRepairCode(catalog []model.CatalogEntry) string {
	for _, pattern := range repairPatterns {
		for _, e := range catalog {
			if containsFold(e.ItemName, pattern) {
				return e.ItemCode
			}
		}
	}
	return ""
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
