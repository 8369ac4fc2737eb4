package service

import (
	"fmt"
	"strings"

	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
)

// Summarize rolls the mapping records up per source category, in first
// occurrence order. It is a pure recomputation over the full record set.
func Summarize(records []model.MappingRecord) []model.CategorySummary {
	order := make([]string, 0)
	byCategory := make(map[string][]model.MappingRecord)
	for _, r := range records {
		if _, seen := byCategory[r.EnableNSWCategory]; !seen {
			order = append(order, r.EnableNSWCategory)
		}
		byCategory[r.EnableNSWCategory] = append(byCategory[r.EnableNSWCategory], r)
	}

	out := make([]model.CategorySummary, 0, len(order))
	for _, cat := range order {
		group := byCategory[cat]
		s := model.CategorySummary{
			Category: cat,
			Total:    len(group),
		}

		var ndisCats []string
		seenCat := make(map[string]struct{})
		for _, r := range group {
			if r.Mapped() {
				s.Mapped++
			}
			if r.NDISCategory != "" {
				if _, ok := seenCat[r.NDISCategory]; !ok {
					seenCat[r.NDISCategory] = struct{}{}
					ndisCats = append(ndisCats, r.NDISCategory)
				}
			}
			switch r.Confidence {
			case model.TierHigh:
				s.HighConfidence++
			case model.TierBestFit:
				s.BestFit++
			case model.TierReview:
				s.ReviewRequired++
			}
		}

		s.MappingRate = fmt.Sprintf("%.1f%%", float64(s.Mapped)/float64(s.Total)*100)
		if len(ndisCats) > 0 {
			s.NDISCategories = strings.Join(ndisCats, ", ")
		} else {
			s.NDISCategories = "None"
		}
		out = append(out, s)
	}
	return out
}
