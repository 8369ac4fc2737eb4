package service

import (
	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
)

// fuzzyLimit caps how many approximate-match candidates are kept.
const fuzzyLimit = 3

// catalogIndex caches the normalized name+description text per catalog
// entry so a run normalizes the catalog once, not once per source row.
type catalogIndex struct {
	entries  []model.CatalogEntry
	normText []string
}

func newCatalogIndex(entries []model.CatalogEntry) *catalogIndex {
	idx := &catalogIndex{
		entries:  entries,
		normText: make([]string, len(entries)),
	}
	for i, e := range entries {
		idx.normText[i] = Normalize(e.ItemName + " " + e.Description)
	}
	return idx
}

// match scores the query against every catalog entry and returns up to
// three candidates at or above the threshold, best first (BEST_MATCH
// policy). Equal scores keep catalog order.
func (idx *catalogIndex) match(query string, threshold int) []model.Candidate {
	q := Normalize(query)
	if q == "" || len(idx.entries) == 0 {
		return nil
	}

	top := make([]model.Candidate, 0, fuzzyLimit)
	for i, text := range idx.normText {
		c := model.Candidate{Index: i, Score: blendedRatio(q, text), MatchedText: text}

		// insert keeping descending score; strict comparison preserves
		// first-occurrence order on ties
		pos := len(top)
		for j, t := range top {
			if c.Score > t.Score {
				pos = j
				break
			}
		}
		if pos == len(top) {
			if len(top) < fuzzyLimit {
				top = append(top, c)
			}
			continue
		}
		if len(top) < fuzzyLimit {
			top = append(top, model.Candidate{})
		}
		copy(top[pos+1:], top[pos:])
		top[pos] = c
	}

	out := top[:0]
	for _, c := range top {
		if c.Score >= float64(threshold) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
