package handler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
	"github.com/stu2454/enableNSWmapping/internal/fileio"
)

var (
	categoryAliases    = []string{"Category", "EnableNSW_Category", "AT Category", "Equipment Category"}
	subcategoryAliases = []string{"Subcategory", "Sub Category", "Sub-Category", "EnableNSW_Subcategory"}
	descriptionAliases = []string{"Description", "EnableNSW_Description", "Details"}
)

// sourceEntries extracts category/subcategory/description rows from the
// EnableNSW table. Category and Subcategory columns are required; rows with
// both blank are dropped.
func sourceEntries(t *fileio.Table) ([]model.SourceEntry, error) {
	catCol := resolveColumn(t.Headers, categoryAliases)
	subCol := resolveColumn(t.Headers, subcategoryAliases)
	descCol := resolveColumn(t.Headers, descriptionAliases)

	var missing []string
	if catCol == "" {
		missing = append(missing, "Category")
	}
	if subCol == "" {
		missing = append(missing, "Subcategory")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("EnableNSW data missing required columns: %s", strings.Join(missing, ", "))
	}

	entries := make([]model.SourceEntry, 0, len(t.Rows))
	for _, row := range t.Rows {
		e := model.SourceEntry{
			Category:    strings.TrimSpace(row[catCol]),
			Subcategory: strings.TrimSpace(row[subCol]),
		}
		if descCol != "" {
			e.Description = strings.TrimSpace(row[descCol])
		}
		if e.Category == "" && e.Subcategory == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

var reHeaderKey = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey folds a column name for comparison: lowercase, punctuation
// and runs of separators collapsed to single spaces.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ").Replace(s)
	s = reHeaderKey.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveColumn finds the actual header matching any alias, preferring
// exact matches over normalized ones.
func resolveColumn(headers []string, aliases []string) string {
	for _, a := range aliases {
		for _, h := range headers {
			if strings.TrimSpace(h) == a {
				return h
			}
		}
	}
	for _, a := range aliases {
		na := normHeaderKey(a)
		for _, h := range headers {
			if normHeaderKey(h) == na {
				return h
			}
		}
	}
	return ""
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
