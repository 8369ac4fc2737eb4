package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
	"github.com/stu2454/enableNSWmapping/internal/utils"
)

// Canonical catalog column roles.
const (
	roleItemCode    = "Support_Item_Number"
	roleItemName    = "Support_Item_Name"
	roleCategory    = "Category"
	roleDescription = "Description"
	roleUnitPrice   = "Unit_Price"

	sourceTableCol = "Source_Table"
	nullMarker     = "nan"
)

// Header aliases per role, tried in this order. A header claimed by an
// earlier role is not offered to later ones.
var roleAliases = []struct {
	role    string
	aliases []string
}{
	{roleItemCode, []string{
		"Support_Item_Number", "Support Item Number", "Item Number",
		"Code", "Support Code", "NDIS Code", "Item Code", "Number",
	}},
	{roleItemName, []string{
		"Support_Item_Name", "Support Item Name", "Item Name",
		"Description", "Support Item", "Item Description", "Name",
	}},
	{roleCategory, []string{
		"Category", "AT Category", "Support Category", "Type", "Group",
	}},
	{roleDescription, []string{
		"Description", "Details", "Item Description", "Full Description",
	}},
	{roleUnitPrice, []string{
		"Unit_Price", "Unit Price", "Price", "Cost", "Amount",
	}},
}

var (
	reCodeUnderscore = regexp.MustCompile(`^\d+_\d+`)
	reCodeDigits     = regexp.MustCompile(`^\d{2,}`)
)

// SchemaError reports catalog column roles that could not be resolved from
// the headers, even after content-based fallback.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("could not identify required catalog columns: %s",
		strings.Join(e.Missing, ", "))
}

// BuildCatalog resolves column roles in an arbitrary tabular NDIS dataset
// and returns cleaned catalog entries. Rows missing the item code or item
// name are dropped; absent optional fields are defaulted. Fails with a
// SchemaError when the code or name column cannot be identified.
func BuildCatalog(headers []string, rows []map[string]string) ([]model.CatalogEntry, error) {
	resolved := resolveRoles(headers, rows)

	var missing []string
	for _, required := range []string{roleItemCode, roleItemName} {
		if resolved[required] == "" {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	sourceCol := ""
	for _, h := range headers {
		if strings.TrimSpace(h) == sourceTableCol {
			sourceCol = h
			break
		}
	}

	entries := make([]model.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		code := strings.TrimSpace(row[resolved[roleItemCode]])
		name := strings.TrimSpace(row[resolved[roleItemName]])
		if isBlank(code) || isBlank(name) {
			continue
		}

		e := model.CatalogEntry{
			ItemCode:    code,
			ItemName:    name,
			Category:    "Unknown",
			Description: name,
			SourceLabel: "Unknown",
		}
		if col := resolved[roleCategory]; col != "" {
			if v := strings.TrimSpace(row[col]); !isBlank(v) {
				e.Category = v
			}
		}
		if col := resolved[roleDescription]; col != "" {
			if v := strings.TrimSpace(row[col]); !isBlank(v) {
				e.Description = v
			}
		}
		if col := resolved[roleUnitPrice]; col != "" {
			if p, ok := utils.ParsePrice(row[col]); ok {
				e.UnitPrice = p
			}
		}
		if sourceCol != "" {
			if v := strings.TrimSpace(row[sourceCol]); v != "" {
				e.SourceLabel = v
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// resolveRoles maps canonical roles to actual headers: alias lookup first,
// then content heuristics for the required roles still unresolved.
func resolveRoles(headers []string, rows []map[string]string) map[string]string {
	resolved := make(map[string]string, len(roleAliases))
	claimed := make(map[string]bool, len(headers))

	for _, spec := range roleAliases {
		for _, h := range headers {
			if claimed[h] {
				continue
			}
			if matchesAlias(h, spec.aliases) {
				resolved[spec.role] = h
				claimed[h] = true
				break
			}
		}
	}

	if resolved[roleItemCode] == "" {
		if h := findCodeColumn(headers, rows, claimed); h != "" {
			resolved[roleItemCode] = h
			claimed[h] = true
		}
	}
	if resolved[roleItemName] == "" {
		if h := findNameColumn(headers, rows, claimed); h != "" {
			resolved[roleItemName] = h
			claimed[h] = true
		}
	}
	return resolved
}

func matchesAlias(header string, aliases []string) bool {
	h := strings.TrimSpace(header)
	for _, a := range aliases {
		if strings.EqualFold(h, a) {
			return true
		}
	}
	return false
}

// findCodeColumn picks the first unclaimed column where more than half of
// the first ten non-blank values look like support item codes.
func findCodeColumn(headers []string, rows []map[string]string, claimed map[string]bool) string {
	for _, h := range headers {
		if claimed[h] {
			continue
		}
		sample := sampleValues(rows, h, 10)
		if len(sample) == 0 {
			continue
		}
		hits := 0
		for _, v := range sample {
			if reCodeUnderscore.MatchString(v) || reCodeDigits.MatchString(v) {
				hits++
			}
		}
		if hits*2 > len(sample) {
			return h
		}
	}
	return ""
}

// findNameColumn picks the first unclaimed column whose sampled values
// average more than ten characters. Descriptive text runs long.
func findNameColumn(headers []string, rows []map[string]string, claimed map[string]bool) string {
	for _, h := range headers {
		if claimed[h] {
			continue
		}
		sample := sampleValues(rows, h, 10)
		if len(sample) == 0 {
			continue
		}
		total := 0
		for _, v := range sample {
			total += len(v)
		}
		if float64(total)/float64(len(sample)) > 10 {
			return h
		}
	}
	return ""
}

func sampleValues(rows []map[string]string, header string, n int) []string {
	out := make([]string, 0, n)
	for _, row := range rows {
		v := strings.TrimSpace(row[header])
		if v == "" {
			continue
		}
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}

func isBlank(v string) bool {
	return v == "" || strings.EqualFold(v, nullMarker)
}
