package service

import (
	"regexp"
	"strings"
)

// Strip everything that is not a letter, digit, whitespace or hyphen.
var rePunct = regexp.MustCompile(`[^\p{L}\p{N}\s-]+`)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"a": {}, "an": {},
}

// Normalize lowercases, replaces punctuation with spaces (hyphens survive)
// and collapses whitespace. Total and idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = rePunct.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

// Keywords normalizes and splits the text, dropping stop words and tokens
// shorter than three characters. Order follows first occurrence.
func Keywords(s string) []string {
	fields := strings.Fields(Normalize(s))
	out := make([]string, 0, len(fields))
	for _, w := range fields {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len([]rune(w)) <= 2 {
			continue
		}
		out = append(out, w)
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
