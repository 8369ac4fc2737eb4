package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d.\-]`)

// ParsePrice parses money-like strings ("$1,234.50", "1 500", "AU$ 99.95")
// into a float, tolerating currency symbols, thousands separators and
// non-breaking spaces. Returns false when nothing numeric remains.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	repl := strings.NewReplacer(" ", "", " ", "", " ", "", "\t", "", ",", "")
	s = repl.Replace(s)
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
