package service

import (
	"sort"
	"strings"
)

// blendedRatio scores two normalized strings in [0,100]. It takes the best
// of whole-string similarity, token-sort similarity (word order does not
// matter) and a discounted partial similarity so that a short query phrase
// can still score well against a longer catalog description.
func blendedRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	best := similarity(a, b)
	if s := similarity(tokenSort(a), tokenSort(b)); s > best {
		best = s
	}
	if s := 0.9 * partialSimilarity(a, b); s > best {
		best = s
	}
	if best > 1 {
		best = 1
	}
	return best * 100
}

// similarity is normalized Damerau-Levenshtein similarity in [0,1].
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	d := damerauLevenshtein(a, b)
	m := len([]rune(a))
	if mb := len([]rune(b)); mb > m {
		m = mb
	}
	return 1 - float64(d)/float64(m)
}

// partialSimilarity aligns the shorter string against every token window of
// the same width in the longer one and keeps the best score. Substring
// containment counts as a perfect partial match.
func partialSimilarity(a, b string) float64 {
	short, long := a, b
	st, lt := strings.Fields(short), strings.Fields(long)
	if len(st) > len(lt) {
		short, long = long, short
		st, lt = lt, st
	}
	if len(st) == 0 {
		return 0
	}
	if strings.Contains(long, short) {
		return 1
	}
	best := 0.0
	for i := 0; i+len(st) <= len(lt); i++ {
		window := strings.Join(lt[i:i+len(st)], " ")
		if s := similarity(short, window); s > best {
			best = s
		}
	}
	return best
}

// tokenSort orders the tokens lexicographically, making the comparison
// stable under word reordering.
func tokenSort(s string) string {
	if s == "" {
		return s
	}
	t := strings.Fields(s)
	sort.Strings(t)
	return strings.Join(t, " ")
}

func damerauLevenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)

	dp := make([][]int, al+1)
	for i := 0; i <= al; i++ {
		dp[i] = make([]int, bl+1)
	}
	for i := 0; i <= al; i++ {
		dp[i][0] = i
	}
	for j := 0; j <= bl; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			dp[i][j] = min3(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)

			// transposition of adjacent runes
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if v := dp[i-2][j-2] + 1; v < dp[i][j] {
					dp[i][j] = v
				}
			}
		}
	}
	return dp[al][bl]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
