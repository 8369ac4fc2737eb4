package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDamerauLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"ab", "ba", 1}, // transposition
		{"wheelchair", "wheelchair", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, damerauLevenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestBlendedRatio(t *testing.T) {
	t.Run("identical strings score 100", func(t *testing.T) {
		assert.InDelta(t, 100, blendedRatio("manual wheelchair", "manual wheelchair"), 0.001)
	})

	t.Run("empty input scores 0", func(t *testing.T) {
		assert.Zero(t, blendedRatio("", "manual wheelchair"))
		assert.Zero(t, blendedRatio("manual wheelchair", ""))
	})

	t.Run("word order does not matter", func(t *testing.T) {
		assert.InDelta(t, 100, blendedRatio("wheelchair manual", "manual wheelchair"), 0.001)
	})

	t.Run("short query inside long text scores as partial", func(t *testing.T) {
		got := blendedRatio("manual wheelchair", "manual wheelchair - standard self propelled")
		assert.InDelta(t, 90, got, 0.001)
	})

	t.Run("unrelated text scores low", func(t *testing.T) {
		got := blendedRatio("left-handed scissors", "manual wheelchair - standard")
		assert.Less(t, got, 60.0)
	})

	t.Run("bounded to [0,100]", func(t *testing.T) {
		pairs := [][2]string{
			{"a", "b"}, {"abc def", "def abc"}, {"x", "xxxxxxxxxx"},
		}
		for _, p := range pairs {
			got := blendedRatio(p[0], p[1])
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		}
	})
}
