package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hyaluronic Acid", "hyaluronic acid"},
		{"  Niacinamide  ", "niacinamide"},
		{"Crème   de LA Mer", "creme de la mer"},
		{"ALCOHOL\tDENAT.", "alcohol denat."},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestFoldList(t *testing.T) {
	t.Run("dedupes after folding and keeps order", func(t *testing.T) {
		got := FoldList([]string{"Glycerin", "water", " GLYCERIN ", "", "Water", "squalane"})
		assert.Equal(t, []string{"glycerin", "water", "squalane"}, got)
	})

	t.Run("nil input yields empty slice", func(t *testing.T) {
		got := FoldList(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "enlarged_pores", Key("Enlarged Pores"))
	assert.Equal(t, "enlarged_pores", Key("enlarged-pores"))
	assert.Equal(t, "acne", Key(" ACNE "))
}

func TestContainsEither(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"a contains b", "parfum/fragrance", "fragrance", true},
		{"b contains a", "vit c", "vit c serum", true},
		{"equal", "retinol", "retinol", true},
		{"unrelated", "glycerin", "retinol", false},
		{"empty a", "", "retinol", false},
		{"empty b", "retinol", "", false},
		// Substring matching is deliberately loose: "tea" sits inside "stearic acid".
		{"loose substring false positive", "stearic acid", "tea", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsEither(tt.a, tt.b))
		})
	}
}
