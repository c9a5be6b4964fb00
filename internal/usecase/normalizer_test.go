package usecase

import (
	"testing"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/infrastructure/reference"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeProduct(t *testing.T) {
	tables := reference.MustDefault()

	got := NormalizeProduct(domain.ProductRecord{
		Name:        "  Crème   de la MER ",
		Brand:       "La Mer",
		Ingredients: []string{"Aqua", " aqua ", "", "Glycérine", "Niacinamide"},
		Shade:       "Warm Honey",
		Category:    "Foundation",
		SkinTypes:   []string{"Oily Skin", "oily", "All Skin Types", "acne prone"},
	}, tables)

	assert.Equal(t, "creme de la mer", got.Name)
	assert.Equal(t, "la mer", got.Brand)
	assert.Equal(t, []string{"aqua", "glycerine", "niacinamide"}, got.Ingredients)
	assert.Equal(t, "warm honey", got.Shade)
	assert.Equal(t, "foundation", got.Category)
	assert.Equal(t, []string{"oily", "all skin types", "acne-prone"}, got.SkinTypes)
}

func TestNormalizeProduct_EmptyListsAreNotNil(t *testing.T) {
	got := NormalizeProduct(domain.ProductRecord{}, reference.MustDefault())
	assert.NotNil(t, got.Ingredients)
	assert.NotNil(t, got.SkinTypes)
	assert.Empty(t, got.Ingredients)
}

func TestNormalizeProfile(t *testing.T) {
	tables := reference.MustDefault()

	tests := []struct {
		name         string
		profile      domain.SkinProfile
		wantSkinType string
		wantConcerns []string
	}{
		{
			name:         "alias resolution",
			profile:      domain.SkinProfile{SkinType: "Combination Skin"},
			wantSkinType: "combination",
			wantConcerns: []string{},
		},
		{
			name:         "unknown skin type passes through",
			profile:      domain.SkinProfile{SkinType: "Reptilian"},
			wantSkinType: "reptilian",
			wantConcerns: []string{},
		},
		{
			name: "concern keys",
			profile: domain.SkinProfile{
				SkinType:     "dry",
				SkinConcerns: []string{"Enlarged Pores", "enlarged-pores", "Acne", " ", "dark spots"},
			},
			wantSkinType: "dry",
			wantConcerns: []string{"enlarged_pores", "acne", "dark_spots"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeProfile(tt.profile, tables)
			assert.Equal(t, tt.wantSkinType, got.SkinType)
			assert.Equal(t, tt.wantConcerns, got.SkinConcerns)
			assert.NotNil(t, got.Allergies)
			assert.NotNil(t, got.DislikedBrands)
			assert.NotNil(t, got.PreferredBrands)
		})
	}
}

func TestNormalizeProfile_FoldsLists(t *testing.T) {
	got := NormalizeProfile(domain.SkinProfile{
		SkinTone:        "Fair Porcelain",
		Allergies:       []string{"Fragrance", "FRAGRANCE", "Nuts"},
		PreferredBrands: []string{"L'Oréal"},
		PreferredFinish: "Matte",
	}, reference.MustDefault())

	assert.Equal(t, "fair porcelain", got.SkinTone)
	assert.Equal(t, []string{"fragrance", "nuts"}, got.Allergies)
	assert.Equal(t, []string{"l'oreal"}, got.PreferredBrands)
	assert.Equal(t, "matte", got.PreferredFinish)
}

func TestFirstN(t *testing.T) {
	assert.Equal(t, "a, b", firstN([]string{"a", "b", "c"}, 2))
	assert.Equal(t, "a", firstN([]string{"a"}, 3))
	assert.Equal(t, "", firstN(nil, 3))
}

func TestMessages(t *testing.T) {
	var m messages
	assert.Equal(t, []string{}, m.list())

	m.add("one", "", "two", "one")
	m.add("two", "three")
	assert.Equal(t, []string{"one", "two", "three"}, m.list())
}
