package usecase

import (
	"fmt"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/textnorm"
)

// AllergyCheck is the outcome of the safety gate
type AllergyCheck struct {
	Matched  bool
	Warnings []string
}

// CheckAllergies flags every ingredient that contains a declared allergy, or is
// contained in one. Inputs must already be normalized.
func CheckAllergies(ingredients, allergies []string) AllergyCheck {
	var warnings messages
	matched := false

	for _, allergy := range allergies {
		for _, ingredient := range ingredients {
			if textnorm.ContainsEither(ingredient, allergy) {
				matched = true
				warnings.add(fmt.Sprintf("Contains %s (allergen: %s)", ingredient, allergy))
			}
		}
	}

	return AllergyCheck{Matched: matched, Warnings: warnings.list()}
}

// BrandCheck is the outcome of the preference gate
type BrandCheck struct {
	Disliked  bool
	Preferred bool
	Score     int
	Reasons   []string
	Warnings  []string
}

// brand sub-scores
const (
	brandScorePreferred = 100
	brandScoreNeutral   = 50
	brandScoreDisliked  = 0
)

// CheckBrandPreference vetoes disliked brands and rewards preferred ones.
// Brands compare by equality after normalization; an empty brand never matches.
func CheckBrandPreference(brand string, profile domain.SkinProfile) BrandCheck {
	if brand == "" {
		return BrandCheck{Score: brandScoreNeutral, Reasons: []string{}, Warnings: []string{}}
	}

	if contains(profile.DislikedBrands, brand) {
		return BrandCheck{
			Disliked: true,
			Score:    brandScoreDisliked,
			Reasons:  []string{},
			Warnings: []string{fmt.Sprintf("%q is in your disliked brands list", brand)},
		}
	}

	if contains(profile.PreferredBrands, brand) {
		return BrandCheck{
			Preferred: true,
			Score:     brandScorePreferred,
			Reasons:   []string{fmt.Sprintf("%q is one of your preferred brands", brand)},
			Warnings:  []string{},
		}
	}

	return BrandCheck{Score: brandScoreNeutral, Reasons: []string{}, Warnings: []string{}}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
