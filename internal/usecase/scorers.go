package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/textnorm"
)

// Skin type sub-scores, ordered by specificity
const (
	skinTypeExact     = 100
	skinTypeUniversal = 85
	skinTypePartial   = 70
	skinTypeMissing   = 50
	skinTypeMismatch  = 30
)

const neutralScore = 50

// universalSkinType marks products that claim to suit everyone ("all skin types")
const universalSkinType = "all skin"

// dimension is the common output of every scorer
type dimension struct {
	Score    int
	HasData  bool // false when the score is the neutral fallback for missing data
	Reasons  []string
	Warnings []string
}

// scoreSkinType compares the product's declared skin types with the profile's
func scoreSkinType(product domain.ProductRecord, profile domain.SkinProfile) dimension {
	if len(product.SkinTypes) == 0 {
		return dimension{
			Score:    skinTypeMissing,
			Warnings: []string{"No skin type information available for this product"},
		}
	}
	if profile.SkinType == "" {
		return dimension{
			Score:    skinTypeMissing,
			Warnings: []string{"Add your skin type to your profile for a skin type comparison"},
		}
	}

	if contains(product.SkinTypes, profile.SkinType) {
		return dimension{
			Score:   skinTypeExact,
			HasData: true,
			Reasons: []string{fmt.Sprintf("Perfect match for %s skin", profile.SkinType)},
		}
	}

	for _, st := range product.SkinTypes {
		if strings.Contains(st, universalSkinType) {
			return dimension{
				Score:   skinTypeUniversal,
				HasData: true,
				Reasons: []string{fmt.Sprintf("Suitable for all skin types, including %s", profile.SkinType)},
			}
		}
	}

	var partial []string
	for _, st := range product.SkinTypes {
		if textnorm.ContainsEither(st, profile.SkinType) {
			partial = append(partial, st)
		}
	}
	if len(partial) > 0 {
		return dimension{
			Score:   skinTypePartial,
			HasData: true,
			Reasons: []string{fmt.Sprintf("Partial compatibility: %s", strings.Join(partial, ", "))},
		}
	}

	return dimension{
		Score:   skinTypeMismatch,
		HasData: true,
		Warnings: []string{fmt.Sprintf("Formulated for %s, you have %s skin",
			strings.Join(product.SkinTypes, ", "), profile.SkinType)},
	}
}

// ingredientAnalysis is the ingredient scorer output
type ingredientAnalysis struct {
	dimension
	Beneficial  []string
	Problematic []string
	Neutral     []string
}

// scoreIngredients classifies each ingredient against the tables for the
// profile's skin type, then against the universal problematic list.
//
// The sub-score is 50 + total/matches. Every beneficial match is valued at the
// strongest beneficial weight found in the product, so adding a beneficial
// ingredient can never pull the average down.
func scoreIngredients(ingredients []string, skinType string, tables *domain.ReferenceTables) ingredientAnalysis {
	var reasons, warnings messages
	out := ingredientAnalysis{
		Beneficial:  []string{},
		Problematic: []string{},
		Neutral:     []string{},
	}

	beneficial := tables.BeneficialFor(skinType)
	problematic := tables.ProblematicFor(skinType)

	var unclassified []string
	strongest, problemTotal := 0, 0

	for _, ingredient := range ingredients {
		if entry, ok := findEntry(beneficial, ingredient); ok {
			out.Beneficial = append(out.Beneficial, ingredient)
			strongest = max(strongest, entry.Weight)
			reasons.add(fmt.Sprintf("%s - %s", ingredient, entry.Description))
			continue
		}
		if entry, ok := findEntry(problematic, ingredient); ok {
			out.Problematic = append(out.Problematic, ingredient)
			problemTotal += entry.Weight
			warnings.add(fmt.Sprintf("%s - %s", ingredient, entry.Description))
			continue
		}
		unclassified = append(unclassified, ingredient)
	}

	var universal []domain.IngredientEntry
	if tables != nil {
		universal = tables.UniversalProblematic
	}
	for _, ingredient := range unclassified {
		if entry, ok := findEntry(universal, ingredient); ok {
			out.Problematic = append(out.Problematic, ingredient)
			problemTotal += entry.Weight
			warnings.add(fmt.Sprintf("%s - %s", ingredient, entry.Description))
			continue
		}
		out.Neutral = append(out.Neutral, ingredient)
	}

	matches := len(out.Beneficial) + len(out.Problematic)
	out.Score = neutralScore
	if matches > 0 {
		total := float64(strongest*len(out.Beneficial) + problemTotal)
		out.Score = clampScore(math.Round(neutralScore + total/float64(matches)))
		out.HasData = true
	}
	out.Reasons = reasons.list()
	out.Warnings = warnings.list()
	return out
}

// findEntry returns the first table entry related to ingredient by containment
func findEntry(entries []domain.IngredientEntry, ingredient string) (domain.IngredientEntry, bool) {
	for _, e := range entries {
		if textnorm.ContainsEither(ingredient, e.Name) {
			return e, true
		}
	}
	return domain.IngredientEntry{}, false
}

// concernAnalysis is the concern scorer output
type concernAnalysis struct {
	dimension
	MissingBeneficials []string
}

// scoreConcerns counts declared concerns addressed by at least one ingredient
func scoreConcerns(ingredients, concerns []string, tables *domain.ReferenceTables) concernAnalysis {
	if len(concerns) == 0 {
		return concernAnalysis{
			dimension:          dimension{Score: neutralScore, Reasons: []string{}, Warnings: []string{}},
			MissingBeneficials: []string{},
		}
	}

	var reasons, warnings, missing messages
	addressed := 0

	for _, concern := range concerns {
		vocabulary := tables.ConcernIngredients(concern)
		if len(vocabulary) == 0 {
			warnings.add(fmt.Sprintf("No ingredient data for concern %q", displayConcern(concern)))
			continue
		}

		var found []string
		for _, ingredient := range ingredients {
			for _, helpful := range vocabulary {
				if textnorm.ContainsEither(ingredient, helpful) {
					found = append(found, ingredient)
					break
				}
			}
		}

		if len(found) > 0 {
			addressed++
			reasons.add(fmt.Sprintf("Addresses %s: %s", displayConcern(concern), strings.Join(found, ", ")))
			continue
		}
		missing.add(vocabulary...)
	}

	return concernAnalysis{
		dimension: dimension{
			Score:    clampScore(math.Round(float64(addressed) / float64(len(concerns)) * 100)),
			HasData:  true,
			Reasons:  reasons.list(),
			Warnings: warnings.list(),
		},
		MissingBeneficials: missing.list(),
	}
}

// clampScore bounds an already rounded value to 0-100
func clampScore(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}
