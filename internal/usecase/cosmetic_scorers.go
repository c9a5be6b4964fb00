package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/beautymatch/backend/internal/domain"
)

// shade sub-scores
const (
	shadeMatch    = 100
	shadeMismatch = 0
)

// shadeAnalysis is the shade scorer output
type shadeAnalysis struct {
	dimension
	Applicable bool // product is a color cosmetic
	Matched    bool // meaningful only when HasData
}

// isColorProduct reports whether the category or name names a color cosmetic
func isColorProduct(product domain.ProductRecord, tables *domain.ReferenceTables) bool {
	if tables == nil {
		return false
	}
	for _, c := range tables.ColorCategories {
		if strings.Contains(product.Category, c) || strings.Contains(product.Name, c) {
			return true
		}
	}
	return false
}

// toneCategories maps free text onto the shared tone vocabulary, in table order
func toneCategories(text string, tables *domain.ReferenceTables) []string {
	var out []string
	if text == "" || tables == nil {
		return out
	}
	for _, tone := range tables.ShadeKeywords {
		for _, kw := range tone.Keywords {
			if strings.Contains(text, kw) {
				out = append(out, tone.Name)
				break
			}
		}
	}
	return out
}

// scoreShade compares a color cosmetic's shade with the user's skin tone.
// Either side mapping to no tone category is treated as missing data.
func scoreShade(product domain.ProductRecord, profile domain.SkinProfile, tables *domain.ReferenceTables) shadeAnalysis {
	out := shadeAnalysis{dimension: dimension{Score: neutralScore}}
	if !isColorProduct(product, tables) {
		return out
	}
	out.Applicable = true

	if product.Shade == "" {
		out.Warnings = []string{"No shade information available for this product"}
		return out
	}
	if profile.SkinTone == "" {
		return out
	}

	productTones := toneCategories(product.Shade, tables)
	userTones := toneCategories(profile.SkinTone, tables)
	if len(productTones) == 0 || len(userTones) == 0 {
		return out
	}

	out.HasData = true
	for _, t := range userTones {
		if contains(productTones, t) {
			out.Matched = true
			out.Score = shadeMatch
			out.Reasons = []string{fmt.Sprintf("Shade %q matches your %s skin tone", product.Shade, profile.SkinTone)}
			return out
		}
	}

	out.Score = shadeMismatch
	out.Warnings = []string{fmt.Sprintf("Shade %q might not match your %s skin tone", product.Shade, profile.SkinTone)}
	return out
}

// categoryAnalysis is the base-makeup heuristic output
type categoryAnalysis struct {
	dimension
	Fits int
}

// per matching coverage/finish heuristic
const categoryFitStep = 25

// scoreCategory applies coverage and finish heuristics to foundations and concealers
func scoreCategory(product domain.ProductRecord, profile domain.SkinProfile, tables *domain.ReferenceTables) categoryAnalysis {
	out := categoryAnalysis{dimension: dimension{Score: neutralScore}}
	if tables == nil || profile.SkinType == "" || !isBaseProduct(product, tables) {
		return out
	}

	var reasons messages
	for _, fit := range tables.CategoryFits {
		if !strings.Contains(profile.SkinType, fit.SkinType) {
			continue
		}
		attr := product.Coverage
		if fit.Attribute == "finish" {
			attr = product.Finish
		}
		if attr != "" && fit.Contains != "" && strings.Contains(attr, fit.Contains) {
			out.Fits++
			reasons.add(fit.Reason)
		}
	}

	out.HasData = product.Coverage != "" || product.Finish != ""
	out.Score = clampScore(float64(neutralScore + out.Fits*categoryFitStep))
	out.Reasons = reasons.list()
	return out
}

func isBaseProduct(product domain.ProductRecord, tables *domain.ReferenceTables) bool {
	for _, c := range tables.BaseCategories {
		if strings.Contains(product.Category, c) {
			return true
		}
	}
	return false
}

// scorePreferences compares finish and coverage with the user's stated preferences
func scorePreferences(product domain.ProductRecord, profile domain.SkinProfile) dimension {
	var reasons messages
	evaluated, matched := 0, 0

	if profile.PreferredFinish != "" && product.Finish != "" {
		evaluated++
		if strings.Contains(product.Finish, profile.PreferredFinish) {
			matched++
			reasons.add(fmt.Sprintf("Matches your preferred %s finish", profile.PreferredFinish))
		}
	}
	if profile.PreferredCoverage != "" && product.Coverage != "" {
		evaluated++
		if strings.Contains(product.Coverage, profile.PreferredCoverage) {
			matched++
			reasons.add(fmt.Sprintf("Matches your preferred %s coverage", profile.PreferredCoverage))
		}
	}

	if evaluated == 0 {
		return dimension{Score: neutralScore, Reasons: []string{}, Warnings: []string{}}
	}
	return dimension{
		Score:   clampScore(math.Round(float64(matched) / float64(evaluated) * 100)),
		HasData: true,
		Reasons: reasons.list(),
	}
}
