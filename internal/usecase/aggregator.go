package usecase

import (
	"math"

	"github.com/beautymatch/backend/internal/domain"
)

// dimensions bundles every scorer output for aggregation and narration
type dimensions struct {
	brand       BrandCheck
	skinType    dimension
	ingredients ingredientAnalysis
	concerns    concernAnalysis
	shade       shadeAnalysis
	category    categoryAnalysis
	preferences dimension
}

// aggregate folds weighted sub-scores and adjustments into a score, verdict and confidence
func aggregate(d dimensions, policy domain.Policy) (score int, verdict domain.Verdict, confidence int) {
	w := policy.Weights
	raw := w.SkinType*float64(d.skinType.Score) +
		w.Ingredients*float64(d.ingredients.Score) +
		w.Concerns*float64(d.concerns.Score) +
		w.Preferences*float64(d.preferences.Score) +
		adjustments(d, policy.Adjustments)

	score = clampScore(math.Round(raw))
	band := policy.Band(score)
	return score, band.Verdict, bandConfidence(d, policy.Confidence, band)
}

// adjustments sums the additive points that sit outside the weighted pool
func adjustments(d dimensions, a domain.Adjustments) float64 {
	var total float64
	if d.brand.Preferred {
		total += a.BrandAffinity
	}
	if d.shade.HasData {
		if d.shade.Matched {
			total += a.ShadeMatch
		} else {
			total += a.ShadeMismatch
		}
	}
	total += float64(d.category.Fits) * a.CategoryFit
	return total
}

// bandConfidence grows the base confidence with every dimension that had real
// data, then applies the band's delta and floor.
func bandConfidence(d dimensions, c domain.ConfidencePolicy, band domain.VerdictBand) int {
	confidence := c.Base
	if d.skinType.HasData {
		confidence += c.SkinTypeData
	}
	if d.ingredients.HasData {
		confidence += c.IngredientData
	}
	if d.concerns.HasData {
		confidence += c.ConcernData
	}
	if d.preferences.HasData {
		confidence += c.PreferenceData
	}
	if d.shade.HasData {
		confidence += c.ShadeData
	}

	confidence += band.ConfidenceDelta
	confidence = max(confidence, band.ConfidenceFloor)
	return clampConfidence(confidence)
}

func clampConfidence(c int) int {
	return min(max(c, 0), 100)
}
