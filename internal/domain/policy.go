package domain

import (
	"fmt"
	"math"
)

// Weights are the shares of each dimension in the aggregate score. They sum to 1.
type Weights struct {
	SkinType    float64 `json:"skinType"`
	Ingredients float64 `json:"ingredients"`
	Concerns    float64 `json:"concerns"`
	Preferences float64 `json:"preferences"`
}

// Adjustments are additive points applied outside the weighted pool
type Adjustments struct {
	BrandAffinity float64 `json:"brandAffinity"`
	ShadeMatch    float64 `json:"shadeMatch"`
	ShadeMismatch float64 `json:"shadeMismatch"`
	CategoryFit   float64 `json:"categoryFit"` // per matching coverage/finish heuristic
}

// ConfidencePolicy controls how confidence grows with available data
type ConfidencePolicy struct {
	Base           int `json:"base"`
	SkinTypeData   int `json:"skinTypeData"`
	IngredientData int `json:"ingredientData"`
	ConcernData    int `json:"concernData"`
	PreferenceData int `json:"preferenceData"`
	ShadeData      int `json:"shadeData"`
	Allergen       int `json:"allergen"`
	BrandConflict  int `json:"brandConflict"`
	MissingInfo    int `json:"missingInfo"`
}

// VerdictBand maps every score >= MinScore (and below the previous band) to Verdict
type VerdictBand struct {
	Verdict         Verdict `json:"verdict"`
	MinScore        int     `json:"minScore"`
	ConfidenceDelta int     `json:"confidenceDelta"`
	ConfidenceFloor int     `json:"confidenceFloor"`
}

// Policy is the complete tunable scoring policy of the matching engine
type Policy struct {
	Weights     Weights          `json:"weights"`
	Adjustments Adjustments      `json:"adjustments"`
	Confidence  ConfidencePolicy `json:"confidence"`
	Bands       []VerdictBand    `json:"bands"`
}

// DefaultBands is the seven-band taxonomy used when no bands are configured
func DefaultBands() []VerdictBand {
	return []VerdictBand{
		{Verdict: VerdictPerfectMatch, MinScore: 90, ConfidenceDelta: 10},
		{Verdict: VerdictExcellentMatch, MinScore: 80, ConfidenceDelta: 5},
		{Verdict: VerdictGoodMatch, MinScore: 70},
		{Verdict: VerdictPartialMatch, MinScore: 60, ConfidenceDelta: -5, ConfidenceFloor: 60},
		{Verdict: VerdictFairMatch, MinScore: 50, ConfidenceDelta: -10, ConfidenceFloor: 50},
		{Verdict: VerdictCaution, MinScore: 40, ConfidenceDelta: -15, ConfidenceFloor: 40},
		{Verdict: VerdictNotRecommended, MinScore: 0, ConfidenceDelta: -20, ConfidenceFloor: 30},
	}
}

// DefaultPolicy returns the stock scoring policy
func DefaultPolicy() Policy {
	return Policy{
		Weights: Weights{SkinType: 0.30, Ingredients: 0.40, Concerns: 0.20, Preferences: 0.10},
		Adjustments: Adjustments{
			BrandAffinity: 5,
			ShadeMatch:    5,
			ShadeMismatch: -5,
			CategoryFit:   3,
		},
		Confidence: ConfidencePolicy{
			Base:           60,
			SkinTypeData:   10,
			IngredientData: 15,
			ConcernData:    5,
			PreferenceData: 5,
			ShadeData:      5,
			Allergen:       100,
			BrandConflict:  90,
			MissingInfo:    20,
		},
		Bands: DefaultBands(),
	}
}

// Band returns the band a clamped score falls into. Validate guarantees a match.
func (p Policy) Band(score int) VerdictBand {
	for _, b := range p.Bands {
		if score >= b.MinScore {
			return b
		}
	}
	return VerdictBand{Verdict: VerdictNoMatch}
}

// Validate checks that weights form a full pool and bands cover 0-100 in descending order
func (p Policy) Validate() error {
	w := p.Weights
	for name, v := range map[string]float64{
		"skin type": w.SkinType, "ingredients": w.Ingredients,
		"concerns": w.Concerns, "preferences": w.Preferences,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s weight is negative", ErrInvalidPolicy, name)
		}
	}
	if sum := w.SkinType + w.Ingredients + w.Concerns + w.Preferences; math.Abs(sum-1) > 0.001 {
		return fmt.Errorf("%w: weights sum to %.3f, want 1", ErrInvalidPolicy, sum)
	}

	if len(p.Bands) == 0 {
		return fmt.Errorf("%w: no verdict bands", ErrInvalidPolicy)
	}
	for i, b := range p.Bands {
		if !b.Verdict.IsScored() {
			return fmt.Errorf("%w: %q cannot be a score band", ErrInvalidPolicy, b.Verdict)
		}
		if b.MinScore < 0 || b.MinScore > 100 {
			return fmt.Errorf("%w: band %s min score %d out of range", ErrInvalidPolicy, b.Verdict, b.MinScore)
		}
		if i > 0 && b.MinScore >= p.Bands[i-1].MinScore {
			return fmt.Errorf("%w: bands must be strictly descending (%s after %s)",
				ErrInvalidPolicy, b.Verdict, p.Bands[i-1].Verdict)
		}
	}
	if last := p.Bands[len(p.Bands)-1]; last.MinScore != 0 {
		return fmt.Errorf("%w: lowest band %s must start at 0", ErrInvalidPolicy, last.Verdict)
	}
	return nil
}
