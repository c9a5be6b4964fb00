package usecase

import (
	"github.com/beautymatch/backend/internal/domain"
)

// Safety sub-scores
const (
	safetyClear   = 100
	safetyAllergy = 0
)

// MatchingService scores products against skin profiles.
// It holds only read-only tables and policy, so one instance can serve
// concurrent callers without locking.
type MatchingService struct {
	tables *domain.ReferenceTables
	policy domain.Policy
}

// NewMatchingService creates a matching service. Nil tables behave as empty
// tables (every lookup yields no data); a policy without bands falls back to
// the default policy.
func NewMatchingService(tables *domain.ReferenceTables, policy domain.Policy) *MatchingService {
	if tables == nil {
		tables = &domain.ReferenceTables{}
	}
	if len(policy.Bands) == 0 {
		policy = domain.DefaultPolicy()
	}
	return &MatchingService{tables: tables, policy: policy}
}

// Tables returns the reference tables the service scores against
func (s *MatchingService) Tables() *domain.ReferenceTables {
	return s.tables
}

// Policy returns the scoring policy in effect
func (s *MatchingService) Policy() domain.Policy {
	return s.policy
}

// Normalize returns the normalized forms of product and profile the scorers see
func (s *MatchingService) Normalize(product domain.ProductRecord, profile domain.SkinProfile) (domain.ProductRecord, domain.SkinProfile) {
	return NormalizeProduct(product, s.tables), NormalizeProfile(profile, s.tables)
}

// Match scores product against profile.
// Flow: normalize -> allergen gate -> brand gate -> missing data check -> scorers -> aggregate -> narrate
func (s *MatchingService) Match(product domain.ProductRecord, profile domain.SkinProfile) domain.MatchResult {
	p, u := s.Normalize(product, profile)
	result := newResult()

	allergy := CheckAllergies(p.Ingredients, u.Allergies)
	if allergy.Matched {
		result.Verdict = domain.VerdictContainsAllergen
		result.Confidence = clampConfidence(s.policy.Confidence.Allergen)
		result.Warnings = allergy.Warnings
		result.Breakdown.SafetyScore = safetyAllergy
		return result
	}
	result.Breakdown.SafetyScore = safetyClear

	brand := CheckBrandPreference(p.Brand, u)
	result.Breakdown.BrandScore = brand.Score
	if brand.Disliked {
		result.Verdict = domain.VerdictUserPreferenceConflict
		result.Confidence = clampConfidence(s.policy.Confidence.BrandConflict)
		result.Warnings = brand.Warnings
		return result
	}

	if len(p.Ingredients) == 0 && len(p.SkinTypes) == 0 {
		result.Verdict = domain.VerdictMissingInformation
		result.Confidence = clampConfidence(s.policy.Confidence.MissingInfo)
		result.Warnings = []string{"Not enough product information to evaluate: no ingredients or skin types were found"}
		return result
	}

	d := dimensions{
		brand:       brand,
		skinType:    scoreSkinType(p, u),
		ingredients: scoreIngredients(p.Ingredients, u.SkinType, s.tables),
		concerns:    scoreConcerns(p.Ingredients, u.SkinConcerns, s.tables),
		shade:       scoreShade(p, u, s.tables),
		category:    scoreCategory(p, u, s.tables),
		preferences: scorePreferences(p, u),
	}

	var reasons, warnings messages
	reasons.add(brand.Reasons...)
	for _, dim := range []dimension{
		d.skinType, d.ingredients.dimension, d.concerns.dimension,
		d.shade.dimension, d.category.dimension, d.preferences,
	} {
		reasons.add(dim.Reasons...)
		warnings.add(dim.Warnings...)
	}
	result.Reasons = reasons.list()
	result.Warnings = warnings.list()

	result.Breakdown.SkinTypeScore = d.skinType.Score
	result.Breakdown.IngredientScore = d.ingredients.Score
	result.Breakdown.ConcernsScore = d.concerns.Score
	result.Breakdown.PreferenceScore = d.preferences.Score
	result.Breakdown.ShadeScore = d.shade.Score
	result.Breakdown.CategoryScore = d.category.Score

	result.DetailedAnalysis.BeneficialIngredients = d.ingredients.Beneficial
	result.DetailedAnalysis.ProblematicIngredients = d.ingredients.Problematic
	result.DetailedAnalysis.NeutralIngredients = d.ingredients.Neutral
	result.DetailedAnalysis.MissingBeneficials = d.concerns.MissingBeneficials

	result.Score, result.Verdict, result.Confidence = aggregate(d, s.policy)
	result.Recommendations, result.DetailedAnalysis.CompatibilityNotes = narrate(result, d, p, u, s.tables)

	return result
}

// newResult returns an empty result whose lists serialize as [] rather than null
func newResult() domain.MatchResult {
	return domain.MatchResult{
		Verdict:         domain.VerdictNoMatch,
		Reasons:         []string{},
		Warnings:        []string{},
		Recommendations: []string{},
		DetailedAnalysis: domain.DetailedAnalysis{
			BeneficialIngredients:  []string{},
			ProblematicIngredients: []string{},
			NeutralIngredients:     []string{},
			MissingBeneficials:     []string{},
			CompatibilityNotes:     []string{},
		},
	}
}
