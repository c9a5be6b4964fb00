package domain

// Verdict is the categorical outcome of a match
type Verdict string

const (
	VerdictNoMatch                Verdict = "NO_MATCH"
	VerdictPerfectMatch           Verdict = "PERFECT_MATCH"
	VerdictExcellentMatch         Verdict = "EXCELLENT_MATCH"
	VerdictGoodMatch              Verdict = "GOOD_MATCH"
	VerdictPartialMatch           Verdict = "PARTIAL_MATCH"
	VerdictFairMatch              Verdict = "FAIR_MATCH"
	VerdictCaution                Verdict = "CAUTION"
	VerdictNotRecommended         Verdict = "NOT_RECOMMENDED"
	VerdictContainsAllergen       Verdict = "CONTAINS_ALLERGEN"
	VerdictUserPreferenceConflict Verdict = "USER_PREFERENCE_CONFLICT"
	VerdictMissingInformation     Verdict = "MISSING_INFORMATION"
)

// ScoredVerdicts are the verdicts reachable through the score band table.
var ScoredVerdicts = []Verdict{
	VerdictPerfectMatch,
	VerdictExcellentMatch,
	VerdictGoodMatch,
	VerdictPartialMatch,
	VerdictFairMatch,
	VerdictCaution,
	VerdictNotRecommended,
}

// IsScored reports whether v can be produced by the aggregator (as opposed to a gate).
func (v Verdict) IsScored() bool {
	for _, s := range ScoredVerdicts {
		if v == s {
			return true
		}
	}
	return false
}

// Breakdown holds the per-dimension sub-scores, each in 0-100
type Breakdown struct {
	SkinTypeScore   int `json:"skinTypeScore"`
	IngredientScore int `json:"ingredientScore"`
	ConcernsScore   int `json:"concernsScore"`
	PreferenceScore int `json:"preferenceScore"`
	ShadeScore      int `json:"shadeScore"`
	CategoryScore   int `json:"categoryScore"`
	BrandScore      int `json:"brandScore"`
	SafetyScore     int `json:"safetyScore"`
}

// DetailedAnalysis lists how each ingredient was classified
type DetailedAnalysis struct {
	BeneficialIngredients  []string `json:"beneficialIngredients"`
	ProblematicIngredients []string `json:"problematicIngredients"`
	NeutralIngredients     []string `json:"neutralIngredients"`
	MissingBeneficials     []string `json:"missingBeneficials"`
	CompatibilityNotes     []string `json:"compatibilityNotes"`
}

// MatchResult is the outcome of scoring one product against one profile
type MatchResult struct {
	Verdict          Verdict          `json:"verdict"`
	Score            int              `json:"score"`      // 0-100
	Confidence       int              `json:"confidence"` // 0-100
	Reasons          []string         `json:"reasons"`
	Warnings         []string         `json:"warnings"`
	Recommendations  []string         `json:"recommendations"`
	Breakdown        Breakdown        `json:"breakdown"`
	DetailedAnalysis DetailedAnalysis `json:"detailedAnalysis"`
}
