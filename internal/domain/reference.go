package domain

import "sort"

// IngredientEntry is one row of an ingredient reference table.
// Weight is positive for beneficial entries and negative for problematic ones.
type IngredientEntry struct {
	Name        string `json:"name" yaml:"name"`
	Weight      int    `json:"weight" yaml:"weight"`
	Description string `json:"description" yaml:"description"`
}

// ToneCategory maps a tone name (fair, warm, ...) to the keywords that signal it
type ToneCategory struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// CategoryFit is a coverage or finish heuristic for base makeup
type CategoryFit struct {
	SkinType  string `json:"skinType" yaml:"skinType"`
	Attribute string `json:"attribute" yaml:"attribute"` // "coverage" or "finish"
	Contains  string `json:"contains" yaml:"contains"`
	Reason    string `json:"reason" yaml:"reason"`
}

// ReferenceTables is the read-only scoring vocabulary shared by every match.
// It is built once at startup and must not be mutated afterwards.
type ReferenceTables struct {
	SkinTypeAliases      map[string]string            `json:"skinTypeAliases" yaml:"skinTypeAliases"`
	Beneficial           map[string][]IngredientEntry `json:"beneficial" yaml:"beneficial"`
	Problematic          map[string][]IngredientEntry `json:"problematic" yaml:"problematic"`
	UniversalProblematic []IngredientEntry            `json:"universalProblematic" yaml:"universalProblematic"`
	Concerns             map[string][]string          `json:"concerns" yaml:"concerns"`
	ShadeKeywords        []ToneCategory               `json:"shadeKeywords" yaml:"shadeKeywords"`
	ColorCategories      []string                     `json:"colorCategories" yaml:"colorCategories"`
	BaseCategories       []string                     `json:"baseCategories" yaml:"baseCategories"`
	CategoryFits         []CategoryFit                `json:"categoryFits" yaml:"categoryFits"`
	PotentActives        []string                     `json:"potentActives" yaml:"potentActives"`
}

// CanonicalSkinTypes is the closed set of skin-type keys the tables are indexed by
var CanonicalSkinTypes = []string{"dry", "oily", "sensitive", "mature", "combination", "normal", "acne-prone"}

// ConcernKeys is the closed concern vocabulary a profile may declare
var ConcernKeys = []string{"acne", "aging", "hyperpigmentation", "dryness", "sensitivity", "dullness", "enlarged_pores", "oiliness"}

// ResolveSkinType maps a normalized skin type through the alias table.
// Unknown values are returned unchanged.
func (t *ReferenceTables) ResolveSkinType(skinType string) string {
	if t == nil {
		return skinType
	}
	if canonical, ok := t.SkinTypeAliases[skinType]; ok {
		return canonical
	}
	return skinType
}

// BeneficialFor returns the beneficial entries for a skin-type key, or nil for unknown keys
func (t *ReferenceTables) BeneficialFor(skinType string) []IngredientEntry {
	if t == nil {
		return nil
	}
	return t.Beneficial[skinType]
}

// ProblematicFor returns the problematic entries for a skin-type key, or nil for unknown keys
func (t *ReferenceTables) ProblematicFor(skinType string) []IngredientEntry {
	if t == nil {
		return nil
	}
	return t.Problematic[skinType]
}

// ConcernIngredients returns the helpful-ingredient vocabulary of a concern
func (t *ReferenceTables) ConcernIngredients(concern string) []string {
	if t == nil {
		return nil
	}
	return t.Concerns[concern]
}

// SortedConcerns returns the concern keys present in the tables in lexical order
func (t *ReferenceTables) SortedConcerns() []string {
	if t == nil {
		return []string{}
	}
	keys := make([]string, 0, len(t.Concerns))
	for k := range t.Concerns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
