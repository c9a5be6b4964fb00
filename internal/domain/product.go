package domain

// ProductRecord represents the product facts scraped from an e-commerce page.
// All string fields are free text; nothing is validated against a vocabulary.
type ProductRecord struct {
	Name        string   `json:"name" yaml:"name"`
	Brand       string   `json:"brand" yaml:"brand"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	Shade       string   `json:"shade,omitempty" yaml:"shade,omitempty"`
	Coverage    string   `json:"coverage,omitempty" yaml:"coverage,omitempty"`
	Finish      string   `json:"finish,omitempty" yaml:"finish,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Formulation string   `json:"formulation,omitempty" yaml:"formulation,omitempty"`
	SkinTypes   []string `json:"skinType,omitempty" yaml:"skinType,omitempty"` // skin types the product claims to suit
}

// SkinProfile represents the user's declared skin facts and preferences.
type SkinProfile struct {
	SkinType          string   `json:"skinType" yaml:"skinType"`
	SkinTone          string   `json:"skinTone" yaml:"skinTone"`
	Allergies         []string `json:"allergies" yaml:"allergies"`
	DislikedBrands    []string `json:"dislikedBrands,omitempty" yaml:"dislikedBrands,omitempty"`
	PreferredBrands   []string `json:"preferredBrands,omitempty" yaml:"preferredBrands,omitempty"`
	SkinConcerns      []string `json:"skinConcerns,omitempty" yaml:"skinConcerns,omitempty"`
	PreferredFinish   string   `json:"preferredFinish,omitempty" yaml:"preferredFinish,omitempty"`
	PreferredCoverage string   `json:"preferredCoverage,omitempty" yaml:"preferredCoverage,omitempty"`
}

// MatchRequest is the payload the extension popup sends for one product page
type MatchRequest struct {
	Product *ProductRecord `json:"product" binding:"required"`
	Profile *SkinProfile   `json:"profile" binding:"required"`
}
