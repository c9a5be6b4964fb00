package usecase

import (
	"strings"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/textnorm"
)

// NormalizeProduct returns a copy of product with every text field folded,
// every list de-duplicated, and declared skin types resolved through the alias table.
func NormalizeProduct(product domain.ProductRecord, tables *domain.ReferenceTables) domain.ProductRecord {
	skinTypes := textnorm.FoldList(product.SkinTypes)
	for i, st := range skinTypes {
		skinTypes[i] = tables.ResolveSkinType(st)
	}

	return domain.ProductRecord{
		Name:        textnorm.Fold(product.Name),
		Brand:       textnorm.Fold(product.Brand),
		Ingredients: textnorm.FoldList(product.Ingredients),
		Shade:       textnorm.Fold(product.Shade),
		Coverage:    textnorm.Fold(product.Coverage),
		Finish:      textnorm.Fold(product.Finish),
		Category:    textnorm.Fold(product.Category),
		Formulation: textnorm.Fold(product.Formulation),
		SkinTypes:   dedupe(skinTypes),
	}
}

// NormalizeProfile returns a copy of profile with text folded, missing lists
// replaced by empty ones, skin type resolved to its canonical key and concerns
// turned into vocabulary keys.
func NormalizeProfile(profile domain.SkinProfile, tables *domain.ReferenceTables) domain.SkinProfile {
	concerns := make([]string, 0, len(profile.SkinConcerns))
	for _, c := range profile.SkinConcerns {
		if key := textnorm.Key(c); key != "" {
			concerns = append(concerns, key)
		}
	}

	return domain.SkinProfile{
		SkinType:          tables.ResolveSkinType(textnorm.Fold(profile.SkinType)),
		SkinTone:          textnorm.Fold(profile.SkinTone),
		Allergies:         textnorm.FoldList(profile.Allergies),
		DislikedBrands:    textnorm.FoldList(profile.DislikedBrands),
		PreferredBrands:   textnorm.FoldList(profile.PreferredBrands),
		SkinConcerns:      dedupe(concerns),
		PreferredFinish:   textnorm.Fold(profile.PreferredFinish),
		PreferredCoverage: textnorm.Fold(profile.PreferredCoverage),
	}
}

// dedupe removes repeated entries, keeping first-seen order. Never returns nil.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// displayConcern renders a concern key for messages ("enlarged_pores" -> "enlarged pores")
func displayConcern(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// firstN returns at most n leading items joined by ", "
func firstN(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

// messages is an insertion-ordered list of strings that ignores repeats
type messages struct {
	items []string
	seen  map[string]struct{}
}

func (m *messages) add(msgs ...string) {
	if m.seen == nil {
		m.seen = make(map[string]struct{})
	}
	for _, msg := range msgs {
		if msg == "" {
			continue
		}
		if _, ok := m.seen[msg]; ok {
			continue
		}
		m.seen[msg] = struct{}{}
		m.items = append(m.items, msg)
	}
}

// list returns the collected messages; the result is never nil
func (m *messages) list() []string {
	if m.items == nil {
		return []string{}
	}
	return m.items
}
