package reference

import (
	"fmt"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/textnorm"
)

// rawTables mirrors tables.yaml before folding and validation
type rawTables struct {
	SkinTypeAliases      map[string]string          `yaml:"skinTypeAliases"`
	Beneficial           map[string][]rawIngredient `yaml:"beneficial"`
	Problematic          map[string][]rawIngredient `yaml:"problematic"`
	UniversalProblematic []rawIngredient            `yaml:"universalProblematic"`
	Concerns             map[string][]string        `yaml:"concerns"`
	ShadeKeywords        []domain.ToneCategory      `yaml:"shadeKeywords"`
	ColorCategories      []string                   `yaml:"colorCategories"`
	BaseCategories       []string                   `yaml:"baseCategories"`
	CategoryFits         []domain.CategoryFit       `yaml:"categoryFits"`
	PotentActives        []string                   `yaml:"potentActives"`
}

type rawIngredient struct {
	Name        string `yaml:"name"`
	Weight      int    `yaml:"weight"`
	Description string `yaml:"description"`
}

type sign int

const (
	positive sign = 1
	negative sign = -1
)

// mapTables converts the raw YAML document into domain tables
func mapTables(raw rawTables) (*domain.ReferenceTables, error) {
	tables := &domain.ReferenceTables{
		SkinTypeAliases: make(map[string]string, len(raw.SkinTypeAliases)),
		Beneficial:      make(map[string][]domain.IngredientEntry, len(raw.Beneficial)),
		Problematic:     make(map[string][]domain.IngredientEntry, len(raw.Problematic)),
		Concerns:        make(map[string][]string, len(raw.Concerns)),
		ColorCategories: textnorm.FoldList(raw.ColorCategories),
		BaseCategories:  textnorm.FoldList(raw.BaseCategories),
		PotentActives:   textnorm.FoldList(raw.PotentActives),
	}

	for alias, canonical := range raw.SkinTypeAliases {
		alias, canonical = textnorm.Fold(alias), textnorm.Fold(canonical)
		if alias == "" || canonical == "" {
			return nil, fmt.Errorf("%w: empty skin type alias", domain.ErrInvalidReferenceData)
		}
		tables.SkinTypeAliases[alias] = canonical
	}

	for skinType, entries := range raw.Beneficial {
		mapped, err := mapEntries("beneficial."+skinType, entries, positive)
		if err != nil {
			return nil, err
		}
		tables.Beneficial[textnorm.Fold(skinType)] = mapped
	}
	for skinType, entries := range raw.Problematic {
		mapped, err := mapEntries("problematic."+skinType, entries, negative)
		if err != nil {
			return nil, err
		}
		tables.Problematic[textnorm.Fold(skinType)] = mapped
	}

	universal, err := mapEntries("universalProblematic", raw.UniversalProblematic, negative)
	if err != nil {
		return nil, err
	}
	tables.UniversalProblematic = universal

	for concern, ingredients := range raw.Concerns {
		key := textnorm.Key(concern)
		if !isKnownConcern(key) {
			return nil, fmt.Errorf("%w: unknown concern %q", domain.ErrInvalidReferenceData, concern)
		}
		tables.Concerns[key] = textnorm.FoldList(ingredients)
	}

	for _, tone := range raw.ShadeKeywords {
		name := textnorm.Fold(tone.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: shade category without a name", domain.ErrInvalidReferenceData)
		}
		tables.ShadeKeywords = append(tables.ShadeKeywords, domain.ToneCategory{
			Name:     name,
			Keywords: textnorm.FoldList(tone.Keywords),
		})
	}

	for _, fit := range raw.CategoryFits {
		attribute := textnorm.Fold(fit.Attribute)
		if attribute != "coverage" && attribute != "finish" {
			return nil, fmt.Errorf("%w: category fit attribute %q", domain.ErrInvalidReferenceData, fit.Attribute)
		}
		tables.CategoryFits = append(tables.CategoryFits, domain.CategoryFit{
			SkinType:  tables.ResolveSkinType(textnorm.Fold(fit.SkinType)),
			Attribute: attribute,
			Contains:  textnorm.Fold(fit.Contains),
			Reason:    fit.Reason,
		})
	}

	return tables, nil
}

// mapEntries folds names, drops repeated names (first wins) and checks weight signs
func mapEntries(section string, entries []rawIngredient, want sign) ([]domain.IngredientEntry, error) {
	out := make([]domain.IngredientEntry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := textnorm.Fold(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: %s has an entry without a name", domain.ErrInvalidReferenceData, section)
		}
		if e.Weight == 0 || (want == positive) != (e.Weight > 0) {
			return nil, fmt.Errorf("%w: %s entry %q has weight %d", domain.ErrInvalidReferenceData, section, name, e.Weight)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, domain.IngredientEntry{Name: name, Weight: e.Weight, Description: e.Description})
	}
	return out, nil
}

func isKnownConcern(key string) bool {
	for _, k := range domain.ConcernKeys {
		if k == key {
			return true
		}
	}
	return false
}
