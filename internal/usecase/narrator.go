package usecase

import (
	"fmt"
	"strings"

	"github.com/beautymatch/backend/internal/domain"
)

// longIngredientList is the size above which patch testing is suggested
const longIngredientList = 30

// narrate writes recommendations and compatibility notes for a scored result.
// It only reads its inputs.
func narrate(result domain.MatchResult, d dimensions, product domain.ProductRecord, profile domain.SkinProfile, tables *domain.ReferenceTables) (recommendations, notes []string) {
	name := product.Name
	if name == "" {
		name = "This product"
	}
	skin := "your skin"
	if profile.SkinType != "" {
		skin = fmt.Sprintf("your %s skin", profile.SkinType)
	}
	analysis := result.DetailedAnalysis

	var recs messages
	switch result.Verdict {
	case domain.VerdictPerfectMatch, domain.VerdictExcellentMatch:
		if product.Brand != "" {
			recs.add(fmt.Sprintf("%s by %s is an excellent match for %s profile!", name, product.Brand, skin))
		} else {
			recs.add(fmt.Sprintf("%s is an excellent match for %s profile!", name, skin))
		}
		if len(analysis.BeneficialIngredients) > 0 {
			recs.add("Key benefits: " + firstN(analysis.BeneficialIngredients, 3))
		}
	case domain.VerdictGoodMatch:
		recs.add(fmt.Sprintf("%s is a good match for %s with some great benefits.", name, skin))
	case domain.VerdictPartialMatch, domain.VerdictFairMatch:
		recs.add(fmt.Sprintf("Consider trying %s, but monitor how %s responds.", name, skin))
	case domain.VerdictCaution, domain.VerdictNotRecommended:
		recs.add(fmt.Sprintf("%s may not be ideal for %s.", name, skin))
		if len(analysis.ProblematicIngredients) > 0 {
			recs.add("Potential concerns: " + firstN(analysis.ProblematicIngredients, 2))
		}
	}

	if len(analysis.MissingBeneficials) > 0 {
		recs.add(fmt.Sprintf("For %s, look for products with: %s", skin, firstN(analysis.MissingBeneficials, 3)))
	}
	if len(product.Ingredients) > longIngredientList {
		recs.add("This product has many ingredients, consider patch testing first.")
	}

	var compat messages
	if result.Breakdown.SkinTypeScore < skinTypePartial {
		compat.add(fmt.Sprintf("Consider patch testing %s as it is formulated for different skin types than %s.", name, skin))
	}
	if len(analysis.ProblematicIngredients) > 0 {
		compat.add(fmt.Sprintf("Monitor for sensitivity to %s due to: %s", name, firstN(analysis.ProblematicIngredients, 2)))
	}
	if hasPotentActive(analysis.BeneficialIngredients, tables) {
		compat.add(fmt.Sprintf("Start with less frequent use of %s to build tolerance, especially for actives like retinol or acids.", name))
	}
	if d.brand.Preferred {
		compat.add(fmt.Sprintf("This product is from your preferred brand: %s.", product.Brand))
	}

	return recs.list(), compat.list()
}

func hasPotentActive(beneficial []string, tables *domain.ReferenceTables) bool {
	if tables == nil {
		return false
	}
	for _, ingredient := range beneficial {
		for _, active := range tables.PotentActives {
			if strings.Contains(ingredient, active) {
				return true
			}
		}
	}
	return false
}
