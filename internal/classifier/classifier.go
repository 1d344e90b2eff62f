// Package classifier files listings under a geographic category by title keywords.
package classifier

import (
	"strings"

	"GovtJobsScanner/internal/domain"
)

// Rule maps a category to the keywords that select it.
type Rule struct {
	Category domain.Category
	Keywords []string
}

// rules is evaluated top to bottom and the first hit wins, so the order matters
// for titles naming more than one place.
var rules = []Rule{
	{Category: domain.CategoryOdisha, Keywords: []string{"odisha", "orissa", "bhubaneswar", "cuttack", "balasore", "rourkela", "bbsr"}},
	{Category: domain.CategoryBihar, Keywords: []string{"bihar", "patna"}},
	{Category: domain.CategoryUttarPradesh, Keywords: []string{"uttar pradesh", "up", "lucknow", "kanpur"}},
	{Category: domain.CategoryMaharashtra, Keywords: []string{"maharashtra", "mumbai", "pune"}},
	{Category: domain.CategoryDelhi, Keywords: []string{"delhi", "new delhi"}},
	{Category: domain.CategoryAll},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Categories lists every category in declaration order, catch-all last.
func Categories() []domain.Category {
	out := make([]domain.Category, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Category)
	}
	return out
}

// Classify returns the first category with a keyword contained in title.
func Classify(title string) domain.Category {
	lower := strings.ToLower(title)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return domain.CategoryAll
}
