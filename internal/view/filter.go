package view

import "github.com/leadstack/internal/models"

// MatchesCriteria reports whether a lead satisfies the filter criteria:
// OR within a category, AND across categories. An empty category matches
// everything.
//
// Tags are not consulted: leads carry no tag attribute, so the criterion is
// recorded on saved filters but has no effect on matching.
func MatchesCriteria(lead models.Lead, c models.FilterCriteria) bool {
	matchesCountries := len(c.Countries) == 0 || containsString(c.Countries, lead.Location)
	matchesIndustries := len(c.Industries) == 0 || containsString(c.Industries, lead.Industry)
	return matchesCountries && matchesIndustries
}

// ApplyCriteria re-derives a displayed subset by testing every lead against
// the criteria.
func ApplyCriteria(leads []models.Lead, c models.FilterCriteria) []models.Lead {
	matched := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if MatchesCriteria(lead, c) {
			matched = append(matched, lead)
		}
	}
	return matched
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
