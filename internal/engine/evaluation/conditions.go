package evaluation

import (
	"github.com/jmcferran/sightline/internal/domain/signal"
)

// MatchesConditions evaluates a signal's condition set against the
// flattened sighting view. One boolean check per populated field, in a
// fixed order; the operator decides whether all (AND, the default) or any
// (OR) must hold. No populated fields means match everything.
func MatchesConditions(c *signal.Conditions, data sightingData) bool {
	if c.IsEmpty() {
		return true
	}

	var checks []bool

	if len(c.CategoryIDs) > 0 {
		checks = append(checks, containsString(c.CategoryIDs, data.categoryID))
	}

	if len(c.TypeIDs) > 0 {
		checks = append(checks, containsString(c.TypeIDs, data.typeID))
	}

	if len(c.Tags) > 0 {
		checks = append(checks, anyTagOverlap(c.Tags, data.tags))
	}

	if len(c.Importances) > 0 {
		match := false
		for _, imp := range c.Importances {
			if imp == data.importance {
				match = true
				break
			}
		}
		checks = append(checks, match)
	}

	if c.MinTrustTier != "" {
		checks = append(checks, data.trustTier.AtLeast(c.MinTrustTier))
	}

	if c.ScoreMin != nil {
		checks = append(checks, data.score >= *c.ScoreMin)
	}

	if c.ScoreMax != nil {
		checks = append(checks, data.score <= *c.ScoreMax)
	}

	if c.Operator == signal.OperatorOr {
		for _, passed := range checks {
			if passed {
				return true
			}
		}
		return false
	}

	// AND (default for empty or unrecognized operators)
	for _, passed := range checks {
		if !passed {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func anyTagOverlap(wanted, have []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}
