package evaluation

import (
	"testing"

	"github.com/jmcferran/sightline/internal/domain/reputation"
	"github.com/jmcferran/sightline/internal/domain/sighting"
	"github.com/jmcferran/sightline/internal/domain/signal"
)

func floatPtr(f float64) *float64 { return &f }

func TestMatchesConditions(t *testing.T) {
	data := sightingData{
		categoryID: "cat-law-enforcement",
		typeID:     "type-checkpoint",
		tags:       []string{"traffic", "roadblock"},
		importance: sighting.ImportanceHigh,
		score:      42,
		trustTier:  reputation.TierTrusted,
	}

	t.Run("empty conditions match everything", func(t *testing.T) {
		if !MatchesConditions(nil, data) {
			t.Error("nil conditions should match")
		}
		if !MatchesConditions(&signal.Conditions{}, data) {
			t.Error("empty conditions should match")
		}
	})

	t.Run("single category check", func(t *testing.T) {
		c := &signal.Conditions{CategoryIDs: []string{"cat-law-enforcement"}}
		if !MatchesConditions(c, data) {
			t.Error("matching category should pass")
		}

		c = &signal.Conditions{CategoryIDs: []string{"cat-weather"}}
		if MatchesConditions(c, data) {
			t.Error("non-matching category should fail")
		}
	})

	t.Run("AND requires every populated check", func(t *testing.T) {
		c := &signal.Conditions{
			CategoryIDs: []string{"cat-law-enforcement"},
			TypeIDs:     []string{"type-other"},
		}
		if MatchesConditions(c, data) {
			t.Error("AND with one failing check should fail")
		}
	})

	t.Run("OR requires any populated check", func(t *testing.T) {
		c := &signal.Conditions{
			CategoryIDs: []string{"cat-weather"},
			TypeIDs:     []string{"type-checkpoint"},
			Operator:    signal.OperatorOr,
		}
		if !MatchesConditions(c, data) {
			t.Error("OR with one passing check should pass")
		}

		c = &signal.Conditions{
			CategoryIDs: []string{"cat-weather"},
			TypeIDs:     []string{"type-other"},
			Operator:    signal.OperatorOr,
		}
		if MatchesConditions(c, data) {
			t.Error("OR with no passing check should fail")
		}
	})

	t.Run("tag overlap", func(t *testing.T) {
		c := &signal.Conditions{Tags: []string{"roadblock", "unrelated"}}
		if !MatchesConditions(c, data) {
			t.Error("any overlapping tag should pass")
		}

		c = &signal.Conditions{Tags: []string{"unrelated"}}
		if MatchesConditions(c, data) {
			t.Error("no overlapping tag should fail")
		}

		noTags := data
		noTags.tags = nil
		if MatchesConditions(c, noTags) {
			t.Error("unresolved type tags should fail the tag check, not error")
		}
	})

	t.Run("minimum trust tier", func(t *testing.T) {
		c := &signal.Conditions{MinTrustTier: reputation.TierTrusted}
		if !MatchesConditions(c, data) {
			t.Error("trusted reporter should satisfy a trusted minimum")
		}

		c = &signal.Conditions{MinTrustTier: reputation.TierVerified}
		if MatchesConditions(c, data) {
			t.Error("trusted reporter should not satisfy a verified minimum")
		}
	})

	t.Run("score range", func(t *testing.T) {
		c := &signal.Conditions{ScoreMin: floatPtr(40), ScoreMax: floatPtr(50)}
		if !MatchesConditions(c, data) {
			t.Error("score within range should pass")
		}

		c = &signal.Conditions{ScoreMin: floatPtr(43)}
		if MatchesConditions(c, data) {
			t.Error("score below minimum should fail")
		}

		c = &signal.Conditions{ScoreMax: floatPtr(41)}
		if MatchesConditions(c, data) {
			t.Error("score above maximum should fail")
		}

		// Bounds are inclusive
		c = &signal.Conditions{ScoreMin: floatPtr(42), ScoreMax: floatPtr(42)}
		if !MatchesConditions(c, data) {
			t.Error("score equal to both bounds should pass")
		}
	})

	t.Run("importance membership", func(t *testing.T) {
		c := &signal.Conditions{Importances: []sighting.Importance{sighting.ImportanceHigh, sighting.ImportanceCritical}}
		if !MatchesConditions(c, data) {
			t.Error("listed importance should pass")
		}

		c = &signal.Conditions{Importances: []sighting.Importance{sighting.ImportanceLow}}
		if MatchesConditions(c, data) {
			t.Error("unlisted importance should fail")
		}
	})
}
