package evaluation

import (
	"fmt"

	"github.com/jmcferran/sightline/internal/domain/sighting"
	"github.com/jmcferran/sightline/internal/domain/signal"
)

// Evaluation is the detailed per-signal verdict, carrying the stage that
// produced a no-match as a human-readable reason.
type Evaluation struct {
	Signal  *signal.Signal `json:"signal"`
	Matched bool           `json:"matched"`
	Reason  string         `json:"reason"`
}

// Match-score weights for the specificity heuristic. Type beats category
// because it is the narrower filter; a custom polygon beats a geofence or
// global target for the same reason.
const (
	matchScoreBase       = 10
	matchScoreCategory   = 20
	matchScoreType       = 30
	matchScoreImportance = 15
	matchScoreBound      = 10
	matchScorePolygon    = 5
	matchScoreMax        = 100
)

// ShouldTrigger reports whether the event type is one the signal subscribes
// to. Active-state is checked by the orchestrator, not here.
func ShouldTrigger(sig *signal.Signal, event sighting.EventType) bool {
	return sig.SubscribesTo(event)
}

// evaluate runs the fixed short-circuit pipeline for one (signal, event)
// pair: active -> trigger -> geography -> conditions.
func evaluate(s *sighting.Sighting, sig *signal.Signal, event sighting.EventType, ec *Context) (bool, string) {
	if !sig.IsActive {
		return false, "Signal is not active"
	}

	if !ShouldTrigger(sig, event) {
		return false, fmt.Sprintf("Signal does not subscribe to %s events", event)
	}

	if !MatchesGeography(s, sig, ec) {
		return false, "Sighting is outside signal geographic bounds"
	}

	if !MatchesConditions(sig.Conditions, flatten(s, ec)) {
		return false, "Sighting does not match signal conditions"
	}

	return true, "All criteria matched"
}

// EvaluateSighting fans one sighting event out across many signals and
// returns only the matches, in input order.
func EvaluateSighting(s *sighting.Sighting, signals []*signal.Signal, event sighting.EventType, ec *Context) []*signal.Signal {
	var matched []*signal.Signal
	for _, sig := range signals {
		if ok, _ := evaluate(s, sig, event, ec); ok {
			matched = append(matched, sig)
		}
	}
	return matched
}

// EvaluateSightingDetailed is the diagnostic form: one record per input
// signal, matched or not, with the reason the pipeline stopped.
func EvaluateSightingDetailed(s *sighting.Sighting, signals []*signal.Signal, event sighting.EventType, ec *Context) []Evaluation {
	evaluations := make([]Evaluation, 0, len(signals))
	for _, sig := range signals {
		matched, reason := evaluate(s, sig, event, ec)
		evaluations = append(evaluations, Evaluation{
			Signal:  sig,
			Matched: matched,
			Reason:  reason,
		})
	}
	return evaluations
}

// WouldMatch checks geography and conditions only, ignoring trigger type
// and active state. Used by authoring preview UIs asking "would this signal
// fire on this kind of sighting".
func WouldMatch(s *sighting.Sighting, sig *signal.Signal, ec *Context) bool {
	if !MatchesGeography(s, sig, ec) {
		return false
	}
	return MatchesConditions(sig.Conditions, flatten(s, ec))
}

// EvaluateSignalFeed is the inverse fan-out: many sightings against one
// signal, returning the subset that would match. An inactive signal yields
// an empty result without any per-sighting work.
func EvaluateSignalFeed(sightings []*sighting.Sighting, sig *signal.Signal, ec *Context) []*sighting.Sighting {
	if !sig.IsActive {
		return nil
	}

	var matched []*sighting.Sighting
	for _, s := range sightings {
		if WouldMatch(s, sig, ec) {
			matched = append(matched, s)
		}
	}
	return matched
}

// FindScoreThresholdSignals returns the active signals subscribed to the
// score_threshold trigger, for the periodic batch sweep.
func FindScoreThresholdSignals(signals []*signal.Signal) []*signal.Signal {
	var found []*signal.Signal
	for _, sig := range signals {
		if sig.IsActive && sig.SubscribesTo(sighting.EventScoreThreshold) {
			found = append(found, sig)
		}
	}
	return found
}

// CrossedScoreThreshold reports an upward crossing: the previous score was
// below the threshold and the current score reached it. Exactly reaching
// the threshold counts; downward movement never does.
func CrossedScoreThreshold(current, previous, threshold float64) bool {
	return previous < threshold && current >= threshold
}

// PreFilterSignals is a cheap, conservative pre-pass over the candidate set
// before the full geography/condition evaluation: active state, trigger
// subscription, and a coarse category/type check. It is a superset filter:
// it may pass signals the full pipeline rejects, but never rejects one the
// full pipeline would accept. Under the OR operator the category/type check
// is skipped entirely, since an OR'd condition can still pass via another
// check.
func PreFilterSignals(s *sighting.Sighting, signals []*signal.Signal, event sighting.EventType) []*signal.Signal {
	var candidates []*signal.Signal
	for _, sig := range signals {
		if !sig.IsActive || !sig.SubscribesTo(event) {
			continue
		}

		if c := sig.Conditions; !c.IsEmpty() && c.Operator != signal.OperatorOr {
			if len(c.CategoryIDs) > 0 && !containsString(c.CategoryIDs, s.CategoryID) {
				continue
			}
			if len(c.TypeIDs) > 0 && !containsString(c.TypeIDs, s.TypeID) {
				continue
			}
		}

		candidates = append(candidates, sig)
	}
	return candidates
}

// CalculateMatchScore is a standalone specificity heuristic in [0,100] used
// to order multiple matched signals for one sighting: the more specific the
// signal's filter, the higher it scores. Unrelated to the viewer-relevance
// rank score in the ranking engine.
func CalculateMatchScore(sig *signal.Signal, s *sighting.Sighting) int {
	score := matchScoreBase

	if c := sig.Conditions; !c.IsEmpty() {
		if len(c.CategoryIDs) > 0 && containsString(c.CategoryIDs, s.CategoryID) {
			score += matchScoreCategory
		}
		if len(c.TypeIDs) > 0 && containsString(c.TypeIDs, s.TypeID) {
			score += matchScoreType
		}
		if len(c.Importances) > 0 {
			for _, imp := range c.Importances {
				if imp == s.Importance {
					score += matchScoreImportance
					break
				}
			}
		}
		if c.ScoreMin != nil && s.Score >= *c.ScoreMin {
			score += matchScoreBound
		}
		if c.ScoreMax != nil && s.Score <= *c.ScoreMax {
			score += matchScoreBound
		}
	}

	if sig.Target.Kind == signal.TargetPolygon {
		score += matchScorePolygon
	}

	if score > matchScoreMax {
		score = matchScoreMax
	}
	return score
}
