package ranking

import (
	"sort"

	"github.com/jmcferran/sightline/internal/domain/geo"
	"github.com/jmcferran/sightline/internal/domain/signal"
)

// Popularity weights: subscribers are the strongest engagement signal,
// sightings next, raw views least.
const (
	viewWeight       = 1
	subscriberWeight = 10
	sightingWeight   = 5
)

// Fixed scores for the two override rules.
const (
	officialGlobalFloor = 10000
	unimportantScore    = -1000
	viralMultiplier     = 2.0
)

// Category boost by preference rank: a match against the viewer's #1
// category trebles relevance, #2 doubles it, #3 adds half.
var categoryBoosts = [3]float64{3.0, 2.0, 1.5}

// CalculateCategoryBoost returns the personalization multiplier for a
// signal, exactly 1.0 whenever personalization is disabled, the viewer has
// no preferences, or the signal declares no category filter. Otherwise the
// first of the viewer's top 3 categories that intersects the signal's
// category set decides the boost.
func CalculateCategoryBoost(sig *signal.Signal, rc *Context) float64 {
	if !rc.EnablePersonalization || len(rc.CategoryScores) == 0 {
		return 1.0
	}
	if sig.Conditions == nil || len(sig.Conditions.CategoryIDs) == 0 {
		return 1.0
	}

	top := make([]CategoryScore, len(rc.CategoryScores))
	copy(top, rc.CategoryScores)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})
	if len(top) > 3 {
		top = top[:3]
	}

	for rank, pref := range top {
		for _, catID := range sig.Conditions.CategoryIDs {
			if catID == pref.CategoryID {
				return categoryBoosts[rank]
			}
		}
	}

	return 1.0
}

// CalculateRankScore computes a signal's relevance for one viewer. Higher
// is more relevant; the scale is unbounded.
//
// Two overrides short-circuit everything else: official global signals get
// a fixed floor above any popularity-driven score, and community signals
// the viewer marked unimportant sink to the bottom.
func CalculateRankScore(sig *signal.Signal, rc *Context, isViralBoosted bool, distanceKm *float64) float64 {
	if sig.Classification == signal.ClassificationOfficial && sig.Target.Kind == signal.TargetGlobal {
		return float64(signal.ClassificationOfficial.Priority() + officialGlobalFloor)
	}

	if sig.Classification == signal.ClassificationCommunity && rc.UnimportantSignalIDs[sig.ID] {
		return unimportantScore
	}

	popularity := float64(sig.Analytics.ViewCount*viewWeight +
		sig.Analytics.SubscriberCount*subscriberWeight +
		sig.Analytics.SightingCount*sightingWeight)

	categoryBoost := CalculateCategoryBoost(sig, rc)

	// A stronger category match pulls a distant signal closer.
	effectiveDistance := 0.0
	if rc.EnableLocationRanking && distanceKm != nil {
		effectiveDistance = *distanceKm / categoryBoost
	}

	// The +1 keeps distance 0 from blowing up the division while
	// preserving monotonic decay.
	baseScore := (popularity * 100) / (effectiveDistance + 1)

	if isViralBoosted {
		baseScore *= viralMultiplier
	}

	return baseScore + float64(sig.Classification.Priority())
}

// RepresentativePoint returns the point ranking distance is measured to:
// the centroid for inline polygons, nil for global targets (no distance
// applies) and for geofence targets, whose centroid lookup belongs to the
// caller with repository access.
func RepresentativePoint(t signal.Target) *geo.Point {
	if t.Kind == signal.TargetPolygon {
		return geo.Centroid(t.Polygon)
	}
	return nil
}
