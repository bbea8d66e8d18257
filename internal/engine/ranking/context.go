// Package ranking orders a viewer's signal feed. Like the evaluation
// engine it is pure and I/O-free: the viewer-scoped Context is a read-only
// snapshot assembled by the service layer, and every function returns a new
// value.
package ranking

import (
	"github.com/jmcferran/sightline/internal/domain/geo"
	"github.com/jmcferran/sightline/internal/domain/signal"
)

// CategoryScore is one category-interaction pair from the viewer's history.
type CategoryScore struct {
	CategoryID string  `json:"category_id"`
	Score      float64 `json:"score"`
}

// Context carries the viewer-scoped ranking inputs. The two privacy
// toggles default to disabled; when off they force category boost and
// distance to their neutral values regardless of other data present.
type Context struct {
	ViewerLocation *geo.Point      `json:"viewer_location,omitempty"`
	MembershipTier string          `json:"membership_tier,omitempty"`
	CategoryScores []CategoryScore `json:"category_scores,omitempty"`

	// HiddenSignalIDs and UnimportantSignalIDs are membership sets.
	// PinnedSignalIDs keeps its list order: pinned signals sort in this
	// order, not input order.
	HiddenSignalIDs      map[string]bool `json:"-"`
	PinnedSignalIDs      []string        `json:"pinned_signal_ids,omitempty"`
	UnimportantSignalIDs map[string]bool `json:"-"`

	EnablePersonalization bool `json:"enable_personalization"`
	EnableLocationRanking bool `json:"enable_location_ranking"`
}

// NewContext returns a privacy-first context: both toggles off, empty sets.
func NewContext() *Context {
	return &Context{
		HiddenSignalIDs:      make(map[string]bool),
		UnimportantSignalIDs: make(map[string]bool),
	}
}

// RankedSignal is a signal annotated with its computed relevance. A derived,
// ephemeral projection; never persisted.
type RankedSignal struct {
	Signal         *signal.Signal `json:"signal"`
	RankScore      float64        `json:"rank_score"`
	IsViralBoosted bool           `json:"is_viral_boosted"`
	CategoryBoost  float64        `json:"category_boost"`
	DistanceKm     *float64       `json:"distance_km,omitempty"`
}
