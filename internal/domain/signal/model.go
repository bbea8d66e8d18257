package signal

import (
	"time"

	"github.com/jmcferran/sightline/internal/domain/geo"
	"github.com/jmcferran/sightline/internal/domain/reputation"
	"github.com/jmcferran/sightline/internal/domain/sighting"
)

// TargetKind discriminates the geographic target variants.
type TargetKind string

const (
	TargetGlobal   TargetKind = "global"
	TargetGeofence TargetKind = "geofence"
	TargetPolygon  TargetKind = "polygon"
)

// Target is the signal's geographic scope. Only the fields for the active
// kind are populated; use the constructors below.
type Target struct {
	Kind       TargetKind  `json:"kind"`
	GeofenceID string      `json:"geofence_id,omitempty"`
	Polygon    geo.Polygon `json:"polygon,omitempty"`
}

// GlobalTarget matches everywhere.
func GlobalTarget() Target {
	return Target{Kind: TargetGlobal}
}

// GeofenceTarget references a stored geofence by id. The geofence may no
// longer exist; evaluation treats a dangling reference as "no match".
func GeofenceTarget(geofenceID string) Target {
	return Target{Kind: TargetGeofence, GeofenceID: geofenceID}
}

// PolygonTarget carries an inline polygon.
func PolygonTarget(polygon geo.Polygon) Target {
	return Target{Kind: TargetPolygon, Polygon: polygon}
}

// Operator combines condition checks.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// Conditions is an optional filter over sighting attributes. Each populated
// field contributes one boolean check; absent fields contribute nothing. An
// empty condition set matches everything.
type Conditions struct {
	CategoryIDs  []string              `json:"category_ids,omitempty"`
	TypeIDs      []string              `json:"type_ids,omitempty"`
	Tags         []string              `json:"tags,omitempty"`
	Importances  []sighting.Importance `json:"importances,omitempty"`
	MinTrustTier reputation.Tier       `json:"min_trust_tier,omitempty"`
	ScoreMin     *float64              `json:"score_min,omitempty"`
	ScoreMax     *float64              `json:"score_max,omitempty"`

	// Operator defaults to AND when empty or unrecognized.
	Operator Operator `json:"operator,omitempty"`
}

// IsEmpty reports whether no condition field is populated.
func (c *Conditions) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.CategoryIDs) == 0 &&
		len(c.TypeIDs) == 0 &&
		len(c.Tags) == 0 &&
		len(c.Importances) == 0 &&
		c.MinTrustTier == "" &&
		c.ScoreMin == nil &&
		c.ScoreMax == nil
}

// Classification is the editorial tier of a signal.
type Classification string

const (
	ClassificationOfficial  Classification = "official"
	ClassificationCommunity Classification = "community"
	ClassificationVerified  Classification = "verified"
	ClassificationPersonal  Classification = "personal"
)

// Priority returns the fixed additive ranking bonus for the tier. Community
// deliberately outranks verified: community-curated signals surface above
// individually-verified personal ones, short of official content.
func (c Classification) Priority() int {
	switch c {
	case ClassificationOfficial:
		return 1000
	case ClassificationCommunity:
		return 500
	case ClassificationVerified:
		return 100
	default:
		return 0
	}
}

// Analytics holds a signal's engagement counters.
type Analytics struct {
	ViewCount       int `json:"view_count"`
	SubscriberCount int `json:"subscriber_count"`
	SightingCount   int `json:"sighting_count"`
}

// ActivitySnapshot is one day's activity count, used for viral detection.
type ActivitySnapshot struct {
	Date     time.Time `json:"date"`
	Activity int       `json:"activity"`
}

// Signal is a saved, named interest filter: a geographic target plus
// attribute conditions plus the lifecycle events that fire it.
type Signal struct {
	ID             string               `json:"id"`
	OwnerID        string               `json:"owner_id"`
	Name           string               `json:"name"`
	Target         Target               `json:"target"`
	Triggers       []sighting.EventType `json:"triggers"`
	Conditions     *Conditions          `json:"conditions,omitempty"`
	IsActive       bool                 `json:"is_active"`
	Classification Classification       `json:"classification"`
	Analytics      Analytics            `json:"analytics"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// SubscribesTo reports whether the signal's trigger list contains the event
// type. Active-state is checked separately by the evaluation orchestrator.
func (s *Signal) SubscribesTo(event sighting.EventType) bool {
	for _, t := range s.Triggers {
		if t == event {
			return true
		}
	}
	return false
}
