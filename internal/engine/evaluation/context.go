// Package evaluation decides which signals a sighting event should notify.
// Everything here is pure: immutable inputs in, values out, no I/O. The
// read-only Context is assembled once per batch by the service layer; the
// engine never refreshes it.
package evaluation

import (
	"github.com/jmcferran/sightline/internal/domain/geofence"
	"github.com/jmcferran/sightline/internal/domain/reputation"
	"github.com/jmcferran/sightline/internal/domain/sighting"
)

// Context is the read-only snapshot an evaluation pass runs against.
type Context struct {
	// Geofences keyed by id. A signal referencing a missing geofence
	// evaluates to "no geographic match", never an error.
	Geofences map[string]*geofence.Geofence

	// SightingTypes keyed by id, source of the tags a sighting carries.
	SightingTypes map[string]*sighting.SightingType

	// Reputations keyed by user id. Missing reporters resolve to the
	// unverified tier.
	Reputations map[string]reputation.Reputation
}

// NewContext returns an empty context. Nil maps are tolerated everywhere,
// but an initialized context keeps callers out of trouble.
func NewContext() *Context {
	return &Context{
		Geofences:     make(map[string]*geofence.Geofence),
		SightingTypes: make(map[string]*sighting.SightingType),
		Reputations:   make(map[string]reputation.Reputation),
	}
}

// sightingData is the flattened view the condition matcher evaluates:
// the sighting's own attributes plus tags and trust tier resolved from the
// context.
type sightingData struct {
	categoryID string
	typeID     string
	tags       []string
	importance sighting.Importance
	score      float64
	trustTier  reputation.Tier
}

// flatten resolves a sighting against the context. Unresolvable type ids
// yield an empty tag list; anonymous or unknown reporters resolve to the
// unverified tier.
func flatten(s *sighting.Sighting, ec *Context) sightingData {
	data := sightingData{
		categoryID: s.CategoryID,
		typeID:     s.TypeID,
		importance: s.Importance,
		score:      s.Score,
		trustTier:  reputation.TierUnverified,
	}

	if ec == nil {
		return data
	}

	if st, ok := ec.SightingTypes[s.TypeID]; ok {
		data.tags = st.Tags
	}

	if s.ReporterID != "" {
		if rep, ok := ec.Reputations[s.ReporterID]; ok {
			data.trustTier = rep.Tier()
		}
	}

	return data
}
