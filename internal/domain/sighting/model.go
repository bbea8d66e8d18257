package sighting

import (
	"time"

	"github.com/jmcferran/sightline/internal/domain/geo"
)

// Importance classifies how serious a reported sighting is.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceNormal   Importance = "normal"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// EventType is the class of sighting lifecycle event that can activate a
// signal.
type EventType string

const (
	EventNewSighting       EventType = "new_sighting"
	EventSightingConfirmed EventType = "sighting_confirmed"
	EventSightingDisputed  EventType = "sighting_disputed"
	EventScoreThreshold    EventType = "score_threshold"
)

// Sighting is a single reported event. It is owned by the reporting
// pipeline; the evaluation core reads it and never mutates it.
type Sighting struct {
	ID         string     `json:"id"`
	TypeID     string     `json:"type_id"`
	CategoryID string     `json:"category_id"`
	Location   geo.Point  `json:"location"`
	Importance Importance `json:"importance"`
	Score      float64    `json:"score"`

	// ReporterID is empty for anonymous reports.
	ReporterID string `json:"reporter_id,omitempty"`

	ReportedAt time.Time `json:"reported_at"`
}

// SightingType carries the tag metadata a sighting's type contributes to
// condition matching.
type SightingType struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// ScoreChange is a sighting's score movement between two observations,
// consumed by the periodic score-threshold sweep.
type ScoreChange struct {
	SightingID string  `json:"sighting_id"`
	Previous   float64 `json:"previous"`
	Current    float64 `json:"current"`
}
