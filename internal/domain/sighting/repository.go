package sighting

import (
	"context"
	"time"
)

// SightingRepository reads reported sightings and their type metadata.
type SightingRepository interface {
	// GetByID returns a single sighting.
	GetByID(ctx context.Context, id string) (*Sighting, error)

	// ListRecent returns the newest sightings, most recent first.
	ListRecent(ctx context.Context, limit int) ([]*Sighting, error)

	// ListTypes returns all sighting types with their tags.
	ListTypes(ctx context.Context) ([]*SightingType, error)

	// ListScoreChanges returns score movements observed since the given
	// time, for the score-threshold batch sweep.
	ListScoreChanges(ctx context.Context, since time.Time) ([]ScoreChange, error)
}
