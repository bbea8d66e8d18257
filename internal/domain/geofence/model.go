package geofence

import (
	"time"

	"github.com/jmcferran/sightline/internal/domain/geo"
)

// Visibility controls who can reference a geofence.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Geofence is a named, stored polygon region referenced by id from signal
// targets.
type Geofence struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Polygon    geo.Polygon `json:"polygon"`
	Visibility Visibility  `json:"visibility"`
	CreatedAt  time.Time   `json:"created_at"`
}
