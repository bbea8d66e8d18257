package geofence

import "context"

// GeofenceRepository reads stored geofences.
type GeofenceRepository interface {
	// GetByID returns a single geofence.
	GetByID(ctx context.Context, id string) (*Geofence, error)

	// ListAll returns every geofence.
	ListAll(ctx context.Context) ([]*Geofence, error)
}
