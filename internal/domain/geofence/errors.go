package geofence

import "errors"

var (
	// ErrGeofenceNotFound geofence does not exist
	ErrGeofenceNotFound = errors.New("geofence not found")
)
