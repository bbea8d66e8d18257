package evaluation

import (
	"github.com/jmcferran/sightline/internal/domain/geo"
	"github.com/jmcferran/sightline/internal/domain/sighting"
	"github.com/jmcferran/sightline/internal/domain/signal"
)

// MatchesGeography resolves a signal's geographic target against the
// sighting's coordinate. Unknown target kinds and dangling geofence
// references are a "no match", never an error.
func MatchesGeography(s *sighting.Sighting, sig *signal.Signal, ec *Context) bool {
	switch sig.Target.Kind {
	case signal.TargetGlobal:
		return true

	case signal.TargetPolygon:
		return geo.PointInPolygon(sig.Target.Polygon, s.Location)

	case signal.TargetGeofence:
		if ec == nil {
			return false
		}
		gf, ok := ec.Geofences[sig.Target.GeofenceID]
		if !ok {
			// Deleted or missing geofence silently disables matching.
			return false
		}
		return geo.PointInPolygon(gf.Polygon, s.Location)

	default:
		// Forward-compatible default-deny.
		return false
	}
}
