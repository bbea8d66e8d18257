package geo

import "math"

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Polygon is an ordered, non-self-intersecting ring of vertices.
type Polygon []Point

// PointInPolygon reports whether p lies inside the polygon using the
// standard ray-casting test. Degenerate polygons (fewer than 3 vertices)
// never contain anything.
func PointInPolygon(polygon Polygon, p Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		vi := polygon[i]
		vj := polygon[j]

		if (vi.Lng > p.Lng) != (vj.Lng > p.Lng) &&
			p.Lat < (vj.Lat-vi.Lat)*(p.Lng-vi.Lng)/(vj.Lng-vi.Lng)+vi.Lat {
			inside = !inside
		}
		j = i
	}

	return inside
}

// DistanceKm returns the haversine great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Centroid returns the arithmetic mean of the vertices, or nil for an empty
// list. This is a coarse representative point, not an area-weighted centroid;
// it is used for ranking distance, never for membership tests.
func Centroid(points []Point) *Point {
	if len(points) == 0 {
		return nil
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	n := float64(len(points))
	return &Point{
		Lat: sumLat / n,
		Lng: sumLng / n,
	}
}
