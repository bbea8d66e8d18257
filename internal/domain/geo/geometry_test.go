package geo

import (
	"math"
	"testing"
)

func TestPointInPolygon(t *testing.T) {
	// Bounding box around Tulsa
	tulsa := Polygon{
		{Lat: 36.0, Lng: -96.1},
		{Lat: 36.2, Lng: -96.1},
		{Lat: 36.2, Lng: -95.8},
		{Lat: 36.0, Lng: -95.8},
	}

	t.Run("inside", func(t *testing.T) {
		if !PointInPolygon(tulsa, Point{Lat: 36.1, Lng: -95.9}) {
			t.Error("Expected point inside polygon")
		}
	})

	t.Run("outside", func(t *testing.T) {
		if PointInPolygon(tulsa, Point{Lat: 35.5, Lng: -95.9}) {
			t.Error("Expected point outside polygon")
		}
	})

	t.Run("degenerate polygon", func(t *testing.T) {
		if PointInPolygon(Polygon{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}, Point{Lat: 0.5, Lng: 0.5}) {
			t.Error("Polygon with fewer than 3 vertices must never match")
		}
		if PointInPolygon(Polygon{}, Point{}) {
			t.Error("Empty polygon must never match")
		}
	})
}

func TestDistanceKm(t *testing.T) {
	tulsa := Point{Lat: 36.15, Lng: -95.99}
	okc := Point{Lat: 35.47, Lng: -97.52}

	t.Run("symmetric", func(t *testing.T) {
		d1 := DistanceKm(tulsa, okc)
		d2 := DistanceKm(okc, tulsa)
		if math.Abs(d1-d2) > 0.001 {
			t.Errorf("Expected symmetric distance, got %f and %f", d1, d2)
		}
	})

	t.Run("zero for identical points", func(t *testing.T) {
		if d := DistanceKm(tulsa, tulsa); d != 0 {
			t.Errorf("Expected 0 for identical points, got %f", d)
		}
	})

	t.Run("plausible magnitude", func(t *testing.T) {
		// Tulsa to OKC is roughly 160 km as the crow flies
		d := DistanceKm(tulsa, okc)
		if d < 140 || d > 180 {
			t.Errorf("Expected roughly 160 km, got %f", d)
		}
	})
}

func TestCentroid(t *testing.T) {
	t.Run("square", func(t *testing.T) {
		square := []Point{
			{Lat: 0, Lng: 0},
			{Lat: 2, Lng: 0},
			{Lat: 2, Lng: 2},
			{Lat: 0, Lng: 2},
		}

		c := Centroid(square)
		if c == nil {
			t.Fatal("Expected centroid, got nil")
		}
		if c.Lat != 1 || c.Lng != 1 {
			t.Errorf("Expected (1,1), got (%f,%f)", c.Lat, c.Lng)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if c := Centroid(nil); c != nil {
			t.Errorf("Expected nil for empty point list, got %+v", c)
		}
	})
}
