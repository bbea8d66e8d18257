package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/jmcferran/sightline/internal/domain/geo"
	"github.com/jmcferran/sightline/internal/domain/geofence"
	"github.com/jmcferran/sightline/internal/domain/signal"
	"github.com/jmcferran/sightline/internal/domain/viewer"
)

type fakeSignalRepo struct {
	signals   []*signal.Signal
	snapshots map[string][]signal.ActivitySnapshot
}

func (f *fakeSignalRepo) GetByID(_ context.Context, id string) (*signal.Signal, error) {
	for _, sig := range f.signals {
		if sig.ID == id {
			return sig, nil
		}
	}
	return nil, signal.ErrSignalNotFound
}

func (f *fakeSignalRepo) ListActive(_ context.Context) ([]*signal.Signal, error) {
	var active []*signal.Signal
	for _, sig := range f.signals {
		if sig.IsActive {
			active = append(active, sig)
		}
	}
	return active, nil
}

func (f *fakeSignalRepo) ListAll(_ context.Context) ([]*signal.Signal, error) {
	return f.signals, nil
}

func (f *fakeSignalRepo) ListByOwner(_ context.Context, _ string) ([]*signal.Signal, error) {
	return nil, nil
}

func (f *fakeSignalRepo) ListActivitySnapshots(_ context.Context, signalID string, _ time.Time) ([]signal.ActivitySnapshot, error) {
	return f.snapshots[signalID], nil
}

type fakeGeofenceRepo struct {
	geofences map[string]*geofence.Geofence
}

func (f *fakeGeofenceRepo) GetByID(_ context.Context, id string) (*geofence.Geofence, error) {
	if gf, ok := f.geofences[id]; ok {
		return gf, nil
	}
	return nil, geofence.ErrGeofenceNotFound
}

func (f *fakeGeofenceRepo) ListAll(_ context.Context) ([]*geofence.Geofence, error) {
	var all []*geofence.Geofence
	for _, gf := range f.geofences {
		all = append(all, gf)
	}
	return all, nil
}

type fakePreferenceRepo struct {
	settings     *viewer.PrivacySettings
	interactions []viewer.CategoryInteraction
	hidden       []string
	pinned       []string
	unimportant  []string
}

func (f *fakePreferenceRepo) GetPrivacySettings(_ context.Context, _ string) (*viewer.PrivacySettings, error) {
	if f.settings == nil {
		return nil, viewer.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakePreferenceRepo) ListCategoryInteractions(_ context.Context, _ string, limit int) ([]viewer.CategoryInteraction, error) {
	if limit > len(f.interactions) {
		limit = len(f.interactions)
	}
	return f.interactions[:limit], nil
}

func (f *fakePreferenceRepo) ListHiddenSignalIDs(_ context.Context, _ string) ([]string, error) {
	return f.hidden, nil
}

func (f *fakePreferenceRepo) ListPinnedSignalIDs(_ context.Context, _ string) ([]string, error) {
	return f.pinned, nil
}

func (f *fakePreferenceRepo) ListUnimportantSignalIDs(_ context.Context, _ string) ([]string, error) {
	return f.unimportant, nil
}

func feedSignals() []*signal.Signal {
	officialGlobal := &signal.Signal{
		ID:             "sig-official",
		Target:         signal.GlobalTarget(),
		IsActive:       true,
		Classification: signal.ClassificationOfficial,
	}

	popular := &signal.Signal{
		ID:             "sig-popular",
		Target:         signal.GeofenceTarget("geofence-tulsa"),
		IsActive:       true,
		Classification: signal.ClassificationCommunity,
		Analytics:      signal.Analytics{ViewCount: 50, SubscriberCount: 3, SightingCount: 4},
	}

	quiet := &signal.Signal{
		ID:             "sig-quiet",
		Target:         signal.GlobalTarget(),
		IsActive:       true,
		Classification: signal.ClassificationPersonal,
		Analytics:      signal.Analytics{ViewCount: 5},
	}

	hidden := &signal.Signal{
		ID:             "sig-hidden",
		Target:         signal.GlobalTarget(),
		IsActive:       true,
		Classification: signal.ClassificationCommunity,
	}

	return []*signal.Signal{officialGlobal, popular, quiet, hidden}
}

func newTestService(prefs *fakePreferenceRepo) *Service {
	svc := NewService(
		&fakeSignalRepo{signals: feedSignals(), snapshots: map[string][]signal.ActivitySnapshot{}},
		&fakeGeofenceRepo{geofences: map[string]*geofence.Geofence{
			"geofence-tulsa": {ID: "geofence-tulsa", Polygon: geo.Polygon{
				{Lat: 36.0, Lng: -96.1},
				{Lat: 36.2, Lng: -96.1},
				{Lat: 36.2, Lng: -95.8},
				{Lat: 36.0, Lng: -95.8},
			}},
		}},
		prefs,
	)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestBuildRankingContextDefaults(t *testing.T) {
	svc := newTestService(&fakePreferenceRepo{})

	rc, err := svc.BuildRankingContext(context.Background(), "viewer-1", nil)
	if err != nil {
		t.Fatalf("BuildRankingContext failed: %v", err)
	}

	// No settings row: privacy-first, both toggles off.
	if rc.EnablePersonalization || rc.EnableLocationRanking {
		t.Error("Expected both privacy toggles disabled by default")
	}
	if len(rc.CategoryScores) != 0 || len(rc.PinnedSignalIDs) != 0 {
		t.Error("Expected empty preference data by default")
	}
}

func TestRankFeed(t *testing.T) {
	t.Run("official global first, hidden dropped", func(t *testing.T) {
		svc := newTestService(&fakePreferenceRepo{hidden: []string{"sig-hidden"}})

		feed, err := svc.RankFeed(context.Background(), "viewer-1", nil)
		if err != nil {
			t.Fatalf("RankFeed failed: %v", err)
		}

		if len(feed) != 3 {
			t.Fatalf("Expected 3 signals after hiding one, got %d", len(feed))
		}
		if feed[0].Signal.ID != "sig-official" {
			t.Errorf("Expected official global first, got %s", feed[0].Signal.ID)
		}
		if feed[0].RankScore <= 10000 {
			t.Errorf("Official global rank score must exceed 10000, got %v", feed[0].RankScore)
		}
		for _, rs := range feed {
			if rs.Signal.ID == "sig-hidden" {
				t.Error("Hidden signal leaked into the feed")
			}
		}
	})

	t.Run("pinned signal leads regardless of score", func(t *testing.T) {
		svc := newTestService(&fakePreferenceRepo{pinned: []string{"sig-quiet"}})

		feed, err := svc.RankFeed(context.Background(), "viewer-1", nil)
		if err != nil {
			t.Fatalf("RankFeed failed: %v", err)
		}

		if feed[0].Signal.ID != "sig-quiet" {
			t.Errorf("Expected pinned signal first, got %s", feed[0].Signal.ID)
		}
	})

	t.Run("location ranking uses geofence centroid distance", func(t *testing.T) {
		svc := newTestService(&fakePreferenceRepo{
			settings: &viewer.PrivacySettings{EnableLocationRanking: true},
		})

		loc := &geo.Point{Lat: 36.1, Lng: -95.95}
		feed, err := svc.RankFeed(context.Background(), "viewer-1", loc)
		if err != nil {
			t.Fatalf("RankFeed failed: %v", err)
		}

		for _, rs := range feed {
			switch rs.Signal.ID {
			case "sig-popular":
				if rs.DistanceKm == nil {
					t.Error("Geofence-targeted signal should carry a distance")
				}
			case "sig-official", "sig-quiet":
				if rs.DistanceKm != nil {
					t.Errorf("%s: global target should carry no distance", rs.Signal.ID)
				}
			}
		}
	})

	t.Run("distance stays nil when location ranking disabled", func(t *testing.T) {
		svc := newTestService(&fakePreferenceRepo{})

		loc := &geo.Point{Lat: 36.1, Lng: -95.95}
		feed, err := svc.RankFeed(context.Background(), "viewer-1", loc)
		if err != nil {
			t.Fatalf("RankFeed failed: %v", err)
		}

		for _, rs := range feed {
			if rs.DistanceKm != nil {
				t.Errorf("%s: distance must be nil with location ranking off", rs.Signal.ID)
			}
		}
	})
}
