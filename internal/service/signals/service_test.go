package signals

import (
	"context"
	"testing"
	"time"

	"github.com/jmcferran/sightline/internal/domain/geo"
	"github.com/jmcferran/sightline/internal/domain/geofence"
	"github.com/jmcferran/sightline/internal/domain/reputation"
	"github.com/jmcferran/sightline/internal/domain/sighting"
	"github.com/jmcferran/sightline/internal/domain/signal"
)

type fakeSignalRepo struct {
	signals []*signal.Signal
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

func (f *fakeSignalRepo) ListByOwner(_ context.Context, ownerID string) ([]*signal.Signal, error) {
	var owned []*signal.Signal
	for _, sig := range f.signals {
		if sig.OwnerID == ownerID {
			owned = append(owned, sig)
		}
	}
	return owned, nil
}

func (f *fakeSignalRepo) ListActivitySnapshots(_ context.Context, _ string, _ time.Time) ([]signal.ActivitySnapshot, error) {
	return nil, nil
}

type fakeSightingRepo struct {
	sightings []*sighting.Sighting
	types     []*sighting.SightingType
	changes   []sighting.ScoreChange
}

func (f *fakeSightingRepo) GetByID(_ context.Context, id string) (*sighting.Sighting, error) {
	for _, s := range f.sightings {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, sighting.ErrSightingNotFound
}

func (f *fakeSightingRepo) ListRecent(_ context.Context, limit int) ([]*sighting.Sighting, error) {
	if limit > len(f.sightings) {
		limit = len(f.sightings)
	}
	return f.sightings[:limit], nil
}

func (f *fakeSightingRepo) ListTypes(_ context.Context) ([]*sighting.SightingType, error) {
	return f.types, nil
}

func (f *fakeSightingRepo) ListScoreChanges(_ context.Context, _ time.Time) ([]sighting.ScoreChange, error) {
	return f.changes, nil
}

type fakeGeofenceRepo struct {
	geofences []*geofence.Geofence
}

func (f *fakeGeofenceRepo) GetByID(_ context.Context, id string) (*geofence.Geofence, error) {
	for _, gf := range f.geofences {
		if gf.ID == id {
			return gf, nil
		}
	}
	return nil, geofence.ErrGeofenceNotFound
}

func (f *fakeGeofenceRepo) ListAll(_ context.Context) ([]*geofence.Geofence, error) {
	return f.geofences, nil
}

type fakeReputationRepo struct {
	reputations map[string]reputation.Reputation
}

func (f *fakeReputationRepo) GetByUserID(_ context.Context, userID string) (*reputation.Reputation, error) {
	if rep, ok := f.reputations[userID]; ok {
		return &rep, nil
	}
	return nil, nil
}

func (f *fakeReputationRepo) ListByUserIDs(_ context.Context, userIDs []string) (map[string]reputation.Reputation, error) {
	out := make(map[string]reputation.Reputation)
	for _, id := range userIDs {
		if rep, ok := f.reputations[id]; ok {
			out[id] = rep
		}
	}
	return out, nil
}

var tulsaPolygon = geo.Polygon{
	{Lat: 36.0, Lng: -96.1},
	{Lat: 36.2, Lng: -96.1},
	{Lat: 36.2, Lng: -95.8},
	{Lat: 36.0, Lng: -95.8},
}

func newTestService() *Service {
	broad := &signal.Signal{
		ID:             "sig-broad",
		Target:         signal.GlobalTarget(),
		Triggers:       []sighting.EventType{sighting.EventNewSighting},
		IsActive:       true,
		Classification: signal.ClassificationCommunity,
	}

	specific := &signal.Signal{
		ID:       "sig-specific",
		Target:   signal.GeofenceTarget("geofence-tulsa"),
		Triggers: []sighting.EventType{sighting.EventNewSighting},
		Conditions: &signal.Conditions{
			CategoryIDs: []string{"cat-law-enforcement"},
		},
		IsActive:       true,
		Classification: signal.ClassificationCommunity,
	}

	min := 10.0
	threshold := &signal.Signal{
		ID:       "sig-threshold",
		Target:   signal.GlobalTarget(),
		Triggers: []sighting.EventType{sighting.EventScoreThreshold},
		Conditions: &signal.Conditions{
			ScoreMin: &min,
		},
		IsActive:       true,
		Classification: signal.ClassificationPersonal,
	}

	return NewService(
		&fakeSignalRepo{signals: []*signal.Signal{broad, specific, threshold}},
		&fakeSightingRepo{
			sightings: []*sighting.Sighting{
				{
					ID:         "s-1",
					TypeID:     "type-checkpoint",
					CategoryID: "cat-law-enforcement",
					Location:   geo.Point{Lat: 36.1, Lng: -95.9},
					Importance: sighting.ImportanceNormal,
					Score:      12,
					ReporterID: "user-1",
				},
			},
			types: []*sighting.SightingType{
				{ID: "type-checkpoint", Name: "Checkpoint", Tags: []string{"traffic"}},
			},
			changes: []sighting.ScoreChange{
				{SightingID: "s-1", Previous: 8, Current: 12},
			},
		},
		&fakeGeofenceRepo{geofences: []*geofence.Geofence{
			{ID: "geofence-tulsa", Name: "Tulsa", Polygon: tulsaPolygon},
		}},
		&fakeReputationRepo{reputations: map[string]reputation.Reputation{
			"user-1": {UserID: "user-1", Score: 60},
		}},
	)
}

func TestDispatchSighting(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	matches, err := svc.DispatchSighting(ctx, "s-1", sighting.EventNewSighting)
	if err != nil {
		t.Fatalf("DispatchSighting failed: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}

	// The narrower signal scores higher on specificity and sorts first.
	if matches[0].Signal.ID != "sig-specific" {
		t.Errorf("Expected sig-specific first, got %s", matches[0].Signal.ID)
	}
	if matches[0].MatchScore <= matches[1].MatchScore {
		t.Errorf("Expected descending match scores, got %d then %d",
			matches[0].MatchScore, matches[1].MatchScore)
	}
}

func TestDispatchSightingUnknownSighting(t *testing.T) {
	svc := newTestService()

	_, err := svc.DispatchSighting(context.Background(), "s-missing", sighting.EventNewSighting)
	if err == nil {
		t.Fatal("Expected error for unknown sighting")
	}
}

func TestDetailedEvaluation(t *testing.T) {
	svc := newTestService()

	evals, err := svc.DetailedEvaluation(context.Background(), "s-1", sighting.EventNewSighting)
	if err != nil {
		t.Fatalf("DetailedEvaluation failed: %v", err)
	}

	// One verdict per signal, including non-matches.
	if len(evals) != 3 {
		t.Fatalf("Expected 3 evaluations, got %d", len(evals))
	}

	for _, ev := range evals {
		if ev.Reason == "" {
			t.Errorf("%s: missing reason", ev.Signal.ID)
		}
	}
}

func TestPreviewSignal(t *testing.T) {
	svc := newTestService()

	feed, err := svc.PreviewSignal(context.Background(), "sig-specific", 50)
	if err != nil {
		t.Fatalf("PreviewSignal failed: %v", err)
	}

	if len(feed) != 1 || feed[0].ID != "s-1" {
		t.Errorf("Expected the Tulsa sighting in the preview, got %d results", len(feed))
	}
}

func TestSweepScoreThresholds(t *testing.T) {
	svc := newTestService()

	matches, err := svc.SweepScoreThresholds(context.Background(), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("SweepScoreThresholds failed: %v", err)
	}

	// s-1 moved 8 -> 12 across sig-threshold's minimum of 10.
	if len(matches) != 1 {
		t.Fatalf("Expected 1 threshold match, got %d", len(matches))
	}
	if matches[0].Signal.ID != "sig-threshold" || matches[0].Sighting.ID != "s-1" {
		t.Errorf("Unexpected match pair: %s / %s", matches[0].Signal.ID, matches[0].Sighting.ID)
	}
}
