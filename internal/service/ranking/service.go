// Package ranking is the use-case layer around the ranking engine: it
// assembles the viewer-scoped context from the preference repositories
// (privacy-first defaults), resolves the distance inputs the pure engine
// cannot (geofence centroids need a repository lookup), and produces the
// final ordered feed.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jmcferran/sightline/internal/domain/geo"
	"github.com/jmcferran/sightline/internal/domain/geofence"
	"github.com/jmcferran/sightline/internal/domain/signal"
	"github.com/jmcferran/sightline/internal/domain/viewer"
	"github.com/jmcferran/sightline/internal/engine/ranking"
)

// activityWindow covers both the 24h burst window and the 7-day baseline.
const activityWindow = 8 * 24 * time.Hour

// Service ranks a viewer's signal feed.
type Service struct {
	signalRepo     signal.SignalRepository
	geofenceRepo   geofence.GeofenceRepository
	preferenceRepo viewer.PreferenceRepository

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates the ranking use-case service.
func NewService(
	signalRepo signal.SignalRepository,
	geofenceRepo geofence.GeofenceRepository,
	preferenceRepo viewer.PreferenceRepository,
) *Service {
	return &Service{
		signalRepo:     signalRepo,
		geofenceRepo:   geofenceRepo,
		preferenceRepo: preferenceRepo,
		now:            time.Now,
	}
}

// BuildRankingContext assembles the viewer-scoped ranking inputs. A viewer
// with no privacy settings row gets both toggles disabled; missing
// preference rows resolve to empty sets.
func (s *Service) BuildRankingContext(ctx context.Context, viewerID string, location *geo.Point) (*ranking.Context, error) {
	rc := ranking.NewContext()
	rc.ViewerLocation = location

	settings, err := s.preferenceRepo.GetPrivacySettings(ctx, viewerID)
	switch {
	case errors.Is(err, viewer.ErrSettingsNotFound):
		// Privacy-first: both toggles stay disabled.
	case err != nil:
		return nil, fmt.Errorf("get privacy settings: %w", err)
	default:
		rc.EnablePersonalization = settings.EnablePersonalization
		rc.EnableLocationRanking = settings.EnableLocationRanking
	}

	if rc.EnablePersonalization {
		interactions, err := s.preferenceRepo.ListCategoryInteractions(ctx, viewerID, 3)
		if err != nil {
			return nil, fmt.Errorf("list category interactions: %w", err)
		}
		for _, in := range interactions {
			rc.CategoryScores = append(rc.CategoryScores, ranking.CategoryScore{
				CategoryID: in.CategoryID,
				Score:      in.Score(),
			})
		}
	}

	hidden, err := s.preferenceRepo.ListHiddenSignalIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list hidden signals: %w", err)
	}
	for _, id := range hidden {
		rc.HiddenSignalIDs[id] = true
	}

	pinned, err := s.preferenceRepo.ListPinnedSignalIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list pinned signals: %w", err)
	}
	rc.PinnedSignalIDs = pinned

	unimportant, err := s.preferenceRepo.ListUnimportantSignalIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list unimportant signals: %w", err)
	}
	for _, id := range unimportant {
		rc.UnimportantSignalIDs[id] = true
	}

	return rc, nil
}

// RankFeed produces the viewer's ordered signal feed: hidden signals are
// dropped, each remaining signal is scored with its viral state and
// distance, and the pinned-aware sort decides the final order.
func (s *Service) RankFeed(ctx context.Context, viewerID string, location *geo.Point) ([]ranking.RankedSignal, error) {
	rc, err := s.BuildRankingContext(ctx, viewerID, location)
	if err != nil {
		return nil, err
	}

	signals, err := s.signalRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active signals: %w", err)
	}

	now := s.now()
	ranked := make([]ranking.RankedSignal, 0, len(signals))
	for _, sig := range signals {
		if rc.HiddenSignalIDs[sig.ID] {
			continue
		}

		viral, err := s.resolveViralBoost(ctx, sig, now)
		if err != nil {
			return nil, err
		}

		distance := s.resolveDistance(ctx, sig, rc)

		rs := ranking.RankedSignal{
			Signal:         sig,
			IsViralBoosted: viral,
			CategoryBoost:  ranking.CalculateCategoryBoost(sig, rc),
			DistanceKm:     distance,
		}
		rs.RankScore = ranking.CalculateRankScore(sig, rc, viral, distance)
		ranked = append(ranked, rs)
	}

	ordered := ranking.SortByRankScore(ranked, rc)

	log.Debug().
		Str("viewer_id", viewerID).
		Int("candidates", len(signals)).
		Int("ranked", len(ordered)).
		Bool("personalization", rc.EnablePersonalization).
		Bool("location_ranking", rc.EnableLocationRanking).
		Msg("Ranked signal feed")

	return ordered, nil
}

func (s *Service) resolveViralBoost(ctx context.Context, sig *signal.Signal, now time.Time) (bool, error) {
	snapshots, err := s.signalRepo.ListActivitySnapshots(ctx, sig.ID, now.Add(-activityWindow))
	if err != nil {
		return false, fmt.Errorf("list activity snapshots for %s: %w", sig.ID, err)
	}
	return ranking.DetectViralBoost(ranking.CalculateViralActivity(snapshots, now)), nil
}

// resolveDistance supplies the distance input the pure engine cannot
// compute itself. Polygon targets use the in-core centroid; geofence
// targets need the repository lookup done here; global targets have no
// distance. Lookup failures degrade to "no distance" rather than failing
// the whole feed.
func (s *Service) resolveDistance(ctx context.Context, sig *signal.Signal, rc *ranking.Context) *float64 {
	if !rc.EnableLocationRanking || rc.ViewerLocation == nil {
		return nil
	}

	var point *geo.Point
	switch sig.Target.Kind {
	case signal.TargetPolygon:
		point = ranking.RepresentativePoint(sig.Target)
	case signal.TargetGeofence:
		gf, err := s.geofenceRepo.GetByID(ctx, sig.Target.GeofenceID)
		if err != nil {
			if !errors.Is(err, geofence.ErrGeofenceNotFound) {
				log.Warn().Err(err).Str("signal_id", sig.ID).Msg("Geofence lookup failed, ranking without distance")
			}
			return nil
		}
		point = geo.Centroid(gf.Polygon)
	}

	if point == nil {
		return nil
	}

	d := geo.DistanceKm(*rc.ViewerLocation, *point)
	return &d
}
