// Package signals is the use-case layer around the evaluation engine: it
// assembles read-only evaluation contexts from the repositories and runs
// dispatch, preview, and threshold-sweep flows. All I/O happens here; the
// engine below stays pure.
package signals

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jmcferran/sightline/internal/domain/geofence"
	"github.com/jmcferran/sightline/internal/domain/reputation"
	"github.com/jmcferran/sightline/internal/domain/sighting"
	"github.com/jmcferran/sightline/internal/domain/signal"
	"github.com/jmcferran/sightline/internal/engine/evaluation"
)

// Service evaluates incoming sighting events against saved signals.
type Service struct {
	signalRepo     signal.SignalRepository
	sightingRepo   sighting.SightingRepository
	geofenceRepo   geofence.GeofenceRepository
	reputationRepo reputation.ReputationRepository
}

// NewService creates the evaluation use-case service.
func NewService(
	signalRepo signal.SignalRepository,
	sightingRepo sighting.SightingRepository,
	geofenceRepo geofence.GeofenceRepository,
	reputationRepo reputation.ReputationRepository,
) *Service {
	return &Service{
		signalRepo:     signalRepo,
		sightingRepo:   sightingRepo,
		geofenceRepo:   geofenceRepo,
		reputationRepo: reputationRepo,
	}
}

// MatchedSignal pairs a matched signal with its specificity score, used to
// order multiple matches for one sighting.
type MatchedSignal struct {
	Signal     *signal.Signal `json:"signal"`
	MatchScore int            `json:"match_score"`
}

// ThresholdMatch records a score-threshold crossing detected by the sweep.
type ThresholdMatch struct {
	Signal   *signal.Signal     `json:"signal"`
	Sighting *sighting.Sighting `json:"sighting"`
}

// BuildEvaluationContext assembles the read-only snapshot an evaluation
// pass runs against: all geofences, all sighting types, and the reputations
// of the given reporters. Reporters without records are simply absent; the
// engine resolves them to the unverified tier.
func (s *Service) BuildEvaluationContext(ctx context.Context, reporterIDs []string) (*evaluation.Context, error) {
	ec := evaluation.NewContext()

	geofences, err := s.geofenceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	for _, gf := range geofences {
		ec.Geofences[gf.ID] = gf
	}

	types, err := s.sightingRepo.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sighting types: %w", err)
	}
	for _, st := range types {
		ec.SightingTypes[st.ID] = st
	}

	if len(reporterIDs) > 0 {
		reputations, err := s.reputationRepo.ListByUserIDs(ctx, reporterIDs)
		if err != nil {
			return nil, fmt.Errorf("list reputations: %w", err)
		}
		ec.Reputations = reputations
	}

	return ec, nil
}

// DispatchSighting evaluates one sighting event against every active
// signal and returns the matches ordered by specificity, highest first.
// The pre-filter shrinks the candidate set before the geography/condition
// pass.
func (s *Service) DispatchSighting(ctx context.Context, sightingID string, event sighting.EventType) ([]MatchedSignal, error) {
	sight, err := s.sightingRepo.GetByID(ctx, sightingID)
	if err != nil {
		return nil, fmt.Errorf("get sighting: %w", err)
	}

	signals, err := s.signalRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active signals: %w", err)
	}

	ec, err := s.buildContextForSightings(ctx, sight)
	if err != nil {
		return nil, err
	}

	candidates := evaluation.PreFilterSignals(sight, signals, event)
	matched := evaluation.EvaluateSighting(sight, candidates, event, ec)

	results := make([]MatchedSignal, 0, len(matched))
	for _, sig := range matched {
		results = append(results, MatchedSignal{
			Signal:     sig,
			MatchScore: evaluation.CalculateMatchScore(sig, sight),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	log.Info().
		Str("sighting_id", sightingID).
		Str("event", string(event)).
		Int("candidates", len(candidates)).
		Int("total_signals", len(signals)).
		Int("matched", len(results)).
		Msg("Dispatched sighting")

	return results, nil
}

// DetailedEvaluation runs the diagnostic evaluation of one sighting event
// against every signal, active or not, for debugging and preview tooling.
func (s *Service) DetailedEvaluation(ctx context.Context, sightingID string, event sighting.EventType) ([]evaluation.Evaluation, error) {
	sight, err := s.sightingRepo.GetByID(ctx, sightingID)
	if err != nil {
		return nil, fmt.Errorf("get sighting: %w", err)
	}

	signals, err := s.signalRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}

	ec, err := s.buildContextForSightings(ctx, sight)
	if err != nil {
		return nil, err
	}

	return evaluation.EvaluateSightingDetailed(sight, signals, event, ec), nil
}

// PreviewSignal returns the recent sightings a signal would have matched,
// for the authoring preview.
func (s *Service) PreviewSignal(ctx context.Context, signalID string, limit int) ([]*sighting.Sighting, error) {
	sig, err := s.signalRepo.GetByID(ctx, signalID)
	if err != nil {
		return nil, fmt.Errorf("get signal: %w", err)
	}

	recent, err := s.sightingRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sightings: %w", err)
	}

	ec, err := s.buildContextForSightings(ctx, recent...)
	if err != nil {
		return nil, err
	}

	return evaluation.EvaluateSignalFeed(recent, sig, ec), nil
}

// SweepScoreThresholds is the periodic batch flow for the score_threshold
// trigger: it pairs recent score movements with the active subscribed
// signals whose minimum-score condition was crossed upward, then confirms
// geography and the remaining conditions.
func (s *Service) SweepScoreThresholds(ctx context.Context, since time.Time) ([]ThresholdMatch, error) {
	all, err := s.signalRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}

	subscribed := evaluation.FindScoreThresholdSignals(all)
	if len(subscribed) == 0 {
		return nil, nil
	}

	changes, err := s.sightingRepo.ListScoreChanges(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list score changes: %w", err)
	}

	var matches []ThresholdMatch
	for _, change := range changes {
		sight, err := s.sightingRepo.GetByID(ctx, change.SightingID)
		if err != nil {
			log.Warn().Err(err).Str("sighting_id", change.SightingID).Msg("Skipping score change for missing sighting")
			continue
		}

		ec, err := s.buildContextForSightings(ctx, sight)
		if err != nil {
			return nil, err
		}

		for _, sig := range subscribed {
			threshold := scoreThreshold(sig)
			if threshold == nil {
				continue
			}
			if !evaluation.CrossedScoreThreshold(change.Current, change.Previous, *threshold) {
				continue
			}
			if evaluation.WouldMatch(sight, sig, ec) {
				matches = append(matches, ThresholdMatch{Signal: sig, Sighting: sight})
			}
		}
	}

	log.Info().
		Int("signals", len(subscribed)).
		Int("score_changes", len(changes)).
		Int("matches", len(matches)).
		Time("since", since).
		Msg("Score threshold sweep completed")

	return matches, nil
}

// scoreThreshold extracts the threshold a score_threshold signal watches:
// its minimum-score condition. Signals without one are skipped by the
// sweep.
func scoreThreshold(sig *signal.Signal) *float64 {
	if sig.Conditions == nil {
		return nil
	}
	return sig.Conditions.ScoreMin
}

func (s *Service) buildContextForSightings(ctx context.Context, sightings ...*sighting.Sighting) (*evaluation.Context, error) {
	seen := make(map[string]bool)
	var reporterIDs []string
	for _, sight := range sightings {
		if sight.ReporterID != "" && !seen[sight.ReporterID] {
			seen[sight.ReporterID] = true
			reporterIDs = append(reporterIDs, sight.ReporterID)
		}
	}
	return s.BuildEvaluationContext(ctx, reporterIDs)
}
