package signals

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmcferran/sightline/internal/api/response"
	"github.com/jmcferran/sightline/internal/domain/sighting"
	"github.com/jmcferran/sightline/internal/domain/signal"
	"github.com/jmcferran/sightline/internal/engine/evaluation"
	signalsvc "github.com/jmcferran/sightline/internal/service/signals"
)

// EvaluationService is what the handler needs from the evaluation use-case
// layer.
type EvaluationService interface {
	DispatchSighting(ctx context.Context, sightingID string, event sighting.EventType) ([]signalsvc.MatchedSignal, error)
	DetailedEvaluation(ctx context.Context, sightingID string, event sighting.EventType) ([]evaluation.Evaluation, error)
	PreviewSignal(ctx context.Context, signalID string, limit int) ([]*sighting.Sighting, error)
	SweepScoreThresholds(ctx context.Context, since time.Time) ([]signalsvc.ThresholdMatch, error)
}

// Handler serves the signal evaluation endpoints.
type Handler struct {
	service      EvaluationService
	previewLimit int
	sweepWindow  time.Duration
}

// NewHandler creates the handler.
func NewHandler(service EvaluationService, previewLimit int, sweepWindow time.Duration) *Handler {
	return &Handler{
		service:      service,
		previewLimit: previewLimit,
		sweepWindow:  sweepWindow,
	}
}

var validEvents = map[sighting.EventType]bool{
	sighting.EventNewSighting:       true,
	sighting.EventSightingConfirmed: true,
	sighting.EventSightingDisputed:  true,
	sighting.EventScoreThreshold:    true,
}

// EvaluateRequest is the body of POST /api/v1/signals/evaluate.
type EvaluateRequest struct {
	SightingID string `json:"sighting_id" binding:"required"`
	Event      string `json:"event" binding:"required"`
}

// Dispatch handles POST /api/v1/sightings/:id/dispatch.
// It evaluates one sighting event against all active signals and returns
// the matches ordered by specificity.
func (h *Handler) Dispatch(c *gin.Context) {
	sightingID := c.Param("id")

	event := sighting.EventType(c.DefaultQuery("event", string(sighting.EventNewSighting)))
	if !validEvents[event] {
		response.BadRequest(c, "Unknown event type: "+string(event))
		return
	}

	matches, err := h.service.DispatchSighting(c.Request.Context(), sightingID, event)
	if err != nil {
		if errors.Is(err, sighting.ErrSightingNotFound) {
			response.NotFound(c, "Sighting not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.SuccessList(c, matches, len(matches))
}

// Evaluate handles POST /api/v1/signals/evaluate.
// It returns one verdict per signal, matched or not, with the reason.
func (h *Handler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "sighting_id and event are required")
		return
	}

	event := sighting.EventType(req.Event)
	if !validEvents[event] {
		response.BadRequest(c, "Unknown event type: "+req.Event)
		return
	}

	evals, err := h.service.DetailedEvaluation(c.Request.Context(), req.SightingID, event)
	if err != nil {
		if errors.Is(err, sighting.ErrSightingNotFound) {
			response.NotFound(c, "Sighting not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.SuccessList(c, evals, len(evals))
}

// Preview handles GET /api/v1/signals/:id/preview.
// It returns the recent sightings the signal would have matched.
func (h *Handler) Preview(c *gin.Context) {
	signalID := c.Param("id")

	limit := h.previewLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(c, "limit must be a positive integer")
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	matched, err := h.service.PreviewSignal(c.Request.Context(), signalID, limit)
	if err != nil {
		if errors.Is(err, signal.ErrSignalNotFound) {
			response.NotFound(c, "Signal not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.SuccessList(c, matched, len(matched))
}

// Sweep handles POST /api/v1/signals/sweep.
// It runs the score-threshold sweep over the recent score movements.
func (h *Handler) Sweep(c *gin.Context) {
	since := time.Now().Add(-h.sweepWindow)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "since must be RFC3339")
			return
		}
		since = parsed
	}

	matches, err := h.service.SweepScoreThresholds(c.Request.Context(), since)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.SuccessList(c, matches, len(matches))
}
