package feed

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmcferran/sightline/internal/api/response"
	"github.com/jmcferran/sightline/internal/domain/geo"
	"github.com/jmcferran/sightline/internal/engine/ranking"
)

// RankingService is what the handler needs from the ranking use-case layer.
type RankingService interface {
	RankFeed(ctx context.Context, viewerID string, location *geo.Point) ([]ranking.RankedSignal, error)
}

// Handler serves the ranked feed endpoint.
type Handler struct {
	service      RankingService
	defaultLimit int
}

// NewHandler creates the handler.
func NewHandler(service RankingService, defaultLimit int) *Handler {
	return &Handler{service: service, defaultLimit: defaultLimit}
}

// Feed handles GET /api/v1/feed.
// The viewer comes from the X-Viewer-ID header; location is the optional
// lat/lng query pair and only influences ranking when the viewer opted in.
func (h *Handler) Feed(c *gin.Context) {
	viewerID := c.GetHeader("X-Viewer-ID")
	if viewerID == "" {
		response.BadRequest(c, "X-Viewer-ID header is required")
		return
	}

	location, ok := parseLocation(c)
	if !ok {
		return
	}

	limit := h.defaultLimit
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

	ranked, err := h.service.RankFeed(c.Request.Context(), viewerID, location)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	response.SuccessList(c, ranked, len(ranked))
}

// parseLocation reads the optional lat/lng pair. Both or neither must be
// present. Writes the error response itself on invalid input.
func parseLocation(c *gin.Context) (*geo.Point, bool) {
	rawLat := c.Query("lat")
	rawLng := c.Query("lng")

	if rawLat == "" && rawLng == "" {
		return nil, true
	}
	if rawLat == "" || rawLng == "" {
		response.BadRequest(c, "lat and lng must be provided together")
		return nil, false
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		response.BadRequest(c, "lat must be a number")
		return nil, false
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		response.BadRequest(c, "lng must be a number")
		return nil, false
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		response.BadRequest(c, "lat/lng out of range")
		return nil, false
	}

	return &geo.Point{Lat: lat, Lng: lng}, true
}
