package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dpup/routegen/internal/lib/geo"
	"github.com/dpup/routegen/internal/lib/routing"
	"github.com/dpup/routegen/internal/services"
)

// RoutesHandler handles HTTP requests for route geometry operations.
type RoutesHandler struct {
	service *services.RoutesService
	logger  *zap.Logger
}

// NewRoutesHandler creates a new RoutesHandler.
func NewRoutesHandler(service *services.RoutesService, logger *zap.Logger) *RoutesHandler {
	return &RoutesHandler{service: service, logger: logger}
}

// RegisterRoutes registers all route endpoints on the given router group.
func (h *RoutesHandler) RegisterRoutes(r *gin.RouterGroup) {
	routes := r.Group("/api/v1/route")
	{
		routes.GET("", h.GenerateRoute)
		routes.GET("/compare", h.CompareRoutes)
		routes.GET("/speeds", h.SegmentSpeeds)
	}
}

// GenerateRoute handles GET /api/v1/route.
func (h *RoutesHandler) GenerateRoute(c *gin.Context) {
	origin, destination, ok := h.parseEndpoints(c)
	if !ok {
		return
	}

	interval := 0.0
	if raw := c.Query("interval_meters"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "interval_meters must be a positive number"})
			return
		}
		interval = parsed
	}

	result, err := h.service.GenerateRoute(c.Request.Context(), services.RouteRequest{
		Origin:         origin,
		Destination:    destination,
		IntervalMeters: interval,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"points":          result.Points,
		"count":           len(result.Points),
		"chosen_index":    result.ChosenIndex,
		"metrics":         result.Metrics,
		"interval_meters": result.IntervalMeters,
	})
}

// CompareRoutes handles GET /api/v1/route/compare.
func (h *RoutesHandler) CompareRoutes(c *gin.Context) {
	origin, destination, ok := h.parseEndpoints(c)
	if !ok {
		return
	}

	comparison, err := h.service.CompareRoutes(c.Request.Context(), origin, destination)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// SegmentSpeeds handles GET /api/v1/route/speeds.
func (h *RoutesHandler) SegmentSpeeds(c *gin.Context) {
	origin, destination, ok := h.parseEndpoints(c)
	if !ok {
		return
	}

	speeds, err := h.service.SegmentSpeeds(c.Request.Context(), origin, destination)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"segments": speeds})
}

// parseEndpoints reads the origin and destination query parameters,
// responding with 400 itself when they are missing or malformed.
func (h *RoutesHandler) parseEndpoints(c *gin.Context) (origin, destination geo.Point, ok bool) {
	origin, err := parseLatLonPair(c.Query("origin"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin: " + err.Error()})
		return geo.Point{}, geo.Point{}, false
	}
	destination, err = parseLatLonPair(c.Query("destination"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination: " + err.Error()})
		return geo.Point{}, geo.Point{}, false
	}
	return origin, destination, true
}

// parseLatLonPair parses a "lat,lon" query value into a validated point.
func parseLatLonPair(s string) (geo.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Point{}, errors.New("expected lat,lon pair")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Point{}, errors.New("invalid latitude")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Point{}, errors.New("invalid longitude")
	}
	return geo.NewPoint(lat, lon)
}

// writeError maps pipeline errors onto HTTP statuses: no route is a 404,
// everything else an upstream failure.
func (h *RoutesHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routing.ErrNoRoutes):
		c.JSON(http.StatusNotFound, gin.H{"error": "no routes found between the given points"})
	case errors.Is(err, routing.ErrGeometryTooShort):
		c.JSON(http.StatusBadGateway, gin.H{"error": "route geometry too short to densify"})
	default:
		h.logger.Error("route request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate route"})
	}
}
