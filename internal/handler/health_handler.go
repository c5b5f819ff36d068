package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "stratify/internal/errors"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness of the database and cache.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// HealthResponse is the data of a successful health check.
type HealthResponse struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} Response{data=HealthResponse}
// @Failure 503 {object} errors.ErrorResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.db.Ping(ctx); err != nil {
		c.Logger().Errorf("health: database: %v", err)
		httpErr := apperrors.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	status := HealthResponse{Database: "ok", Cache: "ok"}
	if err := h.cache.Ping(ctx); err != nil {
		// the cache fails safe, so an outage only degrades the response
		status.Cache = "unavailable"
	}
	return respond(c, http.StatusOK, status)
}
