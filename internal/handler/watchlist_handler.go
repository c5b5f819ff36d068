package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stratify/internal/model"
	"stratify/internal/service"
)

// WatchlistHandler handles watchlist endpoints.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(watchlistService service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// CreateWatchlistRequest represents a watchlist entry request.
type CreateWatchlistRequest struct {
	UserID  uint `json:"userID" validate:"required"`
	AssetID uint `json:"assetID" validate:"required"`
}

// ListWatchlists godoc
// @Summary List watchlist entries
// @Tags watchlists
// @Produce json
// @Param userID query int false "User ID"
// @Param assetID query int false "Asset ID"
// @Success 200 {object} Response{data=[]model.Watchlist}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) ListWatchlists(c echo.Context) error {
	q := newQuery(c)
	filter := model.WatchlistFilter{UserID: q.id("userID"), AssetID: q.id("assetID")}
	if q.err != nil {
		return fail(c, q.err)
	}

	items, err := h.watchlistService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, items)
}

// GetWatchlist godoc
// @Summary Get watchlist entry by id
// @Tags watchlists
// @Produce json
// @Param id path int true "Watchlist ID"
// @Success 200 {object} Response{data=model.Watchlist}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /watchlist/{id} [get]
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	item, err := h.watchlistService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, item)
}

// CreateWatchlist godoc
// @Summary Add an asset to a user's watchlist
// @Tags watchlists
// @Accept json
// @Produce json
// @Param request body CreateWatchlistRequest true "Watchlist entry"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) CreateWatchlist(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("userID", "assetID"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreateWatchlistRequest{UserID: f.id("userID"), AssetID: f.id("assetID")}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	item := model.Watchlist{UserID: req.UserID, AssetID: req.AssetID}
	if err := h.watchlistService.Create(c.Request().Context(), &item); err != nil {
		return fail(c, err)
	}
	return created(c, "Watchlist item", "watchlistID", item.ID)
}

// UpdateWatchlist godoc
// @Summary Update watchlist entry
// @Description Accepts assetID.
// @Tags watchlists
// @Accept json
// @Produce json
// @Param id path int true "Watchlist ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /watchlist/{id} [put]
func (h *WatchlistHandler) UpdateWatchlist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.watchlistService.Update(c.Request().Context(), id, b); err != nil {
		return fail(c, err)
	}
	return done(c, "Watchlist item updated successfully")
}

// DeleteWatchlist godoc
// @Summary Remove watchlist entry
// @Tags watchlists
// @Produce json
// @Param id path int true "Watchlist ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /watchlist/{id} [delete]
func (h *WatchlistHandler) DeleteWatchlist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.watchlistService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return done(c, "Watchlist item deleted successfully")
}
