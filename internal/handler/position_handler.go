package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stratify/internal/model"
	"stratify/internal/service"
)

// PositionHandler handles position endpoints.
type PositionHandler struct {
	positionService service.PositionService
}

// NewPositionHandler creates a new position handler.
func NewPositionHandler(positionService service.PositionService) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// CreatePositionRequest represents a position creation request.
type CreatePositionRequest struct {
	PortfolioID  uint            `json:"portfolioID" validate:"required"`
	AssetID      uint            `json:"assetID" validate:"required"`
	Quantity     decimal.Decimal `json:"Quantity" swaggertype:"number"`
	AvgCostBasis decimal.Decimal `json:"AvgCostBasis" swaggertype:"number"`
}

// ListPositions godoc
// @Summary List positions
// @Tags positions
// @Produce json
// @Param portfolioID query int false "Portfolio ID"
// @Param assetID query int false "Asset ID"
// @Success 200 {object} Response{data=[]model.PositionView}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /position [get]
func (h *PositionHandler) ListPositions(c echo.Context) error {
	q := newQuery(c)
	filter := model.PositionFilter{PortfolioID: q.id("portfolioID"), AssetID: q.id("assetID")}
	if q.err != nil {
		return fail(c, q.err)
	}

	positions, err := h.positionService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, positions)
}

// GetPosition godoc
// @Summary Get position by id
// @Tags positions
// @Produce json
// @Param id path int true "Position ID"
// @Success 200 {object} Response{data=model.PositionDetail}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /position/{id} [get]
func (h *PositionHandler) GetPosition(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	position, err := h.positionService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, position)
}

// CreatePosition godoc
// @Summary Open a position
// @Description A portfolio holds at most one position per asset.
// @Tags positions
// @Accept json
// @Produce json
// @Param request body CreatePositionRequest true "Position data"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /position [post]
func (h *PositionHandler) CreatePosition(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("portfolioID", "assetID", "Quantity", "AvgCostBasis"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreatePositionRequest{
		PortfolioID:  f.id("portfolioID"),
		AssetID:      f.id("assetID"),
		Quantity:     f.decimal("Quantity"),
		AvgCostBasis: f.decimal("AvgCostBasis"),
	}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	position := model.Position{
		PortfolioID:  req.PortfolioID,
		AssetID:      req.AssetID,
		Quantity:     req.Quantity,
		AvgCostBasis: req.AvgCostBasis,
	}
	if err := h.positionService.Create(c.Request().Context(), &position); err != nil {
		return fail(c, err)
	}
	return created(c, "Position", "positionID", position.ID)
}

// UpdatePosition godoc
// @Summary Update position
// @Description Accepts any of Quantity, AvgCostBasis.
// @Tags positions
// @Accept json
// @Produce json
// @Param id path int true "Position ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /position/{id} [put]
func (h *PositionHandler) UpdatePosition(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.positionService.Update(c.Request().Context(), id, b); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("updated position %d", id)
	return done(c, "Position updated successfully")
}

// DeletePosition godoc
// @Summary Close a position
// @Tags positions
// @Produce json
// @Param id path int true "Position ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /position/{id} [delete]
func (h *PositionHandler) DeletePosition(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.positionService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("deleted position %d", id)
	return done(c, "Position deleted successfully")
}
