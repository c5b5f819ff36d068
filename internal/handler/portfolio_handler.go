package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stratify/internal/model"
	"stratify/internal/service"
)

// PortfolioHandler handles portfolio endpoints.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(portfolioService service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// CreatePortfolioRequest represents a portfolio creation request.
type CreatePortfolioRequest struct {
	Name        string `json:"Name" validate:"required,max=255"`
	Description string `json:"Description"`
	UserID      uint   `json:"userID" validate:"required"`
}

// ListPortfolios godoc
// @Summary List portfolios
// @Tags portfolios
// @Produce json
// @Param userID query int false "Owner user ID"
// @Success 200 {object} Response{data=[]model.PortfolioView}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /portfolio [get]
func (h *PortfolioHandler) ListPortfolios(c echo.Context) error {
	q := newQuery(c)
	filter := model.PortfolioFilter{UserID: q.id("userID")}
	if q.err != nil {
		return fail(c, q.err)
	}

	portfolios, err := h.portfolioService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, portfolios)
}

// GetPortfolio godoc
// @Summary Get portfolio with its positions
// @Tags portfolios
// @Produce json
// @Param id path int true "Portfolio ID"
// @Success 200 {object} Response{data=model.PortfolioDetail}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /portfolio/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	portfolio, err := h.portfolioService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, portfolio)
}

// CreatePortfolio godoc
// @Summary Create portfolio
// @Tags portfolios
// @Accept json
// @Produce json
// @Param request body CreatePortfolioRequest true "Portfolio data"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /portfolio [post]
func (h *PortfolioHandler) CreatePortfolio(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("Name", "userID"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreatePortfolioRequest{
		Name:        f.str("Name"),
		Description: f.str("Description"),
		UserID:      f.id("userID"),
	}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	portfolio := model.Portfolio{Name: req.Name, Description: req.Description, UserID: req.UserID}
	if err := h.portfolioService.Create(c.Request().Context(), &portfolio); err != nil {
		return fail(c, err)
	}
	return created(c, "Portfolio", "portfolioID", portfolio.ID)
}

// UpdatePortfolio godoc
// @Summary Update portfolio
// @Description Accepts any of Name, Description.
// @Tags portfolios
// @Accept json
// @Produce json
// @Param id path int true "Portfolio ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /portfolio/{id} [put]
func (h *PortfolioHandler) UpdatePortfolio(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.portfolioService.Update(c.Request().Context(), id, b); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("updated portfolio %d", id)
	return done(c, "Portfolio updated successfully")
}

// DeletePortfolio godoc
// @Summary Delete portfolio
// @Description Positions of the portfolio are not removed.
// @Tags portfolios
// @Produce json
// @Param id path int true "Portfolio ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /portfolio/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.portfolioService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("deleted portfolio %d", id)
	return done(c, "Portfolio deleted successfully")
}
