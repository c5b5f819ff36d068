package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stratify/internal/model"
	"stratify/internal/service"
)

// ScenarioHandler handles scenario result endpoints.
type ScenarioHandler struct {
	scenarioService service.ScenarioService
}

// NewScenarioHandler creates a new scenario handler.
func NewScenarioHandler(scenarioService service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// CreateScenarioRequest represents a scenario result submission.
type CreateScenarioRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	ScenarioType string          `json:"scenarioType" validate:"required,max=50"`
	PortfolioID  uint            `json:"portfolioID" validate:"required"`
	ImpactPct    decimal.Decimal `json:"impactPct" swaggertype:"number"`
}

// ListScenarios godoc
// @Summary List scenario results
// @Tags scenarios
// @Produce json
// @Param portfolioID query int false "Portfolio ID"
// @Param scenarioType query string false "Scenario type"
// @Success 200 {object} Response{data=[]model.ScenarioResult}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /scenario [get]
func (h *ScenarioHandler) ListScenarios(c echo.Context) error {
	q := newQuery(c)
	filter := model.ScenarioFilter{PortfolioID: q.id("portfolioID"), ScenarioType: q.str("scenarioType")}
	if q.err != nil {
		return fail(c, q.err)
	}

	results, err := h.scenarioService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, results)
}

// GetScenario godoc
// @Summary Get scenario result by id
// @Tags scenarios
// @Produce json
// @Param id path int true "Scenario ID"
// @Success 200 {object} Response{data=model.ScenarioResult}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /scenario/{id} [get]
func (h *ScenarioHandler) GetScenario(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	result, err := h.scenarioService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}

// CreateScenario godoc
// @Summary Store a scenario result
// @Tags scenarios
// @Accept json
// @Produce json
// @Param request body CreateScenarioRequest true "Scenario result"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /scenario [post]
func (h *ScenarioHandler) CreateScenario(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("name", "scenarioType", "portfolioID", "impactPct"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreateScenarioRequest{
		Name:         f.str("name"),
		ScenarioType: f.str("scenarioType"),
		PortfolioID:  f.id("portfolioID"),
		ImpactPct:    f.decimal("impactPct"),
	}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	result := model.ScenarioResult{
		Name:         req.Name,
		ScenarioType: req.ScenarioType,
		PortfolioID:  req.PortfolioID,
		ImpactPct:    req.ImpactPct,
	}
	if err := h.scenarioService.Create(c.Request().Context(), &result); err != nil {
		return fail(c, err)
	}
	return created(c, "Scenario", "scenarioID", result.ID)
}
