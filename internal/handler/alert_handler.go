package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stratify/internal/model"
	"stratify/internal/service"
)

// AlertHandler handles alert endpoints.
type AlertHandler struct {
	alertService service.AlertService
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(alertService service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// CreateAlertRequest represents an alert creation request.
type CreateAlertRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	AlertType   string `json:"alertType" validate:"required,max=50"`
	Severity    string `json:"severity" validate:"required,max=20"`
	Message     string `json:"message"`
	PortfolioID uint   `json:"portfolioID" validate:"required"`
}

// ListAlerts godoc
// @Summary List alerts
// @Tags alerts
// @Produce json
// @Param portfolioID query int false "Portfolio ID"
// @Param severity query string false "Severity"
// @Success 200 {object} Response{data=[]model.Alert}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /alert [get]
func (h *AlertHandler) ListAlerts(c echo.Context) error {
	q := newQuery(c)
	filter := model.AlertFilter{PortfolioID: q.id("portfolioID"), Severity: q.str("severity")}
	if q.err != nil {
		return fail(c, q.err)
	}

	alerts, err := h.alertService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, alerts)
}

// GetAlert godoc
// @Summary Get alert by id
// @Tags alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} Response{data=model.Alert}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /alert/{id} [get]
func (h *AlertHandler) GetAlert(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	alert, err := h.alertService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, alert)
}

// CreateAlert godoc
// @Summary Raise an alert
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body CreateAlertRequest true "Alert data"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /alert [post]
func (h *AlertHandler) CreateAlert(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("name", "alertType", "severity", "portfolioID", "message"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreateAlertRequest{
		Name:        f.str("name"),
		AlertType:   f.str("alertType"),
		Severity:    f.str("severity"),
		Message:     f.str("message"),
		PortfolioID: f.id("portfolioID"),
	}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	alert := model.Alert{
		Name:        req.Name,
		AlertType:   req.AlertType,
		Severity:    req.Severity,
		Message:     req.Message,
		PortfolioID: req.PortfolioID,
	}
	if err := h.alertService.Create(c.Request().Context(), &alert); err != nil {
		return fail(c, err)
	}
	return created(c, "Alert", "alertID", alert.ID)
}
