package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"stratify/internal/model"
	"stratify/internal/service"
)

// AuditHandler handles audit trail endpoints.
type AuditHandler struct {
	auditService service.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// CreateAuditEventRequest represents an audit event submission.
type CreateAuditEventRequest struct {
	EventType string         `json:"eventType" validate:"required,max=50"`
	UserID    *uint          `json:"userID" validate:"omitempty,gt=0"`
	Details   datatypes.JSON `json:"details" swaggertype:"object"`
}

// ListAuditEvents godoc
// @Summary List audit events
// @Tags audit
// @Produce json
// @Param startDate query string false "Earliest event"
// @Param endDate query string false "Latest event"
// @Param eventType query string false "Event type"
// @Param userID query int false "User ID"
// @Success 200 {object} Response{data=[]model.AuditEvent}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /audit/events [get]
func (h *AuditHandler) ListAuditEvents(c echo.Context) error {
	q := newQuery(c)
	filter := model.AuditFilter{
		CreatedAt: q.dateRange("startDate", "endDate"),
		EventType: q.str("eventType"),
		UserID:    q.id("userID"),
	}
	if q.err != nil {
		return fail(c, q.err)
	}

	events, err := h.auditService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, events)
}

// GetAuditEvent godoc
// @Summary Get audit event by id
// @Tags audit
// @Produce json
// @Param id path int true "Audit event ID"
// @Success 200 {object} Response{data=model.AuditEvent}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /audit/events/{id} [get]
func (h *AuditHandler) GetAuditEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	event, err := h.auditService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, event)
}

// CreateAuditEvent godoc
// @Summary Record an audit event
// @Tags audit
// @Accept json
// @Produce json
// @Param request body CreateAuditEventRequest true "Audit event"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /audit/events [post]
func (h *AuditHandler) CreateAuditEvent(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("eventType"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreateAuditEventRequest{
		EventType: f.str("eventType"),
		UserID:    f.optionalID("userID"),
		Details:   f.json("details"),
	}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	event := model.AuditEvent{EventType: req.EventType, UserID: req.UserID, Details: req.Details}
	if err := h.auditService.Record(c.Request().Context(), &event); err != nil {
		return fail(c, err)
	}
	return created(c, "Audit event", "auditID", event.ID)
}
