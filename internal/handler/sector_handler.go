package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stratify/internal/model"
	"stratify/internal/service"
)

// SectorHandler handles sector endpoints.
type SectorHandler struct {
	sectorService service.SectorService
}

// NewSectorHandler creates a new sector handler.
func NewSectorHandler(sectorService service.SectorService) *SectorHandler {
	return &SectorHandler{sectorService: sectorService}
}

// CreateSectorRequest represents a sector creation request.
type CreateSectorRequest struct {
	Name        string `json:"sectorName" validate:"required"`
	Description string `json:"sectorDescription"`
}

// ListSectors godoc
// @Summary List sectors
// @Tags sectors
// @Produce json
// @Success 200 {object} Response{data=[]model.Sector}
// @Failure 500 {object} errors.ErrorResponse
// @Router /sector [get]
func (h *SectorHandler) ListSectors(c echo.Context) error {
	sectors, err := h.sectorService.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, sectors)
}

// GetSector godoc
// @Summary Get sector by id
// @Tags sectors
// @Produce json
// @Param id path int true "Sector ID"
// @Success 200 {object} Response{data=model.Sector}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sector/{id} [get]
func (h *SectorHandler) GetSector(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	sector, err := h.sectorService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, sector)
}

// CreateSector godoc
// @Summary Create sector
// @Tags sectors
// @Accept json
// @Produce json
// @Param request body CreateSectorRequest true "Sector data"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sector [post]
func (h *SectorHandler) CreateSector(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("sectorName"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreateSectorRequest{Name: f.str("sectorName"), Description: f.str("sectorDescription")}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	sector := model.Sector{Name: req.Name, Description: req.Description}
	if err := h.sectorService.Create(c.Request().Context(), &sector); err != nil {
		return fail(c, err)
	}
	return created(c, "Sector", "sectorID", sector.ID)
}
