package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stratify/internal/model"
	"stratify/internal/service"
)

// AssetHandler handles asset endpoints.
type AssetHandler struct {
	assetService service.AssetService
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents an asset creation request.
type CreateAssetRequest struct {
	TickerSymbol string          `json:"TickerSymbol" validate:"required,max=16"`
	AssetName    string          `json:"AssetName" validate:"required"`
	AssetType    string          `json:"AssetType" validate:"required"`
	CurrentPrice decimal.Decimal `json:"CurrentPrice" swaggertype:"number"`
	SectorID     uint            `json:"sectorID" validate:"required"`
}

// ListAssets godoc
// @Summary List assets
// @Tags assets
// @Produce json
// @Param sectorID query int false "Sector ID"
// @Param ticker query string false "Ticker symbol"
// @Success 200 {object} Response{data=[]model.AssetView}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /asset [get]
func (h *AssetHandler) ListAssets(c echo.Context) error {
	q := newQuery(c)
	filter := model.AssetFilter{SectorID: q.id("sectorID"), Ticker: q.str("ticker")}
	if q.err != nil {
		return fail(c, q.err)
	}

	assets, err := h.assetService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, assets)
}

// GetAsset godoc
// @Summary Get asset by id
// @Tags assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} Response{data=model.AssetDetail}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /asset/{id} [get]
func (h *AssetHandler) GetAsset(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	asset, err := h.assetService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, asset)
}

// CreateAsset godoc
// @Summary Create asset
// @Tags assets
// @Accept json
// @Produce json
// @Param request body CreateAssetRequest true "Asset data"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /asset [post]
func (h *AssetHandler) CreateAsset(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("TickerSymbol", "AssetName", "AssetType", "CurrentPrice", "sectorID"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreateAssetRequest{
		TickerSymbol: f.str("TickerSymbol"),
		AssetName:    f.str("AssetName"),
		AssetType:    f.str("AssetType"),
		CurrentPrice: f.decimal("CurrentPrice"),
		SectorID:     f.id("sectorID"),
	}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	asset := model.Asset{
		TickerSymbol: req.TickerSymbol,
		AssetName:    req.AssetName,
		AssetType:    req.AssetType,
		CurrentPrice: req.CurrentPrice,
		SectorID:     req.SectorID,
	}
	if err := h.assetService.Create(c.Request().Context(), &asset); err != nil {
		return fail(c, err)
	}
	return created(c, "Asset", "assetID", asset.ID)
}

// UpdateAsset godoc
// @Summary Update asset
// @Description Accepts any of TickerSymbol, AssetName, AssetType, CurrentPrice, sectorID.
// @Tags assets
// @Accept json
// @Produce json
// @Param id path int true "Asset ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /asset/{id} [put]
func (h *AssetHandler) UpdateAsset(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.assetService.Update(c.Request().Context(), id, b); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("updated asset %d", id)
	return done(c, "Asset updated successfully")
}

// DeleteAsset godoc
// @Summary Delete asset
// @Tags assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /asset/{id} [delete]
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.assetService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("deleted asset %d", id)
	return done(c, "Asset deleted successfully")
}

// GetPriceHistory godoc
// @Summary Get asset price history
// @Tags assets
// @Produce json
// @Param id path int true "Asset ID"
// @Param start_date query string false "Earliest date (YYYY-MM-DD)"
// @Param end_date query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} Response{data=[]model.PriceHistory}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /asset/{id}/price-history [get]
func (h *AssetHandler) GetPriceHistory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	q := newQuery(c)
	date := q.dateRange("start_date", "end_date")
	if q.err != nil {
		return fail(c, q.err)
	}

	bars, err := h.assetService.PriceHistory(c.Request().Context(), id, date)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, bars)
}

// GetAssetsBySector godoc
// @Summary List the assets of a sector
// @Tags assets
// @Produce json
// @Param id path int true "Sector ID"
// @Success 200 {object} Response{data=model.SectorAssets}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /asset/sector/{id} [get]
func (h *AssetHandler) GetAssetsBySector(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	result, err := h.assetService.BySector(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}
