package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stratify/internal/model"
	"stratify/internal/service"
)

// TransactionHandler handles transaction ledger endpoints.
type TransactionHandler struct {
	transactionService service.TransactionService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents a transaction creation request.
type CreateTransactionRequest struct {
	PortfolioID     uint                  `json:"portfolioID" validate:"required"`
	AssetID         uint                  `json:"assetID" validate:"required"`
	Type            model.TransactionType `json:"transactionType" validate:"oneof=buy sell" enums:"buy,sell"`
	Quantity        decimal.Decimal       `json:"quantity" swaggertype:"number"`
	Price           decimal.Decimal       `json:"price" swaggertype:"number"`
	TransactionDate time.Time             `json:"transactionDate"`
	Notes           string                `json:"notes"`
}

// ListTransactions godoc
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param portfolioID query int false "Portfolio ID"
// @Param assetID query int false "Asset ID"
// @Param transactionType query string false "buy or sell"
// @Param startDate query string false "Earliest transaction date"
// @Param endDate query string false "Latest transaction date"
// @Success 200 {object} Response{data=[]model.Transaction}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transaction [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	q := newQuery(c)
	filter := model.TransactionFilter{
		PortfolioID: q.id("portfolioID"),
		AssetID:     q.id("assetID"),
		Type:        q.transactionType("transactionType"),
		Date:        q.dateRange("startDate", "endDate"),
	}
	if q.err != nil {
		return fail(c, q.err)
	}

	transactions, err := h.transactionService.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, transactions)
}

// GetTransaction godoc
// @Summary Get transaction by id
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} Response{data=model.Transaction}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transaction/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	transaction, err := h.transactionService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, transaction)
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Description Recording a transaction does not change the matching position.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction data"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transaction [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := b.require("portfolioID", "assetID", "transactionType", "quantity", "price"); err != nil {
		return fail(c, err)
	}

	f := b.fields()
	req := CreateTransactionRequest{
		PortfolioID:     f.id("portfolioID"),
		AssetID:         f.id("assetID"),
		Type:            f.transactionType("transactionType"),
		Quantity:        f.decimal("quantity"),
		Price:           f.decimal("price"),
		TransactionDate: f.time("transactionDate"),
		Notes:           f.str("notes"),
	}
	if f.err != nil {
		return fail(c, f.err)
	}
	if err := validate(c, &req); err != nil {
		return fail(c, err)
	}

	transaction := model.Transaction{
		PortfolioID:     req.PortfolioID,
		AssetID:         req.AssetID,
		Type:            req.Type,
		Quantity:        req.Quantity,
		Price:           req.Price,
		TransactionDate: req.TransactionDate,
		Notes:           req.Notes,
	}
	if err := h.transactionService.Create(c.Request().Context(), &transaction); err != nil {
		return fail(c, err)
	}
	return created(c, "Transaction", "transactionID", transaction.ID)
}

// UpdateTransaction godoc
// @Summary Update transaction
// @Description Accepts any of transactionType, quantity, price, transactionDate, notes.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transaction/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	b, err := readBody(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.transactionService.Update(c.Request().Context(), id, b); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("updated transaction %d", id)
	return done(c, "Transaction updated successfully")
}

// DeleteTransaction godoc
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /transaction/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.transactionService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	c.Logger().Infof("deleted transaction %d", id)
	return done(c, "Transaction deleted successfully")
}
