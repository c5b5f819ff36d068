package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	apperrors "stratify/internal/errors"
	"stratify/internal/model"
)

// Response is the success envelope shared by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// MessageResponse is the data of a write that returns no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

// created answers 201 with the generated id under idKey.
func created(c echo.Context, entity, idKey string, id uint) error {
	c.Logger().Infof("created %s %d", strings.ToLower(entity), id)
	return respond(c, http.StatusCreated, echo.Map{
		"message": entity + " created successfully",
		idKey:     id,
	})
}

func done(c echo.Context, message string) error {
	return respond(c, http.StatusOK, MessageResponse{Message: message})
}

// fail converts a domain error into the failure envelope.
func fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// validate runs the registered validator and reports the first failing field.
func validate(c echo.Context, req interface{}) error {
	err := c.Validate(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.InvalidField(verrs[0].Field())
	}
	return apperrors.NewValidationError("%s", err.Error())
}

func pathID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("Invalid id: %s", raw)
	}
	return uint(id), nil
}

// query parses optional query parameters, keeping the first failure.
type query struct {
	c   echo.Context
	err error
}

func newQuery(c echo.Context) *query {
	return &query{c: c}
}

func (q *query) invalid(name string) {
	if q.err == nil {
		q.err = apperrors.NewValidationError("Invalid value for parameter: %s", name)
	}
}

func (q *query) str(name string) string {
	return strings.TrimSpace(q.c.QueryParam(name))
}

func (q *query) id(name string) *uint {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		q.invalid(name)
		return nil
	}
	v := uint(id)
	return &v
}

func (q *query) time(name string) *time.Time {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	t, err := model.ParseTime(raw)
	if err != nil {
		q.invalid(name)
		return nil
	}
	return &t
}

func (q *query) dateRange(from, to string) model.DateRange {
	return model.DateRange{From: q.time(from), To: q.time(to)}
}

func (q *query) transactionType(name string) model.TransactionType {
	raw := q.str(name)
	if raw == "" {
		return ""
	}
	t, err := model.ParseTransactionType(raw)
	if err != nil {
		q.invalid(name)
		return ""
	}
	return t
}

// body is a JSON request object, read once and decoded key by key.
type body map[string]json.RawMessage

func readBody(c echo.Context) (body, error) {
	var b body
	if err := json.NewDecoder(c.Request().Body).Decode(&b); err != nil {
		return nil, apperrors.NewValidationError("Invalid JSON body")
	}
	if b == nil {
		b = body{}
	}
	return b, nil
}

// require reports the first of fields missing from the body.
func (b body) require(fields ...string) error {
	for _, f := range fields {
		if _, ok := b[f]; !ok {
			return apperrors.MissingField(f)
		}
	}
	return nil
}

func (b body) fields() *fields {
	return &fields{b: b}
}

// fields decodes body values with the model decoders, keeping the first failure.
type fields struct {
	b   body
	err error
}

func (f *fields) decode(key string, dec model.Decoder) (interface{}, bool) {
	raw, ok := f.b[key]
	if !ok || f.err != nil {
		return nil, false
	}
	v, err := dec(raw)
	if err != nil {
		f.err = apperrors.InvalidField(key)
		return nil, false
	}
	return v, true
}

func (f *fields) str(key string) string {
	if v, ok := f.decode(key, model.DecodeString); ok {
		return v.(string)
	}
	return ""
}

func (f *fields) id(key string) uint {
	if v, ok := f.decode(key, model.DecodeID); ok {
		return v.(uint)
	}
	return 0
}

func (f *fields) optionalID(key string) *uint {
	if raw, ok := f.b[key]; ok && string(raw) == "null" {
		return nil
	}
	if v, ok := f.decode(key, model.DecodeID); ok {
		id := v.(uint)
		return &id
	}
	return nil
}

func (f *fields) decimal(key string) decimal.Decimal {
	if v, ok := f.decode(key, model.DecodeDecimal); ok {
		return v.(decimal.Decimal)
	}
	return decimal.Zero
}

// time treats a null like an absent key and returns the zero time.
func (f *fields) time(key string) time.Time {
	if raw, ok := f.b[key]; ok && string(raw) == "null" {
		return time.Time{}
	}
	if v, ok := f.decode(key, model.DecodeTime); ok {
		return v.(time.Time)
	}
	return time.Time{}
}

func (f *fields) transactionType(key string) model.TransactionType {
	if v, ok := f.decode(key, model.DecodeTransactionType); ok {
		return v.(model.TransactionType)
	}
	return ""
}

func (f *fields) json(key string) datatypes.JSON {
	raw, ok := f.b[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}
