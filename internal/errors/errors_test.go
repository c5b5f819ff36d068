package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing field", MissingField("Name"), http.StatusBadRequest, "Missing required field: Name"},
		{"wrapped validation", fmt.Errorf("create: %w", InvalidField("Quantity")), http.StatusBadRequest, "Invalid value for field: Quantity"},
		{"duplicate position", fmt.Errorf("insert: %w", ErrPositionExists), http.StatusBadRequest, "Position already exists for this portfolio and asset"},
		{"no valid fields", ErrNoValidFields, http.StatusBadRequest, "No valid fields to update"},
		{"asset not found", ErrAssetNotFound, http.StatusNotFound, "Asset not found"},
		{"wrapped portfolio not found", fmt.Errorf("lookup: %w", ErrPortfolioNotFound), http.StatusNotFound, "Portfolio not found"},
		{"storage failure", errors.New("Error 1146: Table 'Asset' doesn't exist"), http.StatusInternalServerError, "Error 1146: Table 'Asset' doesn't exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.Message)

			resp := httpErr.ToErrorResponse()
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestMapErrorToHTTP_Nil(t *testing.T) {
	assert.Nil(t, MapErrorToHTTP(nil))
}
