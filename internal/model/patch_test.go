package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stratify/internal/errors"
)

func body(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var b map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &b))
	return b
}

func TestPatchSchema_Columns(t *testing.T) {
	cols, err := AssetPatch.Columns(body(t, `{"TickerSymbol":"MSFT","CurrentPrice":412.5,"sectorID":"3","ignored":true}`))
	require.NoError(t, err)

	assert.Len(t, cols, 3)
	assert.Equal(t, "MSFT", cols["ticker_symbol"])
	assert.True(t, decimal.RequireFromString("412.5").Equal(cols["current_price"].(decimal.Decimal)))
	assert.Equal(t, uint(3), cols["sector_id"])
}

func TestPatchSchema_NoValidFields(t *testing.T) {
	_, err := PortfolioPatch.Columns(body(t, `{"userID":4,"dateCreated":"2024-01-01"}`))
	assert.ErrorIs(t, err, apperrors.ErrNoValidFields)
}

func TestPatchSchema_InvalidValue(t *testing.T) {
	_, err := PositionPatch.Columns(body(t, `{"Quantity":"ten"}`))

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid value for field: Quantity", verr.Message)
}

func TestDecodeID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{`5`, 5, false},
		{`"12"`, 12, false},
		{`0`, 0, true},
		{`-1`, 0, true},
		{`1.5`, 0, true},
		{`true`, 0, true},
		{`null`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeID(json.RawMessage(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTransactionType(t *testing.T) {
	got, err := DecodeTransactionType(json.RawMessage(`"BUY"`))
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeBuy, got)

	_, err = DecodeTransactionType(json.RawMessage(`"hold"`))
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-10-25")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 25, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTime("2024-10-25 09:30:00")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())

	_, err = ParseTime("25/10/2024")
	assert.Error(t, err)
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(Position{Quantity: decimal.NewFromInt(10), AvgCostBasis: decimal.RequireFromString("100.5")})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Quantity":10`)
	assert.Contains(t, string(out), `"AvgCostBasis":100.5`)
}

func TestPatchSchema_TrimsAndRequiresText(t *testing.T) {
	cols, err := UserPatch.Columns(body(t, `{"Name":"  Dana  ","Email":" dana@example.com "}`))
	require.NoError(t, err)
	assert.Equal(t, "Dana", cols["name"])
	assert.Equal(t, "dana@example.com", cols["email"])

	tests := []struct {
		name   string
		schema PatchSchema
		in     string
		field  string
	}{
		{"empty ticker", AssetPatch, `{"TickerSymbol":""}`, "TickerSymbol"},
		{"long ticker", AssetPatch, `{"TickerSymbol":"ABCDEFGHIJKLMNOPQ"}`, "TickerSymbol"},
		{"blank portfolio name", PortfolioPatch, `{"Name":"   "}`, "Name"},
		{"null user name", UserPatch, `{"Name":null}`, "Name"},
		{"malformed email", UserPatch, `{"Email":"dana"}`, "Email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.schema.Columns(body(t, tt.in))

			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Invalid value for field: "+tt.field, verr.Message)
		})
	}
}

func TestPatchSchema_OptionalTextMayBeCleared(t *testing.T) {
	cols, err := PortfolioPatch.Columns(body(t, `{"Description":null}`))
	require.NoError(t, err)
	assert.Equal(t, "", cols["description"])
}
