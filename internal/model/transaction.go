package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the side of a recorded trade.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// ParseTransactionType accepts "buy" or "sell" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if t != TransactionTypeBuy && t != TransactionTypeSell {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Transaction records a buy or sell. It is a ledger fact only: recording one
// does not move the matching Position or any cash balance.
type Transaction struct {
	ID              uint            `json:"transactionID" gorm:"primaryKey"`
	PortfolioID     uint            `json:"portfolioID" gorm:"not null;index"`
	AssetID         uint            `json:"assetID" gorm:"not null;index"`
	Type            TransactionType `json:"transactionType" gorm:"column:transaction_type;type:varchar(10);not null"`
	Quantity        decimal.Decimal `json:"quantity" gorm:"type:decimal(20,6);not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(20,6);not null"`
	TransactionDate time.Time       `json:"transactionDate" gorm:"not null;index"`
	Notes           string          `json:"notes" gorm:"type:text"`
}

// TransactionPatch lists the transaction fields a PUT may change.
var TransactionPatch = PatchSchema{
	{Key: "transactionType", Column: "transaction_type", Decode: DecodeTransactionType},
	{Key: "quantity", Column: "quantity", Decode: DecodeDecimal},
	{Key: "price", Column: "price", Decode: DecodeDecimal},
	{Key: "transactionDate", Column: "transaction_date", Decode: DecodeTime},
	{Key: "notes", Column: "notes", Decode: DecodeString},
}
