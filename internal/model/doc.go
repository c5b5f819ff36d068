// Package model declares the persisted entities, their read views and the
// allow-listed field schemas used for partial updates.
//
// JSON names follow the MySQL column names of the portfolio schema, which the
// dashboard consumes directly.
package model

import "github.com/shopspring/decimal"

func init() {
	// Prices and quantities travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
