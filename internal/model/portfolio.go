package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio is a named collection of positions owned by a user.
type Portfolio struct {
	ID          uint      `json:"portfolioID" gorm:"primaryKey"`
	Name        string    `json:"Name" gorm:"size:255;not null"`
	Description string    `json:"Description" gorm:"type:text"`
	DateCreated time.Time `json:"dateCreated" gorm:"not null;index"`
	UserID      uint      `json:"userID" gorm:"not null;index"`
}

// PortfolioView is a portfolio joined with its owner's name.
type PortfolioView struct {
	Portfolio
	UserName string `json:"userName"`
}

// PortfolioDetail is the single-portfolio read with its positions attached.
type PortfolioDetail struct {
	PortfolioView
	Positions []PositionView `json:"positions"`
}

// Position is a holding of one asset inside one portfolio.
// The (portfolio, asset) pair is unique.
type Position struct {
	ID           uint            `json:"positionID" gorm:"primaryKey"`
	PortfolioID  uint            `json:"portfolioID" gorm:"not null;uniqueIndex:idx_position_portfolio_asset"`
	AssetID      uint            `json:"assetID" gorm:"not null;uniqueIndex:idx_position_portfolio_asset"`
	Quantity     decimal.Decimal `json:"Quantity" gorm:"type:decimal(20,6);not null"`
	AvgCostBasis decimal.Decimal `json:"AvgCostBasis" gorm:"type:decimal(20,6);not null"`
}

// PositionView is a position joined with its asset and portfolio display fields.
type PositionView struct {
	Position
	TickerSymbol  string          `json:"TickerSymbol"`
	AssetName     string          `json:"AssetName"`
	AssetType     string          `json:"AssetType"`
	CurrentPrice  decimal.Decimal `json:"CurrentPrice"`
	PortfolioName string          `json:"portfolioName,omitempty"`
}

// PositionDetail is the single-position read.
type PositionDetail struct {
	PositionView
	PortfolioDescription string `json:"portfolioDescription"`
}

// PortfolioPatch lists the portfolio fields a PUT may change.
var PortfolioPatch = PatchSchema{
	{Key: "Name", Column: "name", Decode: DecodeStringWith("required,max=255")},
	{Key: "Description", Column: "description", Decode: DecodeString},
}

// PositionPatch lists the position fields a PUT may change.
var PositionPatch = PatchSchema{
	{Key: "Quantity", Column: "quantity", Decode: DecodeDecimal},
	{Key: "AvgCostBasis", Column: "avg_cost_basis", Decode: DecodeDecimal},
}
