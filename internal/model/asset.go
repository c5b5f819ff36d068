package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset represents a tradable instrument.
type Asset struct {
	ID           uint            `json:"assetID" gorm:"primaryKey"`
	TickerSymbol string          `json:"TickerSymbol" gorm:"size:16;not null;index"`
	AssetName    string          `json:"AssetName" gorm:"size:255;not null"`
	AssetType    string          `json:"AssetType" gorm:"size:50;not null"`
	CurrentPrice decimal.Decimal `json:"CurrentPrice" gorm:"type:decimal(20,6);not null"`
	SectorID     uint            `json:"sectorID" gorm:"not null;index"`
}

// AssetView is an asset joined with its sector name.
type AssetView struct {
	Asset
	SectorName string `json:"sectorName"`
}

// AssetDetail is the single-asset read, carrying the sector description as well.
type AssetDetail struct {
	AssetView
	SectorDescription string `json:"sectorDescription"`
}

// SectorAssets is a sector together with every asset it contains.
type SectorAssets struct {
	Sector Sector      `json:"sector"`
	Assets []AssetView `json:"assets"`
}

// PriceHistory is one daily bar for an asset.
type PriceHistory struct {
	ID         uint            `json:"priceID" gorm:"primaryKey"`
	AssetID    uint            `json:"assetID" gorm:"not null;index"`
	Date       time.Time       `json:"Date" gorm:"not null;index"`
	OpenPrice  decimal.Decimal `json:"openPrice" gorm:"type:decimal(20,6)"`
	ClosePrice decimal.Decimal `json:"closePrice" gorm:"type:decimal(20,6)"`
	Volume     int64           `json:"Volume"`
}

// AssetPatch lists the asset fields a PUT may change.
var AssetPatch = PatchSchema{
	{Key: "TickerSymbol", Column: "ticker_symbol", Decode: DecodeStringWith("required,max=16")},
	{Key: "AssetName", Column: "asset_name", Decode: DecodeStringWith("required")},
	{Key: "AssetType", Column: "asset_type", Decode: DecodeStringWith("required")},
	{Key: "CurrentPrice", Column: "current_price", Decode: DecodeDecimal},
	{Key: "sectorID", Column: "sector_id", Decode: DecodeID},
}
