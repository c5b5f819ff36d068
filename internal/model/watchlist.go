package model

import "time"

// Watchlist is one asset a user follows.
type Watchlist struct {
	ID        uint      `json:"watchlistID" gorm:"primaryKey"`
	UserID    uint      `json:"userID" gorm:"not null;index"`
	AssetID   uint      `json:"assetID" gorm:"not null;index"`
	AddedDate time.Time `json:"addedDate" gorm:"not null;index"`
}

// WatchlistPatch lists the watchlist fields a PUT may change.
var WatchlistPatch = PatchSchema{
	{Key: "assetID", Column: "asset_id", Decode: DecodeID},
}
