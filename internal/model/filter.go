package model

import "time"

// DateRange bounds a timestamp column. Both ends are inclusive and optional.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// AssetFilter narrows an asset listing.
type AssetFilter struct {
	SectorID *uint
	Ticker   string
}

// PortfolioFilter narrows a portfolio listing.
type PortfolioFilter struct {
	UserID *uint
}

// PositionFilter narrows a position listing.
type PositionFilter struct {
	PortfolioID *uint
	AssetID     *uint
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	PortfolioID *uint
	AssetID     *uint
	Type        TransactionType
	Date        DateRange
}

// UserFilter narrows a user listing.
type UserFilter struct {
	Role string
}

// WatchlistFilter narrows a watchlist listing.
type WatchlistFilter struct {
	UserID  *uint
	AssetID *uint
}

// AlertFilter narrows an alert listing.
type AlertFilter struct {
	PortfolioID *uint
	Severity    string
}

// ScenarioFilter narrows a scenario listing.
type ScenarioFilter struct {
	PortfolioID  *uint
	ScenarioType string
}

// AuditFilter narrows an audit event listing.
type AuditFilter struct {
	UserID    *uint
	EventType string
	CreatedAt DateRange
}
