package model

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserActivity{},
		&Sector{},
		&Asset{},
		&PriceHistory{},
		&Portfolio{},
		&Position{},
		&Transaction{},
		&Watchlist{},
		&Alert{},
		&ScenarioResult{},
		&AuditEvent{},
	}
}
