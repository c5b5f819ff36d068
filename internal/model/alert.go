package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Alert is an append-only notification raised against a portfolio.
type Alert struct {
	ID          uint      `json:"alertID" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	AlertType   string    `json:"alertType" gorm:"size:50;not null"`
	Severity    string    `json:"severity" gorm:"size:20;not null;index"`
	Message     string    `json:"message" gorm:"type:text"`
	PortfolioID uint      `json:"portfolioID" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

// ScenarioResult is an append-only stress-test outcome for a portfolio.
type ScenarioResult struct {
	ID           uint            `json:"scenarioID" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	ScenarioType string          `json:"scenarioType" gorm:"size:50;not null;index"`
	PortfolioID  uint            `json:"portfolioID" gorm:"not null;index"`
	ImpactPct    decimal.Decimal `json:"impactPct" gorm:"type:decimal(10,4)"`
	CreatedAt    time.Time       `json:"createdAt" gorm:"index"`
}

// AuditEvent is an append-only system audit record. Details is free-form JSON.
type AuditEvent struct {
	ID        uint           `json:"auditID" gorm:"primaryKey"`
	EventType string         `json:"eventType" gorm:"size:50;not null;index"`
	UserID    *uint          `json:"userID" gorm:"index"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
}
