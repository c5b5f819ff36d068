package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// AlertRepository defines alert persistence operations. Alerts are append-only.
type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert) error
	FindByID(ctx context.Context, id uint) (*model.Alert, error)
	List(ctx context.Context, filter model.AlertFilter) ([]model.Alert, error)
}

type alertRepository struct {
	table[model.Alert]
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{table: table[model.Alert]{db: db}, db: db}
}

func (r *alertRepository) List(ctx context.Context, filter model.AlertFilter) ([]model.Alert, error) {
	alerts := []model.Alert{}
	q := whereID(r.db.WithContext(ctx), "portfolio_id", filter.PortfolioID)
	q = whereEq(q, "severity", filter.Severity)
	if err := q.Order("created_at DESC").Order("id DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// ScenarioRepository defines scenario result persistence operations. Results are append-only.
type ScenarioRepository interface {
	Create(ctx context.Context, result *model.ScenarioResult) error
	FindByID(ctx context.Context, id uint) (*model.ScenarioResult, error)
	List(ctx context.Context, filter model.ScenarioFilter) ([]model.ScenarioResult, error)
}

type scenarioRepository struct {
	table[model.ScenarioResult]
	db *gorm.DB
}

// NewScenarioRepository creates a new scenario repository.
func NewScenarioRepository(db *gorm.DB) ScenarioRepository {
	return &scenarioRepository{table: table[model.ScenarioResult]{db: db}, db: db}
}

func (r *scenarioRepository) List(ctx context.Context, filter model.ScenarioFilter) ([]model.ScenarioResult, error) {
	results := []model.ScenarioResult{}
	q := whereID(r.db.WithContext(ctx), "portfolio_id", filter.PortfolioID)
	q = whereEq(q, "scenario_type", filter.ScenarioType)
	if err := q.Order("created_at DESC").Order("id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// AuditEventRepository defines audit trail persistence operations. Events are append-only.
type AuditEventRepository interface {
	Create(ctx context.Context, event *model.AuditEvent) error
	FindByID(ctx context.Context, id uint) (*model.AuditEvent, error)
	List(ctx context.Context, filter model.AuditFilter) ([]model.AuditEvent, error)
}

type auditEventRepository struct {
	table[model.AuditEvent]
	db *gorm.DB
}

// NewAuditEventRepository creates a new audit event repository.
func NewAuditEventRepository(db *gorm.DB) AuditEventRepository {
	return &auditEventRepository{table: table[model.AuditEvent]{db: db}, db: db}
}

func (r *auditEventRepository) List(ctx context.Context, filter model.AuditFilter) ([]model.AuditEvent, error) {
	events := []model.AuditEvent{}
	q := whereRange(r.db.WithContext(ctx), "created_at", filter.CreatedAt)
	q = whereEq(q, "event_type", filter.EventType)
	q = whereID(q, "user_id", filter.UserID)
	if err := q.Order("created_at DESC").Order("id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
