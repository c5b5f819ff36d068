package service

import (
	"context"

	apperrors "stratify/internal/errors"
	"stratify/internal/model"
	"stratify/internal/repository"
)

// AlertService handles portfolio alerts. Alerts cannot be changed once raised.
type AlertService interface {
	List(ctx context.Context, filter model.AlertFilter) ([]model.Alert, error)
	Get(ctx context.Context, id uint) (*model.Alert, error)
	Create(ctx context.Context, alert *model.Alert) error
}

type alertService struct {
	repos *repository.Repositories
}

// NewAlertService creates a new alert service.
func NewAlertService(repos *repository.Repositories) AlertService {
	return &alertService{repos: repos}
}

func (s *alertService) List(ctx context.Context, filter model.AlertFilter) ([]model.Alert, error) {
	return s.repos.Alerts.List(ctx, filter)
}

func (s *alertService) Get(ctx context.Context, id uint) (*model.Alert, error) {
	alert, err := s.repos.Alerts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrAlertNotFound)
	}
	return alert, nil
}

func (s *alertService) Create(ctx context.Context, alert *model.Alert) error {
	alert.CreatedAt = now()
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Portfolios.Exists, alert.PortfolioID, apperrors.ErrPortfolioNotFound); err != nil {
			return err
		}
		return tx.Alerts.Create(ctx, alert)
	})
}

// ScenarioService handles stress-test results.
type ScenarioService interface {
	List(ctx context.Context, filter model.ScenarioFilter) ([]model.ScenarioResult, error)
	Get(ctx context.Context, id uint) (*model.ScenarioResult, error)
	Create(ctx context.Context, result *model.ScenarioResult) error
}

type scenarioService struct {
	repos *repository.Repositories
}

// NewScenarioService creates a new scenario service.
func NewScenarioService(repos *repository.Repositories) ScenarioService {
	return &scenarioService{repos: repos}
}

func (s *scenarioService) List(ctx context.Context, filter model.ScenarioFilter) ([]model.ScenarioResult, error) {
	return s.repos.Scenarios.List(ctx, filter)
}

func (s *scenarioService) Get(ctx context.Context, id uint) (*model.ScenarioResult, error) {
	result, err := s.repos.Scenarios.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrScenarioNotFound)
	}
	return result, nil
}

func (s *scenarioService) Create(ctx context.Context, result *model.ScenarioResult) error {
	result.CreatedAt = now()
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Portfolios.Exists, result.PortfolioID, apperrors.ErrPortfolioNotFound); err != nil {
			return err
		}
		return tx.Scenarios.Create(ctx, result)
	})
}

// AuditService handles the system audit trail.
type AuditService interface {
	List(ctx context.Context, filter model.AuditFilter) ([]model.AuditEvent, error)
	Get(ctx context.Context, id uint) (*model.AuditEvent, error)
	Record(ctx context.Context, event *model.AuditEvent) error
}

type auditService struct {
	repos *repository.Repositories
}

// NewAuditService creates a new audit service.
func NewAuditService(repos *repository.Repositories) AuditService {
	return &auditService{repos: repos}
}

func (s *auditService) List(ctx context.Context, filter model.AuditFilter) ([]model.AuditEvent, error) {
	return s.repos.AuditEvents.List(ctx, filter)
}

func (s *auditService) Get(ctx context.Context, id uint) (*model.AuditEvent, error) {
	event, err := s.repos.AuditEvents.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrAuditEventNotFound)
	}
	return event, nil
}

// Record appends an audit event. System events carry no user.
func (s *auditService) Record(ctx context.Context, event *model.AuditEvent) error {
	event.CreatedAt = now()
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if event.UserID != nil {
			if err := mustExist(ctx, tx.Users.Exists, *event.UserID, apperrors.ErrUserNotFound); err != nil {
				return err
			}
		}
		return tx.AuditEvents.Create(ctx, event)
	})
}
