package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stratify/internal/cache"
	apperrors "stratify/internal/errors"
	"stratify/internal/model"
	"stratify/internal/repository"
)

// ActivityRoleChange is the activity type recorded when a user's role changes.
const ActivityRoleChange = "role_change"

// UserService handles users and their activity log.
type UserService interface {
	List(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id uint, body map[string]json.RawMessage) error
	UpdateRole(ctx context.Context, id uint, role string) error
	Delete(ctx context.Context, id uint) error
	Activity(ctx context.Context, id uint, createdAt model.DateRange) ([]model.UserActivity, error)
}

type userService struct {
	repos *repository.Repositories
	cache detailCache
}

// NewUserService builds a UserService over the repositories. Cached details of
// the portfolios a user owns are dropped on user writes.
func NewUserService(repos *repository.Repositories, cacheClient *cache.Client, ttl time.Duration) UserService {
	return &userService{repos: repos, cache: detailCache{client: cacheClient, ttl: ttl}}
}

func (s *userService) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	return s.repos.Users.List(ctx, filter)
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, user *model.User) error {
	return s.repos.Users.Create(ctx, user)
}

func (s *userService) Update(ctx context.Context, id uint, body map[string]json.RawMessage) error {
	var portfolios []uint
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Users.Exists, id, apperrors.ErrUserNotFound); err != nil {
			return err
		}
		cols, err := model.UserPatch.Columns(body)
		if err != nil {
			return err
		}
		if portfolios, err = s.cache.affectedPortfolios(ctx, tx.Portfolios.IDsByUser, id); err != nil {
			return err
		}
		return tx.Users.Updates(ctx, id, cols)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, portfolioKeyPrefix, portfolios...)
	return nil
}

// UpdateRole sets the user's role and appends a role_change activity entry.
func (s *userService) UpdateRole(ctx context.Context, id uint, role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return apperrors.MissingField("role")
	}
	return s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		user, err := tx.Users.FindByID(ctx, id)
		if err != nil {
			return notFound(err, apperrors.ErrUserNotFound)
		}
		if err := tx.Users.Updates(ctx, id, map[string]interface{}{"role": role}); err != nil {
			return err
		}
		return tx.Users.CreateActivity(ctx, &model.UserActivity{
			UserID:       id,
			ActivityType: ActivityRoleChange,
			Details:      fmt.Sprintf("role changed from %q to %q", user.Role, role),
			CreatedAt:    now(),
		})
	})
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	var portfolios []uint
	err := s.repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := mustExist(ctx, tx.Users.Exists, id, apperrors.ErrUserNotFound); err != nil {
			return err
		}
		var err error
		if portfolios, err = s.cache.affectedPortfolios(ctx, tx.Portfolios.IDsByUser, id); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, portfolioKeyPrefix, portfolios...)
	return nil
}

// Activity lists the activity log of an existing user, newest first.
func (s *userService) Activity(ctx context.Context, id uint, createdAt model.DateRange) ([]model.UserActivity, error) {
	if err := mustExist(ctx, s.repos.Users.Exists, id, apperrors.ErrUserNotFound); err != nil {
		return nil, err
	}
	return s.repos.Users.ListActivity(ctx, id, createdAt)
}
