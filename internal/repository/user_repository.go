package repository

import (
	"context"

	"gorm.io/gorm"

	"stratify/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	ListActivity(ctx context.Context, userID uint, createdAt model.DateRange) ([]model.UserActivity, error)
	CreateActivity(ctx context.Context, activity *model.UserActivity) error
}

type userRepository struct {
	table[model.User]
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{table: table[model.User]{db: db}, db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	users := []model.User{}
	q := whereEq(r.db.WithContext(ctx), "role", filter.Role)
	if err := q.Order("name").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListActivity(ctx context.Context, userID uint, createdAt model.DateRange) ([]model.UserActivity, error) {
	activity := []model.UserActivity{}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	q = whereRange(q, "created_at", createdAt)
	if err := q.Order("created_at DESC").Order("id DESC").Find(&activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

func (r *userRepository) CreateActivity(ctx context.Context, activity *model.UserActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}
