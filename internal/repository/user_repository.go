package repository

import (
	"context"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(user).Error, "user.Create")
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user.FindByID")
	}
	return &user, nil
}

// CountExisting returns how many of the ids belong to real users.
func (r *UserRepository) CountExisting(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error
	return count, errors.Wrap(err, "user.CountExisting")
}

func (r *UserRepository) Profiles(ctx context.Context, ids []uint) (map[uint]models.UserProfile, error) {
	out := make(map[uint]models.UserProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "name", "profile_image").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "user.Profiles")
	}
	for i := range users {
		out[users[i].ID] = users[i].ToProfile()
	}
	return out, nil
}
