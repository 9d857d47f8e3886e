package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/user"
	"github.com/hmaulana/maintenance-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*user.Profile, error) {
	var record userDatamodel.User
	if err := r.db.WithContext(ctx).First(&record, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}

func (r *Repository) UpdateProfile(ctx context.Context, userID int64, name, email *string) (*user.Profile, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if email != nil {
		updates["email"] = *email
	}
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, user.ErrNotFound
		}
	}
	return r.GetByID(ctx, userID)
}

func (r *Repository) SetFirstLogin(ctx context.Context, userID int64, firstLogin bool) (*user.Profile, error) {
	result := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", userID).Update("first_login", firstLogin)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, user.ErrNotFound
	}
	return r.GetByID(ctx, userID)
}
