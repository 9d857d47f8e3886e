package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	userDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &record, nil
}
