package postgres

import (
	"time"

	"github.com/hmaulana/maintenance-management/internal/alert"
	alertDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/alert"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) alert.Repository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(a *alert.Alert) error {
	record := alert.ToDataModel(a)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	a.ID = record.ID
	return nil
}

func (r *AlertRepository) GetByID(id int64) (*alert.Alert, error) {
	var record alertDatamodel.Alert
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return alert.FromDataModel(&record), nil
}

func (r *AlertRepository) GetAll(status string, limit, offset int) ([]*alert.Alert, error) {
	query := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var records []*alertDatamodel.Alert
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return alert.FromDataModelSlice(records), nil
}

func (r *AlertRepository) Update(a *alert.Alert) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(alert.ToDataModel(a)).Error
}
