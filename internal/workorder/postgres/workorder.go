package postgres

import (
	"time"

	workorderDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/workorder"
	"github.com/hmaulana/maintenance-management/internal/workorder"
	"gorm.io/gorm"
)

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) workorder.Repository {
	return &WorkOrderRepository{db: db}
}

func (r *WorkOrderRepository) Create(w *workorder.WorkOrder) error {
	record := workorder.ToDataModel(w)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	w.ID = record.ID
	return nil
}

func (r *WorkOrderRepository) GetByID(id int64) (*workorder.WorkOrder, error) {
	var record workorderDatamodel.WorkOrder
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return workorder.FromDataModel(&record), nil
}

func (r *WorkOrderRepository) GetAll(limit, offset int) ([]*workorder.WorkOrder, error) {
	var records []*workorderDatamodel.WorkOrder
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return workorder.FromDataModelSlice(records), nil
}

func (r *WorkOrderRepository) GetByAssignee(userID int64, limit, offset int) ([]*workorder.WorkOrder, error) {
	var records []*workorderDatamodel.WorkOrder
	err := r.db.Where("assigned_to = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return workorder.FromDataModelSlice(records), nil
}

func (r *WorkOrderRepository) GetByAsset(assetID int64, limit, offset int) ([]*workorder.WorkOrder, error) {
	var records []*workorderDatamodel.WorkOrder
	err := r.db.Where("asset_id = ?", assetID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return workorder.FromDataModelSlice(records), nil
}

func (r *WorkOrderRepository) Update(w *workorder.WorkOrder) error {
	w.UpdatedAt = time.Now()
	return r.db.Save(workorder.ToDataModel(w)).Error
}

func (r *WorkOrderRepository) UpdateAssignee(id int64, userID int64) error {
	return r.db.Model(&workorderDatamodel.WorkOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_to": userID,
			"updated_at":  time.Now(),
		}).Error
}
