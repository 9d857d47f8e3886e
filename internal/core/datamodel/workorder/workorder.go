package workorder

import "time"

type WorkOrder struct {
	ID            int64      `gorm:"primaryKey"`
	AssetID       int64      `gorm:"column:asset_id;not null"`
	Title         string     `gorm:"column:title;not null"`
	Description   string     `gorm:"column:description"`
	Priority      string     `gorm:"column:priority;not null;default:medium"`
	Status        string     `gorm:"column:status;not null;default:open"`
	AssignedTo    *int64     `gorm:"column:assigned_to"`
	CreatedBy     int64      `gorm:"column:created_by;not null"`
	SourceAlertID *int64     `gorm:"column:source_alert_id"`
	DueDate       *time.Time `gorm:"column:due_date"`
	StartedAt     *time.Time `gorm:"column:started_at"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}
