package alert

import (
	"encoding/json"
	"time"
)

type Alert struct {
	ID             int64           `gorm:"primaryKey"`
	AssetID        int64           `gorm:"column:asset_id;not null"`
	Source         string          `gorm:"column:source;not null"`
	Severity       string          `gorm:"column:severity;not null"`
	Message        string          `gorm:"column:message;not null"`
	Status         string          `gorm:"column:status;default:open"`
	Reading        json.RawMessage `gorm:"column:reading;type:jsonb"`
	AcknowledgedBy *int64          `gorm:"column:acknowledged_by"`
	AcknowledgedAt *time.Time      `gorm:"column:acknowledged_at"`
	ResolvedAt     *time.Time      `gorm:"column:resolved_at"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Alert) TableName() string {
	return "alerts"
}
