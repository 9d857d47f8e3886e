package asset

import "time"

type Asset struct {
	ID          int64     `gorm:"primaryKey"`
	Tag         string    `gorm:"column:tag;uniqueIndex;not null"`
	Name        string    `gorm:"column:name;not null"`
	Location    string    `gorm:"column:location"`
	Status      string    `gorm:"column:status;not null;default:operational"`
	Criticality string    `gorm:"column:criticality;not null;default:medium"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
