package asset

import (
	"errors"
	"time"

	assetDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/asset"
)

// Asset statuses. Status tracks operational condition; IsActive tracks
// whether the asset is still part of the managed fleet.
const (
	StatusOperational      = "operational"
	StatusDown             = "down"
	StatusUnderMaintenance = "under_maintenance"
)

const (
	CriticalityLow    = "low"
	CriticalityMedium = "medium"
	CriticalityHigh   = "high"
)

var (
	ErrNotFound      = errors.New("asset not found")
	ErrInvalidStatus = errors.New("invalid asset status")
	ErrDuplicateTag  = errors.New("asset tag already exists")
)

type Asset struct {
	ID          int64     `json:"id"`
	Tag         string    `json:"tag"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Criticality string    `json:"criticality"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusOperational, StatusDown, StatusUnderMaintenance:
		return true
	}
	return false
}

func ValidCriticality(criticality string) bool {
	switch criticality {
	case CriticalityLow, CriticalityMedium, CriticalityHigh:
		return true
	}
	return false
}

func NewAsset(tag, name, location, criticality string) *Asset {
	now := time.Now()
	return &Asset{
		Tag:         tag,
		Name:        name,
		Location:    location,
		Status:      StatusOperational,
		Criticality: criticality,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	return &assetDatamodel.Asset{
		ID:          a.ID,
		Tag:         a.Tag,
		Name:        a.Name,
		Location:    a.Location,
		Status:      a.Status,
		Criticality: a.Criticality,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func FromDataModel(a *assetDatamodel.Asset) *Asset {
	return &Asset{
		ID:          a.ID,
		Tag:         a.Tag,
		Name:        a.Name,
		Location:    a.Location,
		Status:      a.Status,
		Criticality: a.Criticality,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
