package alert

import (
	"encoding/json"
	"errors"
	"time"

	alertDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/alert"
)

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

const (
	StatusOpen         = "open"
	StatusAcknowledged = "acknowledged"
	StatusResolved     = "resolved"
)

var (
	ErrAlertNotFound   = errors.New("alert not found")
	ErrUnknownAsset    = errors.New("alert references an unknown asset")
	ErrAlreadyResolved = errors.New("alert is already resolved")
)

type Alert struct {
	ID             int64           `json:"id"`
	AssetID        int64           `json:"asset_id"`
	Source         string          `json:"source"`
	Severity       string          `json:"severity"`
	Message        string          `json:"message"`
	Status         string          `json:"status"`
	Reading        json.RawMessage `json:"reading,omitempty"`
	AcknowledgedBy *int64          `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time      `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ValidSeverity(severity string) bool {
	switch severity {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

func (a *Alert) Acknowledge(userID int64) {
	now := time.Now()
	a.Status = StatusAcknowledged
	a.AcknowledgedBy = &userID
	a.AcknowledgedAt = &now
	a.UpdatedAt = now
}

func (a *Alert) Resolve() {
	now := time.Now()
	a.Status = StatusResolved
	a.ResolvedAt = &now
	a.UpdatedAt = now
}

func ToDataModel(a *Alert) *alertDatamodel.Alert {
	return &alertDatamodel.Alert{
		ID:             a.ID,
		AssetID:        a.AssetID,
		Source:         a.Source,
		Severity:       a.Severity,
		Message:        a.Message,
		Status:         a.Status,
		Reading:        a.Reading,
		AcknowledgedBy: a.AcknowledgedBy,
		AcknowledgedAt: a.AcknowledgedAt,
		ResolvedAt:     a.ResolvedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromDataModel(a *alertDatamodel.Alert) *Alert {
	return &Alert{
		ID:             a.ID,
		AssetID:        a.AssetID,
		Source:         a.Source,
		Severity:       a.Severity,
		Message:        a.Message,
		Status:         a.Status,
		Reading:        a.Reading,
		AcknowledgedBy: a.AcknowledgedBy,
		AcknowledgedAt: a.AcknowledgedAt,
		ResolvedAt:     a.ResolvedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromDataModelSlice(records []*alertDatamodel.Alert) []*Alert {
	result := make([]*Alert, len(records))
	for i, a := range records {
		result[i] = FromDataModel(a)
	}
	return result
}
