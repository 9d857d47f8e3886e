package workorder

import (
	"errors"
	"time"

	workorderDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/workorder"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Creation sources, recorded for audit. Alert-driven orders carry the
// originating alert ID as well.
const (
	SourceManual = "manual"
	SourceAlert  = "alert"
)

var (
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrInvalidTransition = errors.New("invalid work order status transition")
	ErrNotAssignee       = errors.New("work order is assigned to someone else")
)

type WorkOrder struct {
	ID            int64      `json:"id"`
	AssetID       int64      `json:"asset_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	AssignedTo    *int64     `json:"assigned_to,omitempty"`
	CreatedBy     int64      `json:"created_by"`
	SourceAlertID *int64     `json:"source_alert_id,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition encodes the status machine: open work can start or be
// cancelled, started work can complete or be cancelled, finished work is
// immutable.
func (w *WorkOrder) CanTransition(to string) bool {
	switch w.Status {
	case StatusOpen:
		return to == StatusInProgress || to == StatusCancelled
	case StatusInProgress:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

func (w *WorkOrder) Transition(to string) {
	now := time.Now()
	switch to {
	case StatusInProgress:
		w.StartedAt = &now
	case StatusCompleted:
		w.CompletedAt = &now
	}
	w.Status = to
	w.UpdatedAt = now
}

func (w *WorkOrder) IsAssignedTo(userID int64) bool {
	return w.AssignedTo != nil && *w.AssignedTo == userID
}

func ToDataModel(w *WorkOrder) *workorderDatamodel.WorkOrder {
	return &workorderDatamodel.WorkOrder{
		ID:            w.ID,
		AssetID:       w.AssetID,
		Title:         w.Title,
		Description:   w.Description,
		Priority:      w.Priority,
		Status:        w.Status,
		AssignedTo:    w.AssignedTo,
		CreatedBy:     w.CreatedBy,
		SourceAlertID: w.SourceAlertID,
		DueDate:       w.DueDate,
		StartedAt:     w.StartedAt,
		CompletedAt:   w.CompletedAt,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func FromDataModel(w *workorderDatamodel.WorkOrder) *WorkOrder {
	return &WorkOrder{
		ID:            w.ID,
		AssetID:       w.AssetID,
		Title:         w.Title,
		Description:   w.Description,
		Priority:      w.Priority,
		Status:        w.Status,
		AssignedTo:    w.AssignedTo,
		CreatedBy:     w.CreatedBy,
		SourceAlertID: w.SourceAlertID,
		DueDate:       w.DueDate,
		StartedAt:     w.StartedAt,
		CompletedAt:   w.CompletedAt,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func FromDataModelSlice(records []*workorderDatamodel.WorkOrder) []*WorkOrder {
	result := make([]*WorkOrder, len(records))
	for i, w := range records {
		result[i] = FromDataModel(w)
	}
	return result
}
