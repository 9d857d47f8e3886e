package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAlertRaised       = "alert.raised"
	EventTypeAlertAcknowledged = "alert.acknowledged"
	EventTypeWorkOrderCreated  = "workorder.created"
)

type AlertRaisedEvent struct {
	BaseEvent
	AlertID  int64  `json:"alert_id"`
	AssetID  int64  `json:"asset_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func NewAlertRaisedEvent(alertID, assetID int64, severity, message string) *AlertRaisedEvent {
	return &AlertRaisedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAlertRaised,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"alert_id": alertID,
				"asset_id": assetID,
				"severity": severity,
				"message":  message,
			},
		},
		AlertID:  alertID,
		AssetID:  assetID,
		Severity: severity,
		Message:  message,
	}
}

type AlertAcknowledgedEvent struct {
	BaseEvent
	AlertID int64 `json:"alert_id"`
	UserID  int64 `json:"user_id"`
}

func NewAlertAcknowledgedEvent(alertID, userID int64) *AlertAcknowledgedEvent {
	return &AlertAcknowledgedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAlertAcknowledged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"alert_id": alertID,
				"user_id":  userID,
			},
		},
		AlertID: alertID,
		UserID:  userID,
	}
}

type WorkOrderCreatedEvent struct {
	BaseEvent
	WorkOrderID int64  `json:"work_order_id"`
	AssetID     int64  `json:"asset_id"`
	Source      string `json:"source"`
}

func NewWorkOrderCreatedEvent(workOrderID, assetID int64, source string) *WorkOrderCreatedEvent {
	return &WorkOrderCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeWorkOrderCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"work_order_id": workOrderID,
				"asset_id":      assetID,
				"source":        source,
			},
		},
		WorkOrderID: workOrderID,
		AssetID:     assetID,
		Source:      source,
	}
}
