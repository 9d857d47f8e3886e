package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hmaulana/maintenance-management/internal/core/events"
	"github.com/hmaulana/maintenance-management/internal/workorder"
)

// WorkOrderCreator is the slice of the work order service the automation
// needs.
type WorkOrderCreator interface {
	CreateFromAlert(ctx context.Context, alertID, assetID int64, title, description string) (*workorder.WorkOrder, error)
}

// EventHandler turns critical alerts into work orders.
type EventHandler struct {
	workOrders WorkOrderCreator
	logger     *slog.Logger
}

func NewEventHandler(workOrders WorkOrderCreator, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		workOrders: workOrders,
		logger:     logger,
	}
}

func (h *EventHandler) HandleAlertRaised(ctx context.Context, event events.Event) error {
	alertEvent, ok := event.(*events.AlertRaisedEvent)
	if !ok {
		h.logger.Error("invalid event type for alert raised handler", "event_type", event.EventType())
		return fmt.Errorf("expected AlertRaisedEvent, got %T", event)
	}

	if alertEvent.Severity != SeverityCritical {
		return nil
	}

	h.logger.Info("opening work order for critical alert",
		"alert_id", alertEvent.AlertID,
		"asset_id", alertEvent.AssetID,
		"event_id", alertEvent.EventID())

	order, err := h.workOrders.CreateFromAlert(ctx,
		alertEvent.AlertID,
		alertEvent.AssetID,
		fmt.Sprintf("Critical alert #%d", alertEvent.AlertID),
		alertEvent.Message,
	)
	if err != nil {
		h.logger.Error("failed to open work order for critical alert",
			"error", err,
			"alert_id", alertEvent.AlertID,
			"event_id", alertEvent.EventID())
		return fmt.Errorf("work order creation failed for alert %d: %w", alertEvent.AlertID, err)
	}

	h.logger.Info("work order opened for critical alert",
		"alert_id", alertEvent.AlertID,
		"work_order_id", order.ID,
		"event_id", alertEvent.EventID())

	return nil
}

func (h *EventHandler) RegisterEventHandlers(bus *events.Bus) {
	bus.Subscribe(events.EventTypeAlertRaised, h.HandleAlertRaised)

	h.logger.Info("alert event handlers registered",
		"handlers", []string{events.EventTypeAlertRaised})
}
