package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hmaulana/maintenance-management/internal/core/events"
)

// EventHandler forwards domain events to the on-call webhook.
type EventHandler struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewEventHandler(dispatcher *Dispatcher, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *EventHandler) HandleWorkOrderCreated(_ context.Context, event events.Event) error {
	orderEvent, ok := event.(*events.WorkOrderCreatedEvent)
	if !ok {
		return fmt.Errorf("expected WorkOrderCreatedEvent, got %T", event)
	}

	return h.dispatcher.Notify(Job{
		Kind:    KindWorkOrderCreated,
		Subject: fmt.Sprintf("Work order #%d opened", orderEvent.WorkOrderID),
		Body:    fmt.Sprintf("New work order for asset %d (source: %s)", orderEvent.AssetID, orderEvent.Source),
		Attributes: map[string]interface{}{
			"work_order_id": orderEvent.WorkOrderID,
			"asset_id":      orderEvent.AssetID,
			"source":        orderEvent.Source,
		},
	})
}

func (h *EventHandler) HandleAlertRaised(_ context.Context, event events.Event) error {
	alertEvent, ok := event.(*events.AlertRaisedEvent)
	if !ok {
		return fmt.Errorf("expected AlertRaisedEvent, got %T", event)
	}

	if alertEvent.Severity != "critical" {
		return nil
	}

	return h.dispatcher.Notify(Job{
		Kind:    KindCriticalAlert,
		Subject: fmt.Sprintf("Critical alert on asset %d", alertEvent.AssetID),
		Body:    alertEvent.Message,
		Attributes: map[string]interface{}{
			"alert_id": alertEvent.AlertID,
			"asset_id": alertEvent.AssetID,
			"severity": alertEvent.Severity,
		},
	})
}

func (h *EventHandler) RegisterEventHandlers(bus *events.Bus) {
	bus.Subscribe(events.EventTypeWorkOrderCreated, h.HandleWorkOrderCreated)
	bus.Subscribe(events.EventTypeAlertRaised, h.HandleAlertRaised)

	h.logger.Info("notifier event handlers registered",
		"handlers", []string{events.EventTypeWorkOrderCreated, events.EventTypeAlertRaised})
}
