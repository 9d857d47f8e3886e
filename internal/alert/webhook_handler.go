package alert

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hmaulana/maintenance-management/internal/transport"
)

// WebhookHandler receives the monitoring feed. It sits outside the session
// guard; feeds authenticate with a shared token checked by the router.
type WebhookHandler struct {
	*transport.BaseHandler
	service *Service
	logger  *slog.Logger
}

func NewWebhookHandler(baseHandler *transport.BaseHandler, service *Service, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler: baseHandler,
		service:     service,
		logger:      logger,
	}
}

type SensorAlertResponse struct {
	Status  string `json:"status"`
	AlertID int64  `json:"alert_id"`
}

func (h *WebhookHandler) HandleSensorAlert(w http.ResponseWriter, r *http.Request) {
	var req SensorAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("invalid sensor alert payload", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Info("received sensor alert",
		"asset_tag", req.AssetTag,
		"source", req.Source,
		"severity", req.Severity)

	a, err := h.service.Ingest(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownAsset) {
			h.WriteError(w, http.StatusNotFound, "unknown asset tag")
			return
		}
		h.logger.Error("failed to ingest sensor alert",
			"error", err,
			"asset_tag", req.AssetTag,
			"source", req.Source)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.WriteJSON(w, http.StatusOK, SensorAlertResponse{
		Status:  "accepted",
		AlertID: a.ID,
	})
}
