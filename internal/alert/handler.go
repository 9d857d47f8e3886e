package alert

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hmaulana/maintenance-management/internal/guard"
	"github.com/hmaulana/maintenance-management/internal/transport"
	"github.com/hmaulana/maintenance-management/pkg/logger"
)

type ServiceAPI interface {
	GetByID(id int64) (*Alert, error)
	GetAll(status string, limit, offset int) ([]*Alert, error)
	Acknowledge(ctx context.Context, id, userID int64) (*Alert, error)
	Resolve(ctx context.Context, id, userID int64) (*Alert, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	status := r.URL.Query().Get("status")

	alerts, err := h.Service.GetAll(status, limit, offset)
	if err != nil {
		h.Logger.Error("GetAlerts: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get alerts")
		return
	}

	h.WriteJSON(w, http.StatusOK, AlertsResponse{Alerts: alerts, Limit: limit, Offset: offset})
}

func (h *Handler) GetAlert(w http.ResponseWriter, r *http.Request) {
	alertID, err := h.alertID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid alert ID")
		return
	}

	a, err := h.Service.GetByID(alertID)
	if err != nil {
		if errors.Is(err, ErrAlertNotFound) {
			h.WriteError(w, http.StatusNotFound, "alert not found")
			return
		}
		h.Logger.Error("GetAlert: service error", "error", err, "alert_id", alertID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get alert")
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	user, ok := guard.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	alertID, err := h.alertID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid alert ID")
		return
	}

	a, err := h.Service.Acknowledge(r.Context(), alertID, user.ID)
	if err != nil {
		h.writeAlertError(w, err, alertID)
		return
	}

	h.Logger.Info("AcknowledgeAlert: alert acknowledged", "alert_id", alertID, "user_id", user.ID)
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	user, ok := guard.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	alertID, err := h.alertID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid alert ID")
		return
	}

	a, err := h.Service.Resolve(r.Context(), alertID, user.ID)
	if err != nil {
		h.writeAlertError(w, err, alertID)
		return
	}

	h.Logger.Info("ResolveAlert: alert resolved", "alert_id", alertID, "user_id", user.ID)
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) writeAlertError(w http.ResponseWriter, err error, alertID int64) {
	switch {
	case errors.Is(err, ErrAlertNotFound):
		h.WriteError(w, http.StatusNotFound, "alert not found")
	case errors.Is(err, ErrAlreadyResolved):
		h.WriteError(w, http.StatusConflict, "alert is already resolved")
	default:
		h.Logger.Error("alert operation failed", "error", err, "alert_id", alertID)
		h.WriteError(w, http.StatusInternalServerError, "alert operation failed")
	}
}

func (h *Handler) alertID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
