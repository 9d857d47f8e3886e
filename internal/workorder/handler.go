package workorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/hmaulana/maintenance-management/internal/guard"
	"github.com/hmaulana/maintenance-management/internal/rbac"
	"github.com/hmaulana/maintenance-management/internal/transport"
	"github.com/hmaulana/maintenance-management/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, createdBy int64, dto CreateWorkOrderDTO) (*WorkOrder, error)
	GetByID(id int64) (*WorkOrder, error)
	GetAll(limit, offset int) ([]*WorkOrder, error)
	GetMyWorkOrders(userID int64, limit, offset int) ([]*WorkOrder, error)
	GetByAsset(assetID int64, limit, offset int) ([]*WorkOrder, error)
	UpdateStatus(id int64, userID int64, ownOnly bool, dto UpdateStatusDTO) (*WorkOrder, error)
	Assign(id int64, dto AssignDTO) (*WorkOrder, error)
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

func (h *Handler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := guard.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateWorkOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateWorkOrder: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.Create(r.Context(), user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateWorkOrder: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Logger.Info("CreateWorkOrder: work order created",
		"work_order_id", order.ID,
		"user_id", user.ID,
		"priority", order.Priority)

	h.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) GetWorkOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	orders, err := h.Service.GetAll(limit, offset)
	if err != nil {
		h.Logger.Error("GetWorkOrders: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get work orders")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"work_orders": orders,
		"limit":       limit,
		"offset":      offset,
	})
}

func (h *Handler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid work order ID")
		return
	}

	order, err := h.Service.GetByID(orderID)
	if err != nil {
		if errors.Is(err, ErrWorkOrderNotFound) {
			h.WriteError(w, http.StatusNotFound, "work order not found")
			return
		}
		h.Logger.Error("GetWorkOrder: service error", "error", err, "work_order_id", orderID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get work order")
		return
	}

	h.WriteJSON(w, http.StatusOK, order)
}

// GetMyWorkOrders serves the technician queue: only work orders assigned to
// the session user.
func (h *Handler) GetMyWorkOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := guard.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := pagination(r)

	orders, err := h.Service.GetMyWorkOrders(user.ID, limit, offset)
	if err != nil {
		h.Logger.Error("GetMyWorkOrders: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get work orders")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"work_orders": orders,
		"limit":       limit,
		"offset":      offset,
	})
}

func (h *Handler) UpdateWorkOrderStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := guard.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orderID, err := h.orderID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid work order ID")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Roles without the edit capability (technicians) can only move their
	// own assignments.
	ownOnly := !rbac.HasCapability(user, rbac.CapabilityEditWorkOrders)

	order, err := h.Service.UpdateStatus(orderID, user.ID, ownOnly, dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrWorkOrderNotFound):
			h.WriteError(w, http.StatusNotFound, "work order not found")
		case errors.Is(err, ErrNotAssignee):
			h.WriteError(w, http.StatusForbidden, "work order is assigned to someone else")
		case errors.Is(err, ErrInvalidTransition):
			h.WriteError(w, http.StatusBadRequest, "work order cannot move to that status")
		default:
			h.Logger.Error("UpdateWorkOrderStatus: service error", "error", err, "work_order_id", orderID)
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.Logger.Info("UpdateWorkOrderStatus: status updated",
		"work_order_id", orderID,
		"status", order.Status,
		"user_id", user.ID)

	h.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) AssignWorkOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.orderID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid work order ID")
		return
	}

	var dto AssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.Assign(orderID, dto)
	if err != nil {
		if errors.Is(err, ErrWorkOrderNotFound) {
			h.WriteError(w, http.StatusNotFound, "work order not found")
			return
		}
		h.Logger.Error("AssignWorkOrder: service error", "error", err, "work_order_id", orderID)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) orderID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func pagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

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

	return limit, offset
}
