package user

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hmaulana/maintenance-management/internal/guard"
	"github.com/hmaulana/maintenance-management/internal/session"
	"github.com/hmaulana/maintenance-management/internal/transport"
	"github.com/hmaulana/maintenance-management/pkg/logger"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*Profile, error)
	CompleteOnboarding(ctx context.Context, userID int64) (*Profile, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions *session.Manager
}

func NewHandler(svc ServiceAPI, sessions *session.Manager) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Sessions:    sessions,
	}
}

// GetCurrentUser handles GET /api/v1/users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	sessionUser, ok := guard.UserFromContext(r.Context())
	if !ok || sessionUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.Service.GetByID(r.Context(), sessionUser.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("GetCurrentUser: lookup failed", "user_id", sessionUser.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

// UpdateProfile handles PATCH /api/v1/users/me. The database row is updated
// first, then the session is patched so the dashboard reflects the change
// without a re-login.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sessionUser, ok := guard.UserFromContext(r.Context())
	if !ok || sessionUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.UpdateProfile(r.Context(), sessionUser.ID, dto)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		h.Logger.Error("UpdateProfile: update failed", "user_id", sessionUser.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if _, err := h.Sessions.UpdateUser(r.Context(), session.UserPatch{Name: &p.Name, Email: &p.Email}); err != nil {
		h.Logger.Error("UpdateProfile: session patch failed", "user_id", sessionUser.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

// CompleteOnboarding handles POST /api/v1/users/me/onboarding.
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	sessionUser, ok := guard.UserFromContext(r.Context())
	if !ok || sessionUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.Service.CompleteOnboarding(r.Context(), sessionUser.ID)
	if err != nil {
		h.Logger.Error("CompleteOnboarding: update failed", "user_id", sessionUser.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	done := false
	if _, err := h.Sessions.UpdateUser(r.Context(), session.UserPatch{FirstLogin: &done}); err != nil {
		h.Logger.Error("CompleteOnboarding: session patch failed", "user_id", sessionUser.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}
