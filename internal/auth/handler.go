package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hmaulana/maintenance-management/internal"
	"github.com/hmaulana/maintenance-management/internal/core/identity"
	"github.com/hmaulana/maintenance-management/internal/rbac"
	"github.com/hmaulana/maintenance-management/internal/session"
	"github.com/hmaulana/maintenance-management/internal/transport"
	"github.com/hmaulana/maintenance-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Sessions *session.Manager
}

func NewHandler(sessions *session.Manager) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Sessions:    sessions,
	}
}

// SessionResponse is what the dashboard shell consumes after login and on
// session reads: the user plus the policy-resolved landing page and menu.
type SessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	Loading       bool           `json:"loading"`
	User          *identity.User `json:"user,omitempty"`
	LastError     string         `json:"last_error,omitempty"`
	DefaultRoute  string         `json:"default_route"`
	NavItems      []rbac.NavItem `json:"nav_items"`
}

func sessionResponse(state session.State) SessionResponse {
	return SessionResponse{
		Authenticated: state.Authenticated,
		Loading:       state.Loading,
		User:          state.User,
		LastError:     state.LastError,
		DefaultRoute:  rbac.DefaultRoute(state.User),
		NavItems:      rbac.NavItems(state.User),
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Sessions.Login(r.Context(), dto.Email, dto.Password)
	if err != nil {
		h.Logger.Warn("login failed", "email", dto.Email, "error", err)

		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, ErrUserInactive):
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
		case errors.Is(err, internal.ErrInvalidRole):
			// Same caller-facing outcome as bad credentials; the distinct
			// contract-violation diagnostics were already recorded.
			h.WriteError(w, http.StatusUnauthorized, "login failed")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	// The caller branches on first_login for the onboarding flow, so the
	// full user rides along with the policy-resolved landing page.
	resp := sessionResponse(h.Sessions.Snapshot())
	resp.User = user
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the current session state for the dashboard shell.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, sessionResponse(h.Sessions.Snapshot()))
}

func (h *Handler) ClearError(w http.ResponseWriter, r *http.Request) {
	h.Sessions.ClearError()
	w.WriteHeader(http.StatusNoContent)
}
