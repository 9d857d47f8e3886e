package events

import (
	"time"

	"github.com/google/uuid"
)

// Security-relevant event types emitted by the session manager and the
// route guard. Subscribing to these is the supported way to ship audit
// trails or alerting for authentication anomalies.
const (
	EventTypeLoginFailed      = "auth.login_failed"
	EventTypeInvalidRole      = "auth.invalid_role"
	EventTypeSessionCorrupted = "session.corrupted"
	EventTypeAccessDenied     = "guard.access_denied"
)

// LoginFailedEvent records a rejected credential check. Email only, never
// the password.
type LoginFailedEvent struct {
	BaseEvent
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

func NewLoginFailedEvent(email, reason string) *LoginFailedEvent {
	return &LoginFailedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLoginFailed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"email":  email,
				"reason": reason,
			},
		},
		Email:  email,
		Reason: reason,
	}
}

// InvalidRoleEvent records an authentication service response whose role
// fell outside the closed set. This is a contract violation by the
// service, not a user input error, and is kept distinct from login
// failures for that reason.
type InvalidRoleEvent struct {
	BaseEvent
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewInvalidRoleEvent(email, role string) *InvalidRoleEvent {
	return &InvalidRoleEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeInvalidRole,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"email": email,
				"role":  role,
			},
		},
		Email: email,
		Role:  role,
	}
}

// SessionCorruptedEvent records a persisted session that failed to decode
// or carried an unrecognized role and was purged.
type SessionCorruptedEvent struct {
	BaseEvent
	Reason string `json:"reason"`
}

func NewSessionCorruptedEvent(reason string) *SessionCorruptedEvent {
	return &SessionCorruptedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSessionCorrupted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"reason": reason,
			},
		},
		Reason: reason,
	}
}

// AccessDeniedEvent records a route guard role mismatch that resulted in a
// redirect.
type AccessDeniedEvent struct {
	BaseEvent
	UserID        int64    `json:"user_id"`
	Role          string   `json:"role"`
	RequiredRoles []string `json:"required_roles"`
	Path          string   `json:"path"`
}

func NewAccessDeniedEvent(userID int64, role string, requiredRoles []string, path string) *AccessDeniedEvent {
	return &AccessDeniedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccessDenied,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":        userID,
				"role":           role,
				"required_roles": requiredRoles,
				"path":           path,
			},
		},
		UserID:        userID,
		Role:          role,
		RequiredRoles: requiredRoles,
		Path:          path,
	}
}
