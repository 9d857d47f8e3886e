package session

import (
	"context"
	"errors"

	"github.com/hmaulana/maintenance-management/internal/core/identity"
)

// Store keys. The serialized user and the opaque bearer token are persisted
// as two independent entries; a session is only valid when both exist.
const (
	StoreKeyUser  = "user"
	StoreKeyToken = "token"
)

// ErrNotFound is returned by Store.Get when the key has no entry.
var ErrNotFound = errors.New("session entry not found")

// Store is the durable key/value persistence behind the session manager.
// Implementations must survive a process restart; only the session manager
// writes to it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Authenticator is the external authentication collaborator. On a
// successful Login the returned user's role must be a member of the closed
// role set; the manager treats any other shape as a failed login.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*identity.User, string, error)
	Logout(ctx context.Context) error
}

// State is a consistent snapshot of the manager, taken under one lock so
// the route guard never sees a half-applied transition.
type State struct {
	User          *identity.User
	Loading       bool
	Authenticated bool
	LastError     string
}
