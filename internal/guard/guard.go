package guard

// Package guard decides, per protected view, whether the current session
// may render it. The decision procedure is evaluated in a fixed order;
// that order is the contract, since each later check assumes the earlier
// ones passed.

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hmaulana/maintenance-management/internal/core/events"
	"github.com/hmaulana/maintenance-management/internal/core/identity"
	"github.com/hmaulana/maintenance-management/internal/rbac"
	"github.com/hmaulana/maintenance-management/internal/session"
)

type Action int

const (
	// ActionWait: the session manager is mid-login; show a waiting state
	// and re-evaluate on the next state change.
	ActionWait Action = iota
	// ActionRender: the protected content may be shown.
	ActionRender
	// ActionRedirect: navigate to Target, carrying ReturnTo when the
	// login flow should come back to the originally requested location.
	ActionRedirect
)

type Decision struct {
	Action   Action
	Target   string
	ReturnTo string
	// User is the session user for render decisions, so consumers do not
	// have to re-read the manager after the fact.
	User *identity.User
}

type Guard struct {
	sessions *session.Manager
	bus      *events.Bus
	logger   *slog.Logger
}

// New panics on a nil session manager: a guard evaluated without one is an
// integration fault, not a runtime condition, and must fail loudly.
func New(sessions *session.Manager, bus *events.Bus, logger *slog.Logger) *Guard {
	if sessions == nil {
		panic("guard: New called without a session manager")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{sessions: sessions, bus: bus, logger: logger}
}

// Evaluate runs the decision procedure for a view at currentPath requiring
// one of the given roles (empty set = any authenticated user). Expected
// conditions — missing auth, wrong role — are outcomes, never errors.
func (g *Guard) Evaluate(ctx context.Context, required []identity.Role, currentPath string) Decision {
	state := g.sessions.Snapshot()

	if state.Loading {
		return Decision{Action: ActionWait}
	}

	if !state.Authenticated {
		return Decision{Action: ActionRedirect, Target: rbac.LoginPath, ReturnTo: currentPath}
	}

	user := state.User
	if !user.Role.Valid() {
		// Valid at load time but mutated since: hard reset, no recovery.
		g.sessions.Invalidate(ctx, "in-memory session role no longer recognized")
		return Decision{Action: ActionRedirect, Target: rbac.LoginPath, ReturnTo: currentPath}
	}

	if len(required) > 0 && !roleMember(user.Role, required) {
		fallback := rbac.DefaultRoute(user)
		// Rendering on the user's own default route is mandatory: without
		// this exception a mismatch there would redirect to itself forever.
		if normalizePath(currentPath) == fallback {
			return Decision{Action: ActionRender, User: user}
		}

		g.logger.Warn("role mismatch, redirecting to default route",
			"user_id", user.ID,
			"role", user.Role,
			"required_roles", roleNames(required),
			"path", currentPath,
			"target", fallback)
		if g.bus != nil {
			g.bus.Publish(ctx, events.NewAccessDeniedEvent(user.ID, string(user.Role), roleNames(required), currentPath))
		}
		return Decision{Action: ActionRedirect, Target: fallback}
	}

	return Decision{Action: ActionRender, User: user}
}

// normalizePath strips the query string and any trailing slash so that
// "/my-work-orders/?tab=open" still counts as the technician's default
// route. Redirect targets are never normalized, only the comparison.
func normalizePath(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func roleMember(role identity.Role, set []identity.Role) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}

func roleNames(roles []identity.Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}
