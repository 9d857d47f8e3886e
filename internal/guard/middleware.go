package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/hmaulana/maintenance-management/internal/core/identity"
)

type ctxKey string

const ContextUserKey ctxKey = "session_user"

// UserFromContext returns the session user a render decision attached to
// the request.
func UserFromContext(ctx context.Context) (*identity.User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*identity.User)
	return u, ok
}

// RequireRoles maps guard decisions onto HTTP: render passes through with
// the user in the request context, redirects become 302s carrying the
// original location in the redirect query parameter, and a mid-login wait
// becomes a 202 the client should retry.
func (g *Guard) RequireRoles(roles ...identity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Evaluate(r.Context(), roles, r.URL.Path)

			switch decision.Action {
			case ActionWait:
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusAccepted)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "loading"})

			case ActionRedirect:
				target := decision.Target
				if decision.ReturnTo != "" {
					target += "?redirect=" + url.QueryEscape(decision.ReturnTo)
				}
				http.Redirect(w, r, target, http.StatusFound)

			case ActionRender:
				ctx := context.WithValue(r.Context(), ContextUserKey, decision.User)
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

// RequireAuthenticated guards a route any logged-in role may use.
func (g *Guard) RequireAuthenticated() func(http.Handler) http.Handler {
	return g.RequireRoles()
}
