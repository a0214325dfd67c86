package httpadapter

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
)

type ctxKey int

const userKey ctxKey = iota

// Headers set by the authenticating reverse proxy in front of this
// service. Requests reaching these routes are already authenticated;
// credential verification is out of scope here.
const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// identity extracts the authenticated caller from request headers into
// the request context. Requests without a usable identity get 401.
func identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(headerUserID))
		role := r.Header.Get(headerUserRole)
		if err != nil || role == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		user := domain.UserContext{ID: id, Role: role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// requireRole rejects callers whose role is neither the given role nor
// admin.
func requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userFrom(r.Context())
			if !ok || (user.Role != role && !user.IsAdmin()) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userFrom(ctx context.Context) (domain.UserContext, bool) {
	user, ok := ctx.Value(userKey).(domain.UserContext)
	return user, ok
}
