package auth

import (
	"net/http"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
	"github.com/jiudi-gallery/jiudi-gallery/internal/shared"
)

// RequireAdmin rejects requests whose session carries no admin identity.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.User() != AdminUserID {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
