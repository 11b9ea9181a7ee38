package middleware

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/auth"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

// RequireAdmin rejects requests without a valid admin cookie with 401 and
// stores the principal in the request context otherwise.
func RequireAdmin(tokens *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := tokens.FromRequest(r)
			if !ok || user.Role != models.RoleAdmin {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), user)))
		})
	}
}

// RedirectUnlessAdmin is RequireAdmin for pages: it redirects to loginPath.
func RedirectUnlessAdmin(tokens *auth.Manager, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := tokens.FromRequest(r)
			if !ok || user.Role != models.RoleAdmin {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), user)))
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
