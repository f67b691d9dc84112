package middleware

import (
	"net/http"

	"notesnest-web/internal/session"
	"notesnest-web/pkg/response"
)

// RequireAdmin sends visitors without an admin credential to the login page.
// It only checks presence; the notes API decides what the credential allows.
func RequireAdmin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.FromContext(r.Context()).IsAdmin() {
				response.Redirect(w, r, loginPath)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
