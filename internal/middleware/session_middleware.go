package middleware

import (
	"net/http"

	"notesnest-web/internal/session"

	"go.uber.org/zap"
)

// SessionMiddleware attaches the visitor's session to the request context.
// A store failure degrades to an anonymous session rather than an error page.
func SessionMiddleware(sessions *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Load(r)
			if err != nil {
				logger.Error("failed to load session",
					zap.String("request_id", GetRequestID(r)),
					zap.Error(err),
				)
			}

			ctx := session.WithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
