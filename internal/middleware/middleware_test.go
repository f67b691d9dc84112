package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		sess       *session.Session
		htmx       bool
		wantStatus int
		wantHeader string
	}{
		{"no session", nil, false, http.StatusSeeOther, "Location"},
		{"anonymous session", &session.Session{ID: "s"}, false, http.StatusSeeOther, "Location"},
		{"anonymous htmx request", &session.Session{ID: "s"}, true, http.StatusOK, "HX-Redirect"},
		{"admin session", &session.Session{ID: "s", Credential: &domain.Credential{Kind: domain.CredentialToken, Value: "t"}}, false, http.StatusTeapot, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.sess != nil {
				req = req.WithContext(session.WithSession(req.Context(), tt.sess))
			}
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			rec := httptest.NewRecorder()

			RequireAdmin("/admin-login")(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantHeader != "" {
				assert.Equal(t, "/admin-login", rec.Header().Get(tt.wantHeader))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc-123", seen)
}

func TestSessionMiddleware(t *testing.T) {
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, session.CookieConfig{Name: "nn", TTL: time.Hour})

	saved := &session.Session{ID: "known", Credential: &domain.Credential{Kind: domain.CredentialSecret, Value: "s"}, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(t.Context(), saved))

	var got *session.Session
	h := SessionMiddleware(mgr, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "nn", Value: "known"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.True(t, got.IsAdmin())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, got)
	assert.False(t, got.IsAdmin())
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestID()(LoggerMiddleware(zap.New(core))(okHandler()))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/upload", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/upload", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, false, fields["admin"])
}

func TestLoggerMiddlewareRecovers(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := LoggerMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic serving request").Len())
}
