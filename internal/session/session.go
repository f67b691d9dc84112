// Package session keeps per-visitor state on the server: the admin
// credential and the admin console's working copy of the note lists. The
// browser only holds an opaque session ID cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"notesnest-web/internal/domain"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID           string                      `json:"id"`
	Credential   *domain.Credential          `json:"credential,omitempty"`
	Board        *domain.Board               `json:"board,omitempty"`
	Confirmation *domain.PendingConfirmation `json:"confirmation,omitempty"`
	ExpiresAt    time.Time                   `json:"expires_at"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Credential.Valid()
}

// SignOut forgets everything tied to the admin credential.
func (s *Session) SignOut() {
	s.Credential = nil
	s.Board = nil
	s.Confirmation = nil
}

// Store persists sessions. Get returns ErrNotFound for missing or expired
// sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Manager ties a Store to the session cookie.
type Manager struct {
	store  Store
	cookie CookieConfig
	now    func() time.Time
}

func NewManager(store Store, cookie CookieConfig) *Manager {
	if cookie.Name == "" {
		cookie.Name = "notesnest_session"
	}
	return &Manager{store: store, cookie: cookie, now: time.Now}
}

// Load returns the visitor's session, or a fresh unsaved one.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.cookie.Name)
	if err == nil && c.Value != "" {
		sess, err := m.store.Get(r.Context(), c.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return m.fresh(), err
		}
	}
	return m.fresh(), nil
}

func (m *Manager) fresh() *Session {
	return &Session{ID: uuid.NewString(), ExpiresAt: m.now().Add(m.cookie.TTL)}
}

// Save persists sess and refreshes the cookie. Call before writing the body.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	sess.ExpiresAt = m.now().Add(m.cookie.TTL)

	if err := m.store.Save(r.Context(), sess); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew moves sess to a new ID, dropping the old record. Call it when the
// visitor's privileges change.
func (m *Manager) Renew(ctx context.Context, sess *Session) error {
	old := sess.ID
	sess.ID = uuid.NewString()
	if err := m.store.Delete(ctx, old); err != nil {
		return fmt.Errorf("drop session %s: %w", old, err)
	}
	return nil
}

// Destroy removes sess from the store and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request, sess *Session) error {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return m.store.Delete(r.Context(), sess.ID)
}

type contextKey string

const sessionKey contextKey = "session"

func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext returns the request's session, or nil outside the session
// middleware.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey).(*Session)
	return sess
}
