package handler

import (
	"errors"
	"net/http"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/middleware"
	"notesnest-web/internal/repository"
	"notesnest-web/internal/service"
	"notesnest-web/internal/session"
	"notesnest-web/internal/view"
	"notesnest-web/pkg/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const boardLoadFailedMessage = "Failed to load notes. Please refresh the page."

// AdminHandler serves the admin console. All routes sit behind
// middleware.RequireAdmin, so the session always carries a credential.
type AdminHandler struct {
	admin    *service.AdminService
	sessions *session.Manager
	views    *view.Renderer
	apiBase  string
	logger   *zap.Logger
}

func NewAdminHandler(admin *service.AdminService, sessions *session.Manager, views *view.Renderer, apiBaseURL string, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		sessions: sessions,
		views:    views,
		apiBase:  apiBaseURL,
		logger:   logger,
	}
}

func (h *AdminHandler) log(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("request_id", middleware.GetRequestID(r)))
}

// Dashboard loads both collections from the notes API and resets any
// pending confirmation.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	board, err := h.admin.LoadBoard(r.Context(), sess.Credential)
	if h.rejected(w, r, err) {
		return
	}

	page := view.AdminPage{}
	if err != nil {
		h.log(r).Error("failed to load admin board", zap.Error(err))
		page.Error = boardLoadFailedMessage
	}

	sess.Board = board
	sess.Confirmation = nil
	saveSession(w, r, h.sessions, h.logger)

	h.render(w, r, http.StatusOK, sess, page)
}

// Request opens the confirmation dialog for an action on a note.
func (h *AdminHandler) Request(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	action, err := domain.ParseAdminAction(vars["action"])
	if err != nil || vars["id"] == "" {
		response.BadRequest(w, "Unknown admin action")
		return
	}

	sess := session.FromContext(r.Context())
	sess.Confirmation = &domain.PendingConfirmation{Action: action, NoteID: vars["id"]}
	if sess.Board == nil {
		board, err := h.admin.LoadBoard(r.Context(), sess.Credential)
		if h.rejected(w, r, err) {
			return
		}
		sess.Board = board
	}
	saveSession(w, r, h.sessions, h.logger)

	h.render(w, r, http.StatusOK, sess, view.AdminPage{})
}

// Confirm executes the pending action. The board only changes when the
// notes API accepted it.
func (h *AdminHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	pending := sess.Confirmation
	sess.Confirmation = nil

	if pending == nil {
		saveSession(w, r, h.sessions, h.logger)
		h.render(w, r, http.StatusOK, sess, view.AdminPage{})
		return
	}

	if sess.Board == nil {
		sess.Board = &domain.Board{}
	}

	notice, err := h.admin.Execute(r.Context(), sess.Credential, sess.Board, pending)
	if h.rejected(w, r, err) {
		return
	}
	saveSession(w, r, h.sessions, h.logger)

	h.render(w, r, http.StatusOK, sess, view.AdminPage{Notice: &notice})
}

func (h *AdminHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	sess.Confirmation = nil
	saveSession(w, r, h.sessions, h.logger)

	h.render(w, r, http.StatusOK, sess, view.AdminPage{})
}

// rejected handles a credential the notes API no longer accepts by signing
// the visitor out and sending them to the login page.
func (h *AdminHandler) rejected(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, repository.ErrUnauthorized) {
		return false
	}

	h.log(r).Warn("admin credential rejected by notes API", zap.Error(err))
	sess := session.FromContext(r.Context())
	sess.SignOut()
	saveSession(w, r, h.sessions, h.logger)
	response.Redirect(w, r, "/admin-login")
	return true
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, status int, sess *session.Session, page view.AdminPage) {
	page.Nav = navFor(r, "admin")
	if sess.Board != nil {
		page.Pending = view.NoteCards(sess.Board.Pending, h.apiBase)
		page.Approved = view.NoteCards(sess.Board.Approved, h.apiBase)
	}
	page.Dialog = view.NewDialog(sess.Confirmation)

	h.views.Render(w, r, status, view.PageAdmin, "admin-board", page)
}
