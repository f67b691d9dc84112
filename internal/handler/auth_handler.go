package handler

import (
	"errors"
	"net/http"

	"notesnest-web/internal/middleware"
	"notesnest-web/internal/service"
	"notesnest-web/internal/session"
	"notesnest-web/internal/view"
	"notesnest-web/pkg/response"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	views    *view.Renderer
	logger   *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, views *view.Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		views:    views,
		logger:   logger,
	}
}

func (h *AuthHandler) page(r *http.Request) view.LoginPage {
	return view.LoginPage{
		Nav:        navFor(r, "admin"),
		SecretMode: h.auth.Mode() == service.AuthModeSecret,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, view.PageLogin, "", h.page(r))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	cred, err := h.auth.Login(r.Context(), r.PostFormValue("password"))
	if err != nil {
		data := h.page(r)
		status := http.StatusUnauthorized

		var loginErr *service.LoginError
		if errors.As(err, &loginErr) {
			data.Error = loginErr.Message
			if loginErr.Unavailable {
				status = http.StatusBadGateway
			}
		} else {
			data.Error = "Server error"
			status = http.StatusBadGateway
		}

		h.views.Render(w, r, status, view.PageLogin, "login-form", data)
		return
	}

	if err := h.sessions.Renew(r.Context(), sess); err != nil {
		h.logger.Warn("failed to drop previous session",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Error(err),
		)
	}
	sess.SignOut()
	sess.Credential = cred
	saveSession(w, r, h.sessions, h.logger)

	h.logger.Info("admin signed in",
		zap.String("request_id", middleware.GetRequestID(r)),
		zap.String("credential", string(cred.Kind)),
	)
	response.Redirect(w, r, "/admin")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := session.FromContext(r.Context()); sess != nil {
		if err := h.sessions.Destroy(w, r, sess); err != nil {
			h.logger.Error("failed to destroy session",
				zap.String("request_id", middleware.GetRequestID(r)),
				zap.Error(err),
			)
		}
	}
	response.Redirect(w, r, "/")
}
