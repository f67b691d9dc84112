package handler

import (
	"net/http"

	"notesnest-web/internal/middleware"
	"notesnest-web/internal/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handlers struct {
	Pages  *PageHandler
	Notes  *NotesHandler
	Upload *UploadHandler
	Auth   *AuthHandler
	Admin  *AdminHandler
}

// NewRouter wires every route of the site.
func NewRouter(h Handlers, sessions *session.Manager, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.SessionMiddleware(sessions, logger))
	r.Use(middleware.LoggerMiddleware(logger))

	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	r.HandleFunc("/", h.Notes.Browse).Methods(http.MethodGet)
	r.HandleFunc("/notes/results", h.Notes.Results).Methods(http.MethodGet)

	r.HandleFunc("/upload", h.Upload.Form).Methods(http.MethodGet)
	r.HandleFunc("/upload", h.Upload.Submit).Methods(http.MethodPost)

	r.HandleFunc("/admin-login", h.Auth.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/admin-login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/admin/logout", h.Auth.Logout).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin("/admin-login"))

	admin.HandleFunc("", h.Admin.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/notes/{id}/{action}", h.Admin.Request).Methods(http.MethodPost)
	admin.HandleFunc("/confirm", h.Admin.Confirm).Methods(http.MethodPost)
	admin.HandleFunc("/cancel", h.Admin.Cancel).Methods(http.MethodPost)

	// Middleware registered with Use does not run for unmatched routes.
	notFound := middleware.RequestID()(middleware.SessionMiddleware(sessions, logger)(http.HandlerFunc(h.Pages.NotFound)))
	r.NotFoundHandler = notFound

	return r
}
