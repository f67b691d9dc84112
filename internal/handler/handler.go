package handler

import (
	"net/http"

	"notesnest-web/internal/middleware"
	"notesnest-web/internal/session"
	"notesnest-web/internal/view"
	"notesnest-web/pkg/response"

	"go.uber.org/zap"
)

func navFor(r *http.Request, active string) view.Nav {
	return view.Nav{Active: active, Admin: session.FromContext(r.Context()).IsAdmin()}
}

// saveSession persists the request's session. A failure is logged and the
// page is still served; the visitor only loses the state change.
func saveSession(w http.ResponseWriter, r *http.Request, sessions *session.Manager, logger *zap.Logger) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		return
	}
	if err := sessions.Save(w, r, sess); err != nil {
		logger.Error("failed to save session",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Error(err),
		)
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "notesnest-web",
	})
}

type PageHandler struct {
	views *view.Renderer
}

func NewPageHandler(views *view.Renderer) *PageHandler {
	return &PageHandler{views: views}
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusNotFound, view.PageNotFound, "", view.NotFoundPage{Nav: navFor(r, "")})
}
