package handler

import (
	"net/http"
	"net/url"
	"strings"

	"notesnest-web/internal/middleware"
	"notesnest-web/internal/service"
	"notesnest-web/internal/view"

	"go.uber.org/zap"
)

const loadFailedMessage = "Failed to load notes. Please check your connection and try again."

type NotesHandler struct {
	notes       *service.NotesService
	views       *view.Renderer
	apiBaseURL  string
	endpointURL string
	logger      *zap.Logger
}

func NewNotesHandler(notes *service.NotesService, views *view.Renderer, apiBaseURL, endpointURL string, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{
		notes:       notes,
		views:       views,
		apiBaseURL:  apiBaseURL,
		endpointURL: endpointURL,
		logger:      logger,
	}
}

func filterFrom(r *http.Request) service.Filter {
	q := r.URL.Query()
	return service.Filter{
		Query:   strings.TrimSpace(q.Get("q")),
		Subject: strings.TrimSpace(q.Get("subject")),
	}
}

func resultsURL(f service.Filter, refresh bool) string {
	v := url.Values{}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Subject != "" {
		v.Set("subject", f.Subject)
	}
	if refresh {
		v.Set("refresh", "1")
	}
	if len(v) == 0 {
		return "/notes/results"
	}
	return "/notes/results?" + v.Encode()
}

// Browse renders the page shell in the loading state. The browser then
// fetches the results, which triggers a fresh load from the notes API.
func (h *NotesHandler) Browse(w http.ResponseWriter, r *http.Request) {
	f := filterFrom(r)
	data := view.NotesPage{
		Nav:         navFor(r, "notes"),
		Query:       f.Query,
		Subject:     f.Subject,
		State:       string(service.StateLoading),
		LoadURL:     resultsURL(f, true),
		EndpointURL: h.endpointURL,
	}
	if c := h.notes.Catalog(); c != nil {
		data.Subjects = c.Subjects
	}

	h.views.Render(w, r, http.StatusOK, view.PageNotes, "", data)
}

// Results resolves the listing for the current filter. Without refresh=1
// the cached catalog is searched again; the notes API is only hit when
// nothing has been loaded yet.
func (h *NotesHandler) Results(w http.ResponseWriter, r *http.Request) {
	f := filterFrom(r)
	refresh := r.URL.Query().Get("refresh") == "1"

	listing := h.notes.Listing(r.Context(), f, refresh)

	data := view.NotesPage{
		Nav:         navFor(r, "notes"),
		Query:       f.Query,
		Subject:     f.Subject,
		Subjects:    listing.Subjects,
		State:       string(listing.State),
		Notes:       view.NoteCards(listing.Notes, h.apiBaseURL),
		LoadURL:     resultsURL(f, true),
		EndpointURL: h.endpointURL,
	}
	if listing.State == service.StateError {
		h.logger.Warn("approved notes unavailable",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Error(listing.Err),
		)
		data.Error = loadFailedMessage
		if c := h.notes.Catalog(); c != nil {
			data.Subjects = c.Subjects
		}
	}

	h.views.Render(w, r, http.StatusOK, view.PageNotes, "notes-results", data)
}
