// Package view renders the site's HTML. Pages are html/template sets adapted
// to templ components so handlers can serve them with templ.Handler.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"notesnest-web/internal/domain"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageNotes    = "notes"
	PageUpload   = "upload"
	PageLogin    = "login"
	PageAdmin    = "admin"
	PageNotFound = "not_found"
)

var pageNames = []string{PageNotes, PageUpload, PageLogin, PageAdmin, PageNotFound}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"lower": func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
	"action": func(noteID, action string) ActionButton {
		return ActionButton{NoteID: noteID, Action: action, Label: domain.AdminAction(action).Label()}
	},
}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages}, nil
}

// Component returns the named template of page as a templ component. Use
// "layout" for the full document.
func (v *Renderer) Component(page, name string, data any) (templ.Component, error) {
	t, ok := v.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	tmpl := t.Lookup(name)
	if tmpl == nil {
		return nil, fmt.Errorf("page %q has no template %q", page, name)
	}
	return templ.FromGoHTML(tmpl, data), nil
}

// IsHTMX reports whether r was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// Render writes page with status. htmx requests get only the fragment
// template when one is named; everything else gets the full layout.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, fragment string, data any) {
	name := "layout"
	if fragment != "" && IsHTMX(r) {
		name = fragment
	}

	c, err := v.Component(page, name, data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}
