package domain

import (
	"strings"
	"time"
)

// Note is a shared study note as returned by the notes API. Whether it is
// pending or approved depends on the endpoint that returned it.
type Note struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Contributor string    `json:"contributor"`
	Description string    `json:"description,omitempty"`
	File        string    `json:"file,omitempty"`
	DriveLink   string    `json:"driveLink,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DownloadURL resolves where a visitor can fetch the note material. Uploaded
// files are served by the API host; otherwise the drive link is used.
func (n *Note) DownloadURL(apiBaseURL string) string {
	if n.File != "" {
		return strings.TrimRight(apiBaseURL, "/") + "/" + strings.TrimLeft(n.File, "/")
	}
	return n.DriveLink
}

// Subjects returns the distinct subjects of notes in first-seen order.
func Subjects(notes []*Note) []string {
	seen := make(map[string]bool, len(notes))
	var subjects []string
	for _, n := range notes {
		if n.Subject == "" || seen[n.Subject] {
			continue
		}
		seen[n.Subject] = true
		subjects = append(subjects, n.Subject)
	}
	return subjects
}

// WithoutNote returns notes minus the one with the given ID. The input slice
// is left untouched.
func WithoutNote(notes []*Note, id string) []*Note {
	out := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}
