package view

import (
	"time"

	"notesnest-web/internal/domain"
)

// Nav drives the navigation bar.
type Nav struct {
	Active string
	Admin  bool
}

type NoteCard struct {
	ID          string
	Title       string
	Subject     string
	Contributor string
	Description string
	Category    string
	DownloadURL string
	CreatedAt   time.Time
}

func NoteCards(notes []*domain.Note, apiBaseURL string) []NoteCard {
	cards := make([]NoteCard, 0, len(notes))
	for _, n := range notes {
		cards = append(cards, NoteCard{
			ID:          n.ID,
			Title:       n.Title,
			Subject:     n.Subject,
			Contributor: n.Contributor,
			Description: n.Description,
			Category:    n.Category,
			DownloadURL: n.DownloadURL(apiBaseURL),
			CreatedAt:   n.CreatedAt,
		})
	}
	return cards
}

type NotesPage struct {
	Nav      Nav
	Query    string
	Subject  string
	Subjects []string

	// State is one of loading, error, empty, results.
	State       string
	Notes       []NoteCard
	Error       string
	LoadURL     string
	EndpointURL string
}

type UploadForm struct {
	Title       string
	Subject     string
	Contributor string
	DriveLink   string
	Category    string
	Description string
}

type UploadPage struct {
	Nav        Nav
	Form       UploadForm
	Subjects   []string
	Categories []string
	MaxMB      int64
	Error      string
	Success    string
}

type LoginPage struct {
	Nav   Nav
	Error string
	// SecretMode switches the field label to the shared secret wording.
	SecretMode bool
}

// Dialog is the confirmation prompt for a pending admin action.
type Dialog struct {
	Title  string
	Prompt string
	Label  string
	Action string
	NoteID string
}

func NewDialog(c *domain.PendingConfirmation) *Dialog {
	if c == nil {
		return nil
	}
	return &Dialog{
		Title:  c.Action.DialogTitle(),
		Prompt: c.Prompt(),
		Label:  c.Action.Label(),
		Action: string(c.Action),
		NoteID: c.NoteID,
	}
}

type ActionButton struct {
	NoteID string
	Action string
	Label  string
}

type AdminPage struct {
	Nav      Nav
	Pending  []NoteCard
	Approved []NoteCard
	Notice   *domain.Notification
	Dialog   *Dialog
	Error    string
}

type NotFoundPage struct {
	Nav Nav
}
