package domain

import "fmt"

type AdminAction string

const (
	ActionApprove AdminAction = "approve"
	ActionReject  AdminAction = "reject"
	ActionDelete  AdminAction = "delete"
)

func ParseAdminAction(s string) (AdminAction, error) {
	switch a := AdminAction(s); a {
	case ActionApprove, ActionReject, ActionDelete:
		return a, nil
	}
	return "", fmt.Errorf("unknown admin action %q", s)
}

// DialogTitle is the heading of the confirmation dialog for a.
func (a AdminAction) DialogTitle() string {
	switch a {
	case ActionApprove:
		return "Confirm Approval"
	case ActionDelete:
		return "Confirm Deletion"
	default:
		return "Confirm Rejection"
	}
}

func (a AdminAction) Label() string {
	switch a {
	case ActionApprove:
		return "Approve"
	case ActionDelete:
		return "Delete"
	default:
		return "Reject"
	}
}

// Outcome is the notification shown once the action succeeded.
func (a AdminAction) Outcome() Notification {
	switch a {
	case ActionApprove:
		return Notification{Message: "Note approved successfully.", Severity: SeveritySuccess}
	case ActionDelete:
		return Notification{Message: "Note deleted.", Severity: SeverityWarning}
	default:
		return Notification{Message: "Note rejected.", Severity: SeverityInfo}
	}
}

// PendingConfirmation is an admin action waiting for the visitor to confirm.
type PendingConfirmation struct {
	Action AdminAction `json:"action"`
	NoteID string      `json:"note_id"`
}

func (p *PendingConfirmation) Prompt() string {
	return fmt.Sprintf("Are you sure you want to %s this note? This action cannot be undone.", p.Action)
}

// Board is the admin console's local view of both note collections.
type Board struct {
	Pending  []*Note `json:"pending"`
	Approved []*Note `json:"approved"`
}

// Drop removes the note from the pending list only.
func (b *Board) Drop(id string) {
	b.Pending = WithoutNote(b.Pending, id)
}

// Purge removes the note from both lists.
func (b *Board) Purge(id string) {
	b.Pending = WithoutNote(b.Pending, id)
	b.Approved = WithoutNote(b.Approved, id)
}
