package domain

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient message shown once to the visitor.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
