package model

// Severity of a transient notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is a toast: the core picks title and severity, never layout.
type Notification struct {
	Title    string
	Severity Severity
}

// Notifier displays transient feedback.
type Notifier interface {
	Notify(n Notification)
}
