package gateway

import (
	"sync"

	"github.com/rs/zerolog"

	"movement-reconciliation/internal/domain"
	"movement-reconciliation/internal/usecase"
)

// LogNotifier implements the Notifier interface by writing to a logger.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a notifier logging through log.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs text at the level matching severity.
func (n *LogNotifier) Notify(severity domain.Severity, text string) {
	var event *zerolog.Event
	switch severity {
	case domain.SeverityInfo:
		event = n.log.Info()
	case domain.SeverityWarning:
		event = n.log.Warn()
	case domain.SeverityError, domain.SeverityCritical:
		event = n.log.Error()
	default:
		event = n.log.Warn()
	}
	event.Str("severity", string(severity)).Str("component", "notifier").Msg(text)
}

// Notification is one message captured by a RecordingNotifier.
type Notification struct {
	Severity domain.Severity `json:"severity"`
	Text     string          `json:"text"`
}

// RecordingNotifier keeps notifications in memory and optionally forwards
// them to another notifier. It is safe for concurrent use.
type RecordingNotifier struct {
	mu      sync.Mutex
	next    usecase.Notifier
	entries []Notification
}

// NewRecordingNotifier creates a recorder forwarding to next, which may be nil.
func NewRecordingNotifier(next usecase.Notifier) *RecordingNotifier {
	return &RecordingNotifier{next: next}
}

// Notify records the notification.
func (n *RecordingNotifier) Notify(severity domain.Severity, text string) {
	n.mu.Lock()
	n.entries = append(n.entries, Notification{Severity: severity, Text: text})
	n.mu.Unlock()

	if n.next != nil {
		n.next.Notify(severity, text)
	}
}

// Notifications returns a copy of everything recorded so far.
func (n *RecordingNotifier) Notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.entries))
	copy(out, n.entries)
	return out
}
