package notify

import (
	"time"

	"github.com/google/uuid"
)

// Severity categorizes a notification and controls its default display
// duration and visual styling in the view layer.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Default display durations per severity. Errors linger longer so users can
// read them; successes clear quickly.
const (
	DurationSuccess = 3 * time.Second
	DurationError   = 5 * time.Second
	DurationWarning = 4 * time.Second
	DurationInfo    = 3 * time.Second
)

// DefaultDuration returns the display duration used when the caller does not
// specify one. Unknown severities fall back to the success duration.
func (s Severity) DefaultDuration() time.Duration {
	switch s {
	case SeverityError:
		return DurationError
	case SeverityWarning:
		return DurationWarning
	case SeverityInfo:
		return DurationInfo
	default:
		return DurationSuccess
	}
}

// Notification is a single live message owned by the dispatcher queue.
type Notification struct {
	ID        uuid.UUID
	Message   string
	Severity  Severity
	Duration  time.Duration
	CreatedAt time.Time
}
