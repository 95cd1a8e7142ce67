package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cbcbeauty/storefront/core/logger"
)

const defaultEventBuffer = 64

// EventKind distinguishes dispatcher event types on the subscription channel.
type EventKind int

const (
	// EventShown is emitted when a notification enters the live queue.
	EventShown EventKind = iota
	// EventDismissed is emitted when a notification leaves the live queue,
	// whether by timer expiry or manual dismissal.
	EventDismissed
)

// Event is delivered to subscribers for each queue change.
type Event struct {
	Kind         EventKind
	Notification Notification
}

// Dispatcher owns the live notification queue. It is safe for concurrent use.
type Dispatcher struct {
	mu     sync.Mutex
	live   []Notification
	timers map[uuid.UUID]*time.Timer
	events chan Event
	logger *slog.Logger
	closed bool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger configures structured logging for the dispatcher.
func WithLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.logger = log
		}
	}
}

// WithEventBuffer sets the subscription channel buffer size. Default is 64.
// When the buffer is full, events are dropped rather than blocking managers.
func WithEventBuffer(size int) DispatcherOption {
	return func(d *Dispatcher) {
		if size > 0 {
			d.events = make(chan Event, size)
		}
	}
}

// NewDispatcher creates a dispatcher with an empty live queue.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		timers: make(map[uuid.UUID]*time.Timer),
		events: make(chan Event, defaultEventBuffer),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Show appends a notification to the live queue and schedules its expiry.
// A non-positive duration selects the severity's default. Returns the
// notification's identifier, which is unique per call.
func (d *Dispatcher) Show(message string, severity Severity, duration time.Duration) uuid.UUID {
	if duration <= 0 {
		duration = severity.DefaultDuration()
	}

	n := Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		Duration:  duration,
		CreatedAt: time.Now(),
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return uuid.Nil
	}
	d.live = append(d.live, n)
	d.timers[n.ID] = time.AfterFunc(duration, func() {
		d.Dismiss(n.ID)
	})
	d.emitLocked(Event{Kind: EventShown, Notification: n})
	d.mu.Unlock()

	d.logger.Debug("notification shown",
		logger.Component("notify"),
		slog.String("severity", string(severity)),
		logger.Duration(duration))

	return n.ID
}

// ShowSuccess enqueues a success notification with the default duration.
func (d *Dispatcher) ShowSuccess(message string) uuid.UUID {
	return d.Show(message, SeveritySuccess, 0)
}

// ShowError enqueues an error notification with the default duration.
func (d *Dispatcher) ShowError(message string) uuid.UUID {
	return d.Show(message, SeverityError, 0)
}

// ShowWarning enqueues a warning notification with the default duration.
func (d *Dispatcher) ShowWarning(message string) uuid.UUID {
	return d.Show(message, SeverityWarning, 0)
}

// ShowInfo enqueues an info notification with the default duration.
func (d *Dispatcher) ShowInfo(message string) uuid.UUID {
	return d.Show(message, SeverityInfo, 0)
}

// Dismiss removes the notification with the given id from the live queue.
// It is idempotent: dismissing an absent or already-expired id is a no-op.
func (d *Dispatcher) Dismiss(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if t, ok := d.timers[id]; ok {
		t.Stop()
		delete(d.timers, id)
	}

	for i, n := range d.live {
		if n.ID == id {
			d.live = append(d.live[:i], d.live[i+1:]...)
			d.emitLocked(Event{Kind: EventDismissed, Notification: n})
			return
		}
	}
}

// Active returns a snapshot of live notifications in insertion order.
func (d *Dispatcher) Active() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Notification, len(d.live))
	copy(out, d.live)
	return out
}

// Events returns the subscription channel for queue changes. The channel is
// closed by Close.
func (d *Dispatcher) Events() <-chan Event {
	return d.events
}

// Close stops all pending expiry timers and closes the events channel.
// Subsequent Show calls return uuid.Nil; Dismiss becomes a no-op.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true

	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
	d.live = nil
	close(d.events)
}

// emitLocked delivers an event without blocking managers. Callers must hold
// d.mu. A full buffer drops the event; the live queue stays authoritative.
func (d *Dispatcher) emitLocked(ev Event) {
	select {
	case d.events <- ev:
	default:
		d.logger.Debug("notification event dropped, buffer full",
			logger.Component("notify"))
	}
}
