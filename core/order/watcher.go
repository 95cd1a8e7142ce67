package order

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cbcbeauty/storefront/core/logger"
)

// Watcher defaults.
const (
	DefaultWatchInterval = 30 * time.Second
	DefaultProbeTimeout  = 20 * time.Second
)

// Notifier receives status-change messages. Matching the original client,
// all status notifications carry success severity.
type Notifier interface {
	ShowSuccess(message string) uuid.UUID
}

// Lister is the order source the watcher polls.
type Lister interface {
	All(ctx context.Context) ([]Order, error)
}

// Watcher polls the user's orders on a fixed interval and notifies when an
// order's status differs from the previously observed one. Probes run
// sequentially: a slow probe delays the next tick instead of overlapping it.
type Watcher struct {
	orders   Lister
	notifier Notifier
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	last map[string]Status

	startOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval. Default is 30 seconds.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithProbeTimeout bounds each probe request. Default is 20 seconds.
func WithProbeTimeout(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithWatcherLogger configures structured logging for the watcher.
func WithWatcherLogger(log *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if log != nil {
			w.logger = log
		}
	}
}

// NewWatcher creates a status watcher. Call Start to begin polling.
func NewWatcher(orders Lister, notifier Notifier, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		orders:   orders,
		notifier: notifier,
		interval: DefaultWatchInterval,
		timeout:  DefaultProbeTimeout,
		logger:   logger.Discard(),
		last:     make(map[string]Status),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs the polling loop until ctx is cancelled. Blocking; run it in a
// goroutine. An initial probe fires immediately, then one per interval.
// Probe failures are logged and swallowed; status polling never surfaces
// errors to the user.
func (w *Watcher) Start(ctx context.Context) error {
	var started bool
	w.startOnce.Do(func() { started = true })
	if !started {
		return nil
	}

	w.logger.Info("order status watcher started",
		logger.Component("order"),
		logger.Duration(w.interval))

	w.CheckOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("order status watcher stopped", logger.Component("order"))
			return ctx.Err()
		case <-ticker.C:
			w.CheckOnce(ctx)
		}
	}
}

// CheckOnce performs a single bounded probe and notifies on every order whose
// status changed since the previous observation. First observations seed the
// baseline without notifying.
func (w *Watcher) CheckOnce(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	orders, err := w.orders.All(probeCtx)
	if err != nil {
		w.logger.Debug("order status probe failed",
			logger.Component("order"),
			logger.Error(err))
		return
	}

	current := make(map[string]Status, len(orders))
	for _, o := range orders {
		current[o.OrderID] = o.Status
	}

	w.mu.Lock()
	previous := w.last
	w.last = current
	w.mu.Unlock()

	for id, status := range current {
		prev, seen := previous[id]
		if !seen || prev == status {
			continue
		}

		w.logger.Info("order status changed",
			logger.Component("order"),
			logger.OrderID(id),
			slog.String("from", string(prev)),
			slog.String("to", string(status)))

		if w.notifier != nil {
			w.notifier.ShowSuccess(status.Message())
		}
	}
}
