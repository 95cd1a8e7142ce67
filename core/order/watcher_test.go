package order_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbcbeauty/storefront/core/order"
)

// scriptedLister returns a different order snapshot per call.
type scriptedLister struct {
	mu        sync.Mutex
	snapshots [][]order.Order
	err       error
	calls     int
}

func (s *scriptedLister) All(_ context.Context) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	idx := min(s.calls-1, len(s.snapshots)-1)
	return s.snapshots[idx], nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) ShowSuccess(message string) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return uuid.New()
}

func (r *recordingNotifier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func TestWatcherCheckOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first observation seeds baseline without notifying", func(t *testing.T) {
		t.Parallel()

		lister := &scriptedLister{snapshots: [][]order.Order{
			{{OrderID: "A", Status: order.StatusPending}},
		}}
		n := &recordingNotifier{}
		w := order.NewWatcher(lister, n)

		w.CheckOnce(ctx)
		assert.Empty(t, n.all())
	})

	t.Run("status change notifies with the status message", func(t *testing.T) {
		t.Parallel()

		lister := &scriptedLister{snapshots: [][]order.Order{
			{{OrderID: "A", Status: order.StatusPending}},
			{{OrderID: "A", Status: order.StatusShipped}},
		}}
		n := &recordingNotifier{}
		w := order.NewWatcher(lister, n)

		w.CheckOnce(ctx)
		w.CheckOnce(ctx)

		require.Len(t, n.all(), 1)
		assert.Equal(t, "Your order has been shipped!", n.all()[0])
	})

	t.Run("unchanged status stays silent", func(t *testing.T) {
		t.Parallel()

		lister := &scriptedLister{snapshots: [][]order.Order{
			{{OrderID: "A", Status: order.StatusPending}},
			{{OrderID: "A", Status: order.StatusPending}},
		}}
		n := &recordingNotifier{}
		w := order.NewWatcher(lister, n)

		w.CheckOnce(ctx)
		w.CheckOnce(ctx)
		assert.Empty(t, n.all())
	})

	t.Run("probe failure is swallowed", func(t *testing.T) {
		t.Parallel()

		lister := &scriptedLister{err: errors.New("backend down")}
		n := &recordingNotifier{}
		w := order.NewWatcher(lister, n)

		w.CheckOnce(ctx)
		assert.Empty(t, n.all())
	})

	t.Run("new orders appearing later notify only on subsequent change", func(t *testing.T) {
		t.Parallel()

		lister := &scriptedLister{snapshots: [][]order.Order{
			{{OrderID: "A", Status: order.StatusPending}},
			{{OrderID: "A", Status: order.StatusPending}, {OrderID: "B", Status: order.StatusPending}},
			{{OrderID: "A", Status: order.StatusPending}, {OrderID: "B", Status: order.StatusCancelled}},
		}}
		n := &recordingNotifier{}
		w := order.NewWatcher(lister, n)

		w.CheckOnce(ctx)
		w.CheckOnce(ctx)
		assert.Empty(t, n.all())

		w.CheckOnce(ctx)
		require.Len(t, n.all(), 1)
		assert.Equal(t, "Your order has been cancelled", n.all()[0])
	})
}

func TestWatcherStart(t *testing.T) {
	t.Parallel()

	t.Run("polls on interval until cancelled", func(t *testing.T) {
		t.Parallel()

		lister := &scriptedLister{snapshots: [][]order.Order{
			{{OrderID: "A", Status: order.StatusPending}},
			{{OrderID: "A", Status: order.StatusDelivered}},
		}}
		n := &recordingNotifier{}
		w := order.NewWatcher(lister, n, order.WithInterval(10*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- w.Start(ctx) }()

		require.Eventually(t, func() bool {
			return len(n.all()) >= 1
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, "Your order has been delivered!", n.all()[0])

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}
