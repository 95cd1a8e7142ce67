package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbcbeauty/storefront/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("resolves with result", func(t *testing.T) {
		t.Parallel()

		f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})

		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.True(t, f.IsComplete())
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		f := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
			return 0, wantErr
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("cancelled context skips execution", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := false
		f := async.Async(ctx, 0, func(_ context.Context, _ int) (int, error) {
			ran = true
			return 1, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ran)
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		f := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
			time.Sleep(time.Second)
			return 1, nil
		})

		_, err := f.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("preserves argument order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		double := func(_ context.Context, n int) (int, error) { return n * 2, nil }

		results, err := async.WaitAll(
			async.Async(ctx, 1, double),
			async.Async(ctx, 2, double),
			async.Async(ctx, 3, double),
		)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 6}, results)
	})

	t.Run("joins errors", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		wantErr := errors.New("nope")

		_, err := async.WaitAll(
			async.Async(ctx, 0, func(_ context.Context, _ int) (int, error) { return 1, nil }),
			async.Async(ctx, 0, func(_ context.Context, _ int) (int, error) { return 0, wantErr }),
		)
		assert.ErrorIs(t, err, wantErr)
	})
}
