package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayshop/storefront/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()

		f := async.Async(context.Background(), 21, func(_ context.Context, v int) (int, error) {
			return v * 2, nil
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, res)
		assert.True(t, f.IsComplete())
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		f := async.Async(context.Background(), "x", func(context.Context, string) (string, error) {
			return "", boom
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context skips the function", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called = true
			return 1, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestFuture_Await(t *testing.T) {
	t.Parallel()

	t.Run("resolved future is complete", func(t *testing.T) {
		t.Parallel()

		f := async.Resolved("ok", nil)
		assert.True(t, f.IsComplete())

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "ok", res)
	})

	t.Run("await context returns on cancel", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			<-release
			return 1, nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := f.AwaitContext(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, f.IsComplete())
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			<-release
			return 7, nil
		})

		_, err := f.AwaitWithTimeout(5 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)

		close(release)
		<-f.Done()
		res, err := f.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, 7, res)
	})
}
