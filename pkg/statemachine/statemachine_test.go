package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayshop/storefront/pkg/statemachine"
)

type state string

type event string

const (
	idle    state = "idle"
	pending state = "pending"
	done    state = "done"
	failed  state = "failed"

	start   event = "start"
	finish  event = "finish"
	fail    event = "fail"
	restart event = "restart"
)

func TestMachine_Fire(t *testing.T) {
	t.Parallel()

	t.Run("follows declared transitions", func(t *testing.T) {
		t.Parallel()

		sm := statemachine.MustNew(idle,
			statemachine.WithTransition[state, event](idle, pending, start),
			statemachine.WithTransition[state, event](pending, done, finish),
		)
		ctx := context.Background()

		assert.Equal(t, idle, sm.Current())
		assert.True(t, sm.CanFire(ctx, start, nil))
		require.NoError(t, sm.Fire(ctx, start, nil))
		require.NoError(t, sm.Fire(ctx, finish, nil))
		assert.Equal(t, done, sm.Current())

		sm.Reset()
		assert.Equal(t, idle, sm.Current())
	})

	t.Run("undeclared transition is rejected", func(t *testing.T) {
		t.Parallel()

		sm := statemachine.MustNew(idle,
			statemachine.WithTransition[state, event](idle, pending, start),
		)

		err := sm.Fire(context.Background(), finish, nil)
		require.Error(t, err)
		assert.True(t, statemachine.IsNoTransitionAvailableError(err))
		assert.Contains(t, err.Error(), "idle")
		assert.Equal(t, idle, sm.Current())
	})

	t.Run("guards must all pass", func(t *testing.T) {
		t.Parallel()

		allow := func(_ context.Context, _ state, _ event, data any) bool {
			ok, _ := data.(bool)
			return ok
		}
		sm := statemachine.MustNew(idle,
			statemachine.WithTransition(idle, pending, start, statemachine.WithGuard[state, event](allow)),
		)
		ctx := context.Background()

		assert.False(t, sm.CanFire(ctx, start, false))
		err := sm.Fire(ctx, start, false)
		assert.True(t, statemachine.IsTransitionRejectedError(err))
		assert.Equal(t, idle, sm.Current())

		require.NoError(t, sm.Fire(ctx, start, true))
		assert.Equal(t, pending, sm.Current())
	})

	t.Run("failing action aborts transition", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var seen []state
		record := func(_ context.Context, from, to state, _ event, _ any) error {
			seen = append(seen, from, to)
			return nil
		}
		explode := func(context.Context, state, state, event, any) error { return boom }

		sm := statemachine.MustNew(idle,
			statemachine.WithTransition(idle, pending, start, statemachine.WithAction[state, event](record)),
			statemachine.WithTransition(pending, done, finish, statemachine.WithAction[state, event](explode)),
		)
		ctx := context.Background()

		require.NoError(t, sm.Fire(ctx, start, nil))
		assert.Equal(t, []state{idle, pending}, seen)

		err := sm.Fire(ctx, finish, nil)
		require.ErrorIs(t, err, statemachine.ErrActionFailed)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, pending, sm.Current())
	})

	t.Run("transition from several states", func(t *testing.T) {
		t.Parallel()

		sm := statemachine.MustNew(idle,
			statemachine.WithTransition[state, event](idle, pending, start),
			statemachine.WithTransition[state, event](pending, failed, fail),
			statemachine.WithTransitionFrom[state, event]([]state{idle, pending, failed, done}, idle, restart),
		)
		ctx := context.Background()

		require.NoError(t, sm.Fire(ctx, start, nil))
		require.NoError(t, sm.Fire(ctx, fail, nil))
		require.NoError(t, sm.Fire(ctx, restart, nil))
		assert.Equal(t, idle, sm.Current())
		require.NoError(t, sm.Fire(ctx, restart, nil))
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := statemachine.New(idle,
		statemachine.WithTransition[state, event](idle, pending, start),
		statemachine.WithTransition[state, event](idle, pending, start),
	)
	require.ErrorIs(t, err, statemachine.ErrDuplicateTransition)

	assert.Panics(t, func() {
		statemachine.MustNew(idle,
			statemachine.WithTransition[state, event](idle, pending, start),
			statemachine.WithTransition[state, event](idle, pending, start),
		)
	})
}
