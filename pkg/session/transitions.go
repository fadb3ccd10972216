package session

import (
	"context"
	"log/slog"

	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/statemachine"
)

type event string

const (
	eventRestore event = "restore"
	eventLogin   event = "login"
	eventSucceed event = "succeed"
	eventFail    event = "fail"
	eventExpire  event = "expire"
	eventLogout  event = "logout"
)

var allStatuses = []Status{StatusAnonymous, StatusAuthenticating, StatusAuthenticated, StatusError}

func newStateMachine(log *slog.Logger) *statemachine.Machine[Status, event] {
	trace := statemachine.WithAction[Status, event](func(ctx context.Context, from, to Status, ev event, _ any) error {
		log.DebugContext(ctx, "session transition",
			slog.String("from", string(from)), slog.String("to", string(to)), slog.String("event", string(ev)))
		return nil
	})

	return statemachine.MustNew(StatusAnonymous,
		statemachine.WithTransition(StatusAnonymous, StatusAuthenticating, eventRestore, trace),
		statemachine.WithTransitionFrom(allStatuses, StatusAuthenticating, eventLogin, trace),
		statemachine.WithTransition(StatusAuthenticating, StatusAuthenticated, eventSucceed, trace),
		statemachine.WithTransition(StatusAuthenticating, StatusError, eventFail, trace),
		statemachine.WithTransition(StatusAuthenticating, StatusAnonymous, eventExpire, trace),
		statemachine.WithTransitionFrom(allStatuses, StatusAnonymous, eventLogout, trace),
	)
}

// fire applies ev and installs next. Callers hold m.mu.
func (m *Manager) fire(ctx context.Context, ev event, next Session) error {
	if err := m.sm.Fire(ctx, ev, nil); err != nil {
		m.log.ErrorContext(ctx, "rejected session transition",
			logger.Status(m.session.Status), slog.String("event", string(ev)), logger.Error(err))
		return err
	}
	next.Generation = m.gen
	m.session = next
	m.publishLocked(ctx)
	return nil
}
