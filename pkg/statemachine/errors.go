package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateTransition = errors.New("statemachine.duplicate_transition")
	ErrActionFailed        = errors.New("statemachine.action_failed")
)

// ErrNoTransitionAvailable means no transition exists for the state/event pair.
type ErrNoTransitionAvailable struct {
	State string
	Event string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("no transition available from state %q for event %q", e.State, e.Event)
}

func newErrNoTransitionAvailable(state, event any) *ErrNoTransitionAvailable {
	return &ErrNoTransitionAvailable{State: fmt.Sprint(state), Event: fmt.Sprint(event)}
}

// ErrTransitionRejected means every candidate transition was refused by a guard.
type ErrTransitionRejected struct {
	State string
	Event string
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("transition from state %q for event %q was rejected by guards", e.State, e.Event)
}

func newErrTransitionRejected(state, event any) *ErrTransitionRejected {
	return &ErrTransitionRejected{State: fmt.Sprint(state), Event: fmt.Sprint(event)}
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}
