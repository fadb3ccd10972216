package statemachine

import (
	"context"
	"fmt"
	"sync"
)

type transitionKey[S, E comparable] struct {
	from  S
	event E
}

// Machine is a thread-safe in-memory state machine.
type Machine[S, E comparable] struct {
	initial     S
	current     S
	transitions map[transitionKey[S, E]][]Transition[S, E]
	mu          sync.RWMutex
}

// New creates a machine in the initial state.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	sm := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[transitionKey[S, E]][]Transition[S, E]),
	}

	for _, opt := range opts {
		if err := opt(sm); err != nil {
			return nil, err
		}
	}

	return sm, nil
}

// MustNew is New that panics on a configuration error.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	sm, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return sm
}

// Current returns the current state.
func (sm *Machine[S, E]) Current() S {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// AddTransition registers a transition. Several transitions may share the
// same from/event pair; the first whose guards pass is taken.
func (sm *Machine[S, E]) AddTransition(t Transition[S, E]) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	key := transitionKey[S, E]{from: t.From, event: t.Event}
	for _, existing := range sm.transitions[key] {
		if existing.To == t.To && len(existing.Guards) == 0 && len(t.Guards) == 0 {
			return fmt.Errorf("%w: %v -> %v on %v", ErrDuplicateTransition, t.From, t.To, t.Event)
		}
	}
	sm.transitions[key] = append(sm.transitions[key], t)
	return nil
}

// Fire applies event to the current state.
func (sm *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.current
	candidates := sm.transitions[transitionKey[S, E]{from: from, event: event}]
	if len(candidates) == 0 {
		return newErrNoTransitionAvailable(from, event)
	}

	var chosen *Transition[S, E]
	for i := range candidates {
		if candidates[i].allowed(ctx, from, event, data) {
			chosen = &candidates[i]
			break
		}
	}
	if chosen == nil {
		return newErrTransitionRejected(from, event)
	}

	for _, action := range chosen.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, from, chosen.To, event, data); err != nil {
			return fmt.Errorf("%w: %w", ErrActionFailed, err)
		}
	}

	sm.current = chosen.To
	return nil
}

// CanFire reports whether Fire would find an allowed transition.
// Actions are not run.
func (sm *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, t := range sm.transitions[transitionKey[S, E]{from: sm.current, event: event}] {
		if t.allowed(ctx, sm.current, event, data) {
			return true
		}
	}
	return false
}

// Reset returns the machine to its initial state.
func (sm *Machine[S, E]) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.current = sm.initial
}
