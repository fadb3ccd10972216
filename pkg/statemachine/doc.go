// Package statemachine is a small generic finite state machine.
//
// States and events are any comparable types, typically string-based
// constants. Transitions are declared with functional options at construction
// and looked up in a map keyed by the current state and the event. Each
// transition may carry guards, which must all pass, and actions, which run in
// order before the state changes; a failing action aborts the transition.
//
//	sm := statemachine.MustNew(Anonymous,
//	    statemachine.WithTransition(Anonymous, Authenticating, Login),
//	    statemachine.WithTransition(Authenticating, Authenticated, Succeed),
//	)
//	if err := sm.Fire(ctx, Login, nil); err != nil { ... }
//
// Fire reports a missing transition with *ErrNoTransitionAvailable and a guard
// refusal with *ErrTransitionRejected; use IsNoTransitionAvailableError and
// IsTransitionRejectedError to tell them apart.
//
// A Machine is safe for concurrent use.
package statemachine
