// Package navigation tracks the current client view and forced redirects.
//
// History is the Navigator handed to the API client and the session manager.
// It records the current view path and every redirect so the presentation
// layer can react to them, typically by subscribing with OnRedirect.
package navigation

import (
	"slices"
	"sync"
)

// Default view paths.
const (
	LoginView        = "/login"
	HomeView         = "/"
	CatalogView      = "/trays"
	UnauthorizedView = "/"
)

// History is a concurrency-safe record of the current view.
type History struct {
	mu         sync.Mutex
	current    string
	redirects  []string
	onRedirect []func(view string)
}

// NewHistory starts at view.
func NewHistory(view string) *History {
	if view == "" {
		view = HomeView
	}
	return &History{current: view}
}

// Current returns the current view path.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Push records a user-initiated navigation.
func (h *History) Push(view string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = view
}

// Redirect records a forced navigation and notifies listeners.
func (h *History) Redirect(view string) {
	h.mu.Lock()
	h.current = view
	h.redirects = append(h.redirects, view)
	listeners := slices.Clone(h.onRedirect)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(view)
	}
}

// Redirects returns every forced navigation in order.
func (h *History) Redirects() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.redirects)
}

// OnRedirect registers fn to run after each Redirect, outside the lock.
func (h *History) OnRedirect(fn func(view string)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRedirect = append(h.onRedirect, fn)
}
