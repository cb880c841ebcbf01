package actions

import (
	"context"
	"fmt"
	"sync"
)

// Registry holds the action surface and dispatches by name. Registering a
// name twice replaces the earlier action; the registration order of names
// is preserved for listing.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
	}
}

// Register adds an action. A repeated name silently replaces the earlier
// registration and keeps its original position in the listing order.
func (r *Registry) Register(action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := action.Name()
	if _, exists := r.actions[name]; !exists {
		r.order = append(r.order, name)
	}
	r.actions[name] = action
}

// Get retrieves an action by name.
func (r *Registry) Get(name string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	action, ok := r.actions[name]
	return action, ok
}

// Names returns all registered action names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// List returns all registered actions in registration order.
func (r *Registry) List() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Action, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.actions[name])
	}
	return out
}

// Dispatch executes the named action. An unknown name returns guidance
// listing the available actions, not an error.
func (r *Registry) Dispatch(ctx context.Context, name, payload string) (string, error) {
	action, ok := r.Get(name)
	if !ok {
		return fmt.Sprintf("Unknown action %q. Available actions: %v.", name, r.Names()), nil
	}
	return action.Execute(ctx, payload)
}

// DefaultRegistry builds the full action surface over one controller.
func DefaultRegistry(c *Controller) *Registry {
	r := NewRegistry()
	r.Register(NewInitAction(c))
	r.Register(NewNavigateAction(c))
	r.Register(NewListInteractiveAction(c))
	r.Register(NewInspectAction(c))
	r.Register(NewClickAction(c))
	r.Register(NewFillAction(c))
	r.Register(NewOpenDropdownAction(c))
	r.Register(NewScreenshotAction(c))
	r.Register(NewAnalyzeScreenshotAction(c))
	r.Register(NewCloseAction(c))
	return r
}
