// Package capability maps action names to the capability providers that
// implement them.
package capability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Registry errors.
var (
	ErrNilProvider       = errors.New("provider cannot be nil")
	ErrEmptyProviderName = errors.New("provider name cannot be empty")
)

// ProviderExistsError is returned when a provider name is registered twice.
type ProviderExistsError struct {
	Name string
}

func (e *ProviderExistsError) Error() string {
	return fmt.Sprintf("capability %q is already registered", e.Name)
}

// ConflictError is returned when two providers expose the same action.
type ConflictError struct {
	Action   string
	Existing string
	Incoming string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("action %q of capability %q conflicts with capability %q",
		e.Action, e.Incoming, e.Existing)
}

// Provider is a named set of actions.
type Provider struct {
	Name    string
	Actions map[string]ports.Action
	// Docs holds optional one-line documentation per action.
	Docs map[string]string
}

// ActionInfo describes one registered action.
type ActionInfo struct {
	Capability string
	Action     string
	Doc        string
}

// Registry resolves actions by name. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*Provider
	owners    map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]*Provider),
		owners:    make(map[string]string),
	}
}

// Register adds a provider. Registration is all or nothing: if any of its
// actions is already owned by another provider nothing is registered.
func (r *Registry) Register(p *Provider) error {
	if p == nil {
		return ErrNilProvider
	}
	if p.Name == "" {
		return ErrEmptyProviderName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[p.Name]; exists {
		return &ProviderExistsError{Name: p.Name}
	}
	for _, name := range sortedKeys(p.Actions) {
		if owner, taken := r.owners[name]; taken {
			return &ConflictError{Action: name, Existing: owner, Incoming: p.Name}
		}
	}

	r.providers[p.Name] = p
	for name := range p.Actions {
		r.owners[name] = p.Name
	}
	return nil
}

// MustRegister registers providers or panics.
func (r *Registry) MustRegister(providers ...*Provider) *Registry {
	for _, p := range providers {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Resolve returns the action registered under name.
func (r *Registry) Resolve(action string) (ports.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrCapabilityNotAvailable, action)
	}
	return r.providers[owner].Actions[action], nil
}

// Lookup returns method on the named capability. Workers use it to run
// exactly the capability the controller asked for.
func (r *Registry) Lookup(capability, method string) (ports.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[capability]
	if !ok {
		return nil, fmt.Errorf("%w: capability %s", ports.ErrCapabilityNotAvailable, capability)
	}
	fn, ok := p.Actions[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ports.ErrCapabilityNotAvailable, capability, method)
	}
	return fn, nil
}

// Capabilities returns the registered provider names, sorted.
func (r *Registry) Capabilities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.providers)
}

// Actions lists every registered action sorted by capability then name.
func (r *Registry) Actions() []ActionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ActionInfo, 0, len(r.owners))
	for _, capName := range sortedKeys(r.providers) {
		p := r.providers[capName]
		for _, name := range sortedKeys(p.Actions) {
			infos = append(infos, ActionInfo{Capability: capName, Action: name, Doc: p.Docs[name]})
		}
	}
	return infos
}

// Call resolves action and invokes it.
func (r *Registry) Call(ctx context.Context, action string, args ...any) (any, error) {
	fn, err := r.Resolve(action)
	if err != nil {
		return nil, err
	}
	return fn(ctx, args...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ensure Registry implements ports.CapabilityResolver.
var _ ports.CapabilityResolver = (*Registry)(nil)
