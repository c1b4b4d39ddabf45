package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/KennethWKZ/subfinder/internal/apperrors"
)

// DefaultName is the reserved alias a provider may additionally be bound
// under, so callers can select "whatever is standard" without knowing
// implementation names.
const DefaultName = "default"

var (
	mu         sync.RWMutex
	registered = make(map[string]Factory)
)

// Register binds factory under name. Registering an already-bound name
// silently replaces the previous factory (last registration wins), which
// supports hot-replacement of a provider by name. It fails with
// ErrProviderContract when the binding cannot satisfy the provider contract.
func Register(name string, factory Factory) error {
	if name == "" {
		return apperrors.NewProviderContractError(name, "provider name is empty")
	}
	if factory == nil {
		return apperrors.NewProviderContractError(name, "factory is nil")
	}

	mu.Lock()
	defer mu.Unlock()
	registered[name] = factory
	return nil
}

// RegisterDefault binds factory under both its canonical name and the
// DefaultName alias in one step.
func RegisterDefault(name string, factory Factory) error {
	if err := Register(name, factory); err != nil {
		return err
	}
	return Register(DefaultName, factory)
}

// Lookup returns the factory bound to name, or fallback (which may be nil)
// when no binding exists. Pure read; never fails.
func Lookup(name string, fallback Factory) Factory {
	mu.RLock()
	defer mu.RUnlock()

	if f, ok := registered[name]; ok {
		return f
	}
	return fallback
}

// New constructs the provider registered under name and verifies it honors
// the contract: a constructed provider must declare at least one supported
// language and one supported format.
func New(name string, opts Options) (Provider, error) {
	factory := Lookup(name, nil)
	if factory == nil {
		return nil, fmt.Errorf("provider: unknown provider %q (registered: %v)", name, Names())
	}

	p, err := factory(opts)
	if err != nil {
		return nil, err
	}

	caps := p.Capabilities()
	if len(caps.Languages) == 0 {
		return nil, apperrors.NewProviderContractError(name, "no supported languages declared")
	}
	if len(caps.Formats) == 0 {
		return nil, apperrors.NewProviderContractError(name, "no supported formats declared")
	}
	return p, nil
}

// Names returns a sorted list of registered provider names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
