package service

import (
	"fmt"
	"sync"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

type namedEntry struct {
	binding ports.ResourceBinding
	spec    domain.ResourceSpec
}

type singletonEntry struct {
	binding ports.SingletonBinding
	spec    domain.ResourceSpec
}

// BindingRegistry holds the remote bindings and field contracts per resource
// kind. A kind is either named or singleton, never both.
type BindingRegistry struct {
	mu         sync.RWMutex
	named      map[domain.ResourceKind]namedEntry
	singletons map[domain.ResourceKind]singletonEntry
}

func NewBindingRegistry() *BindingRegistry {
	return &BindingRegistry{
		named:      make(map[domain.ResourceKind]namedEntry),
		singletons: make(map[domain.ResourceKind]singletonEntry),
	}
}

func (r *BindingRegistry) RegisterNamed(binding ports.ResourceBinding, spec domain.ResourceSpec) error {
	if binding == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil resource binding")
	}
	kind := binding.Kind()
	if kind == "" {
		return errors.New(errors.CodeInternal, "resource binding kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registered(kind) {
		return errors.New(errors.CodeInternal, fmt.Sprintf("resource kind '%s' already registered", kind))
	}
	r.named[kind] = namedEntry{binding: binding, spec: spec}
	return nil
}

func (r *BindingRegistry) RegisterSingleton(binding ports.SingletonBinding, spec domain.ResourceSpec) error {
	if binding == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil singleton binding")
	}
	kind := binding.Kind()
	if kind == "" {
		return errors.New(errors.CodeInternal, "singleton binding kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registered(kind) {
		return errors.New(errors.CodeInternal, fmt.Sprintf("resource kind '%s' already registered", kind))
	}
	r.singletons[kind] = singletonEntry{binding: binding, spec: spec}
	return nil
}

// Named returns the CRUD binding for a named resource kind. Requesting a
// kind registered as a singleton is a usage error: unnamed resources support
// only read and update.
func (r *BindingRegistry) Named(kind domain.ResourceKind) (ports.ResourceBinding, domain.ResourceSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, found := r.named[kind]; found {
		return entry.binding, entry.spec, nil
	}
	if _, found := r.singletons[kind]; found {
		return nil, domain.ResourceSpec{}, errors.Newf(errors.CodeUnsupportedOperation,
			"resource kind '%s' is a singleton and supports only read and update", kind)
	}
	return nil, domain.ResourceSpec{}, errors.Newf(errors.CodeConfigValidation, "no binding registered for resource kind '%s'", kind)
}

func (r *BindingRegistry) Singleton(kind domain.ResourceKind) (ports.SingletonBinding, domain.ResourceSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, found := r.singletons[kind]; found {
		return entry.binding, entry.spec, nil
	}
	if _, found := r.named[kind]; found {
		return nil, domain.ResourceSpec{}, errors.Newf(errors.CodeConfigValidation,
			"resource kind '%s' is a named resource, not a singleton", kind)
	}
	return nil, domain.ResourceSpec{}, errors.Newf(errors.CodeConfigValidation, "no binding registered for resource kind '%s'", kind)
}

func (r *BindingRegistry) registered(kind domain.ResourceKind) bool {
	if _, found := r.named[kind]; found {
		return true
	}
	_, found := r.singletons[kind]
	return found
}
