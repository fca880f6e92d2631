package mount

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/types"
)

// Registry is a generic, thread-safe registry for storing and
// retrieving items by name.
type Registry[T any] interface {
	// Register adds an item to the registry
	Register(name string, item T) error

	// Get retrieves an item from the registry
	Get(name string) (T, error)

	// List returns all registered names in sorted order
	List() []string

	// Has checks if an item is registered
	Has(name string) bool

	// Count returns the number of registered items
	Count() int
}

type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry creates an empty Registry instance.
func NewRegistry[T any]() Registry[T] {
	return &registry[T]{
		items: make(map[string]T),
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name)
	}

	r.items[name] = item
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}

	return item, nil
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails.
// Useful in init() functions where a failure is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

// providers is the global provider registry. Providers self-register
// in init(); cmd/skyhook blank-imports the provider packages.
var providers = NewRegistry[Registration]()

// RegisterProvider adds a provider under its kind, with its install
// hooks resolved once here rather than branched on later.
func RegisterProvider(p Provider, hooks Hooks) {
	MustRegister(providers, string(p.Kind()), Registration{Provider: p, Hooks: hooks})
}

// GetProvider looks up the registration for a mount kind.
func GetProvider(kind types.MountKind) (Registration, error) {
	reg, err := providers.Get(string(kind))
	if err != nil {
		return Registration{}, errors.Newf(errors.ErrNotFound, "no provider registered for mount kind '%s'", kind)
	}
	return reg, nil
}

// Kinds returns the registered mount kinds in sorted order.
func Kinds() []string {
	return providers.List()
}
