package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/specialistvlad/uiprobe/internal/driver"
)

// Module is the interface that all compiled-in modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the drivers available to a single application instance.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]driver.Driver
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{drivers: make(map[string]driver.Driver)}
}

// NewWithModules creates a Registry and lets every module register into it.
func NewWithModules(modules ...Module) *Registry {
	r := New()
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterDriver adds d under d.Name(). Registering a name twice is a
// programming error and panics.
func (r *Registry) RegisterDriver(d driver.Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.drivers[d.Name()]; exists {
		panic(fmt.Sprintf("driver with name '%s' already registered", d.Name()))
	}
	r.drivers[d.Name()] = d
}

// Driver returns the driver registered under name.
func (r *Registry) Driver(name string) (driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drivers[name]
	if !ok {
		return nil, fmt.Errorf("unknown driver '%s' (registered: %v)", name, r.namesLocked())
	}
	return d, nil
}

// DriverNames returns the registered driver names in sorted order.
func (r *Registry) DriverNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
