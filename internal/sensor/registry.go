package sensor

import (
	"sort"
	"sync"

	"github.com/nathanbaker/peek/internal/errors"
)

// Factory constructs an uninitialized sensor instance.
type Factory func() Sensor

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a sensor type available under the given type identifier.
// Registering the same identifier twice replaces the earlier factory;
// sensor packages register themselves from init functions.
func Register(kind string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = factory
}

// New constructs an uninitialized sensor of the given type.
func New(kind string) (Sensor, error) {
	registryMu.RLock()
	factory, ok := registry[kind]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.New(errors.ErrSensor,
			"Unknown sensor type: "+kind,
			"Run 'peek list' to see the registered sensor types")
	}
	return factory(), nil
}

// Kinds returns the registered type identifiers in sorted order.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
