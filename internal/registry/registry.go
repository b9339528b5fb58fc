// Package registry provides the global table of object types.
// Object packages register themselves in init() functions, so the engine
// dispatches every per-type behaviour through this table without knowing
// the concrete types.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tomb-engine/internal/entity"
)

var (
	objects = make(map[entity.ObjectID]*Object)
	names   = make(map[string]entity.ObjectID)
	mu      sync.RWMutex
)

// Register adds an object type to the registry and resolves its optional
// behaviour slots. Typically called from an object package's init().
// Panics on a duplicate id or name, or a missing behaviour.
func Register(obj Object) {
	mu.Lock()
	defer mu.Unlock()

	if obj.Behavior == nil {
		panic(fmt.Sprintf("registry: object %d (%q) has no behaviour", obj.ID, obj.Name))
	}
	if _, exists := objects[obj.ID]; exists {
		panic(fmt.Sprintf("registry: object %d already registered", obj.ID))
	}
	if _, exists := names[obj.Name]; exists {
		panic(fmt.Sprintf("registry: object name %q already registered", obj.Name))
	}

	o := obj
	o.resolve()
	objects[o.ID] = &o
	names[o.Name] = o.ID
}

// Lookup returns the object type for an id.
func Lookup(id entity.ObjectID) (*Object, bool) {
	mu.RLock()
	defer mu.RUnlock()

	o, ok := objects[id]
	return o, ok
}

// ByName returns the object type registered under a name.
func ByName(name string) (*Object, bool) {
	mu.RLock()
	defer mu.RUnlock()

	id, ok := names[name]
	if !ok {
		return nil, false
	}
	return objects[id], true
}

// List returns all registered object types, sorted by id.
func List() []*Object {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]*Object, 0, len(objects))
	for _, o := range objects {
		result = append(result, o)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Exists checks if an object type with the given id is registered.
func Exists(id entity.ObjectID) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := objects[id]
	return ok
}
