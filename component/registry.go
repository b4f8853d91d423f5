package component

import (
	"reflect"
	"sync"

	"github.com/rotisserie/eris"
)

// Registry hands out TypeIDs. Register is idempotent per name and safe for concurrent use, so one Registry can
// back every World of a Universe.
type Registry interface {
	Register(t reflect.Type) (TypeID, error)
}

type registered struct {
	id     TypeID
	schema []byte
}

var _ Registry = &MemoryRegistry{}

// MemoryRegistry is a process-local Registry.
type MemoryRegistry struct {
	mu     sync.RWMutex
	byName map[string]registered
	names  []string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{byName: map[string]registered{}}
}

func (r *MemoryRegistry) Register(t reflect.Type) (TypeID, error) {
	name := Name(t)
	if name == "" {
		return 0, eris.Wrapf(ErrEmptyName, "type %s", t)
	}
	schema, err := SchemaOf(t)
	if err != nil {
		return 0, err
	}

	r.mu.RLock()
	entry, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		// another caller may have won the race between the two locks
		if entry, ok = r.byName[name]; !ok {
			r.names = append(r.names, name)
			entry = registered{id: TypeID(len(r.names)), schema: schema}
			r.byName[name] = entry
		}
		r.mu.Unlock()
		if !ok {
			return entry.id, nil
		}
	}

	match, err := SchemaMatches(entry.schema, schema)
	if err != nil {
		return 0, err
	}
	if !match {
		return 0, eris.Wrapf(ErrSchemaMismatch, "name %q (type %s)", name, t)
	}
	return entry.id, nil
}

// Lookup returns the TypeID already assigned to t's name.
func (r *MemoryRegistry) Lookup(t reflect.Type) (TypeID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byName[Name(t)]
	return entry.id, ok
}

// Names returns registered names ordered by TypeID.
func (r *MemoryRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

var _ Registry = &TypeRegistry{}

// TypeRegistry keys TypeIDs by reflect.Type itself, so distinct types never collide even when their names do.
// Its ids mean nothing outside the process, which makes it the registry for a World that shares nothing.
type TypeRegistry struct {
	mu    sync.RWMutex
	byTyp map[reflect.Type]TypeID
	names []string
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byTyp: map[reflect.Type]TypeID{}}
}

func (r *TypeRegistry) Register(t reflect.Type) (TypeID, error) {
	r.mu.RLock()
	id, ok := r.byTyp[t]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok = r.byTyp[t]; ok {
		return id, nil
	}
	r.names = append(r.names, Name(t))
	id = TypeID(len(r.names))
	r.byTyp[t] = id
	return id, nil
}

// Names returns the names of registered types ordered by TypeID. Names may repeat.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}
