package hydro

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/hydro/component"
	"pkg.world.dev/hydro/entity"
	"pkg.world.dev/hydro/log"
	"pkg.world.dev/hydro/statsd"
	"pkg.world.dev/hydro/storage"
)

// Tuple is an ordered set of component values. InsertFrom takes one Tuple of shared values, stored once per
// archetype, and one Tuple of per-entity values for each entity.
type Tuple []any

// World is an independent entity store. Entities from different Worlds are never comparable.
type World struct {
	id uuid.UUID

	types     component.Registry
	typeIDs   map[reflect.Type]component.TypeID
	typeNames map[component.TypeID]string
	idTypes   map[component.TypeID]reflect.Type

	entities   *entity.Allocator
	archetypes *storage.ArchetypeRegistry
	locations  *storage.LocationMap

	logger log.Logger
	tags   []string
}

var _ log.Loggable = &World{}

func newWorld(id uuid.UUID, types component.Registry, capacity int, logger log.Logger) *World {
	return &World{
		id:         id,
		types:      types,
		typeIDs:    map[reflect.Type]component.TypeID{},
		typeNames:  map[component.TypeID]string{},
		idTypes:    map[component.TypeID]reflect.Type{},
		entities:   entity.NewAllocator(capacity),
		archetypes: storage.NewArchetypeRegistry(capacity),
		locations:  storage.NewLocationMap(capacity),
		logger:     logger,
		tags:       []string{"world:" + id.String()},
	}
}

func (w *World) ID() uuid.UUID {
	return w.id
}

func (w *World) Logger() *zerolog.Logger {
	return w.logger.Logger
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.Len()
}

func (w *World) ArchetypeCount() int {
	return w.archetypes.Count()
}

func (w *World) Archetypes() []*storage.Archetype {
	return w.archetypes.Archetypes()
}

// ComponentName returns the registry name of a type id this World has seen.
func (w *World) ComponentName(id component.TypeID) string {
	return w.typeNames[id]
}

// typeID resolves t through the World's cache, falling back to the type registry on first sight.
func (w *World) typeID(t reflect.Type) (component.TypeID, error) {
	if id, ok := w.typeIDs[t]; ok {
		return id, nil
	}
	id, err := w.types.Register(t)
	if err != nil {
		return 0, eris.Wrapf(err, "failed to register component type %s", t)
	}
	if other, ok := w.idTypes[id]; ok && other != t {
		return 0, eris.Wrapf(ErrTypeIDCollision, "%s and %s both resolve to type id %d", other, t, id)
	}
	w.typeIDs[t] = id
	w.idTypes[id] = t
	w.typeNames[id] = component.Name(t)
	return id, nil
}

// InsertFrom creates one entity per entry. Every entry must have the same shape: the same component types in
// the same order. All of them land in one archetype together with the shared values. The returned entities are
// in entry order. Nothing is inserted when an error is returned.
func (w *World) InsertFrom(shared Tuple, entries []Tuple) ([]entity.Entity, error) {
	sharedValues, err := w.resolveShared(shared)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []entity.Entity{}, nil
	}
	columns, order, err := w.resolveShape(entries)
	if err != nil {
		return nil, err
	}

	arch, created := w.archetypes.FindOrCreate(columns, sharedValues)
	if created {
		w.logger.LogArchetype(zerolog.DebugLevel, w, arch, "archetype created")
		statsd.Count(statsd.ArchetypesCreated, 1, w.tags)
	}

	out := make([]entity.Entity, len(entries))
	row := make([]reflect.Value, len(order))
	for i, entry := range entries {
		for pos, col := range order {
			row[col] = reflect.ValueOf(entry[pos])
		}
		e := w.entities.Allocate()
		r := arch.AppendRow(e, row)
		w.locations.Set(e.Index, storage.Location{Archetype: arch.ID(), Row: r})
		out[i] = e
	}
	statsd.Count(statsd.EntitiesCreated, int64(len(out)), w.tags)
	return out, nil
}

func (w *World) resolveShared(shared Tuple) ([]storage.SharedValue, error) {
	values := make([]storage.SharedValue, len(shared))
	seen := make(map[component.TypeID]struct{}, len(shared))
	for i, v := range shared {
		if v == nil {
			return nil, eris.Wrapf(ErrNilComponent, "shared value %d", i)
		}
		t := reflect.TypeOf(v)
		id, err := w.typeID(t)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			return nil, eris.Wrapf(ErrDuplicateComponentType, "shared type %s", t)
		}
		seen[id] = struct{}{}
		values[i] = storage.SharedValue{ID: id, Value: reflect.ValueOf(v)}
	}
	return values, nil
}

// resolveShape derives the column layout from the first entry and checks every entry against it. order maps an
// entry position to its column index in the archetype.
func (w *World) resolveShape(entries []Tuple) ([]storage.ColumnSpec, []int, error) {
	first := entries[0]
	columns := make([]storage.ColumnSpec, len(first))
	seen := make(map[component.TypeID]int, len(first))
	for pos, v := range first {
		if v == nil {
			return nil, nil, eris.Wrapf(ErrNilComponent, "entry 0, position %d", pos)
		}
		t := reflect.TypeOf(v)
		id, err := w.typeID(t)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := seen[id]; dup {
			return nil, nil, eris.Wrapf(ErrDuplicateComponentType, "component type %s", t)
		}
		seen[id] = pos
		columns[pos] = storage.ColumnSpec{ID: id, Type: t}
	}

	for i, entry := range entries[1:] {
		if len(entry) != len(first) {
			return nil, nil, eris.Wrapf(ErrEntryShapeMismatch, "entry %d has %d values, want %d", i+1, len(entry), len(first))
		}
		for pos, v := range entry {
			if v == nil {
				return nil, nil, eris.Wrapf(ErrNilComponent, "entry %d, position %d", i+1, pos)
			}
			if t := reflect.TypeOf(v); t != columns[pos].Type {
				return nil, nil, eris.Wrapf(ErrEntryShapeMismatch,
					"entry %d, position %d holds %s, want %s", i+1, pos, t, columns[pos].Type)
			}
		}
	}

	sorted := append([]storage.ColumnSpec(nil), columns...)
	storage.SortColumns(sorted)
	order := make([]int, len(first))
	for col, spec := range sorted {
		order[seen[spec.ID]] = col
	}
	return sorted, order, nil
}

// locate returns the archetype and location of a live entity.
func (w *World) locate(e entity.Entity) (*storage.Archetype, storage.Location, bool) {
	if !w.entities.IsAlive(e) {
		return nil, storage.Location{}, false
	}
	loc, ok := w.locations.Get(e.Index)
	if !ok {
		panic(eris.Errorf("live entity %s has no location", e))
	}
	arch := w.archetypes.Archetype(loc.Archetype)
	if int(loc.Row) >= arch.Len() || arch.EntityAt(loc.Row) != e {
		panic(eris.Errorf("entity %s location %+v does not hold it", e, loc))
	}
	return arch, loc, true
}

// IsAlive reports whether e is a live entity of this World.
func (w *World) IsAlive(e entity.Entity) bool {
	return w.entities.IsAlive(e)
}

// Delete removes e and invalidates its handle. It reports false if e was not alive.
func (w *World) Delete(e entity.Entity) bool {
	arch, loc, ok := w.locate(e)
	if !ok {
		return false
	}
	if moved, ok := arch.SwapRemove(loc.Row); ok {
		w.locations.Set(moved.Index, loc)
	}
	w.locations.Remove(e.Index)
	w.entities.Release(e)
	statsd.Count(statsd.EntitiesDeleted, 1, w.tags)
	return true
}

// Component returns e's component of type T. It reports false if e is not alive or has no T. The pointer
// addresses the stored value and is valid until the next InsertFrom or Delete on w.
func Component[T any](w *World, e entity.Entity) (*T, bool) {
	arch, loc, ok := w.locate(e)
	if !ok {
		return nil, false
	}
	id, ok := w.typeIDs[component.TypeOf[T]()]
	if !ok {
		return nil, false
	}
	return storage.ComponentAs[T](arch, id, loc.Row)
}

// Shared returns the shared value of type T of e's archetype. It reports false if e is not alive or was not
// inserted with a T.
func Shared[T any](w *World, e entity.Entity) (*T, bool) {
	arch, _, ok := w.locate(e)
	if !ok {
		return nil, false
	}
	id, ok := w.typeIDs[component.TypeOf[T]()]
	if !ok {
		return nil, false
	}
	return storage.SharedAs[T](arch, id)
}

// LogWorld logs entity totals and the layout of every archetype.
func (w *World) LogWorld(level zerolog.Level) {
	w.logger.LogWorld(level, w)
}

// LogEntity logs e's location and components. It reports false if e is not alive.
func (w *World) LogEntity(level zerolog.Level, e entity.Entity) bool {
	arch, loc, ok := w.locate(e)
	if !ok {
		return false
	}
	w.logger.LogEntity(level, w, e, loc, arch)
	return true
}
