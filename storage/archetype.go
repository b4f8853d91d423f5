package storage

import (
	"reflect"

	"github.com/rotisserie/eris"

	"pkg.world.dev/hydro/component"
	"pkg.world.dev/hydro/entity"
)

// ArchetypeID indexes an Archetype inside its ArchetypeRegistry.
type ArchetypeID int

// Row is an entity's position inside its Archetype. Rows move under swap-compaction, so they are never handed
// out as stable handles.
type Row int

// ColumnSpec describes one per-entity component type of an Archetype.
type ColumnSpec struct {
	ID   component.TypeID
	Type reflect.Type
}

// SharedValue is one component value stored once per Archetype.
type SharedValue struct {
	ID    component.TypeID
	Value reflect.Value
}

// Archetype is a collection of Entities that share the same component types and the same shared values.
// Row i of every column, and of the entity list, describes the same entity.
type Archetype struct {
	id       ArchetypeID
	entities []entity.Entity
	columns  []*Column
	colIndex map[component.TypeID]int
	shared   []SharedValue
	shrIndex map[component.TypeID]int
}

// NewArchetype creates an empty archetype. columns and shared must be sorted by TypeID.
func NewArchetype(id ArchetypeID, columns []ColumnSpec, shared []SharedValue, capacity int) *Archetype {
	a := &Archetype{
		id:       id,
		entities: make([]entity.Entity, 0, capacity),
		columns:  make([]*Column, len(columns)),
		colIndex: make(map[component.TypeID]int, len(columns)),
		shared:   make([]SharedValue, len(shared)),
		shrIndex: make(map[component.TypeID]int, len(shared)),
	}
	for i, spec := range columns {
		a.columns[i] = NewColumn(spec.ID, spec.Type, capacity)
		a.colIndex[spec.ID] = i
	}
	for i, sv := range shared {
		// keep a private copy behind a pointer so lookups can hand out a stable *T
		ptr := reflect.New(sv.Value.Type())
		ptr.Elem().Set(sv.Value)
		a.shared[i] = SharedValue{ID: sv.ID, Value: ptr.Elem()}
		a.shrIndex[sv.ID] = i
	}
	return a
}

func (a *Archetype) ID() ArchetypeID {
	return a.id
}

// Len returns the number of entities stored in the archetype.
func (a *Archetype) Len() int {
	return len(a.entities)
}

func (a *Archetype) Entities() []entity.Entity {
	return a.entities
}

func (a *Archetype) EntityAt(row Row) entity.Entity {
	return a.entities[row]
}

func (a *Archetype) Columns() []*Column {
	return a.columns
}

// Column returns the column holding the given component type.
func (a *Archetype) Column(id component.TypeID) (*Column, bool) {
	i, ok := a.colIndex[id]
	if !ok {
		return nil, false
	}
	return a.columns[i], true
}

func (a *Archetype) Shared() []SharedValue {
	return a.shared
}

// AppendRow stores e with one value per column, given in column order, and returns its row.
func (a *Archetype) AppendRow(e entity.Entity, values []reflect.Value) Row {
	if len(values) != len(a.columns) {
		panic(eris.Errorf("archetype %d has %d columns, got %d values", a.id, len(a.columns), len(values)))
	}
	row := Row(len(a.entities))
	for i, c := range a.columns {
		c.push(values[i])
	}
	a.entities = append(a.entities, e)
	a.checkColumns()
	return row
}

// SwapRemove removes row from every column by moving the last row into its place. If another entity was moved
// it is returned so the caller can update that entity's location.
func (a *Archetype) SwapRemove(row Row) (entity.Entity, bool) {
	last := Row(len(a.entities) - 1)
	if row < 0 || row > last {
		panic(eris.Errorf("archetype %d: row %d out of range [0, %d]", a.id, row, last))
	}
	for _, c := range a.columns {
		c.swapRemove(int(row))
	}
	moved := a.entities[last]
	a.entities[row] = moved
	a.entities = a.entities[:last]
	a.checkColumns()
	if row == last {
		return entity.Entity{}, false
	}
	return moved, true
}

func (a *Archetype) checkColumns() {
	for _, c := range a.columns {
		if c.Len() != len(a.entities) {
			panic(eris.Errorf("archetype %d: column %d has %d rows, expected %d", a.id, c.id, c.Len(), len(a.entities)))
		}
	}
}

// ComponentAt returns the value of component id stored at row.
func (a *Archetype) ComponentAt(id component.TypeID, row Row) (reflect.Value, bool) {
	c, ok := a.Column(id)
	if !ok || row < 0 || int(row) >= c.Len() {
		return reflect.Value{}, false
	}
	return c.at(int(row)), true
}

// SharedValue returns the archetype's shared value of component id.
func (a *Archetype) SharedValue(id component.TypeID) (reflect.Value, bool) {
	i, ok := a.shrIndex[id]
	if !ok {
		return reflect.Value{}, false
	}
	return a.shared[i].Value, true
}

// ComponentAs is ComponentAt narrowed to T. It fails closed when the stored value is not a T.
func ComponentAs[T any](a *Archetype, id component.TypeID, row Row) (*T, bool) {
	v, ok := a.ComponentAt(id, row)
	if !ok {
		return nil, false
	}
	return addrAs[T](v)
}

// SharedAs is SharedValue narrowed to T.
func SharedAs[T any](a *Archetype, id component.TypeID) (*T, bool) {
	v, ok := a.SharedValue(id)
	if !ok {
		return nil, false
	}
	return addrAs[T](v)
}

func addrAs[T any](v reflect.Value) (*T, bool) {
	ptr, ok := v.Addr().Interface().(*T)
	if !ok {
		return nil, false
	}
	return ptr, true
}
