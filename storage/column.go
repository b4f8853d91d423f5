package storage

import (
	"reflect"

	"github.com/rotisserie/eris"

	"pkg.world.dev/hydro/component"
)

// Column is the densely packed storage of one component type inside an Archetype. Values live in a single
// []T slice so a scan over a column walks contiguous memory.
type Column struct {
	id     component.TypeID
	typ    reflect.Type
	values reflect.Value
}

func NewColumn(id component.TypeID, typ reflect.Type, capacity int) *Column {
	return &Column{
		id:     id,
		typ:    typ,
		values: reflect.MakeSlice(reflect.SliceOf(typ), 0, capacity),
	}
}

func (c *Column) ID() component.TypeID {
	return c.id
}

func (c *Column) Type() reflect.Type {
	return c.typ
}

func (c *Column) Len() int {
	return c.values.Len()
}

// push appends v, which must already be of the column's type.
func (c *Column) push(v reflect.Value) {
	if v.Type() != c.typ {
		panic(eris.Errorf("column %d holds %s, got %s", c.id, c.typ, v.Type()))
	}
	c.values = reflect.Append(c.values, v)
}

// swapRemove moves the last value into row and shrinks the column by one. The vacated slot is zeroed so the
// backing array does not keep the removed value reachable.
func (c *Column) swapRemove(row int) {
	last := c.values.Len() - 1
	if row != last {
		c.values.Index(row).Set(c.values.Index(last))
	}
	c.values.Index(last).Set(reflect.Zero(c.typ))
	c.values = c.values.Slice(0, last)
}

// at returns the addressable value stored at row.
func (c *Column) at(row int) reflect.Value {
	return c.values.Index(row)
}

// Values returns the column's backing slice as []T, or false if the column does not hold T. The slice is only
// valid until the next structural change to the owning Archetype.
func Values[T any](c *Column) ([]T, bool) {
	s, ok := c.values.Interface().([]T)
	return s, ok
}
