package storage_test

import (
	"reflect"
	"testing"

	"pkg.world.dev/hydro/assert"
	"pkg.world.dev/hydro/component"
	"pkg.world.dev/hydro/entity"
	"pkg.world.dev/hydro/storage"
)

type Pos struct{ X, Y, Z float32 }
type Rot struct{ X, Y, Z float32 }
type Model uint32
type Static struct{}

const (
	posID component.TypeID = iota + 1
	rotID
	modelID
	staticID
)

func posRotColumns() []storage.ColumnSpec {
	return []storage.ColumnSpec{
		{ID: rotID, Type: component.TypeOf[Rot]()},
		{ID: posID, Type: component.TypeOf[Pos]()},
	}
}

func staticModel(m Model) []storage.SharedValue {
	return []storage.SharedValue{
		{ID: modelID, Value: reflect.ValueOf(m)},
		{ID: staticID, Value: reflect.ValueOf(Static{})},
	}
}

func newPosRotArchetype(t *testing.T, rows int) (*storage.Archetype, []entity.Entity) {
	t.Helper()
	reg := storage.NewArchetypeRegistry(4)
	arch, created := reg.FindOrCreate(posRotColumns(), staticModel(5))
	assert.True(t, created)

	es := make([]entity.Entity, rows)
	for i := range es {
		es[i] = entity.New(uint32(i), 0)
		f := float32(i)
		row := arch.AppendRow(es[i], []reflect.Value{
			reflect.ValueOf(Pos{f, f, f}),
			reflect.ValueOf(Rot{-f, -f, -f}),
		})
		assert.Equal(t, storage.Row(i), row)
	}
	return arch, es
}

func TestAppendRowAndLookup(t *testing.T) {
	arch, es := newPosRotArchetype(t, 3)
	assert.Equal(t, 3, arch.Len())
	assert.DeepEqual(t, es, arch.Entities())

	pos, ok := storage.ComponentAs[Pos](arch, posID, 2)
	assert.Found(t, Pos{2, 2, 2}, pos, ok)
	rot, ok := storage.ComponentAs[Rot](arch, rotID, 1)
	assert.Found(t, Rot{-1, -1, -1}, rot, ok)

	_, ok = storage.ComponentAs[Pos](arch, posID, 3)
	assert.False(t, ok)
	_, ok = storage.ComponentAs[Pos](arch, modelID, 0)
	assert.False(t, ok)
	// right column, wrong Go type
	_, ok = storage.ComponentAs[Rot](arch, posID, 0)
	assert.False(t, ok)
}

func TestColumnsAreSortedByTypeID(t *testing.T) {
	arch, _ := newPosRotArchetype(t, 1)
	cols := arch.Columns()
	assert.Len(t, cols, 2)
	assert.Equal(t, posID, cols[0].ID())
	assert.Equal(t, rotID, cols[1].ID())

	values, ok := storage.Values[Pos](cols[0])
	assert.True(t, ok)
	assert.DeepEqual(t, []Pos{{0, 0, 0}}, values)
	_, ok = storage.Values[Rot](cols[0])
	assert.False(t, ok)
}

func TestSharedValue(t *testing.T) {
	arch, _ := newPosRotArchetype(t, 1)

	m, ok := storage.SharedAs[Model](arch, modelID)
	assert.Found(t, Model(5), m, ok)
	s, ok := storage.SharedAs[Static](arch, staticID)
	assert.Found(t, Static{}, s, ok)

	_, ok = storage.SharedAs[Pos](arch, posID)
	assert.False(t, ok)
}

func TestSwapRemoveMiddleMovesLastRow(t *testing.T) {
	arch, es := newPosRotArchetype(t, 3)

	moved, ok := arch.SwapRemove(0)
	assert.True(t, ok)
	assert.Equal(t, es[2], moved)
	assert.Equal(t, 2, arch.Len())
	assert.Equal(t, es[2], arch.EntityAt(0))

	pos, ok := storage.ComponentAs[Pos](arch, posID, 0)
	assert.Found(t, Pos{2, 2, 2}, pos, ok)
	rot, ok := storage.ComponentAs[Rot](arch, rotID, 0)
	assert.Found(t, Rot{-2, -2, -2}, rot, ok)
	pos, ok = storage.ComponentAs[Pos](arch, posID, 1)
	assert.Found(t, Pos{1, 1, 1}, pos, ok)
	for _, c := range arch.Columns() {
		assert.Equal(t, 2, c.Len())
	}
}

func TestSwapRemoveLastRowMovesNothing(t *testing.T) {
	arch, es := newPosRotArchetype(t, 2)

	_, ok := arch.SwapRemove(1)
	assert.False(t, ok)
	assert.DeepEqual(t, es[:1], arch.Entities())

	_, ok = arch.SwapRemove(0)
	assert.False(t, ok)
	assert.Equal(t, 0, arch.Len())
}

func TestSwapRemoveOutOfRangePanics(t *testing.T) {
	arch, _ := newPosRotArchetype(t, 1)
	defer func() {
		assert.Assert(t, recover() != nil)
	}()
	arch.SwapRemove(1)
}

func TestAppendRowWithWrongArityPanics(t *testing.T) {
	arch, _ := newPosRotArchetype(t, 0)
	defer func() {
		assert.Assert(t, recover() != nil)
	}()
	arch.AppendRow(entity.New(0, 0), []reflect.Value{reflect.ValueOf(Pos{})})
}

func TestArchetypeWithoutColumns(t *testing.T) {
	reg := storage.NewArchetypeRegistry(0)
	arch, _ := reg.FindOrCreate(nil, staticModel(1))
	assert.Equal(t, storage.Row(0), arch.AppendRow(entity.New(0, 0), nil))
	assert.Equal(t, storage.Row(1), arch.AppendRow(entity.New(1, 0), nil))

	moved, ok := arch.SwapRemove(0)
	assert.True(t, ok)
	assert.Equal(t, entity.New(1, 0), moved)
	assert.Equal(t, 1, arch.Len())
}

func TestSharedValuePointerIsStable(t *testing.T) {
	arch, _ := newPosRotArchetype(t, 2)
	m, ok := storage.SharedAs[Model](arch, modelID)
	assert.True(t, ok)
	*m = 9

	again, ok := storage.SharedAs[Model](arch, modelID)
	assert.Found(t, Model(9), again, ok)
	assert.Assert(t, m == again)
}
