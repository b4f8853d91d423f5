package component_test

import (
	"reflect"
	"sync"
	"testing"

	"pkg.world.dev/hydro/assert"
	"pkg.world.dev/hydro/component"
)

type Pos struct{ X, Y, Z float32 }

type Health struct {
	Value int
}

func (Health) Name() string {
	return "health"
}

type Armor struct {
	Rating int
}

func (*Armor) Name() string {
	return "armor"
}

// OtherHealth claims Health's name with a different shape.
type OtherHealth struct {
	Points string
}

func (OtherHealth) Name() string {
	return "health"
}

func TestName(t *testing.T) {
	assert.Equal(t, "pkg.world.dev/hydro/component_test.Pos", component.Name(component.TypeOf[Pos]()))
	assert.Equal(t, "float64", component.Name(component.TypeOf[float64]()))
	assert.Equal(t, "*component_test.Pos", component.Name(component.TypeOf[*Pos]()))
	assert.Equal(t, "[]int", component.Name(component.TypeOf[[]int]()))
	assert.Equal(t, "health", component.Name(component.TypeOf[Health]()))
	assert.Equal(t, "health", component.Name(component.TypeOf[*Health]()))
	assert.Equal(t, "armor", component.Name(component.TypeOf[Armor]()))
}

func TestMemoryRegistryIsIdempotent(t *testing.T) {
	reg := component.NewMemoryRegistry()
	posID, err := reg.Register(component.TypeOf[Pos]())
	assert.NilError(t, err)
	healthID, err := reg.Register(component.TypeOf[Health]())
	assert.NilError(t, err)
	assert.NotEqual(t, posID, healthID)
	assert.Assert(t, posID != 0)

	again, err := reg.Register(reflect.TypeOf(Pos{}))
	assert.NilError(t, err)
	assert.Equal(t, posID, again)

	id, ok := reg.Lookup(component.TypeOf[Health]())
	assert.True(t, ok)
	assert.Equal(t, healthID, id)
	_, ok = reg.Lookup(component.TypeOf[Armor]())
	assert.False(t, ok)

	assert.DeepEqual(t, []string{"pkg.world.dev/hydro/component_test.Pos", "health"}, reg.Names())
}

func TestMemoryRegistryRejectsSchemaMismatch(t *testing.T) {
	reg := component.NewMemoryRegistry()
	_, err := reg.Register(component.TypeOf[Health]())
	assert.NilError(t, err)

	_, err = reg.Register(component.TypeOf[OtherHealth]())
	assert.ErrorIs(t, err, component.ErrSchemaMismatch)
}

func TestMemoryRegistryConcurrentRegister(t *testing.T) {
	reg := component.NewMemoryRegistry()
	const workers = 16
	ids := make([]component.TypeID, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := reg.Register(component.TypeOf[Pos]())
			assert.NilError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, reg.Names(), 1)
}

func TestSchemaMatches(t *testing.T) {
	a, err := component.SchemaOf(component.TypeOf[Health]())
	assert.NilError(t, err)
	b, err := component.SchemaOf(component.TypeOf[Health]())
	assert.NilError(t, err)
	c, err := component.SchemaOf(component.TypeOf[OtherHealth]())
	assert.NilError(t, err)

	ok, err := component.SchemaMatches(a, b)
	assert.NilError(t, err)
	assert.True(t, ok)

	ok, err = component.SchemaMatches(a, c)
	assert.NilError(t, err)
	assert.False(t, ok)
}

type Callback func(int) int
type Signal chan struct{}

type Hooks struct {
	OnHit func()
	Limit int
}

func TestSchemaOfUnsupportedKinds(t *testing.T) {
	for _, typ := range []reflect.Type{
		component.TypeOf[Callback](),
		component.TypeOf[Signal](),
		component.TypeOf[complex128](),
		component.TypeOf[Hooks](),
	} {
		schema, err := component.SchemaOf(typ)
		assert.NilError(t, err)
		ok, err := component.SchemaMatches(schema, schema)
		assert.NilError(t, err)
		assert.True(t, ok)
	}

	callback, err := component.SchemaOf(component.TypeOf[Callback]())
	assert.NilError(t, err)
	assert.Contains(t, string(callback), `"kind":"func"`)
	signal, err := component.SchemaOf(component.TypeOf[Signal]())
	assert.NilError(t, err)
	ok, err := component.SchemaMatches(callback, signal)
	assert.NilError(t, err)
	assert.False(t, ok)
}

func TestMemoryRegistryAcceptsFuncAndChanTypes(t *testing.T) {
	reg := component.NewMemoryRegistry()
	fn, err := reg.Register(component.TypeOf[Callback]())
	assert.NilError(t, err)
	ch, err := reg.Register(component.TypeOf[Signal]())
	assert.NilError(t, err)
	assert.NotEqual(t, fn, ch)

	again, err := reg.Register(component.TypeOf[Callback]())
	assert.NilError(t, err)
	assert.Equal(t, fn, again)
}

func TestTypeRegistrySeparatesSameNamedTypes(t *testing.T) {
	type A struct{ X int }
	first := component.TypeOf[A]()
	second := func() reflect.Type {
		type A struct{ Y string }
		return component.TypeOf[A]()
	}()
	assert.Equal(t, component.Name(first), component.Name(second))

	reg := component.NewTypeRegistry()
	a, err := reg.Register(first)
	assert.NilError(t, err)
	b, err := reg.Register(second)
	assert.NilError(t, err)
	assert.NotEqual(t, a, b)

	again, err := reg.Register(first)
	assert.NilError(t, err)
	assert.Equal(t, a, again)
	assert.Len(t, reg.Names(), 2)
}
