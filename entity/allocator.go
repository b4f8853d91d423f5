package entity

// slot is one entry of the allocator table.
type slot struct {
	generation Generation
	alive      bool
}

// Allocator owns the pool of entity indices. Released indices are reused LIFO and come back with a bumped
// generation so handles to the previous occupant stop reporting alive.
type Allocator struct {
	slots     []slot
	destroyed []uint32
}

// NewAllocator creates an allocator with room for capacity entities before it has to grow.
func NewAllocator(capacity int) *Allocator {
	if capacity < 0 {
		capacity = 0
	}
	return &Allocator{
		slots:     make([]slot, 0, capacity),
		destroyed: make([]uint32, 0, capacity),
	}
}

// Allocate returns a live entity, reusing a released index when one is available.
func (a *Allocator) Allocate() Entity {
	if n := len(a.destroyed); n > 0 {
		index := a.destroyed[n-1]
		a.destroyed = a.destroyed[:n-1]
		s := &a.slots[index]
		s.alive = true
		return Entity{Index: index, Generation: s.generation}
	}
	index := uint32(len(a.slots))
	a.slots = append(a.slots, slot{alive: true})
	return Entity{Index: index}
}

// Release kills e and bumps its slot's generation. It reports false for stale or unknown handles.
func (a *Allocator) Release(e Entity) bool {
	if !a.IsAlive(e) {
		return false
	}
	s := &a.slots[e.Index]
	s.alive = false
	s.generation++
	a.destroyed = append(a.destroyed, e.Index)
	return true
}

// IsAlive reports whether e is the current occupant of its index.
func (a *Allocator) IsAlive(e Entity) bool {
	if int(e.Index) >= len(a.slots) {
		return false
	}
	s := a.slots[e.Index]
	return s.alive && s.generation == e.Generation
}

// Generation returns the generation currently recorded for index, and false if the index was never allocated.
func (a *Allocator) Generation(index uint32) (Generation, bool) {
	if int(index) >= len(a.slots) {
		return 0, false
	}
	return a.slots[index].generation, true
}

// Len returns the number of live entities.
func (a *Allocator) Len() int {
	return len(a.slots) - len(a.destroyed)
}
