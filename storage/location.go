package storage

import (
	"github.com/kamstrup/intmap"
)

// Location is where an entity's data currently lives.
type Location struct {
	Archetype ArchetypeID
	Row       Row
}

// LocationMap maps a live entity's index to its Location. Callers check liveness (generation) against the
// allocator before consulting it.
type LocationMap struct {
	locs *intmap.Map[uint32, Location]
}

func NewLocationMap(capacity int) *LocationMap {
	return &LocationMap{locs: intmap.New[uint32, Location](capacity)}
}

func (m *LocationMap) Set(index uint32, loc Location) {
	m.locs.Put(index, loc)
}

func (m *LocationMap) Get(index uint32) (Location, bool) {
	return m.locs.Get(index)
}

func (m *LocationMap) Remove(index uint32) {
	m.locs.Del(index)
}

func (m *LocationMap) Len() int {
	return m.locs.Len()
}
