// Package entity defines entity identity and the allocator that hands identities out.
package entity

import "fmt"

// Generation counts how many times an index slot has been released. It wraps silently at 65536: after that many
// reuse cycles of one slot a stale handle could alias a reborn entity. This is an accepted limitation.
type Generation uint16

// Entity identifies a logical entity, not a storage location. Two entities are equal iff both fields match.
type Entity struct {
	Index      uint32
	Generation Generation
}

// New constructs an Entity from a known index/generation pair.
func New(index uint32, generation Generation) Entity {
	return Entity{Index: index, Generation: generation}
}

func (e Entity) String() string {
	return fmt.Sprintf("%d@%d", e.Index, e.Generation)
}
