package storage

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"pkg.world.dev/hydro/codec"
)

// ArchetypeRegistry owns every Archetype of a World and finds them by signature: the per-entity component
// types, matched by identity, and the shared values, matched by value.
type ArchetypeRegistry struct {
	archs    []*Archetype
	buckets  map[string][]ArchetypeID
	capacity int
}

// NewArchetypeRegistry creates a registry whose archetypes preallocate capacity rows.
func NewArchetypeRegistry(capacity int) *ArchetypeRegistry {
	return &ArchetypeRegistry{
		archs:    make([]*Archetype, 0),
		buckets:  map[string][]ArchetypeID{},
		capacity: capacity,
	}
}

// FindOrCreate returns the archetype for the given signature, creating it if needed. The second result reports
// whether a new archetype was created. columns and shared are sorted in place by TypeID.
func (r *ArchetypeRegistry) FindOrCreate(columns []ColumnSpec, shared []SharedValue) (*Archetype, bool) {
	SortColumns(columns)
	sort.Slice(shared, func(i, j int) bool { return shared[i].ID < shared[j].ID })

	key := signatureKey(columns, shared)
	for _, id := range r.buckets[key] {
		if sharedEqual(r.archs[id].shared, shared) {
			return r.archs[id], false
		}
	}
	arch := NewArchetype(ArchetypeID(len(r.archs)), columns, shared, r.capacity)
	r.archs = append(r.archs, arch)
	r.buckets[key] = append(r.buckets[key], arch.id)
	return arch, true
}

// Archetype returns the archetype with the given id. Ids come from this registry, so an unknown id is a bug.
func (r *ArchetypeRegistry) Archetype(id ArchetypeID) *Archetype {
	return r.archs[id]
}

// Count returns the number of archetypes.
func (r *ArchetypeRegistry) Count() int {
	return len(r.archs)
}

func (r *ArchetypeRegistry) Archetypes() []*Archetype {
	return r.archs
}

// SortColumns orders column specs by TypeID, the canonical column order inside an Archetype.
func SortColumns(columns []ColumnSpec) {
	sort.Slice(columns, func(i, j int) bool { return columns[i].ID < columns[j].ID })
}

// signatureKey buckets archetypes by type ids and a JSON fingerprint of the shared values. Values the codec
// cannot encode, or that encode identically while differing, are told apart by sharedEqual.
func signatureKey(columns []ColumnSpec, shared []SharedValue) string {
	var sb strings.Builder
	sb.WriteString("c:")
	for _, c := range columns {
		sb.WriteString(strconv.FormatUint(uint64(c.ID), 10))
		sb.WriteByte(',')
	}
	sb.WriteString("|s:")
	values := make([]any, len(shared))
	for i, sv := range shared {
		sb.WriteString(strconv.FormatUint(uint64(sv.ID), 10))
		sb.WriteByte(',')
		values[i] = sv.Value.Interface()
	}
	if bz, err := codec.Encode(values); err == nil {
		sb.WriteByte('|')
		sb.Write(bz)
	}
	return sb.String()
}

func sharedEqual(a, b []SharedValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Value.Type() != b[i].Value.Type() {
			return false
		}
		if !valueEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// valueEqual is reflect.DeepEqual except that floats compare by bit pattern, so a NaN shared value finds its
// archetype again. Floats behind pointers, slices or maps keep DeepEqual semantics.
func valueEqual(a, b reflect.Value) bool {
	if a.CanInterface() && reflect.DeepEqual(a.Interface(), b.Interface()) {
		return true
	}
	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.Float64bits(a.Float()) == math.Float64bits(b.Float())
	case reflect.Complex64, reflect.Complex128:
		x, y := a.Complex(), b.Complex()
		return math.Float64bits(real(x)) == math.Float64bits(real(y)) &&
			math.Float64bits(imag(x)) == math.Float64bits(imag(y))
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !valueEqual(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !valueEqual(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.String:
		return a.String() == b.String()
	default:
		// an interfaceable value already failed DeepEqual; unexported references are not inspected
		return false
	}
}
