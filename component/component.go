// Package component assigns stable identifiers to component types.
//
// A component is any Go value stored on an entity. Types are identified across Worlds (and, with the Redis
// registry, across processes) by name: a type that implements Named supplies its own name, a defined type is
// named by its full import path and type name, and any other type by its Go type string. A Registry maps names
// to TypeIDs and records each type's JSON schema so two different shapes can never share one identifier.
// TypeRegistry is the exception: it keys by reflect.Type and serves a single World.
package component

import (
	"reflect"
)

// TypeID identifies a component type within a Registry. Zero is never assigned.
type TypeID uint32

// Named is implemented by components that choose their own registry name.
type Named interface {
	Name() string
}

var namedType = reflect.TypeOf((*Named)(nil)).Elem()

// Name returns the registry name of t.
func Name(t reflect.Type) string {
	if t.Implements(namedType) {
		if t.Kind() == reflect.Pointer {
			return reflect.New(t.Elem()).Interface().(Named).Name()
		}
		return reflect.Zero(t).Interface().(Named).Name()
	}
	if reflect.PointerTo(t).Implements(namedType) {
		return reflect.New(t).Interface().(Named).Name()
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// TypeOf returns the reflect.Type of T without needing a value.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
