package component

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"pkg.world.dev/hydro/codec"
)

// opaqueSchema stands in for types JSON schema cannot describe. Two such types match only when both their
// kind and their Go type string agree.
type opaqueSchema struct {
	Kind string `json:"kind"`
	Type string `json:"type"`
}

// SchemaOf returns the JSON schema describing t.
func SchemaOf(t reflect.Type) ([]byte, error) {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return opaque(t)
	default:
	}
	schema, ok := reflectSchema(t)
	if !ok {
		return opaque(t)
	}
	bz, err := schema.MarshalJSON()
	if err != nil {
		return nil, eris.Wrapf(err, "schema for %s", t)
	}
	return bz, nil
}

// reflectSchema reports false when the reflector gives up on a type nested inside t.
func reflectSchema(t reflect.Type) (schema *jsonschema.Schema, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			schema, ok = nil, false
		}
	}()
	return jsonschema.ReflectFromType(t), true
}

func opaque(t reflect.Type) ([]byte, error) {
	return codec.Encode(opaqueSchema{Kind: t.Kind().String(), Type: t.String()})
}

// SchemaMatches reports whether two schemas produced by SchemaOf describe the same shape.
func SchemaMatches(a, b []byte) (bool, error) {
	patch, err := jsondiff.CompareJSON(a, b)
	if err != nil {
		return false, eris.Wrap(err, "")
	}
	return patch.String() == "", nil
}
