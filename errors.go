package hydro

import "github.com/rotisserie/eris"

var (
	ErrNilComponent           = eris.New("component value must not be nil")
	ErrDuplicateComponentType = eris.New("component type appears more than once in a tuple")
	ErrEntryShapeMismatch     = eris.New("entry does not match the shape of the first entry")

	// ErrTypeIDCollision is returned when two distinct Go types resolve to the same name and schema in a
	// shared registry.
	ErrTypeIDCollision = eris.New("two component types share one type id")
)
