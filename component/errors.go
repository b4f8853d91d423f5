package component

import "github.com/rotisserie/eris"

var (
	// ErrSchemaMismatch is returned when a name is registered again with a different shape.
	ErrSchemaMismatch = eris.New("component name already registered with a different schema")
	ErrEmptyName      = eris.New("component name must not be empty")
)
