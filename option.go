package hydro

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/hydro/component"
)

// UniverseOption augments how a Universe creates its Worlds.
type UniverseOption func(*Universe)

// WithTypeRegistry makes every World of the Universe share reg, so they agree on component type ids. Without it
// each World gets its own registry keyed by Go type identity. A shared registry keys by name, so two distinct
// types with the same name (function-local types, for example) cannot both be used through it.
func WithTypeRegistry(reg component.Registry) UniverseOption {
	return func(u *Universe) {
		u.types = reg
	}
}

// WithConfig applies cfg: log level, initial capacity, a Redis-backed type registry when RedisAddress is set,
// and statsd when StatsdAddress is set. An explicit WithTypeRegistry takes precedence over RedisAddress.
func WithConfig(cfg Config) UniverseOption {
	return func(u *Universe) {
		u.cfg = &cfg
	}
}

// WithInitialCapacity sets how many entities a new World preallocates for.
func WithInitialCapacity(n int) UniverseOption {
	return func(u *Universe) {
		u.capacity = n
	}
}

// WithCustomLogger replaces the global zerolog logger.
func WithCustomLogger(logger zerolog.Logger) UniverseOption {
	return func(u *Universe) {
		u.logger = logger
	}
}
