package log

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/hydro/component"
	"pkg.world.dev/hydro/entity"
	"pkg.world.dev/hydro/storage"
)

// Loggable is the view of a World the Logger needs.
type Loggable interface {
	Archetypes() []*storage.Archetype
	ComponentName(component.TypeID) string
	Len() int
}

type Logger struct {
	*zerolog.Logger
}

func (_ *Logger) loadTypeIntoArrayLogger(
	id component.TypeID, target Loggable, arrayLogger *zerolog.Array,
) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(id))
	dictLogger = dictLogger.Str("component_name", target.ComponentName(id))
	return arrayLogger.Dict(dictLogger)
}

func (l *Logger) componentsArray(arch *storage.Archetype, target Loggable) *zerolog.Array {
	arrayLogger := zerolog.Arr()
	for _, c := range arch.Columns() {
		arrayLogger = l.loadTypeIntoArrayLogger(c.ID(), target, arrayLogger)
	}
	return arrayLogger
}

func (l *Logger) sharedArray(arch *storage.Archetype, target Loggable) *zerolog.Array {
	arrayLogger := zerolog.Arr()
	for _, sv := range arch.Shared() {
		arrayLogger = l.loadTypeIntoArrayLogger(sv.ID, target, arrayLogger)
	}
	return arrayLogger
}

func (l *Logger) loadArchetypesToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	archs := target.Archetypes()
	zeroLoggerEvent.Int("total_archetypes", len(archs))
	arrayLogger := zerolog.Arr()
	for _, arch := range archs {
		dictLogger := zerolog.Dict().
			Int("archetype_id", int(arch.ID())).
			Int("entities", arch.Len()).
			Array("components", l.componentsArray(arch, target)).
			Array("shared", l.sharedArray(arch, target))
		arrayLogger = arrayLogger.Dict(dictLogger)
	}
	return zeroLoggerEvent.Array("archetypes", arrayLogger)
}

// LogArchetype logs the layout of a single archetype, typically right after it was created.
func (l *Logger) LogArchetype(level zerolog.Level, target Loggable, arch *storage.Archetype, msg string) {
	l.WithLevel(level).
		Int("archetype_id", int(arch.ID())).
		Array("components", l.componentsArray(arch, target)).
		Array("shared", l.sharedArray(arch, target)).
		Msg(msg)
}

// LogEntity logs where an entity lives and which components it carries.
func (l *Logger) LogEntity(
	level zerolog.Level, target Loggable, e entity.Entity, loc storage.Location, arch *storage.Archetype,
) {
	l.WithLevel(level).
		Uint32("entity_index", e.Index).
		Uint16("entity_generation", uint16(e.Generation)).
		Int("archetype_id", int(loc.Archetype)).
		Int("row", int(loc.Row)).
		Array("components", l.componentsArray(arch, target)).
		Array("shared", l.sharedArray(arch, target)).
		Send()
}

// LogWorld logs entity totals and every archetype of the world.
func (l *Logger) LogWorld(level zerolog.Level, target Loggable) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent.Int("total_entities", target.Len())
	zeroLoggerEvent = l.loadArchetypesToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// CreateWorldLogger creates a sub logger with the entry {"world_id": worldID}.
func (l *Logger) CreateWorldLogger(worldID string) Logger {
	zeroLogger := l.Logger.With().
		Str("world_id", worldID).Logger()
	return Logger{
		&zeroLogger,
	}
}
