package silo

import (
	"github.com/rs/zerolog"
)

func (w *World) loadComponentsToEvent(event *zerolog.Event) *zerolog.Event {
	event.Int("total_components", len(w.columns))
	arr := zerolog.Arr()
	for _, col := range w.columns {
		arr = arr.Dict(zerolog.Dict().
			Uint32("component_id", uint32(col.ComponentID())).
			Str("component_name", col.Name()))
	}
	return event.Array("components", arr)
}

func (w *World) loadSystemsToEvent(event *zerolog.Event) *zerolog.Event {
	event.Int("total_systems", len(w.systems.systems))
	arr := zerolog.Arr()
	for _, rs := range w.systems.systems {
		arr = arr.Str(rs.name)
	}
	return event.Array("systems", arr)
}

// LogComponents logs every registered component at level.
func (w *World) LogComponents(level zerolog.Level) {
	w.loadComponentsToEvent(w.logger.WithLevel(level)).Send()
}

// LogSystems logs the system run order at level.
func (w *World) LogSystems(level zerolog.Level) {
	w.loadSystemsToEvent(w.logger.WithLevel(level)).Send()
}

// LogEntity logs the components held by en. Dead entities are logged as such.
func (w *World) LogEntity(level zerolog.Level, en Entity) {
	event := w.logger.WithLevel(level).Uint32("entity", uint32(en))
	if !w.IsAlive(en) {
		event.Bool("alive", false).Send()
		return
	}
	arr := zerolog.Arr()
	for _, col := range w.columns {
		if col.holds(en) {
			arr = arr.Str(col.Name())
		}
	}
	event.Bool("alive", true).Array("components", arr).Send()
}

// LogWorld logs components and systems in a single event.
func (w *World) LogWorld(level zerolog.Level) {
	event := w.loadComponentsToEvent(w.logger.WithLevel(level))
	w.loadSystemsToEvent(event).Send()
}
