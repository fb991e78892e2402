package silo

import (
	"time"

	"github.com/rs/zerolog"
)

const noActiveSystemName = ""

type registeredSystem struct {
	name     string
	system   System
	matcher  Matcher
	requires []Requirement
	logger   zerolog.Logger
}

// dispatcher runs systems strictly in registration order.
type dispatcher struct {
	systems []registeredSystem
	names   map[string]struct{}
	current string
}

func newDispatcher() dispatcher {
	return dispatcher{names: make(map[string]struct{})}
}

// RegisterSystem compiles the system's aspect, registers it in the index and
// appends the system to the run order. Names must be unique.
func (w *World) RegisterSystem(s System) Matcher {
	name := systemName(s)
	if _, found := w.systems.names[name]; found {
		panic(SystemRegisteredError{Name: name})
	}
	m := w.RegisterAspect(s.Aspect())
	var requires []Requirement
	if data, ok := s.(SystemData); ok {
		requires = data.Requires()
	}
	w.systems.names[name] = struct{}{}
	w.systems.systems = append(w.systems.systems, registeredSystem{
		name:     name,
		system:   s,
		matcher:  m,
		requires: requires,
		logger:   w.logger.With().Str("system", name).Logger(),
	})
	w.logger.Debug().Str("system", name).Stringer("matcher", m).Msg("system registered")
	return m
}

// Systems lists registered system names in run order.
func (w *World) Systems() []string {
	names := make([]string, len(w.systems.systems))
	for i, rs := range w.systems.systems {
		names[i] = rs.name
	}
	return names
}

// CurrentSystem returns the name of the running system, or "" between systems.
func (w *World) CurrentSystem() string {
	return w.systems.current
}

// Dispatch runs every system once, in order. A panic inside a system stops the
// dispatch and propagates to the caller after that system's borrows are
// released. Systems after it do not run.
func (w *World) Dispatch(dt time.Duration) {
	if w.locked {
		panic(LockedWorldError{})
	}
	for i := range w.systems.systems {
		w.run(&w.systems.systems[i], dt)
	}
}

func (w *World) run(rs *registeredSystem, dt time.Duration) {
	entities := w.indexed(rs.matcher)
	borrows := w.resources.FetchAll(rs.requires...)
	ctx := &systemContext{World: w, borrows: borrows, logger: rs.logger}

	w.locked = true
	w.systems.current = rs.name
	completed := false
	defer func() {
		borrows.Release()
		w.locked = false
		w.systems.current = noActiveSystemName
		if completed {
			w.flush()
			return
		}
		w.queue.reset()
	}()

	start := time.Now()
	rs.system.Process(ctx, dt, entities)
	completed = true
	rs.logger.Debug().
		Int("entities", len(entities)).
		Dur("dt", dt).
		Dur("elapsed", time.Since(start)).
		Msg("system dispatched")
}
