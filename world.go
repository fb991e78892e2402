package silo

import (
	"os"
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/rs/zerolog"
)

var _ Context = &World{}

// World ties the registries, the columns and the aspect index together in one
// resource container and keeps them consistent on every mutation.
type World struct {
	resources *Resources
	columns   []column
	byType    map[reflect.Type]column
	systems   dispatcher
	logger    zerolog.Logger
	locked    bool
	queue     opQueue
}

type WorldOption func(*World)

// WithLogger replaces the default stderr logger.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// column is the type-erased view the world keeps of every Component handle.
type column interface {
	ComponentID() ComponentID
	Name() string
	Writes() Requirement
	erase(b *Borrows, en Entity)
	holds(en Entity) bool
}

// entityStates holds each entity's component presence mask, indexed by id.
type entityStates struct {
	bits []mask.Mask
}

func (s *entityStates) get(en Entity) mask.Mask {
	if int(en) >= len(s.bits) {
		return mask.Mask{}
	}
	return s.bits[en]
}

func (s *entityStates) grow(en Entity) {
	if int(en) >= len(s.bits) {
		s.bits = append(s.bits, make([]mask.Mask, int(en)+1-len(s.bits))...)
	}
}

func (s *entityStates) mark(en Entity, id ComponentID) mask.Mask {
	s.grow(en)
	s.bits[en].Mark(id.bit())
	return s.bits[en]
}

func (s *entityStates) unmark(en Entity, id ComponentID) mask.Mask {
	s.grow(en)
	s.bits[en].Unmark(id.bit())
	return s.bits[en]
}

func (s *entityStates) reset(en Entity) {
	s.grow(en)
	s.bits[en] = mask.Mask{}
}

func newWorld(opts ...WorldOption) *World {
	w := &World{
		resources: newResources(),
		byType:    make(map[reflect.Type]column),
		systems:   newDispatcher(),
		logger:    zerolog.New(os.Stderr).With().Timestamp().Logger().Level(Config.logLevel),
		queue:     newOpQueue(),
	}
	for _, opt := range opts {
		opt(w)
	}
	entities := newEntityRegistry()
	components := newComponentRegistry()
	index := newAspectIndex()
	addPtr(w.resources, 0, &entities)
	addPtr(w.resources, 0, &components)
	addPtr(w.resources, 0, &index)
	addPtr(w.resources, 0, &entityStates{})
	return w
}

// Resources exposes the container so callers can add and borrow their own
// resources alongside the store's.
func (w *World) Resources() *Resources {
	return w.resources
}

// Borrows is empty outside of a running system.
func (w *World) Borrows() *Borrows {
	return &Borrows{}
}

func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// Locked reports whether a system is running.
func (w *World) Locked() bool {
	return w.locked
}

// Create allocates an entity with no components. The empty mask is fed to the
// aspect index so matchers made only of exclusions pick it up.
func (w *World) Create() *Editor {
	b := w.resources.FetchAll(
		Writes[EntityRegistry](),
		Writes[entityStates](),
		Writes[AspectIndex](),
	)
	defer b.Release()
	en := Borrowed[EntityRegistry](b).Create()
	Borrowed[entityStates](b).reset(en)
	Borrowed[AspectIndex](b).Update(en, mask.Mask{})
	w.logger.Trace().Uint32("entity", uint32(en)).Msg("entity created")
	return &Editor{world: w, entity: en}
}

func (w *World) IsAlive(en Entity) bool {
	h := Fetch[EntityRegistry](w.resources)
	defer h.Release()
	return h.Get().IsAlive(en)
}

// Editor returns an editor bound to en. It panics if en is not alive.
func (w *World) Editor(en Entity) *Editor {
	if !w.IsAlive(en) {
		panic(DeadEntityError{Entity: en})
	}
	return &Editor{world: w, entity: en}
}

// Len reports the number of living entities.
func (w *World) Len() int {
	h := Fetch[EntityRegistry](w.resources)
	defer h.Release()
	return h.Get().Len()
}

// Destroy clears en from every column and every aspect bucket, then frees its id.
func (w *World) Destroy(en Entity) {
	reqs := []Requirement{
		Writes[EntityRegistry](),
		Writes[entityStates](),
		Writes[AspectIndex](),
	}
	for _, col := range w.columns {
		reqs = append(reqs, col.Writes())
	}
	b := w.resources.FetchAll(reqs...)
	defer b.Release()

	registry := Borrowed[EntityRegistry](b)
	if !registry.IsAlive(en) {
		panic(DeadEntityError{Entity: en})
	}
	for _, col := range w.columns {
		col.erase(b, en)
	}
	Borrowed[entityStates](b).reset(en)
	Borrowed[AspectIndex](b).Remove(en)
	registry.Destroy(en)
	w.logger.Trace().Uint32("entity", uint32(en)).Msg("entity destroyed")
}

// EnqueueDestroy destroys en now, or once the running system returns.
func (w *World) EnqueueDestroy(en Entity) {
	if !w.locked {
		w.Destroy(en)
		return
	}
	w.queue.enqueueDestroy(en)
}

// EnqueueCreate creates an entity and hands its editor to fn, now or once the
// running system returns.
func (w *World) EnqueueCreate(fn func(*Editor)) {
	if !w.locked {
		fn(w.Create())
		return
	}
	w.queue.enqueueCreate(fn)
}

// Mask returns the current presence mask of en.
func (w *World) Mask(en Entity) mask.Mask {
	h := Fetch[entityStates](w.resources)
	defer h.Release()
	return h.Get().get(en)
}

// RegisterAspect compiles a and adds it to the index. Entities already in the
// world are evaluated at once, so registration order does not matter.
func (w *World) RegisterAspect(a Aspect) Matcher {
	b := w.resources.FetchAll(
		Reads[ComponentRegistry](),
		Reads[EntityRegistry](),
		Reads[entityStates](),
		Writes[AspectIndex](),
	)
	defer b.Release()
	m := NewMatcher(Borrowed[ComponentRegistry](b), a)
	index := Borrowed[AspectIndex](b)
	if !index.Register(m) {
		return m
	}
	states := Borrowed[entityStates](b)
	for en := range newJoin(Borrowed[EntityRegistry](b)).Entities() {
		if m.Check(states.get(en)) {
			index.members[m].Set(uint(en))
		}
	}
	w.logger.Debug().Stringer("matcher", m).Msg("aspect registered")
	return m
}

// Entities lists the living entities matching a in ascending order. Unlike
// AspectIndex.Entities it does not panic on a new aspect: a is registered
// through RegisterAspect first, which also evaluates every living entity.
// Use Matcher lookups on the index directly when an unknown aspect is a bug.
func (w *World) Entities(a Aspect) []Entity {
	return w.indexed(w.RegisterAspect(a))
}

func (w *World) indexed(m Matcher) []Entity {
	h := Fetch[AspectIndex](w.resources)
	defer h.Release()
	return h.Get().Entities(m)
}

// NewJoin builds a join over the given terms.
func (w *World) NewJoin(terms ...Term) *Join {
	return newJoin(terms...)
}

// Components lists the registered component names in id order.
func (w *World) Components() []string {
	names := make([]string, len(w.columns))
	for i, col := range w.columns {
		names[i] = col.Name()
	}
	return names
}

func (w *World) lookup(t reflect.Type) column {
	col, found := w.byType[t]
	if !found {
		panic(ComponentNotRegisteredError{Name: t.String()})
	}
	return col
}
