package silo

import (
	"reflect"
)

var _ column = &Component[struct{}]{}

// Component is the typed handle to one registered component column. All
// mutations go through it so the entity masks and the aspect index follow
// every presence change.
type Component[T any] struct {
	world *World
	id    ComponentID
	name  string
}

// RegisterComponent registers T on w with the configured default strategy.
func RegisterComponent[T any](w *World) *Component[T] {
	return RegisterComponentWith[T](w, newRawStorage[T](Config.defaultStrategy))
}

// RegisterComponentWith registers T backed by raw. Registering T twice panics
// with ComponentRegisteredError. A MaskedStorage[T] resource added by hand
// panics with ResourceExistsError and leaves the registry untouched.
func RegisterComponentWith[T any](w *World, raw RawStorage[T]) *Component[T] {
	id := func() ComponentID {
		h := FetchMut[ComponentRegistry](w.resources)
		defer h.Release()
		if column := IDFor[MaskedStorage[T]](0); !Registered[T](h.Get()) && w.resources.Has(column) {
			panic(ResourceExistsError{ID: column})
		}
		return RegisterType[T](h.Get())
	}()
	addPtr(w.resources, 0, newMaskedStorage(raw))
	c := &Component[T]{world: w, id: id, name: reflect.TypeFor[T]().String()}
	w.columns = append(w.columns, c)
	w.byType[reflect.TypeFor[T]()] = c
	w.logger.Debug().
		Uint32("component_id", uint32(id)).
		Str("component_name", c.name).
		Msg("component registered")
	return c
}

// ComponentOf returns the handle for T registered on w.
func ComponentOf[T any](w *World) *Component[T] {
	return w.lookup(reflect.TypeFor[T]()).(*Component[T])
}

func (c *Component[T]) ComponentID() ComponentID {
	return c.id
}

func (c *Component[T]) Name() string {
	return c.name
}

// Add stores v for en, replacing any value already there. It reports whether
// the component was newly attached.
func (c *Component[T]) Add(en Entity, v T) bool {
	b := c.mutation()
	defer b.Release()
	c.requireAlive(b, en)
	if !Borrowed[MaskedStorage[T]](b).Insert(en, v) {
		return false
	}
	bits := Borrowed[entityStates](b).mark(en, c.id)
	Borrowed[AspectIndex](b).Update(en, bits)
	return true
}

// Remove detaches the component from en and returns the value it held.
func (c *Component[T]) Remove(en Entity) (T, bool) {
	b := c.mutation()
	defer b.Release()
	c.requireAlive(b, en)
	v, ok := Borrowed[MaskedStorage[T]](b).Remove(en)
	if !ok {
		return v, false
	}
	bits := Borrowed[entityStates](b).unmark(en, c.id)
	Borrowed[AspectIndex](b).Update(en, bits)
	return v, true
}

// Contains reports whether en holds the component. Dead entities hold nothing.
func (c *Component[T]) Contains(en Entity) bool {
	h := c.Read()
	defer h.Release()
	return h.Get().Contains(en)
}

// Get returns a copy of the value held by en.
func (c *Component[T]) Get(en Entity) (T, bool) {
	h := c.Read()
	defer h.Release()
	return h.Get().Get(en)
}

// Modify applies fn to the value held by en in place. It reports false, without
// calling fn, if en does not hold the component.
func (c *Component[T]) Modify(en Entity, fn func(*T)) bool {
	h := c.Write()
	defer h.Release()
	v, ok := h.Get().GetMut(en)
	if !ok {
		return false
	}
	fn(v)
	return true
}

// Read borrows the column for shared access.
func (c *Component[T]) Read() *Read[MaskedStorage[T]] {
	return Fetch[MaskedStorage[T]](c.world.resources)
}

// Write borrows the column exclusively.
func (c *Component[T]) Write() *Write[MaskedStorage[T]] {
	return FetchMut[MaskedStorage[T]](c.world.resources)
}

// Reads requires shared access to the column, for use in a system's
// requirement list.
func (c *Component[T]) Reads() Requirement {
	return Reads[MaskedStorage[T]]()
}

// Writes requires exclusive access to the column.
func (c *Component[T]) Writes() Requirement {
	return Writes[MaskedStorage[T]]()
}

// Storage pulls the column out of a system's borrow set.
func (c *Component[T]) Storage(b *Borrows) *MaskedStorage[T] {
	return Borrowed[MaskedStorage[T]](b)
}

// EnqueueAdd adds now, or once the running system returns.
func (c *Component[T]) EnqueueAdd(en Entity, v T) {
	if !c.world.locked {
		c.Add(en, v)
		return
	}
	c.world.queue.enqueueComponent(opAddComponent, en, func() { c.Add(en, v) })
}

// EnqueueRemove removes now, or once the running system returns.
func (c *Component[T]) EnqueueRemove(en Entity) {
	if !c.world.locked {
		c.Remove(en)
		return
	}
	c.world.queue.enqueueComponent(opRemoveComponent, en, func() { c.Remove(en) })
}

func (c *Component[T]) mutation() *Borrows {
	return c.world.resources.FetchAll(
		Reads[EntityRegistry](),
		Writes[entityStates](),
		Writes[AspectIndex](),
		c.Writes(),
	)
}

func (c *Component[T]) requireAlive(b *Borrows, en Entity) {
	if !Borrowed[EntityRegistry](b).IsAlive(en) {
		panic(DeadEntityError{Entity: en})
	}
}

func (c *Component[T]) erase(b *Borrows, en Entity) {
	Borrowed[MaskedStorage[T]](b).Remove(en)
}

func (c *Component[T]) holds(en Entity) bool {
	return c.Contains(en)
}
