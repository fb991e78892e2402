package silo

import "reflect"

// Editor is a thin, entity-bound view of the world. It resolves component
// handles by type so callers that only know the entity, such as script
// bindings, can still edit it.
type Editor struct {
	world  *World
	entity Entity
}

func (ed *Editor) Entity() Entity {
	return ed.entity
}

func (ed *Editor) IsAlive() bool {
	return ed.world.IsAlive(ed.entity)
}

func (ed *Editor) Destroy() {
	ed.world.Destroy(ed.entity)
}

func handleFor[T any](ed *Editor) *Component[T] {
	return ed.world.lookup(reflect.TypeFor[T]()).(*Component[T])
}

// Add attaches v to the editor's entity and returns the editor for chaining.
func Add[T any](ed *Editor, v T) *Editor {
	handleFor[T](ed).Add(ed.entity, v)
	return ed
}

// Remove detaches T from the edited entity and returns the old value.
func Remove[T any](ed *Editor) (T, bool) {
	return handleFor[T](ed).Remove(ed.entity)
}

func Contains[T any](ed *Editor) bool {
	return handleFor[T](ed).Contains(ed.entity)
}

// Get returns a copy of the entity's T.
func Get[T any](ed *Editor) (T, bool) {
	return handleFor[T](ed).Get(ed.entity)
}

// Modify runs fn on the entity's T in place. It reports false, without
// calling fn, when T is absent.
func Modify[T any](ed *Editor, fn func(*T)) bool {
	return handleFor[T](ed).Modify(ed.entity, fn)
}
