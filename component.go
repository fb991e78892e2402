package silo

import (
	"reflect"
)

// MaxComponents bounds the number of component types a registry can hold.
// It matches the width of the component mask.
const MaxComponents = 64

// ComponentID is the stable small integer assigned to a component type on
// registration. The first registered type gets 1.
type ComponentID uint32

func (id ComponentID) bit() uint32 {
	return uint32(id - 1)
}

// ComponentRegistry assigns ids to component types. Registration is append-only.
type ComponentRegistry struct {
	current ComponentID
	ids     map[reflect.Type]ComponentID
	names   []string
}

func newComponentRegistry() ComponentRegistry {
	return ComponentRegistry{
		ids:   make(map[reflect.Type]ComponentID),
		names: make([]string, 0, 8),
	}
}

func (r *ComponentRegistry) register(t reflect.Type) ComponentID {
	name := t.String()
	if _, found := r.ids[t]; found {
		panic(ComponentRegisteredError{Name: name})
	}
	if int(r.current) >= MaxComponents {
		panic(ComponentLimitError{Name: name, Limit: MaxComponents})
	}
	r.current++
	r.ids[t] = r.current
	r.names = append(r.names, name)
	return r.current
}

func (r *ComponentRegistry) lookup(t reflect.Type) ComponentID {
	id, found := r.ids[t]
	if !found {
		panic(ComponentNotRegisteredError{Name: t.String()})
	}
	return id
}

// Name returns the type name registered under id, or "" if id is unknown.
func (r *ComponentRegistry) Name(id ComponentID) string {
	if id == 0 || int(id) > len(r.names) {
		return ""
	}
	return r.names[id-1]
}

// Len reports how many component types are registered.
func (r *ComponentRegistry) Len() int {
	return len(r.names)
}

// RegisterType assigns the next id to T. Registering T twice panics.
func RegisterType[T any](r *ComponentRegistry) ComponentID {
	return r.register(reflect.TypeFor[T]())
}

// IDOf returns the id of T. It panics if T was never registered.
func IDOf[T any](r *ComponentRegistry) ComponentID {
	return r.lookup(reflect.TypeFor[T]())
}

// Registered reports whether T has an id.
func Registered[T any](r *ComponentRegistry) bool {
	_, found := r.ids[reflect.TypeFor[T]()]
	return found
}
