package silo

import (
	"fmt"
	"reflect"
	"sync"
)

// ResourceID identifies one resource: its type plus a slot, so several
// resources of the same type can live side by side.
type ResourceID struct {
	Type reflect.Type
	Slot int
}

func (id ResourceID) String() string {
	name := "<nil>"
	if id.Type != nil {
		name = id.Type.String()
	}
	if id.Slot == 0 {
		return name
	}
	return fmt.Sprintf("%s#%d", name, id.Slot)
}

// IDFor returns the id of resource type R in the given slot.
func IDFor[R any](slot int) ResourceID {
	return ResourceID{Type: reflect.TypeFor[R](), Slot: slot}
}

// Resources is a heterogeneous container of singleton values. Every access
// goes through a handle, and the container refuses any handle that would
// alias a mutable one: many readers or exactly one writer per resource.
type Resources struct {
	mu    sync.Mutex
	cells map[ResourceID]*cell
}

type cell struct {
	id      ResourceID
	value   any
	readers int
	writing bool
}

func newResources() *Resources {
	return &Resources{cells: make(map[ResourceID]*cell)}
}

// Has reports whether a resource is stored under id.
func (r *Resources) Has(id ResourceID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, found := r.cells[id]
	return found
}

// Len reports how many resources are stored.
func (r *Resources) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cells)
}

func (r *Resources) insert(id ResourceID, ptr any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.cells[id]; found {
		panic(ResourceExistsError{ID: id})
	}
	r.cells[id] = &cell{id: id, value: ptr}
}

// acquire books a read or write on id. It reports false if nothing is stored
// there and panics with ResourceAliasError if the booking would alias.
func (r *Resources) acquire(id ResourceID, write bool) (*cell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, found := r.cells[id]
	if !found {
		return nil, false
	}
	if c.writing || (write && c.readers > 0) {
		panic(ResourceAliasError{ID: id, Write: write, Readers: c.readers, Writing: c.writing})
	}
	if write {
		c.writing = true
	} else {
		c.readers++
	}
	return c, true
}

func (r *Resources) release(c *cell, write bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if write {
		c.writing = false
	} else {
		c.readers--
	}
}

// AddResource stores v as the resource of type R in slot 0. Adding a second value for
// the same id panics with ResourceExistsError.
func AddResource[R any](r *Resources, v R) {
	AddResourceSlot(r, 0, v)
}

// AddResourceSlot is AddResource for an explicit slot.
func AddResourceSlot[R any](r *Resources, slot int, v R) {
	value := v
	r.insert(IDFor[R](slot), &value)
}

func addPtr[R any](r *Resources, slot int, p *R) {
	r.insert(IDFor[R](slot), p)
}

// Fetch returns a shared handle to R. It panics if R is absent or is
// currently borrowed for writing.
func Fetch[R any](r *Resources) *Read[R] {
	return FetchSlot[R](r, 0)
}

// FetchSlot is Fetch for an explicit slot.
func FetchSlot[R any](r *Resources, slot int) *Read[R] {
	h, ok := TryFetchSlot[R](r, slot)
	if !ok {
		panic(ResourceNotFoundError{ID: IDFor[R](slot)})
	}
	return h
}

// TryFetch is Fetch that reports absence instead of panicking. Aliasing
// still panics.
func TryFetch[R any](r *Resources) (*Read[R], bool) {
	return TryFetchSlot[R](r, 0)
}

// TryFetchSlot is TryFetch for an explicit slot.
func TryFetchSlot[R any](r *Resources, slot int) (*Read[R], bool) {
	c, ok := r.acquire(IDFor[R](slot), false)
	if !ok {
		return nil, false
	}
	return &Read[R]{borrow: borrow{owner: r, cell: c}, value: c.value.(*R)}, true
}

// FetchMut returns an exclusive handle to R. It panics if R is absent or has
// any outstanding handle.
func FetchMut[R any](r *Resources) *Write[R] {
	return FetchMutSlot[R](r, 0)
}

// FetchMutSlot is FetchMut for an explicit slot.
func FetchMutSlot[R any](r *Resources, slot int) *Write[R] {
	h, ok := TryFetchMutSlot[R](r, slot)
	if !ok {
		panic(ResourceNotFoundError{ID: IDFor[R](slot)})
	}
	return h
}

// TryFetchMut is FetchMut that reports absence instead of panicking.
// Aliasing still panics.
func TryFetchMut[R any](r *Resources) (*Write[R], bool) {
	return TryFetchMutSlot[R](r, 0)
}

// TryFetchMutSlot is TryFetchMut for an explicit slot.
func TryFetchMutSlot[R any](r *Resources, slot int) (*Write[R], bool) {
	c, ok := r.acquire(IDFor[R](slot), true)
	if !ok {
		return nil, false
	}
	return &Write[R]{borrow: borrow{owner: r, cell: c, write: true}, value: c.value.(*R)}, true
}
