package silo

import "slices"

var (
	_ Handle = &Read[struct{}]{}
	_ Handle = &Write[struct{}]{}
)

type borrow struct {
	owner    *Resources
	cell     *cell
	write    bool
	released bool
}

// ID names the borrowed resource.
func (b *borrow) ID() ResourceID {
	return b.cell.id
}

// Mutable reports whether the handle is exclusive.
func (b *borrow) Mutable() bool {
	return b.write
}

// Release gives the borrow back. Releasing twice panics with
// BorrowReleasedError.
func (b *borrow) Release() {
	if b.released {
		panic(BorrowReleasedError{ID: b.cell.id})
	}
	b.released = true
	b.owner.release(b.cell, b.write)
}

func (b *borrow) check() {
	if b.released {
		panic(BorrowReleasedError{ID: b.cell.id})
	}
}

// Read is a shared handle. The value must not be modified through it.
type Read[R any] struct {
	borrow
	value *R
}

// Get returns the value. It panics once the handle is released.
func (h *Read[R]) Get() *R {
	h.check()
	return h.value
}

// Write is an exclusive handle.
type Write[R any] struct {
	borrow
	value *R
}

// Get returns the value for modification. It panics once the handle is
// released.
func (h *Write[R]) Get() *R {
	h.check()
	return h.value
}

// Requirement declares one resource a caller needs and how. A list of
// requirements is acquired together by Resources.FetchAll.
type Requirement struct {
	ID      ResourceID
	Mutable bool
	fetch   func(*Resources) Handle
}

// Reads requires shared access to R in slot 0.
func Reads[R any]() Requirement {
	return ReadsSlot[R](0)
}

// ReadsSlot requires shared access to R in slot.
func ReadsSlot[R any](slot int) Requirement {
	return Requirement{
		ID:    IDFor[R](slot),
		fetch: func(r *Resources) Handle { return FetchSlot[R](r, slot) },
	}
}

// Writes requires exclusive access to R in slot 0.
func Writes[R any]() Requirement {
	return WritesSlot[R](0)
}

// WritesSlot requires exclusive access to R in slot.
func WritesSlot[R any](slot int) Requirement {
	return Requirement{
		ID:      IDFor[R](slot),
		Mutable: true,
		fetch:   func(r *Resources) Handle { return FetchMutSlot[R](r, slot) },
	}
}

// Borrows holds the handles obtained for a list of requirements.
type Borrows struct {
	handles []Handle
}

// FetchAll acquires each requirement in order. If any acquisition panics, the
// handles already taken are released before the panic continues, so a failed
// fetch leaves no borrow behind.
func (r *Resources) FetchAll(reqs ...Requirement) *Borrows {
	b := &Borrows{handles: make([]Handle, 0, len(reqs))}
	completed := false
	defer func() {
		if !completed {
			b.Release()
		}
	}()
	for _, req := range reqs {
		b.handles = append(b.handles, req.fetch(r))
	}
	completed = true
	return b
}

// Release gives back every handle in reverse acquisition order.
func (b *Borrows) Release() {
	for _, h := range slices.Backward(b.handles) {
		h.Release()
	}
	b.handles = nil
}

// Len reports how many handles are held.
func (b *Borrows) Len() int {
	return len(b.handles)
}

// Has reports whether id is part of the set.
func (b *Borrows) Has(id ResourceID) bool {
	for _, h := range b.handles {
		if h.ID() == id {
			return true
		}
	}
	return false
}

// Borrowed returns R from a borrow set. It panics with ResourceNotBorrowedError
// if R was not requested.
func Borrowed[R any](b *Borrows) *R {
	return BorrowedSlot[R](b, 0)
}

// BorrowedSlot is Borrowed for an explicit slot.
func BorrowedSlot[R any](b *Borrows, slot int) *R {
	id := IDFor[R](slot)
	for _, h := range b.handles {
		if h.ID() != id {
			continue
		}
		switch typed := h.(type) {
		case *Write[R]:
			return typed.Get()
		case *Read[R]:
			return typed.Get()
		}
	}
	panic(ResourceNotBorrowedError{ID: id})
}
