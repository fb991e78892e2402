package silo

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
)

// storeError marks the panic values raised by this package so Catch can tell
// them apart from unrelated panics.
type storeError interface {
	error
	store()
}

type DeadEntityError struct {
	Entity Entity
}

func (e DeadEntityError) Error() string {
	return fmt.Sprintf("entity %d is not alive", e.Entity)
}

type ComponentRegisteredError struct {
	Name string
}

func (e ComponentRegisteredError) Error() string {
	return fmt.Sprintf("component already registered: %s", e.Name)
}

type ComponentNotRegisteredError struct {
	Name string
}

func (e ComponentNotRegisteredError) Error() string {
	return fmt.Sprintf("component not registered: %s", e.Name)
}

type ComponentLimitError struct {
	Name  string
	Limit int
}

func (e ComponentLimitError) Error() string {
	return fmt.Sprintf("cannot register %s: component limit of %d reached", e.Name, e.Limit)
}

type ResourceExistsError struct {
	ID ResourceID
}

func (e ResourceExistsError) Error() string {
	return fmt.Sprintf("resource already added: %s", e.ID)
}

type ResourceNotFoundError struct {
	ID ResourceID
}

func (e ResourceNotFoundError) Error() string {
	return fmt.Sprintf("no resource with the given id: %s", e.ID)
}

// ResourceAliasError is raised when a fetch conflicts with a handle that is
// still outstanding for the same resource.
type ResourceAliasError struct {
	ID      ResourceID
	Write   bool
	Readers int
	Writing bool
}

func (e ResourceAliasError) Error() string {
	access := "read"
	if e.Write {
		access = "write"
	}
	return fmt.Sprintf("cannot %s %s: %d reader(s) outstanding, writer outstanding: %v",
		access, e.ID, e.Readers, e.Writing)
}

type BorrowReleasedError struct {
	ID ResourceID
}

func (e BorrowReleasedError) Error() string {
	return fmt.Sprintf("handle for %s already released", e.ID)
}

type ResourceNotBorrowedError struct {
	ID ResourceID
}

func (e ResourceNotBorrowedError) Error() string {
	return fmt.Sprintf("resource %s is not part of this borrow set", e.ID)
}

type AspectNotRegisteredError struct {
	Matcher Matcher
}

func (e AspectNotRegisteredError) Error() string {
	return fmt.Sprintf("aspect not registered: %s", e.Matcher)
}

type SystemRegisteredError struct {
	Name string
}

func (e SystemRegisteredError) Error() string {
	return fmt.Sprintf("system %q is already registered", e.Name)
}

type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently locked by a running system"
}

func (DeadEntityError) store()             {}
func (ComponentRegisteredError) store()    {}
func (ComponentNotRegisteredError) store() {}
func (ComponentLimitError) store()         {}
func (ResourceExistsError) store()         {}
func (ResourceNotFoundError) store()       {}
func (ResourceAliasError) store()          {}
func (BorrowReleasedError) store()         {}
func (ResourceNotBorrowedError) store()    {}
func (AspectNotRegisteredError) store()    {}
func (SystemRegisteredError) store()       {}
func (LockedWorldError) store()            {}

// Catch runs fn and turns a panic raised by the store into an error.
// Panics that did not originate here are re-raised untouched.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var se storeError
		if e, ok := r.(error); ok && errors.As(e, &se) {
			err = eris.Wrap(e, "store operation aborted")
			return
		}
		panic(r)
	}()
	fn()
	return nil
}
