package silo

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

type ProcessFunc func(ctx Context, dt time.Duration, entities []Entity)

type funcSystem struct {
	name     string
	aspect   Aspect
	requires []Requirement
	fn       ProcessFunc
}

// NewSystem adapts fn into a System. An empty name is derived from the
// function itself.
func NewSystem(name string, aspect Aspect, fn ProcessFunc, requires ...Requirement) System {
	if name == "" {
		name = filepath.Base(runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name())
	}
	return &funcSystem{name: name, aspect: aspect, requires: requires, fn: fn}
}

func (s *funcSystem) Name() string            { return s.name }
func (s *funcSystem) Aspect() Aspect          { return s.aspect }
func (s *funcSystem) Requires() []Requirement { return s.requires }

func (s *funcSystem) Process(ctx Context, dt time.Duration, entities []Entity) {
	s.fn(ctx, dt, entities)
}

func systemName(s System) string {
	if named, ok := s.(Named); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", s)
}

// systemContext scopes the world to one running system: its borrow set and
// its sub-logger.
type systemContext struct {
	*World
	borrows *Borrows
	logger  zerolog.Logger
}

func (c *systemContext) Borrows() *Borrows {
	return c.borrows
}

func (c *systemContext) Logger() *zerolog.Logger {
	return &c.logger
}
