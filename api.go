package silo

import (
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
)

// RawStorage is the untracked layout behind a column. It never checks
// presence: callers only touch ids the owning MaskedStorage holds.
type RawStorage[T any] interface {
	Get(Entity) *T
	Insert(Entity, T)
	Remove(Entity) T
}

// Term is anything that can contribute a set of entity ids to a join.
type Term interface {
	Open() *bitset.BitSet
}

// Aspect describes which entities a system cares about, in terms of
// component types an entity must have and must not have.
type Aspect interface {
	Required(*ComponentRegistry) []ComponentID
	Excluded(*ComponentRegistry) []ComponentID
}

// Handle is a live borrow on a resource. Releasing it twice panics.
type Handle interface {
	ID() ResourceID
	Mutable() bool
	Release()
}

// Context is what a running system sees of the world.
type Context interface {
	Create() *Editor
	Editor(Entity) *Editor
	IsAlive(Entity) bool
	EnqueueDestroy(Entity)
	EnqueueCreate(func(*Editor))
	Resources() *Resources
	Borrows() *Borrows
	Logger() *zerolog.Logger
}

// System processes the entities matching its aspect once per dispatch.
type System interface {
	Aspect() Aspect
	Process(ctx Context, dt time.Duration, entities []Entity)
}

// SystemData is implemented by systems that borrow resources while they run.
// The requirements are acquired together before Process and released after.
type SystemData interface {
	Requires() []Requirement
}

// Named overrides the name a system is registered and logged under.
type Named interface {
	Name() string
}

var (
	_ RawStorage[int] = &VecStorage[int]{}
	_ RawStorage[int] = &SparseStorage[int]{}
	_ RawStorage[int] = &TableStorage[int]{}
)
