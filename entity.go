package silo

import (
	"github.com/bits-and-blooms/bitset"
)

// Entity is an opaque, reusable identifier. It carries no data itself; meaning
// comes from the columns that hold a value at its index. Zero is never allocated.
type Entity uint32

var _ Term = &EntityRegistry{}

// EntityRegistry allocates and recycles entity ids and tracks which are alive.
type EntityRegistry struct {
	next     Entity
	alive    *bitset.BitSet
	recycled *bitset.BitSet
	count    int
}

func newEntityRegistry() EntityRegistry {
	return EntityRegistry{
		alive:    bitset.New(0),
		recycled: bitset.New(0),
	}
}

// Create returns the smallest recycled id, or a fresh one if none is pending reuse.
func (r *EntityRegistry) Create() Entity {
	var en Entity
	if id, ok := r.recycled.NextSet(0); ok {
		r.recycled.Clear(id)
		en = Entity(id)
	} else {
		r.next++
		en = r.next
	}
	r.alive.Set(uint(en))
	r.count++
	return en
}

func (r *EntityRegistry) IsAlive(en Entity) bool {
	return en != 0 && r.alive.Test(uint(en))
}

// Destroy releases the id for reuse. Destroying an entity that is not alive
// panics with DeadEntityError.
func (r *EntityRegistry) Destroy(en Entity) {
	if !r.IsAlive(en) {
		panic(DeadEntityError{Entity: en})
	}
	r.alive.Clear(uint(en))
	r.recycled.Set(uint(en))
	r.count--
}

// Len reports the number of living entities.
func (r *EntityRegistry) Len() int {
	return r.count
}

// Open exposes the alive set so the registry can take part in a join.
// The returned set must not be modified.
func (r *EntityRegistry) Open() *bitset.BitSet {
	return r.alive
}
