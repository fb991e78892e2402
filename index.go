package silo

import (
	"github.com/TheBitDrifter/mask"
	"github.com/bits-and-blooms/bitset"
)

// AspectIndex keeps, for every registered matcher, the set of entities that
// currently satisfy it. It is updated incrementally from presence deltas.
type AspectIndex struct {
	members map[Matcher]*bitset.BitSet
	order   []Matcher
}

func newAspectIndex() AspectIndex {
	return AspectIndex{members: make(map[Matcher]*bitset.BitSet)}
}

// Register adds m with an empty member set. Registering the same matcher again
// is a no-op; the result reports whether m was new. Entities that already
// satisfy m are picked up on their next update, so register before populating.
func (idx *AspectIndex) Register(m Matcher) bool {
	if _, found := idx.members[m]; found {
		return false
	}
	idx.members[m] = bitset.New(0)
	idx.order = append(idx.order, m)
	return true
}

func (idx *AspectIndex) Registered(m Matcher) bool {
	_, found := idx.members[m]
	return found
}

// Update re-evaluates every registered matcher against bits, the current
// presence mask of en.
func (idx *AspectIndex) Update(en Entity, bits mask.Mask) {
	for _, m := range idx.order {
		set := idx.members[m]
		if m.Check(bits) {
			set.Set(uint(en))
		} else {
			set.Clear(uint(en))
		}
	}
}

// Remove drops en from every member set regardless of its mask.
func (idx *AspectIndex) Remove(en Entity) {
	for _, set := range idx.members {
		set.Clear(uint(en))
	}
}

// Entities lists the members of m in ascending id order.
func (idx *AspectIndex) Entities(m Matcher) []Entity {
	set := idx.set(m)
	entities := make([]Entity, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		entities = append(entities, Entity(i))
	}
	return entities
}

// Contains reports whether en is in m's bucket. Unknown matchers panic.
func (idx *AspectIndex) Contains(m Matcher, en Entity) bool {
	return idx.set(m).Test(uint(en))
}

// Len reports the number of registered matchers.
func (idx *AspectIndex) Len() int {
	return len(idx.order)
}

// Term exposes the member set of m for joining.
func (idx *AspectIndex) Term(m Matcher) Term {
	return indexTerm{set: idx.set(m)}
}

func (idx *AspectIndex) set(m Matcher) *bitset.BitSet {
	set, found := idx.members[m]
	if !found {
		panic(AspectNotRegisteredError{Matcher: m})
	}
	return set
}

type indexTerm struct {
	set *bitset.BitSet
}

func (t indexTerm) Open() *bitset.BitSet {
	return t.set
}
