package silo

import (
	"iter"

	iter_util "github.com/TheBitDrifter/util/iter"
	"github.com/bits-and-blooms/bitset"
)

// Join walks the ids present in every one of its terms in ascending order.
// The intersection is taken once, when the join is built, so later
// mutations of the terms do not change what it yields. A join is consumed
// as it is walked and cannot be restarted.
type Join struct {
	ids     *bitset.BitSet
	total   int
	current Entity
	next    uint
	yielded int
}

func newJoin(terms ...Term) *Join {
	var ids *bitset.BitSet
	if len(terms) == 0 {
		ids = bitset.New(0)
	} else {
		ids = terms[0].Open().Clone()
		for _, term := range terms[1:] {
			ids.InPlaceIntersection(term.Open())
		}
	}
	return &Join{
		ids:   ids,
		total: int(ids.Count()),
	}
}

// Next advances to the following id. It reports false once the join is exhausted.
func (j *Join) Next() bool {
	i, ok := j.ids.NextSet(j.next)
	if !ok {
		j.current = 0
		return false
	}
	j.current = Entity(i)
	j.next = i + 1
	j.yielded++
	return true
}

// Entity returns the id the join is positioned on.
func (j *Join) Entity() Entity {
	return j.current
}

// Entities yields the ids not yet consumed. Stopping early leaves the rest
// for a later Next or Collect.
func (j *Join) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for j.Next() {
			if !yield(j.current) {
				return
			}
		}
	}
}

// Remaining reports how many ids are left.
func (j *Join) Remaining() int {
	return j.total - j.yielded
}

// Collect drains the rest of the join into a slice.
func (j *Join) Collect() []Entity {
	return iter_util.Collect(j.Entities())
}

// Total reports the size of the intersection.
func (j *Join) Total() int {
	return j.total
}

// Join1 yields each entity holding an A along with a pointer into the column.
func Join1[A any](a *MaskedStorage[A], extra ...Term) iter.Seq2[Entity, *A] {
	j := newJoin(append([]Term{a}, extra...)...)
	return func(yield func(Entity, *A) bool) {
		for en := range j.Entities() {
			pa, _ := a.GetMut(en)
			if !yield(en, pa) {
				return
			}
		}
	}
}

type Row2[A, B any] struct {
	A *A
	B *B
}

// Join2 yields each entity holding both an A and a B.
func Join2[A, B any](a *MaskedStorage[A], b *MaskedStorage[B], extra ...Term) iter.Seq2[Entity, Row2[A, B]] {
	j := newJoin(append([]Term{a, b}, extra...)...)
	return func(yield func(Entity, Row2[A, B]) bool) {
		for en := range j.Entities() {
			pa, _ := a.GetMut(en)
			pb, _ := b.GetMut(en)
			if !yield(en, Row2[A, B]{A: pa, B: pb}) {
				return
			}
		}
	}
}

type Row3[A, B, C any] struct {
	A *A
	B *B
	C *C
}

// Join3 is Join2 over three columns.
func Join3[A, B, C any](a *MaskedStorage[A], b *MaskedStorage[B], c *MaskedStorage[C], extra ...Term) iter.Seq2[Entity, Row3[A, B, C]] {
	j := newJoin(append([]Term{a, b, c}, extra...)...)
	return func(yield func(Entity, Row3[A, B, C]) bool) {
		for en := range j.Entities() {
			pa, _ := a.GetMut(en)
			pb, _ := b.GetMut(en)
			pc, _ := c.GetMut(en)
			if !yield(en, Row3[A, B, C]{A: pa, B: pb, C: pc}) {
				return
			}
		}
	}
}
