package silo

// VecStorage keeps values in a slice indexed directly by entity id. It trades
// memory for the tightest iteration and grows in fixed chunks past the
// highest id seen.
type VecStorage[T any] struct {
	values []T
	chunk  int
}

func newVecStorage[T any](chunk int) *VecStorage[T] {
	if chunk < 1 {
		chunk = 1
	}
	return &VecStorage[T]{chunk: chunk}
}

func (s *VecStorage[T]) Get(en Entity) *T {
	return &s.values[en]
}

func (s *VecStorage[T]) Insert(en Entity, v T) {
	index := int(en)
	if index >= len(s.values) {
		needed := index + 1 + s.chunk
		if needed > cap(s.values) {
			grown := make([]T, needed, max(needed, 2*cap(s.values)))
			copy(grown, s.values)
			s.values = grown
		} else {
			s.values = s.values[:needed]
		}
	}
	s.values[index] = v
}

func (s *VecStorage[T]) Remove(en Entity) T {
	var zero T
	v := s.values[en]
	s.values[en] = zero
	return v
}
