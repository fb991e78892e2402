package silo

// SparseStorage keeps values densely packed and maps entity ids to their
// slot through a sparse index. Removal swaps the last value into the hole.
type SparseStorage[T any] struct {
	dense    []T
	entities []Entity
	sparse   []int
}

func newSparseStorage[T any]() *SparseStorage[T] {
	return &SparseStorage[T]{}
}

func (s *SparseStorage[T]) Get(en Entity) *T {
	return &s.dense[s.sparse[en]]
}

func (s *SparseStorage[T]) Insert(en Entity, v T) {
	for int(en) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.sparse[en] = len(s.dense)
	s.dense = append(s.dense, v)
	s.entities = append(s.entities, en)
}

func (s *SparseStorage[T]) Remove(en Entity) T {
	idx := s.sparse[en]
	last := len(s.dense) - 1
	v := s.dense[idx]

	moved := s.entities[last]
	s.dense[idx] = s.dense[last]
	s.entities[idx] = moved
	s.sparse[moved] = idx

	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	s.sparse[en] = -1
	return v
}
