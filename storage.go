package silo

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

var _ Term = &MaskedStorage[struct{}]{}

// Strategy selects the raw layout a component column is backed by.
type Strategy uint8

const (
	StrategyVec Strategy = iota
	StrategySparse
	StrategyTable
)

func (s Strategy) String() string {
	switch s {
	case StrategySparse:
		return "sparse"
	case StrategyTable:
		return "table"
	default:
		return "vec"
	}
}

// ParseStrategy maps a strategy name back to its value. Unknown names report false.
func ParseStrategy(name string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "vec":
		return StrategyVec, true
	case "sparse":
		return StrategySparse, true
	case "table":
		return StrategyTable, true
	}
	return StrategyVec, false
}

// MaskedStorage pairs a raw storage with the set of entities it holds a value
// for. The mask is the only source of truth for presence: raw slots are read
// or dropped only when the matching bit is set.
type MaskedStorage[T any] struct {
	mask *bitset.BitSet
	raw  RawStorage[T]
}

func newMaskedStorage[T any](raw RawStorage[T]) *MaskedStorage[T] {
	return &MaskedStorage[T]{
		mask: bitset.New(0),
		raw:  raw,
	}
}

func newRawStorage[T any](s Strategy) RawStorage[T] {
	switch s {
	case StrategySparse:
		return newSparseStorage[T]()
	case StrategyTable:
		return newTableStorage[T]()
	default:
		return newVecStorage[T](Config.vecChunkSize)
	}
}

func (s *MaskedStorage[T]) Contains(en Entity) bool {
	return s.mask.Test(uint(en))
}

// Get returns a copy of the value held for en.
func (s *MaskedStorage[T]) Get(en Entity) (T, bool) {
	if !s.Contains(en) {
		var zero T
		return zero, false
	}
	return *s.raw.Get(en), true
}

// GetMut returns a pointer into the column. It stays valid until the next
// insert or removal on this storage.
func (s *MaskedStorage[T]) GetMut(en Entity) (*T, bool) {
	if !s.Contains(en) {
		return nil, false
	}
	return s.raw.Get(en), true
}

// Insert stores v for en, replacing any previous value in place. It reports
// whether the presence of en changed.
func (s *MaskedStorage[T]) Insert(en Entity, v T) bool {
	if s.Contains(en) {
		*s.raw.Get(en) = v
		return false
	}
	s.mask.Set(uint(en))
	s.raw.Insert(en, v)
	return true
}

// Remove drops the value for en and hands it back.
func (s *MaskedStorage[T]) Remove(en Entity) (T, bool) {
	if !s.Contains(en) {
		var zero T
		return zero, false
	}
	s.mask.Clear(uint(en))
	return s.raw.Remove(en), true
}

// Open exposes the presence mask for joining. The returned set must not be modified.
func (s *MaskedStorage[T]) Open() *bitset.BitSet {
	return s.mask
}

func (s *MaskedStorage[T]) Len() int {
	return int(s.mask.Count())
}
