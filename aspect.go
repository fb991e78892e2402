package silo

import (
	"strconv"
	"strings"

	"github.com/TheBitDrifter/mask"
)

var (
	_ Aspect = Has[struct{}]{}
	_ Aspect = Not[struct{}]{}
	_ Aspect = All{}
	_ Aspect = Everything{}
)

// Has requires component T.
type Has[T any] struct{}

func (Has[T]) Required(reg *ComponentRegistry) []ComponentID {
	return []ComponentID{IDOf[T](reg)}
}

func (Has[T]) Excluded(*ComponentRegistry) []ComponentID {
	return nil
}

// Not excludes component T.
type Not[T any] struct{}

func (Not[T]) Required(*ComponentRegistry) []ComponentID {
	return nil
}

func (Not[T]) Excluded(reg *ComponentRegistry) []ComponentID {
	return []ComponentID{IDOf[T](reg)}
}

// All is the union of its children: everything any child requires and
// everything any child excludes.
type All []Aspect

func (a All) Required(reg *ComponentRegistry) []ComponentID {
	var ids []ComponentID
	for _, child := range a {
		ids = append(ids, child.Required(reg)...)
	}
	return ids
}

func (a All) Excluded(reg *ComponentRegistry) []ComponentID {
	var ids []ComponentID
	for _, child := range a {
		ids = append(ids, child.Excluded(reg)...)
	}
	return ids
}

// Everything matches every living entity.
type Everything struct{}

func (Everything) Required(*ComponentRegistry) []ComponentID { return nil }
func (Everything) Excluded(*ComponentRegistry) []ComponentID { return nil }

// Matcher is an aspect compiled against a registry. It is comparable and
// serves as the aspect index key.
type Matcher struct {
	required mask.Mask
	excluded mask.Mask
}

// NewMatcher compiles a. A type that is both required and excluded can never
// match; that is not rejected.
func NewMatcher(reg *ComponentRegistry, a Aspect) Matcher {
	var m Matcher
	for _, id := range a.Required(reg) {
		m.required.Mark(id.bit())
	}
	for _, id := range a.Excluded(reg) {
		m.excluded.Mark(id.bit())
	}
	return m
}

// Check reports whether an entity whose presence mask is bits satisfies m.
// ContainsNone is false for an empty argument, so empty sets are tested
// separately.
func (m Matcher) Check(bits mask.Mask) bool {
	if !m.required.IsEmpty() && !bits.ContainsAll(m.required) {
		return false
	}
	return m.excluded.IsEmpty() || bits.ContainsNone(m.excluded)
}

func (m Matcher) String() string {
	var sb strings.Builder
	sb.WriteString("Matcher{")
	writeIDs(&sb, "req", m.required)
	sb.WriteString(" ")
	writeIDs(&sb, "not", m.excluded)
	sb.WriteString("}")
	return sb.String()
}

func writeIDs(sb *strings.Builder, label string, m mask.Mask) {
	sb.WriteString(label)
	sb.WriteString(":[")
	first := true
	for bit := uint32(0); bit < MaxComponents; bit++ {
		var single mask.Mask
		single.Mark(bit)
		if !m.ContainsAll(single) {
			continue
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(strconv.Itoa(int(bit) + 1))
	}
	sb.WriteString("]")
}
