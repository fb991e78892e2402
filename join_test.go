package silo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageWith[T any](entities ...Entity) *MaskedStorage[T] {
	sto := FactoryNewStorage[T](StrategyVec)
	var zero T
	for _, en := range entities {
		sto.Insert(en, zero)
	}
	return sto
}

func TestJoinIntersection(t *testing.T) {
	tests := []struct {
		name  string
		terms func() []Term
		want  []Entity
	}{
		{
			name: "Two columns",
			terms: func() []Term {
				return []Term{storageWith[Position](1, 3, 5), storageWith[Velocity](3, 5, 7)}
			},
			want: []Entity{3, 5},
		},
		{
			name: "Single column",
			terms: func() []Term {
				return []Term{storageWith[Position](9, 2, 4)}
			},
			want: []Entity{2, 4, 9},
		},
		{
			name:  "No terms",
			terms: func() []Term { return nil },
			want:  nil,
		},
		{
			name: "Disjoint",
			terms: func() []Term {
				return []Term{storageWith[Position](1, 2), storageWith[Velocity](3, 4)}
			},
			want: nil,
		},
		{
			name: "Three columns",
			terms: func() []Term {
				return []Term{
					storageWith[Position](1, 2, 3, 4),
					storageWith[Velocity](2, 3, 4),
					storageWith[Health](1, 3, 4, 8),
				}
			},
			want: []Entity{3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Factory.NewJoin(tt.terms()...)
			assert.Equal(t, len(tt.want), j.Total())

			var got []Entity
			for j.Next() {
				got = append(got, j.Entity())
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 0, j.Remaining())
			assert.False(t, j.Next())
		})
	}
}

func TestJoinIsASnapshot(t *testing.T) {
	pos := storageWith[Position](1, 2, 3)
	j := Factory.NewJoin(pos)

	require.True(t, j.Next())
	pos.Remove(2)
	pos.Insert(4, Position{})

	assert.Equal(t, []Entity{2, 3}, j.Collect())
}

func TestJoinEntitiesStopsEarly(t *testing.T) {
	j := Factory.NewJoin(storageWith[Position](1, 2, 3, 4))
	for en := range j.Entities() {
		if en == 2 {
			break
		}
	}
	assert.Equal(t, 2, j.Remaining())
	assert.Equal(t, []Entity{3, 4}, j.Collect())
}

func TestTypedJoins(t *testing.T) {
	pos := FactoryNewStorage[Position](StrategySparse)
	vel := FactoryNewStorage[Velocity](StrategyVec)
	hp := FactoryNewStorage[Health](StrategyVec)
	for i := Entity(1); i <= 4; i++ {
		pos.Insert(i, Position{X: float64(i)})
	}
	vel.Insert(2, Velocity{X: 10})
	vel.Insert(4, Velocity{X: 20})
	hp.Insert(4, Health{Current: 1})

	for _, row := range Join2(pos, vel) {
		row.A.X += row.B.X
	}
	got, _ := pos.Get(2)
	assert.Equal(t, 12.0, got.X)
	got, _ = pos.Get(4)
	assert.Equal(t, 24.0, got.X)
	got, _ = pos.Get(3)
	assert.Equal(t, 3.0, got.X)

	var single []Entity
	for en, p := range Join1(pos, hp) {
		single = append(single, en)
		assert.Equal(t, 24.0, p.X)
	}
	assert.Equal(t, []Entity{4}, single)

	count := 0
	for en, row := range Join3(pos, vel, hp) {
		count++
		assert.Equal(t, Entity(4), en)
		assert.Equal(t, 1, row.C.Current)
	}
	assert.Equal(t, 1, count)
}

func TestJoin2YieldsBothValues(t *testing.T) {
	pos := FactoryNewStorage[Position](StrategyVec)
	vel := FactoryNewStorage[Velocity](StrategyVec)
	for _, en := range []Entity{1, 3, 5} {
		pos.Insert(en, Position{X: float64(en)})
	}
	for _, en := range []Entity{3, 5, 7} {
		vel.Insert(en, Velocity{Y: float64(en) * 10})
	}

	var got []Entity
	for en, row := range Join2(pos, vel) {
		got = append(got, en)
		assert.Equal(t, float64(en), row.A.X)
		assert.Equal(t, float64(en)*10, row.B.Y)
	}
	assert.Equal(t, []Entity{3, 5}, got)
}
