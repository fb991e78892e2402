package silo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatch(t *testing.T) {
	t.Run("No panic", func(t *testing.T) {
		assert.NoError(t, Catch(func() {}))
	})

	t.Run("Store panic", func(t *testing.T) {
		err := Catch(func() { panic(DeadEntityError{Entity: 4}) })
		require.Error(t, err)
		var dead DeadEntityError
		require.ErrorAs(t, err, &dead)
		assert.Equal(t, Entity(4), dead.Entity)
		assert.Contains(t, err.Error(), "entity 4 is not alive")
	})

	t.Run("Foreign panic", func(t *testing.T) {
		foreign := errors.New("not ours")
		assert.PanicsWithValue(t, foreign, func() {
			_ = Catch(func() { panic(foreign) })
		})
		assert.PanicsWithValue(t, "plain", func() {
			_ = Catch(func() { panic("plain") })
		})
	})
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ComponentRegisteredError{Name: "silo.Position"}, "component already registered: silo.Position"},
		{ComponentNotRegisteredError{Name: "silo.Health"}, "component not registered: silo.Health"},
		{ResourceExistsError{ID: IDFor[Clock](1)}, "resource already added: silo.Clock#1"},
		{ResourceNotFoundError{ID: IDFor[Clock](0)}, "no resource with the given id: silo.Clock"},
		{ResourceAliasError{ID: IDFor[Clock](0), Write: true, Readers: 2}, "cannot write silo.Clock: 2 reader(s) outstanding, writer outstanding: false"},
		{SystemRegisteredError{Name: "move"}, `system "move" is already registered`},
		{LockedWorldError{}, "world is currently locked by a running system"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}
