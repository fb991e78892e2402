package silo

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedWorld(t *testing.T, buf *bytes.Buffer) *World {
	t.Helper()
	return Factory.NewWorld(WithLogger(zerolog.New(buf).Level(zerolog.DebugLevel)))
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var event map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &event))
	return event
}

func TestLogWorld(t *testing.T) {
	var buf bytes.Buffer
	w := newLoggedWorld(t, &buf)
	RegisterComponent[Position](w)
	RegisterComponent[Velocity](w)
	w.RegisterSystem(NewSystem("move", Everything{}, func(Context, time.Duration, []Entity) {}))

	buf.Reset()
	w.LogWorld(zerolog.InfoLevel)
	event := lastLine(t, &buf)
	assert.EqualValues(t, 2, event["total_components"])
	assert.EqualValues(t, 1, event["total_systems"])
	assert.Equal(t, []any{"move"}, event["systems"])
	components := event["components"].([]any)
	require.Len(t, components, 2)
	assert.Equal(t, "silo.Velocity", components[1].(map[string]any)["component_name"])
}

func TestLogEntity(t *testing.T) {
	var buf bytes.Buffer
	w := newLoggedWorld(t, &buf)
	RegisterComponent[Position](w)
	RegisterComponent[Velocity](w)
	ed := w.Create()
	Add(ed, Velocity{})

	w.LogEntity(zerolog.InfoLevel, ed.Entity())
	event := lastLine(t, &buf)
	assert.Equal(t, true, event["alive"])
	assert.Equal(t, []any{"silo.Velocity"}, event["components"])

	ed.Destroy()
	w.LogEntity(zerolog.InfoLevel, ed.Entity())
	event = lastLine(t, &buf)
	assert.Equal(t, false, event["alive"])
}

func TestDispatchLogsSystemField(t *testing.T) {
	var buf bytes.Buffer
	w := newLoggedWorld(t, &buf)
	w.RegisterSystem(NewSystem("tick", Everything{}, func(ctx Context, _ time.Duration, _ []Entity) {
		ctx.Logger().Info().Msg("inside")
	}))

	buf.Reset()
	w.Dispatch(time.Millisecond)
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var event map[string]any
		require.NoError(t, json.Unmarshal(line, &event))
		assert.Equal(t, "tick", event["system"])
	}
	assert.Equal(t, "system dispatched", lastLine(t, &buf)["message"])
}
