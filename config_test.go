package silo

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreConfig(t *testing.T) {
	t.Helper()
	saved := Config
	t.Cleanup(func() { Config = saved })
}

func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantErr  bool
		chunk    int
		strategy Strategy
		level    zerolog.Level
	}{
		{
			name:     "Defaults untouched",
			env:      map[string]string{},
			chunk:    defaultVecChunkSize,
			strategy: StrategyVec,
			level:    zerolog.Disabled,
		},
		{
			name: "All set",
			env: map[string]string{
				"SILO_VEC_CHUNK_SIZE": "64",
				"SILO_STORAGE":        "sparse",
				"SILO_LOG_LEVEL":      "debug",
			},
			chunk:    64,
			strategy: StrategySparse,
			level:    zerolog.DebugLevel,
		},
		{
			name:    "Unknown strategy",
			env:     map[string]string{"SILO_STORAGE": "archetype"},
			wantErr: true,
		},
		{
			name:    "Bad level",
			env:     map[string]string{"SILO_LOG_LEVEL": "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreConfig(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := LoadConfigFromEnv()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.chunk, Config.VecChunkSize())
			assert.Equal(t, tt.strategy, Config.DefaultStrategy())
			assert.Equal(t, tt.level, Config.LogLevel())
		})
	}
}

func TestConfigDefaultStrategyAppliesToNewColumns(t *testing.T) {
	restoreConfig(t)
	Config.SetDefaultStrategy(StrategyTable)

	w := Factory.NewWorld()
	RegisterComponent[Position](w)

	h := Fetch[MaskedStorage[Position]](w.Resources())
	defer h.Release()
	_, isTable := h.Get().raw.(*TableStorage[Position])
	assert.True(t, isTable)
}

func TestConfigVecChunkSize(t *testing.T) {
	restoreConfig(t)
	Config.SetVecChunkSize(0)
	assert.Equal(t, 1, Config.VecChunkSize())

	Config.SetVecChunkSize(32)
	vec := FactoryNewVecStorage[int]()
	vec.Insert(1, 1)
	assert.Len(t, vec.values, 34)
}
