package silo

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/TheBitDrifter/table"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const defaultVecChunkSize = 10

// Config holds global configuration for new worlds and columns. Changes only
// affect columns and worlds created afterwards.
var Config config = config{
	vecChunkSize:    defaultVecChunkSize,
	defaultStrategy: StrategyVec,
	logLevel:        zerolog.Disabled,
}

type config struct {
	tableEvents     table.TableEvents
	vecChunkSize    int
	defaultStrategy Strategy
	logLevel        zerolog.Level
}

// SetTableEvents configures the table event callbacks used by table-backed columns
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetVecChunkSize sets how many slots a vec column grows by past the highest id.
func (c *config) SetVecChunkSize(n int) {
	if n < 1 {
		n = 1
	}
	c.vecChunkSize = n
}

func (c *config) SetDefaultStrategy(s Strategy) {
	c.defaultStrategy = s
}

func (c *config) SetLogLevel(level zerolog.Level) {
	c.logLevel = level
}

func (c *config) VecChunkSize() int         { return c.vecChunkSize }
func (c *config) DefaultStrategy() Strategy { return c.defaultStrategy }
func (c *config) LogLevel() zerolog.Level   { return c.logLevel }

type envConfig struct {
	VecChunkSize int    `config:"SILO_VEC_CHUNK_SIZE"`
	Storage      string `config:"SILO_STORAGE"`
	LogLevel     string `config:"SILO_LOG_LEVEL"`
}

// LoadConfigFromEnv applies SILO_VEC_CHUNK_SIZE, SILO_STORAGE and
// SILO_LOG_LEVEL to Config. Unset variables leave the current value alone.
func LoadConfigFromEnv() error {
	var env envConfig
	if err := jlconfig.FromEnv().To(&env); err != nil {
		return eris.Wrap(err, "failed to read silo environment")
	}
	if env.VecChunkSize > 0 {
		Config.SetVecChunkSize(env.VecChunkSize)
	}
	if env.Storage != "" {
		s, ok := ParseStrategy(env.Storage)
		if !ok {
			return eris.Errorf("unknown storage strategy %q", env.Storage)
		}
		Config.SetDefaultStrategy(s)
	}
	if env.LogLevel != "" {
		level, err := zerolog.ParseLevel(env.LogLevel)
		if err != nil {
			return eris.Wrapf(err, "invalid log level %q", env.LogLevel)
		}
		Config.SetLogLevel(level)
	}
	return nil
}
