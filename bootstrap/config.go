package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bngproject/go-bng/network"
	"github.com/btcsuite/btclog"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultNetwork        = "mainnet"
	defaultDebugLevel     = "info"
	defaultMaxLogFileSize = 10
	defaultMaxLogFiles    = 3
)

// ErrInvalidConfig is returned by Validate for a configuration that cannot
// be used to start a node.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings consumed by Run.
type Config struct {
	Network            string        `long:"network" description:"Network to run on: mainnet, testnet or regtest"`
	MaxFutureBlockTime time.Duration `long:"maxfutureblocktime" description:"How far ahead of the local clock a block timestamp may be"`

	LogDir         string `long:"logdir" description:"Directory to log output. Logs go to stdout only when empty"`
	MaxLogFileSize int    `long:"maxlogfilesize" description:"Maximum logfile size in MB"`
	MaxLogFiles    int    `long:"maxlogfiles" description:"Maximum logfiles to keep (0 for no rotation)"`
	DebugLevel     string `long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical, off}"`
}

// DefaultConfig returns all default values for the Config struct.
func DefaultConfig() *Config {
	return &Config{
		Network:            defaultNetwork,
		MaxFutureBlockTime: MaxFutureBlockTime,
		MaxLogFileSize:     defaultMaxLogFileSize,
		MaxLogFiles:        defaultMaxLogFiles,
		DebugLevel:         defaultDebugLevel,
	}
}

// LoadConfig reads an INI formatted config on top of the defaults. Keys
// that are not set keep their default value.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := flags.NewIniParser(newParser(cfg)).Parse(r); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadConfigFile is like LoadConfig but reads the named file.
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	err := flags.NewIniParser(newParser(cfg)).ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file %s: %w",
			path, err)
	}
	return cfg, cfg.Validate()
}

func newParser(cfg *Config) *flags.Parser {
	return flags.NewParser(cfg, flags.Default)
}

// NetworkID resolves the configured network name.
func (c *Config) NetworkID() (network.ID, error) {
	return network.ParseID(c.Network)
}

// Validate checks the config for values that cannot work.
func (c *Config) Validate() error {
	if _, err := c.NetworkID(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.MaxFutureBlockTime < 0 {
		return fmt.Errorf("%w: maxfutureblocktime must not be "+
			"negative, got %v", ErrInvalidConfig,
			c.MaxFutureBlockTime)
	}

	if _, ok := btclog.LevelFromString(c.DebugLevel); !ok {
		return fmt.Errorf("%w: unknown debug level %q",
			ErrInvalidConfig, c.DebugLevel)
	}

	if c.LogDir != "" && (c.MaxLogFileSize <= 0 || c.MaxLogFiles < 0) {
		return fmt.Errorf("%w: maxlogfilesize must be positive and "+
			"maxlogfiles not negative", ErrInvalidConfig)
	}

	return nil
}
