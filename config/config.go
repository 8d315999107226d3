// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//nolint:revive
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/units"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/launchpad/pubsub"
	"github.com/ava-labs/launchpad/trace"
	"github.com/ava-labs/launchpad/vm"
)

var (
	ErrInvalidConfig = errors.New("invalid config")

	defaultHosts   = []string{"localhost"}
	defaultOrigins = []string{"*"}
)

// Config is everything a node is started with. Files may be YAML or JSON.
type Config struct {
	VM vm.Config `json:"vm" yaml:"vm"`

	HTTPHost          string        `json:"httpHost" yaml:"httpHost"`
	HTTPPort          uint16        `json:"httpPort" yaml:"httpPort"`
	AllowedOrigins    []string      `json:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedHosts      []string      `json:"allowedHosts" yaml:"allowedHosts"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
	MaxRequestSize    int           `json:"maxRequestSize" yaml:"maxRequestSize"`

	// EnableTradeFeed serves committed actions over a websocket
	EnableTradeFeed bool                `json:"enableTradeFeed" yaml:"enableTradeFeed"`
	TradeFeed       pubsub.ServerConfig `json:"tradeFeed" yaml:"tradeFeed"`

	LogLevel        string `json:"logLevel" yaml:"logLevel"`
	LogDisplayLevel string `json:"logDisplayLevel" yaml:"logDisplayLevel"`
	LogDir          string `json:"logDir" yaml:"logDir"` // empty logs to the console only
	LogMaxSize      int    `json:"logMaxSize" yaml:"logMaxSize"`   // megabytes
	LogMaxFiles     int    `json:"logMaxFiles" yaml:"logMaxFiles"` // files
	LogMaxAge       int    `json:"logMaxAge" yaml:"logMaxAge"`     // days
	LogCompress     bool   `json:"logCompress" yaml:"logCompress"`
}

func NewDefault() *Config {
	return &Config{
		VM:                vm.NewConfig(),
		HTTPHost:          "127.0.0.1",
		HTTPPort:          9650,
		AllowedOrigins:    defaultOrigins,
		AllowedHosts:      defaultHosts,
		ReadHeaderTimeout: 30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MaxRequestSize:    units.MiB,
		EnableTradeFeed:   true,
		TradeFeed:         pubsub.NewDefaultServerConfig(),
		LogLevel:          logging.Info.String(),
		LogDisplayLevel:   logging.Info.String(),
		LogMaxSize:        8,
		LogMaxFiles:       5,
		LogMaxAge:         7,
		LogCompress:       true,
	}
}

// Load reads [path] over the defaults. An empty [path] returns the
// defaults.
func Load(path string) (*Config, error) {
	c := NewDefault()
	if path == "" {
		return c, c.Validate()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ToLevel(c.LogDisplayLevel); err != nil {
		return fmt.Errorf("%w: log display level: %w", ErrInvalidConfig, err)
	}
	if rate := c.VM.TraceConfig.TraceSampleRate; rate < 0 || rate > 1 {
		return fmt.Errorf("%w: trace sample rate %f not in [0, 1]", ErrInvalidConfig, rate)
	}
	if c.VM.LockMapSize <= 0 {
		return fmt.Errorf("%w: lock map size must be positive", ErrInvalidConfig)
	}
	if c.MaxRequestSize <= 0 {
		return fmt.Errorf("%w: max request size must be positive", ErrInvalidConfig)
	}
	if c.EnableTradeFeed && (c.TradeFeed.MaxPendingMessages <= 0 || c.TradeFeed.PongWait <= 0) {
		return fmt.Errorf("%w: trade feed needs a positive queue and pong wait", ErrInvalidConfig)
	}
	if c.ShutdownTimeout < 0 || c.ReadHeaderTimeout < 0 {
		return fmt.Errorf("%w: timeouts cannot be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level {
	l, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return logging.Info
	}
	return l
}

func (c *Config) GetLogDisplayLevel() logging.Level {
	l, err := logging.ToLevel(c.LogDisplayLevel)
	if err != nil {
		return logging.Info
	}
	return l
}

func (c *Config) GetTraceConfig() *trace.Config { return &c.VM.TraceConfig }
func (c *Config) GetHTTPAddress() string        { return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort) }
