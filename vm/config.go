// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/launchpad/pebble"
	"github.com/ava-labs/launchpad/trace"
)

type Config struct {
	TraceConfig    trace.Config  `json:"traceConfig" yaml:"traceConfig"`
	DataDir        string        `json:"dataDir" yaml:"dataDir"` // empty keeps state in memory
	DatabaseConfig pebble.Config `json:"databaseConfig" yaml:"databaseConfig"`
	LockMapSize    int           `json:"lockMapSize" yaml:"lockMapSize"`
	// EnableFaucet turns on local mode: deposits out of thin air and
	// unsigned writes over the API.
	EnableFaucet   bool          `json:"enableFaucet" yaml:"enableFaucet"`
}

func NewConfig() Config {
	return Config{
		TraceConfig:    trace.Config{Enabled: false},
		DatabaseConfig: pebble.NewDefaultConfig(),
		LockMapSize:    1_024,
		EnableFaucet:   true,
	}
}
