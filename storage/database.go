// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/launchpad/pebble"
	"github.com/ava-labs/launchpad/utils"
)

const stateNamespace = "statedb"

// Database is the store a node keeps markets and balances in.
type Database interface {
	database.KeyValueReader
	database.KeyValueWriterDeleter
	NewBatch() database.Batch
	Close() error
}

var (
	_ Database = (*pebble.Database)(nil)
	_ Database = (*memdb.Database)(nil)
)

// New opens the state database under [dataDir]. An empty [dataDir] keeps
// state in memory. The returned gatherer exposes backend metrics and is
// empty for the in-memory store.
func New(cfg pebble.Config, dataDir string) (Database, prometheus.Gatherer, error) {
	if dataDir == "" {
		return memdb.New(), prometheus.NewRegistry(), nil
	}
	path, err := utils.InitSubDirectory(dataDir, stateNamespace)
	if err != nil {
		return nil, nil, err
	}
	db, registry, err := pebble.New(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, registry, nil
}
