// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/prometheus/client_golang/prometheus"
)

var _ database.Batch = (*Batch)(nil)

type Config struct {
	CacheSize                   int    `json:"cacheSize"                   yaml:"cacheSize"`
	BytesPerSync                int    `json:"bytesPerSync"                yaml:"bytesPerSync"`
	WALBytesPerSync             int    `json:"walBytesPerSync"             yaml:"walBytesPerSync"`
	MemTableStopWritesThreshold int    `json:"memTableStopWritesThreshold" yaml:"memTableStopWritesThreshold"`
	MemTableSize                uint64 `json:"memTableSize"                yaml:"memTableSize"`
	MaxOpenFiles                int    `json:"maxOpenFiles"                yaml:"maxOpenFiles"`
	ConcurrentCompactions       int    `json:"concurrentCompactions"       yaml:"concurrentCompactions"`
	Sync                        bool   `json:"sync"                        yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   128 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * 1024 * 1024,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is a pebble-backed key-value store. Missing keys are reported as
// [database.ErrNotFound].
type Database struct {
	db      *pebble.DB
	metrics *metrics
	sync    bool

	closing chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		metrics: metrics,
		sync:    cfg.Sync,
		closing: make(chan struct{}),
	}
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		Levels:                      make([]pebble.LevelOptions, 7),
	}
	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = 32 * 1024
		l.IndexBlockSize = 256 * 1024
		l.FilterPolicy = bloom.FilterPolicy(10)
		l.FilterType = pebble.TableFilter
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
		l.EnsureDefaults()
	}
	opts.Levels[6].FilterPolicy = nil
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (db *Database) writeOptions() *pebble.WriteOptions {
	if db.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

// Get returns a copy of the value stored at [key].
func (db *Database) Get(key []byte) ([]byte, error) {
	start := db.metrics.now()
	defer db.metrics.observeGet(start)

	v, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return slices.Clone(v), nil
}

func (db *Database) Put(key []byte, value []byte) error {
	return db.db.Set(key, value, db.writeOptions())
}

func (db *Database) Delete(key []byte) error {
	return db.db.Delete(key, db.writeOptions())
}

func (db *Database) NewBatch() database.Batch {
	return &Batch{db: db}
}

// Close stops metrics collection and closes the underlying store. It is
// safe to call more than once.
func (db *Database) Close() error {
	var err error
	db.once.Do(func() {
		close(db.closing)
		db.wg.Wait()
		err = db.db.Close()
	})
	return err
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}

// Batch records its operations so that they can be replayed onto another
// writer. The pebble batch is taken on first use and handed back to
// pebble once written.
type Batch struct {
	db    *Database
	batch *pebble.Batch
	ops   []batchOp
	size  int
}

func (b *Batch) pending() *pebble.Batch {
	if b.batch == nil {
		b.batch = b.db.db.NewBatch()
	}
	return b.batch
}

func (b *Batch) Put(key []byte, value []byte) error {
	b.ops = append(b.ops, batchOp{key: slices.Clone(key), value: slices.Clone(value)})
	b.size += len(key) + len(value)
	return b.pending().Set(key, value, nil)
}

func (b *Batch) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{key: slices.Clone(key), delete: true})
	b.size += len(key)
	return b.pending().Delete(key, nil)
}

func (b *Batch) Size() int {
	return b.size
}

// Write commits the batch and releases the pebble batch. A failed commit
// keeps it so the write can be retried.
func (b *Batch) Write() error {
	batch := b.pending()
	if err := batch.Commit(b.db.writeOptions()); err != nil {
		return err
	}
	b.batch = nil
	b.db.metrics.batchWrites.Inc()
	return batch.Close()
}

func (b *Batch) Reset() {
	if b.batch != nil {
		b.batch.Reset()
	}
	b.ops = b.ops[:0]
	b.size = 0
}

func (b *Batch) Replay(w database.KeyValueWriterDeleter) error {
	for _, op := range b.ops {
		if op.delete {
			if err := w.Delete(op.key); err != nil {
				return err
			}
			continue
		}
		if err := w.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *Batch) Inner() database.Batch {
	return b
}
