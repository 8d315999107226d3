// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

const batchSize = 10_000

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func newTestDB(t *testing.T) *Database {
	cfg := NewDefaultConfig()
	cfg.CacheSize = 1024 * 1024
	cfg.Sync = false
	db, registry, err := New(t.TempDir(), cfg)
	require.NoError(t, err)
	require.NotNil(t, registry)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestGetPutDelete(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t)

	_, err := db.Get([]byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)
	has, err := db.Has([]byte("missing"))
	require.NoError(err)
	require.False(has)

	require.NoError(db.Put([]byte("k"), []byte("v")))
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)

	require.NoError(db.Delete([]byte("k")))
	has, err = db.Has([]byte("k"))
	require.NoError(err)
	require.False(has)
}

func TestBatch(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t)
	require.NoError(db.Put([]byte("old"), []byte("x")))

	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("a"), []byte("1")))
	require.NoError(batch.Delete([]byte("old")))
	require.Equal(len("a")+len("1")+len("old"), batch.Size())

	// Nothing is visible until the batch is written.
	_, err := db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(batch.Write())
	v, err := db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)
	_, err = db.Get([]byte("old"))
	require.ErrorIs(err, database.ErrNotFound)

	mem := memdb.New()
	require.NoError(mem.Put([]byte("old"), []byte("y")))
	require.NoError(batch.Replay(mem))
	v, err = mem.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)
	has, err := mem.Has([]byte("old"))
	require.NoError(err)
	require.False(has)

	batch.Reset()
	require.Zero(batch.Size())
	require.Equal(batch, batch.Inner())
}

func TestBatchReleasedAfterWrite(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t)

	batch, ok := db.NewBatch().(*Batch)
	require.True(ok)
	require.Nil(batch.batch)

	require.NoError(batch.Put([]byte("a"), []byte("1")))
	require.NotNil(batch.batch)
	require.NoError(batch.Write())
	require.Nil(batch.batch)

	// the batch stays usable after its pebble batch was released
	batch.Reset()
	require.NoError(batch.Put([]byte("b"), []byte("2")))
	require.NoError(batch.Write())
	require.Nil(batch.batch)
	for _, k := range []string{"a", "b"} {
		has, err := db.Has([]byte(k))
		require.NoError(err)
		require.True(has)
	}

	// an empty batch commits without holding anything
	require.NoError(db.NewBatch().Write())
}

func TestReopen(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.CacheSize = 1024 * 1024

	db, _, err := New(dir, cfg)
	require.NoError(err)
	require.NoError(db.Put([]byte("k"), []byte("v")))
	require.NoError(db.Close())
	require.NoError(db.Close())

	db, _, err = New(dir, cfg)
	require.NoError(err)
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
	require.NoError(db.Close())
}

func BenchmarkBatchInsertion(b *testing.B) {
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			b.StopTimer()
			cfg := NewDefaultConfig()
			cfg.Sync = sync
			db, _, err := New(b.TempDir(), cfg)
			if err != nil {
				b.Fatal(err)
			}

			keys := make([][]byte, batchSize)
			for i := 0; i < batchSize; i++ {
				keys[i] = randBytes()
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				batch := db.NewBatch()
				for j := 0; j < batchSize; j++ {
					if err := batch.Put(keys[j], randBytes()); err != nil {
						b.Fatal(err)
					}
				}
				if err := batch.Write(); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			if err := db.Close(); err != nil {
				b.Fatal(err)
			}
		})
	}
}
