// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/launchpad/keys"
	"github.com/ava-labs/launchpad/state"
)

var (
	testKey = keys.EncodeChunks([]byte("key"), 1)
	testVal = []byte("value")

	key1    = keys.EncodeChunks([]byte("key1"), 1)
	key1str = string(key1)
	key2    = keys.EncodeChunks([]byte("key2"), 2)
	key2str = string(key2)
)

func TestScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// No Scope
	tsv := ts.NewView(state.Keys{}, state.ImmutableStorage{})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, ErrInvalidKeyOrPermission)
	require.Nil(val)
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrInvalidKeyOrPermission)
	require.ErrorIs(tsv.Remove(ctx, testKey), ErrInvalidKeyOrPermission)
}

func TestPermissions(t *testing.T) {
	tests := []struct {
		name      string
		perm      state.Permissions
		exists    bool
		readErr   error
		insertErr error
		removeErr error
	}{
		{
			name:      "read only existing",
			perm:      state.Read,
			exists:    true,
			insertErr: ErrInvalidKeyOrPermission,
			removeErr: ErrInvalidKeyOrPermission,
		},
		{
			name:   "write existing",
			perm:   state.Write,
			exists: true,
		},
		{
			name:      "write cannot allocate",
			perm:      state.Write,
			readErr:   database.ErrNotFound,
			insertErr: ErrInvalidKeyOrPermission,
		},
		{
			name:    "allocate new",
			perm:    state.Allocate,
			readErr: database.ErrNotFound,
		},
		{
			name:      "allocate cannot overwrite",
			perm:      state.Allocate,
			exists:    true,
			insertErr: ErrInvalidKeyOrPermission,
			removeErr: ErrInvalidKeyOrPermission,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.TODO()
			storage := state.ImmutableStorage{}
			if tt.exists {
				storage[string(testKey)] = testVal
			}
			tsv := New(1).NewView(state.Keys{string(testKey): tt.perm}, storage)

			_, err := tsv.GetValue(ctx, testKey)
			require.ErrorIs(err, tt.readErr)
			require.ErrorIs(tsv.Insert(ctx, testKey, []byte("next")), tt.insertErr)
			require.ErrorIs(tsv.Remove(ctx, testKey), tt.removeErr)
		})
	}
}

func TestInsertValueTooLarge(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	tsv := New(1).NewView(state.Keys{key1str: state.All}, state.ImmutableStorage{})

	require.ErrorIs(tsv.Insert(ctx, key1, make([]byte, 65)), ErrInvalidKeyValue)
	require.NoError(tsv.Insert(ctx, key1, make([]byte, 64)))
}

func TestDisableAllocation(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	tsv := New(1).NewView(state.Keys{key1str: state.All}, state.ImmutableStorage{})

	tsv.DisableAllocation()
	require.ErrorIs(tsv.Insert(ctx, key1, testVal), ErrAllocationDisabled)
	tsv.EnableAllocation()
	require.NoError(tsv.Insert(ctx, key1, testVal))
}

func TestDeleteCommitGet(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	storage := state.ImmutableStorage{string(testKey): testVal}

	tsv := ts.NewView(state.Keys{string(testKey): state.Write}, storage)
	require.NoError(tsv.Remove(ctx, testKey))
	tsv.Commit()

	tsv = ts.NewView(state.Keys{string(testKey): state.Read}, storage)
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
	require.Nil(val)
	require.Equal(1, ts.PendingChanges())
	require.Equal(1, ts.OpIndex())
}

func TestRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	storage := state.ImmutableStorage{key2str: []byte("base")}
	tsv := ts.NewView(state.Keys{key1str: state.All, key2str: state.All}, storage)

	require.NoError(tsv.Insert(ctx, key1, []byte("one")))
	restore := tsv.OpIndex()
	require.NoError(tsv.Insert(ctx, key1, []byte("two")))
	require.NoError(tsv.Insert(ctx, key2, []byte("next")))
	require.NoError(tsv.Remove(ctx, key1))
	require.Equal(4, tsv.OpIndex())

	tsv.Rollback(ctx, restore)
	require.Equal(restore, tsv.OpIndex())
	v, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("one"), v)
	v, err = tsv.GetValue(ctx, key2)
	require.NoError(err)
	require.Equal([]byte("base"), v)

	tsv.Rollback(ctx, 0)
	_, err = tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
	require.Zero(tsv.PendingChanges())
}

func TestRollbackRestoresDelete(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	tsv := ts.NewView(state.Keys{key1str: state.All}, state.ImmutableStorage{key1str: testVal})

	require.NoError(tsv.Remove(ctx, key1))
	restore := tsv.OpIndex()
	require.NoError(tsv.Insert(ctx, key1, []byte("again")))
	tsv.Rollback(ctx, restore)

	_, err := tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestViewsSeeCommittedChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	scope := state.Keys{key1str: state.All}

	first := ts.NewView(scope, state.ImmutableStorage{})
	require.NoError(first.Insert(ctx, key1, testVal))

	// Uncommitted changes are invisible to siblings.
	second := ts.NewView(scope, state.ImmutableStorage{})
	_, err := second.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)

	first.Commit()
	v, err := second.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, v)
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	db := memdb.New()
	require.NoError(db.Put(key2, []byte("stale")))

	ts := New(10)
	tsv := ts.NewView(state.Keys{key1str: state.All, key2str: state.All}, state.NewReader(db))
	require.NoError(tsv.Insert(ctx, key1, testVal))
	require.NoError(tsv.Remove(ctx, key2))
	tsv.Commit()

	batch := db.NewBatch()
	require.NoError(ts.WriteChanges(ctx, batch))
	require.NoError(batch.Write())

	v, err := db.Get(key1)
	require.NoError(err)
	require.Equal(testVal, v)
	has, err := db.Has(key2)
	require.NoError(err)
	require.False(has)

	require.ErrorIs(ts.Insert(ctx, key1, make([]byte, 65)), ErrInvalidKeyValue)
	require.NoError(ts.Insert(ctx, key1, []byte("direct")))
}
