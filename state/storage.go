// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var (
	_ Immutable = ImmutableStorage(nil)
	_ Mutable   = MutableStorage(nil)
	_ Immutable = (*Reader)(nil)
)

// ImmutableStorage is an in-memory [Immutable], mostly useful in tests.
type ImmutableStorage map[string][]byte

func (i ImmutableStorage) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return lookup(i, key)
}

// MutableStorage is an in-memory [Mutable]. Values are stored as given.
type MutableStorage map[string][]byte

func (m MutableStorage) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return lookup(m, key)
}

func (m MutableStorage) Insert(_ context.Context, key []byte, value []byte) error {
	m[string(key)] = value
	return nil
}

func (m MutableStorage) Remove(_ context.Context, key []byte) error {
	delete(m, string(key))
	return nil
}

func lookup(m map[string][]byte, key []byte) ([]byte, error) {
	v, ok := m[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return v, nil
}

// Reader serves committed values straight from a database.
type Reader struct {
	db database.KeyValueReader
}

func NewReader(db database.KeyValueReader) *Reader {
	return &Reader{db: db}
}

func (r *Reader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}
