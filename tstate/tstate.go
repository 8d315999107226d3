// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/launchpad/keys"
)

// TState accumulates the changes of committed views until they are written
// to a database in one batch.
type TState struct {
	l           sync.RWMutex
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// Insert should only be called if you know what you are doing (updates
// here are not checked against any scope).
func (ts *TState) Insert(_ context.Context, key, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	ts.l.Lock()
	defer ts.l.Unlock()

	ts.changedKeys[string(key)] = maybe.Some(value)
	return nil
}

// PendingChanges returns the number of keys changed by committed views.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// OpIndex returns the number of operations committed into ts.
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// WriteChanges writes every change to [w] in key order.
func (ts *TState) WriteChanges(_ context.Context, w database.KeyValueWriterDeleter) error {
	ts.l.RLock()
	defer ts.l.RUnlock()

	names := make([]string, 0, len(ts.changedKeys))
	for k := range ts.changedKeys {
		names = append(names, k)
	}
	slices.SortFunc(names, strings.Compare)
	for _, k := range names {
		v := ts.changedKeys[k]
		if v.IsNothing() {
			if err := w.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := w.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
