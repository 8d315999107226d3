// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/launchpad/keys"
	"github.com/ava-labs/launchpad/state"
)

const defaultOps = 4

var _ state.Mutable = (*TStateView)(nil)

type op struct {
	k string

	pastExists  bool
	pastV       []byte
	pastChanged bool
}

// TStateView is a scoped overlay on top of [TState]. Reads fall through to
// the parent and then to [storage]; writes stay in the view until [Commit].
type TStateView struct {
	ts                 *TState
	pendingChangedKeys map[string]maybe.Maybe[[]byte]

	// Ops is a record of all operations performed on [TState]. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op

	scope   state.Keys
	storage state.Immutable

	canAllocate bool
}

func (ts *TState) NewView(scope state.Keys, storage state.Immutable) *TStateView {
	return &TStateView{
		ts:                 ts,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte], len(scope)),

		ops: make([]*op, 0, defaultOps),

		scope:   scope,
		storage: storage,

		canAllocate: true,
	}
}

// Rollback restores the view to the ts.ops[restorePoint] operation.
func (ts *TStateView) Rollback(_ context.Context, restorePoint int) {
	for i := len(ts.ops) - 1; i >= restorePoint; i-- {
		op := ts.ops[i]

		// Key was untouched before this op.
		if !op.pastChanged {
			delete(ts.pendingChangedKeys, op.k)
			continue
		}
		if !op.pastExists {
			ts.pendingChangedKeys[op.k] = maybe.Nothing[[]byte]()
			continue
		}
		ts.pendingChangedKeys[op.k] = maybe.Some(op.pastV)
	}
	ts.ops = ts.ops[:restorePoint]
}

// OpIndex returns the number of operations done on ts.
func (ts *TStateView) OpIndex() int {
	return len(ts.ops)
}

// DisableAllocation causes [Insert] to return an error if
// it would create a new key.
func (ts *TStateView) DisableAllocation() {
	ts.canAllocate = false
}

func (ts *TStateView) EnableAllocation() {
	ts.canAllocate = true
}

func (ts *TStateView) checkScope(k []byte, perm state.Permissions) bool {
	have, ok := ts.scope[string(k)]
	return ok && have.Has(perm)
}

// GetValue returns the value associated with [key]. [key] must be in scope
// with read permission.
func (ts *TStateView) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if !ts.checkScope(key, state.Read) {
		return nil, ErrInvalidKeyOrPermission
	}
	v, _, exists, err := ts.getValue(ctx, string(key))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (ts *TStateView) getValue(ctx context.Context, key string) ([]byte, bool, bool, error) {
	if v, ok := ts.pendingChangedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false, nil
		}
		return v.Value(), true, true, nil
	}
	if v, changed, exists := ts.ts.getChangedValue(ctx, key); changed {
		return v, true, exists, nil
	}
	v, err := ts.storage.GetValue(ctx, []byte(key))
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, false, false, nil
	case err != nil:
		return nil, false, false, err
	}
	return v, false, true, nil
}

// Insert sets [key] to [value]. Updating an existing key requires write
// permission and creating one requires allocate permission.
//
// Any bytes passed into [Insert] will be consumed by [TState] and should
// not be modified/referenced after this call.
func (ts *TStateView) Insert(ctx context.Context, key []byte, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	k := string(key)
	past, changed, exists, err := ts.getValue(ctx, k)
	if err != nil {
		return err
	}
	if exists {
		if !ts.checkScope(key, state.Write) {
			return ErrInvalidKeyOrPermission
		}
	} else {
		if !ts.checkScope(key, state.Allocate) {
			return ErrInvalidKeyOrPermission
		}
		if !ts.canAllocate {
			return ErrAllocationDisabled
		}
	}
	ts.pendingChangedKeys[k] = maybe.Some(value)
	ts.ops = append(ts.ops, &op{
		k: k,

		pastExists:  exists,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

// Remove deletes [key]. Removing an absent key is a no-op.
func (ts *TStateView) Remove(ctx context.Context, key []byte) error {
	if !ts.checkScope(key, state.Write) {
		return ErrInvalidKeyOrPermission
	}
	k := string(key)
	past, changed, exists, err := ts.getValue(ctx, k)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	ts.pendingChangedKeys[k] = maybe.Nothing[[]byte]()
	ts.ops = append(ts.ops, &op{
		k: k,

		pastExists:  true,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

func (ts *TStateView) PendingChanges() int {
	return len(ts.pendingChangedKeys)
}

// Commit moves the pending changes of the view into its [TState].
func (ts *TStateView) Commit() {
	ts.ts.l.Lock()
	defer ts.ts.l.Unlock()

	for k, v := range ts.pendingChangedKeys {
		ts.ts.changedKeys[k] = v
	}
	ts.ts.ops += len(ts.ops)
}
