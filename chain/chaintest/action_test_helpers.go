// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/state"
)

var _ state.Mutable = (*InMemoryStore)(nil)

// InMemoryStore is an in-memory implementation of `state.Mutable`
type InMemoryStore struct {
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (i *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	val, ok := i.Storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return val, nil
}

func (i *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	i.Storage[string(key)] = value
	return nil
}

func (i *InMemoryStore) Remove(_ context.Context, key []byte) error {
	delete(i.Storage, string(key))
	return nil
}

// Snapshot returns a copy of the store's contents.
func (i *InMemoryStore) Snapshot() map[string][]byte {
	c := make(map[string][]byte, len(i.Storage))
	for k, v := range i.Storage {
		c[k] = v
	}
	return c
}

// ActionTest is a single parameterized test. It calls Execute on the action
// with the passed parameters and checks that all assertions pass.
type ActionTest struct {
	Name string

	Action chain.Action

	State state.Mutable
	Actor codec.Address

	ExpectedOutputs chain.Output
	ExpectedErr     error

	Assertion func(context.Context, *testing.T, state.Mutable)
}

// Run executes the [ActionTest] and make sure all assertions pass.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		output, err := test.Action.Execute(ctx, test.State, test.Actor)

		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, output)

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}

// ActionBenchmark is a parameterized benchmark. To avoid using shared state
// between runs, a new state is created for each iteration using the
// provided `CreateState` function.
type ActionBenchmark struct {
	Name   string
	Action chain.Action

	CreateState func() state.Mutable
	Actor       codec.Address

	ExpectedOutputs chain.Output
	ExpectedErr     error
}

// Run executes the [ActionBenchmark] and make sure all the benchmark
// assertions pass.
func (test *ActionBenchmark) Run(ctx context.Context, b *testing.B) {
	require := require.New(b)

	states := make([]state.Mutable, b.N)
	for i := 0; i < b.N; i++ {
		states[i] = test.CreateState()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		output, err := test.Action.Execute(ctx, states[i], test.Actor)
		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, output)
	}
}
