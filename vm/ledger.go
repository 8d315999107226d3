// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"

	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/state"
	"github.com/ava-labs/launchpad/storage"
)

var _ chain.Payments = (*Ledger)(nil)

// Ledger moves funds between the balances kept in storage.
type Ledger struct{}

func (*Ledger) StateKeys(t chain.Transfer) state.Keys {
	keys := state.Keys{}
	// The sender's balance is removed once it reaches zero.
	keys.Add(string(storage.BalanceKey(t.From, t.Asset)), state.Write)
	keys.Add(string(storage.BalanceKey(t.To, t.Asset)), state.All)
	return keys
}

func (l *Ledger) Collect(ctx context.Context, mu state.Mutable, t chain.Transfer) error {
	return l.move(ctx, mu, t)
}

func (l *Ledger) Transfer(ctx context.Context, mu state.Mutable, t chain.Transfer) error {
	return l.move(ctx, mu, t)
}

func (*Ledger) move(ctx context.Context, mu state.Mutable, t chain.Transfer) error {
	if _, err := storage.SubBalance(ctx, mu, t.From, t.Asset, t.Amount); err != nil {
		return err
	}
	_, err := storage.AddBalance(ctx, mu, t.To, t.Asset, t.Amount)
	return err
}
