// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"math/big"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
)

type Action interface {
	codec.Typed

	// Verify checks the arguments of the action before any funds move.
	Verify() error

	// Payment returns the funds [actor] must hand over before the action
	// executes, or nil if the action is free.
	Payment(actor codec.Address) *Transfer

	// Payout returns the asset and accounts of the funds a successful
	// action pays out, or nil if it pays nothing. Its amount is ignored.
	Payout(actor codec.Address) *Transfer

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution by [actor], excluding payment and payout
	// balances.
	//
	// All keys specified must be suffixed with the number of chunks that
	// could ever be read from that key (formatted as a big-endian uint16).
	StateKeys(actor codec.Address) state.Keys

	// Execute applies the action to [mu]. If an error is returned, the host
	// discards every change made to [mu].
	Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (Output, error)
}

type Output interface {
	codec.Typed

	// Transfers are the funds the host must move once the action succeeds.
	// Each must match the action's [Action.Payout].
	Transfers() []Transfer
}

// Transfer moves [Amount] of [Asset] between two ledger accounts.
type Transfer struct {
	Asset  market.TokenID `json:"asset"`
	From   codec.Address  `json:"from"`
	To     codec.Address  `json:"to"`
	Amount *big.Int       `json:"amount"`
}

// SameRoute returns true if t and o move the same asset between the same
// accounts.
func (t Transfer) SameRoute(o Transfer) bool {
	return t.Asset == o.Asset && t.From == o.From && t.To == o.To
}

// Payments moves funds between accounts on behalf of actions.
type Payments interface {
	// StateKeys returns the keys [Collect] or [Transfer] may touch for [t].
	StateKeys(t Transfer) state.Keys

	// Collect takes an action's payment from the actor. It fails if the
	// actor cannot cover it.
	Collect(ctx context.Context, mu state.Mutable, t Transfer) error

	// Transfer pays out funds owed by a successful action.
	Transfer(ctx context.Context, mu state.Mutable, t Transfer) error
}
