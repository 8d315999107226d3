// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"math/big"

	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
)

var (
	_ chain.Output = (*TransferResult)(nil)
	_ chain.Action = (*Transfer)(nil)
)

type TransferResult struct {
	Asset  market.TokenID `json:"asset"`
	From   codec.Address  `json:"from"`
	To     codec.Address  `json:"to"`
	Amount *big.Int       `json:"amount"`
}

func (*TransferResult) GetTypeID() uint8 {
	return consts.TransferID
}

func (*TransferResult) Transfers() []chain.Transfer {
	return nil
}

// Transfer sends [Amount] of [Asset] to [To]. The funds move as the
// action's payment.
type Transfer struct {
	To     codec.Address  `json:"to"`
	Asset  market.TokenID `json:"asset"`
	Amount *big.Int       `json:"amount"`
}

func (*Transfer) GetTypeID() uint8 {
	return consts.TransferID
}

func (t *Transfer) Payment(actor codec.Address) *chain.Transfer {
	return &chain.Transfer{
		Asset:  t.Asset,
		From:   actor,
		To:     t.To,
		Amount: t.Amount,
	}
}

func (*Transfer) Payout(codec.Address) *chain.Transfer {
	return nil
}

func (*Transfer) StateKeys(codec.Address) state.Keys {
	return state.Keys{}
}

func (t *Transfer) Verify() error {
	if !isPositive(t.Amount) {
		return ErrOutputValueZero
	}
	if err := checkAmount("amount", t.Amount); err != nil {
		return err
	}
	return t.Asset.Validate()
}

func (t *Transfer) Execute(_ context.Context, _ state.Mutable, actor codec.Address) (chain.Output, error) {
	if err := t.Verify(); err != nil {
		return nil, err
	}
	if t.To == actor {
		return nil, ErrOutputSelfTransfer
	}
	return &TransferResult{
		Asset:  t.Asset,
		From:   actor,
		To:     t.To,
		Amount: new(big.Int).Set(t.Amount),
	}, nil
}
