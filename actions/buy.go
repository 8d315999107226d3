// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/curve"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
	"github.com/ava-labs/launchpad/storage"
)

var (
	_ chain.Output = (*BuyResult)(nil)
	_ chain.Action = (*Buy)(nil)
)

type BuyResult struct {
	Token     market.TokenID `json:"token"`
	Buyer     codec.Address  `json:"buyer"`
	AmountIn  *big.Int       `json:"amountIn"`
	AmountOut *big.Int       `json:"amountOut"`

	RealBaseReserve  *big.Int `json:"realBaseReserve"`
	RealAssetReserve *big.Int `json:"realAssetReserve"`
}

func (*BuyResult) GetTypeID() uint8 {
	return consts.BuyID
}

func (r *BuyResult) Transfers() []chain.Transfer {
	return []chain.Transfer{{
		Asset:  r.Token,
		From:   storage.MarketAddress(r.Token),
		To:     r.Buyer,
		Amount: r.AmountOut,
	}}
}

// Buy pays [Amount] of the base asset into [Token]'s market in exchange for
// the token.
type Buy struct {
	Token  market.TokenID `json:"token"`
	Amount *big.Int       `json:"amount"`

	// MinAmountOut fails the trade if it would yield less. Nil or zero
	// accepts any output.
	MinAmountOut *big.Int `json:"minAmountOut,omitempty"`
}

func (*Buy) GetTypeID() uint8 {
	return consts.BuyID
}

func (b *Buy) Payment(actor codec.Address) *chain.Transfer {
	return &chain.Transfer{
		Asset:  market.Base,
		From:   actor,
		To:     storage.MarketAddress(b.Token),
		Amount: b.Amount,
	}
}

func (b *Buy) Payout(actor codec.Address) *chain.Transfer {
	return &chain.Transfer{
		Asset: b.Token,
		From:  storage.MarketAddress(b.Token),
		To:    actor,
	}
}

func (b *Buy) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.MarketKey(b.Token)): state.Read | state.Write,
	}
}

// Verify reports a token that can never carry a market as
// [market.ErrMarketNotFound] wrapping the reason.
func (b *Buy) Verify() error {
	if err := b.Token.Validate(); err != nil {
		return fmt.Errorf("%w: %w", market.ErrMarketNotFound, err)
	}
	if !isPositive(b.Amount) {
		return curve.ErrZeroPayment
	}
	return checkAmount("amount", b.Amount)
}

func (b *Buy) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (chain.Output, error) {
	if err := b.Verify(); err != nil {
		return nil, err
	}
	s, ok, err := storage.GetMarket(ctx, mu, b.Token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", market.ErrMarketNotFound, b.Token)
	}
	next, out, err := curve.Buy(s, b.Amount)
	if err != nil {
		return nil, err
	}
	if b.MinAmountOut != nil && out.Cmp(b.MinAmountOut) < 0 {
		return nil, fmt.Errorf("%w: got %s, want at least %s", ErrOutputSlippageExceeded, out, b.MinAmountOut)
	}
	if err := storage.SetMarket(ctx, mu, next); err != nil {
		return nil, err
	}
	return &BuyResult{
		Token:            b.Token,
		Buyer:            actor,
		AmountIn:         new(big.Int).Set(b.Amount),
		AmountOut:        out,
		RealBaseReserve:  next.RealBaseReserve,
		RealAssetReserve: next.RealAssetReserve,
	}, nil
}
