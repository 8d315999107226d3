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
	_ chain.Output = (*SellResult)(nil)
	_ chain.Action = (*Sell)(nil)
)

type SellResult struct {
	Token     market.TokenID `json:"token"`
	Seller    codec.Address  `json:"seller"`
	AmountIn  *big.Int       `json:"amountIn"`
	AmountOut *big.Int       `json:"amountOut"`

	RealBaseReserve  *big.Int `json:"realBaseReserve"`
	RealAssetReserve *big.Int `json:"realAssetReserve"`
}

func (*SellResult) GetTypeID() uint8 {
	return consts.SellID
}

func (r *SellResult) Transfers() []chain.Transfer {
	return []chain.Transfer{{
		Asset:  market.Base,
		From:   storage.MarketAddress(r.Token),
		To:     r.Seller,
		Amount: r.AmountOut,
	}}
}

// Sell returns [Amount] of [Asset] to its market for the base asset. The
// market is the one of the asset paid.
type Sell struct {
	Asset  market.TokenID `json:"asset"`
	Amount *big.Int       `json:"amount"`

	// MinAmountOut fails the trade if it would yield less. Nil or zero
	// accepts any output.
	MinAmountOut *big.Int `json:"minAmountOut,omitempty"`
}

func (*Sell) GetTypeID() uint8 {
	return consts.SellID
}

func (s *Sell) Payment(actor codec.Address) *chain.Transfer {
	return &chain.Transfer{
		Asset:  s.Asset,
		From:   actor,
		To:     storage.MarketAddress(s.Asset),
		Amount: s.Amount,
	}
}

func (s *Sell) Payout(actor codec.Address) *chain.Transfer {
	return &chain.Transfer{
		Asset: market.Base,
		From:  storage.MarketAddress(s.Asset),
		To:    actor,
	}
}

func (s *Sell) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.MarketKey(s.Asset)): state.Read | state.Write,
	}
}

// Verify reports the base asset and malformed ids as
// [market.ErrMarketNotFound] wrapping the reason.
func (s *Sell) Verify() error {
	if s.Asset == market.Base {
		return fmt.Errorf("%w: %w: %s", market.ErrMarketNotFound, ErrOutputWrongAsset, s.Asset)
	}
	if err := s.Asset.Validate(); err != nil {
		return fmt.Errorf("%w: %w", market.ErrMarketNotFound, err)
	}
	if !isPositive(s.Amount) {
		return curve.ErrZeroPayment
	}
	return checkAmount("amount", s.Amount)
}

func (s *Sell) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (chain.Output, error) {
	if err := s.Verify(); err != nil {
		return nil, err
	}
	m, ok, err := storage.GetMarket(ctx, mu, s.Asset)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", market.ErrMarketNotFound, s.Asset)
	}
	next, out, err := curve.Sell(m, s.Amount)
	if err != nil {
		return nil, err
	}
	if s.MinAmountOut != nil && out.Cmp(s.MinAmountOut) < 0 {
		return nil, fmt.Errorf("%w: got %s, want at least %s", ErrOutputSlippageExceeded, out, s.MinAmountOut)
	}
	if err := storage.SetMarket(ctx, mu, next); err != nil {
		return nil, err
	}
	return &SellResult{
		Token:            s.Asset,
		Seller:           actor,
		AmountIn:         new(big.Int).Set(s.Amount),
		AmountOut:        out,
		RealBaseReserve:  next.RealBaseReserve,
		RealAssetReserve: next.RealAssetReserve,
	}, nil
}
