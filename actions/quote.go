// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"math/big"

	"github.com/ava-labs/launchpad/curve"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
	"github.com/ava-labs/launchpad/storage"
)

// QuoteResult prices a hypothetical trade.
type QuoteResult struct {
	Token       market.TokenID `json:"token"`
	IsBuy       bool           `json:"isBuy"`
	AmountIn    *big.Int       `json:"amountIn"`
	AmountOut   *big.Int       `json:"amountOut"`
	Exists      bool           `json:"exists"`
	SpotPrice   *big.Rat       `json:"spotPrice,omitempty"`
	PriceImpact *big.Rat       `json:"priceImpact,omitempty"`
}

// Quote returns what trading [amount] on [token]'s market would yield. A
// missing market quotes zero.
func Quote(
	ctx context.Context,
	im state.Immutable,
	token market.TokenID,
	amount *big.Int,
	isBuy bool,
) (*QuoteResult, error) {
	r := &QuoteResult{
		Token:     token,
		IsBuy:     isBuy,
		AmountIn:  amount,
		AmountOut: new(big.Int),
	}
	s, ok, err := storage.GetMarket(ctx, im, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return r, nil
	}
	r.Exists = true
	r.AmountOut = curve.Quote(s, amount, isBuy)
	r.SpotPrice = curve.SpotPrice(s)
	r.PriceImpact = curve.PriceImpact(s, amount, isBuy)
	return r, nil
}

// MarketInfo is a market with its derived prices.
type MarketInfo struct {
	*market.State

	Market    string   `json:"market"`
	SpotPrice *big.Rat `json:"spotPrice,omitempty"`
	MarketCap *big.Rat `json:"marketCap,omitempty"`
	Progress  *big.Rat `json:"progress"`

	Metadata *market.Metadata `json:"metadata,omitempty"`
}

// GetMarketInfo returns [token]'s market. It fails with
// [market.ErrMarketNotFound] if the token was never launched.
func GetMarketInfo(ctx context.Context, im state.Immutable, token market.TokenID) (*MarketInfo, error) {
	s, ok, err := storage.GetMarket(ctx, im, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, market.ErrMarketNotFound
	}
	m, _, err := storage.GetMetadata(ctx, im, token)
	if err != nil {
		return nil, err
	}
	return &MarketInfo{
		State:     s,
		Market:    storage.MarketAddress(token).String(),
		SpotPrice: curve.SpotPrice(s),
		MarketCap: curve.MarketCap(s),
		Progress:  curve.Progress(s),
		Metadata:  m,
	}, nil
}
