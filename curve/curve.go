// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package curve prices trades against a constant-product bonding curve.
//
// With E = virtual base + real base and T = real asset, every trade keeps
// the product K = E * T by recomputing one side as K divided by the other.
// Integer division truncates, so the recomputed side never grows and the
// trader never receives more than the exact curve would allow.
//
// Functions in this package never mutate their inputs.
package curve

import (
	"fmt"
	"math/big"

	"github.com/ava-labs/launchpad/market"
)

// reserves returns the post-trade curve sides for [amountIn]. ok is false
// when the trade cannot be priced.
func reserves(s *market.State, amountIn *big.Int, isBuy bool) (newE, newT, out *big.Int, ok bool) {
	if s == nil || amountIn == nil || amountIn.Sign() <= 0 {
		return nil, nil, nil, false
	}
	e := s.BaseReserve()
	t := s.AssetReserve()
	k := new(big.Int).Mul(e, t)

	if isBuy {
		newE = new(big.Int).Add(e, amountIn)
		if newE.Sign() == 0 {
			return nil, nil, nil, false
		}
		newT = new(big.Int).Quo(k, newE)
		out = new(big.Int).Sub(t, newT)
		return newE, newT, out, true
	}
	newT = new(big.Int).Add(t, amountIn)
	if newT.Sign() == 0 {
		return nil, nil, nil, false
	}
	newE = new(big.Int).Quo(k, newT)
	out = new(big.Int).Sub(e, newE)
	return newE, newT, out, true
}

// Quote returns the amount a trade of [amountIn] would yield. A buy pays
// base and receives asset; a sell pays asset and receives base. Quote
// returns zero when there is no market or [amountIn] is not positive.
func Quote(s *market.State, amountIn *big.Int, isBuy bool) *big.Int {
	_, _, out, ok := reserves(s, amountIn, isBuy)
	if !ok {
		return new(big.Int)
	}
	return out
}

// Buy spends [baseIn] on the asset. It returns the new market state and
// the amount of asset owed to the buyer.
func Buy(s *market.State, baseIn *big.Int) (*market.State, *big.Int, error) {
	if s == nil {
		return nil, nil, market.ErrMarketNotFound
	}
	if baseIn == nil || baseIn.Sign() <= 0 {
		return nil, nil, ErrZeroPayment
	}
	_, newT, out, _ := reserves(s, baseIn, true)
	if out.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: buying with %s base", ErrInsufficientOutput, baseIn)
	}
	if out.Cmp(s.RealAssetReserve) >= 0 {
		return nil, nil, fmt.Errorf("%w: output %s, reserve %s", ErrCurveExhausted, out, s.RealAssetReserve)
	}
	next := s.Clone()
	next.RealBaseReserve.Add(next.RealBaseReserve, baseIn)
	next.RealAssetReserve = newT
	return next, out, nil
}

// Sell returns [assetIn] to the market. It returns the new market state and
// the amount of base owed to the seller.
func Sell(s *market.State, assetIn *big.Int) (*market.State, *big.Int, error) {
	if s == nil {
		return nil, nil, market.ErrMarketNotFound
	}
	if assetIn == nil || assetIn.Sign() <= 0 {
		return nil, nil, ErrZeroPayment
	}
	_, newT, out, _ := reserves(s, assetIn, false)
	if out.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: selling %s asset", ErrInsufficientOutput, assetIn)
	}
	// The virtual base is never paid out.
	if out.Cmp(s.RealBaseReserve) > 0 {
		return nil, nil, fmt.Errorf("%w: output %s, reserve %s", ErrInsolventMarket, out, s.RealBaseReserve)
	}
	next := s.Clone()
	next.RealAssetReserve = newT
	next.RealBaseReserve.Sub(next.RealBaseReserve, out)
	return next, out, nil
}
