// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package curve

import (
	"math/big"

	"github.com/ava-labs/launchpad/market"
)

// SpotPrice returns the marginal price of one unit of asset in base, E / T.
// It returns nil when the asset reserve is empty.
func SpotPrice(s *market.State) *big.Rat {
	if s == nil {
		return nil
	}
	return ratio(s.BaseReserve(), s.AssetReserve())
}

// PriceImpact returns the relative change of the spot price a trade would
// cause, |after - before| / before. It is zero when the trade yields nothing
// and nil when either price is undefined.
func PriceImpact(s *market.State, amountIn *big.Int, isBuy bool) *big.Rat {
	before := SpotPrice(s)
	if before == nil || before.Sign() == 0 {
		return nil
	}
	newE, newT, out, ok := reserves(s, amountIn, isBuy)
	if !ok || out.Sign() <= 0 {
		return new(big.Rat)
	}
	after := ratio(newE, newT)
	if after == nil {
		return nil
	}
	delta := new(big.Rat).Sub(after, before)
	delta.Abs(delta)
	return delta.Quo(delta, before)
}

// MarketCap values the total supply at the spot price.
func MarketCap(s *market.State) *big.Rat {
	price := SpotPrice(s)
	if price == nil {
		return nil
	}
	return price.Mul(price, new(big.Rat).SetInt(s.TotalSupply))
}

// Progress returns the fraction of the supply that has been bought out of
// the market. Sells can push the reserve above the supply, so the result
// is clamped at zero.
func Progress(s *market.State) *big.Rat {
	if s == nil || s.TotalSupply.Sign() == 0 {
		return new(big.Rat)
	}
	sold := new(big.Int).Sub(s.TotalSupply, s.RealAssetReserve)
	if sold.Sign() <= 0 {
		return new(big.Rat)
	}
	return new(big.Rat).SetFrac(sold, s.TotalSupply)
}

func ratio(num, den *big.Int) *big.Rat {
	if den.Sign() == 0 {
		return nil
	}
	return new(big.Rat).SetFrac(num, den)
}
