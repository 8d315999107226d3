// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package curve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/market"
)

func launch(asset, virtualBase int64) *market.State {
	return market.New(codec.EmptyAddress, "TKN", big.NewInt(asset), big.NewInt(virtualBase))
}

func TestQuote(t *testing.T) {
	s := launch(1_000_000, 1_000)
	tests := []struct {
		name     string
		state    *market.State
		amountIn *big.Int
		isBuy    bool
		expected int64
	}{
		{"buy", s, big.NewInt(100), true, 90910},
		{"sell", s, big.NewInt(1_000_000), false, 500},
		{"zero amount", s, big.NewInt(0), true, 0},
		{"negative amount", s, big.NewInt(-5), false, 0},
		{"nil amount", s, nil, true, 0},
		{"no market", nil, big.NewInt(100), true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Zero(t, big.NewInt(tt.expected).Cmp(Quote(tt.state, tt.amountIn, tt.isBuy)))
		})
	}
}

func TestBuySellScenario(t *testing.T) {
	require := require.New(t)
	s := launch(1_000_000, 1_000)
	before := s.Clone()

	next, out, err := Buy(s, big.NewInt(100))
	require.NoError(err)
	require.Zero(out.Cmp(big.NewInt(90910)))
	require.Zero(next.RealBaseReserve.Cmp(big.NewInt(100)))
	require.Zero(next.RealAssetReserve.Cmp(big.NewInt(909090)))
	require.Zero(next.TotalSupply.Cmp(big.NewInt(1_000_000)))
	require.Zero(next.VirtualBaseReserve.Cmp(big.NewInt(1_000)))
	require.True(s.Equal(before), "input state must not change")

	// Selling the remaining reserve back would pay out 550 base while only
	// 100 real base is held.
	require.Zero(Quote(next, big.NewInt(909090), false).Cmp(big.NewInt(550)))
	_, _, err = Sell(next, big.NewInt(909090))
	require.ErrorIs(err, ErrInsolventMarket)

	// Half of the bought amount can be sold back within the real reserve.
	sold, baseOut, err := Sell(next, big.NewInt(45455))
	require.NoError(err)
	require.Zero(baseOut.Cmp(big.NewInt(53)))
	require.Zero(sold.RealBaseReserve.Cmp(big.NewInt(47)))
	require.Zero(sold.RealAssetReserve.Cmp(big.NewInt(954545)))
	require.True(next.Equal(mustTrade(Buy(s, big.NewInt(100)))))
}

// mustTrade returns the state of a trade that is expected to succeed.
func mustTrade(s *market.State, _ *big.Int, err error) *market.State {
	if err != nil {
		panic(err)
	}
	return s
}

func withReserves(virtualBase, realAsset int64) *market.State {
	s := launch(1_000_000, 1)
	s.VirtualBaseReserve.SetInt64(virtualBase)
	s.RealAssetReserve.SetInt64(realAsset)
	return s
}

func TestBuyErrors(t *testing.T) {
	tests := []struct {
		name   string
		state  *market.State
		amount *big.Int
		err    error
	}{
		{"no market", nil, big.NewInt(1), market.ErrMarketNotFound},
		{"zero payment", launch(1_000_000, 1_000), big.NewInt(0), ErrZeroPayment},
		{"negative payment", launch(1_000_000, 1_000), big.NewInt(-1), ErrZeroPayment},
		{"nil payment", launch(1_000_000, 1_000), nil, ErrZeroPayment},
		{"no output", withReserves(1_000, 0), big.NewInt(1), ErrInsufficientOutput},
		// K = 1_000_000 and new E = 1_000_001 drives the reserve to zero.
		{"single unit", launch(1, 1_000_000), big.NewInt(1), ErrCurveExhausted},
		// K = 10 and new E = 11 drives the reserve to zero.
		{"exhausted", launch(10, 1), big.NewInt(10), ErrCurveExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			var before *market.State
			if tt.state != nil {
				before = tt.state.Clone()
			}
			next, out, err := Buy(tt.state, tt.amount)
			require.ErrorIs(err, tt.err)
			require.Nil(next)
			require.Nil(out)
			if tt.state != nil {
				require.True(tt.state.Equal(before))
			}
		})
	}
}

func TestSellErrors(t *testing.T) {
	tests := []struct {
		name   string
		state  *market.State
		amount *big.Int
		err    error
	}{
		{"no market", nil, big.NewInt(1), market.ErrMarketNotFound},
		{"zero payment", launch(1_000_000, 1_000), big.NewInt(0), ErrZeroPayment},
		// 1_000 * 1_000_000 / 1_000_001 truncates to 999.
		{"no real base", launch(1_000_000, 1_000), big.NewInt(1), ErrInsolventMarket},
		{"no output", withReserves(0, 1_000_000), big.NewInt(1), ErrInsufficientOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			next, out, err := Sell(tt.state, tt.amount)
			require.ErrorIs(err, tt.err)
			require.Nil(next)
			require.Nil(out)
		})
	}
}

func TestQuoteMatchesTrade(t *testing.T) {
	require := require.New(t)
	s := launch(1_000_000, 1_000)
	for _, in := range []int64{1, 7, 100, 999, 12_345} {
		amount := big.NewInt(in)
		quoted := Quote(s, amount, true)
		next, out, err := Buy(s, amount)
		require.NoError(err)
		require.Zero(quoted.Cmp(out))

		sellIn := new(big.Int).Quo(out, big.NewInt(2))
		quoted = Quote(next, sellIn, false)
		_, out, err = Sell(next, sellIn)
		require.NoError(err)
		require.Zero(quoted.Cmp(out))
	}
}

func TestSpotPriceAndMarketCap(t *testing.T) {
	require := require.New(t)
	s := launch(1_000_000, 1_000)

	require.Zero(big.NewRat(1, 1_000).Cmp(SpotPrice(s)))
	require.Zero(big.NewRat(1_000, 1).Cmp(MarketCap(s)))
	require.Nil(SpotPrice(nil))
	require.Nil(MarketCap(nil))

	empty := s.Clone()
	empty.RealAssetReserve.SetInt64(0)
	require.Nil(SpotPrice(empty))
	require.Nil(PriceImpact(empty, big.NewInt(1), true))
}

func TestPriceImpact(t *testing.T) {
	require := require.New(t)
	s := launch(1_000_000, 1_000)

	// After buying 100: E = 1100, T = 909090.
	expected := new(big.Rat).SetFrac(big.NewInt(1_100*1_000), big.NewInt(909_090))
	expected.Sub(expected, big.NewRat(1, 1))
	require.Zero(expected.Cmp(PriceImpact(s, big.NewInt(100), true)))

	require.Zero(PriceImpact(s, big.NewInt(0), true).Sign())
	require.Zero(PriceImpact(s, nil, false).Sign())
	require.Nil(PriceImpact(launch(1, 1_000_000), big.NewInt(1), true))

	// Larger trades move the price more.
	small := PriceImpact(s, big.NewInt(10), true)
	large := PriceImpact(s, big.NewInt(10_000), true)
	require.Equal(1, large.Cmp(small))

	sell := PriceImpact(s, big.NewInt(10_000), false)
	require.Equal(1, sell.Sign())
}

func TestProgress(t *testing.T) {
	require := require.New(t)
	s := launch(1_000_000, 1_000)
	require.Zero(Progress(s).Sign())

	next, _, err := Buy(s, big.NewInt(100))
	require.NoError(err)
	require.Zero(big.NewRat(90910, 1_000_000).Cmp(Progress(next)))

	above := s.Clone()
	above.RealAssetReserve.SetInt64(2_000_000)
	require.Zero(Progress(above).Sign())
	require.Zero(Progress(nil).Sign())
}
