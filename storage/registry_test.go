// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/keys"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
)

var creator = codec.CreateAddress(consts.AccountID, ids.GenerateTestID())

func TestLaunch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	s, err := Launch(ctx, mu, creator, "TKN", big.NewInt(1_000_000), big.NewInt(1_000))
	require.NoError(err)

	stored, ok, err := GetMarket(ctx, mu, "TKN")
	require.NoError(err)
	require.True(ok)
	require.True(s.Equal(stored))
	require.Equal(creator, stored.Creator)
	require.Zero(stored.RealBaseReserve.Sign())
	require.Zero(stored.RealAssetReserve.Cmp(big.NewInt(1_000_000)))

	exists, err := MarketExists(ctx, mu, "TKN")
	require.NoError(err)
	require.True(exists)

	tokens, err := Launched(ctx, mu, 0, 0)
	require.NoError(err)
	require.Equal([]market.TokenID{"TKN"}, tokens)
}

func TestLaunchErrors(t *testing.T) {
	tests := []struct {
		name        string
		token       market.TokenID
		amount      *big.Int
		virtualBase *big.Int
		err         error
	}{
		{"duplicate", "TKN", big.NewInt(1), big.NewInt(1), market.ErrInvalidLaunch},
		{"zero amount", "NEW", big.NewInt(0), big.NewInt(1), market.ErrInvalidLaunch},
		{"negative virtual base", "NEW", big.NewInt(1), big.NewInt(-1), market.ErrInvalidLaunch},
		{"nil amount", "NEW", nil, big.NewInt(1), market.ErrInvalidLaunch},
		{"bad token", "new", big.NewInt(1), big.NewInt(1), market.ErrInvalidTokenID},
		{"base token", market.Base, big.NewInt(1), big.NewInt(1), market.ErrInvalidLaunch},
		{"too large", "NEW", new(big.Int).Lsh(big.NewInt(1), 8*market.MaxIntBytes), big.NewInt(1), market.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			mu := state.MutableStorage{}
			first, err := Launch(ctx, mu, creator, "TKN", big.NewInt(1_000_000), big.NewInt(1_000))
			require.NoError(err)
			before := make(map[string][]byte, len(mu))
			for k, v := range mu {
				before[k] = v
			}

			_, err = Launch(ctx, mu, codec.EmptyAddress, tt.token, tt.amount, tt.virtualBase)
			require.ErrorIs(err, tt.err)
			require.Equal(before, map[string][]byte(mu))

			stored, ok, err := GetMarket(ctx, mu, "TKN")
			require.NoError(err)
			require.True(ok)
			require.True(first.Equal(stored))
		})
	}
}

func TestLaunchedEnumeration(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	count, err := LaunchedCount(ctx, mu)
	require.NoError(err)
	require.Zero(count)
	tokens, err := Launched(ctx, mu, 0, 10)
	require.NoError(err)
	require.Empty(tokens)

	all := []market.TokenID{"AAA", "BBB-abcdef", "CCC", "DDD"}
	for _, token := range all {
		_, err := Launch(ctx, mu, creator, token, big.NewInt(10), big.NewInt(10))
		require.NoError(err)
	}

	count, err = LaunchedCount(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(len(all)), count)

	token, err := LaunchedAt(ctx, mu, 1)
	require.NoError(err)
	require.Equal(market.TokenID("BBB-abcdef"), token)
	_, err = LaunchedAt(ctx, mu, 4)
	require.ErrorIs(err, ErrLaunchedOutOfRange)

	tokens, err = Launched(ctx, mu, 1, 2)
	require.NoError(err)
	require.Equal(all[1:3], tokens)
	tokens, err = Launched(ctx, mu, 2, 100)
	require.NoError(err)
	require.Equal(all[2:], tokens)
	tokens, err = Launched(ctx, mu, 4, 1)
	require.NoError(err)
	require.Empty(tokens)

	delete(mu, string(LaunchedKey(2)))
	_, err = Launched(ctx, mu, 0, 0)
	require.ErrorIs(err, ErrCorruptRegistry)
}

func TestGetMarketMissing(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	s, ok, err := GetMarket(ctx, mu, "TKN")
	require.NoError(err)
	require.False(ok)
	require.Nil(s)

	mu[string(MarketKey("TKN"))] = []byte{0xff}
	_, _, err = GetMarket(ctx, mu, "TKN")
	require.ErrorIs(err, market.ErrUnknownVersion)
}

func TestSetMarket(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	s := market.New(creator, "TKN", big.NewInt(5), big.NewInt(5))
	s.RealBaseReserve.SetInt64(3)
	require.NoError(SetMarket(ctx, mu, s))
	stored, ok, err := GetMarket(ctx, mu, "TKN")
	require.NoError(err)
	require.True(ok)
	require.True(s.Equal(stored))

	s.RealBaseReserve.SetInt64(-3)
	require.ErrorIs(SetMarket(ctx, mu, s), market.ErrInvalidState)
}

func TestKeys(t *testing.T) {
	require := require.New(t)
	require.NotEqual(MarketKey("TKN"), MarketKey("TKM"))
	require.NotEqual(LaunchedKey(0), LaunchedKey(1))
	require.NotEqual(BalanceKey(creator, "TKN"), BalanceKey(creator, market.Base))
	require.Equal(byte(marketPrefix), MarketKey("TKN")[0])
	require.Len(LaunchedKey(7), 1+8+2)
}

func TestVerifyScope(t *testing.T) {
	require := require.New(t)

	require.NoError(VerifyScope(state.Keys{
		string(MarketKey("LONGTICKER-abcdef")):           state.All,
		string(LaunchedCountKey()):                       state.Write,
		string(LaunchedKey(9)):                           state.Allocate,
		string(BalanceKey(creator, "LONGTICKER-abcdef")): state.Read,
	}))

	tests := []struct {
		name string
		key  []byte
	}{
		{"missing suffix", []byte{balancePrefix}},
		{"too many chunks", keys.EncodeChunks([]byte{marketPrefix}, MaxValueChunks+1)},
		{"too long", keys.EncodeChunks(make([]byte, MaxKeySize), 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyScope(state.Keys{string(tt.key): state.Read})
			require.ErrorIs(err, ErrInvalidStateKey)
		})
	}
}
