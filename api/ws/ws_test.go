// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"context"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/pubsub"
	"github.com/ava-labs/launchpad/vm"
)

func TestTradeFeed(t *testing.T) {
	require := require.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	v, err := vm.New(vm.NewConfig(), logging.NoLog{})
	require.NoError(err)
	defer func() {
		require.NoError(v.Close())
	}()
	w, s, err := NewWebSocketServer(v, pubsub.NewDefaultServerConfig())
	require.NoError(err)
	require.NotNil(w)
	srv := httptest.NewServer(s)
	defer srv.Close()

	all, err := NewWebSocketClient(ctx, srv.URL)
	require.NoError(err)
	defer all.Close()

	creator := codec.CreateAddress(consts.AccountID, ids.GenerateTestID())
	trader := codec.CreateAddress(consts.AccountID, ids.GenerateTestID())
	_, err = v.Deposit(ctx, creator, "TKN", big.NewInt(1_000_000))
	require.NoError(err)
	_, err = v.Deposit(ctx, trader, market.Base, big.NewInt(100))
	require.NoError(err)

	require.Eventually(func() bool {
		return s.Connections() == 1
	}, 5*time.Second, 10*time.Millisecond)

	_, err = v.Launch(ctx, creator, "TKN", big.NewInt(1_000_000), big.NewInt(1_000), nil)
	require.NoError(err)
	_, err = v.Buy(ctx, trader, "TKN", big.NewInt(100), nil)
	require.NoError(err)
	// rejected trades are not published
	_, err = v.Sell(ctx, trader, "TKN", big.NewInt(90910), nil)
	require.Error(err)
	_, err = v.Sell(ctx, trader, "TKN", big.NewInt(45455), nil)
	require.NoError(err)

	e, err := all.ListenTrade(ctx)
	require.NoError(err)
	require.Equal("launch", e.Action)
	require.Equal(market.TokenID("TKN"), e.Token)
	require.Equal(creator, e.Actor)

	e, err = all.ListenTrade(ctx)
	require.NoError(err)
	out, err := e.Decode()
	require.NoError(err)
	bought, ok := out.(*actions.BuyResult)
	require.True(ok)
	require.Zero(bought.AmountOut.Cmp(big.NewInt(90910)))

	e, err = all.ListenTrade(ctx)
	require.NoError(err)
	out, err = e.Decode()
	require.NoError(err)
	sold, ok := out.(*actions.SellResult)
	require.True(ok)
	require.Zero(sold.AmountOut.Cmp(big.NewInt(53)))
}

func TestDecodeUnknownAction(t *testing.T) {
	_, err := (&TradeEvent{Action: "mint"}).Decode()
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestTokenFilter(t *testing.T) {
	require := require.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	v, err := vm.New(vm.NewConfig(), logging.NoLog{})
	require.NoError(err)
	defer func() {
		require.NoError(v.Close())
	}()
	handler, err := WebSocketServerFactory{Config: pubsub.NewDefaultServerConfig()}.New(v)
	require.NoError(err)
	require.Equal(Endpoint, handler.Path)
	srv := httptest.NewServer(handler.Handler)
	defer srv.Close()

	two, err := NewWebSocketClient(ctx, srv.URL, "TWO")
	require.NoError(err)
	defer two.Close()

	creator := codec.CreateAddress(consts.AccountID, ids.GenerateTestID())
	for _, token := range []market.TokenID{"ONE", "TWO"} {
		_, err = v.Deposit(ctx, creator, token, big.NewInt(1_000))
		require.NoError(err)
	}
	// wait until the connection is registered by the server
	time.Sleep(100 * time.Millisecond)
	for _, token := range []market.TokenID{"ONE", "TWO"} {
		_, err = v.Launch(ctx, creator, token, big.NewInt(1_000), big.NewInt(1_000), nil)
		require.NoError(err)
	}

	e, err := two.ListenTrade(ctx)
	require.NoError(err)
	require.Equal(market.TokenID("TWO"), e.Token)
	out, err := e.Decode()
	require.NoError(err)
	launched, ok := out.(*actions.LaunchResult)
	require.True(ok)
	require.Equal(uint64(1), launched.Index)
}
