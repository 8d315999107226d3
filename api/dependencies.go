// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"math/big"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/event"
	"github.com/ava-labs/launchpad/market"
)

type VM interface {
	Tracer() trace.Tracer
	Logger() logging.Logger

	Launch(
		ctx context.Context,
		actor codec.Address,
		token market.TokenID,
		amount *big.Int,
		virtualBase *big.Int,
		metadata *market.Metadata,
	) (*actions.LaunchResult, error)
	Buy(
		ctx context.Context,
		actor codec.Address,
		token market.TokenID,
		amount *big.Int,
		minAmountOut *big.Int,
	) (*actions.BuyResult, error)
	Sell(
		ctx context.Context,
		actor codec.Address,
		asset market.TokenID,
		amount *big.Int,
		minAmountOut *big.Int,
	) (*actions.SellResult, error)
	Transfer(
		ctx context.Context,
		actor codec.Address,
		to codec.Address,
		asset market.TokenID,
		amount *big.Int,
	) (*actions.TransferResult, error)
	Deposit(
		ctx context.Context,
		account codec.Address,
		asset market.TokenID,
		amount *big.Int,
	) (*big.Int, error)

	Quote(ctx context.Context, token market.TokenID, amount *big.Int, isBuy bool) (*actions.QuoteResult, error)
	Market(ctx context.Context, token market.TokenID) (*actions.MarketInfo, error)
	LaunchedTokens(ctx context.Context, offset, limit uint64) ([]market.TokenID, error)
	Balance(ctx context.Context, account codec.Address, asset market.TokenID) (*big.Int, error)

	Subscribe(sub event.Subscription[*chain.Result]) (func() error, error)
}
