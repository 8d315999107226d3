// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"math/big"
	"strings"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/api"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/requester"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester
}

// NewJSONRPCClient talks to the API served at [uri], e.g.
// http://127.0.0.1:9650/ext.
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	req := requester.New(uri, api.Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Launch(
	ctx context.Context,
	actor codec.Address,
	token market.TokenID,
	amount *big.Int,
	virtualBase *big.Int,
	metadata *market.Metadata,
) (*actions.LaunchResult, error) {
	resp := new(LaunchReply)
	err := cli.requester.SendRequest(
		ctx,
		"launch",
		&LaunchArgs{
			Actor:       actor,
			Token:       token,
			Amount:      amount,
			VirtualBase: virtualBase,
			Metadata:    metadata,
		},
		resp,
	)
	return resp.Result, err
}

func (cli *JSONRPCClient) Buy(
	ctx context.Context,
	actor codec.Address,
	token market.TokenID,
	amount *big.Int,
	minAmountOut *big.Int,
) (*actions.BuyResult, error) {
	resp := new(BuyReply)
	err := cli.requester.SendRequest(
		ctx,
		"buy",
		&TradeArgs{
			Actor:        actor,
			Token:        token,
			Amount:       amount,
			MinAmountOut: minAmountOut,
		},
		resp,
	)
	return resp.Result, err
}

func (cli *JSONRPCClient) Sell(
	ctx context.Context,
	actor codec.Address,
	asset market.TokenID,
	amount *big.Int,
	minAmountOut *big.Int,
) (*actions.SellResult, error) {
	resp := new(SellReply)
	err := cli.requester.SendRequest(
		ctx,
		"sell",
		&TradeArgs{
			Actor:        actor,
			Token:        asset,
			Amount:       amount,
			MinAmountOut: minAmountOut,
		},
		resp,
	)
	return resp.Result, err
}

func (cli *JSONRPCClient) Transfer(
	ctx context.Context,
	actor codec.Address,
	to codec.Address,
	asset market.TokenID,
	amount *big.Int,
) (*actions.TransferResult, error) {
	resp := new(TransferReply)
	err := cli.requester.SendRequest(
		ctx,
		"transfer",
		&TransferArgs{
			Actor:  actor,
			To:     to,
			Asset:  asset,
			Amount: amount,
		},
		resp,
	)
	return resp.Result, err
}

func (cli *JSONRPCClient) Quote(
	ctx context.Context,
	token market.TokenID,
	amount *big.Int,
	isBuy bool,
) (*actions.QuoteResult, error) {
	resp := new(QuoteReply)
	err := cli.requester.SendRequest(
		ctx,
		"quote",
		&QuoteArgs{
			Token:  token,
			Amount: amount,
			IsBuy:  isBuy,
		},
		resp,
	)
	return resp.Result, err
}

func (cli *JSONRPCClient) GetAmountOut(
	ctx context.Context,
	token market.TokenID,
	amount *big.Int,
	isBuy bool,
) (*big.Int, error) {
	resp := new(GetAmountOutReply)
	err := cli.requester.SendRequest(
		ctx,
		"getAmountOut",
		&QuoteArgs{
			Token:  token,
			Amount: amount,
			IsBuy:  isBuy,
		},
		resp,
	)
	return resp.AmountOut, err
}

func (cli *JSONRPCClient) Market(ctx context.Context, token market.TokenID) (*actions.MarketInfo, error) {
	resp := new(MarketReply)
	err := cli.requester.SendRequest(
		ctx,
		"market",
		&MarketArgs{Token: token},
		resp,
	)
	return resp.Market, err
}

func (cli *JSONRPCClient) LaunchedTokens(ctx context.Context, offset, limit uint64) ([]market.TokenID, error) {
	resp := new(LaunchedTokensReply)
	err := cli.requester.SendRequest(
		ctx,
		"launchedTokens",
		&LaunchedTokensArgs{
			Offset: offset,
			Limit:  limit,
		},
		resp,
	)
	return resp.Tokens, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, account codec.Address, asset market.TokenID) (*big.Int, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&BalanceArgs{
			Account: account,
			Asset:   asset,
		},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Deposit(
	ctx context.Context,
	account codec.Address,
	asset market.TokenID,
	amount *big.Int,
) (*big.Int, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"deposit",
		&DepositArgs{
			Account: account,
			Asset:   asset,
			Amount:  amount,
		},
		resp,
	)
	return resp.Amount, err
}
