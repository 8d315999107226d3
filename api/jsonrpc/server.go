// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"errors"
	"math/big"
	"net/http"

	"go.uber.org/zap"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/api"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/market"
)

const Endpoint = "/" + api.Name

var _ api.HandlerFactory[api.VM] = (*JSONRPCServerFactory)(nil)

var ErrReadOnly = errors.New("unsigned writes disabled")

type JSONRPCServerFactory struct {
	// ReadOnly refuses every method that moves funds. Nodes outside local
	// mode serve reads only.
	ReadOnly bool
}

func (f JSONRPCServerFactory) New(vm api.VM) (api.Handler, error) {
	handler, err := api.NewJSONRPCHandler(api.Name, NewJSONRPCServer(vm, f.ReadOnly))
	if err != nil {
		return api.Handler{}, err
	}

	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

// JSONRPCServer serves the market API. Requests are not signed: write
// methods act as whatever [codec.Address] the caller names in Actor, so any
// client that can reach the endpoint can spend any account's balance. Expose
// writes only on a trusted local node and set readOnly everywhere else.
type JSONRPCServer struct {
	vm       api.VM
	readOnly bool
}

func NewJSONRPCServer(vm api.VM, readOnly bool) *JSONRPCServer {
	return &JSONRPCServer{vm: vm, readOnly: readOnly}
}

func (j *JSONRPCServer) checkWritable() error {
	if j.readOnly {
		return ErrReadOnly
	}
	return nil
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

// LaunchArgs names the launching account in Actor. The server trusts it
// without any proof of ownership.
type LaunchArgs struct {
	Actor       codec.Address  `json:"actor"`
	Token       market.TokenID `json:"token"`
	Amount      *big.Int       `json:"amount"`
	VirtualBase *big.Int       `json:"virtualBase"`

	Metadata *market.Metadata `json:"metadata,omitempty"`
}

type LaunchReply struct {
	Result *actions.LaunchResult `json:"result"`
}

func (j *JSONRPCServer) Launch(req *http.Request, args *LaunchArgs, reply *LaunchReply) error {
	if err := j.checkWritable(); err != nil {
		return err
	}
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Launch")
	defer span.End()

	result, err := j.vm.Launch(ctx, args.Actor, args.Token, args.Amount, args.VirtualBase, args.Metadata)
	if err != nil {
		return err
	}
	reply.Result = result
	return nil
}

// TradeArgs names the trading account in Actor. The server trusts it
// without any proof of ownership.
type TradeArgs struct {
	Actor        codec.Address  `json:"actor"`
	Token        market.TokenID `json:"token"`
	Amount       *big.Int       `json:"amount"`
	MinAmountOut *big.Int       `json:"minAmountOut,omitempty"`
}

type BuyReply struct {
	Result *actions.BuyResult `json:"result"`
}

func (j *JSONRPCServer) Buy(req *http.Request, args *TradeArgs, reply *BuyReply) error {
	if err := j.checkWritable(); err != nil {
		return err
	}
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Buy")
	defer span.End()

	result, err := j.vm.Buy(ctx, args.Actor, args.Token, args.Amount, args.MinAmountOut)
	if err != nil {
		return err
	}
	reply.Result = result
	return nil
}

type SellReply struct {
	Result *actions.SellResult `json:"result"`
}

// Sell pays [args.Amount] of [args.Token] into the token's own market.
func (j *JSONRPCServer) Sell(req *http.Request, args *TradeArgs, reply *SellReply) error {
	if err := j.checkWritable(); err != nil {
		return err
	}
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Sell")
	defer span.End()

	result, err := j.vm.Sell(ctx, args.Actor, args.Token, args.Amount, args.MinAmountOut)
	if err != nil {
		return err
	}
	reply.Result = result
	return nil
}

type TransferArgs struct {
	Actor  codec.Address  `json:"actor"`
	To     codec.Address  `json:"to"`
	Asset  market.TokenID `json:"asset"`
	Amount *big.Int       `json:"amount"`
}

type TransferReply struct {
	Result *actions.TransferResult `json:"result"`
}

func (j *JSONRPCServer) Transfer(req *http.Request, args *TransferArgs, reply *TransferReply) error {
	if err := j.checkWritable(); err != nil {
		return err
	}
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Transfer")
	defer span.End()

	result, err := j.vm.Transfer(ctx, args.Actor, args.To, args.Asset, args.Amount)
	if err != nil {
		return err
	}
	reply.Result = result
	return nil
}

type QuoteArgs struct {
	Token  market.TokenID `json:"token"`
	Amount *big.Int       `json:"amount"`
	IsBuy  bool           `json:"isBuy"`
}

type QuoteReply struct {
	Result *actions.QuoteResult `json:"result"`
}

func (j *JSONRPCServer) Quote(req *http.Request, args *QuoteArgs, reply *QuoteReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Quote")
	defer span.End()

	result, err := j.vm.Quote(ctx, args.Token, args.Amount, args.IsBuy)
	if err != nil {
		return err
	}
	reply.Result = result
	return nil
}

type GetAmountOutReply struct {
	AmountOut *big.Int `json:"amountOut"`
}

// GetAmountOut returns only the output of [Quote].
func (j *JSONRPCServer) GetAmountOut(req *http.Request, args *QuoteArgs, reply *GetAmountOutReply) error {
	quote := new(QuoteReply)
	if err := j.Quote(req, args, quote); err != nil {
		return err
	}
	reply.AmountOut = quote.Result.AmountOut
	return nil
}

type MarketArgs struct {
	Token market.TokenID `json:"token"`
}

type MarketReply struct {
	Market *actions.MarketInfo `json:"market"`
}

func (j *JSONRPCServer) Market(req *http.Request, args *MarketArgs, reply *MarketReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Market")
	defer span.End()

	info, err := j.vm.Market(ctx, args.Token)
	if err != nil {
		return err
	}
	reply.Market = info
	return nil
}

type LaunchedTokensArgs struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type LaunchedTokensReply struct {
	Tokens []market.TokenID `json:"tokens"`
}

func (j *JSONRPCServer) LaunchedTokens(req *http.Request, args *LaunchedTokensArgs, reply *LaunchedTokensReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.LaunchedTokens")
	defer span.End()

	tokens, err := j.vm.LaunchedTokens(ctx, args.Offset, args.Limit)
	if err != nil {
		return err
	}
	reply.Tokens = tokens
	return nil
}

type BalanceArgs struct {
	Account codec.Address  `json:"account"`
	Asset   market.TokenID `json:"asset"`
}

type BalanceReply struct {
	Amount *big.Int `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	balance, err := j.vm.Balance(ctx, args.Account, args.Asset)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

type DepositArgs struct {
	Account codec.Address  `json:"account"`
	Asset   market.TokenID `json:"asset"`
	Amount  *big.Int       `json:"amount"`
}

func (j *JSONRPCServer) Deposit(req *http.Request, args *DepositArgs, reply *BalanceReply) error {
	if err := j.checkWritable(); err != nil {
		return err
	}
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Deposit")
	defer span.End()

	balance, err := j.vm.Deposit(ctx, args.Account, args.Asset, args.Amount)
	if err != nil {
		return err
	}
	j.vm.Logger().Info("faucet deposit",
		zap.Stringer("account", args.Account),
		zap.Stringer("asset", args.Asset),
		zap.Stringer("amount", args.Amount),
	)
	reply.Amount = balance
	return nil
}
