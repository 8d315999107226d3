// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"context"
	"encoding/json"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/api"
	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/event"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/pubsub"
)

const Endpoint = "/ws"

var (
	_ api.HandlerFactory[api.VM]        = (*WebSocketServerFactory)(nil)
	_ event.Subscription[*chain.Result] = (*WebSocketServer)(nil)
)

type WebSocketServerFactory struct {
	Config pubsub.ServerConfig
}

func (w WebSocketServerFactory) New(vm api.VM) (api.Handler, error) {
	_, handler, err := NewWebSocketServer(vm, w.Config)
	if err != nil {
		return api.Handler{}, err
	}
	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

// TradeEvent is published for every committed action.
type TradeEvent struct {
	Action string          `json:"action"`
	Token  market.TokenID  `json:"token"`
	Actor  codec.Address   `json:"actor"`
	Output json.RawMessage `json:"output"`
}

// WebSocketServer streams committed actions to websocket clients.
type WebSocketServer struct {
	log logging.Logger
	s   *pubsub.Server
}

// NewWebSocketServer subscribes a feed to [vm]. The feed closes with [vm].
func NewWebSocketServer(vm api.VM, config pubsub.ServerConfig) (*WebSocketServer, *pubsub.Server, error) {
	w := &WebSocketServer{
		log: vm.Logger(),
		s:   pubsub.New(vm.Logger(), config),
	}
	if _, err := vm.Subscribe(w); err != nil {
		return nil, nil, err
	}
	return w, w.s, nil
}

func (w *WebSocketServer) Accept(_ context.Context, result *chain.Result) error {
	token, ok := tokenOf(result.Output)
	if !ok {
		return nil
	}
	output, err := json.Marshal(result.Output)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(&TradeEvent{
		Action: consts.ActionName(result.Action),
		Token:  token,
		Actor:  result.Actor,
		Output: output,
	})
	if err != nil {
		return err
	}
	sent := w.s.Publish(string(token), msg)
	w.log.Verbo("published trade event",
		zap.Stringer("token", token),
		zap.Int("connections", sent),
	)
	return nil
}

func (w *WebSocketServer) Close() error {
	w.s.Close()
	return nil
}

func tokenOf(output chain.Output) (market.TokenID, bool) {
	switch o := output.(type) {
	case *actions.LaunchResult:
		return o.Token, true
	case *actions.BuyResult:
		return o.Token, true
	case *actions.SellResult:
		return o.Token, true
	case *actions.TransferResult:
		return o.Asset, true
	default:
		return "", false
	}
}
