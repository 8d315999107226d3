// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/pubsub"
)

var (
	ErrClientClosed  = errors.New("client closed")
	ErrUnknownAction = errors.New("unknown action")
)

// Decode returns the typed output carried by e.
func (e *TradeEvent) Decode() (chain.Output, error) {
	var out chain.Output
	switch e.Action {
	case consts.ActionName(consts.LaunchID):
		out = &actions.LaunchResult{}
	case consts.ActionName(consts.BuyID):
		out = &actions.BuyResult{}
	case consts.ActionName(consts.SellID):
		out = &actions.SellResult{}
	case consts.ActionName(consts.TransferID):
		out = &actions.TransferResult{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, e.Action)
	}
	if err := json.Unmarshal(e.Output, out); err != nil {
		return nil, err
	}
	return out, nil
}

type WebSocketClient struct {
	conn      *websocket.Conn
	writeLock sync.Mutex

	events chan *TradeEvent

	errLock sync.Mutex
	err     error
}

// NewWebSocketClient connects to the trade feed served under [uri]. If
// [tokens] is empty every trade is delivered.
func NewWebSocketClient(ctx context.Context, uri string, tokens ...string) (*WebSocketClient, error) {
	u, err := url.Parse(strings.TrimSuffix(uri, "/") + Endpoint)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	query := u.Query()
	for _, token := range tokens {
		query.Add(pubsub.TokenParam, token)
	}
	u.RawQuery = query.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Body.Close(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	c := &WebSocketClient{
		conn:   conn,
		events: make(chan *TradeEvent, pubsub.MaxPendingMessages),
	}
	go c.readLoop()
	return c, nil
}

func (c *WebSocketClient) readLoop() {
	defer close(c.events)
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			c.setErr(err)
			return
		}
		var e TradeEvent
		if err := json.Unmarshal(msg, &e); err != nil {
			c.setErr(err)
			return
		}
		c.events <- &e
	}
}

func (c *WebSocketClient) setErr(err error) {
	c.errLock.Lock()
	defer c.errLock.Unlock()

	if c.err == nil {
		c.err = err
	}
}

func (c *WebSocketClient) Err() error {
	c.errLock.Lock()
	defer c.errLock.Unlock()

	return c.err
}

// Subscribe narrows the feed to [tokens] in addition to any already
// followed.
func (c *WebSocketClient) Subscribe(tokens ...string) error {
	return c.write(&pubsub.Command{Op: pubsub.Subscribe, Tokens: tokens})
}

func (c *WebSocketClient) Unsubscribe(tokens ...string) error {
	return c.write(&pubsub.Command{Op: pubsub.Unsubscribe, Tokens: tokens})
}

func (c *WebSocketClient) write(cmd *pubsub.Command) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	return c.conn.WriteJSON(cmd)
}

// ListenTrade blocks until the next trade event arrives.
func (c *WebSocketClient) ListenTrade(ctx context.Context) (*TradeEvent, error) {
	select {
	case e, ok := <-c.events:
		if !ok {
			if err := c.Err(); err != nil {
				return nil, err
			}
			return nil, ErrClientClosed
		}
		return e, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *WebSocketClient) Close() error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
