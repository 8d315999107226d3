// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Connection is a single websocket client of a [Server].
type Connection struct {
	s    *Server
	conn *websocket.Conn

	// Buffered channel of outbound messages
	send chan []byte
	once sync.Once

	// Represents if the connection can receive new messages
	active atomic.Bool

	lock   sync.RWMutex
	tokens set.Set[string]
}

// Follows returns whether messages about [token] should reach c.
func (c *Connection) Follows(token string) bool {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.tokens.Len() == 0 || c.tokens.Contains(token)
}

func (c *Connection) apply(cmd *Command) {
	c.lock.Lock()
	defer c.lock.Unlock()

	switch cmd.Op {
	case Subscribe:
		c.tokens.Add(cmd.Tokens...)
	case Unsubscribe:
		c.tokens.Remove(cmd.Tokens...)
	}
}

func (c *Connection) deactivate() {
	c.active.Store(false)
	c.once.Do(func() {
		c.s.removeConnection(c)
		// close is called by both pumps so one of them always errors
		_ = c.conn.Close()
	})
}

// Send queues [msg] and returns false if c is inactive or too far behind.
func (c *Connection) Send(msg []byte) bool {
	if !c.active.Load() {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// readPump is the only reader of the connection.
func (c *Connection) readPump() {
	defer c.deactivate()

	c.conn.SetReadLimit(c.s.config.MaxReadMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.s.config.PongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.s.config.PongWait))
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				c.s.log.Debug("unexpected close in websockets",
					zap.Error(err),
				)
			}
			return
		}
		cmd, err := ParseCommand(msg)
		if err != nil {
			c.s.log.Debug("unable to parse websockets command",
				zap.Error(err),
			)
			continue
		}
		c.apply(cmd)
	}
}

// writePump is the only writer of the connection.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.s.config.pingPeriod())
	defer func() {
		ticker.Stop()
		c.deactivate()
	}()
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.s.config.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.s.log.Debug("closing the connection",
					zap.String("reason", "failed to write message"),
					zap.Error(err),
				)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.s.config.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.s.done:
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}
