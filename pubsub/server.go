// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// TokenParam pre-subscribes a new connection. It may be repeated.
const TokenParam = "token"

var _ http.Handler = (*Server)(nil)

// Server maintains the set of active clients and sends messages to them.
type Server struct {
	log      logging.Logger
	config   ServerConfig
	upgrader websocket.Upgrader
	conns    *Connections

	closeOnce sync.Once
	done      chan struct{}
}

func New(log logging.Logger, config ServerConfig) *Server {
	return &Server{
		log:    log,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		conns: NewConnections(),
		done:  make(chan struct{}),
	}
}

// ServeHTTP upgrades the request and starts the pumps of the new connection.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	conn := &Connection{
		s:    s,
		conn: wsConn,
		send: make(chan []byte, s.config.MaxPendingMessages),
	}
	conn.tokens.Add(r.URL.Query()[TokenParam]...)
	conn.active.Store(true)
	s.conns.Add(conn)

	go conn.writePump()
	go conn.readPump()
}

// Publish sends [msg] to every connection following [token] and returns
// the number of connections it reached.
func (s *Server) Publish(token string, msg []byte) int {
	sent := 0
	for _, conn := range s.conns.Conns() {
		if !conn.Follows(token) {
			continue
		}
		if !conn.Send(msg) {
			s.log.Verbo("dropping message to subscribed connection due to too many pending messages")
			continue
		}
		sent++
	}
	return sent
}

func (s *Server) Connections() int {
	return s.conns.Len()
}

func (s *Server) removeConnection(conn *Connection) {
	s.conns.Remove(conn)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
