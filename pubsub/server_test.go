// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitConns(t *testing.T, s *Server, n int) {
	require.Eventually(t, func() bool {
		return s.Connections() == n
	}, 5*time.Second, 10*time.Millisecond)
}

func readMsg(t *testing.T, conn *websocket.Conn) string {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func TestPublishFollowsTokens(t *testing.T) {
	require := require.New(t)

	s := New(logging.NoLog{}, NewDefaultServerConfig())
	defer s.Close()
	srv := httptest.NewServer(s)
	defer srv.Close()

	all := dial(t, srv, "")
	tkn := dial(t, srv, "?token=TKN")
	waitConns(t, s, 2)

	require.Equal(1, s.Publish("OTHER", []byte("other")))
	require.Equal(2, s.Publish("TKN", []byte("tkn")))

	require.Equal("other", readMsg(t, all))
	require.Equal("tkn", readMsg(t, all))
	require.Equal("tkn", readMsg(t, tkn))
}

func TestCommands(t *testing.T) {
	require := require.New(t)

	s := New(logging.NoLog{}, NewDefaultServerConfig())
	defer s.Close()
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv, "")
	waitConns(t, s, 1)

	require.NoError(conn.WriteJSON(Command{Op: Subscribe, Tokens: []string{"TKN"}}))
	require.Eventually(func() bool {
		return s.Publish("OTHER", []byte("other")) == 0
	}, 5*time.Second, 10*time.Millisecond)
	require.Equal(1, s.Publish("TKN", []byte("tkn")))
	// messages published before the command applied may arrive first
	msg := readMsg(t, conn)
	for msg != "tkn" {
		msg = readMsg(t, conn)
	}

	require.NoError(conn.WriteJSON(Command{Op: Unsubscribe, Tokens: []string{"TKN"}}))
	require.Eventually(func() bool {
		return s.Publish("OTHER", []byte("other")) == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{name: "subscribe", in: `{"op":"subscribe","tokens":["A"]}`},
		{name: "unsubscribe", in: `{"op":"unsubscribe","tokens":[]}`},
		{name: "unknown op", in: `{"op":"noop"}`, err: ErrInvalidCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand([]byte(tt.in))
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := ParseCommand([]byte("{"))
	require.Error(t, err)
}

func TestClose(t *testing.T) {
	require := require.New(t)

	s := New(logging.NoLog{}, NewDefaultServerConfig())
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv, "")
	waitConns(t, s, 1)

	s.Close()
	s.Close()
	require.NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	_, _, err := conn.ReadMessage()
	require.True(websocket.IsCloseError(err, websocket.CloseGoingAway))
	waitConns(t, s, 0)
}
