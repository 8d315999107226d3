// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import "time"

const (
	ReadBufferSize     = 1024
	WriteBufferSize    = 4096
	MaxPendingMessages = 1024
	MaxReadMessageSize = 4 * 1024
	WriteWait          = 10 * time.Second
	PongWait           = 60 * time.Second
)

type ServerConfig struct {
	// Size of the ws read buffer
	ReadBufferSize int `json:"readBufferSize" yaml:"readBufferSize"`
	// Size of the ws write buffer
	WriteBufferSize int `json:"writeBufferSize" yaml:"writeBufferSize"`
	// Maximum number of pending messages to send to a peer
	MaxPendingMessages int `json:"maxPendingMessages" yaml:"maxPendingMessages"`
	// Maximum message size in bytes allowed from peer
	MaxReadMessageSize int64 `json:"maxReadMessageSize" yaml:"maxReadMessageSize"`
	// Time allowed to write a message to the peer
	WriteWait time.Duration `json:"writeWait" yaml:"writeWait"`
	// Time allowed to read the next pong message from the peer
	PongWait time.Duration `json:"pongWait" yaml:"pongWait"`
}

func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ReadBufferSize:     ReadBufferSize,
		WriteBufferSize:    WriteBufferSize,
		MaxPendingMessages: MaxPendingMessages,
		MaxReadMessageSize: MaxReadMessageSize,
		WriteWait:          WriteWait,
		PongWait:           PongWait,
	}
}

// pingPeriod must stay below PongWait.
func (c ServerConfig) pingPeriod() time.Duration {
	return (c.PongWait * 9) / 10
}
