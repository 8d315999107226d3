// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"encoding/json"
	"errors"
)

var ErrInvalidCommand = errors.New("invalid command")

const (
	Subscribe   = "subscribe"
	Unsubscribe = "unsubscribe"
)

// Command is sent by a client to change the tokens it follows. A
// connection that follows no tokens receives every message.
type Command struct {
	Op     string   `json:"op"`
	Tokens []string `json:"tokens"`
}

func ParseCommand(b []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(b, &cmd); err != nil {
		return nil, err
	}
	if cmd.Op != Subscribe && cmd.Op != Unsubscribe {
		return nil, ErrInvalidCommand
	}
	return &cmd, nil
}
