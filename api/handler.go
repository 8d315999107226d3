// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"net/http"

	"github.com/ava-labs/launchpad/server"
)

const Name = "launchpad"

type Handler struct {
	Path    string
	Handler http.Handler
}

type HandlerFactory[T any] interface {
	New(t T) (Handler, error)
}

func NewJSONRPCHandler(name string, rpc any) (http.Handler, error) {
	return server.NewHandler(rpc, name)
}
