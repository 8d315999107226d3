// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import "net/http"

type Wrapper interface {
	// WrapHandler wraps an http.Handler.
	WrapHandler(h http.Handler) http.Handler
}

var _ Wrapper = MaxRequestSize(0)

// MaxRequestSize rejects request bodies larger than its value in bytes.
type MaxRequestSize int64

func (m MaxRequestSize) WrapHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, int64(m))
		h.ServeHTTP(w, r)
	})
}
