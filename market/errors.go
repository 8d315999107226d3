// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import "errors"

var (
	ErrInvalidLaunch   = errors.New("invalid launch")
	ErrMarketNotFound  = errors.New("market not found")
	ErrInvalidTokenID  = errors.New("invalid token id")
	ErrInvalidState    = errors.New("invalid market state")
	ErrUnknownVersion  = errors.New("unknown market state version")
	ErrNegativeReserve = errors.New("negative reserve")
	ErrInvalidMetadata = errors.New("invalid token metadata")
)
