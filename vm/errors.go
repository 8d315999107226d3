// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrClosed         = errors.New("vm closed")
	ErrFaucetDisabled = errors.New("faucet disabled")
	ErrInvalidDeposit = errors.New("invalid deposit")
	ErrUnexpectedType = errors.New("unexpected output type")
)
