// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrPaymentFailed      = errors.New("payment failed")
	ErrTransferFailed     = errors.New("transfer failed")
	ErrInvalidPayment     = errors.New("invalid payment")
	ErrUndeclaredTransfer = errors.New("transfer was not declared by the action")
)
