// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidBalance      = errors.New("invalid balance")
	ErrLaunchedOutOfRange  = errors.New("launched index out of range")
	ErrCorruptRegistry     = errors.New("launched list is corrupt")
	ErrInvalidStateKey     = errors.New("invalid state key")
)
