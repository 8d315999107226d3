// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	ErrOutputSlippageExceeded = errors.New("output below minimum")
	ErrOutputWrongAsset       = errors.New("asset cannot be sold")
	ErrOutputAmountTooLarge   = errors.New("amount is too large")
	ErrOutputLaunchIndex      = errors.New("launched list changed")
	ErrOutputValueZero        = errors.New("value is zero")
	ErrOutputSelfTransfer     = errors.New("cannot transfer to self")
)
