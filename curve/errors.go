// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package curve

import "errors"

var (
	ErrZeroPayment        = errors.New("payment must be positive")
	ErrInsufficientOutput = errors.New("trade yields no output")
	ErrCurveExhausted     = errors.New("trade would exhaust the asset reserve")
	ErrInsolventMarket    = errors.New("market lacks the base reserve to pay out")
)
