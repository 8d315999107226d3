// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"fmt"
	"math/big"
)

// MaxAmountBits bounds every amount an action accepts.
const MaxAmountBits = 256

func checkAmount(name string, v *big.Int) error {
	if v != nil && v.BitLen() > MaxAmountBits {
		return fmt.Errorf("%w: %s exceeds %d bits", ErrOutputAmountTooLarge, name, MaxAmountBits)
	}
	return nil
}

func isPositive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}
