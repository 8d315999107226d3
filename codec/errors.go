// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrFieldNotPopulated  = errors.New("field is not populated")
	ErrInsufficientLength = errors.New("insufficient length")
	ErrInvalidSize        = errors.New("invalid size")
	ErrIncorrectHRP       = errors.New("incorrect hrp")
	ErrNegativeInteger    = errors.New("negative integer")
	ErrNonCanonical       = errors.New("non-canonical integer encoding")
	ErrTrailingBytes      = errors.New("trailing bytes")
)
