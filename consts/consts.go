// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen   = 1
	BoolLen   = 1
	Uint16Len = 2
	IntLen    = 4
	Uint64Len = 8
	IDLen     = 32
	MaxUint16 = ^uint16(0)
	MaxUint64 = ^uint64(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)
)
