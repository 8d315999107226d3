// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keys encodes the maximum value size of a state key into the key
// itself so that every write can be bounded before it is applied.
package keys

import (
	"encoding/binary"

	"github.com/ava-labs/launchpad/consts"
)

const chunkSize = 64 // bytes

// MaxChunks returns the number of value chunks encoded in the suffix of
// [key].
func MaxChunks(key []byte) (uint16, bool) {
	l := len(key)
	if l < consts.Uint16Len {
		return 0, false
	}
	return binary.BigEndian.Uint16(key[l-consts.Uint16Len:]), true
}

func NumChunks(value []byte) (uint16, bool) {
	return numChunks(len(value))
}

func numChunks(valueLen int) (uint16, bool) {
	if valueLen == 0 {
		return 0, true
	}
	raw := (valueLen-1)/chunkSize + 1
	if raw > int(consts.MaxUint16) {
		return 0, false
	}
	return uint16(raw), true
}

// Verify checks that [key] is no larger than [maxKeySize] and does not
// claim more than [maxValueChunks].
func Verify(maxKeySize uint32, maxValueChunks uint16, key []byte) bool {
	if uint32(len(key)) > maxKeySize {
		return false
	}
	keyChunks, ok := MaxChunks(key)
	if !ok {
		return false
	}
	return keyChunks <= maxValueChunks
}

// VerifyValue checks that [value] fits in the chunks [key] allows.
func VerifyValue(key []byte, value []byte) bool {
	valueChunks, ok := NumChunks(value)
	if !ok {
		return false
	}
	keyChunks, ok := MaxChunks(key)
	if !ok {
		return false
	}
	return valueChunks <= keyChunks
}

// EncodeChunks appends [maxChunks] to a copy of [key].
func EncodeChunks(key []byte, maxChunks uint16) []byte {
	bkey := make([]byte, len(key), len(key)+consts.Uint16Len)
	copy(bkey, key)
	return binary.BigEndian.AppendUint16(bkey, maxChunks)
}
