// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/keys"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
)

// State
// 0x0/ (market)
//   -> [token] => market state
// 0x1/ (launched count)
//   -> count
// 0x2/ (launched)
//   -> [index] => token
// 0x3/ (balance)
//   -> [account|asset] => amount
// 0x4/ (metadata)
//   -> [token] => token metadata

const (
	marketPrefix byte = iota
	launchedCountPrefix
	launchedPrefix
	balancePrefix
	metadataPrefix
)

const (
	MarketChunks        uint16 = (market.MaxStateSize-1)/64 + 1
	LaunchedCountChunks uint16 = 1
	LaunchedChunks      uint16 = 1
	BalanceChunks       uint16 = 2
	MetadataChunks      uint16 = (market.MaxMetadataSize-1)/64 + 1

	// MaxValueChunks is the largest chunk count any key above claims.
	MaxValueChunks = max(MarketChunks, LaunchedCountChunks, LaunchedChunks, BalanceChunks, MetadataChunks)
)

// MaxKeySize bounds every key above. Balance keys are the longest.
const MaxKeySize = consts.ByteLen + codec.AddressLen + market.MaxTokenIDLen + consts.Uint16Len

// VerifyScope rejects any key in [scope] that is oversized or claims more
// value chunks than a stored record can need.
func VerifyScope(scope state.Keys) error {
	for k := range scope {
		if !keys.Verify(MaxKeySize, MaxValueChunks, []byte(k)) {
			return fmt.Errorf("%w: %x", ErrInvalidStateKey, k)
		}
	}
	return nil
}

// [marketPrefix] + [token]
func MarketKey(token market.TokenID) []byte {
	k := make([]byte, 0, consts.ByteLen+len(token)+consts.Uint16Len)
	k = append(k, marketPrefix)
	k = append(k, token...)
	return keys.EncodeChunks(k, MarketChunks)
}

func LaunchedCountKey() []byte {
	return keys.EncodeChunks([]byte{launchedCountPrefix}, LaunchedCountChunks)
}

// [launchedPrefix] + [index]
func LaunchedKey(index uint64) []byte {
	k := make([]byte, consts.ByteLen+consts.Uint64Len)
	k[0] = launchedPrefix
	binary.BigEndian.PutUint64(k[1:], index)
	return keys.EncodeChunks(k, LaunchedChunks)
}

// [balancePrefix] + [account] + [asset]
func BalanceKey(account codec.Address, asset market.TokenID) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AddressLen+len(asset)+consts.Uint16Len)
	k = append(k, balancePrefix)
	k = append(k, account[:]...)
	k = append(k, asset...)
	return keys.EncodeChunks(k, BalanceChunks)
}

// [metadataPrefix] + [token]
func MetadataKey(token market.TokenID) []byte {
	k := make([]byte, 0, consts.ByteLen+len(token)+consts.Uint16Len)
	k = append(k, metadataPrefix)
	k = append(k, token...)
	return keys.EncodeChunks(k, MetadataChunks)
}
