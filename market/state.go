// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"fmt"
	"math/big"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
)

const (
	StateVersion = 0

	// MaxIntBytes bounds the magnitude of every stored amount.
	MaxIntBytes = 64

	MaxStateSize = consts.ByteLen + codec.AddressLen + consts.Uint16Len + MaxTokenIDLen +
		5*(consts.IntLen+MaxIntBytes)
)

// State is the per-token market. Creator, TokenID, TotalSupply and the
// virtual reserves never change after launch.
type State struct {
	Creator             codec.Address `json:"creator"`
	TokenID             TokenID       `json:"tokenID"`
	TotalSupply         *big.Int      `json:"totalSupply"`
	VirtualBaseReserve  *big.Int      `json:"virtualBaseReserve"`
	VirtualAssetReserve *big.Int      `json:"virtualAssetReserve"`
	RealBaseReserve     *big.Int      `json:"realBaseReserve"`
	RealAssetReserve    *big.Int      `json:"realAssetReserve"`
}

// New returns the state of a freshly launched market. Amounts are copied.
func New(creator codec.Address, token TokenID, assetAmount, virtualBase *big.Int) *State {
	return &State{
		Creator:             creator,
		TokenID:             token,
		TotalSupply:         new(big.Int).Set(assetAmount),
		VirtualBaseReserve:  new(big.Int).Set(virtualBase),
		VirtualAssetReserve: new(big.Int),
		RealBaseReserve:     new(big.Int),
		RealAssetReserve:    new(big.Int).Set(assetAmount),
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	return &State{
		Creator:             s.Creator,
		TokenID:             s.TokenID,
		TotalSupply:         new(big.Int).Set(s.TotalSupply),
		VirtualBaseReserve:  new(big.Int).Set(s.VirtualBaseReserve),
		VirtualAssetReserve: new(big.Int).Set(s.VirtualAssetReserve),
		RealBaseReserve:     new(big.Int).Set(s.RealBaseReserve),
		RealAssetReserve:    new(big.Int).Set(s.RealAssetReserve),
	}
}

// BaseReserve is the effective base side of the curve (virtual + real).
func (s *State) BaseReserve() *big.Int {
	return new(big.Int).Add(s.VirtualBaseReserve, s.RealBaseReserve)
}

// AssetReserve is the effective asset side of the curve. The virtual asset
// reserve does not participate.
func (s *State) AssetReserve() *big.Int {
	return new(big.Int).Set(s.RealAssetReserve)
}

// Invariant returns K = BaseReserve * AssetReserve.
func (s *State) Invariant() *big.Int {
	return new(big.Int).Mul(s.BaseReserve(), s.AssetReserve())
}

// Verify checks that every amount is set, non-negative and encodable.
func (s *State) Verify() error {
	if err := s.TokenID.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	for _, f := range []struct {
		name string
		v    *big.Int
	}{
		{"totalSupply", s.TotalSupply},
		{"virtualBaseReserve", s.VirtualBaseReserve},
		{"virtualAssetReserve", s.VirtualAssetReserve},
		{"realBaseReserve", s.RealBaseReserve},
		{"realAssetReserve", s.RealAssetReserve},
	} {
		if f.v == nil {
			return fmt.Errorf("%w: %s is nil", ErrInvalidState, f.name)
		}
		if f.v.Sign() < 0 {
			return fmt.Errorf("%w: %w: %s=%s", ErrInvalidState, ErrNegativeReserve, f.name, f.v)
		}
		if f.v.BitLen() > 8*MaxIntBytes {
			return fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidState, f.name, MaxIntBytes)
		}
	}
	return nil
}

func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Creator == o.Creator &&
		s.TokenID == o.TokenID &&
		s.TotalSupply.Cmp(o.TotalSupply) == 0 &&
		s.VirtualBaseReserve.Cmp(o.VirtualBaseReserve) == 0 &&
		s.VirtualAssetReserve.Cmp(o.VirtualAssetReserve) == 0 &&
		s.RealBaseReserve.Cmp(o.RealBaseReserve) == 0 &&
		s.RealAssetReserve.Cmp(o.RealAssetReserve) == 0
}

func (s *State) Marshal() ([]byte, error) {
	if err := s.Verify(); err != nil {
		return nil, err
	}
	p := codec.NewWriter(MaxStateSize, MaxStateSize)
	p.PackByte(StateVersion)
	p.PackAddress(s.Creator)
	p.PackString(string(s.TokenID))
	p.PackBigInt(s.TotalSupply)
	p.PackBigInt(s.VirtualBaseReserve)
	p.PackBigInt(s.VirtualAssetReserve)
	p.PackBigInt(s.RealBaseReserve)
	p.PackBigInt(s.RealAssetReserve)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return p.Bytes(), nil
}

func Unmarshal(b []byte) (*State, error) {
	p := codec.NewReader(b, MaxStateSize)
	if v := p.UnpackByte(); p.Err() == nil && v != StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, v)
	}
	var s State
	p.UnpackAddress(&s.Creator)
	s.TokenID = TokenID(p.UnpackString(true))
	s.TotalSupply = p.UnpackBigInt(MaxIntBytes)
	s.VirtualBaseReserve = p.UnpackBigInt(MaxIntBytes)
	s.VirtualAssetReserve = p.UnpackBigInt(MaxIntBytes)
	s.RealBaseReserve = p.UnpackBigInt(MaxIntBytes)
	s.RealAssetReserve = p.UnpackBigInt(MaxIntBytes)
	if err := p.Done(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if err := s.Verify(); err != nil {
		return nil, err
	}
	return &s, nil
}
