// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/launchpad/codec"
)

func testState() *State {
	return New(codec.CreateAddress(0, ids.GenerateTestID()), "TKN", big.NewInt(1_000_000), big.NewInt(1_000))
}

func TestNew(t *testing.T) {
	require := require.New(t)
	amount := big.NewInt(1_000_000)
	s := New(codec.EmptyAddress, "TKN", amount, big.NewInt(1_000))

	require.Zero(s.TotalSupply.Cmp(amount))
	require.Zero(s.RealAssetReserve.Cmp(amount))
	require.Zero(s.RealBaseReserve.Sign())
	require.Zero(s.VirtualAssetReserve.Sign())

	// Inputs are not aliased.
	amount.SetInt64(1)
	require.Zero(s.TotalSupply.Cmp(big.NewInt(1_000_000)))

	require.Zero(s.BaseReserve().Cmp(big.NewInt(1_000)))
	require.Zero(s.AssetReserve().Cmp(big.NewInt(1_000_000)))
	require.Zero(s.Invariant().Cmp(big.NewInt(1_000_000_000)))
}

func TestClone(t *testing.T) {
	require := require.New(t)
	s := testState()
	c := s.Clone()
	require.True(s.Equal(c))

	c.RealBaseReserve.SetInt64(5)
	require.False(s.Equal(c))
	require.Zero(s.RealBaseReserve.Sign())
}

func TestMarshalUnmarshal(t *testing.T) {
	require := require.New(t)
	s := testState()
	s.RealBaseReserve.SetInt64(100)
	s.RealAssetReserve.SetInt64(909090)

	b, err := s.Marshal()
	require.NoError(err)
	require.LessOrEqual(len(b), MaxStateSize)

	parsed, err := Unmarshal(b)
	require.NoError(err)
	require.True(s.Equal(parsed))

	_, err = Unmarshal(append(b, 0))
	require.ErrorIs(err, ErrInvalidState)

	b[0] = StateVersion + 1
	_, err = Unmarshal(b)
	require.ErrorIs(err, ErrUnknownVersion)

	_, err = Unmarshal(nil)
	require.ErrorIs(err, ErrInvalidState)
}

func TestMarshalRejectsInvalid(t *testing.T) {
	require := require.New(t)

	s := testState()
	s.RealBaseReserve = big.NewInt(-1)
	_, err := s.Marshal()
	require.ErrorIs(err, ErrInvalidState)
	require.ErrorIs(err, ErrNegativeReserve)

	s = testState()
	s.RealAssetReserve = nil
	_, err = s.Marshal()
	require.ErrorIs(err, ErrInvalidState)

	s = testState()
	s.TotalSupply = new(big.Int).Lsh(big.NewInt(1), 8*MaxIntBytes)
	_, err = s.Marshal()
	require.ErrorIs(err, ErrInvalidState)

	s.TotalSupply.Sub(s.TotalSupply, big.NewInt(1))
	_, err = s.Marshal()
	require.NoError(err)
}

func TestEqualNil(t *testing.T) {
	require := require.New(t)
	var s *State
	require.True(s.Equal(nil))
	require.False(testState().Equal(nil))
}
