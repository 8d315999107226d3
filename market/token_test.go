// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenIDValidate(t *testing.T) {
	tests := []struct {
		token TokenID
		valid bool
	}{
		{"TKN", true},
		{"ABCDEFGHIJ", true},
		{"TKN-a1b2c3", true},
		{"T0K3N-000fff", true},
		{"TK", false},
		{"ABCDEFGHIJK", false},
		{"tkn", false},
		{"TKN-", false},
		{"TKN-A1B2C3", false},
		{"TKN-a1b2c", false},
		{"TKN-a1b2c3d", false},
		{"TKN-g1b2c3", false},
		{"TK N", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			err := tt.token.Validate()
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidTokenID)
		})
	}
}

func TestTokenIDLaunchable(t *testing.T) {
	require := require.New(t)
	require.NoError(Base.Validate())
	require.ErrorIs(Base.Launchable(), ErrInvalidTokenID)
	require.NoError(TokenID("TKN").Launchable())

	token, err := ParseTokenID("TKN-abcdef")
	require.NoError(err)
	require.Equal("TKN", token.Ticker())
	require.Equal("TKN-abcdef", token.String())

	_, err = ParseTokenID("bad")
	require.ErrorIs(err, ErrInvalidTokenID)
}
