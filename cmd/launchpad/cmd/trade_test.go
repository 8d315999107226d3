// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/launchpad/market"
)

func TestLaunchMetadata(t *testing.T) {
	tests := []struct {
		name        string
		tokenName   string
		description string
		imageURL    string
		expected    *market.Metadata
		err         error
	}{
		{
			name: "no flags",
		},
		{
			name:      "name only",
			tokenName: "Token",
			expected:  &market.Metadata{Name: "Token"},
		},
		{
			name:        "all flags",
			tokenName:   "Token",
			description: "a token",
			imageURL:    "ipfs://cid/tkn.png",
			expected:    &market.Metadata{Name: "Token", Description: "a token", ImageURL: "ipfs://cid/tkn.png"},
		},
		{
			name:        "description without name",
			description: "a token",
			err:         market.ErrInvalidMetadata,
		},
		{
			name:      "bad image",
			tokenName: "Token",
			imageURL:  "tkn.png",
			err:       market.ErrInvalidMetadata,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			tokenName, tokenDescription, tokenImageURL = tt.tokenName, tt.description, tt.imageURL
			defer func() { tokenName, tokenDescription, tokenImageURL = "", "", "" }()

			m, err := launchMetadata()
			require.ErrorIs(err, tt.err)
			require.Equal(tt.expected, m)
		})
	}
}
