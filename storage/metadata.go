// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
)

// GetMetadata returns the metadata recorded for [token]. The bool is false
// if the token was launched without any.
func GetMetadata(
	ctx context.Context,
	im state.Immutable,
	token market.TokenID,
) (*market.Metadata, bool, error) {
	v, err := im.GetValue(ctx, MetadataKey(token))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	m, err := market.UnmarshalMetadata(v)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// SetMetadata records [m] for a launched [token]. Metadata is written once.
func SetMetadata(ctx context.Context, mu state.Mutable, token market.TokenID, m *market.Metadata) error {
	exists, err := MarketExists(ctx, mu, token)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", market.ErrMarketNotFound, token)
	}
	k := MetadataKey(token)
	if _, err := mu.GetValue(ctx, k); err == nil {
		return fmt.Errorf("%w: %s already has metadata", market.ErrInvalidMetadata, token)
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}
	v, err := m.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, k, v)
}
