// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
)

// GetMarket returns the market for [token]. The bool is false if the token
// was never launched.
func GetMarket(
	ctx context.Context,
	im state.Immutable,
	token market.TokenID,
) (*market.State, bool, error) {
	v, err := im.GetValue(ctx, MarketKey(token))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s, err := market.Unmarshal(v)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func SetMarket(ctx context.Context, mu state.Mutable, s *market.State) error {
	v, err := s.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, MarketKey(s.TokenID), v)
}

func MarketExists(ctx context.Context, im state.Immutable, token market.TokenID) (bool, error) {
	_, err := im.GetValue(ctx, MarketKey(token))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// LaunchedCount returns the number of markets ever launched.
func LaunchedCount(ctx context.Context, im state.Immutable) (uint64, error) {
	v, err := im.GetValue(ctx, LaunchedCountKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return database.ParseUInt64(v)
}

// AppendLaunched adds [token] to the end of the launched list.
func AppendLaunched(ctx context.Context, mu state.Mutable, token market.TokenID) error {
	count, err := LaunchedCount(ctx, mu)
	if err != nil {
		return err
	}
	if err := mu.Insert(ctx, LaunchedKey(count), []byte(token)); err != nil {
		return err
	}
	return mu.Insert(ctx, LaunchedCountKey(), database.PackUInt64(count+1))
}

// LaunchedAt returns the [index]th launched token.
func LaunchedAt(ctx context.Context, im state.Immutable, index uint64) (market.TokenID, error) {
	v, err := im.GetValue(ctx, LaunchedKey(index))
	if errors.Is(err, database.ErrNotFound) {
		return "", fmt.Errorf("%w: %d", ErrLaunchedOutOfRange, index)
	}
	if err != nil {
		return "", err
	}
	return market.TokenID(v), nil
}

// Launched returns up to [limit] tokens in launch order starting at
// [offset]. A limit of 0 returns every remaining token.
func Launched(
	ctx context.Context,
	im state.Immutable,
	offset uint64,
	limit uint64,
) ([]market.TokenID, error) {
	count, err := LaunchedCount(ctx, im)
	if err != nil {
		return nil, err
	}
	if offset >= count {
		return []market.TokenID{}, nil
	}
	end := count
	if limit > 0 && limit < count-offset {
		end = offset + limit
	}
	tokens := make([]market.TokenID, 0, end-offset)
	for i := offset; i < end; i++ {
		token, err := LaunchedAt(ctx, im, i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptRegistry, err)
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// Launch creates the market for [token] and records it in the launched
// list. It moves no funds.
func Launch(
	ctx context.Context,
	mu state.Mutable,
	creator codec.Address,
	token market.TokenID,
	assetAmount *big.Int,
	virtualBase *big.Int,
) (*market.State, error) {
	if err := token.Launchable(); err != nil {
		return nil, fmt.Errorf("%w: %w", market.ErrInvalidLaunch, err)
	}
	if assetAmount == nil || assetAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: asset amount must be positive", market.ErrInvalidLaunch)
	}
	if virtualBase == nil || virtualBase.Sign() <= 0 {
		return nil, fmt.Errorf("%w: virtual base must be positive", market.ErrInvalidLaunch)
	}
	exists, err := MarketExists(ctx, mu, token)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s already launched", market.ErrInvalidLaunch, token)
	}
	s := market.New(creator, token, assetAmount, virtualBase)
	// Encode before writing anything so that an oversized amount leaves
	// no trace.
	v, err := s.Marshal()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", market.ErrInvalidLaunch, err)
	}
	if err := mu.Insert(ctx, MarketKey(token), v); err != nil {
		return nil, err
	}
	if err := AppendLaunched(ctx, mu, token); err != nil {
		return nil, err
	}
	return s, nil
}
