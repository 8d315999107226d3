// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
	"github.com/ava-labs/launchpad/storage"
)

var (
	_ chain.Output = (*LaunchResult)(nil)
	_ chain.Action = (*Launch)(nil)
)

type LaunchResult struct {
	Token       market.TokenID `json:"token"`
	Market      codec.Address  `json:"market"`
	Index       uint64         `json:"index"`
	TotalSupply *big.Int       `json:"totalSupply"`
	VirtualBase *big.Int       `json:"virtualBase"`

	Metadata *market.Metadata `json:"metadata,omitempty"`
}

func (*LaunchResult) GetTypeID() uint8 {
	return consts.LaunchID
}

func (*LaunchResult) Transfers() []chain.Transfer {
	return nil
}

// Launch creates the market for [Token]. The actor deposits [Amount] of the
// token, which becomes the whole tradable supply.
type Launch struct {
	Token       market.TokenID `json:"token"`
	Amount      *big.Int       `json:"amount"`
	VirtualBase *big.Int       `json:"virtualBase"`

	// Metadata is optional and stored alongside the market.
	Metadata *market.Metadata `json:"metadata,omitempty"`

	// Index is the position the token will take in the launched list. The
	// host fills it in while holding the launch lock.
	Index uint64 `json:"index"`
}

func (*Launch) GetTypeID() uint8 {
	return consts.LaunchID
}

func (l *Launch) Payment(actor codec.Address) *chain.Transfer {
	return &chain.Transfer{
		Asset:  l.Token,
		From:   actor,
		To:     storage.MarketAddress(l.Token),
		Amount: l.Amount,
	}
}

func (*Launch) Payout(codec.Address) *chain.Transfer {
	return nil
}

func (l *Launch) StateKeys(codec.Address) state.Keys {
	keys := state.Keys{
		string(storage.MarketKey(l.Token)):   state.Allocate | state.Write,
		string(storage.LaunchedCountKey()):   state.All,
		string(storage.LaunchedKey(l.Index)): state.Allocate | state.Write,
	}
	if l.Metadata != nil {
		keys.Add(string(storage.MetadataKey(l.Token)), state.Allocate|state.Write)
	}
	return keys
}

func (l *Launch) Verify() error {
	if err := l.Token.Launchable(); err != nil {
		return fmt.Errorf("%w: %w", market.ErrInvalidLaunch, err)
	}
	if !isPositive(l.Amount) {
		return fmt.Errorf("%w: amount must be positive", market.ErrInvalidLaunch)
	}
	if !isPositive(l.VirtualBase) {
		return fmt.Errorf("%w: virtual base must be positive", market.ErrInvalidLaunch)
	}
	if err := checkAmount("amount", l.Amount); err != nil {
		return fmt.Errorf("%w: %w", market.ErrInvalidLaunch, err)
	}
	if err := checkAmount("virtual base", l.VirtualBase); err != nil {
		return fmt.Errorf("%w: %w", market.ErrInvalidLaunch, err)
	}
	if l.Metadata != nil {
		if err := l.Metadata.Validate(); err != nil {
			return fmt.Errorf("%w: %w", market.ErrInvalidLaunch, err)
		}
	}
	return nil
}

func (l *Launch) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (chain.Output, error) {
	if err := l.Verify(); err != nil {
		return nil, err
	}
	count, err := storage.LaunchedCount(ctx, mu)
	if err != nil {
		return nil, err
	}
	if count != l.Index {
		return nil, fmt.Errorf("%w: expected index %d but found %d", ErrOutputLaunchIndex, l.Index, count)
	}
	s, err := storage.Launch(ctx, mu, actor, l.Token, l.Amount, l.VirtualBase)
	if err != nil {
		return nil, err
	}
	if l.Metadata != nil {
		if err := storage.SetMetadata(ctx, mu, s.TokenID, l.Metadata); err != nil {
			return nil, err
		}
	}
	return &LaunchResult{
		Token:       s.TokenID,
		Market:      storage.MarketAddress(s.TokenID),
		Index:       l.Index,
		TotalSupply: s.TotalSupply,
		VirtualBase: s.VirtualBaseReserve,
		Metadata:    l.Metadata,
	}, nil
}
