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
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
	"github.com/ava-labs/launchpad/utils"
)

const maxBalanceSize = consts.IntLen + market.MaxIntBytes

// MarketAddress is the account that holds the reserves of [token]'s market.
func MarketAddress(token market.TokenID) codec.Address {
	return codec.CreateAddress(consts.MarketID, utils.ToID([]byte(token)))
}

// GetBalance returns the amount of [asset] held by [account]. Accounts
// that were never funded hold zero.
func GetBalance(
	ctx context.Context,
	im state.Immutable,
	account codec.Address,
	asset market.TokenID,
) (*big.Int, error) {
	_, bal, err := getBalance(ctx, im, account, asset)
	return bal, err
}

func getBalance(
	ctx context.Context,
	im state.Immutable,
	account codec.Address,
	asset market.TokenID,
) ([]byte, *big.Int, error) {
	k := BalanceKey(account, asset)
	v, err := im.GetValue(ctx, k)
	if errors.Is(err, database.ErrNotFound) {
		return k, new(big.Int), nil
	}
	if err != nil {
		return nil, nil, err
	}
	p := codec.NewReader(v, maxBalanceSize)
	bal := p.UnpackBigInt(market.MaxIntBytes)
	if err := p.Done(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidBalance, err)
	}
	return k, bal, nil
}

func setBalance(ctx context.Context, mu state.Mutable, key []byte, balance *big.Int) error {
	if balance.Sign() == 0 {
		// If there is no balance left, we delete the record instead of
		// setting it to 0.
		return mu.Remove(ctx, key)
	}
	p := codec.NewWriter(maxBalanceSize, maxBalanceSize)
	p.PackBigInt(balance)
	if err := p.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBalance, err)
	}
	return mu.Insert(ctx, key, p.Bytes())
}

func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	account codec.Address,
	asset market.TokenID,
	amount *big.Int,
) (*big.Int, error) {
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: cannot add %s", ErrInvalidBalance, amount)
	}
	key, bal, err := getBalance(ctx, mu, account, asset)
	if err != nil {
		return nil, err
	}
	nbal := new(big.Int).Add(bal, amount)
	if nbal.BitLen() > 8*market.MaxIntBytes {
		return nil, fmt.Errorf(
			"%w: could not add balance (bal=%s, account=%s, asset=%s, amount=%s)",
			ErrInvalidBalance,
			bal,
			account,
			asset,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	account codec.Address,
	asset market.TokenID,
	amount *big.Int,
) (*big.Int, error) {
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: cannot subtract %s", ErrInvalidBalance, amount)
	}
	key, bal, err := getBalance(ctx, mu, account, asset)
	if err != nil {
		return nil, err
	}
	if bal.Cmp(amount) < 0 {
		return nil, fmt.Errorf(
			"%w: could not subtract balance (bal=%s, account=%s, asset=%s, amount=%s)",
			ErrInsufficientBalance,
			bal,
			account,
			asset,
			amount,
		)
	}
	nbal := new(big.Int).Sub(bal, amount)
	return nbal, setBalance(ctx, mu, key, nbal)
}
