// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/keys"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
	"github.com/ava-labs/launchpad/tstate"
)

var (
	errExecute = errors.New("execute failed")
	errVerify  = errors.New("verify failed")

	markerKey = keys.EncodeChunks([]byte("marker"), 1)

	actor = codec.CreateAddress(0, ids.GenerateTestID())
	pool  = codec.CreateAddress(1, ids.GenerateTestID())
)

type testOutput struct {
	transfers []Transfer
}

func (*testOutput) GetTypeID() uint8 { return 1 }

func (o *testOutput) Transfers() []Transfer { return o.transfers }

type testAction struct {
	payment   *Transfer
	payout    *Transfer
	transfers []Transfer
	verifyErr error
	execErr   error
	executed  bool
}

func (*testAction) GetTypeID() uint8 { return 1 }

func (a *testAction) Verify() error { return a.verifyErr }

func (a *testAction) Payment(codec.Address) *Transfer { return a.payment }

func (a *testAction) Payout(codec.Address) *Transfer { return a.payout }

func (*testAction) StateKeys(codec.Address) state.Keys {
	return state.Keys{string(markerKey): state.All}
}

func (a *testAction) Execute(ctx context.Context, mu state.Mutable, _ codec.Address) (Output, error) {
	a.executed = true
	if err := mu.Insert(ctx, markerKey, []byte{1}); err != nil {
		return nil, err
	}
	if a.execErr != nil {
		return nil, a.execErr
	}
	return &testOutput{transfers: a.transfers}, nil
}

// testPayments keeps balances as decimal strings under the account and
// asset.
type testPayments struct{}

func balanceKey(account codec.Address, asset market.TokenID) string {
	return string(keys.EncodeChunks(append(account[:], string(asset)...), 1))
}

func (testPayments) StateKeys(t Transfer) state.Keys {
	return state.Keys{
		balanceKey(t.From, t.Asset): state.All,
		balanceKey(t.To, t.Asset):   state.All,
	}
}

func (p testPayments) Collect(ctx context.Context, mu state.Mutable, t Transfer) error {
	return p.Transfer(ctx, mu, t)
}

func (testPayments) Transfer(ctx context.Context, mu state.Mutable, t Transfer) error {
	from, err := balance(ctx, mu, t.From, t.Asset)
	if err != nil {
		return err
	}
	if from.Cmp(t.Amount) < 0 {
		return errors.New("insufficient balance")
	}
	to, err := balance(ctx, mu, t.To, t.Asset)
	if err != nil {
		return err
	}
	if err := mu.Insert(ctx, []byte(balanceKey(t.From, t.Asset)), []byte(from.Sub(from, t.Amount).String())); err != nil {
		return err
	}
	return mu.Insert(ctx, []byte(balanceKey(t.To, t.Asset)), []byte(to.Add(to, t.Amount).String()))
}

func balance(ctx context.Context, im state.Immutable, account codec.Address, asset market.TokenID) (*big.Int, error) {
	v, err := im.GetValue(ctx, []byte(balanceKey(account, asset)))
	if errors.Is(err, database.ErrNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	b, _ := new(big.Int).SetString(string(v), 10)
	return b, nil
}

type testStorage map[string][]byte

func (s testStorage) GetValue(_ context.Context, key []byte) ([]byte, error) {
	v, ok := s[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func newView(a Action) *tstate.TStateView {
	funded := testStorage{
		balanceKey(actor, "BASE"): []byte("100"),
		balanceKey(pool, "TKN"):   []byte("50"),
	}
	return tstate.New(8).NewView(StateKeys(testPayments{}, a, actor), funded)
}

func requireBalance(t *testing.T, view state.Immutable, account codec.Address, asset market.TokenID, expected int64) {
	b, err := balance(context.Background(), view, account, asset)
	require.NoError(t, err)
	require.Zero(t, big.NewInt(expected).Cmp(b), "balance %s", b)
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name        string
		action      *testAction
		expectedErr error
		executed    bool
	}{
		{
			name: "pays and is paid",
			action: &testAction{
				payment:   &Transfer{Asset: "BASE", From: actor, To: pool, Amount: big.NewInt(10)},
				payout:    &Transfer{Asset: "TKN", From: pool, To: actor},
				transfers: []Transfer{{Asset: "TKN", From: pool, To: actor, Amount: big.NewInt(20)}},
			},
			executed: true,
		},
		{
			name: "verify runs before payment",
			action: &testAction{
				payment:   &Transfer{Asset: "BASE", From: actor, To: pool, Amount: big.NewInt(1_000)},
				verifyErr: errVerify,
			},
			expectedErr: errVerify,
		},
		{
			name: "non-positive payment",
			action: &testAction{
				payment: &Transfer{Asset: "BASE", From: actor, To: pool, Amount: big.NewInt(0)},
			},
			expectedErr: ErrInvalidPayment,
		},
		{
			name: "unpaid",
			action: &testAction{
				payment: &Transfer{Asset: "BASE", From: actor, To: pool, Amount: big.NewInt(101)},
			},
			expectedErr: ErrPaymentFailed,
		},
		{
			name: "execute fails",
			action: &testAction{
				payment: &Transfer{Asset: "BASE", From: actor, To: pool, Amount: big.NewInt(10)},
				execErr: errExecute,
			},
			expectedErr: errExecute,
			executed:    true,
		},
		{
			name: "undeclared transfer",
			action: &testAction{
				payment:   &Transfer{Asset: "BASE", From: actor, To: pool, Amount: big.NewInt(10)},
				payout:    &Transfer{Asset: "TKN", From: pool, To: actor},
				transfers: []Transfer{{Asset: "BASE", From: pool, To: actor, Amount: big.NewInt(20)}},
			},
			expectedErr: ErrUndeclaredTransfer,
			executed:    true,
		},
		{
			name: "payout exceeds reserve",
			action: &testAction{
				payment:   &Transfer{Asset: "BASE", From: actor, To: pool, Amount: big.NewInt(10)},
				payout:    &Transfer{Asset: "TKN", From: pool, To: actor},
				transfers: []Transfer{{Asset: "TKN", From: pool, To: actor, Amount: big.NewInt(51)}},
			},
			expectedErr: ErrTransferFailed,
			executed:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			view := newView(tt.action)

			result, err := Process(ctx, trace.Noop, view, testPayments{}, tt.action, actor)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.executed, tt.action.executed)
			if tt.expectedErr != nil {
				require.Nil(result)
				require.Zero(view.OpIndex())
				requireBalance(t, view, actor, "BASE", 100)
				requireBalance(t, view, pool, "TKN", 50)
				_, err := view.GetValue(ctx, markerKey)
				require.ErrorIs(err, database.ErrNotFound)
				return
			}
			require.Equal(uint8(1), result.Action)
			require.Equal(actor, result.Actor)
			requireBalance(t, view, actor, "BASE", 90)
			requireBalance(t, view, pool, "BASE", 10)
			requireBalance(t, view, actor, "TKN", 20)
			requireBalance(t, view, pool, "TKN", 30)
		})
	}
}

func TestStateKeys(t *testing.T) {
	a := &testAction{
		payment: &Transfer{Asset: "BASE", From: actor, To: pool},
		payout:  &Transfer{Asset: "TKN", From: pool, To: actor},
	}
	scope := StateKeys(testPayments{}, a, actor)
	require.Len(t, scope, 5)
	require.True(t, scope[balanceKey(pool, "TKN")].Has(state.Write))
}
