// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/event"
	"github.com/ava-labs/launchpad/lockmap"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/state"
	"github.com/ava-labs/launchpad/storage"
	"github.com/ava-labs/launchpad/tstate"

	lptrace "github.com/ava-labs/launchpad/trace"
)

// VM hosts every market. It executes one action at a time per set of
// touched keys and commits each successful action as a single batch.
type VM struct {
	config Config
	log    logging.Logger
	tracer trace.Tracer

	db       storage.Database
	payments chain.Payments
	locks    *lockmap.Lockmap

	// launchLock orders launches so that each one knows its position in
	// the launched list before it executes.
	launchLock sync.Mutex

	// closeLock is held for reading by every in-flight action.
	closeLock sync.RWMutex
	closed    atomic.Bool

	// results receives every committed action.
	results *event.Feed[*chain.Result]

	metrics  *Metrics
	gatherer prometheus.Gatherer
}

// New opens the state database and returns a ready VM.
func New(config Config, log logging.Logger) (*VM, error) {
	db, dbGatherer, err := storage.New(config.DatabaseConfig, config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewWithDatabase(config, log, db, dbGatherer)
}

// NewWithDatabase returns a VM over an already opened [db]. The VM takes
// ownership of [db].
func NewWithDatabase(
	config Config,
	log logging.Logger,
	db storage.Database,
	dbGatherer prometheus.Gatherer,
) (*VM, error) {
	tracer, err := lptrace.New(&config.TraceConfig)
	if err != nil {
		return nil, err
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, err
	}
	gatherer := prometheus.Gatherers{registry}
	if dbGatherer != nil {
		gatherer = append(gatherer, dbGatherer)
	}
	log.Info("initialized vm",
		zap.String("dataDir", config.DataDir),
		zap.Bool("faucet", config.EnableFaucet),
		zap.Bool("tracing", config.TraceConfig.Enabled),
	)
	return &VM{
		config:   config,
		log:      log,
		tracer:   tracer,
		db:       db,
		payments: &Ledger{},
		locks:    lockmap.New(config.LockMapSize),
		results:  event.NewFeed[*chain.Result](),
		metrics:  metrics,
		gatherer: gatherer,
	}, nil
}

func (vm *VM) Gatherer() prometheus.Gatherer {
	return vm.gatherer
}

func (vm *VM) Logger() logging.Logger {
	return vm.log
}

func (vm *VM) Tracer() trace.Tracer {
	return vm.tracer
}

// Subscribe registers [sub] for every committed action. Rejected actions
// are never delivered.
func (vm *VM) Subscribe(sub event.Subscription[*chain.Result]) (func() error, error) {
	if vm.closed.Load() {
		return nil, ErrClosed
	}
	return vm.results.Subscribe(sub)
}

// Launch creates [token]'s market funded with [amount] of the token taken
// from [actor]. [metadata] may be nil.
func (vm *VM) Launch(
	ctx context.Context,
	actor codec.Address,
	token market.TokenID,
	amount *big.Int,
	virtualBase *big.Int,
	metadata *market.Metadata,
) (*actions.LaunchResult, error) {
	vm.launchLock.Lock()
	defer vm.launchLock.Unlock()

	index, err := storage.LaunchedCount(ctx, vm.reader())
	if err != nil {
		return nil, err
	}
	result, err := vm.execute(ctx, &actions.Launch{
		Token:       token,
		Amount:      amount,
		VirtualBase: virtualBase,
		Metadata:    metadata,
		Index:       index,
	}, actor)
	if err != nil {
		return nil, err
	}
	vm.log.Info("launched market",
		zap.Stringer("token", token),
		zap.Stringer("creator", actor),
		zap.Stringer("supply", amount),
		zap.Stringer("virtualBase", virtualBase),
		zap.Uint64("index", index),
	)
	return outputAs[*actions.LaunchResult](result)
}

// Buy spends [amount] of the base asset on [token].
func (vm *VM) Buy(
	ctx context.Context,
	actor codec.Address,
	token market.TokenID,
	amount *big.Int,
	minAmountOut *big.Int,
) (*actions.BuyResult, error) {
	result, err := vm.execute(ctx, &actions.Buy{
		Token:        token,
		Amount:       amount,
		MinAmountOut: minAmountOut,
	}, actor)
	if err != nil {
		return nil, err
	}
	return outputAs[*actions.BuyResult](result)
}

// Sell returns [amount] of [asset] to its market.
func (vm *VM) Sell(
	ctx context.Context,
	actor codec.Address,
	asset market.TokenID,
	amount *big.Int,
	minAmountOut *big.Int,
) (*actions.SellResult, error) {
	result, err := vm.execute(ctx, &actions.Sell{
		Asset:        asset,
		Amount:       amount,
		MinAmountOut: minAmountOut,
	}, actor)
	if err != nil {
		return nil, err
	}
	return outputAs[*actions.SellResult](result)
}

func (vm *VM) Transfer(
	ctx context.Context,
	actor codec.Address,
	to codec.Address,
	asset market.TokenID,
	amount *big.Int,
) (*actions.TransferResult, error) {
	result, err := vm.execute(ctx, &actions.Transfer{
		To:     to,
		Asset:  asset,
		Amount: amount,
	}, actor)
	if err != nil {
		return nil, err
	}
	return outputAs[*actions.TransferResult](result)
}

// Deposit credits [account] with [amount] of [asset] out of thin air.
func (vm *VM) Deposit(
	ctx context.Context,
	account codec.Address,
	asset market.TokenID,
	amount *big.Int,
) (*big.Int, error) {
	if !vm.config.EnableFaucet {
		return nil, ErrFaucetDisabled
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidDeposit)
	}
	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeposit, err)
	}

	ctx, span := vm.tracer.Start(ctx, "VM.Deposit")
	defer span.End()

	scope := state.Keys{string(storage.BalanceKey(account, asset)): state.All}
	var balance *big.Int
	if err := vm.write(ctx, scope, func(view *tstate.TStateView) error {
		var err error
		balance, err = storage.AddBalance(ctx, view, account, asset, amount)
		return err
	}); err != nil {
		return nil, err
	}
	vm.metrics.deposits.Inc()
	vm.log.Debug("deposited",
		zap.Stringer("account", account),
		zap.Stringer("asset", asset),
		zap.Stringer("amount", amount),
	)
	return balance, nil
}

// Quote prices a trade without executing it.
func (vm *VM) Quote(
	ctx context.Context,
	token market.TokenID,
	amount *big.Int,
	isBuy bool,
) (*actions.QuoteResult, error) {
	if vm.closed.Load() {
		return nil, ErrClosed
	}
	unlock := vm.readLock(token)
	defer unlock()
	return actions.Quote(ctx, vm.reader(), token, amount, isBuy)
}

func (vm *VM) Market(ctx context.Context, token market.TokenID) (*actions.MarketInfo, error) {
	if vm.closed.Load() {
		return nil, ErrClosed
	}
	unlock := vm.readLock(token)
	defer unlock()
	return actions.GetMarketInfo(ctx, vm.reader(), token)
}

// LaunchedTokens returns up to [limit] tokens in launch order starting at
// [offset]. A limit of 0 returns all of them.
func (vm *VM) LaunchedTokens(ctx context.Context, offset, limit uint64) ([]market.TokenID, error) {
	if vm.closed.Load() {
		return nil, ErrClosed
	}
	return storage.Launched(ctx, vm.reader(), offset, limit)
}

func (vm *VM) Balance(ctx context.Context, account codec.Address, asset market.TokenID) (*big.Int, error) {
	if vm.closed.Load() {
		return nil, ErrClosed
	}
	return storage.GetBalance(ctx, vm.reader(), account, asset)
}

// Close waits for in-flight actions and closes the database.
func (vm *VM) Close() error {
	vm.closeLock.Lock()
	defer vm.closeLock.Unlock()

	if !vm.closed.CompareAndSwap(false, true) {
		return nil
	}
	errs := wrappers.Errs{}
	errs.Add(
		vm.results.Close(),
		vm.db.Close(),
		vm.tracer.Close(),
	)
	if errs.Errored() {
		vm.log.Error("failed to close vm", zap.Error(errs.Err))
		return errs.Err
	}
	vm.log.Info("closed vm")
	return nil
}

// readLock holds [token]'s market shared so a read never observes a
// trade in progress.
func (vm *VM) readLock(token market.TokenID) func() {
	key := string(storage.MarketKey(token))
	vm.locks.RLock(key)
	return func() {
		vm.locks.RUnlock(key)
	}
}

func (vm *VM) reader() state.Immutable {
	return state.NewReader(vm.db)
}

// execute runs [action] for [actor] and commits its changes. Nothing is
// written if it fails.
func (vm *VM) execute(ctx context.Context, action chain.Action, actor codec.Address) (*chain.Result, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.execute")
	defer span.End()

	start := time.Now()
	scope := chain.StateKeys(vm.payments, action, actor)
	var result *chain.Result
	err := vm.write(ctx, scope, func(view *tstate.TStateView) error {
		var err error
		result, err = chain.Process(ctx, vm.tracer, view, vm.payments, action, actor)
		return err
	})
	if err != nil {
		vm.metrics.recordRejected(action.GetTypeID(), err)
		vm.log.Debug("rejected action",
			zap.String("action", consts.ActionName(action.GetTypeID())),
			zap.Stringer("actor", actor),
			zap.Error(err),
		)
		return nil, err
	}
	vm.metrics.recordProcessed(action.GetTypeID(), len(scope), start)
	if err := vm.results.Notify(ctx, result); err != nil {
		vm.log.Warn("failed to notify subscribers",
			zap.String("action", consts.ActionName(action.GetTypeID())),
			zap.Error(err),
		)
	}
	return result, nil
}

// write locks [scope], applies [f] to a view limited to it and writes the
// resulting changes in one batch.
func (vm *VM) write(ctx context.Context, scope state.Keys, f func(*tstate.TStateView) error) error {
	vm.closeLock.RLock()
	defer vm.closeLock.RUnlock()
	if vm.closed.Load() {
		return ErrClosed
	}
	if err := storage.VerifyScope(scope); err != nil {
		return err
	}

	unlock := vm.locks.LockKeys(scope)
	defer unlock()

	ts := tstate.New(len(scope))
	view := ts.NewView(scope, vm.reader())
	if err := f(view); err != nil {
		return err
	}
	view.Commit()

	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(ctx, batch); err != nil {
		return err
	}
	return batch.Write()
}

func outputAs[T chain.Output](result *chain.Result) (T, error) {
	out, ok := result.Output.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %T", ErrUnexpectedType, result.Output)
	}
	return out, nil
}
