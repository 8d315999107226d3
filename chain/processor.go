// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/state"
)

// View is the overlay an action executes on.
type View interface {
	state.Mutable

	OpIndex() int
	Rollback(ctx context.Context, restorePoint int)
}

// Result describes a processed action.
type Result struct {
	Action  uint8         `json:"action"`
	Actor   codec.Address `json:"actor"`
	Payment *Transfer     `json:"payment,omitempty"`
	Output  Output        `json:"output"`
}

// StateKeys returns every key processing [action] for [actor] may touch.
func StateKeys(payments Payments, action Action, actor codec.Address) state.Keys {
	keys := state.Keys{}
	keys.Union(action.StateKeys(actor))
	if payment := action.Payment(actor); payment != nil {
		keys.Union(payments.StateKeys(*payment))
	}
	if payout := action.Payout(actor); payout != nil {
		keys.Union(payments.StateKeys(*payout))
	}
	return keys
}

// Process collects [action]'s payment, executes it and applies the
// transfers it returns. If any step fails, [view] is rolled back to where
// it started.
func Process(
	ctx context.Context,
	tracer trace.Tracer, //nolint:interfacer
	view View,
	payments Payments,
	action Action,
	actor codec.Address,
) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Chain.Process", oteltrace.WithAttributes(
		attribute.Int("action", int(action.GetTypeID())),
	))
	defer span.End()

	start := view.OpIndex()
	result, err := process(ctx, view, payments, action, actor)
	if err != nil {
		view.Rollback(ctx, start)
		return nil, err
	}
	return result, nil
}

func process(
	ctx context.Context,
	view View,
	payments Payments,
	action Action,
	actor codec.Address,
) (*Result, error) {
	if err := action.Verify(); err != nil {
		return nil, err
	}
	payment := action.Payment(actor)
	if payment != nil {
		if payment.Amount == nil || payment.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
		}
		if err := payments.Collect(ctx, view, *payment); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
		}
	}
	output, err := action.Execute(ctx, view, actor)
	if err != nil {
		return nil, err
	}
	payout := action.Payout(actor)
	for _, t := range output.Transfers() {
		if payout == nil || !payout.SameRoute(t) {
			return nil, fmt.Errorf("%w: %s of %s from %s to %s", ErrUndeclaredTransfer, t.Amount, t.Asset, t.From, t.To)
		}
		if err := payments.Transfer(ctx, view, t); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
		}
	}
	return &Result{
		Action:  action.GetTypeID(),
		Actor:   actor,
		Payment: payment,
		Output:  output,
	}, nil
}
