// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/chain"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/curve"
	"github.com/ava-labs/launchpad/market"
)

const namespace = "launchpad_vm"

type Metrics struct {
	processed    *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	launched     prometheus.Counter
	deposits     prometheus.Counter
	stateChanges prometheus.Counter
	execute      metric.Averager
}

func newMetrics() (*prometheus.Registry, *Metrics, error) {
	r := prometheus.NewRegistry()

	execute, err := metric.NewAverager(
		"",
		namespace+"_execute",
		"time spent executing actions",
		r,
	)
	if err != nil {
		return nil, nil, err
	}

	m := &Metrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_processed",
			Help:      "number of actions committed",
		}, []string{"action"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_rejected",
			Help:      "number of actions rolled back",
		}, []string{"action", "reason"}),
		launched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "markets_launched",
			Help:      "number of markets launched",
		}),
		deposits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deposits",
			Help:      "number of faucet deposits",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes",
			Help:      "number of keys written",
		}),
		execute: execute,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.processed),
		r.Register(m.rejected),
		r.Register(m.launched),
		r.Register(m.deposits),
		r.Register(m.stateChanges),
	)
	return r, m, errs.Err
}

func (m *Metrics) recordProcessed(action uint8, changes int, start time.Time) {
	m.processed.WithLabelValues(consts.ActionName(action)).Inc()
	m.stateChanges.Add(float64(changes))
	m.execute.Observe(float64(time.Since(start)))
	if action == consts.LaunchID {
		m.launched.Inc()
	}
}

func (m *Metrics) recordRejected(action uint8, err error) {
	m.rejected.WithLabelValues(consts.ActionName(action), rejectReason(err)).Inc()
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, actions.ErrOutputSlippageExceeded):
		return "slippage"
	case errors.Is(err, curve.ErrInsolventMarket):
		return "insolvent"
	case errors.Is(err, curve.ErrCurveExhausted):
		return "exhausted"
	case errors.Is(err, curve.ErrInsufficientOutput):
		return "no_output"
	case errors.Is(err, market.ErrMarketNotFound):
		return "not_found"
	case errors.Is(err, chain.ErrPaymentFailed), errors.Is(err, chain.ErrInvalidPayment):
		return "payment"
	case errors.Is(err, market.ErrInvalidLaunch):
		return "invalid_launch"
	default:
		return "other"
	}
}
