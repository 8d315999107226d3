// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "github.com/ava-labs/avalanchego/version"

// TypeIDs for actions and their outputs
const (
	LaunchID uint8 = iota
	BuyID
	SellID
	TransferID
)

// ActionName returns the label used for action [id] in logs, metrics and
// the trade feed.
func ActionName(id uint8) string {
	switch id {
	case LaunchID:
		return "launch"
	case BuyID:
		return "buy"
	case SellID:
		return "sell"
	case TransferID:
		return "transfer"
	default:
		return "unknown"
	}
}

// TypeIDs for address generation
const (
	AccountID uint8 = iota
	MarketID
)

const (
	Name = "launchpad"
	HRP  = "lp"

	// BaseAsset is the identifier of the currency every market is priced in.
	BaseAsset = "BASE"
)

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
