// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"fmt"
	"strings"

	"github.com/ava-labs/launchpad/consts"
)

const (
	MinTickerLen = 3
	MaxTickerLen = 10
	SuffixLen    = 6

	// MaxTokenIDLen is the longest identifier [TokenID.Validate] accepts.
	MaxTokenIDLen = MaxTickerLen + 1 + SuffixLen
)

// Base is the asset every market is priced in. It can never be launched.
const Base TokenID = consts.BaseAsset

// TokenID identifies a traded asset. It is either a bare ticker such as
// "TKN" or a ticker with a random suffix such as "TKN-a1b2c3".
type TokenID string

func ParseTokenID(s string) (TokenID, error) {
	t := TokenID(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks the syntax of t. It does not reject [Base]; see
// [TokenID.Launchable].
func (t TokenID) Validate() error {
	ticker, suffix, hasSuffix := strings.Cut(string(t), "-")
	if len(ticker) < MinTickerLen || len(ticker) > MaxTickerLen {
		return fmt.Errorf("%w: ticker %q must be %d to %d characters", ErrInvalidTokenID, ticker, MinTickerLen, MaxTickerLen)
	}
	for _, c := range ticker {
		if !isUpperAlphanumeric(c) {
			return fmt.Errorf("%w: ticker %q must be upper-case alphanumeric", ErrInvalidTokenID, ticker)
		}
	}
	if !hasSuffix {
		return nil
	}
	if len(suffix) != SuffixLen {
		return fmt.Errorf("%w: suffix %q must be %d characters", ErrInvalidTokenID, suffix, SuffixLen)
	}
	for _, c := range suffix {
		if !isLowerHex(c) {
			return fmt.Errorf("%w: suffix %q must be lower-case hex", ErrInvalidTokenID, suffix)
		}
	}
	return nil
}

// Launchable returns nil if a market may be created for t.
func (t TokenID) Launchable() error {
	if t == Base {
		return fmt.Errorf("%w: %s is reserved", ErrInvalidTokenID, Base)
	}
	return t.Validate()
}

// Ticker returns the part of t before the suffix.
func (t TokenID) Ticker() string {
	ticker, _, _ := strings.Cut(string(t), "-")
	return ticker
}

func (t TokenID) String() string {
	return string(t)
}

func isUpperAlphanumeric(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isLowerHex(c rune) bool {
	return (c >= 'a' && c <= 'f') || (c >= '0' && c <= '9')
}
