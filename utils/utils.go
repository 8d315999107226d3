// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/url"
	"os"
	"path"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

var (
	ErrInvalidSize   = errors.New("invalid size")
	ErrInvalidAmount = errors.New("invalid amount")
)

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

func ErrBytes(err error) []byte {
	return []byte(err.Error())
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

func GetHost(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	host, _, err := net.SplitHostPort(purl.Host)
	return host, err
}

func GetPort(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	return purl.Port(), err
}

// SaveBytes writes [b] to [filename] readable only by the owner.
func SaveBytes(filename string, b []byte) error {
	return os.WriteFile(filename, b, perms.ReadWrite)
}

// LoadBytes reads [filename] and checks that it holds exactly
// [expectedSize] bytes. A negative size skips the check.
func LoadBytes(filename string, expectedSize int) ([]byte, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if expectedSize >= 0 && len(b) != expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes but found %d", ErrInvalidSize, expectedSize, len(b))
	}
	return b, nil
}

// ParseAmount parses a non-negative integer amount. Underscores may be
// used as digit separators.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	return v, nil
}

// FormatRat renders [r] with [prec] decimal places, or "n/a" when it is
// undefined.
func FormatRat(r *big.Rat, prec int) string {
	if r == nil {
		return "n/a"
	}
	return r.FloatString(prec)
}

// FormatPercent renders a fraction as a percentage.
func FormatPercent(r *big.Rat, prec int) string {
	if r == nil {
		return "n/a"
	}
	return new(big.Rat).Mul(r, big.NewRat(100, 1)).FloatString(prec) + "%"
}
