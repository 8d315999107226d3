// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"
	"math/big"

	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// Packer is a wrapper struct for the Packer struct
// from avalanchego/utils/wrappers/packing.go. It adds the ability to pack
// addresses and arbitrary-precision integers, and to require fields to be
// populated.
type Packer struct {
	p *wrappers.Packer
}

// NewReader returns a Packer instance with the current byte array [src]
// and a maximum byte length [limit].
func NewReader(src []byte, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{Bytes: src, MaxSize: limit},
	}
}

// NewWriter returns a Packer instance with an initial size of [initial] and
// a maximum byte length [limit].
func NewWriter(initial, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{MaxSize: limit, Bytes: make([]byte, 0, initial)},
	}
}

func (p *Packer) PackByte(b byte) {
	p.p.PackByte(b)
}

func (p *Packer) UnpackByte() byte {
	return p.p.UnpackByte()
}

func (p *Packer) PackBool(b bool) {
	p.p.PackBool(b)
}

func (p *Packer) UnpackBool() bool {
	return p.p.UnpackBool()
}

func (p *Packer) PackUint64(v uint64) {
	p.p.PackLong(v)
}

func (p *Packer) UnpackUint64(required bool) uint64 {
	v := p.p.UnpackLong()
	if required && v == 0 {
		p.addErr(fmt.Errorf("%w: Uint64 field is not populated", ErrFieldNotPopulated))
	}
	return v
}

func (p *Packer) PackString(s string) {
	p.p.PackStr(s)
}

func (p *Packer) UnpackString(required bool) string {
	str := p.p.UnpackStr()
	if required && len(str) == 0 {
		p.addErr(fmt.Errorf("%w: String field is not populated", ErrFieldNotPopulated))
	}
	return str
}

func (p *Packer) PackAddress(a Address) {
	p.p.PackFixedBytes(a[:])
}

func (p *Packer) UnpackAddress(dest *Address) {
	copy((*dest)[:], p.p.UnpackFixedBytes(AddressLen))
}

// PackBigInt packs a non-negative integer as its minimal big-endian
// magnitude prefixed by its length.
func (p *Packer) PackBigInt(v *big.Int) {
	if v == nil {
		p.addErr(fmt.Errorf("%w: BigInt field is nil", ErrFieldNotPopulated))
		return
	}
	if v.Sign() < 0 {
		p.addErr(fmt.Errorf("%w: %s", ErrNegativeInteger, v))
		return
	}
	p.p.PackBytes(v.Bytes())
}

// UnpackBigInt reads an integer written by [PackBigInt]. The magnitude may
// not exceed [limit] bytes and must not carry leading zero bytes.
func (p *Packer) UnpackBigInt(limit int) *big.Int {
	b := p.p.UnpackBytes()
	switch {
	case len(b) > limit:
		p.addErr(fmt.Errorf("%w: integer is %d bytes (limit=%d)", ErrInvalidSize, len(b), limit))
		return new(big.Int)
	case len(b) > 0 && b[0] == 0:
		p.addErr(ErrNonCanonical)
		return new(big.Int)
	}
	return new(big.Int).SetBytes(b)
}

func (p *Packer) Bytes() []byte {
	return p.p.Bytes
}

func (p *Packer) Offset() int {
	return p.p.Offset
}

func (p *Packer) Err() error {
	return p.p.Err
}

// Empty returns true if all bytes have been read.
func (p *Packer) Empty() bool {
	return p.p.Offset == len(p.p.Bytes)
}

// Done records [ErrTrailingBytes] if the reader has unread input.
func (p *Packer) Done() error {
	if p.p.Err == nil && !p.Empty() {
		p.addErr(fmt.Errorf("%w: %d unread", ErrTrailingBytes, len(p.p.Bytes)-p.p.Offset))
	}
	return p.p.Err
}

func (p *Packer) addErr(err error) {
	p.p.Add(err)
}
