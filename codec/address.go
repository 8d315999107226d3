// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting/address"
)

const AddressLen = 33

// Address identifies an account or a market. The first byte is the type of
// entity the address was derived for.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// ToAddress copies [b] into an [Address]. [b] must be exactly [AddressLen]
// bytes long.
func ToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, fmt.Errorf("%w: expected %d bytes but found %d", ErrInvalidSize, AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// TypeID returns the entity type the address was derived for.
func (a Address) TypeID() uint8 {
	return a[0]
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	decoded, err := hex.DecodeString(strings.TrimPrefix(string(input), "0x"))
	if err != nil {
		return err
	}
	parsed, err := ToAddress(decoded)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// StringToAddress parses the hex form produced by [Address.String].
func StringToAddress(s string) (Address, error) {
	var a Address
	return a, a.UnmarshalText([]byte(s))
}

// FormatAddress renders [a] as a bech32 string with human readable part [hrp].
func FormatAddress(hrp string, a Address) (string, error) {
	return address.FormatBech32(hrp, a[:])
}

// ParseAddress parses a bech32 address and checks its human readable part.
func ParseAddress(hrp string, s string) (Address, error) {
	phrp, b, err := address.ParseBech32(s)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, fmt.Errorf("%w: expected %q but found %q", ErrIncorrectHRP, hrp, phrp)
	}
	return ToAddress(b)
}

// ParseAnyAddress accepts either the hex form or the bech32 form of an
// address.
func ParseAnyAddress(hrp string, s string) (Address, error) {
	if strings.HasPrefix(s, "0x") {
		return StringToAddress(s)
	}
	return ParseAddress(hrp, s)
}
