// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
)

const (
	MetadataVersion = 0

	MinNameLen        = 3
	MaxNameLen        = 30
	MaxDescriptionLen = 500
	MaxImageURLLen    = 256

	MaxMetadataSize = consts.ByteLen + 3*consts.Uint16Len + MaxNameLen + MaxDescriptionLen + MaxImageURLLen
)

var imageSchemes = []string{"https", "http", "ipfs"}

// Metadata describes a token for display. It is optional and written once,
// together with the market.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageURL,omitempty"`
}

func (m *Metadata) Validate() error {
	if l := len(m.Name); l < MinNameLen || l > MaxNameLen {
		return fmt.Errorf("%w: name must be %d to %d bytes", ErrInvalidMetadata, MinNameLen, MaxNameLen)
	}
	if strings.TrimSpace(m.Name) != m.Name {
		return fmt.Errorf("%w: name has surrounding spaces", ErrInvalidMetadata)
	}
	if len(m.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d bytes", ErrInvalidMetadata, MaxDescriptionLen)
	}
	if m.ImageURL == "" {
		return nil
	}
	if len(m.ImageURL) > MaxImageURLLen {
		return fmt.Errorf("%w: image url exceeds %d bytes", ErrInvalidMetadata, MaxImageURLLen)
	}
	u, err := url.Parse(m.ImageURL)
	if err != nil {
		return fmt.Errorf("%w: image url: %w", ErrInvalidMetadata, err)
	}
	for _, scheme := range imageSchemes {
		if u.Scheme == scheme && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: image url must be an absolute http, https or ipfs url", ErrInvalidMetadata)
}

func (m *Metadata) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	p := codec.NewWriter(MaxMetadataSize, MaxMetadataSize)
	p.PackByte(MetadataVersion)
	p.PackString(m.Name)
	p.PackString(m.Description)
	p.PackString(m.ImageURL)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	return p.Bytes(), nil
}

func UnmarshalMetadata(b []byte) (*Metadata, error) {
	p := codec.NewReader(b, MaxMetadataSize)
	if v := p.UnpackByte(); p.Err() == nil && v != MetadataVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, v)
	}
	var m Metadata
	m.Name = p.UnpackString(true)
	m.Description = p.UnpackString(false)
	m.ImageURL = p.UnpackString(false)
	if err := p.Done(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
