// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"slices"
	"strings"
)

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys holds every key an operation may touch and the permission it holds
// on each. Use [Keys.Add] so that repeated declarations are unioned rather
// than overwritten.
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

// Add unions [permission] into the permissions already held on [name].
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Union merges every key of [other] into k.
func (k Keys) Union(other Keys) {
	for name, perm := range other {
		k.Add(name, perm)
	}
}

// Sorted returns the keys in lexicographic order. Locks acquired in this
// order cannot deadlock against each other.
func (k Keys) Sorted() []string {
	names := make([]string, 0, len(k))
	for name := range k {
		names = append(names, name)
	}
	slices.SortFunc(names, strings.Compare)
	return names
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

func (p Permissions) String() string {
	switch p {
	case Read:
		return "read"
	case Allocate:
		return "allocate"
	case Write:
		return "write"
	case All:
		return "all"
	case None:
		return "none"
	default:
		return "unknown"
	}
}
