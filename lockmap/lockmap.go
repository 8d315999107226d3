// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lockmap provides reader/writer locks keyed by state key. Entries
// are created on first use and dropped once no holder remains.
package lockmap

import (
	"sync"

	"github.com/ava-labs/launchpad/state"
)

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

type Lockmap struct {
	l sync.Mutex
	m map[string]*holderLock
}

func New(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[string]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key string) {
	l.lock(key, true)
}

func (l *Lockmap) Unlock(key string) {
	l.unlock(key, true)
}

func (l *Lockmap) RLock(key string) {
	l.lock(key, false)
}

func (l *Lockmap) RUnlock(key string) {
	l.unlock(key, false)
}

// LockKeys acquires every key of [scope] in sorted order. Keys that are only
// read are shared; all others are exclusive. The returned func releases
// them.
func (l *Lockmap) LockKeys(scope state.Keys) func() {
	names := scope.Sorted()
	for _, name := range names {
		l.lock(name, exclusive(scope[name]))
	}
	return func() {
		for i := len(names) - 1; i >= 0; i-- {
			l.unlock(names[i], exclusive(scope[names[i]]))
		}
	}
}

func exclusive(p state.Permissions) bool {
	return p != state.Read
}

func (l *Lockmap) lock(key string, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if !ok {
		hl = &holderLock{}
		l.m[key] = hl
	}
	hl.holders++
	l.l.Unlock()

	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
}

func (l *Lockmap) unlock(key string, write bool) {
	l.l.Lock()
	hl := l.m[key]
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, key)
	}
	l.l.Unlock()

	if write {
		hl.mu.Unlock()
	} else {
		hl.mu.RUnlock()
	}
}

// Locks returns the number of keys currently held or awaited.
func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
