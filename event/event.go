// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrFeedClosed = errors.New("feed closed")

	_ Subscription[struct{}] = (*SubscriptionFunc[struct{}])(nil)
)

// Subscription defines how to consume events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
	// Close returns fatal errors
	Close() error
}

type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (SubscriptionFunc[_]) Close() error {
	return nil
}

// Feed fans events out to a changing set of subscriptions.
type Feed[T any] struct {
	lock   sync.RWMutex
	nextID uint64
	subs   map[uint64]Subscription[T]
	closed bool
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{
		subs: make(map[uint64]Subscription[T]),
	}
}

// Subscribe adds [sub] to the feed. The returned func removes and closes
// it.
func (f *Feed[T]) Subscribe(sub Subscription[T]) (func() error, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.closed {
		return nil, ErrFeedClosed
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = sub

	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			f.lock.Lock()
			_, ok := f.subs[id]
			delete(f.subs, id)
			f.lock.Unlock()
			if ok {
				err = sub.Close()
			}
		})
		return err
	}, nil
}

// Notify delivers [e] to every subscription and joins their errors.
func (f *Feed[T]) Notify(ctx context.Context, e T) error {
	f.lock.RLock()
	defer f.lock.RUnlock()

	var errs []error
	for _, sub := range f.subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Feed[T]) Len() int {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return len(f.subs)
}

// Close closes every subscription. Later calls to [Subscribe] fail.
func (f *Feed[T]) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	var errs []error
	for id, sub := range f.subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(f.subs, id)
	}
	return errors.Join(errs...)
}
