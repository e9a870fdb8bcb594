//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package retry wraps dial and request operations against remote
// providers with exponential backoff, so a transient dial failure or a
// momentarily unreachable peer doesn't abort a refresh round or a CLI
// command outright.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultInitialInterval = 250 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
	defaultMaxElapsedTime  = 20 * time.Second
	defaultMultiplier      = 2.0
)

// Retrier executes an operation with backoff.
type Retrier interface {
	RetryWithBackoff(ctx context.Context, op func() error) error
}

// TypedRetrier adapts a Retrier to operations that return a value
// alongside an error, such as a dial result or a decoded share.
type TypedRetrier[T any] struct {
	retrier Retrier
}

// NewTypedRetrier creates a TypedRetrier wrapping the given base Retrier.
func NewTypedRetrier[T any](r Retrier) *TypedRetrier[T] {
	return &TypedRetrier[T]{retrier: r}
}

// RetryWithBackoff executes a typed operation with backoff.
func (r *TypedRetrier[T]) RetryWithBackoff(
	ctx context.Context,
	op func() (T, error),
) (T, error) {
	var result T
	err := r.retrier.RetryWithBackoff(ctx, func() error {
		var err error
		result, err = op()
		return err
	})
	return result, err
}

// NotifyFn is called after each failed attempt, before the next backoff
// sleep begins.
type NotifyFn func(err error, duration, totalDuration time.Duration)

// ExponentialRetrier implements Retrier using exponential backoff.
type ExponentialRetrier struct {
	newBackOff func() backoff.BackOff
	notify     NotifyFn
}

// RetrierOption configures an ExponentialRetrier.
type RetrierOption func(*ExponentialRetrier)

// BackOffOption configures the underlying ExponentialBackOff.
type BackOffOption func(*backoff.ExponentialBackOff)

// NewExponentialRetrier creates an ExponentialRetrier tuned for
// provider-to-provider network calls (short initial backoff, bounded
// total elapsed time so a refresh round doesn't stall indefinitely on
// one unreachable peer).
func NewExponentialRetrier(opts ...RetrierOption) *ExponentialRetrier {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultInitialInterval
	b.MaxInterval = defaultMaxInterval
	b.MaxElapsedTime = defaultMaxElapsedTime
	b.Multiplier = defaultMultiplier

	r := &ExponentialRetrier{
		newBackOff: func() backoff.BackOff {
			return b
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RetryWithBackoff implements Retrier.
func (r *ExponentialRetrier) RetryWithBackoff(
	ctx context.Context,
	operation func() error,
) error {
	b := r.newBackOff()
	totalDuration := time.Duration(0)
	return backoff.RetryNotify(
		operation,
		backoff.WithContext(b, ctx),
		func(err error, duration time.Duration) {
			totalDuration += duration
			if r.notify != nil {
				r.notify(err, duration, totalDuration)
			}
		},
	)
}

// WithBackOffOptions configures the backoff settings of the retrier
// being built.
func WithBackOffOptions(opts ...BackOffOption) RetrierOption {
	return func(r *ExponentialRetrier) {
		b := r.newBackOff().(*backoff.ExponentialBackOff)
		for _, opt := range opts {
			opt(b)
		}
	}
}

// WithInitialInterval sets the initial interval between retries.
func WithInitialInterval(d time.Duration) BackOffOption {
	return func(b *backoff.ExponentialBackOff) {
		b.InitialInterval = d
	}
}

// WithMaxInterval sets the maximum interval between retries.
func WithMaxInterval(d time.Duration) BackOffOption {
	return func(b *backoff.ExponentialBackOff) {
		b.MaxInterval = d
	}
}

// WithMaxElapsedTime sets the maximum total time spent retrying.
func WithMaxElapsedTime(d time.Duration) BackOffOption {
	return func(b *backoff.ExponentialBackOff) {
		b.MaxElapsedTime = d
	}
}

// WithMultiplier sets the multiplier applied to the interval after
// each failed attempt.
func WithMultiplier(m float64) BackOffOption {
	return func(b *backoff.ExponentialBackOff) {
		b.Multiplier = m
	}
}

// WithNotify sets the callback invoked after each failed attempt.
func WithNotify(fn NotifyFn) RetrierOption {
	return func(r *ExponentialRetrier) {
		r.notify = fn
	}
}
