// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package backoff

import (
	"math/rand"
	"time"

	"github.com/facebookgo/clock"
)

// done is returned by Retrier.NextBackOff to signal that no further retry
// should be attempted.
const done time.Duration = -1

type (
	// Clock is the interface the retrier uses for the current time, so that
	// tests can substitute a fake clock instead of waiting in real time.
	Clock interface {
		Now() time.Time
	}

	// RetryPolicy describes how to compute successive backoff intervals.
	RetryPolicy interface {
		ComputeNextDelay(elapsedTime time.Duration, numAttempts int) time.Duration
	}

	// Retrier hands out successive backoff durations for one retry sequence,
	// returning `done` once the policy gives up.
	Retrier interface {
		NextBackOff() time.Duration
		Reset()
	}

	// ExponentialRetryPolicy computes an exponentially increasing backoff
	// interval, optionally capped, with full jitter applied to each interval.
	ExponentialRetryPolicy struct {
		initialInterval    time.Duration
		backoffCoefficient float64
		maximumInterval    time.Duration
		expirationInterval time.Duration
		maximumAttempts    int
	}

	systemClock struct{}

	retrier struct {
		policy         RetryPolicy
		clock          Clock
		currentAttempt int
		startTime      time.Time
	}
)

// SystemClock is a Clock backed by the real wall clock.
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// NewExponentialRetryPolicy creates an ExponentialRetryPolicy with the given
// initial interval. Defaults mirror the teacher's history long-poll backoff:
// coefficient 2, no cap on interval or attempts, unbounded expiration.
func NewExponentialRetryPolicy(initialInterval time.Duration) *ExponentialRetryPolicy {
	return &ExponentialRetryPolicy{
		initialInterval:    initialInterval,
		backoffCoefficient: 2.0,
		maximumInterval:    0,
		expirationInterval: 0,
		maximumAttempts:    0,
	}
}

// WithBackoffCoefficient sets the multiplier applied to the interval after
// each attempt.
func (p *ExponentialRetryPolicy) WithBackoffCoefficient(coefficient float64) *ExponentialRetryPolicy {
	p.backoffCoefficient = coefficient
	return p
}

// WithMaximumInterval caps the computed interval; zero means uncapped.
func (p *ExponentialRetryPolicy) WithMaximumInterval(maximumInterval time.Duration) *ExponentialRetryPolicy {
	p.maximumInterval = maximumInterval
	return p
}

// WithExpirationInterval caps the total elapsed retry time; zero means unbounded.
func (p *ExponentialRetryPolicy) WithExpirationInterval(expirationInterval time.Duration) *ExponentialRetryPolicy {
	p.expirationInterval = expirationInterval
	return p
}

// WithMaximumAttempts caps the number of attempts; zero means unbounded.
func (p *ExponentialRetryPolicy) WithMaximumAttempts(maximumAttempts int) *ExponentialRetryPolicy {
	p.maximumAttempts = maximumAttempts
	return p
}

// ComputeNextDelay implements RetryPolicy.
func (p *ExponentialRetryPolicy) ComputeNextDelay(elapsedTime time.Duration, numAttempts int) time.Duration {
	if p.maximumAttempts > 0 && numAttempts >= p.maximumAttempts {
		return done
	}
	if p.expirationInterval > 0 && elapsedTime > p.expirationInterval {
		return done
	}

	interval := float64(p.initialInterval) * pow(p.backoffCoefficient, numAttempts)
	if p.maximumInterval > 0 && interval > float64(p.maximumInterval) {
		interval = float64(p.maximumInterval)
	}
	if interval < 0 {
		return done
	}

	// full jitter, as the teacher's history poller does for long-poll retries.
	jittered := time.Duration(rand.Int63n(int64(interval) + 1))
	return jittered
}

func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// NewRetrier creates a Retrier bound to policy, using clk to measure elapsed time.
func NewRetrier(policy RetryPolicy, clk Clock) Retrier {
	return &retrier{
		policy:    policy,
		clock:     clk,
		startTime: clk.Now(),
	}
}

func (r *retrier) NextBackOff() time.Duration {
	next := r.policy.ComputeNextDelay(r.clock.Now().Sub(r.startTime), r.currentAttempt)
	r.currentAttempt++
	return next
}

func (r *retrier) Reset() {
	r.currentAttempt = 0
	r.startTime = r.clock.Now()
}

// ClockAdapter adapts a facebookgo/clock.Clock (real or fake) to the Clock
// interface Retrier consumes, letting tests drive backoff timing manually
// instead of sleeping in real time.
type ClockAdapter struct {
	Clock clock.Clock
}

// Now implements Clock.
func (a ClockAdapter) Now() time.Time {
	return a.Clock.Now()
}
