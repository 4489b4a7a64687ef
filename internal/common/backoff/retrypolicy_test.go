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
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/require"
)

func Test_ExponentialRetryPolicy_StopsAtMaximumAttempts(t *testing.T) {
	require := require.New(t)
	policy := NewExponentialRetryPolicy(time.Millisecond).WithMaximumAttempts(3)
	r := NewRetrier(policy, SystemClock)

	for i := 0; i < 3; i++ {
		next := r.NextBackOff()
		require.NotEqual(done, next)
	}
	require.Equal(done, r.NextBackOff())
}

func Test_ExponentialRetryPolicy_StopsAtExpiration(t *testing.T) {
	require := require.New(t)
	fake := clock.NewMock()
	policy := NewExponentialRetryPolicy(time.Millisecond).WithExpirationInterval(time.Second)
	r := NewRetrier(policy, ClockAdapter{Clock: fake})

	require.NotEqual(done, r.NextBackOff())
	fake.Add(2 * time.Second)
	require.Equal(done, r.NextBackOff())
}

func Test_ExponentialRetryPolicy_RespectsMaximumInterval(t *testing.T) {
	require := require.New(t)
	policy := NewExponentialRetryPolicy(time.Second).
		WithBackoffCoefficient(10).
		WithMaximumInterval(2 * time.Second)
	r := NewRetrier(policy, SystemClock)

	for i := 0; i < 5; i++ {
		next := r.NextBackOff()
		require.LessOrEqual(next, 2*time.Second)
	}
}

func Test_Retrier_Reset(t *testing.T) {
	require := require.New(t)
	policy := NewExponentialRetryPolicy(time.Millisecond).WithMaximumAttempts(1)
	r := NewRetrier(policy, SystemClock)

	require.NotEqual(done, r.NextBackOff())
	require.Equal(done, r.NextBackOff())

	r.Reset()
	require.NotEqual(done, r.NextBackOff())
}

func Test_ConcurrentRetrier_SucceededResetsFailureCount(t *testing.T) {
	require := require.New(t)
	policy := NewExponentialRetryPolicy(time.Millisecond)
	cr := NewConcurrentRetrier(policy)

	cr.Failed()
	cr.Failed()
	cr.Succeeded()
	require.Equal(int64(0), cr.failureCount)
}
