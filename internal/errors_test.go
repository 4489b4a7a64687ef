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

package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	enumspb "go.temporal.io/api/enums/v1"
)

func Test_ApplicationError_DetailsRoundTrip(t *testing.T) {
	require := require.New(t)
	err := NewApplicationError("boom", false, nil, "a", 7)
	require.True(err.HasDetails())

	var s string
	var n int
	require.NoError(err.Details(&s, &n))
	require.Equal("a", s)
	require.Equal(7, n)
}

func Test_ApplicationError_NoDetails(t *testing.T) {
	require := require.New(t)
	err := NewApplicationError("boom", true, nil)
	require.False(err.HasDetails())
	require.Equal(ErrNoData, err.Details())
	require.True(err.NonRetryable())
}

func Test_TimeoutError_HeartbeatDetails(t *testing.T) {
	require := require.New(t)
	err := NewHeartbeatTimeoutError("progress")
	require.Equal(enumspb.TIMEOUT_TYPE_HEARTBEAT, err.TimeoutType())
	require.True(err.HasLastHeartbeatDetails())

	var s string
	require.NoError(err.LastHeartbeatDetails(&s))
	require.Equal("progress", s)
}

func Test_CanceledError_IsCanceledError(t *testing.T) {
	require := require.New(t)
	err := NewCanceledError("reason")
	require.True(IsCanceledError(err))
	require.False(IsCanceledError(errors.New("other")))

	var s string
	require.NoError(err.Details(&s))
	require.Equal("reason", s)
}

func Test_PanicError_Error(t *testing.T) {
	require := require.New(t)
	err := newPanicError("kaboom", "stack trace here")
	require.Equal("kaboom", err.Error())
	require.Equal("stack trace here", err.StackTrace())
}

func Test_WFMachinesError_Kind(t *testing.T) {
	require := require.New(t)

	nd := NewNondeterminismError("history diverged")
	require.Equal(WFMachinesNondeterminism, nd.Kind())
	require.True(IsNondeterminismError(nd))
	require.False(IsCacheMissError(nd))

	fatal := NewFatalWFMachinesError("invariant violated")
	require.Equal(WFMachinesFatal, fatal.Kind())

	miss := NewCacheMissError("run not in cache")
	require.True(IsCacheMissError(miss))

	hf := NewHistoryFetchingError(errors.New("transport down"))
	require.Equal(WFMachinesHistoryFetchingError, hf.Kind())
	require.Equal("transport down", errors.Unwrap(hf).Error())
}

func Test_WFMachinesErrorKind_String(t *testing.T) {
	require := require.New(t)
	require.Equal("Nondeterminism", WFMachinesNondeterminism.String())
	require.Equal("Fatal", WFMachinesFatal.String())
	require.Equal("HistoryFetchingError", WFMachinesHistoryFetchingError.String())
	require.Equal("CacheMiss", WFMachinesCacheMiss.String())
}
