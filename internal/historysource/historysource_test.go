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

package historysource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	commonpb "go.temporal.io/api/common/v1"
	historypb "go.temporal.io/api/history/v1"
	"go.temporal.io/api/workflowservice/v1"

	"github.com/temporal-replay/replaycore/internal/common/backoff"
)

type fakeClient struct {
	pages      [][]*historypb.HistoryEvent
	tokens     [][]byte
	calls      int
	failOnce   bool
	failedOnce bool
}

func (f *fakeClient) GetWorkflowExecutionHistory(ctx context.Context, in *workflowservice.GetWorkflowExecutionHistoryRequest, opts ...grpc.CallOption) (*workflowservice.GetWorkflowExecutionHistoryResponse, error) {
	if f.failOnce && !f.failedOnce {
		f.failedOnce = true
		return nil, status.Error(codes.Unavailable, "transient")
	}
	idx := f.calls
	f.calls++
	if idx >= len(f.pages) {
		return &workflowservice.GetWorkflowExecutionHistoryResponse{History: &historypb.History{}}, nil
	}
	return &workflowservice.GetWorkflowExecutionHistoryResponse{
		History:       &historypb.History{Events: f.pages[idx]},
		NextPageToken: f.tokens[idx],
	}, nil
}

func newTestSource(client Client) *Source {
	return NewSource(Options{
		Client:      client,
		Namespace:   "ns",
		Execution:   &commonpb.WorkflowExecution{WorkflowId: "wf", RunId: "run"},
		RateLimit:   rate.Inf,
		RetryPolicy: backoff.NewExponentialRetryPolicy(0).WithMaximumAttempts(3),
	})
}

func Test_Source_PaginatesUntilTokenExhausted(t *testing.T) {
	client := &fakeClient{
		pages:  [][]*historypb.HistoryEvent{{{EventId: 1}, {EventId: 2}}, {{EventId: 3}}},
		tokens: [][]byte{[]byte("token-1"), nil},
	}
	src := newTestSource(client)

	page1, ok, err := src.NextPage()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, page1, 2)

	page2, ok, err := src.NextPage()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, page2, 1)

	_, ok, err = src.NextPage()
	require.NoError(t, err)
	require.False(t, ok)
}

func Test_Source_RetriesTransientFailure(t *testing.T) {
	client := &fakeClient{
		pages:    [][]*historypb.HistoryEvent{{{EventId: 1}}},
		tokens:   [][]byte{nil},
		failOnce: true,
	}
	src := newTestSource(client)

	events, ok, err := src.NextPage()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, events, 1)
}

type alwaysFailClient struct{}

func (alwaysFailClient) GetWorkflowExecutionHistory(ctx context.Context, in *workflowservice.GetWorkflowExecutionHistoryRequest, opts ...grpc.CallOption) (*workflowservice.GetWorkflowExecutionHistoryResponse, error) {
	return nil, errors.New("permanently unavailable")
}

func Test_Source_PropagatesFetchingError(t *testing.T) {
	src := newTestSource(alwaysFailClient{})
	_, _, err := src.NextPage()
	require.Error(t, err)
}
