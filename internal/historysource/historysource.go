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

// Package historysource implements the coordinator's HistorySource
// collaborator (internal.HistorySource) as a long-polling gRPC page fetcher
// against the Temporal frontend, the network-facing counterpart to the
// purely in-memory replay core.
package historysource

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	commonpb "go.temporal.io/api/common/v1"
	enumspb "go.temporal.io/api/enums/v1"
	historypb "go.temporal.io/api/history/v1"
	"go.temporal.io/api/workflowservice/v1"

	"github.com/temporal-replay/replaycore/internal"
	"github.com/temporal-replay/replaycore/internal/common/backoff"
	"github.com/temporal-replay/replaycore/internal/common/rpc"
)

var outgoingVersionMetadata = metadata.Pairs(
	"client-name", "replaycore",
	"client-version", internal.SDKVersion,
	"feature-version", internal.SDKFeatureVersion,
)

// Client is the subset of workflowservice.WorkflowServiceClient the page
// fetcher needs, kept narrow so callers can pass a plain grpc.ClientConn's
// generated client without any wrapping.
type Client interface {
	GetWorkflowExecutionHistory(ctx context.Context, in *workflowservice.GetWorkflowExecutionHistoryRequest, opts ...grpc.CallOption) (*workflowservice.GetWorkflowExecutionHistoryResponse, error)
}

// Options configures a Source.
type Options struct {
	Client      Client
	Namespace   string
	Execution   *commonpb.WorkflowExecution
	LongPoll    bool
	RateLimit   rate.Limit
	RetryPolicy backoff.RetryPolicy
	Logger      *zap.SugaredLogger
}

// Source is a HistorySource (internal.HistorySource) backed by repeated
// GetWorkflowExecutionHistory calls, grounded on
// internal_task_pollers.go's newGetHistoryPageFunc: it threads a page token
// across calls, retries transient failures with backoff, and optionally
// long-polls for new events once the known history is caught up.
type Source struct {
	client    Client
	namespace string
	execution *commonpb.WorkflowExecution
	longPoll  bool
	limiter   *rate.Limiter
	policy    backoff.RetryPolicy
	logger    *zap.SugaredLogger

	nextPageToken []byte
	started       bool
	exhausted     bool
}

// NewSource constructs a page fetcher for one workflow execution's history.
func NewSource(opts Options) *Source {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	limit := opts.RateLimit
	if limit == 0 {
		limit = rate.Limit(2)
	}
	policy := opts.RetryPolicy
	if policy == nil {
		policy = backoff.NewExponentialRetryPolicy(200 * time.Millisecond)
	}
	return &Source{
		client:    opts.Client,
		namespace: opts.Namespace,
		execution: opts.Execution,
		longPoll:  opts.LongPoll,
		limiter:   rate.NewLimiter(limit, 1),
		policy:    policy,
		logger:    logger,
	}
}

// NextPage implements internal.HistorySource. The first call always fetches;
// subsequent calls stop once the service reports no further page token,
// unless long polling is enabled, in which case the caller re-invokes
// NextPage to wait for new events past the currently known tail.
func (s *Source) NextPage() ([]*historypb.HistoryEvent, bool, error) {
	if s.exhausted && !s.longPoll {
		return nil, false, nil
	}
	if s.started && s.nextPageToken == nil && !s.longPoll {
		return nil, false, nil
	}
	s.started = true

	if err := s.limiter.Wait(context.Background()); err != nil {
		return nil, false, rpc.ConvertError(err)
	}

	ctx := metadata.NewOutgoingContext(context.Background(), outgoingVersionMetadata)

	var resp *workflowservice.GetWorkflowExecutionHistoryResponse
	retryErr := backoff.Retry(ctx, func() error {
		var err error
		resp, err = s.client.GetWorkflowExecutionHistory(ctx, &workflowservice.GetWorkflowExecutionHistoryRequest{
			Namespace:              s.namespace,
			Execution:              s.execution,
			NextPageToken:          s.nextPageToken,
			WaitNewEvent:           s.longPoll && s.nextPageToken == nil,
			HistoryEventFilterType: enumspb.HISTORY_EVENT_FILTER_TYPE_ALL_EVENT,
		})
		return err
	}, s.policy, isRetryableHistoryError)
	if retryErr != nil {
		s.logger.Errorw("history page fetch failed", "namespace", s.namespace, "error", retryErr)
		return nil, false, rpc.ConvertError(retryErr)
	}

	s.nextPageToken = resp.GetNextPageToken()
	events := resp.GetHistory().GetEvents()
	if s.nextPageToken == nil {
		s.exhausted = true
	}
	if len(events) == 0 && s.nextPageToken == nil {
		return nil, false, nil
	}
	return events, true, nil
}

// isRetryableHistoryError classifies a raw gRPC error from
// GetWorkflowExecutionHistory the way the teacher's isServiceTransientError
// classifies poll failures: only status codes that indicate a transient
// condition on the service side are retried, so a permanent failure (bad
// namespace, malformed request, unknown execution) fails fast instead of
// running out the full retry policy.
func isRetryableHistoryError(err error) bool {
	if err == nil {
		return false
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Aborted, codes.Internal:
		return true
	default:
		return false
	}
}
