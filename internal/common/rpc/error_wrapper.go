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

// Package rpc converts gRPC statuses returned by the history-fetching
// transport into the typed serviceerror hierarchy the coordinator's
// WFMachinesError(HistoryFetchingError) wraps.
package rpc

import (
	"github.com/gogo/status"
	failurepb "go.temporal.io/api/failure/v1"
	"go.temporal.io/api/serviceerror"
	"google.golang.org/grpc/codes"
)

// ConvertError converts a gRPC error (as returned by a workflowservice call)
// into the matching serviceerror type, unpacking a WorkflowExecutionAlreadyStarted
// failure detail when the server attached one.
func ConvertError(err error) error {
	if err == nil {
		return nil
	}

	st := status.Convert(err)
	if st == nil || st.Code() == codes.OK {
		return nil
	}

	for _, detail := range st.Details() {
		if failure, ok := detail.(*failurepb.WorkflowExecutionAlreadyStartedFailureInfo); ok {
			return serviceerror.NewWorkflowExecutionAlreadyStarted(st.Message(), failure.GetStartRequestId(), failure.GetRunId())
		}
	}

	return serviceerror.FromStatus(st)
}
