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
	"reflect"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	historypb "go.temporal.io/api/history/v1"
	"go.temporal.io/api/workflowservice/v1"
)

// MockClient is a hand-maintained stand-in for a mockgen-generated mock of
// Client, following the same EXPECT()/Return() shape mockgen would produce.
type MockClient struct {
	ctrl *gomock.Controller
}

func NewMockClient(ctrl *gomock.Controller) *MockClient {
	return &MockClient{ctrl: ctrl}
}

func (m *MockClient) GetWorkflowExecutionHistory(ctx context.Context, in *workflowservice.GetWorkflowExecutionHistoryRequest, opts ...grpc.CallOption) (*workflowservice.GetWorkflowExecutionHistoryResponse, error) {
	varargs := []interface{}{ctx, in}
	for _, o := range opts {
		varargs = append(varargs, o)
	}
	ret := m.ctrl.Call(m, "GetWorkflowExecutionHistory", varargs...)
	resp, _ := ret[0].(*workflowservice.GetWorkflowExecutionHistoryResponse)
	err, _ := ret[1].(error)
	return resp, err
}

func (m *MockClient) EXPECT() *MockClientRecorder {
	return &MockClientRecorder{mock: m}
}

type MockClientRecorder struct {
	mock *MockClient
}

func (r *MockClientRecorder) GetWorkflowExecutionHistory(ctx, in interface{}, opts ...interface{}) *gomock.Call {
	varargs := append([]interface{}{ctx, in}, opts...)
	return r.mock.ctrl.RecordCallWithMethodType(r.mock, "GetWorkflowExecutionHistory", reflect.TypeOf((*MockClient)(nil).GetWorkflowExecutionHistory), varargs...)
}

func Test_Source_UsesGomockClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := NewMockClient(ctrl)
	mockClient.EXPECT().GetWorkflowExecutionHistory(gomock.Any(), gomock.Any()).Return(
		&workflowservice.GetWorkflowExecutionHistoryResponse{
			History: &historypb.History{Events: []*historypb.HistoryEvent{{EventId: 1}}},
		}, nil,
	)

	src := newTestSource(mockClient)
	events, ok, err := src.NextPage()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, events, 1)
}
