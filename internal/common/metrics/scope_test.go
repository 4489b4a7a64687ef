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

package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
)

func TestScope_CountersIncrement(t *testing.T) {
	require := require.New(t)
	testScope := tally.NewTestScope("", nil)
	scope := NewScope(testScope)

	scope.WFCompleted()
	scope.WFFailed()
	scope.WFCanceled()
	scope.WFContinuedAsNew()
	scope.StickyCacheMiss()

	snapshot := testScope.Snapshot()
	counters := snapshot.Counters()
	require.EqualValues(1, counters["wf_completed+"].Value())
	require.EqualValues(1, counters["wf_failed+"].Value())
	require.EqualValues(1, counters["wf_canceled+"].Value())
	require.EqualValues(1, counters["wf_continued_as_new+"].Value())
	require.EqualValues(1, counters["sticky_cache_miss+"].Value())
}

func TestScope_TimersRecord(t *testing.T) {
	require := require.New(t)
	testScope := tally.NewTestScope("", nil)
	scope := NewScope(testScope)

	scope.WFTaskReplayLatency(42 * time.Millisecond)
	scope.WFE2ELatency(7 * time.Second)

	snapshot := testScope.Snapshot()
	timers := snapshot.Timers()
	require.Len(timers["wf_task_replay_latency+"].Values(), 1)
	require.Len(timers["wf_e2e_latency+"].Values(), 1)
}

func TestScope_Tagged(t *testing.T) {
	require := require.New(t)
	testScope := tally.NewTestScope("", nil)
	scope := NewScope(testScope).Tagged(map[string]string{"workflow_type": "demo"})

	scope.WFCompleted()

	snapshot := testScope.Snapshot()
	counters := snapshot.Counters()
	found := false
	for name, c := range counters {
		if name != "wf_completed+" && c.Value() == 1 {
			found = true
		}
	}
	require.True(found, "expected tagged counter key, got %v", counters)
}

func TestNewScope_NilFallsBackToNoop(t *testing.T) {
	require := require.New(t)
	scope := NewScope(nil)
	require.NotPanics(func() {
		scope.WFCompleted()
	})
}
