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

// Package metrics wraps tally.Scope with the fixed set of counters and
// timers the coordinator emits, matching the call sites the original
// sdk-core fires its MetricsContext calls from.
package metrics

import (
	"time"

	"github.com/uber-go/tally"
)

const (
	wfCompleted         = "wf_completed"
	wfFailed            = "wf_failed"
	wfCanceled          = "wf_canceled"
	wfContinuedAsNew    = "wf_continued_as_new"
	stickyCacheMiss     = "sticky_cache_miss"
	wfTaskReplayLatency = "wf_task_replay_latency"
	wfE2ELatency        = "wf_e2e_latency"
)

// Scope is the fixed set of workflow-replay metrics the coordinator emits.
// It wraps a tally.Scope rather than extending it, so call sites cannot
// reach for an ad hoc counter name that isn't part of this vocabulary.
type Scope struct {
	scope tally.Scope
}

// NewScope wraps an existing tally.Scope, typically one tagged with
// namespace/task-queue/workflow-type by the caller before it's handed in.
func NewScope(scope tally.Scope) *Scope {
	if scope == nil {
		scope = tally.NoopScope
	}
	return &Scope{scope: scope}
}

// WFCompleted records a workflow execution completing successfully.
func (s *Scope) WFCompleted() {
	s.scope.Counter(wfCompleted).Inc(1)
}

// WFFailed records a workflow execution completing with a failure.
func (s *Scope) WFFailed() {
	s.scope.Counter(wfFailed).Inc(1)
}

// WFCanceled records a workflow execution completing via cancellation.
func (s *Scope) WFCanceled() {
	s.scope.Counter(wfCanceled).Inc(1)
}

// WFContinuedAsNew records a workflow execution completing via continue-as-new.
func (s *Scope) WFContinuedAsNew() {
	s.scope.Counter(wfContinuedAsNew).Inc(1)
}

// StickyCacheMiss records a replay attempted against a run not found in the
// sticky cache, forcing a full history replay from the beginning.
func (s *Scope) StickyCacheMiss() {
	s.scope.Counter(stickyCacheMiss).Inc(1)
}

// WFTaskReplayLatency records the time spent iterating machines over a
// single workflow task's worth of history during replay.
func (s *Scope) WFTaskReplayLatency(d time.Duration) {
	s.scope.Timer(wfTaskReplayLatency).Record(d)
}

// WFE2ELatency records the elapsed wall-clock time between workflow start
// and the run reaching a terminal command.
func (s *Scope) WFE2ELatency(d time.Duration) {
	s.scope.Timer(wfE2ELatency).Record(d)
}

// Tagged returns a Scope sharing the same metric vocabulary but scoped under
// additional tags, mirroring tally.Scope.Tagged.
func (s *Scope) Tagged(tags map[string]string) *Scope {
	return NewScope(s.scope.Tagged(tags))
}
