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
	"time"

	"github.com/facebookgo/clock"
)

// replayClock tracks the two notions of time the coordinator owns: the
// workflow-visible current_wf_time (advanced only by TriggerWFTaskStarted
// responses, per §4.3) and workflow_start_time/workflow_end_time. The start
// time is the WorkflowExecutionStarted event's own timestamp; the end time is
// read from an injected clock.Clock so tests can control it.
type replayClock struct {
	wallClock       clock.Clock
	currentWFTime   time.Time
	workflowStartTime time.Time
	workflowEndTime   time.Time
	hasStartTime      bool
	hasEndTime        bool
}

func newReplayClock(wallClock clock.Clock) *replayClock {
	if wallClock == nil {
		wallClock = clock.New()
	}
	return &replayClock{wallClock: wallClock}
}

// advance applies the monotonic-non-decreasing policy from §4.3: a new time
// is only accepted if strictly greater than the one already recorded.
func (c *replayClock) advance(t time.Time) {
	if t.After(c.currentWFTime) {
		c.currentWFTime = t
	}
}

func (c *replayClock) now() time.Time {
	return c.currentWFTime
}

func (c *replayClock) markStarted(eventTime time.Time) {
	if !c.hasStartTime {
		c.workflowStartTime = eventTime
		c.hasStartTime = true
	}
}

func (c *replayClock) markEnded() {
	if !c.hasEndTime {
		c.workflowEndTime = c.wallClock.Now()
		c.hasEndTime = true
	}
}

// totalRuntime implements §4.3's total_runtime(): the elapsed time between
// workflow start and end, or the zero value with ok=false if either is
// missing or end precedes start.
func (c *replayClock) totalRuntime() (time.Duration, bool) {
	if !c.hasStartTime || !c.hasEndTime {
		return 0, false
	}
	if c.workflowEndTime.Before(c.workflowStartTime) {
		return 0, false
	}
	return c.workflowEndTime.Sub(c.workflowStartTime), true
}
