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

	commonpb "go.temporal.io/api/common/v1"
)

// JobVariant discriminates the closed set of jobs the coordinator can push
// to the driven workflow.
type JobVariant int

const (
	// JobStartWorkflow begins workflow code execution.
	JobStartWorkflow JobVariant = iota
	// JobNotifyHasPatch informs lang that a patch id was observed in history
	// before lang's own patched() call reaches it.
	JobNotifyHasPatch
	// JobUpdateRandomSeed carries a new deterministic PRNG seed, emitted
	// after a workflow reset rewrites the run id.
	JobUpdateRandomSeed
	// JobSignal delivers a WorkflowExecutionSignaled event's payload.
	JobSignal
	// JobCancel delivers a cancellation request for the workflow run itself.
	JobCancel
	// JobFireTimer reports a timer's completion.
	JobFireTimer
	// JobResolveActivity reports an activity's terminal outcome.
	JobResolveActivity
	// JobResolveChildWorkflow reports a child workflow's terminal outcome.
	JobResolveChildWorkflow
	// JobQuery delivers a query to be answered synchronously by lang.
	JobQuery
	// JobMarkerRecorded reports a non-version marker recorded in history.
	JobMarkerRecorded
)

// StartWorkflowAttributes carries the parameters lang needs to begin executing.
type StartWorkflowAttributes struct {
	WorkflowType      string
	WorkflowID        string
	Arguments         *commonpb.Payloads
	RandomnessSeed    uint64
	Headers           map[string]*commonpb.Payload
}

// NotifyHasPatchAttributes carries a pre-scanned patch id.
type NotifyHasPatchAttributes struct {
	PatchID string
}

// UpdateRandomSeedAttributes carries a freshly derived PRNG seed.
type UpdateRandomSeedAttributes struct {
	RandomnessSeed uint64
}

// SignalAttributes carries a delivered signal's payload.
type SignalAttributes struct {
	SignalName string
	Input      *commonpb.Payloads
	Identity   string
}

// CancelAttributes carries a workflow-level cancellation request.
type CancelAttributes struct {
	Details *commonpb.Payloads
}

// FireTimerAttributes reports which timer sequence fired or was canceled.
type FireTimerAttributes struct {
	Seq      uint32
	Canceled bool
}

// ResolveActivityAttributes reports an activity's terminal outcome.
type ResolveActivityAttributes struct {
	Seq    uint32
	Result *commonpb.Payloads
	Failed bool
	Err    error
}

// ResolveChildWorkflowAttributes reports a child workflow's terminal outcome.
type ResolveChildWorkflowAttributes struct {
	Seq    uint32
	Result *commonpb.Payloads
	Failed bool
	Err    error
}

// QueryAttributes carries a query lang must answer synchronously.
type QueryAttributes struct {
	QueryID string
	Query   string
	Args    *commonpb.Payloads
}

// MarkerRecordedAttributes carries a non-version marker's recorded details,
// e.g. side-effect or local-activity markers.
type MarkerRecordedAttributes struct {
	MarkerName string
	Details    map[string]*commonpb.Payloads
}

// Job is a single unit of work pushed from the coordinator to lang. Exactly
// one of the Attributes fields is populated, selected by Variant; this is
// Go's idiomatic stand-in for the tagged union the original core uses, kept
// as a flat struct (rather than an interface per-variant) because the set is
// closed and the coordinator is the only producer.
type Job struct {
	Variant                 JobVariant
	StartWorkflow           *StartWorkflowAttributes
	NotifyHasPatch          *NotifyHasPatchAttributes
	UpdateRandomSeed        *UpdateRandomSeedAttributes
	Signal                  *SignalAttributes
	Cancel                  *CancelAttributes
	FireTimer               *FireTimerAttributes
	ResolveActivity         *ResolveActivityAttributes
	ResolveChildWorkflow    *ResolveChildWorkflowAttributes
	Query                   *QueryAttributes
	MarkerRecorded          *MarkerRecordedAttributes
}

// Activation is the wire shape delivered to lang: a timestamp, the replay
// flag, the run id, and the batch of jobs produced by one workflow task.
type Activation struct {
	Timestamp   time.Time
	HasTimestamp bool
	IsReplaying bool
	RunID       string
	Jobs        []Job
}
