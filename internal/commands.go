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
	commonpb "go.temporal.io/api/common/v1"
)

// WFCommandVariant discriminates the closed set of commands lang can issue
// to the coordinator during iterate_machines.
type WFCommandVariant int

const (
	WFCommandAddTimer WFCommandVariant = iota
	WFCommandCancelTimer
	WFCommandAddActivity
	WFCommandRequestCancelActivity
	WFCommandCompleteWorkflow
	WFCommandFailWorkflow
	WFCommandCancelWorkflow
	WFCommandContinueAsNew
	WFCommandSetPatchMarker
	WFCommandAddChildWorkflow
	WFCommandCancelUnstartedChild
	WFCommandRequestCancelExternalWorkflow
	WFCommandSignalExternalWorkflow
	WFCommandCancelSignalWorkflow
	WFCommandUpsertSearchAttributes
	WFCommandQueryResponse
	WFCommandNoCommandsFromLang
)

// ExternalWorkflowTarget names either a child workflow (by its command seq)
// or an arbitrary external execution (by namespace/workflow id/run id).
type ExternalWorkflowTarget struct {
	ChildWorkflowSeq *uint32
	Namespace        string
	WorkflowID       string
	RunID            string
}

// WFCommand is one instruction lang issued this task, translated by
// iterate_machines into a sub-machine plus a queued outgoing command.
type WFCommand struct {
	Variant WFCommandVariant

	Seq uint32

	// AddTimer / CancelTimer
	StartToFireTimeout int64 // nanoseconds

	// AddActivity / RequestCancelActivity
	ActivityID   string
	ActivityType string
	Input        *commonpb.Payloads

	// CompleteWorkflow / FailWorkflow / ContinueAsNew
	Result *commonpb.Payloads
	Err    error

	// SetPatchMarker
	PatchID    string
	Deprecated bool

	// AddChildWorkflow
	ChildWorkflowType string
	ChildWorkflowID   string

	// RequestCancelExternalWorkflow / SignalExternalWorkflow
	Target     *ExternalWorkflowTarget
	SignalName string

	// UpsertSearchAttributes
	SearchAttributes map[string]*commonpb.Payload

	// QueryResponse
	QueryID string
}

// CommandID identifies the sub-machine a WFCommand created, for the
// id_to_machine secondary index keyed by command rather than initiating
// event. Mirrors the Rust core's CommandID enum: each constructor pins which
// WFCommand kinds may validly produce that id shape.
type CommandID struct {
	kind string
	seq  uint32
}

func commandIDTimer(seq uint32) CommandID              { return CommandID{kind: "timer", seq: seq} }
func commandIDActivity(seq uint32) CommandID           { return CommandID{kind: "activity", seq: seq} }
func commandIDChildWorkflowStart(seq uint32) CommandID { return CommandID{kind: "child_start", seq: seq} }
func commandIDSignalExternal(seq uint32) CommandID     { return CommandID{kind: "signal_external", seq: seq} }
func commandIDCancelExternal(seq uint32) CommandID     { return CommandID{kind: "cancel_external", seq: seq} }
