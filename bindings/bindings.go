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

// Package bindings contains low level APIs to be used by non-Go language
// hosts built on top of this replay engine.
//
// ATTENTION!
// The APIs found in this package should never be referenced from any
// application code. There is absolutely no guarantee of compatibility
// between releases.
package bindings

import "github.com/temporal-replay/replaycore/internal"

type (
	// WorkflowMachines is the per-run event/command coordinator.
	WorkflowMachines = internal.WorkflowMachines
	// NewWorkflowMachinesOptions configures a WorkflowMachines instance.
	NewWorkflowMachinesOptions = internal.NewWorkflowMachinesOptions
	// DrivenWorkflow is the coordinator's view of the lang-side workflow code.
	DrivenWorkflow = internal.DrivenWorkflow
	// HistorySource supplies pages of history events on demand.
	HistorySource = internal.HistorySource
	// HistoryUpdate is the lazy, page-aware history cursor.
	HistoryUpdate = internal.HistoryUpdate
	// WFCommand is a command a lang workflow wants sent to the server.
	WFCommand = internal.WFCommand
	// WFCommandVariant discriminates WFCommand.Variant.
	WFCommandVariant = internal.WFCommandVariant
	// ExternalWorkflowTarget addresses a child or arbitrary external workflow.
	ExternalWorkflowTarget = internal.ExternalWorkflowTarget
	// Job is one unit of work delivered to lang in an Activation.
	Job = internal.Job
	// JobVariant discriminates Job's populated attributes field.
	JobVariant = internal.JobVariant
	// Activation bundles the jobs produced by one workflow task application.
	Activation = internal.Activation
	// WFMachinesError is the coordinator's typed error.
	WFMachinesError = internal.WFMachinesError
	// WFMachinesErrorKind discriminates WFMachinesError.Kind().
	WFMachinesErrorKind = internal.WFMachinesErrorKind
)

// NewWorkflowMachines constructs a fresh coordinator for one workflow run.
func NewWorkflowMachines(opts NewWorkflowMachinesOptions) *WorkflowMachines {
	return internal.NewWorkflowMachines(opts)
}

// NewHistoryUpdate constructs a history cursor over source.
func NewHistoryUpdate(source HistorySource, previousStartedEventID int64) *HistoryUpdate {
	return internal.NewHistoryUpdate(source, previousStartedEventID)
}

// IsNondeterminismError reports whether err is a WFMachinesError of kind Nondeterminism.
func IsNondeterminismError(err error) bool {
	return internal.IsNondeterminismError(err)
}

// IsCacheMissError reports whether err is a WFMachinesError of kind CacheMiss.
func IsCacheMissError(err error) bool {
	return internal.IsCacheMissError(err)
}
