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

// DrivenWorkflow is the coordinator's abstract view of the user workflow
// code (§6): jobs flow in via SendJob, commands flow out via
// FetchWorkflowIterationOutput. The coordinator never inspects what's on
// the other side of this interface.
type DrivenWorkflow interface {
	// SendJob buffers one job for delivery in the next activation.
	SendJob(job Job)
	// DrainJobs removes and returns every job buffered since the last drain.
	DrainJobs() []Job
	// FetchWorkflowIterationOutput runs one iteration of lang and returns the
	// commands it produced, in emission order.
	FetchWorkflowIterationOutput() ([]WFCommand, error)
	// Start notifies lang that the run has begun.
	Start(attrs StartWorkflowAttributes)
	// Signal delivers a signal directly, bypassing the job queue, for
	// drivers that want synchronous signal dispatch.
	Signal(attrs SignalAttributes)
	// Cancel delivers a workflow-level cancellation request.
	Cancel(attrs CancelAttributes)
}

// InMemoryDrivenWorkflow is a minimal DrivenWorkflow usable in tests and as
// a reference implementation: it buffers jobs and lets the test author feed
// back a scripted sequence of command batches, one per
// FetchWorkflowIterationOutput call.
type InMemoryDrivenWorkflow struct {
	jobs           []Job
	commandBatches [][]WFCommand
	nextBatch      int
	started        bool
	startAttrs     StartWorkflowAttributes
	signals        []SignalAttributes
	cancels        []CancelAttributes
}

// NewInMemoryDrivenWorkflow creates an empty driven workflow double.
func NewInMemoryDrivenWorkflow() *InMemoryDrivenWorkflow {
	return &InMemoryDrivenWorkflow{}
}

// ScriptCommands queues a batch of commands to be returned by the next
// FetchWorkflowIterationOutput call.
func (w *InMemoryDrivenWorkflow) ScriptCommands(commands ...WFCommand) {
	w.commandBatches = append(w.commandBatches, commands)
}

// SendJob implements DrivenWorkflow.
func (w *InMemoryDrivenWorkflow) SendJob(job Job) {
	w.jobs = append(w.jobs, job)
}

// DrainJobs implements DrivenWorkflow.
func (w *InMemoryDrivenWorkflow) DrainJobs() []Job {
	jobs := w.jobs
	w.jobs = nil
	return jobs
}

// FetchWorkflowIterationOutput implements DrivenWorkflow.
func (w *InMemoryDrivenWorkflow) FetchWorkflowIterationOutput() ([]WFCommand, error) {
	if w.nextBatch >= len(w.commandBatches) {
		return nil, nil
	}
	batch := w.commandBatches[w.nextBatch]
	w.nextBatch++
	return batch, nil
}

// Start implements DrivenWorkflow.
func (w *InMemoryDrivenWorkflow) Start(attrs StartWorkflowAttributes) {
	w.started = true
	w.startAttrs = attrs
}

// Signal implements DrivenWorkflow.
func (w *InMemoryDrivenWorkflow) Signal(attrs SignalAttributes) {
	w.signals = append(w.signals, attrs)
}

// Cancel implements DrivenWorkflow.
func (w *InMemoryDrivenWorkflow) Cancel(attrs CancelAttributes) {
	w.cancels = append(w.cancels, attrs)
}
