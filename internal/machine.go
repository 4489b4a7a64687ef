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
	"fmt"
	"strings"
	"time"
)

// MachineKind names the closed set of sub-machine shapes the coordinator
// knows how to create and dispatch to. A tagged variant (rather than open
// interface registration) matches this spec's closed machine set and keeps
// Kind() comparisons cheap in the change-marker classification path.
type MachineKind int

const (
	MachineKindWorkflowTask MachineKind = iota
	MachineKindTimer
	MachineKindActivity
	MachineKindChildWorkflow
	MachineKindSignalExternal
	MachineKindCancelExternal
	MachineKindVersion
	MachineKindTerminal
)

func (k MachineKind) String() string {
	switch k {
	case MachineKindWorkflowTask:
		return "WorkflowTask"
	case MachineKindTimer:
		return "Timer"
	case MachineKindActivity:
		return "Activity"
	case MachineKindChildWorkflow:
		return "ChildWorkflow"
	case MachineKindSignalExternal:
		return "SignalExternal"
	case MachineKindCancelExternal:
		return "CancelExternal"
	case MachineKindVersion:
		return "Version"
	case MachineKindTerminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// MachineResponseVariant discriminates the four shapes a sub-machine can
// hand back to the coordinator after processing an event, command, or
// cancellation.
type MachineResponseVariant int

const (
	// MachineResponsePushWFJob buffers a job for the driver's next activation.
	MachineResponsePushWFJob MachineResponseVariant = iota
	// MachineResponseTriggerWFTaskStarted advances current_started_event_id
	// and current_wf_time.
	MachineResponseTriggerWFTaskStarted
	// MachineResponseUpdateRunIDOnWorkflowReset signals a workflow reset.
	MachineResponseUpdateRunIDOnWorkflowReset
	// MachineResponseIssueNewCommand is valid only from cancel(); anywhere
	// else the coordinator treats it as Fatal.
	MachineResponseIssueNewCommand
)

func (v MachineResponseVariant) String() string {
	switch v {
	case MachineResponsePushWFJob:
		return "PushWFJob"
	case MachineResponseTriggerWFTaskStarted:
		return "TriggerWFTaskStarted"
	case MachineResponseUpdateRunIDOnWorkflowReset:
		return "UpdateRunIDOnWorkflowReset"
	case MachineResponseIssueNewCommand:
		return "IssueNewCommand"
	default:
		return "Unknown"
	}
}

// MachineResponses is a named response slice so debug logging can pass a
// whole batch to zap as one compact field instead of the default %v dump of
// each response's mostly-empty payload fields.
type MachineResponses []MachineResponse

func (rs MachineResponses) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range rs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.Variant.String())
	}
	b.WriteByte(']')
	return b.String()
}

// MachineResponse is a single coordinator-directed response produced by a
// sub-machine call. Exactly one payload field is populated per Variant.
type MachineResponse struct {
	Variant MachineResponseVariant

	Job *Job

	TriggerEventID   int64
	TriggerEventTime time.Time

	NewRunID string

	NewCommand *WFCommand
}

func pushJobResponse(job Job) MachineResponse {
	return MachineResponse{Variant: MachineResponsePushWFJob, Job: &job}
}

func triggerWFTaskStartedResponse(eventID int64, eventTime time.Time) MachineResponse {
	return MachineResponse{Variant: MachineResponseTriggerWFTaskStarted, TriggerEventID: eventID, TriggerEventTime: eventTime}
}

func updateRunIDResponse(runID string) MachineResponse {
	return MachineResponse{Variant: MachineResponseUpdateRunIDOnWorkflowReset, NewRunID: runID}
}

func issueNewCommandResponse(cmd *WFCommand) MachineResponse {
	return MachineResponse{Variant: MachineResponseIssueNewCommand, NewCommand: cmd}
}

// SubMachine is the capability set every sub-state-machine variant must
// implement. Machines are pure state transformers: they receive an event,
// command, or cancellation and return a list of responses; they hold no
// reference back to the coordinator or registry.
type SubMachine interface {
	// HandleEvent advances the machine's state in response to a history
	// event. hasNext is true when another event follows within the same
	// task, letting a machine distinguish "more to come" from task end.
	HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error)
	// HandleCommand advances the machine's state when its own command is
	// moved from current_wf_task_commands onto the outgoing commands queue.
	HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error)
	// Cancel requests cancellation. If the machine was never sent to the
	// server, this should short-circuit locally instead of returning
	// IssueNewCommand.
	Cancel() ([]MachineResponse, error)
	// MatchesEvent reports whether this machine is the one that should
	// receive the given command event.
	MatchesEvent(event *HistoryEvent) bool
	// WasCancelledBeforeSentToServer reports whether Cancel() was called
	// before this machine's command was ever transmitted.
	WasCancelledBeforeSentToServer() bool
	// IsFinalState reports whether the machine has completed all its
	// transitions and may be dropped from secondary indices.
	IsFinalState() bool
	// Kind identifies which of the closed machine shapes this is.
	Kind() MachineKind
}

// MachineKey is a stable, generation-tagged handle into a MachineRegistry.
// Keys are never reused: once issued, a key either still points at its
// original machine or is stale (its generation no longer matches).
type MachineKey struct {
	index      int
	generation uint64
}

func (k MachineKey) String() string {
	return fmt.Sprintf("machine#%d.%d", k.index, k.generation)
}

type machineSlot struct {
	machine    SubMachine
	generation uint64
	occupied   bool
}

// MachineRegistry is a generational-index arena of sub-machines. Per §9's
// design notes the registry never shrinks within a run: entries are never
// removed, only (in principle) retired in place, so MachineKeys issued
// early in a run remain valid for its entire duration.
type MachineRegistry struct {
	slots []machineSlot
}

// NewMachineRegistry creates an empty registry.
func NewMachineRegistry() *MachineRegistry {
	return &MachineRegistry{}
}

// Insert adds a new machine and returns a stable key for it.
func (r *MachineRegistry) Insert(m SubMachine) MachineKey {
	slot := machineSlot{machine: m, generation: 1, occupied: true}
	r.slots = append(r.slots, slot)
	return MachineKey{index: len(r.slots) - 1, generation: slot.generation}
}

// Get borrows the machine at key, or false if the key is stale.
func (r *MachineRegistry) Get(key MachineKey) (SubMachine, bool) {
	if key.index < 0 || key.index >= len(r.slots) {
		return nil, false
	}
	slot := r.slots[key.index]
	if !slot.occupied || slot.generation != key.generation {
		return nil, false
	}
	return slot.machine, true
}

// Len reports how many machines have ever been inserted.
func (r *MachineRegistry) Len() int {
	return len(r.slots)
}

// All iterates every live machine in insertion order.
func (r *MachineRegistry) All(visit func(MachineKey, SubMachine)) {
	for i, slot := range r.slots {
		if slot.occupied {
			visit(MachineKey{index: i, generation: slot.generation}, slot.machine)
		}
	}
}
