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

// machineLifecycle is the small shared state shape every concrete machine
// below embeds: created, waiting on the server, cancelled pre-send, cancel
// requested after send, or done.
// Translating decisionStateMachineBase's richer state set down to what this
// spec's four-outcome Cancel()/IsFinalState() contract actually needs.
type machineLifecycle int

const (
	lifecycleCreated machineLifecycle = iota
	lifecycleCommandSent
	lifecycleCancelledBeforeSent
	lifecycleCancelRequested
	lifecycleDone
)

func (l machineLifecycle) isFinal() bool {
	return l == lifecycleCancelledBeforeSent || l == lifecycleDone
}

// --- Timer machine --------------------------------------------------------

type timerMachine struct {
	seq             uint32
	lifecycle       machineLifecycle
	startedEventID  int64
}

func newTimerMachine(seq uint32) *timerMachine {
	return &timerMachine{seq: seq, lifecycle: lifecycleCreated}
}

func (m *timerMachine) Kind() MachineKind { return MachineKindTimer }

func (m *timerMachine) HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error) {
	switch commandType {
	case commandTypeStartTimer:
		m.lifecycle = lifecycleCommandSent
		return nil, nil
	case commandTypeCancelTimer:
		return nil, nil
	default:
		return nil, NewFatalWFMachinesError("timer machine: unexpected command type")
	}
}

func (m *timerMachine) HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error) {
	switch event.EventType() {
	case eventTypeTimerStarted:
		m.startedEventID = event.EventID()
		return nil, nil
	case eventTypeTimerFired:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant:   JobFireTimer,
			FireTimer: &FireTimerAttributes{Seq: m.seq},
		})}, nil
	case eventTypeTimerCanceled:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant:   JobFireTimer,
			FireTimer: &FireTimerAttributes{Seq: m.seq, Canceled: true},
		})}, nil
	default:
		return nil, NewFatalWFMachinesError("timer machine: unexpected event type")
	}
}

func (m *timerMachine) Cancel() ([]MachineResponse, error) {
	switch m.lifecycle {
	case lifecycleCreated:
		m.lifecycle = lifecycleCancelledBeforeSent
		return []MachineResponse{pushJobResponse(Job{
			Variant:   JobFireTimer,
			FireTimer: &FireTimerAttributes{Seq: m.seq, Canceled: true},
		})}, nil
	case lifecycleCommandSent:
		m.lifecycle = lifecycleCancelRequested
		return []MachineResponse{issueNewCommandResponse(&WFCommand{Variant: WFCommandCancelTimer, Seq: m.seq})}, nil
	default:
		return nil, NewFatalWFMachinesError("timer machine: cancel in terminal state")
	}
}

func (m *timerMachine) MatchesEvent(event *HistoryEvent) bool {
	switch event.EventType() {
	case eventTypeTimerStarted, eventTypeTimerFired, eventTypeTimerCanceled:
		return true
	default:
		return false
	}
}

func (m *timerMachine) WasCancelledBeforeSentToServer() bool {
	return m.lifecycle == lifecycleCancelledBeforeSent
}

func (m *timerMachine) IsFinalState() bool {
	return m.lifecycle.isFinal()
}

// --- Activity machine ------------------------------------------------------

type activityMachine struct {
	seq             uint32
	activityID      string
	lifecycle       machineLifecycle
	scheduledEventID int64
}

func newActivityMachine(seq uint32, activityID string) *activityMachine {
	return &activityMachine{seq: seq, activityID: activityID, lifecycle: lifecycleCreated}
}

func (m *activityMachine) Kind() MachineKind { return MachineKindActivity }

func (m *activityMachine) HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error) {
	switch commandType {
	case commandTypeScheduleActivityTask:
		m.lifecycle = lifecycleCommandSent
		return nil, nil
	case commandTypeRequestCancelActivityTask:
		return nil, nil
	default:
		return nil, NewFatalWFMachinesError("activity machine: unexpected command type")
	}
}

func (m *activityMachine) HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error) {
	switch event.EventType() {
	case eventTypeActivityTaskScheduled:
		m.scheduledEventID = event.EventID()
		return nil, nil
	case eventTypeActivityTaskStarted:
		return nil, nil
	case eventTypeActivityTaskCancelRequested:
		m.lifecycle = lifecycleCancelRequested
		return nil, nil
	case eventTypeActivityTaskCompleted:
		m.lifecycle = lifecycleDone
		attrs := event.Proto().GetActivityTaskCompletedEventAttributes()
		return []MachineResponse{pushJobResponse(Job{
			Variant:         JobResolveActivity,
			ResolveActivity: &ResolveActivityAttributes{Seq: m.seq, Result: attrs.GetResult()},
		})}, nil
	case eventTypeActivityTaskFailed:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveActivity,
			ResolveActivity: &ResolveActivityAttributes{
				Seq: m.seq, Failed: true,
				Err: NewApplicationError("activity failed", false, nil),
			},
		})}, nil
	case eventTypeActivityTaskTimedOut:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveActivity,
			ResolveActivity: &ResolveActivityAttributes{
				Seq: m.seq, Failed: true,
				Err: NewTimeoutError(0, nil),
			},
		})}, nil
	case eventTypeActivityTaskCanceled:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveActivity,
			ResolveActivity: &ResolveActivityAttributes{
				Seq: m.seq, Failed: true,
				Err: NewCanceledError(),
			},
		})}, nil
	default:
		return nil, NewFatalWFMachinesError("activity machine: unexpected event type")
	}
}

func (m *activityMachine) Cancel() ([]MachineResponse, error) {
	switch m.lifecycle {
	case lifecycleCreated:
		m.lifecycle = lifecycleCancelledBeforeSent
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveActivity,
			ResolveActivity: &ResolveActivityAttributes{
				Seq: m.seq, Failed: true,
				Err: NewCanceledError(),
			},
		})}, nil
	case lifecycleCommandSent, lifecycleCancelRequested:
		return []MachineResponse{issueNewCommandResponse(&WFCommand{Variant: WFCommandRequestCancelActivity, Seq: m.seq})}, nil
	default:
		return nil, NewFatalWFMachinesError("activity machine: cancel in terminal state")
	}
}

func (m *activityMachine) MatchesEvent(event *HistoryEvent) bool {
	switch event.EventType() {
	case eventTypeActivityTaskScheduled, eventTypeActivityTaskStarted, eventTypeActivityTaskCompleted,
		eventTypeActivityTaskFailed, eventTypeActivityTaskTimedOut, eventTypeActivityTaskCanceled,
		eventTypeActivityTaskCancelRequested:
		return true
	default:
		return false
	}
}

func (m *activityMachine) WasCancelledBeforeSentToServer() bool {
	return m.lifecycle == lifecycleCancelledBeforeSent
}

func (m *activityMachine) IsFinalState() bool {
	return m.lifecycle.isFinal()
}

// --- Child workflow machine --------------------------------------------------

type childWorkflowMachine struct {
	seq              uint32
	lifecycle        machineLifecycle
	initiatedEventID int64
}

func newChildWorkflowMachine(seq uint32) *childWorkflowMachine {
	return &childWorkflowMachine{seq: seq, lifecycle: lifecycleCreated}
}

func (m *childWorkflowMachine) Kind() MachineKind { return MachineKindChildWorkflow }

func (m *childWorkflowMachine) HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error) {
	switch commandType {
	case commandTypeStartChildWorkflowExecution:
		m.lifecycle = lifecycleCommandSent
		return nil, nil
	default:
		return nil, NewFatalWFMachinesError("child workflow machine: unexpected command type")
	}
}

func (m *childWorkflowMachine) HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error) {
	switch event.EventType() {
	case eventTypeStartChildWorkflowExecutionInitiated:
		m.initiatedEventID = event.EventID()
		return nil, nil
	case eventTypeStartChildWorkflowExecutionFailed:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveChildWorkflow,
			ResolveChildWorkflow: &ResolveChildWorkflowAttributes{
				Seq: m.seq, Failed: true, Err: NewApplicationError("failed to start child workflow", false, nil),
			},
		})}, nil
	case eventTypeChildWorkflowExecutionStarted:
		return nil, nil
	case eventTypeChildWorkflowExecutionCompleted:
		m.lifecycle = lifecycleDone
		attrs := event.Proto().GetChildWorkflowExecutionCompletedEventAttributes()
		return []MachineResponse{pushJobResponse(Job{
			Variant:              JobResolveChildWorkflow,
			ResolveChildWorkflow: &ResolveChildWorkflowAttributes{Seq: m.seq, Result: attrs.GetResult()},
		})}, nil
	case eventTypeChildWorkflowExecutionFailed:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveChildWorkflow,
			ResolveChildWorkflow: &ResolveChildWorkflowAttributes{
				Seq: m.seq, Failed: true, Err: NewApplicationError("child workflow failed", false, nil),
			},
		})}, nil
	case eventTypeChildWorkflowExecutionCanceled:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveChildWorkflow,
			ResolveChildWorkflow: &ResolveChildWorkflowAttributes{
				Seq: m.seq, Failed: true, Err: NewCanceledError(),
			},
		})}, nil
	case eventTypeChildWorkflowExecutionTimedOut:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveChildWorkflow,
			ResolveChildWorkflow: &ResolveChildWorkflowAttributes{
				Seq: m.seq, Failed: true, Err: NewTimeoutError(0, nil),
			},
		})}, nil
	case eventTypeChildWorkflowExecutionTerminated:
		m.lifecycle = lifecycleDone
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveChildWorkflow,
			ResolveChildWorkflow: &ResolveChildWorkflowAttributes{
				Seq: m.seq, Failed: true, Err: NewApplicationError("child workflow terminated", true, nil),
			},
		})}, nil
	default:
		return nil, NewFatalWFMachinesError("child workflow machine: unexpected event type")
	}
}

func (m *childWorkflowMachine) Cancel() ([]MachineResponse, error) {
	switch m.lifecycle {
	case lifecycleCreated:
		m.lifecycle = lifecycleCancelledBeforeSent
		return []MachineResponse{pushJobResponse(Job{
			Variant: JobResolveChildWorkflow,
			ResolveChildWorkflow: &ResolveChildWorkflowAttributes{
				Seq: m.seq, Failed: true, Err: NewCanceledError(),
			},
		})}, nil
	default:
		return nil, NewFatalWFMachinesError("child workflow machine: cannot cancel an already-started child")
	}
}

func (m *childWorkflowMachine) MatchesEvent(event *HistoryEvent) bool {
	switch event.EventType() {
	case eventTypeStartChildWorkflowExecutionInitiated, eventTypeStartChildWorkflowExecutionFailed,
		eventTypeChildWorkflowExecutionStarted, eventTypeChildWorkflowExecutionCompleted,
		eventTypeChildWorkflowExecutionFailed, eventTypeChildWorkflowExecutionCanceled,
		eventTypeChildWorkflowExecutionTimedOut, eventTypeChildWorkflowExecutionTerminated:
		return true
	default:
		return false
	}
}

func (m *childWorkflowMachine) WasCancelledBeforeSentToServer() bool {
	return m.lifecycle == lifecycleCancelledBeforeSent
}

func (m *childWorkflowMachine) IsFinalState() bool {
	return m.lifecycle.isFinal()
}

// --- Signal external workflow machine ---------------------------------------

type signalExternalMachine struct {
	seq       uint32
	lifecycle machineLifecycle
}

func newSignalExternalMachine(seq uint32) *signalExternalMachine {
	return &signalExternalMachine{seq: seq, lifecycle: lifecycleCreated}
}

func (m *signalExternalMachine) Kind() MachineKind { return MachineKindSignalExternal }

func (m *signalExternalMachine) HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error) {
	if commandType != commandTypeSignalExternalWorkflowExecution {
		return nil, NewFatalWFMachinesError("signal external machine: unexpected command type")
	}
	m.lifecycle = lifecycleCommandSent
	return nil, nil
}

func (m *signalExternalMachine) HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error) {
	switch event.EventType() {
	case eventTypeSignalExternalWorkflowExecutionInitiated:
		return nil, nil
	case eventTypeExternalWorkflowExecutionSignaled:
		m.lifecycle = lifecycleDone
		return nil, nil
	case eventTypeSignalExternalWorkflowExecutionFailed:
		m.lifecycle = lifecycleDone
		return nil, nil
	default:
		return nil, NewFatalWFMachinesError("signal external machine: unexpected event type")
	}
}

func (m *signalExternalMachine) Cancel() ([]MachineResponse, error) {
	if m.lifecycle == lifecycleCreated {
		m.lifecycle = lifecycleCancelledBeforeSent
		return nil, nil
	}
	return nil, NewFatalWFMachinesError("signal external machine: cannot cancel a sent signal")
}

func (m *signalExternalMachine) MatchesEvent(event *HistoryEvent) bool {
	switch event.EventType() {
	case eventTypeSignalExternalWorkflowExecutionInitiated, eventTypeExternalWorkflowExecutionSignaled,
		eventTypeSignalExternalWorkflowExecutionFailed:
		return true
	default:
		return false
	}
}

func (m *signalExternalMachine) WasCancelledBeforeSentToServer() bool {
	return m.lifecycle == lifecycleCancelledBeforeSent
}

func (m *signalExternalMachine) IsFinalState() bool {
	return m.lifecycle.isFinal()
}

// --- Cancel external workflow machine ----------------------------------------

type cancelExternalMachine struct {
	seq       uint32
	lifecycle machineLifecycle
}

func newCancelExternalMachine(seq uint32) *cancelExternalMachine {
	return &cancelExternalMachine{seq: seq, lifecycle: lifecycleCreated}
}

func (m *cancelExternalMachine) Kind() MachineKind { return MachineKindCancelExternal }

func (m *cancelExternalMachine) HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error) {
	if commandType != commandTypeRequestCancelExternalWorkflowExecution {
		return nil, NewFatalWFMachinesError("cancel external machine: unexpected command type")
	}
	m.lifecycle = lifecycleCommandSent
	return nil, nil
}

func (m *cancelExternalMachine) HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error) {
	switch event.EventType() {
	case eventTypeRequestCancelExternalWorkflowExecutionInitiated:
		return nil, nil
	case eventTypeExternalWorkflowExecutionCancelRequested:
		m.lifecycle = lifecycleDone
		return nil, nil
	case eventTypeRequestCancelExternalWorkflowExecutionFailed:
		m.lifecycle = lifecycleDone
		return nil, nil
	default:
		return nil, NewFatalWFMachinesError("cancel external machine: unexpected event type")
	}
}

func (m *cancelExternalMachine) Cancel() ([]MachineResponse, error) {
	return nil, NewFatalWFMachinesError("cancel external machine: not cancellable")
}

func (m *cancelExternalMachine) MatchesEvent(event *HistoryEvent) bool {
	switch event.EventType() {
	case eventTypeRequestCancelExternalWorkflowExecutionInitiated, eventTypeExternalWorkflowExecutionCancelRequested,
		eventTypeRequestCancelExternalWorkflowExecutionFailed:
		return true
	default:
		return false
	}
}

func (m *cancelExternalMachine) WasCancelledBeforeSentToServer() bool { return false }

func (m *cancelExternalMachine) IsFinalState() bool {
	return m.lifecycle.isFinal()
}

// --- Version (patch) machine -------------------------------------------------

// versionMachine backs both SetPatchMarker commands and the supplemented
// UpsertSearchAttributes command: both are one-shot markers that complete
// the moment their command is accepted, whether or not a matching history
// event ever arrives (see §4.2's SkipCommand rule for Version machines).
type versionMachine struct {
	patchID    string
	deprecated bool
	lifecycle  machineLifecycle
	kind       MachineKind
}

func newVersionMachine(patchID string, deprecated bool) *versionMachine {
	return &versionMachine{patchID: patchID, deprecated: deprecated, lifecycle: lifecycleCreated, kind: MachineKindVersion}
}

func newUpsertSearchAttributesMachine() *versionMachine {
	return &versionMachine{lifecycle: lifecycleCreated, kind: MachineKindVersion}
}

func (m *versionMachine) Kind() MachineKind { return m.kind }

func (m *versionMachine) HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error) {
	switch commandType {
	case commandTypeRecordMarker, commandTypeUpsertWorkflowSearchAttributes:
		m.lifecycle = lifecycleDone
		return nil, nil
	default:
		return nil, NewFatalWFMachinesError("version machine: unexpected command type")
	}
}

func (m *versionMachine) HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error) {
	if event.EventType() != eventTypeMarkerRecorded && event.EventType() != eventTypeUpsertWorkflowSearchAttributes {
		return nil, NewFatalWFMachinesError("version machine: unexpected event type")
	}
	m.lifecycle = lifecycleDone
	return nil, nil
}

func (m *versionMachine) Cancel() ([]MachineResponse, error) {
	return nil, NewFatalWFMachinesError("version machine: not cancellable")
}

func (m *versionMachine) MatchesEvent(event *HistoryEvent) bool {
	if event.EventType() == eventTypeUpsertWorkflowSearchAttributes {
		return true
	}
	patchID, _, ok := event.GetChangedMarkerDetails()
	return ok && patchID == m.patchID
}

func (m *versionMachine) WasCancelledBeforeSentToServer() bool { return false }

func (m *versionMachine) IsFinalState() bool { return m.lifecycle.isFinal() }

// --- Terminal machine ---------------------------------------------------------

type terminalMachine struct {
	commandType enumspbCommandType
	lifecycle   machineLifecycle
}

func newTerminalMachine(commandType enumspbCommandType) *terminalMachine {
	return &terminalMachine{commandType: commandType, lifecycle: lifecycleCreated}
}

func (m *terminalMachine) Kind() MachineKind { return MachineKindTerminal }

func (m *terminalMachine) HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error) {
	m.lifecycle = lifecycleCommandSent
	return nil, nil
}

func (m *terminalMachine) HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error) {
	m.lifecycle = lifecycleDone
	return nil, nil
}

func (m *terminalMachine) Cancel() ([]MachineResponse, error) {
	return nil, NewFatalWFMachinesError("terminal machine: not cancellable")
}

func (m *terminalMachine) MatchesEvent(event *HistoryEvent) bool {
	switch event.EventType() {
	case eventTypeWorkflowExecutionCompleted, eventTypeWorkflowExecutionFailed,
		eventTypeWorkflowExecutionCanceled, eventTypeWorkflowExecutionContinuedAsNew:
		return true
	default:
		return false
	}
}

func (m *terminalMachine) WasCancelledBeforeSentToServer() bool { return false }

func (m *terminalMachine) IsFinalState() bool { return m.lifecycle.isFinal() }

// --- Workflow task machine ----------------------------------------------------

// workflowTaskMachine tracks one WorkflowTaskScheduled..Completed/TimedOut/Failed
// cycle. It is never created by lang: the coordinator instantiates one every
// time a WorkflowTaskScheduled event is observed (§4.1.4).
type workflowTaskMachine struct {
	scheduledEventID int64
	lifecycle        machineLifecycle
}

func newWorkflowTaskMachine() *workflowTaskMachine {
	return &workflowTaskMachine{lifecycle: lifecycleCreated}
}

func (m *workflowTaskMachine) Kind() MachineKind { return MachineKindWorkflowTask }

func (m *workflowTaskMachine) HandleCommand(commandType enumspbCommandType) ([]MachineResponse, error) {
	return nil, NewFatalWFMachinesError("workflow task machine: lang cannot issue commands against it")
}

func (m *workflowTaskMachine) HandleEvent(event *HistoryEvent, hasNext bool) ([]MachineResponse, error) {
	switch event.EventType() {
	case eventTypeWorkflowTaskScheduled:
		m.scheduledEventID = event.EventID()
		return nil, nil
	case eventTypeWorkflowTaskStarted:
		return []MachineResponse{triggerWFTaskStartedResponse(event.EventID(), protoTimeToGoTime(event.Proto().GetEventTime()))}, nil
	case eventTypeWorkflowTaskCompleted, eventTypeWorkflowTaskTimedOut, eventTypeWorkflowTaskFailed:
		m.lifecycle = lifecycleDone
		return nil, nil
	default:
		return nil, NewFatalWFMachinesError("workflow task machine: unexpected event type")
	}
}

func (m *workflowTaskMachine) Cancel() ([]MachineResponse, error) {
	return nil, NewFatalWFMachinesError("workflow task machine: not cancellable")
}

func (m *workflowTaskMachine) MatchesEvent(event *HistoryEvent) bool {
	switch event.EventType() {
	case eventTypeWorkflowTaskScheduled, eventTypeWorkflowTaskStarted, eventTypeWorkflowTaskCompleted,
		eventTypeWorkflowTaskTimedOut, eventTypeWorkflowTaskFailed:
		return true
	default:
		return false
	}
}

func (m *workflowTaskMachine) WasCancelledBeforeSentToServer() bool { return false }

func (m *workflowTaskMachine) IsFinalState() bool { return m.lifecycle.isFinal() }
