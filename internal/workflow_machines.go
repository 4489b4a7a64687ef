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

// Package internal implements the workflow replay engine: the coordinator
// that drives a single workflow run's sub-state-machines in lock-step with
// a history of service-recorded events, translating between workflow
// commands and lang-visible jobs.
package internal

import (
	"fmt"
	"time"

	"github.com/facebookgo/clock"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"

	"github.com/temporal-replay/replaycore/internal/common/metrics"
)

// commandAndMachine binds a queued outgoing WFCommand to the machine that
// owns it, per §3's "Command-and-machine" entity.
type commandAndMachine struct {
	command *WFCommand
	key     MachineKey
}

func (c commandAndMachine) String() string {
	if c.command == nil {
		return fmt.Sprintf("commandAndMachine{key=%v, command=<nil>}", c.key)
	}
	return fmt.Sprintf("commandAndMachine{key=%v, variant=%d, seq=%d}", c.key, c.command.Variant, c.command.Seq)
}

// changeInfo is the per-patch-id bookkeeping record from §3.
type changeInfo struct {
	deprecated     bool
	createdCommand bool
}

// WorkflowMachines is the coordinator: the event-and-command correlation
// loop described in §4.1. One instance exists per workflow run and is never
// shared across runs or goroutines (§5: single-threaded cooperative, no
// internal locks).
type WorkflowMachines struct {
	namespace  string
	workflowID string
	runID      string

	originalExecutionRunID string

	driven DrivenWorkflow

	registry          *MachineRegistry
	machinesByEventID map[int64]MachineKey
	idToMachine       map[CommandID]MachineKey

	currentWFTaskCommands []commandAndMachine
	commands              []commandAndMachine

	changeInfos map[string]*changeInfo

	currentStartedEventID  int64
	nextStartedEventID     int64
	previousStartedEventID int64

	replaying             bool
	haveSeenTerminalEvent bool

	history *HistoryUpdate
	clock   *replayClock

	logger  *zap.SugaredLogger
	metrics *metrics.Scope
	tracer  opentracing.Tracer
}

// NewWorkflowMachinesOptions configures a new coordinator instance.
type NewWorkflowMachinesOptions struct {
	Namespace  string
	WorkflowID string
	RunID      string
	Driven     DrivenWorkflow
	Logger     *zap.SugaredLogger
	Metrics    *metrics.Scope
	Tracer     opentracing.Tracer
	WallClock  clock.Clock
}

// NewWorkflowMachines constructs a fresh coordinator for one workflow run.
func NewWorkflowMachines(opts NewWorkflowMachinesOptions) *WorkflowMachines {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	scope := opts.Metrics
	if scope == nil {
		scope = metrics.NewScope(nil)
	}
	return &WorkflowMachines{
		namespace:         opts.Namespace,
		workflowID:        opts.WorkflowID,
		runID:             opts.RunID,
		driven:            opts.Driven,
		registry:          NewMachineRegistry(),
		machinesByEventID: make(map[int64]MachineKey),
		idToMachine:       make(map[CommandID]MachineKey),
		changeInfos:       make(map[string]*changeInfo),
		clock:             newReplayClock(opts.WallClock),
		logger:            logger,
		metrics:           scope,
		tracer:            tracer,
	}
}

// RunID returns the coordinator's current run id.
func (w *WorkflowMachines) RunID() string { return w.runID }

// WorkflowIsFinished implements §4.1's workflow_is_finished() status query.
func (w *WorkflowMachines) WorkflowIsFinished() bool {
	return w.haveSeenTerminalEvent
}

// TotalRuntime implements §4.3's total_runtime().
func (w *WorkflowMachines) TotalRuntime() (time.Duration, bool) {
	return w.clock.totalRuntime()
}

// NewHistoryFromServer replaces the history update, recomputes replaying,
// and applies the next task (§4.1 entry point).
func (w *WorkflowMachines) NewHistoryFromServer(history *HistoryUpdate) error {
	w.history = history
	w.previousStartedEventID = history.PreviousStartedEventID()
	w.replaying = w.previousStartedEventID > 0 && w.currentStartedEventID < w.previousStartedEventID
	return w.ApplyNextWFTFromHistory()
}

// ApplyNextWFTFromHistory implements the task-application algorithm (§4.1.1).
func (w *WorkflowMachines) ApplyNextWFTFromHistory() error {
	span := w.tracer.StartSpan("ApplyNextWFTFromHistory")
	span.SetTag("run_id", w.runID)
	span.SetTag("replaying", w.replaying)
	defer span.Finish()

	if w.haveSeenTerminalEvent {
		return nil
	}

	start := w.clock.wallClock.Now()

	events, err := w.history.TakeNextWFTSequence(w.currentStartedEventID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		w.replaying = false
		return nil
	}

	w.logger.Debugw("applying workflow task sequence", "run_id", w.runID, "event_count", len(events), "replaying", w.replaying)

	last := events[len(events)-1]
	if last.IsWorkflowTaskStarted() {
		w.nextStartedEventID = last.EventID()
	}

	if w.currentStartedEventID == 0 && events[0].EventID() != 1 {
		w.metrics.StickyCacheMiss()
		return NewCacheMissError("coordinator has no local state but history does not start at event 1")
	}

	for i, e := range events {
		hasNext := i != len(events)-1
		if err := w.handleEvent(e, hasNext); err != nil {
			w.logger.Errorw("error handling history event", "event_id", e.EventID(), "event_type", e.EventType(), "error", err)
			return err
		}
	}

	if err := w.prescanForPatchMarkers(); err != nil {
		return err
	}

	if !w.replaying {
		w.metrics.WFTaskReplayLatency(w.clock.wallClock.Now().Sub(start))
	}

	return nil
}

func (w *WorkflowMachines) prescanForPatchMarkers() error {
	peeked, err := w.history.PeekNextWFTSequence()
	if err != nil {
		return err
	}
	for _, e := range peeked {
		patchID, deprecated, ok := e.GetChangedMarkerDetails()
		if !ok {
			continue
		}
		if _, exists := w.changeInfos[patchID]; !exists {
			w.changeInfos[patchID] = &changeInfo{deprecated: deprecated}
			w.driven.SendJob(Job{Variant: JobNotifyHasPatch, NotifyHasPatch: &NotifyHasPatchAttributes{PatchID: patchID}})
		}
	}
	return nil
}

// handleEvent implements §4.1.2.
func (w *WorkflowMachines) handleEvent(e *HistoryEvent, hasNext bool) error {
	if e.IsFinalWFExecutionEvent() {
		w.haveSeenTerminalEvent = true
	}

	if e.IsCommandEvent() {
		return w.handleCommandEvent(e, hasNext)
	}

	if w.replaying && w.currentStartedEventID >= w.previousStartedEventID && e.EventType() != eventTypeWorkflowTaskCompleted {
		w.replaying = false
	}

	if initiatingID, ok := e.GetInitialCommandEventID(); ok {
		// Every step of a multi-event sub-machine sequence (e.g. an
		// activity's Started/Completed/Failed events) references the same
		// original scheduling/initiating event id, not the previous step's
		// own id, so the index stays anchored at initiatingID for as long as
		// the machine lives.
		key, found := w.machinesByEventID[initiatingID]
		if !found {
			return NewNondeterminismError("no machine registered for initiating event id")
		}
		machine, ok := w.registry.Get(key)
		if !ok {
			return NewFatalWFMachinesError("stale machine key in machines_by_event_id")
		}
		responses, err := machine.HandleEvent(e, hasNext)
		if err != nil {
			return err
		}
		w.logger.Debugw("handled stateful event", "event_id", e.EventID(), "event_type", e.EventType(), "key", key, "final", machine.IsFinalState(), "responses", MachineResponses(responses))
		if machine.IsFinalState() {
			delete(w.machinesByEventID, initiatingID)
		}
		return w.processMachineResponses(responses, key, false)
	}

	return w.handleNonStatefulEvent(e)
}

// handleCommandEvent implements §4.1.3.
func (w *WorkflowMachines) handleCommandEvent(e *HistoryEvent, hasNext bool) error {
	for {
		if len(w.commands) == 0 {
			return NewNondeterminismError("command event arrived with no queued command to correlate")
		}
		head := w.commands[0]
		headMachine, ok := w.registry.Get(head.key)
		if !ok {
			return NewFatalWFMachinesError("stale machine key at head of commands queue")
		}

		class, err := w.classifyChangeMarker(e, headMachine)
		if err != nil {
			return err
		}
		switch class {
		case changeMarkerSkipEvent:
			return nil
		case changeMarkerSkipCommand:
			w.commands = w.commands[1:]
			continue
		}

		w.commands = w.commands[1:]
		if headMachine.WasCancelledBeforeSentToServer() {
			continue
		}

		responses, err := headMachine.HandleEvent(e, hasNext)
		if err != nil {
			return err
		}
		w.logger.Debugw("correlated command event", "event_id", e.EventID(), "event_type", e.EventType(), "head", head, "final", headMachine.IsFinalState(), "responses", MachineResponses(responses))
		if !headMachine.IsFinalState() {
			w.machinesByEventID[e.EventID()] = head.key
		}
		return w.processMachineResponses(responses, head.key, false)
	}
}

type changeMarkerClass int

const (
	changeMarkerNormal changeMarkerClass = iota
	changeMarkerSkipEvent
	changeMarkerSkipCommand
)

// classifyChangeMarker implements §4.2's change-marker handling. The
// deprecated-skip and unmatched-marker rules only apply when the event
// doesn't already correlate to the head of the command queue; a marker that
// matches its head machine is handled normally regardless of its deprecated
// bit.
func (w *WorkflowMachines) classifyChangeMarker(e *HistoryEvent, headMachine SubMachine) (changeMarkerClass, error) {
	if headMachine.MatchesEvent(e) {
		return changeMarkerNormal, nil
	}
	patchID, deprecated, hasMarker := e.GetChangedMarkerDetails()
	if hasMarker {
		if deprecated {
			return changeMarkerSkipEvent, nil
		}
		return changeMarkerNormal, NewNondeterminismError("non-deprecated patch marker encountered for change " + patchID + ", but there is no corresponding change command")
	}
	if headMachine.Kind() == MachineKindVersion {
		return changeMarkerSkipCommand, nil
	}
	return changeMarkerNormal, nil
}

// handleNonStatefulEvent implements §4.1.4.
func (w *WorkflowMachines) handleNonStatefulEvent(e *HistoryEvent) error {
	switch e.EventType() {
	case eventTypeWorkflowExecutionStarted:
		attrs := e.Proto().GetWorkflowExecutionStartedEventAttributes()
		w.originalExecutionRunID = attrs.GetOriginalExecutionRunId()
		w.clock.markStarted(protoTimeToGoTime(e.Proto().GetEventTime()))
		w.driven.SendJob(Job{
			Variant: JobStartWorkflow,
			StartWorkflow: &StartWorkflowAttributes{
				WorkflowType:   attrs.GetWorkflowType().GetName(),
				WorkflowID:     w.workflowID,
				Arguments:      attrs.GetInput(),
				RandomnessSeed: strToRandomnessSeed(w.runID),
				Headers:        attrs.GetHeader().GetFields(),
			},
		})
		return nil
	case eventTypeWorkflowTaskScheduled:
		machine := newWorkflowTaskMachine()
		key := w.registry.Insert(machine)
		responses, err := machine.HandleEvent(e, false)
		if err != nil {
			return err
		}
		w.machinesByEventID[e.EventID()] = key
		return w.processMachineResponses(responses, key, false)
	case eventTypeWorkflowExecutionSignaled:
		attrs := e.Proto().GetWorkflowExecutionSignaledEventAttributes()
		w.driven.SendJob(Job{
			Variant: JobSignal,
			Signal: &SignalAttributes{
				SignalName: attrs.GetSignalName(),
				Input:      attrs.GetInput(),
				Identity:   attrs.GetIdentity(),
			},
		})
		return nil
	case eventTypeWorkflowExecutionCancelRequested:
		w.driven.SendJob(Job{Variant: JobCancel, Cancel: &CancelAttributes{}})
		return nil
	default:
		return NewFatalWFMachinesError("unexpected non-stateful event type")
	}
}

// processMachineResponses implements §4.1.5. allowIssueNewCommand is true
// only when called from the cancellation flow (§4.1.8); everywhere else an
// IssueNewCommand response is Fatal. sourceKey identifies the machine that
// produced these responses, so an IssueNewCommand rides back into the
// command queue under the same key as the machine that will later receive
// the corresponding history event.
func (w *WorkflowMachines) processMachineResponses(responses []MachineResponse, sourceKey MachineKey, allowIssueNewCommand bool) error {
	for _, r := range responses {
		switch r.Variant {
		case MachineResponsePushWFJob:
			w.driven.SendJob(*r.Job)
		case MachineResponseTriggerWFTaskStarted:
			w.currentStartedEventID = r.TriggerEventID
			w.clock.advance(r.TriggerEventTime)
		case MachineResponseUpdateRunIDOnWorkflowReset:
			// §9 open question resolved: only the randomness seed changes;
			// w.runID is deliberately left untouched.
			w.driven.SendJob(Job{
				Variant:          JobUpdateRandomSeed,
				UpdateRandomSeed: &UpdateRandomSeedAttributes{RandomnessSeed: strToRandomnessSeed(r.NewRunID)},
			})
		case MachineResponseIssueNewCommand:
			if !allowIssueNewCommand {
				return NewFatalWFMachinesError("IssueNewCommand response outside cancellation flow")
			}
			w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: r.NewCommand, key: sourceKey})
		default:
			return NewFatalWFMachinesError("unknown machine response variant")
		}
	}
	return nil
}

// IterateMachines implements §4.1: pulls pending workflow commands from the
// driver, translates them into new sub-machines and queued commands.
func (w *WorkflowMachines) IterateMachines() (bool, error) {
	span := w.tracer.StartSpan("IterateMachines")
	span.SetTag("run_id", w.runID)
	defer span.Finish()

	wfCommands, err := w.driven.FetchWorkflowIterationOutput()
	if err != nil {
		return false, err
	}
	w.logger.Debugw("iterate_machines", "run_id", w.runID, "wf_command_count", len(wfCommands))

	for i := range wfCommands {
		if err := w.translateWFCommand(&wfCommands[i]); err != nil {
			return false, err
		}
	}

	if err := w.prepareCommands(); err != nil {
		return false, err
	}

	// Jobs are drained only to count them and are handed straight back, so
	// they still reach lang in the next activation.
	jobs := w.driven.DrainJobs()
	for _, job := range jobs {
		w.driven.SendJob(job)
	}
	return len(jobs) > 0, nil
}

// translateWFCommand implements §4.1.7's workflow-side command translation
// table.
func (w *WorkflowMachines) translateWFCommand(cmd *WFCommand) error {
	switch cmd.Variant {
	case WFCommandAddTimer:
		machine := newTimerMachine(cmd.Seq)
		key := w.registry.Insert(machine)
		w.idToMachine[commandIDTimer(cmd.Seq)] = key
		w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: cmd, key: key})
	case WFCommandCancelTimer:
		return w.queueCancellation(commandIDTimer(cmd.Seq))
	case WFCommandAddActivity:
		machine := newActivityMachine(cmd.Seq, cmd.ActivityID)
		key := w.registry.Insert(machine)
		w.idToMachine[commandIDActivity(cmd.Seq)] = key
		w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: cmd, key: key})
	case WFCommandRequestCancelActivity:
		return w.queueCancellation(commandIDActivity(cmd.Seq))
	case WFCommandCompleteWorkflow, WFCommandFailWorkflow, WFCommandContinueAsNew, WFCommandCancelWorkflow:
		commandType := terminalCommandType(cmd.Variant)
		machine := newTerminalMachine(commandType)
		key := w.registry.Insert(machine)
		w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: cmd, key: key})
		w.clock.markEnded()
		w.recordTerminalMetric(cmd.Variant)
		if runtime, ok := w.clock.totalRuntime(); ok {
			w.metrics.WFE2ELatency(runtime)
		}
	case WFCommandSetPatchMarker:
		info, exists := w.changeInfos[cmd.PatchID]
		if exists && info.createdCommand {
			return nil
		}
		if !exists {
			info = &changeInfo{deprecated: cmd.Deprecated}
			w.changeInfos[cmd.PatchID] = info
		}
		info.createdCommand = true
		machine := newVersionMachine(cmd.PatchID, cmd.Deprecated)
		key := w.registry.Insert(machine)
		w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: cmd, key: key})
	case WFCommandUpsertSearchAttributes:
		machine := newUpsertSearchAttributesMachine()
		key := w.registry.Insert(machine)
		w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: cmd, key: key})
	case WFCommandAddChildWorkflow:
		machine := newChildWorkflowMachine(cmd.Seq)
		key := w.registry.Insert(machine)
		w.idToMachine[commandIDChildWorkflowStart(cmd.Seq)] = key
		w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: cmd, key: key})
	case WFCommandCancelUnstartedChild:
		return w.queueCancellation(commandIDChildWorkflowStart(cmd.Seq))
	case WFCommandRequestCancelExternalWorkflow:
		if err := w.resolveExternalTarget(cmd); err != nil {
			return err
		}
		machine := newCancelExternalMachine(cmd.Seq)
		key := w.registry.Insert(machine)
		w.idToMachine[commandIDCancelExternal(cmd.Seq)] = key
		w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: cmd, key: key})
	case WFCommandSignalExternalWorkflow:
		if err := w.resolveExternalTarget(cmd); err != nil {
			return err
		}
		machine := newSignalExternalMachine(cmd.Seq)
		key := w.registry.Insert(machine)
		w.idToMachine[commandIDSignalExternal(cmd.Seq)] = key
		w.currentWFTaskCommands = append(w.currentWFTaskCommands, commandAndMachine{command: cmd, key: key})
	case WFCommandCancelSignalWorkflow:
		return w.queueCancellation(commandIDSignalExternal(cmd.Seq))
	case WFCommandQueryResponse:
		return NewFatalWFMachinesError("QueryResponse must never reach the coordinator")
	case WFCommandNoCommandsFromLang:
		return nil
	default:
		return NewFatalWFMachinesError("unknown workflow command variant")
	}
	return nil
}

func terminalCommandType(v WFCommandVariant) enumspbCommandType {
	switch v {
	case WFCommandCompleteWorkflow:
		return commandTypeCompleteWorkflowExecution
	case WFCommandFailWorkflow:
		return commandTypeFailWorkflowExecution
	case WFCommandContinueAsNew:
		return commandTypeContinueAsNewWorkflowExecution
	default:
		return commandTypeCancelWorkflowExecution
	}
}

func (w *WorkflowMachines) recordTerminalMetric(v WFCommandVariant) {
	switch v {
	case WFCommandCompleteWorkflow:
		w.metrics.WFCompleted()
	case WFCommandFailWorkflow:
		w.metrics.WFFailed()
	case WFCommandCancelWorkflow:
		w.metrics.WFCanceled()
	case WFCommandContinueAsNew:
		w.metrics.WFContinuedAsNew()
	}
}

func (w *WorkflowMachines) resolveExternalTarget(cmd *WFCommand) error {
	if cmd.Target == nil {
		return NewFatalWFMachinesError("external workflow command missing target")
	}
	if cmd.Target.Namespace == "" {
		cmd.Target.Namespace = w.namespace
	}
	return nil
}

// queueCancellation implements §4.1.8's process_cancellation(id).
func (w *WorkflowMachines) queueCancellation(id CommandID) error {
	key, ok := w.idToMachine[id]
	if !ok {
		return NewFatalWFMachinesError("cancellation of unknown command id")
	}
	machine, ok := w.registry.Get(key)
	if !ok {
		return NewFatalWFMachinesError("stale machine key during cancellation")
	}
	responses, err := machine.Cancel()
	if err != nil {
		return err
	}
	return w.processMachineResponses(responses, key, true)
}

// prepareCommands implements §4.1.6: drains current_wf_task_commands in
// FIFO order, invoking handle_command on each non-pre-cancelled machine.
func (w *WorkflowMachines) prepareCommands() error {
	pending := w.currentWFTaskCommands
	w.currentWFTaskCommands = nil

	for _, entry := range pending {
		if entry.command == nil {
			continue
		}
		machine, ok := w.registry.Get(entry.key)
		if !ok {
			return NewFatalWFMachinesError("stale machine key in current_wf_task_commands")
		}
		if machine.WasCancelledBeforeSentToServer() {
			continue
		}
		responses, err := machine.HandleCommand(wfCommandToEventType(entry.command.Variant))
		if err != nil {
			return err
		}
		w.logger.Debugw("prepared command", "entry", entry, "responses", MachineResponses(responses))
		if err := w.processMachineResponses(responses, entry.key, false); err != nil {
			return err
		}
		w.commands = append(w.commands, entry)
	}
	return nil
}

func wfCommandToEventType(v WFCommandVariant) enumspbCommandType {
	switch v {
	case WFCommandAddTimer:
		return commandTypeStartTimer
	case WFCommandCancelTimer:
		return commandTypeCancelTimer
	case WFCommandAddActivity:
		return commandTypeScheduleActivityTask
	case WFCommandRequestCancelActivity:
		return commandTypeRequestCancelActivityTask
	case WFCommandCompleteWorkflow:
		return commandTypeCompleteWorkflowExecution
	case WFCommandFailWorkflow:
		return commandTypeFailWorkflowExecution
	case WFCommandCancelWorkflow:
		return commandTypeCancelWorkflowExecution
	case WFCommandContinueAsNew:
		return commandTypeContinueAsNewWorkflowExecution
	case WFCommandSetPatchMarker:
		return commandTypeRecordMarker
	case WFCommandUpsertSearchAttributes:
		return commandTypeUpsertWorkflowSearchAttributes
	case WFCommandAddChildWorkflow:
		return commandTypeStartChildWorkflowExecution
	case WFCommandRequestCancelExternalWorkflow:
		return commandTypeRequestCancelExternalWorkflowExecution
	case WFCommandSignalExternalWorkflow:
		return commandTypeSignalExternalWorkflowExecution
	default:
		return commandTypeRecordMarker
	}
}

// GetCommands implements §4.1's get_commands(): a snapshot of the outgoing
// command queue, filtering out commands whose machine has already reached
// final state.
func (w *WorkflowMachines) GetCommands() []*WFCommand {
	var result []*WFCommand
	for _, entry := range w.commands {
		if entry.command == nil {
			continue
		}
		if machine, ok := w.registry.Get(entry.key); ok && machine.IsFinalState() {
			continue
		}
		result = append(result, entry.command)
	}
	return result
}

// GetWFActivation implements §4.1's get_wf_activation(): drains buffered
// jobs from the driver into an activation.
func (w *WorkflowMachines) GetWFActivation() Activation {
	jobs := w.driven.DrainJobs()
	now := w.clock.now()
	return Activation{
		Timestamp:    now,
		HasTimestamp: !now.IsZero(),
		IsReplaying:  w.replaying,
		RunID:        w.runID,
		Jobs:         jobs,
	}
}
