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
	"errors"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/pborman/uuid"
	"github.com/stretchr/testify/require"
	commonpb "go.temporal.io/api/common/v1"
	historypb "go.temporal.io/api/history/v1"
)

// fakeHistorySource serves a single preset page of events, then reports
// exhaustion, or returns a fixed transport error when configured to.
type fakeHistorySource struct {
	events []*historypb.HistoryEvent
	served bool
	err    error
}

func (f *fakeHistorySource) NextPage() ([]*historypb.HistoryEvent, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.served {
		return nil, false, nil
	}
	f.served = true
	return f.events, true, nil
}

func newTestMachines() (*WorkflowMachines, *InMemoryDrivenWorkflow) {
	driven := NewInMemoryDrivenWorkflow()
	m := NewWorkflowMachines(NewWorkflowMachinesOptions{
		Namespace:  "test-namespace",
		WorkflowID: "test-workflow",
		RunID:      "test-run",
		Driven:     driven,
		WallClock:  clock.NewMock(),
	})
	return m, driven
}

func ev(id int64, t enumspbEventType) *historypb.HistoryEvent {
	return &historypb.HistoryEvent{EventId: id, EventType: t}
}

func startedEvent(id int64) *historypb.HistoryEvent {
	return &historypb.HistoryEvent{
		EventId:   id,
		EventType: eventTypeWorkflowExecutionStarted,
		Attributes: &historypb.HistoryEvent_WorkflowExecutionStartedEventAttributes{
			WorkflowExecutionStartedEventAttributes: &historypb.WorkflowExecutionStartedEventAttributes{
				WorkflowType: &commonpb.WorkflowType{Name: "TestWorkflow"},
			},
		},
	}
}

func taskScheduledEvent(id int64) *historypb.HistoryEvent {
	return ev(id, eventTypeWorkflowTaskScheduled)
}

func taskStartedEvent(id int64, scheduledID int64) *historypb.HistoryEvent {
	now := time.Unix(0, 0)
	return &historypb.HistoryEvent{
		EventId:   id,
		EventType: eventTypeWorkflowTaskStarted,
		EventTime: &now,
		Attributes: &historypb.HistoryEvent_WorkflowTaskStartedEventAttributes{
			WorkflowTaskStartedEventAttributes: &historypb.WorkflowTaskStartedEventAttributes{ScheduledEventId: scheduledID},
		},
	}
}

func taskCompletedEvent(id int64, scheduledID int64) *historypb.HistoryEvent {
	return &historypb.HistoryEvent{
		EventId:   id,
		EventType: eventTypeWorkflowTaskCompleted,
		Attributes: &historypb.HistoryEvent_WorkflowTaskCompletedEventAttributes{
			WorkflowTaskCompletedEventAttributes: &historypb.WorkflowTaskCompletedEventAttributes{ScheduledEventId: scheduledID},
		},
	}
}

func timerStartedEvent(id int64) *historypb.HistoryEvent {
	return ev(id, eventTypeTimerStarted)
}

func timerFiredEvent(id int64, startedID int64) *historypb.HistoryEvent {
	return &historypb.HistoryEvent{
		EventId:   id,
		EventType: eventTypeTimerFired,
		Attributes: &historypb.HistoryEvent_TimerFiredEventAttributes{
			TimerFiredEventAttributes: &historypb.TimerFiredEventAttributes{StartedEventId: startedID},
		},
	}
}

func markerRecordedEvent(id int64, details map[string]*commonpb.Payloads) *historypb.HistoryEvent {
	return &historypb.HistoryEvent{
		EventId:   id,
		EventType: eventTypeMarkerRecorded,
		Attributes: &historypb.HistoryEvent_MarkerRecordedEventAttributes{
			MarkerRecordedEventAttributes: &historypb.MarkerRecordedEventAttributes{
				MarkerName: versionMarkerName,
				Details:    details,
			},
		},
	}
}

// Test_WorkflowMachines_FirstTaskStartsWorkflow covers the opening sequence
// every run begins with: Started, TaskScheduled, TaskStarted.
func Test_WorkflowMachines_FirstTaskStartsWorkflow(t *testing.T) {
	source := &fakeHistorySource{events: []*historypb.HistoryEvent{
		startedEvent(1),
		taskScheduledEvent(2),
		taskStartedEvent(3, 2),
	}}
	m, driven := newTestMachines()

	err := m.NewHistoryFromServer(NewHistoryUpdate(source, 0))
	require.NoError(t, err)

	jobs := driven.DrainJobs()
	require.Len(t, jobs, 1)
	require.Equal(t, JobStartWorkflow, jobs[0].Variant)
	require.Equal(t, "TestWorkflow", jobs[0].StartWorkflow.WorkflowType)
	require.Equal(t, int64(3), m.currentStartedEventID)
}

// Test_WorkflowMachines_TimerRoundTrip covers the happy-path timer scenario:
// lang adds a timer, the coordinator emits StartTimer, history confirms it
// with TimerStarted/TimerFired, and lang receives a FireTimer job.
func Test_WorkflowMachines_TimerRoundTrip(t *testing.T) {
	m, driven := newTestMachines()

	source := &fakeHistorySource{events: []*historypb.HistoryEvent{
		startedEvent(1),
		taskScheduledEvent(2),
		taskStartedEvent(3, 2),
	}}
	update := NewHistoryUpdate(source, 0)
	require.NoError(t, m.NewHistoryFromServer(update))
	driven.DrainJobs()

	driven.ScriptCommands(WFCommand{Variant: WFCommandAddTimer, Seq: 1})
	hasJobs, err := m.IterateMachines()
	require.NoError(t, err)
	require.False(t, hasJobs)

	commands := m.GetCommands()
	require.Len(t, commands, 1)
	require.Equal(t, WFCommandAddTimer, commands[0].Variant)

	source.events = []*historypb.HistoryEvent{
		taskCompletedEvent(4, 2),
		timerStartedEvent(5),
		timerFiredEvent(6, 5),
		taskScheduledEvent(7),
		taskStartedEvent(8, 7),
	}
	source.served = false
	require.NoError(t, m.ApplyNextWFTFromHistory())

	jobs := driven.DrainJobs()
	require.Len(t, jobs, 1)
	require.Equal(t, JobFireTimer, jobs[0].Variant)
	require.Equal(t, uint32(1), jobs[0].FireTimer.Seq)
	require.False(t, jobs[0].FireTimer.Canceled)
}

// Test_WorkflowMachines_CacheMiss covers starting replay against a history
// page that doesn't begin at event 1 with no local state.
func Test_WorkflowMachines_CacheMiss(t *testing.T) {
	source := &fakeHistorySource{events: []*historypb.HistoryEvent{
		taskCompletedEvent(9, 2),
	}}
	m, _ := newTestMachines()
	err := m.NewHistoryFromServer(NewHistoryUpdate(source, 8))
	require.Error(t, err)
	require.True(t, IsCacheMissError(err))
}

// Test_WorkflowMachines_NondeterminismOnUnknownCommandEvent covers a command
// event arriving with nothing queued to correlate it to.
func Test_WorkflowMachines_NondeterminismOnUnknownCommandEvent(t *testing.T) {
	source := &fakeHistorySource{events: []*historypb.HistoryEvent{
		startedEvent(1),
		taskScheduledEvent(2),
		taskStartedEvent(3, 2),
	}}
	m, _ := newTestMachines()
	require.NoError(t, m.NewHistoryFromServer(NewHistoryUpdate(source, 0)))

	source.events = []*historypb.HistoryEvent{
		taskCompletedEvent(4, 2),
		timerStartedEvent(5),
	}
	source.served = false
	err := m.ApplyNextWFTFromHistory()
	require.Error(t, err)
	require.True(t, IsNondeterminismError(err))
}

// Test_WorkflowMachines_HistoryFetchingErrorPropagates covers a transport
// failure surfacing through ApplyNextWFTFromHistory as a WFMachinesError.
func Test_WorkflowMachines_HistoryFetchingErrorPropagates(t *testing.T) {
	source := &fakeHistorySource{err: errors.New("transport unavailable")}
	m, _ := newTestMachines()
	err := m.NewHistoryFromServer(NewHistoryUpdate(source, 0))
	require.Error(t, err)
	var wfErr *WFMachinesError
	require.ErrorAs(t, err, &wfErr)
	require.Equal(t, WFMachinesHistoryFetchingError, wfErr.Kind())
}

// Test_WorkflowMachines_CancelTimerBeforeSent covers cancelling a timer in
// the same task it was added, before any command reaches the server.
func Test_WorkflowMachines_CancelTimerBeforeSent(t *testing.T) {
	m, driven := newTestMachines()
	source := &fakeHistorySource{events: []*historypb.HistoryEvent{
		startedEvent(1),
		taskScheduledEvent(2),
		taskStartedEvent(3, 2),
	}}
	require.NoError(t, m.NewHistoryFromServer(NewHistoryUpdate(source, 0)))
	driven.DrainJobs()

	driven.ScriptCommands(
		WFCommand{Variant: WFCommandAddTimer, Seq: 1},
		WFCommand{Variant: WFCommandCancelTimer, Seq: 1},
	)
	_, err := m.IterateMachines()
	require.NoError(t, err)

	jobs := driven.DrainJobs()
	require.Len(t, jobs, 1)
	require.Equal(t, JobFireTimer, jobs[0].Variant)
	require.True(t, jobs[0].FireTimer.Canceled)

	require.Empty(t, m.GetCommands())
}

// Test_WorkflowMachines_WorkflowIsFinished covers terminal-event detection.
func Test_WorkflowMachines_WorkflowIsFinished(t *testing.T) {
	m, driven := newTestMachines()
	source := &fakeHistorySource{events: []*historypb.HistoryEvent{
		startedEvent(1),
		taskScheduledEvent(2),
		taskStartedEvent(3, 2),
	}}
	update := NewHistoryUpdate(source, 0)
	require.NoError(t, m.NewHistoryFromServer(update))
	require.False(t, m.WorkflowIsFinished())

	// WorkflowExecutionCompleted is a command event, so lang must have
	// issued the matching CompleteWorkflow command for it to correlate to.
	driven.ScriptCommands(WFCommand{Variant: WFCommandCompleteWorkflow})
	_, err := m.IterateMachines()
	require.NoError(t, err)

	source.events = []*historypb.HistoryEvent{
		taskCompletedEvent(4, 2),
		ev(5, eventTypeWorkflowExecutionCompleted),
	}
	source.served = false
	require.NoError(t, m.ApplyNextWFTFromHistory())
	require.True(t, m.WorkflowIsFinished())
}

// Test_WorkflowMachines_DeprecatedPatchMarkerIsSkipped covers §4.2's rule
// that a deprecated patch marker event that does not match the head of the
// command queue is skipped without correlating to any queued command.
func Test_WorkflowMachines_DeprecatedPatchMarkerIsSkipped(t *testing.T) {
	m, driven := newTestMachines()
	patchID := uuid.New()
	details := encodeChangeMarkerDetails(patchID, true)

	source := &fakeHistorySource{events: []*historypb.HistoryEvent{
		startedEvent(1),
		taskScheduledEvent(2),
		taskStartedEvent(3, 2),
	}}
	update := NewHistoryUpdate(source, 0)
	require.NoError(t, m.NewHistoryFromServer(update))
	driven.DrainJobs()

	// Queue an unrelated command so the marker arrives against a head
	// machine it doesn't match, exercising the skip rather than the
	// empty-queue nondeterminism path.
	driven.ScriptCommands(WFCommand{Variant: WFCommandAddTimer, Seq: 1})
	_, err := m.IterateMachines()
	require.NoError(t, err)

	source.events = []*historypb.HistoryEvent{
		taskCompletedEvent(4, 2),
		markerRecordedEvent(5, details),
	}
	source.served = false
	require.NoError(t, m.ApplyNextWFTFromHistory())

	require.Len(t, m.GetCommands(), 1)
}

// Test_WorkflowMachines_PreResolvedPatchSkipsCommand covers a SetPatchMarker
// command completing immediately on HandleCommand, per §4.2's rule that
// Version machines may have no matching history marker, without the
// coordinator raising an error when no such marker ever arrives.
func Test_WorkflowMachines_PreResolvedPatchSkipsCommand(t *testing.T) {
	m, driven := newTestMachines()
	source := &fakeHistorySource{events: []*historypb.HistoryEvent{
		startedEvent(1),
		taskScheduledEvent(2),
		taskStartedEvent(3, 2),
	}}
	require.NoError(t, m.NewHistoryFromServer(NewHistoryUpdate(source, 0)))
	driven.DrainJobs()

	driven.ScriptCommands(WFCommand{Variant: WFCommandSetPatchMarker, PatchID: uuid.New()})
	_, err := m.IterateMachines()
	require.NoError(t, err)

	source.events = []*historypb.HistoryEvent{
		taskCompletedEvent(4, 2),
		taskScheduledEvent(5),
		taskStartedEvent(6, 5),
	}
	source.served = false
	require.NoError(t, m.ApplyNextWFTFromHistory())
}
