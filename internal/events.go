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
	historypb "go.temporal.io/api/history/v1"
)

// HistoryEvent wraps a historypb.HistoryEvent with the derived predicates the
// coordinator's task-application algorithm needs on every event. Each
// predicate derives its answer from the event type when it is called; nothing
// is cached on the wrapper.
type HistoryEvent struct {
	proto *historypb.HistoryEvent
}

// NewHistoryEvent wraps a raw proto event.
func NewHistoryEvent(proto *historypb.HistoryEvent) *HistoryEvent {
	return &HistoryEvent{proto: proto}
}

// Proto returns the underlying wire event.
func (e *HistoryEvent) Proto() *historypb.HistoryEvent {
	return e.proto
}

// EventID returns the monotonically increasing event id.
func (e *HistoryEvent) EventID() int64 {
	return e.proto.GetEventId()
}

// EventType returns the event's type.
func (e *HistoryEvent) EventType() enumspbEventType {
	return e.proto.GetEventType()
}

// IsWorkflowTaskStarted reports whether this event marks a task boundary.
func (e *HistoryEvent) IsWorkflowTaskStarted() bool {
	return e.EventType() == eventTypeWorkflowTaskStarted
}

// IsFinalWFExecutionEvent reports whether this event concludes the run.
func (e *HistoryEvent) IsFinalWFExecutionEvent() bool {
	switch e.EventType() {
	case eventTypeWorkflowExecutionCompleted,
		eventTypeWorkflowExecutionFailed,
		eventTypeWorkflowExecutionCanceled,
		eventTypeWorkflowExecutionTerminated,
		eventTypeWorkflowExecutionTimedOut,
		eventTypeWorkflowExecutionContinuedAsNew:
		return true
	default:
		return false
	}
}

// commandEventTypes is the set of event types the service records as the
// durable record of a previously issued workflow command.
var commandEventTypes = map[enumspbEventType]bool{
	eventTypeTimerStarted:                                       true,
	eventTypeTimerCanceled:                                      true,
	eventTypeActivityTaskScheduled:                              true,
	eventTypeActivityTaskCancelRequested:                        true,
	eventTypeWorkflowExecutionCompleted:                         true,
	eventTypeWorkflowExecutionFailed:                            true,
	eventTypeWorkflowExecutionCanceled:                          true,
	eventTypeWorkflowExecutionContinuedAsNew:                    true,
	eventTypeMarkerRecorded:                                     true,
	eventTypeStartChildWorkflowExecutionInitiated:               true,
	eventTypeRequestCancelExternalWorkflowExecutionInitiated:    true,
	eventTypeSignalExternalWorkflowExecutionInitiated:           true,
	eventTypeUpsertWorkflowSearchAttributes:                     true,
}

// IsCommandEvent reports whether this event is the durable record of a
// previously issued workflow command.
func (e *HistoryEvent) IsCommandEvent() bool {
	return commandEventTypes[e.EventType()]
}

// GetInitialCommandEventID returns the id of the event that originally
// initiated this event's multi-event sub-machine sequence, if any.
func (e *HistoryEvent) GetInitialCommandEventID() (int64, bool) {
	switch e.EventType() {
	case eventTypeActivityTaskStarted:
		return e.proto.GetActivityTaskStartedEventAttributes().GetScheduledEventId(), true
	case eventTypeActivityTaskCompleted:
		return e.proto.GetActivityTaskCompletedEventAttributes().GetScheduledEventId(), true
	case eventTypeActivityTaskFailed:
		return e.proto.GetActivityTaskFailedEventAttributes().GetScheduledEventId(), true
	case eventTypeActivityTaskTimedOut:
		return e.proto.GetActivityTaskTimedOutEventAttributes().GetScheduledEventId(), true
	case eventTypeActivityTaskCanceled:
		return e.proto.GetActivityTaskCanceledEventAttributes().GetScheduledEventId(), true
	case eventTypeActivityTaskCancelRequested:
		return e.proto.GetActivityTaskCancelRequestedEventAttributes().GetScheduledEventId(), true
	case eventTypeTimerFired:
		return e.proto.GetTimerFiredEventAttributes().GetStartedEventId(), true
	case eventTypeTimerCanceled:
		return e.proto.GetTimerCanceledEventAttributes().GetStartedEventId(), true
	case eventTypeStartChildWorkflowExecutionFailed:
		return e.proto.GetStartChildWorkflowExecutionFailedEventAttributes().GetInitiatedEventId(), true
	case eventTypeChildWorkflowExecutionStarted:
		return e.proto.GetChildWorkflowExecutionStartedEventAttributes().GetInitiatedEventId(), true
	case eventTypeChildWorkflowExecutionCompleted:
		return e.proto.GetChildWorkflowExecutionCompletedEventAttributes().GetInitiatedEventId(), true
	case eventTypeChildWorkflowExecutionFailed:
		return e.proto.GetChildWorkflowExecutionFailedEventAttributes().GetInitiatedEventId(), true
	case eventTypeChildWorkflowExecutionCanceled:
		return e.proto.GetChildWorkflowExecutionCanceledEventAttributes().GetInitiatedEventId(), true
	case eventTypeChildWorkflowExecutionTimedOut:
		return e.proto.GetChildWorkflowExecutionTimedOutEventAttributes().GetInitiatedEventId(), true
	case eventTypeChildWorkflowExecutionTerminated:
		return e.proto.GetChildWorkflowExecutionTerminatedEventAttributes().GetInitiatedEventId(), true
	case eventTypeExternalWorkflowExecutionCancelRequested:
		return e.proto.GetExternalWorkflowExecutionCancelRequestedEventAttributes().GetInitiatedEventId(), true
	case eventTypeRequestCancelExternalWorkflowExecutionFailed:
		return e.proto.GetRequestCancelExternalWorkflowExecutionFailedEventAttributes().GetInitiatedEventId(), true
	case eventTypeExternalWorkflowExecutionSignaled:
		return e.proto.GetExternalWorkflowExecutionSignaledEventAttributes().GetInitiatedEventId(), true
	case eventTypeSignalExternalWorkflowExecutionFailed:
		return e.proto.GetSignalExternalWorkflowExecutionFailedEventAttributes().GetInitiatedEventId(), true
	case eventTypeWorkflowTaskStarted:
		return e.proto.GetWorkflowTaskStartedEventAttributes().GetScheduledEventId(), true
	case eventTypeWorkflowTaskCompleted:
		return e.proto.GetWorkflowTaskCompletedEventAttributes().GetScheduledEventId(), true
	case eventTypeWorkflowTaskTimedOut:
		return e.proto.GetWorkflowTaskTimedOutEventAttributes().GetScheduledEventId(), true
	case eventTypeWorkflowTaskFailed:
		return e.proto.GetWorkflowTaskFailedEventAttributes().GetScheduledEventId(), true
	default:
		return 0, false
	}
}

// GetChangedMarkerDetails returns the patch id and deprecated flag if this
// event is a MarkerRecorded event for the built-in version marker.
func (e *HistoryEvent) GetChangedMarkerDetails() (patchID string, deprecated bool, ok bool) {
	if e.EventType() != eventTypeMarkerRecorded {
		return "", false, false
	}
	attrs := e.proto.GetMarkerRecordedEventAttributes()
	if attrs.GetMarkerName() != versionMarkerName {
		return "", false, false
	}
	return decodeChangeMarkerDetails(attrs.GetDetails())
}
