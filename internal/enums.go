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
	enumspb "go.temporal.io/api/enums/v1"
)

// enumspbEventType is a local short name for the wire event-type enum, used
// throughout events.go and the machines to keep switch statements readable.
type enumspbEventType = enumspb.EventType

// enumspbCommandType is a local short name for the wire command-type enum.
type enumspbCommandType = enumspb.CommandType

const versionMarkerName = "Version"

const (
	eventTypeWorkflowExecutionStarted                        = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_STARTED
	eventTypeWorkflowExecutionCompleted                      = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_COMPLETED
	eventTypeWorkflowExecutionFailed                         = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_FAILED
	eventTypeWorkflowExecutionTimedOut                       = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_TIMED_OUT
	eventTypeWorkflowTaskScheduled                           = enumspb.EVENT_TYPE_WORKFLOW_TASK_SCHEDULED
	eventTypeWorkflowTaskStarted                             = enumspb.EVENT_TYPE_WORKFLOW_TASK_STARTED
	eventTypeWorkflowTaskCompleted                           = enumspb.EVENT_TYPE_WORKFLOW_TASK_COMPLETED
	eventTypeWorkflowTaskTimedOut                            = enumspb.EVENT_TYPE_WORKFLOW_TASK_TIMED_OUT
	eventTypeWorkflowTaskFailed                              = enumspb.EVENT_TYPE_WORKFLOW_TASK_FAILED
	eventTypeActivityTaskScheduled                            = enumspb.EVENT_TYPE_ACTIVITY_TASK_SCHEDULED
	eventTypeActivityTaskStarted                              = enumspb.EVENT_TYPE_ACTIVITY_TASK_STARTED
	eventTypeActivityTaskCompleted                            = enumspb.EVENT_TYPE_ACTIVITY_TASK_COMPLETED
	eventTypeActivityTaskFailed                               = enumspb.EVENT_TYPE_ACTIVITY_TASK_FAILED
	eventTypeActivityTaskTimedOut                             = enumspb.EVENT_TYPE_ACTIVITY_TASK_TIMED_OUT
	eventTypeActivityTaskCancelRequested                      = enumspb.EVENT_TYPE_ACTIVITY_TASK_CANCEL_REQUESTED
	eventTypeActivityTaskCanceled                             = enumspb.EVENT_TYPE_ACTIVITY_TASK_CANCELED
	eventTypeTimerStarted                                     = enumspb.EVENT_TYPE_TIMER_STARTED
	eventTypeTimerFired                                       = enumspb.EVENT_TYPE_TIMER_FIRED
	eventTypeTimerCanceled                                    = enumspb.EVENT_TYPE_TIMER_CANCELED
	eventTypeWorkflowExecutionCancelRequested                 = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_CANCEL_REQUESTED
	eventTypeWorkflowExecutionCanceled                        = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_CANCELED
	eventTypeWorkflowExecutionTerminated                      = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_TERMINATED
	eventTypeWorkflowExecutionContinuedAsNew                  = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_CONTINUED_AS_NEW
	eventTypeWorkflowExecutionSignaled                        = enumspb.EVENT_TYPE_WORKFLOW_EXECUTION_SIGNALED
	eventTypeMarkerRecorded                                   = enumspb.EVENT_TYPE_MARKER_RECORDED
	eventTypeUpsertWorkflowSearchAttributes                   = enumspb.EVENT_TYPE_UPSERT_WORKFLOW_SEARCH_ATTRIBUTES
	eventTypeStartChildWorkflowExecutionInitiated             = enumspb.EVENT_TYPE_START_CHILD_WORKFLOW_EXECUTION_INITIATED
	eventTypeStartChildWorkflowExecutionFailed                = enumspb.EVENT_TYPE_START_CHILD_WORKFLOW_EXECUTION_FAILED
	eventTypeChildWorkflowExecutionStarted                    = enumspb.EVENT_TYPE_CHILD_WORKFLOW_EXECUTION_STARTED
	eventTypeChildWorkflowExecutionCompleted                  = enumspb.EVENT_TYPE_CHILD_WORKFLOW_EXECUTION_COMPLETED
	eventTypeChildWorkflowExecutionFailed                     = enumspb.EVENT_TYPE_CHILD_WORKFLOW_EXECUTION_FAILED
	eventTypeChildWorkflowExecutionCanceled                   = enumspb.EVENT_TYPE_CHILD_WORKFLOW_EXECUTION_CANCELED
	eventTypeChildWorkflowExecutionTimedOut                   = enumspb.EVENT_TYPE_CHILD_WORKFLOW_EXECUTION_TIMED_OUT
	eventTypeChildWorkflowExecutionTerminated                 = enumspb.EVENT_TYPE_CHILD_WORKFLOW_EXECUTION_TERMINATED
	eventTypeRequestCancelExternalWorkflowExecutionInitiated  = enumspb.EVENT_TYPE_REQUEST_CANCEL_EXTERNAL_WORKFLOW_EXECUTION_INITIATED
	eventTypeRequestCancelExternalWorkflowExecutionFailed     = enumspb.EVENT_TYPE_REQUEST_CANCEL_EXTERNAL_WORKFLOW_EXECUTION_FAILED
	eventTypeExternalWorkflowExecutionCancelRequested         = enumspb.EVENT_TYPE_EXTERNAL_WORKFLOW_EXECUTION_CANCEL_REQUESTED
	eventTypeSignalExternalWorkflowExecutionInitiated         = enumspb.EVENT_TYPE_SIGNAL_EXTERNAL_WORKFLOW_EXECUTION_INITIATED
	eventTypeSignalExternalWorkflowExecutionFailed            = enumspb.EVENT_TYPE_SIGNAL_EXTERNAL_WORKFLOW_EXECUTION_FAILED
	eventTypeExternalWorkflowExecutionSignaled                = enumspb.EVENT_TYPE_EXTERNAL_WORKFLOW_EXECUTION_SIGNALED
)

const (
	commandTypeStartTimer                          = enumspb.COMMAND_TYPE_START_TIMER
	commandTypeCancelTimer                         = enumspb.COMMAND_TYPE_CANCEL_TIMER
	commandTypeScheduleActivityTask                = enumspb.COMMAND_TYPE_SCHEDULE_ACTIVITY_TASK
	commandTypeRequestCancelActivityTask           = enumspb.COMMAND_TYPE_REQUEST_CANCEL_ACTIVITY_TASK
	commandTypeCompleteWorkflowExecution           = enumspb.COMMAND_TYPE_COMPLETE_WORKFLOW_EXECUTION
	commandTypeFailWorkflowExecution               = enumspb.COMMAND_TYPE_FAIL_WORKFLOW_EXECUTION
	commandTypeCancelWorkflowExecution              = enumspb.COMMAND_TYPE_CANCEL_WORKFLOW_EXECUTION
	commandTypeContinueAsNewWorkflowExecution       = enumspb.COMMAND_TYPE_CONTINUE_AS_NEW_WORKFLOW_EXECUTION
	commandTypeRecordMarker                         = enumspb.COMMAND_TYPE_RECORD_MARKER
	commandTypeStartChildWorkflowExecution          = enumspb.COMMAND_TYPE_START_CHILD_WORKFLOW_EXECUTION
	commandTypeRequestCancelExternalWorkflowExecution = enumspb.COMMAND_TYPE_REQUEST_CANCEL_EXTERNAL_WORKFLOW_EXECUTION
	commandTypeSignalExternalWorkflowExecution      = enumspb.COMMAND_TYPE_SIGNAL_EXTERNAL_WORKFLOW_EXECUTION
	commandTypeUpsertWorkflowSearchAttributes       = enumspb.COMMAND_TYPE_UPSERT_WORKFLOW_SEARCH_ATTRIBUTES
)
