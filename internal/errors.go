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
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	failurepb "go.temporal.io/api/failure/v1"
)

var (
	// ErrNoData is returned when Get is called without any value present.
	ErrNoData = errors.New("no data available")
	// ErrTooManyArg is returned when number of arguments exceeds expected.
	ErrTooManyArg = errors.New("too many arguments")
	// ErrActivityResultPending is returned from activity's implementation to
	// indicate the activity is not completing when activity method returns.
	ErrActivityResultPending = errors.New("not error: do not autocomplete, using ActivityCompleteClient")
)

type (
	// failureHolder is implemented by every error type that carries an
	// originating failurepb.Failure, so the coordinator can re-serialize a
	// locally constructed error back onto the wire unchanged.
	failureHolder interface {
		setFailure(*failurepb.Failure)
		failure() *failurepb.Failure
	}

	// temporalError is the common embedding for job-payload failure types
	// that may or may not have arrived already wrapped in a failurepb.Failure.
	temporalError struct {
		originalFailure *failurepb.Failure
	}

	// ApplicationError is used to report errors from an activity or workflow
	// that a driven workflow implementation raises deliberately.
	ApplicationError struct {
		temporalError
		message      string
		originalType string
		nonRetryable bool
		cause        error
		details      Values
	}

	// TimeoutError is returned when an activity or child workflow times out.
	TimeoutError struct {
		temporalError
		timeoutType          enumspb.TimeoutType
		lastHeartbeatDetails Values
		cause                error
	}

	// CanceledError is returned when a job or command was cancelled.
	CanceledError struct {
		temporalError
		details Values
	}

	// PanicError contains information about an unhandled panic raised while
	// a driven workflow was processing a job.
	PanicError struct {
		temporalError
		value      interface{}
		stackTrace string
	}
)

// NewApplicationError creates a new ApplicationError.
func NewApplicationError(message string, nonRetryable bool, cause error, details ...interface{}) *ApplicationError {
	applicationErr := &ApplicationError{
		message:      message,
		nonRetryable: nonRetryable,
		cause:        cause,
	}
	if len(details) > 0 {
		if d, ok := details[0].(Values); ok {
			applicationErr.details = d
		} else {
			applicationErr.details = ErrorDetailsValues(details)
		}
	}
	return applicationErr
}

// Error implements error.
func (e *ApplicationError) Error() string {
	return e.message
}

// Unwrap implements errors.Unwrap.
func (e *ApplicationError) Unwrap() error {
	return e.cause
}

// OriginalType returns the type of the error as reported by the entity that raised it.
func (e *ApplicationError) OriginalType() string {
	return e.originalType
}

// NonRetryable returns whether the error should be retried.
func (e *ApplicationError) NonRetryable() bool {
	return e.nonRetryable
}

// HasDetails returns if there are any details attached.
func (e *ApplicationError) HasDetails() bool {
	return e.details != nil && e.details.HasValues()
}

// Details extracts the details attached to the error, if present.
func (e *ApplicationError) Details(valuePtrs ...interface{}) error {
	if !e.HasDetails() {
		return ErrNoData
	}
	return e.details.Get(valuePtrs...)
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(timeoutType enumspb.TimeoutType, cause error, lastHeartbeatDetails ...interface{}) *TimeoutError {
	timeoutErr := &TimeoutError{
		timeoutType: timeoutType,
		cause:       cause,
	}
	if len(lastHeartbeatDetails) > 0 {
		if d, ok := lastHeartbeatDetails[0].(Values); ok {
			timeoutErr.lastHeartbeatDetails = d
		} else {
			timeoutErr.lastHeartbeatDetails = ErrorDetailsValues(lastHeartbeatDetails)
		}
	}
	return timeoutErr
}

// NewHeartbeatTimeoutError creates a TimeoutError for a heartbeat timeout.
func NewHeartbeatTimeoutError(details ...interface{}) *TimeoutError {
	return NewTimeoutError(enumspb.TIMEOUT_TYPE_HEARTBEAT, nil, details...)
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout (type: %v)", e.timeoutType)
}

// Unwrap implements errors.Unwrap.
func (e *TimeoutError) Unwrap() error {
	return e.cause
}

// TimeoutType returns the type of timeout that occurred.
func (e *TimeoutError) TimeoutType() enumspb.TimeoutType {
	return e.timeoutType
}

// HasLastHeartbeatDetails returns true if last heartbeat details are attached.
func (e *TimeoutError) HasLastHeartbeatDetails() bool {
	return e.lastHeartbeatDetails != nil && e.lastHeartbeatDetails.HasValues()
}

// LastHeartbeatDetails extracts the last heartbeat details attached to the error.
func (e *TimeoutError) LastHeartbeatDetails(valuePtrs ...interface{}) error {
	if !e.HasLastHeartbeatDetails() {
		return ErrNoData
	}
	return e.lastHeartbeatDetails.Get(valuePtrs...)
}

// NewCanceledError creates a new CanceledError.
func NewCanceledError(details ...interface{}) *CanceledError {
	if len(details) == 0 {
		return &CanceledError{}
	}
	if d, ok := details[0].(Values); ok {
		return &CanceledError{details: d}
	}
	return &CanceledError{details: ErrorDetailsValues(details)}
}

// Error implements error.
func (e *CanceledError) Error() string {
	return "canceled"
}

// HasDetails returns if there are any details attached.
func (e *CanceledError) HasDetails() bool {
	return e.details != nil && e.details.HasValues()
}

// Details extracts the details attached to the error, if present.
func (e *CanceledError) Details(valuePtrs ...interface{}) error {
	if !e.HasDetails() {
		return ErrNoData
	}
	return e.details.Get(valuePtrs...)
}

// IsCanceledError returns whether err is a CanceledError.
func IsCanceledError(err error) bool {
	var canceledErr *CanceledError
	return errors.As(err, &canceledErr)
}

// newPanicError creates a PanicError from a recovered panic value and stack trace.
func newPanicError(value interface{}, stackTrace string) *PanicError {
	return &PanicError{value: value, stackTrace: stackTrace}
}

// Error implements error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%v", e.value)
}

// StackTrace returns the stack trace captured at the point of the panic.
func (e *PanicError) StackTrace() string {
	return e.stackTrace
}

func (e *temporalError) setFailure(f *failurepb.Failure) {
	e.originalFailure = f
}

func (e *temporalError) failure() *failurepb.Failure {
	return e.originalFailure
}

// WFMachinesErrorKind discriminates the coordinator-level error taxonomy:
// a replaying workflow can fail in exactly these ways, and callers branch on
// which one occurred (retry the task, evict the cache, or abort the run).
type WFMachinesErrorKind int

const (
	// WFMachinesNondeterminism means the history did not match what the
	// driven workflow produced on replay.
	WFMachinesNondeterminism WFMachinesErrorKind = iota
	// WFMachinesFatal means an invariant of the coordinator itself was
	// violated; no amount of retrying will help.
	WFMachinesFatal
	// WFMachinesHistoryFetchingError means the underlying transport failed
	// while fetching a page of history.
	WFMachinesHistoryFetchingError
	// WFMachinesCacheMiss means replay was attempted against a run whose
	// prior state was not present in the sticky cache.
	WFMachinesCacheMiss
)

func (k WFMachinesErrorKind) String() string {
	switch k {
	case WFMachinesNondeterminism:
		return "Nondeterminism"
	case WFMachinesFatal:
		return "Fatal"
	case WFMachinesHistoryFetchingError:
		return "HistoryFetchingError"
	case WFMachinesCacheMiss:
		return "CacheMiss"
	default:
		return "Unknown"
	}
}

// WFMachinesError is returned by every Coordinator operation that can fail.
// It is a closed, tagged-variant error type mirroring the Rust core's
// WFMachinesError enum: callers switch on Kind() rather than type-asserting
// concrete error types, since three of the four variants carry no payload
// beyond a message.
type WFMachinesError struct {
	kind    WFMachinesErrorKind
	message string
	// status is populated only when kind == WFMachinesHistoryFetchingError.
	status error
}

// NewNondeterminismError reports a replay/history mismatch.
func NewNondeterminismError(message string) *WFMachinesError {
	return &WFMachinesError{kind: WFMachinesNondeterminism, message: message}
}

// NewFatalWFMachinesError reports a coordinator-internal invariant violation.
func NewFatalWFMachinesError(message string) *WFMachinesError {
	return &WFMachinesError{kind: WFMachinesFatal, message: message}
}

// NewHistoryFetchingError wraps a transport-level failure encountered while
// paging through history.
func NewHistoryFetchingError(status error) *WFMachinesError {
	return &WFMachinesError{kind: WFMachinesHistoryFetchingError, message: status.Error(), status: status}
}

// NewCacheMissError reports that the run's prior machine state was not found
// in the sticky cache.
func NewCacheMissError(message string) *WFMachinesError {
	return &WFMachinesError{kind: WFMachinesCacheMiss, message: message}
}

// Error implements error.
func (e *WFMachinesError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Unwrap exposes the underlying transport status for HistoryFetchingError.
func (e *WFMachinesError) Unwrap() error {
	return e.status
}

// Kind reports which of the four variants this error is.
func (e *WFMachinesError) Kind() WFMachinesErrorKind {
	return e.kind
}

// IsNondeterminismError reports whether err is a Nondeterminism WFMachinesError.
func IsNondeterminismError(err error) bool {
	var wfErr *WFMachinesError
	return errors.As(err, &wfErr) && wfErr.kind == WFMachinesNondeterminism
}

// IsCacheMissError reports whether err is a CacheMiss WFMachinesError.
func IsCacheMissError(err error) bool {
	var wfErr *WFMachinesError
	return errors.As(err, &wfErr) && wfErr.kind == WFMachinesCacheMiss
}
