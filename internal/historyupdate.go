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

// HistorySource supplies pages of history events on demand. Implementations
// may page-fetch over the network (see the historysource package); network
// failures must surface as a WFMachinesError(HistoryFetchingError).
type HistorySource interface {
	// NextPage returns the next page of events, or ok=false when the known
	// history is exhausted (the caller must fetch more from the service).
	NextPage() (events []*historypb.HistoryEvent, ok bool, err error)
}

// HistoryUpdate is the lazy, page-aware event cursor described in §2/§6: it
// exposes the next workflow-task sequence (events up to and including the
// next WorkflowTaskStarted) and lets the coordinator peek one sequence
// ahead for patch markers without consuming it.
type HistoryUpdate struct {
	source                  HistorySource
	previousStartedEventID  int64
	buffered                []*historypb.HistoryEvent
	exhausted                bool
}

// NewHistoryUpdate constructs a cursor over source, recording the stable
// previous_started_event_id attribute the service attaches to every update.
func NewHistoryUpdate(source HistorySource, previousStartedEventID int64) *HistoryUpdate {
	return &HistoryUpdate{source: source, previousStartedEventID: previousStartedEventID}
}

// PreviousStartedEventID is the id of the last WorkflowTaskStarted event
// replay had reached before this update was produced.
func (h *HistoryUpdate) PreviousStartedEventID() int64 {
	return h.previousStartedEventID
}

func (h *HistoryUpdate) fill() error {
	if h.exhausted {
		return nil
	}
	events, ok, err := h.source.NextPage()
	if err != nil {
		return NewHistoryFetchingError(err)
	}
	if !ok {
		h.exhausted = true
		return nil
	}
	h.buffered = append(h.buffered, events...)
	return nil
}

// TakeNextWFTSequence consumes and returns the next workflow-task sequence:
// all buffered events up to and including the next WorkflowTaskStarted. It
// pages in more events as needed and returns an empty, non-nil slice when
// the cursor has no more events to give.
func (h *HistoryUpdate) TakeNextWFTSequence(lastHandledWFTStartedID int64) ([]*HistoryEvent, error) {
	// The source is asked again on every call: a source that had nothing
	// last time may have new events now.
	h.exhausted = false
	for {
		if idx, found := h.findTaskBoundary(); found {
			raw := h.buffered[:idx+1]
			h.buffered = h.buffered[idx+1:]
			return wrapEvents(raw), nil
		}
		if h.exhausted {
			raw := h.buffered
			h.buffered = nil
			return wrapEvents(raw), nil
		}
		if err := h.fill(); err != nil {
			return nil, err
		}
	}
}

// PeekNextWFTSequence returns the events of the task sequence that would be
// returned by the next TakeNextWFTSequence call, without consuming them;
// used for the patch-marker pre-scan (§4.1.1 step 6).
func (h *HistoryUpdate) PeekNextWFTSequence() ([]*HistoryEvent, error) {
	h.exhausted = false
	for {
		if idx, found := h.findTaskBoundary(); found {
			return wrapEvents(h.buffered[:idx+1]), nil
		}
		if h.exhausted {
			return wrapEvents(h.buffered), nil
		}
		if err := h.fill(); err != nil {
			return nil, err
		}
	}
}

func (h *HistoryUpdate) findTaskBoundary() (int, bool) {
	for i, e := range h.buffered {
		if e.GetEventType() == eventTypeWorkflowTaskStarted {
			return i, true
		}
	}
	return 0, false
}

func wrapEvents(raw []*historypb.HistoryEvent) []*HistoryEvent {
	wrapped := make([]*HistoryEvent, len(raw))
	for i, e := range raw {
		wrapped[i] = NewHistoryEvent(e)
	}
	return wrapped
}
