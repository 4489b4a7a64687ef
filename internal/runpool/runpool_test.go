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

package runpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCoordinator struct {
	runID    string
	finished bool
}

func (f *fakeCoordinator) RunID() string            { return f.runID }
func (f *fakeCoordinator) WorkflowIsFinished() bool { return f.finished }

func Test_Pool_AddGetRemove(t *testing.T) {
	p := NewPool(nil)
	c := &fakeCoordinator{runID: "run-1"}
	p.Add(c)
	require.EqualValues(t, 1, p.Live())

	got, ok := p.Get("run-1")
	require.True(t, ok)
	require.Equal(t, c, got)

	p.Remove("run-1")
	require.EqualValues(t, 0, p.Live())
	_, ok = p.Get("run-1")
	require.False(t, ok)
}

func Test_Pool_AddIsIdempotentForLiveCount(t *testing.T) {
	p := NewPool(nil)
	c := &fakeCoordinator{runID: "run-1"}
	p.Add(c)
	p.Add(c)
	require.EqualValues(t, 1, p.Live())
}

func Test_Pool_EvictFinishedRemovesOnlyFinishedRuns(t *testing.T) {
	p := NewPool(nil)
	p.Add(&fakeCoordinator{runID: "run-1", finished: true})
	p.Add(&fakeCoordinator{runID: "run-2", finished: false})

	evicted := p.EvictFinished()
	require.Equal(t, []string{"run-1"}, evicted)
	require.EqualValues(t, 1, p.Live())

	_, ok := p.Get("run-2")
	require.True(t, ok)
}
