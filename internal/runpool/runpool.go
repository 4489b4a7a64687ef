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

// Package runpool is the worker-level registry of live run coordinators. It
// sits one layer above internal.WorkflowMachines: each run's coordinator
// stays single-threaded and lock-free (§5), but a worker process hosts many
// runs concurrently and needs a concurrency-safe place to track which ones
// are live, evict finished ones, and report how many are in flight.
package runpool

import (
	"sync"

	"github.com/pborman/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Coordinator is the subset of *internal.WorkflowMachines the pool needs;
// kept as an interface so the pool can be tested without constructing a real
// coordinator.
type Coordinator interface {
	RunID() string
	WorkflowIsFinished() bool
}

// Pool tracks the coordinators live in one worker process, keyed by run id.
// Safe for concurrent use; the coordinators it holds are not.
type Pool struct {
	// id is a process-lifetime control id, distinct from any run id, used to
	// correlate this pool's log lines across a worker with many pools.
	id     string
	mu     sync.RWMutex
	runs   map[string]Coordinator
	live   atomic.Int64
	logger *zap.SugaredLogger
}

// NewPool constructs an empty registry.
func NewPool(logger *zap.SugaredLogger) *Pool {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Pool{id: uuid.New(), runs: make(map[string]Coordinator), logger: logger}
}

// ID returns this pool's control id.
func (p *Pool) ID() string { return p.id }

// Add registers a coordinator under its run id, replacing any prior entry
// for that id.
func (p *Pool) Add(c Coordinator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.runs[c.RunID()]; !exists {
		p.live.Inc()
	}
	p.runs[c.RunID()] = c
	p.logger.Debugw("run added to pool", "pool_id", p.id, "run_id", c.RunID(), "live", p.live.Load())
}

// Get returns the coordinator for runID, if any.
func (p *Pool) Get(runID string) (Coordinator, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.runs[runID]
	return c, ok
}

// Remove evicts runID from the pool, e.g. once its workflow has completed.
func (p *Pool) Remove(runID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.runs[runID]; exists {
		delete(p.runs, runID)
		p.live.Dec()
		p.logger.Debugw("run removed from pool", "pool_id", p.id, "run_id", runID, "live", p.live.Load())
	}
}

// EvictFinished removes every registered coordinator that has observed its
// workflow's terminal event, returning the run ids evicted.
func (p *Pool) EvictFinished() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var evicted []string
	for runID, c := range p.runs {
		if c.WorkflowIsFinished() {
			delete(p.runs, runID)
			p.live.Dec()
			evicted = append(evicted, runID)
		}
	}
	if len(evicted) > 0 {
		p.logger.Debugw("evicted finished runs", "pool_id", p.id, "count", len(evicted), "live", p.live.Load())
	}
	return evicted
}

// Live returns the number of coordinators currently registered.
func (p *Pool) Live() int64 {
	return p.live.Load()
}
