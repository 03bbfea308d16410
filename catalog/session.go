// Copyright (C) 2024 coldb authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package catalog

import (
	"errors"

	"coldb/column"
	"coldb/engine"
	"coldb/handle"
)

// pendingSelect is one queued select: the source column it targets
// (by qualified name, for the same-source-column contract) plus the
// query and the handle name its result will be bound to.
type pendingSelect struct {
	sourceName string
	src        engine.Source
	query      engine.Query
	resultName string
}

// Session holds everything specific to one connected client: its
// handle pool, a pending batch of queued selects, and the two scan
// dispatch toggles (batching_on, force_single_core). A daemon serves
// one session at a time per §5's scheduling model.
type Session struct {
	Handles handle.Pool

	batchingOn      bool
	forceSingleCore bool
	pending         []pendingSelect
}

// BatchQueries arms batching_on: subsequent selects against the same
// source column are queued instead of executed immediately.
func (s *Session) BatchQueries() {
	s.batchingOn = true
}

// Batching reports whether batch_queries is currently armed.
func (s *Session) Batching() bool {
	return s.batchingOn
}

// SingleCore arms force_single_core for all subsequent scans.
func (s *Session) SingleCore() {
	s.forceSingleCore = true
}

// Reset clears the session back to its zero state: handle pool
// emptied, batching disarmed, single-core forcing cleared. Called at
// session teardown per §3's handle-pool lifecycle.
func (s *Session) Reset() {
	s.Handles.Reset()
	s.batchingOn = false
	s.forceSingleCore = false
	s.pending = nil
}

// Close tears down a session at disconnect: any armed-but-unexecuted
// batch is dropped rather than run, matching client_context.c's
// free-on-teardown behavior for a pending batch queue.
func (s *Session) Close() {
	s.Reset()
}

func (s *Session) options() engine.Options {
	return engine.Options{ForceSingleCore: s.forceSingleCore}
}

// Enqueue queues a select against sourceName instead of running it; it
// is the dispatcher's implicit-contract path when batching is armed.
func (s *Session) Enqueue(sourceName string, src engine.Source, q engine.Query, resultName string) {
	s.pending = append(s.pending, pendingSelect{sourceName: sourceName, src: src, query: q, resultName: resultName})
}

// PendingLen reports how many selects are currently queued.
func (s *Session) PendingLen() int {
	return len(s.pending)
}

// ErrBatchSourceMismatch is returned by BatchExecute when queued
// selects do not all reference the same source column: execution only
// validates the caller contract stated in §4.2, it does not enforce it
// up front at Enqueue time.
var ErrBatchSourceMismatch = errors.New("catalog: queued selects do not all target the same source column")

// BatchExecute runs every queued select in one shared pass over their
// (shared) source column and binds each result into the handle pool
// under its reserved name, then clears the queue and disarms batching.
func (s *Session) BatchExecute() ([]*column.Handle, error) {
	defer func() {
		s.pending = nil
		s.batchingOn = false
	}()
	if len(s.pending) == 0 {
		return nil, nil
	}
	first := s.pending[0]
	for _, p := range s.pending[1:] {
		if p.sourceName != first.sourceName {
			return nil, ErrBatchSourceMismatch
		}
	}
	b := engine.NewBatch(first.src)
	for _, p := range s.pending {
		b.Add(p.query)
	}
	results := b.Execute(s.options())

	out := make([]*column.Handle, len(results))
	for i, r := range results {
		h := column.NewInt32Handle("", r)
		out[i] = s.Handles.Create(s.pending[i].resultName, h)
	}
	return out, nil
}

// Select runs one select immediately (batching not armed, or invoked
// directly), choosing the index-accelerated, single-core, or
// multi-core path per the engine's scan dispatch rules.
func (s *Session) Select(src engine.Source, q engine.Query) []int32 {
	return engine.Select(src, q, s.options())
}
