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

package engine

import "errors"

// ErrAllocation is the error value for an allocation failure during
// batch execution. No function in this package returns it:
// Batch.Execute has no error result.
var ErrAllocation = errors.New("engine: allocation failure during batch execution")

// Batch queues selects against a single shared source column for
// exec_batch_select / batch_execute: the caller is responsible for the
// (unenforced) contract that every queued select targets the same
// source. On Execute, the engine runs one block-bitmap (or multi-core)
// pass over the source, evaluating every queued predicate per block,
// and returns one result per queued select in queue order.
type Batch struct {
	Source  Source
	Queries []Query
}

// NewBatch starts a batch of selects sharing src.
func NewBatch(src Source) *Batch {
	return &Batch{Source: src}
}

// Add enqueues one select instead of executing it immediately.
func (b *Batch) Add(q Query) {
	b.Queries = append(b.Queries, q)
}

// Len reports the number of queued selects.
func (b *Batch) Len() int {
	return len(b.Queries)
}

// Execute runs every queued select in a single shared scan over
// Source.Data and returns one result per select, in queue order. An
// empty source yields a zero-length result for every query rather than
// an error. Execute does not consult Source.Index: batching exists
// specifically to amortize a full-column pass across many predicates,
// so a single query that could otherwise use an index fast path still
// participates in the shared scan once it is queued.
func (b *Batch) Execute(opt Options) [][]int32 {
	if len(b.Queries) == 0 {
		return nil
	}
	return dispatch(b.Source.Data, b.Queries, opt)
}
