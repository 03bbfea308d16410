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

// Package join implements the equi-join engine: nested-loop and
// (naive/grace/plain) hash join over two value-vector + position-vector
// pairs.
package join

import "errors"

// Kind selects a join algorithm. GraceHash and Hash both alias to the
// naive hash-join implementation: the spec carries the richer grace-hash
// name for a future partitioned build, but nothing in this engine needs
// partitioning at the data sizes a single mmap'd catalog column holds.
type Kind int

const (
	NestedLoop Kind = iota
	NaiveHash
	Hash
	GraceHash
)

// ErrAllocation is the error value for an allocation failure during a
// join. No function in this package returns it: every join returns a
// nil error.
var ErrAllocation = errors.New("join: allocation failure during join execution")

// Join dispatches to the algorithm named by kind. vals1/psn1 and
// vals2/psn2 must be parallel (equal length) value- and position-vector
// pairs. The returned resL, resR are position vectors: for each emitted
// pair index i, vals1[...] = vals2[...] and resL[i] = psn1[l],
// resR[i] = psn2[r] for the underlying (l, r) match.
func Join(kind Kind, vals1, psn1, vals2, psn2 []int32) (resL, resR []int32, err error) {
	switch kind {
	case NestedLoop:
		return NestedLoopJoin(vals1, psn1, vals2, psn2)
	default:
		return HashJoin(vals1, psn1, vals2, psn2)
	}
}
