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

// Package engine implements the vectorized selection engine: the
// single-core block-bitmap scan, the multi-core chunked scan, and the
// batched shared scan that amortizes one pass over a column across
// several queued predicates.
package engine

// Comparator is p_low <= x < p_high, with either bound optional. A
// select with only a high bound has no Low; one with only a low bound
// has no High.
type Comparator struct {
	HasLow  bool
	Low     int32
	HasHigh bool
	High    int32
}

// Match reports whether x satisfies the comparator.
func (c Comparator) Match(x int32) bool {
	if c.HasLow && x < c.Low {
		return false
	}
	if c.HasHigh && x >= c.High {
		return false
	}
	return true
}

// Query bundles one comparator with the optional upstream position
// vector it is chained from ("select over a prior position vector"):
// when RefPosns is set, a match at source index i records RefPosns[i]
// rather than i itself.
type Query struct {
	Cmp      Comparator
	RefPosns []int32
}
