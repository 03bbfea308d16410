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

// Package column implements the two column shapes that back the engine:
// mmap-backed catalog columns and heap-owned handle columns.
package column

// Stats holds the reductions a column maintains incrementally:
// sum of all elements, and the min/max of all elements.
//
// Min and Max are undefined (and must not be read) when Valid is false,
// which is the case for an empty column.
type Stats struct {
	Min, Max, Sum int64
	Valid         bool
}

// Reset clears the stats back to the empty-column state.
func (s *Stats) Reset() {
	*s = Stats{}
}

// Observe folds v into the running min/max/sum.
func (s *Stats) Observe(v int64) {
	if !s.Valid {
		s.Min, s.Max, s.Sum = v, v, v
		s.Valid = true
		return
	}
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
	s.Sum += v
}

// StatsOf computes fresh stats over data in one pass.
func StatsOf(data []int32) Stats {
	var s Stats
	for _, v := range data {
		s.Observe(int64(v))
	}
	return s
}
