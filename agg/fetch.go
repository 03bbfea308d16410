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

// Package agg implements fetch, the O(1) aggregates, element-wise
// arithmetic, and CSV print over handle columns.
package agg

import "coldb/column"

// Fetch materializes src[posns[i]] for each i into a new value-vector
// handle, recomputing min/max/sum in the same pass. An empty posns
// yields an empty handle.
func Fetch(posns []int32, src []int32) *column.Handle {
	data := make([]int32, len(posns))
	var stats column.Stats
	for i, p := range posns {
		v := src[p]
		data[i] = v
		stats.Observe(int64(v))
	}
	return &column.Handle{Type: column.Int32, I32: data, Stats: stats}
}
