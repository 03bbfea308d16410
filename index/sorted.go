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

package index

import "sort"

// sortedLeft returns the smallest i with sorted[i] >= v via binary
// search (ceiling division), for indexes without a B-tree.
func sortedLeft(sorted []int32, v int32) int {
	i := sort.Search(len(sorted), func(i int) bool {
		return sorted[i] >= v
	})
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return i
}

// sortedRight returns the largest i with sorted[i] <= v via binary
// search (floor division), fixed up over runs of equal values.
func sortedRight(sorted []int32, v int32) int {
	i := sort.Search(len(sorted), func(i int) bool {
		return sorted[i] > v
	})
	i--
	if i < 0 {
		i = 0
	}
	return i
}

// LookupLeft returns the smallest i with idx.SortedData[i] >= v,
// clamped into [0, n-1].
func (idx *Index) LookupLeft(v int32) int {
	n := len(idx.SortedData)
	if n == 0 {
		return 0
	}
	if v <= idx.SortedData[0] {
		return 0
	}
	if v > idx.SortedData[n-1] {
		return n - 1
	}
	if idx.tree != nil {
		return idx.tree.lookupLeft(v)
	}
	return sortedLeft(idx.SortedData, v)
}

// LookupRight returns the largest i with idx.SortedData[i] <= v,
// clamped into [0, n-1].
func (idx *Index) LookupRight(v int32) int {
	n := len(idx.SortedData)
	if n == 0 {
		return 0
	}
	if v < idx.SortedData[0] {
		return 0
	}
	if v >= idx.SortedData[n-1] {
		return n - 1
	}
	if idx.tree != nil {
		return idx.tree.lookupRight(v)
	}
	return sortedRight(idx.SortedData, v)
}

// Len returns the number of elements the index covers.
func (idx *Index) Len() int {
	return len(idx.SortedData)
}
