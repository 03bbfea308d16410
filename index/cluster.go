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

// Reorder returns a copy of data permuted so that out[i] = data[positions[i]].
// It is used to apply a clustered index's permutation to the sibling
// columns of the owning table.
func Reorder(data []int32, positions []int32) []int32 {
	out := make([]int32, len(positions))
	for i, p := range positions {
		out[i] = data[p]
	}
	return out
}

// MarkClustered records that the owning column's base data has been
// overwritten with SortedData, so Positions becomes the identity
// permutation (Positions[i] = i).
func (idx *Index) MarkClustered() {
	for i := range idx.Positions {
		idx.Positions[i] = int32(i)
	}
}
