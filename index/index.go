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

// Package index builds and queries the sort-mirror and fence B-tree
// structures that accelerate range scans over a column.
package index

import "golang.org/x/exp/slices"

// Kind identifies the shape of an index and whether it has clustered
// the owning table's sibling columns.
type Kind int

const (
	None Kind = iota
	SortedUnclustered
	SortedClustered
	BTreeUnclustered
	BTreeClustered
)

func (k Kind) String() string {
	switch k {
	case SortedUnclustered:
		return "sorted-unclustered"
	case SortedClustered:
		return "sorted-clustered"
	case BTreeUnclustered:
		return "btree-unclustered"
	case BTreeClustered:
		return "btree-clustered"
	default:
		return "none"
	}
}

// IsBTree reports whether the index kind carries a fence B-tree over the
// sort mirror, as opposed to relying on binary search alone.
func (k Kind) IsBTree() bool {
	return k == BTreeUnclustered || k == BTreeClustered
}

// IsClustered reports whether building this kind reorders the owning
// table's sibling columns.
func (k Kind) IsClustered() bool {
	return k == SortedClustered || k == BTreeClustered
}

// DefaultFanout is the B-tree fanout used when none is specified.
const DefaultFanout = 1024

// Index is a per-column sort mirror: SortedData is a permutation of the
// column's values in ascending order, and Positions[i] is the original
// row offset of SortedData[i]. When Kind.IsBTree(), a fence B-tree over
// the unique values in SortedData accelerates lookup_left/lookup_right.
type Index struct {
	Kind       Kind
	SortedData []int32
	Positions  []int32
	fanout     int
	tree       *tree
}

// Build constructs an index of the given kind over data, using the
// default fanout for B-tree kinds.
func Build(data []int32, kind Kind) *Index {
	return BuildFanout(data, kind, DefaultFanout)
}

// BuildFanout is Build with an explicit B-tree fanout (ignored for
// non-B-tree kinds).
func BuildFanout(data []int32, kind Kind, fanout int) *Index {
	sorted, positions := sortWithPositions(data)
	idx := &Index{
		Kind:       kind,
		SortedData: sorted,
		Positions:  positions,
		fanout:     fanout,
	}
	if kind.IsBTree() {
		idx.tree = buildTree(sorted, fanout)
	}
	return idx
}

type pair struct {
	val int32
	pos int32
}

// sortWithPositions sorts data by value while carrying each element's
// original offset, so that SortedData[i] came from data[Positions[i]].
func sortWithPositions(data []int32) (sorted, positions []int32) {
	pairs := make([]pair, len(data))
	for i, v := range data {
		pairs[i] = pair{val: v, pos: int32(i)}
	}
	slices.SortFunc(pairs, func(a, b pair) bool {
		if a.val != b.val {
			return a.val < b.val
		}
		return a.pos < b.pos
	})
	sorted = make([]int32, len(data))
	positions = make([]int32, len(data))
	for i, p := range pairs {
		sorted[i] = p.val
		positions[i] = p.pos
	}
	return sorted, positions
}
