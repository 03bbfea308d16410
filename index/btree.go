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

// tree is a level-linked fence B-tree over the unique values of a
// column's sort mirror. Every level is internal-only: the leaf level's
// keys are the unique values themselves, and firstIdx/lastIdx (carried
// once, index-wide, rather than duplicated per node) record the
// inclusive range within SortedData that each unique value occupies.
type tree struct {
	unique   []int32
	firstIdx []int32
	lastIdx  []int32
	levels   [][]int32 // levels[0] = root ... levels[len-1] = leaf (== unique)
	fanout   int
}

// buildTree builds a fence B-tree over the unique values of sorted
// (which must already be ascending). Fill factor is always 100%: every
// level samples the unique values at a stride that is the previous
// level's stride divided by fanout, down to stride 1 at the leaf.
func buildTree(sorted []int32, fanout int) *tree {
	unique, firstIdx, lastIdx := dedupe(sorted)
	m := len(unique)
	t := &tree{unique: unique, firstIdx: firstIdx, lastIdx: lastIdx, fanout: fanout}
	if m == 0 {
		return t
	}
	stride := largestStrideBelow(m, fanout)
	for {
		t.levels = append(t.levels, sampleAt(unique, stride))
		if stride == 1 {
			break
		}
		stride /= fanout
		if stride < 1 {
			stride = 1
		}
	}
	return t
}

// dedupe computes the unique values of sorted plus, for each unique
// value, the first and last index it occupies in sorted.
func dedupe(sorted []int32) (unique, firstIdx, lastIdx []int32) {
	n := len(sorted)
	if n == 0 {
		return nil, nil, nil
	}
	for i := 0; i < n; {
		v := sorted[i]
		j := i
		for j < n && sorted[j] == v {
			j++
		}
		unique = append(unique, v)
		firstIdx = append(firstIdx, int32(i))
		lastIdx = append(lastIdx, int32(j-1))
		i = j
	}
	return unique, firstIdx, lastIdx
}

// largestStrideBelow returns the largest value fanout^k (k >= 0) that
// is strictly less than m.
func largestStrideBelow(m, fanout int) int {
	stride := 1
	for stride*fanout < m {
		stride *= fanout
	}
	return stride
}

func sampleAt(unique []int32, stride int) []int32 {
	out := make([]int32, 0, len(unique)/stride+1)
	for i := 0; i < len(unique); i += stride {
		out = append(out, unique[i])
	}
	return out
}

// leafSlot descends the tree to find the unique-value slot that a
// lookup for v should consult. strict selects the left-style (find
// smallest slot whose value is >= v) or right-style (largest slot
// whose value is <= v) refinement at the leaf; the internal-node
// descent itself (choosing which child fence to follow) is identical
// for both directions, since it is only deciding which block of the
// unique array contains the transition point around v.
func (t *tree) leafSlot(v int32, strict bool) int {
	pos := 0
	for li := 0; li < len(t.levels)-1; li++ {
		level := t.levels[li]
		end := pos + t.fanout
		if end > len(level) {
			end = len(level)
		}
		for pos+1 < end && level[pos+1] <= v {
			pos++
		}
		pos *= t.fanout
	}
	leaf := t.levels[len(t.levels)-1]
	end := pos + t.fanout
	if end > len(leaf) {
		end = len(leaf)
	}
	if pos >= len(leaf) {
		pos = len(leaf) - 1
	}
	if strict {
		for pos < end && leaf[pos] < v {
			pos++
		}
		if pos >= len(leaf) {
			pos = len(leaf) - 1
		}
	} else {
		for pos+1 < end && leaf[pos+1] <= v {
			pos++
		}
	}
	return pos
}

// lookupLeft returns the smallest index i in the original (possibly
// duplicated) sorted array with value >= v, using the fence B-tree.
func (t *tree) lookupLeft(v int32) int {
	slot := t.leafSlot(v, true)
	return int(t.firstIdx[slot])
}

// lookupRight returns the largest index i in the original sorted array
// with value <= v, using the fence B-tree.
func (t *tree) lookupRight(v int32) int {
	slot := t.leafSlot(v, false)
	return int(t.lastIdx[slot])
}
