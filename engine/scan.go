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

import "math/bits"

const (
	// blockElems is the number of source elements processed per block.
	blockElems = 1024
	// wordsPerBlock packs one bit per element of a block into 64-bit words.
	wordsPerBlock = blockElems / 64
	// stagingElems is the size of the output staging buffer flushed
	// into each query's result slice.
	stagingElems = 256
)

// scanBlocksMany runs every query in queries over src in a single pass,
// decoupling predicate evaluation (a bitmap built per block, per query)
// from result materialization (a staging buffer flushed in bursts).
// baseOffset is added to a match's in-block position to compute its
// absolute source index, which is then either emitted directly or used
// to index into the query's RefPosns.
//
// This is the one scan kernel shared by Select (one query) and
// Batch.Execute (many queries over the same source), which is the
// whole point of the block-bitmap layout: the per-block predicate loop
// costs O(block*num_queries) but the data is read exactly once.
func scanBlocksMany(src []int32, queries []Query, baseOffset int) [][]int32 {
	nq := len(queries)
	results := make([][]int32, nq)
	staging := make([][stagingElems]int32, nq)
	sp := make([]int, nq)

	flush := func(qi int) {
		if sp[qi] > 0 {
			results[qi] = append(results[qi], staging[qi][:sp[qi]]...)
			sp[qi] = 0
		}
	}

	n := len(src)
	for base := 0; base < n; base += blockElems {
		end := base + blockElems
		if end > n {
			end = n
		}
		block := src[base:end]
		for qi, q := range queries {
			var bm [wordsPerBlock]uint64
			for i, v := range block {
				if q.Cmp.Match(v) {
					bm[i>>6] |= 1 << uint(i&63)
				}
			}
			for w, word := range bm {
				for word != 0 {
					bit := bits.TrailingZeros64(word)
					word &= word - 1
					localPos := w*64 + bit
					globalPos := baseOffset + base + localPos
					var out int32
					if q.RefPosns != nil {
						out = q.RefPosns[globalPos]
					} else {
						out = int32(globalPos)
					}
					staging[qi][sp[qi]] = out
					sp[qi]++
					if sp[qi] == stagingElems {
						flush(qi)
					}
				}
			}
		}
	}
	for qi := range queries {
		flush(qi)
	}
	for qi := range results {
		if results[qi] == nil {
			results[qi] = []int32{}
		}
	}
	return results
}

// scanBlocksOne is scanBlocksMany for a single query.
func scanBlocksOne(src []int32, q Query, baseOffset int) []int32 {
	return scanBlocksMany(src, []Query{q}, baseOffset)[0]
}
