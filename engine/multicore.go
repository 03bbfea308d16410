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

import "sync"

// MultithreadThreshold is the minimum source length at which the
// engine prefers the multi-core scan over the single-core scan,
// absent an explicit single_core() override.
const MultithreadThreshold = 10000

// scanBlocksParallel partitions [0, len(src)) into numCores contiguous
// chunks, scans each chunk once (concurrently) for every query, and
// merges per-query results in chunk order. Each worker owns its own
// staging/result buffers (scanBlocksMany's locals), so the only shared
// state is the immutable src/RefPosns slices; the merge step is the
// sole owner of the final buffers. A fresh goroutine pool is spun up
// for this call and fully joined before returning: there is no
// persistent pool and no queuing across scans.
func scanBlocksParallel(src []int32, queries []Query, numCores int) [][]int32 {
	n := len(src)
	if numCores < 1 {
		numCores = 1
	}
	chunk := (n + numCores - 1) / numCores
	if chunk == 0 {
		chunk = 1
	}

	perChunk := make([][][]int32, numCores)
	var wg sync.WaitGroup
	for c := 0; c < numCores; c++ {
		start := c * chunk
		end := start + chunk
		if start > n {
			start = n
		}
		if end > n {
			end = n
		}
		if start >= end {
			perChunk[c] = make([][]int32, len(queries))
			continue
		}
		wg.Add(1)
		go func(c, start, end int) {
			defer wg.Done()
			perChunk[c] = scanBlocksMany(src[start:end], queries, start)
		}(c, start, end)
	}
	wg.Wait()

	out := make([][]int32, len(queries))
	for qi := range queries {
		total := 0
		for c := 0; c < numCores; c++ {
			total += len(perChunk[c][qi])
		}
		merged := make([]int32, 0, total)
		for c := 0; c < numCores; c++ {
			merged = append(merged, perChunk[c][qi]...)
		}
		out[qi] = merged
	}
	return out
}
