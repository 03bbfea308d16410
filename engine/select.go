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

import (
	"runtime"

	"coldb/index"
)

// Source describes what a select scans: a column's data, its index
// (if any), and whether that data is itself a sort mirror (OnSortedData).
type Source struct {
	Data         []int32
	Index        *index.Index
	OnSortedData bool
}

// Options controls scan dispatch.
type Options struct {
	ForceSingleCore bool
	NumCores        int // 0 => runtime.NumCPU()
}

func (o Options) cores() int {
	if o.NumCores > 0 {
		return o.NumCores
	}
	return runtime.NumCPU()
}

// Select executes a single query against src and returns the matching
// positions, choosing (in order): the index-accelerated scan, the
// single-core block scan, or the multi-core scan.
func Select(src Source, q Query, opt Options) []int32 {
	if len(src.Data) == 0 {
		return []int32{}
	}
	if src.Index != nil && q.Cmp.HasLow && q.RefPosns == nil {
		return indexedScan(src, q.Cmp)
	}
	return dispatch(src.Data, []Query{q}, opt)[0]
}

// indexedScan implements scan dispatch rule 1: start the scan at
// lookup_left(p_low) in the index's sort mirror, and emit the original
// row for every match. When the source is itself a sort mirror and a
// high bound is present, the scan terminates at the first element >=
// p_high rather than walking the remaining (necessarily non-matching)
// tail.
func indexedScan(src Source, cmp Comparator) []int32 {
	idx := src.Index
	start := idx.LookupLeft(cmp.Low)
	sorted := idx.SortedData
	positions := idx.Positions
	out := make([]int32, 0, 64)
	for i := start; i < len(sorted); i++ {
		v := sorted[i]
		if src.OnSortedData && cmp.HasHigh && v >= cmp.High {
			break
		}
		if cmp.Match(v) {
			out = append(out, positions[i])
		}
	}
	return out
}

// dispatch runs queries over data using the single-core or multi-core
// scan, per the MULTITHREAD_THRESHOLD / force_single_core rule. It is
// shared by Select (one query) and Batch.Execute (many queries over
// one source).
func dispatch(data []int32, queries []Query, opt Options) [][]int32 {
	if len(data) == 0 {
		out := make([][]int32, len(queries))
		for i := range out {
			out[i] = []int32{}
		}
		return out
	}
	if len(data) < MultithreadThreshold || opt.ForceSingleCore {
		return scanBlocksMany(data, queries, 0)
	}
	return scanBlocksParallel(data, queries, opt.cores())
}
