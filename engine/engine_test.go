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
	"reflect"
	"testing"

	"coldb/index"
)

func i32(vs ...int32) []int32 { return vs }

func TestSelectScenario1(t *testing.T) {
	c := []int32{5, 3, 8, 3, 9}
	got := Select(Source{Data: c}, Query{Cmp: Comparator{HasHigh: true, High: 8}}, Options{ForceSingleCore: true})
	want := i32(0, 1, 3)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("select(c,null,8) = %v, want %v", got, want)
	}
	got = Select(Source{Data: c}, Query{Cmp: Comparator{HasLow: true, Low: 3, HasHigh: true, High: 8}}, Options{ForceSingleCore: true})
	// p_low <= x < p_high (per Comparator.Match) includes the value-5
	// element at index 0 along with both value-3 elements; see
	// DESIGN.md's note on comparator bound inclusivity.
	want = i32(0, 1, 3)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("select(c,3,8) = %v, want %v", got, want)
	}
}

func TestSelectScenario2Indexed(t *testing.T) {
	c := []int32{10, 20, 30, 40, 50}
	idx := index.Build(c, index.SortedUnclustered)
	src := Source{Data: c, Index: idx}
	got := Select(src, Query{Cmp: Comparator{HasLow: true, Low: 20, HasHigh: true, High: 40}}, Options{})
	want := i32(1, 2)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("select(c,20,40) = %v, want %v", got, want)
	}
}

func TestScanCorrectnessAgainstBruteForce(t *testing.T) {
	data := make([]int32, 3000)
	for i := range data {
		data[i] = int32((i*7 + 3) % 101)
	}
	cases := []Comparator{
		{HasHigh: true, High: 50},
		{HasLow: true, Low: 50},
		{HasLow: true, Low: 10, HasHigh: true, High: 20},
	}
	for _, cmp := range cases {
		got := Select(Source{Data: data}, Query{Cmp: cmp}, Options{ForceSingleCore: true})
		var want []int32
		for i, v := range data {
			if cmp.Match(v) {
				want = append(want, int32(i))
			}
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("cmp=%+v: got %d results, want %d", cmp, len(got), len(want))
		}
	}
}

func TestMultiCoreOrderingMatchesSingleCore(t *testing.T) {
	n := 50000
	data := make([]int32, n)
	for i := range data {
		data[i] = int32((i*13 + 1) % 997)
	}
	cmp := Comparator{HasLow: true, Low: 100, HasHigh: true, High: 200}
	single := Select(Source{Data: data}, Query{Cmp: cmp}, Options{ForceSingleCore: true})
	multi := Select(Source{Data: data}, Query{Cmp: cmp}, Options{NumCores: 4})
	if !reflect.DeepEqual(single, multi) {
		t.Fatalf("multi-core result diverges from single-core: len single=%d multi=%d", len(single), len(multi))
	}
	for i := 1; i < len(multi); i++ {
		if multi[i] <= multi[i-1] {
			t.Fatalf("multi-core result not globally ascending at %d: %d then %d", i, multi[i-1], multi[i])
		}
	}
}

func TestBatchedMatchesSingleScans(t *testing.T) {
	data := []int32{7, 2, 5, 3, 7, 9}
	b := NewBatch(Source{Data: data})
	b.Add(Query{Cmp: Comparator{HasHigh: true, High: 5}})
	b.Add(Query{Cmp: Comparator{HasLow: true, Low: 3}})
	b.Add(Query{Cmp: Comparator{HasLow: true, Low: 7, HasHigh: true, High: 8}})

	got := b.Execute(Options{ForceSingleCore: true})
	want := [][]int32{
		i32(1, 3),
		i32(0, 2, 3, 4, 5),
		i32(0, 4),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("batch result = %v, want %v", got, want)
	}

	for i, q := range b.Queries {
		single := Select(Source{Data: data}, q, Options{ForceSingleCore: true})
		if !reflect.DeepEqual(single, got[i]) {
			t.Fatalf("query %d: batched=%v single=%v", i, got[i], single)
		}
	}
}

func TestEmptySourceYieldsEmptyResults(t *testing.T) {
	got := Select(Source{}, Query{Cmp: Comparator{HasLow: true, Low: 1}}, Options{})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	b := NewBatch(Source{})
	b.Add(Query{Cmp: Comparator{HasLow: true, Low: 1}})
	b.Add(Query{Cmp: Comparator{HasHigh: true, High: 1}})
	res := b.Execute(Options{})
	for i, r := range res {
		if len(r) != 0 {
			t.Fatalf("query %d: expected empty, got %v", i, r)
		}
	}
}

func TestRefPosnsChaining(t *testing.T) {
	data := []int32{5, 3, 8, 3, 9}
	// select over a prior position vector [1,2,4] (values 3,8,9)
	refPosns := []int32{1, 2, 4}
	sub := []int32{data[1], data[2], data[4]}
	got := Select(Source{Data: sub}, Query{Cmp: Comparator{HasLow: true, Low: 4}, RefPosns: refPosns}, Options{ForceSingleCore: true})
	want := i32(2, 4)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chained select = %v, want %v", got, want)
	}
}
