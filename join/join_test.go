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

package join

import (
	"sort"
	"testing"
)

type pair struct{ l, r int32 }

func pairs(resL, resR []int32) []pair {
	ps := make([]pair, len(resL))
	for i := range resL {
		ps[i] = pair{resL[i], resR[i]}
	}
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].l != ps[j].l {
			return ps[i].l < ps[j].l
		}
		return ps[i].r < ps[j].r
	})
	return ps
}

func TestNestedLoopJoinScenario4(t *testing.T) {
	vals1 := []int32{1, 2, 3}
	psn1 := []int32{10, 11, 12}
	vals2 := []int32{3, 2, 3}
	psn2 := []int32{20, 21, 22}

	resL, resR, err := NestedLoopJoin(vals1, psn1, vals2, psn2)
	if err != nil {
		t.Fatalf("NestedLoopJoin: %v", err)
	}
	want := []pair{{11, 21}, {12, 20}, {12, 22}}
	got := pairs(resL, resR)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestHashJoinMatchesNestedLoop(t *testing.T) {
	vals1 := []int32{1, 2, 3, 2, 5}
	psn1 := []int32{100, 101, 102, 103, 104}
	vals2 := []int32{3, 2, 3, 2, 9}
	psn2 := []int32{200, 201, 202, 203, 204}

	nl, nr, err := NestedLoopJoin(vals1, psn1, vals2, psn2)
	if err != nil {
		t.Fatalf("NestedLoopJoin: %v", err)
	}
	hl, hr, err := HashJoin(vals1, psn1, vals2, psn2)
	if err != nil {
		t.Fatalf("HashJoin: %v", err)
	}
	a, b := pairs(nl, nr), pairs(hl, hr)
	if len(a) != len(b) {
		t.Fatalf("nested-loop %d pairs, hash-join %d pairs", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("mismatch at %d: nested=%v hash=%v", i, a[i], b[i])
		}
	}
}

func TestJoinDispatchAliases(t *testing.T) {
	vals1 := []int32{1, 2}
	psn1 := []int32{10, 11}
	vals2 := []int32{2, 2}
	psn2 := []int32{20, 21}

	for _, k := range []Kind{Hash, NaiveHash, GraceHash} {
		resL, resR, err := Join(k, vals1, psn1, vals2, psn2)
		if err != nil {
			t.Fatalf("kind %v: %v", k, err)
		}
		if len(resL) != 2 || len(resR) != 2 {
			t.Fatalf("kind %v: got %v/%v, want 2 pairs", k, resL, resR)
		}
	}
}

func TestHashJoinEmptySide(t *testing.T) {
	resL, resR, err := HashJoin(nil, nil, []int32{1}, []int32{1})
	if err != nil || len(resL) != 0 || len(resR) != 0 {
		t.Fatalf("expected empty result, got %v/%v err=%v", resL, resR, err)
	}
}
