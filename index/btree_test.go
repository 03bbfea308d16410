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

import "testing"

// TestBTreeFanout2Scenario is the worked example from the specification:
// data=[2,2,2,5,5,6,7,7], fanout 2.
func TestBTreeFanout2Scenario(t *testing.T) {
	data := []int32{2, 2, 2, 5, 5, 6, 7, 7}
	idx := BuildFanout(data, BTreeUnclustered, 2)

	cases := []struct {
		v         int32
		left, rgt int
	}{
		{5, 3, 4},
		{2, 0, 2},
		{7, 6, 7},
		{6, 5, 5},
	}
	for _, c := range cases {
		if got := idx.LookupLeft(c.v); got != c.left {
			t.Errorf("lookupLeft(%d) = %d, want %d", c.v, got, c.left)
		}
		if got := idx.LookupRight(c.v); got != c.rgt {
			t.Errorf("lookupRight(%d) = %d, want %d", c.v, got, c.rgt)
		}
	}
}

func TestBTreeMatchesSortedForRandomish(t *testing.T) {
	data := []int32{1, 4, 4, 4, 7, 9, 9, 12, 15, 15, 15, 20, 21, 30, 31, 31, 40}
	for _, fanout := range []int{2, 3, 4, 1024} {
		bt := BuildFanout(data, BTreeUnclustered, fanout)
		so := BuildFanout(data, SortedUnclustered, fanout)
		for v := int32(0); v <= 42; v++ {
			if bt.LookupLeft(v) != so.LookupLeft(v) {
				t.Fatalf("fanout=%d v=%d: btree left=%d sorted left=%d", fanout, v, bt.LookupLeft(v), so.LookupLeft(v))
			}
			if bt.LookupRight(v) != so.LookupRight(v) {
				t.Fatalf("fanout=%d v=%d: btree right=%d sorted right=%d", fanout, v, bt.LookupRight(v), so.LookupRight(v))
			}
		}
	}
}
