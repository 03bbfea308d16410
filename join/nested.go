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

// NestedLoopJoin compares every (l, r) pair in vals1 x vals2, O(|L|*|R|).
// The result is pre-allocated to the worst case (len(vals1)*len(vals2))
// and truncated to the number of actual matches, avoiding the
// reallocate-on-append pattern for what is already a quadratic scan.
func NestedLoopJoin(vals1, psn1, vals2, psn2 []int32) ([]int32, []int32, error) {
	worstCase := len(vals1) * len(vals2)
	resL := make([]int32, 0, worstCase)
	resR := make([]int32, 0, worstCase)
	for l, lv := range vals1 {
		for r, rv := range vals2 {
			if lv == rv {
				resL = append(resL, psn1[l])
				resR = append(resR, psn2[r])
			}
		}
	}
	return resL, resR, nil
}
