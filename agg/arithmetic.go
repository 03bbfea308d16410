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

package agg

import (
	"errors"

	"coldb/column"
)

// ErrLengthMismatch is returned by Add/Sub/Print when the operand
// vectors do not share a common length.
var ErrLengthMismatch = errors.New("agg: operand vectors have mismatched lengths")

// Add returns the element-wise sum of a and b as a new int32
// value-vector handle, recomputing stats in the same pass.
func Add(a, b []int32) (*column.Handle, error) {
	return binOp(a, b, func(x, y int32) int32 { return x + y })
}

// Sub returns the element-wise difference of a and b as a new int32
// value-vector handle, recomputing stats in the same pass.
func Sub(a, b []int32) (*column.Handle, error) {
	return binOp(a, b, func(x, y int32) int32 { return x - y })
}

func binOp(a, b []int32, op func(int32, int32) int32) (*column.Handle, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	out := make([]int32, len(a))
	h := &column.Handle{Type: column.Int32, I32: out}
	for i := range a {
		v := op(a[i], b[i])
		out[i] = v
		h.Stats.Observe(int64(v))
	}
	return h, nil
}
