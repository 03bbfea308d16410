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

// ErrEmptyColumn is returned by Min/Max when Stats.Valid is false: the
// min/max of an empty column is undefined.
var ErrEmptyColumn = errors.New("agg: min/max undefined on an empty column")

// Sum returns the int64-widened sum held by s. Valid on an empty
// column: the sum of zero elements is zero.
func Sum(s column.Stats) int64 {
	return s.Sum
}

// Min returns the int64-widened minimum held by s.
func Min(s column.Stats) (int64, error) {
	if !s.Valid {
		return 0, ErrEmptyColumn
	}
	return s.Min, nil
}

// Max returns the int64-widened maximum held by s.
func Max(s column.Stats) (int64, error) {
	if !s.Valid {
		return 0, ErrEmptyColumn
	}
	return s.Max, nil
}

// Avg returns the double-widened average of n elements whose sum is
// held by s. By convention the average of an empty column is 0.0
// rather than an error, unlike Min/Max.
func Avg(s column.Stats, n int) float64 {
	if n == 0 {
		return 0.0
	}
	return float64(s.Sum) / float64(n)
}
