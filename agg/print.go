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
	"bytes"
	"strconv"

	"coldb/column"
)

// Print renders handles row-major as CSV: one row per element index,
// one column per handle, comma-separated, newline-separated between
// rows. A single handle collapses to one value (or one column) per
// line same as the general case. The final row has no trailing
// newline. All handles must share the same length.
func Print(handles ...*column.Handle) (string, error) {
	if len(handles) == 0 {
		return "", nil
	}
	n := handles[0].Len()
	for _, h := range handles {
		if h.Len() != n {
			return "", ErrLengthMismatch
		}
	}
	var buf bytes.Buffer
	for row := 0; row < n; row++ {
		if row > 0 {
			buf.WriteByte('\n')
		}
		for col, h := range handles {
			if col > 0 {
				buf.WriteByte(',')
			}
			writeCell(&buf, h, row)
		}
	}
	return buf.String(), nil
}

func writeCell(buf *bytes.Buffer, h *column.Handle, row int) {
	switch h.Type {
	case column.Int32:
		buf.WriteString(strconv.FormatInt(int64(h.I32[row]), 10))
	case column.Int64:
		buf.WriteString(strconv.FormatInt(h.I64[row], 10))
	case column.Double:
		buf.WriteString(strconv.FormatFloat(h.F64[row], 'g', -1, 64))
	}
}
