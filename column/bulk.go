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

package column

import "encoding/binary"

// BulkAppend grows the mapping once for the whole batch and writes
// values in one pass, folding stats incrementally — the same contract
// as repeated Insert calls, but without a grow-check per element. Used
// by the CSV bulk loader and CSV_TRANSFER ingestion, where the number
// of incoming elements is known up front.
func (c *Catalog) BulkAppend(values []int32) error {
	if len(values) == 0 {
		return nil
	}
	if err := c.EnsureCapacity(len(values)); err != nil {
		return err
	}
	for _, v := range values {
		binary.LittleEndian.PutUint32(c.mem[c.n*4:], uint32(v))
		c.n++
		c.Stats.Observe(int64(v))
	}
	c.Index = nil
	c.dirty = true
	return nil
}
