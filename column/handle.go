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

// DataType identifies which of a Handle's slices is populated.
type DataType int

const (
	Int32 DataType = iota
	Int64
	Double
)

func (t DataType) String() string {
	switch t {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Handle is a heap-owned, session-local result vector: either a
// position vector (Int32, indices into a catalog column) or a value
// vector (Int32/Int64/Double, produced by fetch/aggregate/arithmetic).
// Its lifetime is tied to the session and it is never persisted.
type Handle struct {
	Name  string
	Type  DataType
	I32   []int32
	I64   []int64
	F64   []float64
	Stats Stats
}

// NewInt32Handle builds a position- or int32-value-vector handle.
func NewInt32Handle(name string, data []int32) *Handle {
	h := &Handle{Name: name, Type: Int32, I32: data}
	h.Stats = StatsOf(data)
	return h
}

// NewInt64Handle builds a widened int64 value-vector handle (sum, min and max widen here; add/sub stay int32).
func NewInt64Handle(name string, data []int64) *Handle {
	h := &Handle{Name: name, Type: Int64, I64: data}
	for _, v := range data {
		h.Stats.Observe(v)
	}
	return h
}

// NewDoubleHandle builds a double value-vector handle (avg widens here).
func NewDoubleHandle(name string, data []float64) *Handle {
	return &Handle{Name: name, Type: Double, F64: data}
}

// Len returns the number of elements in the handle's populated slice.
func (h *Handle) Len() int {
	switch h.Type {
	case Int32:
		return len(h.I32)
	case Int64:
		return len(h.I64)
	case Double:
		return len(h.F64)
	default:
		return 0
	}
}
