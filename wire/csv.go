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

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// nameFieldSize is the fixed width of ColumnMetadata.Name's on-wire
// encoding: a 64-byte field, NUL-padded, NUL-terminated if shorter.
const nameFieldSize = 64

// columnMetaSize is u64 num_elements + 3*i64 (min,max,sum), following
// the 64-byte name field.
const columnMetaSize = nameFieldSize + 8 + 8 + 8 + 8

// ColumnMetadata precedes one column's raw int32 payload in a
// CSV_TRANSFER stream. A trailing metadata record with an empty Name
// terminates the batch; a record with NumElements = 0 and a non-empty
// Name is an empty column, not a terminator.
type ColumnMetadata struct {
	Name        string
	NumElements uint64
	Min         int64
	Max         int64
	Sum         int64
}

// WriteColumnMetadata writes m's fixed-size record.
func WriteColumnMetadata(w io.Writer, m ColumnMetadata) error {
	if len(m.Name) >= nameFieldSize {
		return fmt.Errorf("wire: column name %q exceeds %d bytes", m.Name, nameFieldSize-1)
	}
	var buf [columnMetaSize]byte
	copy(buf[:nameFieldSize], m.Name)
	binary.LittleEndian.PutUint64(buf[nameFieldSize:], m.NumElements)
	binary.LittleEndian.PutUint64(buf[nameFieldSize+8:], uint64(m.Min))
	binary.LittleEndian.PutUint64(buf[nameFieldSize+16:], uint64(m.Max))
	binary.LittleEndian.PutUint64(buf[nameFieldSize+24:], uint64(m.Sum))
	_, err := w.Write(buf[:])
	return err
}

// ReadColumnMetadata reads one fixed-size record.
func ReadColumnMetadata(r io.Reader) (ColumnMetadata, error) {
	var buf [columnMetaSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return ColumnMetadata{}, err
	}
	nameEnd := nameFieldSize
	for i, b := range buf[:nameFieldSize] {
		if b == 0 {
			nameEnd = i
			break
		}
	}
	return ColumnMetadata{
		Name:        string(buf[:nameEnd]),
		NumElements: binary.LittleEndian.Uint64(buf[nameFieldSize:]),
		Min:         int64(binary.LittleEndian.Uint64(buf[nameFieldSize+8:])),
		Max:         int64(binary.LittleEndian.Uint64(buf[nameFieldSize+16:])),
		Sum:         int64(binary.LittleEndian.Uint64(buf[nameFieldSize+24:])),
	}, nil
}

// WriteColumnData writes num_elements*4 bytes of little-endian int32.
func WriteColumnData(w io.Writer, data []int32) error {
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	_, err := w.Write(buf)
	return err
}

// ReadColumnData reads n int32 elements.
func ReadColumnData(r io.Reader, n uint64) ([]int32, error) {
	buf := make([]byte, n*4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}
