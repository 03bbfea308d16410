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

// HeaderSize is the on-wire size of Header: a u32 status, an i32
// length, and an 8-byte placeholder for the source's unused payload
// pointer field (meaningless across a socket, carried only to keep the
// struct's wire size stable across platforms).
const HeaderSize = 4 + 4 + 8

// Header is the fixed frame that precedes every payload.
type Header struct {
	Status Status
	Length int32
}

// WriteHeader writes h in little-endian wire format.
func WriteHeader(w io.Writer, h Header) error {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Status))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.Length))
	_, err := w.Write(buf[:])
	return err
}

// ReadHeader reads and decodes one Header.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}
	return Header{
		Status: Status(binary.LittleEndian.Uint32(buf[0:4])),
		Length: int32(binary.LittleEndian.Uint32(buf[4:8])),
	}, nil
}

// WriteMessage writes a complete header+payload frame.
func WriteMessage(w io.Writer, status Status, payload []byte) error {
	if err := WriteHeader(w, Header{Status: status, Length: int32(len(payload))}); err != nil {
		return fmt.Errorf("wire: writing header: %w", err)
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// ReadMessage reads a complete header+payload frame.
func ReadMessage(r io.Reader) (Status, []byte, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return 0, nil, err
	}
	if h.Length == 0 {
		return h.Status, nil, nil
	}
	payload := make([]byte, h.Length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("wire: reading payload: %w", err)
	}
	return h.Status, payload, nil
}
