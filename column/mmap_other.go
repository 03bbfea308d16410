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

//go:build !linux
// +build !linux

package column

import (
	"io"
	"os"
)

// mmapFile falls back to reading the whole file into a heap buffer on
// platforms where we don't bother wiring the mmap(2) family of syscalls.
// msyncFile writes the buffer back out explicitly; munmapFile is then a
// no-op since there is no kernel mapping to tear down.
func mmapFile(f *os.File, size int64) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}

func munmapFile(f *os.File, buf []byte) error {
	return nil
}

func msyncFile(f *os.File, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	_, err := f.WriteAt(buf, 0)
	return err
}

func resizeFile(f *os.File, size int64) error {
	return f.Truncate(size)
}
