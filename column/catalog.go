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

import (
	"encoding/binary"
	"os"
	"unsafe"

	"coldb/index"
)

// Catalog is a base data column backed by a file mapped read-write.
// num_elements <= mapped_capacity_in_ints always holds; Stats are
// maintained incrementally as elements are appended.
type Catalog struct {
	Name  string
	Stats Stats
	Index *index.Index // nil when no index has been built, or after an insert invalidates it
	dirty bool

	path     string
	file     *os.File
	mem      []byte // mapped region, length == capacity*4 bytes
	capacity int     // in int32 elements
	n        int     // num_elements
}

// OpenCatalog opens (creating if necessary) the backing file at path
// and maps its current contents. numElements is the element count
// recorded for this column in the database's .meta file; the mapped
// capacity is inferred from the file's size on disk.
func OpenCatalog(path, name string, numElements int, stats Stats) (*Catalog, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	mem, err := mmapFile(f, size)
	if err != nil {
		f.Close()
		return nil, err
	}
	c := &Catalog{
		Name:     name,
		Stats:    stats,
		path:     path,
		file:     f,
		mem:      mem,
		capacity: int(size / 4),
		n:        numElements,
	}
	return c, nil
}

// Data returns the column's current elements as an int32 view over the
// mapped region. The returned slice is only valid until the next call
// that grows the mapping (Insert, EnsureCapacity).
func (c *Catalog) Data() []int32 {
	if c.n == 0 {
		return nil
	}
	return rawInt32View(c.mem)[:c.n]
}

func rawInt32View(mem []byte) []int32 {
	if len(mem) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&mem[0])), len(mem)/4)
}

// NumElements returns the column's current element count.
func (c *Catalog) NumElements() int { return c.n }

// Capacity returns the mapped capacity in int32 elements.
func (c *Catalog) Capacity() int { return c.capacity }

// Dirty reports whether the column has been mutated since it was
// opened or last synced.
func (c *Catalog) Dirty() bool { return c.dirty }

// EnsureCapacity grows the mapping, if necessary, so that at least
// extra more elements can be appended. Growth rounds the new file size
// up to the next page boundary, per the insert contract.
func (c *Catalog) EnsureCapacity(extra int) error {
	need := (c.n + extra) * 4
	if int64(need) <= int64(c.capacity)*4 {
		return nil
	}
	pageSize := int64(os.Getpagesize())
	newSize := (int64(need) + pageSize - 1) / pageSize * pageSize

	if err := msyncFile(c.file, c.mem); err != nil {
		return err
	}
	if err := munmapFile(c.file, c.mem); err != nil {
		return err
	}
	if err := resizeFile(c.file, newSize); err != nil {
		return err
	}
	mem, err := mmapFile(c.file, newSize)
	if err != nil {
		return err
	}
	c.mem = mem
	c.capacity = int(newSize / 4)
	return nil
}

// Insert appends v, growing the mapping if necessary, and updates
// min/max/sum. Any existing index is invalidated: the specification
// leaves incremental index maintenance on insert to a later explicit
// create idx / cluster_idx_on.
func (c *Catalog) Insert(v int32) error {
	if err := c.EnsureCapacity(1); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(c.mem[c.n*4:], uint32(v))
	c.n++
	c.Stats.Observe(int64(v))
	c.Index = nil
	c.dirty = true
	return nil
}

// SetIndex installs idx as the column's index.
func (c *Catalog) SetIndex(idx *index.Index) {
	c.Index = idx
}

// ReplaceData overwrites the column's base data in place with
// newData, which must have exactly NumElements() elements. It is used
// by cluster_on to install a clustered index's sorted permutation as
// the new base data; stats are unchanged (same multiset of values).
func (c *Catalog) ReplaceData(newData []int32) {
	if len(newData) != c.n {
		panic("column: ReplaceData length mismatch")
	}
	for i, v := range newData {
		binary.LittleEndian.PutUint32(c.mem[i*4:], uint32(v))
	}
	c.dirty = true
}

// Close syncs the mapping to disk, truncates the file to the exact
// element count, unmaps, and closes the file, in that order.
func (c *Catalog) Close() error {
	if err := msyncFile(c.file, c.mem); err != nil {
		return err
	}
	if err := munmapFile(c.file, c.mem); err != nil {
		return err
	}
	if err := c.file.Truncate(int64(c.n) * 4); err != nil {
		return err
	}
	return c.file.Close()
}
