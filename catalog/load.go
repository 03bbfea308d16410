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

package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"coldb/column"
)

// LoadPath implements load("path"): path may name a single CSV file or
// a directory of them. A directory is walked in name order and every
// *.csv member is loaded in turn, so a bulk load can be split across
// many files without the caller interleaving them manually.
func LoadPath(db *Database, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return loadCSVFile(db, path)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := loadCSVFile(db, filepath.Join(path, name)); err != nil {
			return fmt.Errorf("catalog: loading %s: %w", name, err)
		}
	}
	return nil
}

// loadCSVFile parses one CSV: a header row of "table.column" names
// (comma-separated) followed by rows of comma-separated int32 values,
// one row per tuple. Each column's values are staged in memory and
// flushed with a single BulkAppend so the mapping only grows once per
// column regardless of row count.
func loadCSVFile(db *Database, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		return fmt.Errorf("catalog: empty CSV file %s", path)
	}
	header := strings.Split(sc.Text(), ",")
	cols := make([]*column.Catalog, len(header))
	staged := make([][]int32, len(header))

	for i, qualified := range header {
		_, c, err := db.Resolve(strings.TrimSpace(qualified))
		if err != nil {
			return err
		}
		cols[i] = c
	}

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(header) {
			return fmt.Errorf("catalog: row in %s has %d fields, want %d", path, len(fields), len(header))
		}
		for i, raw := range fields {
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return fmt.Errorf("catalog: %s: %w", path, err)
			}
			staged[i] = append(staged[i], int32(v))
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	for i, values := range staged {
		if err := cols[i].BulkAppend(values); err != nil {
			return err
		}
	}
	return nil
}
