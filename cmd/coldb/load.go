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

package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"coldb/wire"
)

// clientLoad handles a stdin `load("path")` line: it reads the local
// CSV (or directory of CSVs) named in path and streams it to the
// daemon over the CSV_TRANSFER sub-protocol, mirroring
// original_source/src/db/impl/network/client.c's send_column_data.
func clientLoad(conn net.Conn, line string) error {
	start := strings.Index(line, "\"")
	end := strings.LastIndex(line, "\"")
	if start < 0 || end <= start {
		return fmt.Errorf("malformed load(...) line: %q", line)
	}
	path := line[start+1 : end]
	return streamPath(conn, path)
}

// runLoad implements the "coldb load <socket> <path>" subcommand: the
// same streaming path as an inline `load("path")` query, usable from
// a shell script without an interactive session.
func runLoad(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: coldb load <socket> <path>")
	}
	conn, err := net.Dial("unix", args[0])
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := streamPath(conn, args[1]); err != nil {
		return err
	}
	status, payload, err := wire.ReadMessage(conn)
	if err != nil {
		return err
	}
	printReply(status, payload)
	return nil
}

func streamPath(conn net.Conn, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	if err := wire.WriteMessage(conn, wire.CSVTransfer, nil); err != nil {
		return err
	}
	for _, f := range files {
		if err := streamCSVFile(conn, f); err != nil {
			return err
		}
	}
	return wire.WriteColumnMetadata(conn, wire.ColumnMetadata{})
}

// streamCSVFile parses one CSV (header row of qualified "table.column"
// names, followed by comma-separated int32 data rows) and streams each
// column as a ColumnMetadata record plus its raw data.
func streamCSVFile(conn net.Conn, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		return fmt.Errorf("%s: empty CSV", path)
	}
	header := strings.Split(sc.Text(), ",")
	cols := make([][]int32, len(header))

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(header) {
			return fmt.Errorf("%s: row has %d fields, want %d", path, len(fields), len(header))
		}
		for i, raw := range fields {
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return fmt.Errorf("%s: bad value %q: %w", path, raw, err)
			}
			cols[i] = append(cols[i], int32(v))
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	for i, name := range header {
		data := cols[i]
		var minV, maxV, sum int64
		if len(data) > 0 {
			minV, maxV = int64(data[0]), int64(data[0])
			for _, v := range data {
				sum += int64(v)
				if int64(v) < minV {
					minV = int64(v)
				}
				if int64(v) > maxV {
					maxV = int64(v)
				}
			}
		}
		meta := wire.ColumnMetadata{
			Name:        strings.TrimSpace(name),
			NumElements: uint64(len(data)),
			Min:         minV,
			Max:         maxV,
			Sum:         sum,
		}
		if err := wire.WriteColumnMetadata(conn, meta); err != nil {
			return err
		}
		if err := wire.WriteColumnData(conn, data); err != nil {
			return err
		}
	}
	return nil
}
