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
	"net"
	"os"
	"path/filepath"
	"testing"

	"coldb/wire"
)

func TestStreamPathSingleFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte("t1.a,t1.b\n1,10\n2,20\n3,30\n"), 0o644); err != nil {
		t.Fatalf("seed csv: %v", err)
	}

	client, server := net.Pipe()
	defer client.Close()

	errc := make(chan error, 1)
	go func() { errc <- streamPath(client, csvPath) }()

	status, _, err := wire.ReadMessage(server)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if status != wire.CSVTransfer {
		t.Fatalf("status = %v, want CSVTransfer", status)
	}

	var got []wire.ColumnMetadata
	for {
		meta, err := wire.ReadColumnMetadata(server)
		if err != nil {
			t.Fatalf("ReadColumnMetadata: %v", err)
		}
		if meta.Name == "" {
			break
		}
		data, err := wire.ReadColumnData(server, meta.NumElements)
		if err != nil {
			t.Fatalf("ReadColumnData: %v", err)
		}
		if len(data) != int(meta.NumElements) {
			t.Fatalf("column %s: got %d elements, want %d", meta.Name, len(data), meta.NumElements)
		}
		got = append(got, meta)
	}

	if err := <-errc; err != nil {
		t.Fatalf("streamPath: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d columns, want 2", len(got))
	}
	if got[0].Name != "t1.a" || got[0].Min != 1 || got[0].Max != 3 || got[0].Sum != 6 {
		t.Fatalf("column a metadata = %+v", got[0])
	}
	if got[1].Name != "t1.b" || got[1].Min != 10 || got[1].Max != 30 || got[1].Sum != 60 {
		t.Fatalf("column b metadata = %+v", got[1])
	}
}
