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
	"io"
	"log"
	"net"
	"testing"

	"github.com/google/uuid"

	"coldb/catalog"
	"coldb/wire"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	return &server{
		logger: log.New(io.Discard, "", 0),
		db:     &catalog.Database{Name: "testdb", Root: t.TempDir()},
	}
}

// TestSessionCreateTableInsertSelect drives one query line at a time
// through a net.Pipe connection, grounding the daemon's dispatch path
// end-to-end the way a real client would see it.
func TestSessionCreateTableInsertSelect(t *testing.T) {
	srv := newTestServer(t)
	client, server := net.Pipe()
	defer client.Close()

	done := make(chan bool, 1)
	go func() {
		done <- srv.handleSession(uuid.New(), server)
	}()

	send := func(line string) (wire.Status, []byte) {
		if err := wire.WriteMessage(client, wire.IncomingQuery, []byte(line)); err != nil {
			t.Fatalf("write: %v", err)
		}
		status, payload, err := wire.ReadMessage(client)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return status, payload
	}

	if status, _ := send(`create(tbl,"t1",db1,2)`); status != wire.OKDone {
		t.Fatalf("create tbl: status = %v", status)
	}
	if status, _ := send(`create(col,"a",db1.t1)`); status != wire.OKDone {
		t.Fatalf("create col a: status = %v", status)
	}
	if status, _ := send(`create(col,"b",db1.t1)`); status != wire.OKDone {
		t.Fatalf("create col b: status = %v", status)
	}
	if status, _ := send(`relational_insert(t1,1,100)`); status != wire.OKDone {
		t.Fatalf("insert: status = %v", status)
	}
	if status, _ := send(`relational_insert(t1,2,200)`); status != wire.OKDone {
		t.Fatalf("insert: status = %v", status)
	}
	if status, _ := send(`r=select(t1.a,null,2)`); status != wire.OKDone {
		t.Fatalf("select: status = %v", status)
	}
	if status, _ := send(`v=fetch(t1.b,r)`); status != wire.OKDone {
		t.Fatalf("fetch: status = %v", status)
	}
	status, payload := send(`print(v)`)
	if status != wire.OKDone {
		t.Fatalf("print: status = %v", status)
	}
	if string(payload) != "100" {
		t.Fatalf("print payload = %q, want %q", payload, "100")
	}

	if status, _ := send(`shutdown`); status != wire.ServerShutdown {
		t.Fatalf("shutdown: status = %v", status)
	}
	if !<-done {
		t.Fatal("handleSession should report shutdown requested")
	}
}

func TestSessionUnknownCommand(t *testing.T) {
	srv := newTestServer(t)
	client, server := net.Pipe()
	defer client.Close()

	go srv.handleSession(uuid.New(), server)

	if err := wire.WriteMessage(client, wire.IncomingQuery, []byte("bogus(1)")); err != nil {
		t.Fatalf("write: %v", err)
	}
	status, _, err := wire.ReadMessage(client)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if status != wire.UnknownCommand {
		t.Fatalf("status = %v, want UnknownCommand", status)
	}
}
