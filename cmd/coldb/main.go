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

// Command coldb is the interactive CLI client: it reads query lines
// from stdin and forwards them to a running coldbd over its unix
// stream socket, printing each reply, plus two utility subcommands:
// "snapshot", which works on the storage files and never touches the
// socket, and "load", which dials the socket and streams CSV data.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"coldb/wire"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "snapshot":
			if err := runSnapshot(args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "coldb snapshot: %s\n", err)
				os.Exit(1)
			}
			return
		case "load":
			if err := runLoad(args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "coldb load: %s\n", err)
				os.Exit(1)
			}
			return
		}
	}
	if err := runInteractive(args); err != nil {
		fmt.Fprintf(os.Stderr, "coldb: %s\n", err)
		os.Exit(1)
	}
}

// runInteractive connects to the daemon and pipes stdin lines to it,
// one query per line, printing each reply. Lines starting with "--"
// are comments (not sent); "shutdown" tells the daemon to stop.
func runInteractive(args []string) error {
	socket := "/tmp/coldb.sock"
	if len(args) > 0 {
		socket = args[0]
	}
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", socket, err)
	}
	defer conn.Close()

	prefix := ""
	if isTerminal(os.Stdin) {
		prefix = "db_client > "
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		if prefix != "" {
			fmt.Print(prefix)
		}
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if line == "shutdown" {
			wire.WriteMessage(conn, wire.ServerShutdown, nil)
			return nil
		}
		if strings.HasPrefix(line, "load(") {
			if err := clientLoad(conn, line); err != nil {
				fmt.Fprintf(os.Stderr, "load: %s\n", err)
			}
			continue
		}
		if err := wire.WriteMessage(conn, wire.IncomingQuery, []byte(line)); err != nil {
			return fmt.Errorf("sending query: %w", err)
		}
		status, payload, err := wire.ReadMessage(conn)
		if err != nil {
			return fmt.Errorf("reading reply: %w", err)
		}
		printReply(status, payload)
	}
}

func printReply(status wire.Status, payload []byte) {
	if len(payload) > 0 {
		fmt.Println(string(payload))
	} else {
		fmt.Println(status)
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && (fi.Mode()&os.ModeCharDevice) != 0
}
