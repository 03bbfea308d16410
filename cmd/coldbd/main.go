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

// Command coldbd is the column-store daemon: it opens (or creates) a
// database rooted at a storage directory and serves the query
// language over a local unix stream socket, one session at a time.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/cpu"

	"coldb/catalog"
)

func main() {
	// Informational only: the scan engine is portable Go and does not
	// require wide SIMD words, unlike the teacher's AVX-512 kernels.
	if !cpu.X86.HasAVX2 {
		fmt.Fprintln(os.Stderr, "notice: CPU doesn't support AVX2; scans run the portable path regardless")
	}

	configPath := flag.String("config", "", "path to a YAML config file")
	socketFlag := flag.String("socket", "", "unix stream socket path (overrides config)")
	rootFlag := flag.String("root", "", "storage root directory (overrides config)")
	dbFlag := flag.String("db", "", "database name (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coldbd: loading config: %s\n", err)
		os.Exit(1)
	}
	if *socketFlag != "" {
		cfg.Socket = *socketFlag
	}
	if *rootFlag != "" {
		cfg.Root = *rootFlag
	}
	if *dbFlag != "" {
		cfg.DB = *dbFlag
	}

	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		logger.Fatalf("creating storage root: %s", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Fatalf("opening database: %s", err)
	}

	os.Remove(cfg.Socket)
	l, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		logger.Fatalf("listening on %s: %s", cfg.Socket, err)
	}

	srv := &server{logger: logger, db: db, root: cfg.Root}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logger.Println("signal received, closing listener")
		l.Close()
	}()

	logger.Printf("coldbd listening on %s, database %q rooted at %s", cfg.Socket, db.Name, cfg.Root)
	if err := srv.Serve(l); err != nil {
		logger.Fatalf("serve: %s", err)
	}

	if err := catalog.WriteMeta(db); err != nil {
		logger.Printf("writing final .meta: %s", err)
	}
	if err := db.Close(); err != nil {
		logger.Printf("closing database: %s", err)
	}
}

// openDatabase reopens an existing .meta file, or creates a fresh
// empty database if none exists yet at cfg.Root/cfg.DB.meta.
func openDatabase(cfg config) (*catalog.Database, error) {
	db, err := catalog.ReadMeta(cfg.Root, cfg.DB)
	if err == nil {
		return db, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &catalog.Database{Name: cfg.DB, Root: cfg.Root}, nil
}
