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
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/chacha20poly1305"
)

// runSnapshot implements "coldb snapshot <root> <db> <output>": it
// copies the on-disk .meta sidecar, optionally zstd-compressing and
// chacha20poly1305-encrypting it, so an operator can archive catalog
// metadata (column names, stats, index kind) without the mmap-backed
// .bin files.
func runSnapshot(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	compress := fs.Bool("compress", false, "zstd-compress the snapshot")
	keyHex := fs.String("key", "", "hex-encoded 32-byte chacha20poly1305 key (env COLDB_SNAPSHOT_KEY if unset)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 3 {
		return fmt.Errorf("usage: coldb snapshot [--compress] [--key hex] <root> <db> <output>")
	}
	root, db, out := rest[0], rest[1], rest[2]

	raw, err := os.ReadFile(fmt.Sprintf("%s/%s.meta", root, db))
	if err != nil {
		return err
	}

	data := raw
	if *compress {
		data, err = compressSnapshot(data)
		if err != nil {
			return fmt.Errorf("compressing snapshot: %w", err)
		}
	}

	key := *keyHex
	if key == "" {
		key = os.Getenv("COLDB_SNAPSHOT_KEY")
	}
	if key != "" {
		data, err = encryptSnapshot(data, key)
		if err != nil {
			return fmt.Errorf("encrypting snapshot: %w", err)
		}
	}

	return os.WriteFile(out, data, 0o644)
}

func compressSnapshot(data []byte) ([]byte, error) {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer w.Close()
	return w.EncodeAll(data, nil), nil
}

// encryptSnapshot seals data under key (hex-encoded, chacha20poly1305.KeySize
// bytes), prefixing the random nonce to the ciphertext, mirroring
// elasticproxy/proxy_http/cryptbytes.go's nonce-then-ciphertext framing.
func encryptSnapshot(data []byte, keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid --key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("key must be %d bytes (got %d)", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, data, nil), nil
}
