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
	"os"

	"sigs.k8s.io/yaml"
)

// config is the daemon's YAML config file shape.
type config struct {
	Socket string `json:"socket"` // unix stream socket path
	Root   string `json:"root"`   // storage root directory for .bin/.meta files
	DB     string `json:"db"`     // database name, the .meta file's stem

	Snapshot snapshotConfig `json:"snapshot,omitempty"`
}

type snapshotConfig struct {
	Compress bool   `json:"compress,omitempty"`
	KeyHex   string `json:"keyHex,omitempty"` // 64 hex chars -> 32-byte chacha20poly1305 key
}

func defaultConfig() config {
	return config{
		Socket: "/tmp/coldb.sock",
		Root:   "./data",
		DB:     "coldb",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}
