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
	"errors"
	"fmt"
	"io"
	"net"

	"coldb/wire"
)

// handleCSVTransfer drains the CSV_TRANSFER sub-protocol: a stream of
// ColumnMetadata records (each naming a qualified "table.column", the
// same header convention catalog.LoadPath uses for local-file loads),
// each immediately followed by its raw int32 payload, terminated by a
// metadata record with an empty Name (not NumElements == 0, since a
// real column may legitimately carry zero rows). This is the server
// side of the streaming handshake original_source/src/db/impl/network/client.c
// drives from its CLI client's "load" command.
func (s *server) handleCSVTransfer(conn net.Conn) error {
	for {
		meta, err := wire.ReadColumnMetadata(conn)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("csv transfer: connection closed mid-stream")
			}
			return err
		}
		if meta.Name == "" {
			return nil
		}
		_, col, err := s.db.Resolve(meta.Name)
		if err != nil {
			return err
		}
		data, err := wire.ReadColumnData(conn, meta.NumElements)
		if err != nil {
			return err
		}
		if err := col.BulkAppend(data); err != nil {
			return err
		}
	}
}
