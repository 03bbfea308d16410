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
	"io"
	"net"

	"github.com/google/uuid"

	"coldb/catalog"
	"coldb/query"
	"coldb/wire"
)

// handleSession drains one connection to completion, dispatching each
// incoming query line against the shared database. It reports whether
// the client requested a server shutdown.
func (s *server) handleSession(sessionID uuid.UUID, conn net.Conn) bool {
	sess := &catalog.Session{}
	defer sess.Close()

	for {
		status, payload, err := wire.ReadMessage(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Printf("session %s: read: %s", sessionID, err)
			}
			return false
		}

		switch status {
		case wire.IncomingQuery:
			if s.handleQuery(sessionID, conn, sess, string(payload)) {
				return true
			}
		case wire.CSVTransfer:
			if err := s.handleCSVTransfer(conn); err != nil {
				s.logger.Printf("session %s: csv transfer: %s", sessionID, err)
				wire.WriteMessage(conn, wire.ExecutionError, []byte(err.Error()))
				continue
			}
			wire.WriteMessage(conn, wire.OKDone, []byte("Done"))
		default:
			wire.WriteMessage(conn, wire.UnknownCommand, []byte("unexpected status on incoming frame"))
		}
	}
}

// handleQuery parses and dispatches one query line, replying on conn.
// It returns true when the client asked the daemon to shut down.
func (s *server) handleQuery(sessionID uuid.UUID, conn net.Conn, sess *catalog.Session, line string) bool {
	op, err := query.Parse(line)
	if err != nil {
		status := wire.IncorrectFormat
		if errors.Is(err, query.ErrUnknownCommand) {
			status = wire.UnknownCommand
		}
		wire.WriteMessage(conn, status, []byte(err.Error()))
		return false
	}

	reply := catalog.Dispatch(s.db, sess, op)
	switch {
	case op.Kind == catalog.OpShutdown:
		wire.WriteMessage(conn, wire.ServerShutdown, nil)
		return true
	case reply.NotFound:
		wire.WriteMessage(conn, wire.ObjectNotFound, []byte(reply.Payload))
	case !reply.OK:
		wire.WriteMessage(conn, wire.ExecutionError, []byte(reply.Payload))
	default:
		wire.WriteMessage(conn, wire.OKDone, []byte(reply.Payload))
	}
	s.logger.Printf("session %s: %q -> ok=%v", sessionID, line, reply.OK)
	return false
}
