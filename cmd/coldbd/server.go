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
	"log"
	"net"

	"github.com/google/uuid"

	"coldb/catalog"
)

// server owns the open database and serves connections on its stream
// socket. Per spec.md §5's scheduling model, only one session runs at
// a time: Serve accepts and fully drains one connection before
// accepting the next, rather than spawning a goroutine per connection.
type server struct {
	logger *log.Logger
	db     *catalog.Database
	root   string
}

// Serve blocks, accepting and serving connections one at a time until
// the listener is closed or a client issues shutdown.
func (s *server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		sessionID := uuid.New()
		s.logger.Printf("session %s: connected from %s", sessionID, conn.RemoteAddr())
		shutdown := s.handleSession(sessionID, conn)
		conn.Close()
		if shutdown {
			s.logger.Printf("session %s: shutdown requested", sessionID)
			return l.Close()
		}
	}
}
