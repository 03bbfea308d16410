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

// Package handle implements the session-local, append-only pool of
// named result vectors ("handle_"-prefixed columns).
package handle

import "coldb/column"

// Pool is a session-local append-only array of handle columns keyed
// by name. Lookup is linear, newest-first, so a name collision is
// allowed and the newest write always wins. Growth is geometric.
//
// The pool stores *column.Handle pointers, so growth reallocates only
// the slice of pointers: a handle returned by Create or Get stays
// valid across later Create calls. A later Create under the same name
// shadows it for Get, so a cached pointer may no longer be the one
// that name resolves to.
type Pool struct {
	entries []*column.Handle
}

const namePrefix = "handle_"

// QualifiedName returns the pool key for a user-supplied handle name.
func QualifiedName(name string) string {
	return namePrefix + name
}

// Create appends a freshly-built handle to the pool under
// "handle_"+name and returns it.
func (p *Pool) Create(name string, h *column.Handle) *column.Handle {
	h.Name = QualifiedName(name)
	p.entries = append(p.entries, h)
	return h
}

// Get returns the newest handle named "handle_"+name, or nil if none
// exists.
func (p *Pool) Get(name string) *column.Handle {
	qualified := QualifiedName(name)
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i].Name == qualified {
			return p.entries[i]
		}
	}
	return nil
}

// Len reports how many handles (including shadowed duplicates) the
// pool holds.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Reset drops every handle in the pool; it is called at session
// teardown.
func (p *Pool) Reset() {
	p.entries = nil
}
