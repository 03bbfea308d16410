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

package handle

import (
	"testing"

	"coldb/column"
)

func TestNewestWins(t *testing.T) {
	var p Pool
	p.Create("x", column.NewInt32Handle("", []int32{1, 2, 3}))
	p.Create("x", column.NewInt32Handle("", []int32{9}))

	got := p.Get("x")
	if got == nil || len(got.I32) != 1 || got.I32[0] != 9 {
		t.Fatalf("Get(x) = %+v, want the newest handle", got)
	}
}

func TestMissingHandle(t *testing.T) {
	var p Pool
	if p.Get("nope") != nil {
		t.Fatalf("expected nil for missing handle")
	}
}

func TestResetClears(t *testing.T) {
	var p Pool
	p.Create("x", column.NewInt32Handle("", []int32{1}))
	p.Reset()
	if p.Get("x") != nil || p.Len() != 0 {
		t.Fatalf("expected empty pool after Reset")
	}
}
