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

package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setupLoadDB(t *testing.T) *Database {
	t.Helper()
	db := newTestDB(t)
	tbl, _ := db.CreateTable("t", 4)
	db.CreateColumn(tbl, "a")
	db.CreateColumn(tbl, "b")
	return db
}

func TestLoadSingleCSVFile(t *testing.T) {
	db := setupLoadDB(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	content := "t.a,t.b\n1,10\n2,20\n3,30\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := LoadPath(db, path); err != nil {
		t.Fatalf("LoadPath: %v", err)
	}
	tbl, _ := db.Table("t")
	a, _ := tbl.Column("a")
	b, _ := tbl.Column("b")
	if !reflect.DeepEqual(a.Data(), []int32{1, 2, 3}) {
		t.Fatalf("a.Data() = %v", a.Data())
	}
	if !reflect.DeepEqual(b.Data(), []int32{10, 20, 30}) {
		t.Fatalf("b.Data() = %v", b.Data())
	}
	if a.Stats.Sum != 6 || b.Stats.Sum != 60 {
		t.Fatalf("stats not maintained: a=%+v b=%+v", a.Stats, b.Stats)
	}
}

func TestLoadDirectoryOfCSVs(t *testing.T) {
	db := setupLoadDB(t)
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "1.csv"), []byte("t.a,t.b\n1,10\n"), 0644)
	os.WriteFile(filepath.Join(dir, "2.csv"), []byte("t.a,t.b\n2,20\n"), 0644)
	if err := LoadPath(db, dir); err != nil {
		t.Fatalf("LoadPath: %v", err)
	}
	tbl, _ := db.Table("t")
	a, _ := tbl.Column("a")
	if !reflect.DeepEqual(a.Data(), []int32{1, 2}) {
		t.Fatalf("a.Data() = %v, want loaded in filename order", a.Data())
	}
}

func TestLoadUnknownColumnErrors(t *testing.T) {
	db := setupLoadDB(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	os.WriteFile(path, []byte("t.nope\n1\n"), 0644)
	if err := LoadPath(db, path); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}
