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

// Package catalog owns the DDL surface (create db/table/column/index),
// the .meta on-disk format, the CSV bulk loader, and the session
// context + dispatcher that route parsed operators into column, index,
// engine, agg, handle, and join.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"coldb/column"
	"coldb/index"
)

// ErrNotFound is returned when a qualified db/table/column/handle name
// does not resolve.
var ErrNotFound = errors.New("catalog: object not found")

// ErrAlreadyExists is returned by create when the name is already taken.
var ErrAlreadyExists = errors.New("catalog: object already exists")

// Table is a fixed set of same-length catalog columns.
type Table struct {
	Name        string
	Columns     []*column.Catalog
	ColCapacity int
}

// Column looks up a column by its unqualified name within the table.
func (t *Table) Column(name string) (*column.Catalog, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: column %q in table %q", ErrNotFound, name, t.Name)
}

// Database is the single active database served by the daemon: a set
// of tables rooted at a storage directory holding the .meta file and
// one <db>.<table>.<column>.bin per column.
type Database struct {
	Name           string
	Root           string
	Tables         []*Table
	TablesCapacity int
}

// Table looks up a table by its unqualified name.
func (db *Database) Table(name string) (*Table, error) {
	for _, t := range db.Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: table %q in database %q", ErrNotFound, name, db.Name)
}

// Resolve splits a "table.column" qualified name and looks both up.
func (db *Database) Resolve(qualified string) (*Table, *column.Catalog, error) {
	parts := strings.SplitN(qualified, ".", 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: %q is not a table.column reference", ErrNotFound, qualified)
	}
	t, err := db.Table(parts[0])
	if err != nil {
		return nil, nil, err
	}
	c, err := t.Column(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return t, c, nil
}

func (db *Database) binPath(table, col string) string {
	return fmt.Sprintf("%s/%s.%s.%s.bin", db.Root, db.Name, table, col)
}

// CreateTable adds an empty table that records colCapacity as its
// declared column capacity; columns are added individually with
// CreateColumn.
func (db *Database) CreateTable(name string, colCapacity int) (*Table, error) {
	if _, err := db.Table(name); err == nil {
		return nil, fmt.Errorf("%w: table %q", ErrAlreadyExists, name)
	}
	t := &Table{Name: name, ColCapacity: colCapacity}
	db.Tables = append(db.Tables, t)
	return t, nil
}

// CreateColumn opens (creating on disk) a new empty catalog column
// within t and appends it to the table's column list.
func (db *Database) CreateColumn(t *Table, name string) (*column.Catalog, error) {
	if _, err := t.Column(name); err == nil {
		return nil, fmt.Errorf("%w: column %q", ErrAlreadyExists, name)
	}
	c, err := column.OpenCatalog(db.binPath(t.Name, name), name, 0, column.Stats{})
	if err != nil {
		return nil, err
	}
	t.Columns = append(t.Columns, c)
	return c, nil
}

// CreateIndex builds an index of kind over col and installs it. When
// kind is clustered, the table's sibling columns are reordered to
// match, per cluster_on.
func CreateIndex(t *Table, col *column.Catalog, kind index.Kind, fanout int) error {
	if fanout <= 0 {
		fanout = index.DefaultFanout
	}
	idx := index.BuildFanout(col.Data(), kind, fanout)
	col.SetIndex(idx)
	if kind.IsClustered() {
		ClusterOn(t, col, idx)
	}
	return nil
}

// ClusterOn reorders every sibling column of t by idx.Positions, then
// overwrites col's base data with the sort mirror and resets
// Positions to identity, per §4.1's cluster_on.
func ClusterOn(t *Table, col *column.Catalog, idx *index.Index) {
	for _, sib := range t.Columns {
		if sib == col {
			continue
		}
		sib.ReplaceData(index.Reorder(sib.Data(), idx.Positions))
	}
	col.ReplaceData(idx.SortedData)
	idx.MarkClustered()
}

// RelationalInsert appends one row to every column of the table named
// by tableName ("db.table" is not needed here since Database already
// scopes one db; tableName is just the table name), validating arity.
func (db *Database) RelationalInsert(tableName string, values []int32) error {
	t, err := db.Table(tableName)
	if err != nil {
		return err
	}
	if len(values) != len(t.Columns) {
		return fmt.Errorf("catalog: relational_insert arity mismatch: table %q has %d columns, got %d values", tableName, len(t.Columns), len(values))
	}
	for i, c := range t.Columns {
		if err := c.Insert(values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close syncs and closes every column of every table, in table then
// column order.
func (db *Database) Close() error {
	for _, t := range db.Tables {
		for _, c := range t.Columns {
			if err := c.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}
