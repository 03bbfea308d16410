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
	"fmt"

	"coldb/agg"
	"coldb/column"
	"coldb/engine"
	"coldb/index"
	"coldb/join"
)

// OpKind identifies the operator a parsed query line names.
type OpKind int

const (
	OpCreateDB OpKind = iota
	OpCreateTable
	OpCreateColumn
	OpCreateIndex
	OpRelationalInsert
	OpLoad
	OpSelect
	OpFetch
	OpAvg
	OpSum
	OpMin
	OpMax
	OpAdd
	OpSub
	OpPrint
	OpBatchQueries
	OpBatchExecute
	OpSingleCore
	OpSingleCoreExecute
	OpJoin
	OpShutdown
)

// Operator is the dispatcher's input: a parsed query-language line in
// a column/handle-name-resolved (but not yet executed) form. A query
// parser builds these; catalog.Dispatch only needs Go values, not
// wire bytes, so it has no dependency on how the line was tokenized.
type Operator struct {
	Kind OpKind

	// create db|tbl|col
	Name        string
	Parent      string // table name for create col, db-qualified n/a (single active db)
	NumCols     int
	ColCapacity int

	// create idx
	IndexKind   index.Kind
	IndexFanout int

	// relational_insert
	Table  string
	Values []int32

	// load
	Path string

	// select / fetch / avg / sum / min / max / add / sub / print
	Result   string // handle name the result is bound to, "" if none (e.g. print)
	Source  string // qualified "table.column" or a handle name
	Source2 string // fetch's posn_handle, arithmetic's 2nd operand, or select's chained posn_vec
	Low     *int32
	High    *int32
	Handles []string // print's argument list

	// join: l,r=join(v1,p1,v2,p2,kind)
	JoinAlgo         join.Kind
	ResultL, ResultR string
}

// Reply mirrors the wire status/payload the dispatcher would hand to
// the socket layer, decoupled from the actual wire encoding.
type Reply struct {
	OK       bool
	NotFound bool
	Payload  string
}

func okDone() Reply                 { return Reply{OK: true, Payload: "Done"} }
func okPayload(payload string) Reply { return Reply{OK: true, Payload: payload} }
func execErr(err error) Reply       { return Reply{Payload: err.Error()} }
func notFound(err error) Reply      { return Reply{NotFound: true, Payload: err.Error()} }

// Dispatch routes op against db/session per §4.7: a select is queued
// rather than executed when batching is armed, per the implicit
// same-source-column contract; everything else executes immediately
// and returns an OK_DONE-shaped reply (print instead carries the
// rendered CSV as its payload).
func Dispatch(db *Database, sess *Session, op Operator) Reply {
	if op.Kind == OpSelect && sess.Batching() {
		src, cmp, refPosns, err := resolveSelectSource(db, sess, op)
		if err != nil {
			return notFound(err)
		}
		sess.Enqueue(op.Source, src, engine.Query{Cmp: cmp, RefPosns: refPosns}, op.Result)
		return okDone()
	}

	switch op.Kind {
	case OpCreateDB:
		db.Name = op.Name
		return okDone()
	case OpCreateTable:
		if _, err := db.CreateTable(op.Name, op.ColCapacity); err != nil {
			return execErr(err)
		}
		return okDone()
	case OpCreateColumn:
		t, err := db.Table(op.Parent)
		if err != nil {
			return notFound(err)
		}
		if _, err := db.CreateColumn(t, op.Name); err != nil {
			return execErr(err)
		}
		return okDone()
	case OpCreateIndex:
		t, c, err := db.Resolve(op.Source)
		if err != nil {
			return notFound(err)
		}
		if err := CreateIndex(t, c, op.IndexKind, op.IndexFanout); err != nil {
			return execErr(err)
		}
		return okDone()
	case OpRelationalInsert:
		if err := db.RelationalInsert(op.Table, op.Values); err != nil {
			return execErr(err)
		}
		return okDone()
	case OpLoad:
		if err := LoadPath(db, op.Path); err != nil {
			return execErr(err)
		}
		return okDone()
	case OpSelect:
		src, cmp, refPosns, err := resolveSelectSource(db, sess, op)
		if err != nil {
			return notFound(err)
		}
		posns := sess.Select(src, engine.Query{Cmp: cmp, RefPosns: refPosns})
		sess.Handles.Create(op.Result, column.NewInt32Handle("", posns))
		return okDone()
	case OpFetch:
		_, c, err := db.Resolve(op.Source)
		if err != nil {
			return notFound(err)
		}
		posns, err := resolvePositions(sess, op.Source2)
		if err != nil {
			return notFound(err)
		}
		h := agg.Fetch(posns, c.Data())
		sess.Handles.Create(op.Result, h)
		return okDone()
	case OpAvg, OpSum, OpMin, OpMax:
		return dispatchAggregate(db, sess, op)
	case OpAdd, OpSub:
		return dispatchArithmetic(db, sess, op)
	case OpPrint:
		return dispatchPrint(sess, op)
	case OpBatchQueries:
		sess.BatchQueries()
		return okDone()
	case OpBatchExecute:
		if _, err := sess.BatchExecute(); err != nil {
			return execErr(err)
		}
		return okDone()
	case OpSingleCore:
		sess.SingleCore()
		return okDone()
	case OpSingleCoreExecute:
		sess.SingleCore()
		return okDone()
	case OpJoin:
		return dispatchJoin(sess, op)
	case OpShutdown:
		return okDone()
	default:
		return execErr(fmt.Errorf("catalog: unknown operator kind %d", op.Kind))
	}
}
