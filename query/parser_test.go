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

package query

import (
	"testing"

	"coldb/catalog"
	"coldb/index"
	"coldb/join"
)

func i32(v int32) *int32 { return &v }

func TestParseCreateDBTableColumn(t *testing.T) {
	op, err := Parse(`create(db,"db1")`)
	if err != nil || op.Kind != catalog.OpCreateDB || op.Name != "db1" {
		t.Fatalf("got %+v, err %v", op, err)
	}

	op, err = Parse(`create(tbl,"t1",db1,3)`)
	if err != nil || op.Kind != catalog.OpCreateTable || op.Name != "t1" || op.ColCapacity != 3 {
		t.Fatalf("got %+v, err %v", op, err)
	}

	op, err = Parse(`create(col,"a",db1.t1)`)
	if err != nil || op.Kind != catalog.OpCreateColumn || op.Name != "a" || op.Parent != "t1" {
		t.Fatalf("got %+v, err %v", op, err)
	}
}

func TestParseCreateIndex(t *testing.T) {
	op, err := Parse(`create(idx,db1.t4.c3,sorted,clustered)`)
	if err != nil || op.Kind != catalog.OpCreateIndex || op.Source != "db1.t4.c3" || op.IndexKind != index.SortedClustered {
		t.Fatalf("got %+v, err %v", op, err)
	}

	op, err = Parse(`create(idx,db1.t4.c3,btree,unclustered)`)
	if err != nil || op.IndexKind != index.BTreeUnclustered {
		t.Fatalf("got %+v, err %v", op, err)
	}
}

func TestParseRelationalInsert(t *testing.T) {
	op, err := Parse(`relational_insert(t1,1,2,3)`)
	if err != nil || op.Kind != catalog.OpRelationalInsert || op.Table != "t1" {
		t.Fatalf("got %+v, err %v", op, err)
	}
	want := []int32{1, 2, 3}
	for i, v := range want {
		if op.Values[i] != v {
			t.Fatalf("values[%d] = %d, want %d", i, op.Values[i], v)
		}
	}
}

func TestParseLoad(t *testing.T) {
	op, err := Parse(`load("/tmp/data.csv")`)
	if err != nil || op.Kind != catalog.OpLoad || op.Path != "/tmp/data.csv" {
		t.Fatalf("got %+v, err %v", op, err)
	}
}

// TestParseSelectThreeArg grounds scenario 1: select(c,null,8).
func TestParseSelectThreeArg(t *testing.T) {
	op, err := Parse(`r=select(c,null,8)`)
	if err != nil {
		t.Fatalf("err %v", err)
	}
	if op.Kind != catalog.OpSelect || op.Result != "r" || op.Source != "c" {
		t.Fatalf("got %+v", op)
	}
	if op.Low != nil {
		t.Fatalf("Low should be nil for \"null\", got %v", *op.Low)
	}
	if op.High == nil || *op.High != 8 {
		t.Fatalf("High = %v, want 8", op.High)
	}
}

// TestParseSelectChained grounds the 4-field chained form
// select(posn_vec,val_vec,low,high).
func TestParseSelectChained(t *testing.T) {
	op, err := Parse(`r2=select(r,c,3,8)`)
	if err != nil {
		t.Fatalf("err %v", err)
	}
	if op.Source != "c" || op.Source2 != "r" {
		t.Fatalf("got Source=%q Source2=%q, want Source=c Source2=r", op.Source, op.Source2)
	}
	if op.Low == nil || *op.Low != 3 || op.High == nil || *op.High != 8 {
		t.Fatalf("got Low=%v High=%v", op.Low, op.High)
	}
}

func TestParseFetchAggregateArithmetic(t *testing.T) {
	op, err := Parse(`v=fetch(c,r)`)
	if err != nil || op.Kind != catalog.OpFetch || op.Source != "c" || op.Source2 != "r" {
		t.Fatalf("got %+v, err %v", op, err)
	}

	op, err = Parse(`s=sum(v)`)
	if err != nil || op.Kind != catalog.OpSum || op.Source != "v" {
		t.Fatalf("got %+v, err %v", op, err)
	}

	op, err = Parse(`s=add(v1,v2)`)
	if err != nil || op.Kind != catalog.OpAdd || op.Source != "v1" || op.Source2 != "v2" {
		t.Fatalf("got %+v, err %v", op, err)
	}
}

func TestParsePrint(t *testing.T) {
	op, err := Parse(`print(v1,v2)`)
	if err != nil || op.Kind != catalog.OpPrint || len(op.Handles) != 2 {
		t.Fatalf("got %+v, err %v", op, err)
	}
}

// TestParseJoin grounds scenario 4's call shape and the full-name
// join-kind match for nested-loop.
func TestParseJoin(t *testing.T) {
	op, err := Parse(`l,r=join(vals1,psn1,vals2,psn2,nested-loop)`)
	if err != nil {
		t.Fatalf("err %v", err)
	}
	if op.Kind != catalog.OpJoin || op.ResultL != "l" || op.ResultR != "r" {
		t.Fatalf("got %+v", op)
	}
	if op.JoinAlgo != join.NestedLoop {
		t.Fatalf("JoinAlgo = %v, want NestedLoop", op.JoinAlgo)
	}
	want := []string{"vals1", "psn1", "vals2", "psn2"}
	for i, s := range want {
		if op.Handles[i] != s {
			t.Fatalf("Handles[%d] = %q, want %q", i, op.Handles[i], s)
		}
	}
}

func TestParseJoinKinds(t *testing.T) {
	cases := map[string]join.Kind{
		"naive-hash": join.NaiveHash,
		"hash":       join.Hash,
		"grace-hash": join.GraceHash,
	}
	for text, want := range cases {
		op, err := Parse(`l,r=join(v1,p1,v2,p2,` + text + `)`)
		if err != nil || op.JoinAlgo != want {
			t.Fatalf("%s: got %+v, err %v", text, op, err)
		}
	}
}

func TestParseControlCommands(t *testing.T) {
	cases := map[string]catalog.OpKind{
		"batch_queries":       catalog.OpBatchQueries,
		"batch_execute":       catalog.OpBatchExecute,
		"single_core()":       catalog.OpSingleCore,
		"single_core_execute": catalog.OpSingleCoreExecute,
		"shutdown":            catalog.OpShutdown,
	}
	for text, want := range cases {
		op, err := Parse(text)
		if err != nil || op.Kind != want {
			t.Fatalf("%s: got %+v, err %v", text, op, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	if _, err := Parse("bogus(1,2)"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestParseIncorrectFormat(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty line")
	}
	if _, err := Parse(`r=select(c,3)`); err == nil {
		t.Fatal("expected error for wrong select arity")
	}
}
