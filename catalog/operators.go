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
	"strings"

	"coldb/agg"
	"coldb/column"
	"coldb/engine"
	"coldb/join"
)

// resolveSelectSource resolves a select's col_or_handle argument,
// preferring a qualified table.column catalog reference (which carries
// its index, if any, into the engine.Source) and falling back to a
// handle name. It also returns the comparator built from op.Low/High
// and, when op.Source2 names a prior position vector, that vector's
// positions for chaining.
func resolveSelectSource(db *Database, sess *Session, op Operator) (engine.Source, engine.Comparator, []int32, error) {
	cmp := engine.Comparator{}
	if op.Low != nil {
		cmp.HasLow, cmp.Low = true, *op.Low
	}
	if op.High != nil {
		cmp.HasHigh, cmp.High = true, *op.High
	}

	var refPosns []int32
	if op.Source2 != "" {
		posns, err := resolvePositions(sess, op.Source2)
		if err != nil {
			return engine.Source{}, cmp, nil, err
		}
		refPosns = posns
	}

	if strings.Contains(op.Source, ".") {
		if _, c, err := db.Resolve(op.Source); err == nil {
			return engine.Source{Data: c.Data(), Index: c.Index}, cmp, refPosns, nil
		}
	}
	h := sess.Handles.Get(op.Source)
	if h == nil {
		return engine.Source{}, cmp, nil, fmt.Errorf("%w: %q", ErrNotFound, op.Source)
	}
	return engine.Source{Data: h.I32}, cmp, refPosns, nil
}

// resolvePositions looks up a position-vector handle by name.
func resolvePositions(sess *Session, name string) ([]int32, error) {
	h := sess.Handles.Get(name)
	if h == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return h.I32, nil
}

// resolveValueVector fetches a col_or_handle argument's data for
// aggregate/arithmetic, which never consult the index.
func resolveValueVector(db *Database, sess *Session, name string) (*column.Stats, []int32, error) {
	if strings.Contains(name, ".") {
		if _, c, err := db.Resolve(name); err == nil {
			d := c.Data()
			return &c.Stats, d, nil
		}
	}
	h := sess.Handles.Get(name)
	if h == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return &h.Stats, h.I32, nil
}

func dispatchAggregate(db *Database, sess *Session, op Operator) Reply {
	stats, data, err := resolveValueVector(db, sess, op.Source)
	if err != nil {
		return notFound(err)
	}
	switch op.Kind {
	case OpSum:
		sess.Handles.Create(op.Result, column.NewInt64Handle("", []int64{agg.Sum(*stats)}))
	case OpMin:
		v, err := agg.Min(*stats)
		if err != nil {
			return execErr(err)
		}
		sess.Handles.Create(op.Result, column.NewInt64Handle("", []int64{v}))
	case OpMax:
		v, err := agg.Max(*stats)
		if err != nil {
			return execErr(err)
		}
		sess.Handles.Create(op.Result, column.NewInt64Handle("", []int64{v}))
	case OpAvg:
		sess.Handles.Create(op.Result, column.NewDoubleHandle("", []float64{agg.Avg(*stats, len(data))}))
	}
	return okDone()
}

func dispatchArithmetic(db *Database, sess *Session, op Operator) Reply {
	_, a, err := resolveValueVector(db, sess, op.Source)
	if err != nil {
		return notFound(err)
	}
	_, b, err := resolveValueVector(db, sess, op.Source2)
	if err != nil {
		return notFound(err)
	}
	var h *column.Handle
	if op.Kind == OpAdd {
		h, err = agg.Add(a, b)
	} else {
		h, err = agg.Sub(a, b)
	}
	if err != nil {
		return execErr(err)
	}
	sess.Handles.Create(op.Result, h)
	return okDone()
}

func dispatchPrint(sess *Session, op Operator) Reply {
	handles := make([]*column.Handle, len(op.Handles))
	for i, name := range op.Handles {
		h := sess.Handles.Get(name)
		if h == nil {
			return notFound(fmt.Errorf("%w: %q", ErrNotFound, name))
		}
		handles[i] = h
	}
	out, err := agg.Print(handles...)
	if err != nil {
		return execErr(err)
	}
	return okPayload(out)
}

func dispatchJoin(sess *Session, op Operator) Reply {
	if len(op.Handles) != 4 {
		return execErr(fmt.Errorf("catalog: join expects 4 handle arguments (vals1,psn1,vals2,psn2), got %d", len(op.Handles)))
	}
	vals1, err := resolvePositions(sess, op.Handles[0])
	if err != nil {
		return notFound(err)
	}
	psn1, err := resolvePositions(sess, op.Handles[1])
	if err != nil {
		return notFound(err)
	}
	vals2, err := resolvePositions(sess, op.Handles[2])
	if err != nil {
		return notFound(err)
	}
	psn2, err := resolvePositions(sess, op.Handles[3])
	if err != nil {
		return notFound(err)
	}
	resL, resR, err := join.Join(op.JoinAlgo, vals1, psn1, vals2, psn2)
	if err != nil {
		return execErr(err)
	}
	if op.ResultL != "" {
		sess.Handles.Create(op.ResultL, column.NewInt32Handle("", resL))
	}
	if op.ResultR != "" {
		sess.Handles.Create(op.ResultR, column.NewInt32Handle("", resR))
	}
	return okDone()
}
