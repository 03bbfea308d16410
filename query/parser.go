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

// Package query parses one line of the textual query language into a
// catalog.Operator the dispatcher can execute.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"coldb/catalog"
	"coldb/index"
	"coldb/join"
)

// ErrIncorrectFormat means the line does not match any known grammar;
// it maps to wire.IncorrectFormat.
var ErrIncorrectFormat = errors.New("query: incorrect format")

// ErrUnknownCommand means the line's leading keyword is not recognized;
// it maps to wire.UnknownCommand.
var ErrUnknownCommand = errors.New("query: unknown command")

// Parse parses one line (without its trailing newline).
func Parse(line string) (catalog.Operator, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return catalog.Operator{}, ErrIncorrectFormat
	}

	handle := ""
	body := line
	if i := strings.IndexByte(line, '='); i >= 0 {
		handle = strings.TrimSpace(line[:i])
		body = strings.TrimSpace(line[i+1:])
	}

	name, args, hasArgs := splitCommand(body)
	switch name {
	case "create":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return parseCreate(splitArgs(args))
	case "relational_insert":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return parseInsert(splitArgs(args))
	case "load":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return parseLoad(args)
	case "select":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return parseSelect(handle, splitArgs(args))
	case "fetch":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return parseFetch(handle, splitArgs(args))
	case "avg", "sum", "min", "max":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return parseAggregate(handle, name, splitArgs(args))
	case "add", "sub":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return parseArithmetic(handle, name, splitArgs(args))
	case "print":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return catalog.Operator{Kind: catalog.OpPrint, Handles: splitArgs(args)}, nil
	case "join":
		if !hasArgs {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return parseJoin(handle, splitArgs(args))
	case "batch_queries":
		return catalog.Operator{Kind: catalog.OpBatchQueries}, nil
	case "batch_execute":
		return catalog.Operator{Kind: catalog.OpBatchExecute}, nil
	case "single_core":
		return catalog.Operator{Kind: catalog.OpSingleCore}, nil
	case "single_core_execute":
		return catalog.Operator{Kind: catalog.OpSingleCoreExecute}, nil
	case "shutdown":
		return catalog.Operator{Kind: catalog.OpShutdown}, nil
	default:
		return catalog.Operator{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

// splitCommand splits "name(args)" into ("name", "args", true), or
// a bare keyword like "batch_queries" into ("batch_queries", "", false).
func splitCommand(s string) (name, args string, hasArgs bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return strings.TrimSuffix(s, "()"), "", false
	}
	close := strings.LastIndexByte(s, ')')
	if close < open {
		return s[:open], "", false
	}
	return s[:open], s[open+1 : close], true
}

// splitArgs splits a comma-separated argument list at top-level commas,
// leaving commas inside double-quoted strings intact.
func splitArgs(s string) []string {
	var out []string
	inQuotes := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out
}

func unquote(s string) string {
	return strings.Trim(s, "\"")
}

func parseBound(s string) (*int32, error) {
	if s == "null" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: bad bound %q", ErrIncorrectFormat, s)
	}
	r := int32(v)
	return &r, nil
}

func parseCreate(args []string) (catalog.Operator, error) {
	if len(args) < 2 {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	switch args[0] {
	case "db":
		return catalog.Operator{Kind: catalog.OpCreateDB, Name: unquote(args[1])}, nil
	case "tbl":
		if len(args) != 4 {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		n, err := strconv.Atoi(args[3])
		if err != nil {
			return catalog.Operator{}, fmt.Errorf("%w: bad column count %q", ErrIncorrectFormat, args[3])
		}
		return catalog.Operator{Kind: catalog.OpCreateTable, Name: unquote(args[1]), ColCapacity: n}, nil
	case "col":
		if len(args) != 3 {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		_, table, ok := splitQualified(args[2])
		if !ok {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		return catalog.Operator{Kind: catalog.OpCreateColumn, Name: unquote(args[1]), Parent: table}, nil
	case "idx":
		if len(args) != 4 {
			return catalog.Operator{}, ErrIncorrectFormat
		}
		kind, err := parseIndexKind(args[2], args[3])
		if err != nil {
			return catalog.Operator{}, err
		}
		return catalog.Operator{Kind: catalog.OpCreateIndex, Source: args[1], IndexKind: kind}, nil
	default:
		return catalog.Operator{}, fmt.Errorf("%w: create %q", ErrIncorrectFormat, args[0])
	}
}

func parseIndexKind(shape, clustering string) (index.Kind, error) {
	btree := shape == "btree"
	clustered := clustering == "clustered"
	switch {
	case btree && clustered:
		return index.BTreeClustered, nil
	case btree && !clustered:
		return index.BTreeUnclustered, nil
	case !btree && clustered:
		return index.SortedClustered, nil
	default:
		return index.SortedUnclustered, nil
	}
}

// splitQualified splits "db.table" into (db, table, true).
func splitQualified(s string) (db, table string, ok bool) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func parseInsert(args []string) (catalog.Operator, error) {
	if len(args) < 2 {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	_, table, ok := splitQualified(args[0])
	if !ok {
		table = args[0]
	}
	values := make([]int32, len(args)-1)
	for i, raw := range args[1:] {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return catalog.Operator{}, fmt.Errorf("%w: bad value %q", ErrIncorrectFormat, raw)
		}
		values[i] = int32(v)
	}
	return catalog.Operator{Kind: catalog.OpRelationalInsert, Table: table, Values: values}, nil
}

func parseLoad(args string) (catalog.Operator, error) {
	path := strings.TrimSpace(args)
	if !strings.HasPrefix(path, "\"") {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	return catalog.Operator{Kind: catalog.OpLoad, Path: unquote(path)}, nil
}

func parseSelect(handle string, args []string) (catalog.Operator, error) {
	if handle == "" {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	// Type 2: select(posn_vec, val_vec, low, high)
	if len(args) == 4 {
		low, err := parseBound(args[2])
		if err != nil {
			return catalog.Operator{}, err
		}
		high, err := parseBound(args[3])
		if err != nil {
			return catalog.Operator{}, err
		}
		return catalog.Operator{
			Kind:    catalog.OpSelect,
			Source:  args[1],
			Source2: args[0], // caller (the dispatcher's RefPosns resolution) resolves the posn handle
			Low:     low,
			High:    high,
			Result:  handle,
		}, nil
	}
	if len(args) != 3 {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	low, err := parseBound(args[1])
	if err != nil {
		return catalog.Operator{}, err
	}
	high, err := parseBound(args[2])
	if err != nil {
		return catalog.Operator{}, err
	}
	return catalog.Operator{Kind: catalog.OpSelect, Source: args[0], Low: low, High: high, Result: handle}, nil
}

func parseFetch(handle string, args []string) (catalog.Operator, error) {
	if handle == "" || len(args) != 2 {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	return catalog.Operator{Kind: catalog.OpFetch, Source: args[0], Source2: args[1], Result: handle}, nil
}

func parseAggregate(handle, name string, args []string) (catalog.Operator, error) {
	if handle == "" || len(args) != 1 {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	kinds := map[string]catalog.OpKind{"avg": catalog.OpAvg, "sum": catalog.OpSum, "min": catalog.OpMin, "max": catalog.OpMax}
	return catalog.Operator{Kind: kinds[name], Source: args[0], Result: handle}, nil
}

func parseArithmetic(handle, name string, args []string) (catalog.Operator, error) {
	if handle == "" || len(args) != 2 {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	kind := catalog.OpAdd
	if name == "sub" {
		kind = catalog.OpSub
	}
	return catalog.Operator{Kind: kind, Source: args[0], Source2: args[1], Result: handle}, nil
}

func parseJoin(handle string, args []string) (catalog.Operator, error) {
	if len(args) != 5 {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	algo, err := parseJoinKind(args[4])
	if err != nil {
		return catalog.Operator{}, err
	}
	parts := strings.SplitN(handle, ",", 2)
	if len(parts) != 2 {
		return catalog.Operator{}, ErrIncorrectFormat
	}
	resultL, resultR := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	return catalog.Operator{
		Kind:     catalog.OpJoin,
		Handles:  []string{args[0], args[1], args[2], args[3]},
		JoinAlgo: algo,
		ResultL:  resultL,
		ResultR:  resultR,
	}, nil
}

func parseJoinKind(s string) (join.Kind, error) {
	switch s {
	case "nested-loop":
		return join.NestedLoop, nil
	case "naive-hash":
		return join.NaiveHash, nil
	case "hash":
		return join.Hash, nil
	case "grace-hash":
		return join.GraceHash, nil
	default:
		return 0, fmt.Errorf("%w: join kind %q", ErrIncorrectFormat, s)
	}
}
