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

package join

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// node is one value-vector entry chained into a hash bucket: a key and
// the one position it came from. Values repeated in vals1 chain through
// next, newest first.
type node struct {
	val  int32
	psn  int32
	next *node
}

// table is a chained hash table over vals1, bucketed by
// siphash64(val) % len(buckets). Bucket count equals |L| per spec.
type table struct {
	buckets []*node
}

func buildTable(vals1, psn1 []int32) *table {
	n := len(vals1)
	if n == 0 {
		n = 1
	}
	t := &table{buckets: make([]*node, n)}
	for i, v := range vals1 {
		b := bucketOf(v, len(t.buckets))
		t.buckets[b] = &node{val: v, psn: psn1[i], next: t.buckets[b]}
	}
	return t
}

func bucketOf(v int32, numBuckets int) int {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	h := siphash.Hash64(0, 0, buf[:])
	return int(h % uint64(numBuckets))
}

// HashJoin builds a chained hash table on vals1 (bucket count |L|,
// siphash-keyed modulo hash) and probes it with vals2 in two passes:
// the first counts matches so the result can be allocated exactly, the
// second materializes the position pairs. This is the naive hash-join;
// grace-hash and plain "hash" both alias to it.
func HashJoin(vals1, psn1, vals2, psn2 []int32) ([]int32, []int32, error) {
	if len(vals1) == 0 || len(vals2) == 0 {
		return []int32{}, []int32{}, nil
	}
	t := buildTable(vals1, psn1)

	total := 0
	for _, rv := range vals2 {
		for n := t.buckets[bucketOf(rv, len(t.buckets))]; n != nil; n = n.next {
			if n.val == rv {
				total++
			}
		}
	}

	resL := make([]int32, 0, total)
	resR := make([]int32, 0, total)
	for r, rv := range vals2 {
		for n := t.buckets[bucketOf(rv, len(t.buckets))]; n != nil; n = n.next {
			if n.val == rv {
				resL = append(resL, n.psn)
				resR = append(resR, psn2[r])
			}
		}
	}
	return resL, resR, nil
}
