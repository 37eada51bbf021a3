// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broadphase

import "sort"

// PairCallback receives the user data of both proxies in a newly
// overlapping pair.
type PairCallback func(userDataA, userDataB interface{})

type idPair struct{ a, b int }

// UpdatePairs invokes cb once for every proxy pair whose fattened AABBs
// currently overlap and at least one of which moved since the previous
// UpdatePairs call. Proxy ids are sorted within each pair (and pairs
// deduplicated) so the enumeration order depends only on proxy id, not on
// insertion order within this call, keeping ContactManager's downstream
// canonicalization of which fixture becomes "A" deterministic.
func (t *Tree) UpdatePairs(cb PairCallback) {

	var pairs []idPair

	for _, moved := range t.movedLeaves() {
		fatAABB := t.nodes[moved].aabb
		t.Query(func(other int) bool {
			if other == moved {
				return true
			}
			// Avoid reporting the pair twice when both sides moved: only
			// the proxy with the smaller id performs the query that emits it.
			if t.nodes[other].moved && other < moved {
				return true
			}
			a, b := moved, other
			if b < a {
				a, b = b, a
			}
			pairs = append(pairs, idPair{a, b})
			return true
		}, fatAABB)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	var lastA, lastB = -1, -1
	for _, p := range pairs {
		if p.a == lastA && p.b == lastB {
			continue
		}
		lastA, lastB = p.a, p.b
		cb(t.nodes[p.a].userData, t.nodes[p.b].userData)
	}

	for _, moved := range t.movedLeaves() {
		t.nodes[moved].moved = false
	}
}

func (t *Tree) movedLeaves() []int {

	var out []int
	for i := range t.nodes {
		if t.nodes[i].height >= 0 && t.nodes[i].isLeaf() && t.nodes[i].moved {
			out = append(out, i)
		}
	}
	return out
}
