// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broadphase

import (
	"github.com/g3n/rb2d/math32"
)

// RayCastInput describes a segment query from P1 to P2, clipped to
// MaxFraction along the way.
type RayCastInput struct {
	P1, P2      math32.Vector2
	MaxFraction float32
}

// RayCastCallback is invoked for each proxy whose fattened AABB the ray
// intersects; it returns the fraction to clip the ray to (semantics match
// the narrow-phase ray-cast callback contract: 0 stops, 1 continues
// unclipped, negative ignores this proxy, (0,1] clips and continues).
type RayCastCallback func(input RayCastInput, proxyID int) float32

// RayCast walks the tree, visiting only nodes whose AABB the
// (possibly-already-clipped) segment intersects.
func (t *Tree) RayCast(cb RayCastCallback, input RayCastInput) {

	if t.root == nullNode {
		return
	}

	p1 := input.P1
	p2 := input.P2
	var d math32.Vector2
	d.SubVectors(&p2, &p1)
	if d.LengthSq() > 0 {
		d.Normalize()
	}

	maxFraction := input.MaxFraction

	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nullNode {
			continue
		}
		n := &t.nodes[id]

		if !segmentIntersectsAABB(p1, p2, &n.aabb) {
			continue
		}

		if n.isLeaf() {
			subInput := RayCastInput{P1: p1, P2: p2, MaxFraction: maxFraction}
			fraction := cb(subInput, id)
			if fraction == 0 {
				return
			}
			if fraction > 0 {
				maxFraction = fraction
				var newP2 math32.Vector2
				newP2.Copy(&d).MultiplyScalar(maxFraction * p1.DistanceTo(&p2)).Add(&p1)
				p2 = newP2
			}
		} else {
			stack = append(stack, n.left, n.right)
		}
	}
}

// segmentIntersectsAABB is a slab test against the box using the segment's
// own parametrization, not the normalized direction, so degenerate
// zero-length segments (a point query) still work.
func segmentIntersectsAABB(p1, p2 math32.Vector2, box *math32.Box2) bool {

	min := box.Min()
	max := box.Max()

	lower := float32(0)
	upper := float32(1)

	var d math32.Vector2
	d.SubVectors(&p2, &p1)

	axes := [2]struct{ p, d, lo, hi float32 }{
		{p1.X, d.X, min.X, max.X},
		{p1.Y, d.Y, min.Y, max.Y},
	}

	for _, axis := range axes {
		if math32.Abs(axis.d) < 1e-12 {
			if axis.p < axis.lo || axis.p > axis.hi {
				return false
			}
			continue
		}
		inv := 1 / axis.d
		t1 := (axis.lo - axis.p) * inv
		t2 := (axis.hi - axis.p) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > lower {
			lower = t1
		}
		if t2 < upper {
			upper = t2
		}
		if lower > upper {
			return false
		}
	}
	return true
}
