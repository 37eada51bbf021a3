// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// DistanceProxy is a shape reduced to the vertex set and skin radius a
// support-function-based distance query needs; it is the common
// representation every Shape kind degenerates to for Distance and
// TimeOfImpact.
type DistanceProxy struct {
	Vertices []math32.Vector2
	Radius   float32
}

// support returns the index of the vertex furthest in direction d.
func (p *DistanceProxy) support(d math32.Vector2) int {

	best := 0
	bestVal := p.Vertices[0].Dot(&d)
	for i := 1; i < len(p.Vertices); i++ {
		val := p.Vertices[i].Dot(&d)
		if val > bestVal {
			bestVal = val
			best = i
		}
	}
	return best
}

type simplexVertex struct {
	wA, wB math32.Vector2 // support points in each proxy's local frame
	w      math32.Vector2 // wB - wA in world (after transform)
	a      float32        // barycentric weight
	indexA, indexB int
}

// DistanceOutput is the result of a Distance query.
type DistanceOutput struct {
	PointA, PointB math32.Vector2
	Distance       float32
}

// Distance computes the closest points and distance between two convex
// proxies under the given transforms, via a small 2D GJK (the simplex has
// at most 3 vertices so a direct geometric solve is used instead of a
// general-dimension LCP). Shape skin radii are NOT subtracted here — callers
// needing "gap between skins" subtract RadiusA+RadiusB themselves.
func Distance(proxyA DistanceProxy, xfA math32.Transform2, proxyB DistanceProxy, xfB math32.Transform2) DistanceOutput {

	// Degenerate single-point proxies (circles): closest points are just
	// the two centers transformed to world space.
	if len(proxyA.Vertices) == 1 && len(proxyB.Vertices) == 1 {
		var pA, pB math32.Vector2
		xfA.TransformPoint(&proxyA.Vertices[0], &pA)
		xfB.TransformPoint(&proxyB.Vertices[0], &pB)
		return DistanceOutput{PointA: pA, PointB: pB, Distance: pA.DistanceTo(&pB)}
	}

	worldA := make([]math32.Vector2, len(proxyA.Vertices))
	for i, v := range proxyA.Vertices {
		xfA.TransformPoint(&v, &worldA[i])
	}
	worldB := make([]math32.Vector2, len(proxyB.Vertices))
	for i, v := range proxyB.Vertices {
		xfB.TransformPoint(&v, &worldB[i])
	}
	wpA := DistanceProxy{Vertices: worldA}
	wpB := DistanceProxy{Vertices: worldB}

	// Seed the search direction from the current separation of centroids.
	var ca, cb math32.Vector2
	for _, v := range worldA {
		ca.Add(&v)
	}
	ca.MultiplyScalar(1.0 / float32(len(worldA)))
	for _, v := range worldB {
		cb.Add(&v)
	}
	cb.MultiplyScalar(1.0 / float32(len(worldB)))

	d := cb
	d.Sub(&ca)
	if d.LengthSq() < 1e-18 {
		d.Set(1, 0)
	}

	var simplex []simplexVertex
	for iter := 0; iter < 20; iter++ {
		var negD math32.Vector2
		negD.Copy(&d).Negate()
		ia := wpA.support(negD)
		ib := wpB.support(d)

		var w math32.Vector2
		w.SubVectors(&worldB[ib], &worldA[ia])

		// Termination: new support point doesn't improve the separation.
		duplicate := false
		for _, sv := range simplex {
			if sv.indexA == ia && sv.indexB == ib {
				duplicate = true
				break
			}
		}
		if duplicate {
			break
		}

		simplex = append(simplex, simplexVertex{indexA: ia, indexB: ib, w: w})
		if len(simplex) > 3 {
			simplex = simplex[len(simplex)-3:]
		}

		newD, closestA, closestB := closestOnSimplex(simplex, worldA, worldB)
		if newD.LengthSq() >= d.LengthSq()-1e-12 && iter > 0 {
			return DistanceOutput{PointA: closestA, PointB: closestB, Distance: closestA.DistanceTo(&closestB)}
		}
		d = newD
		if d.LengthSq() < 1e-18 {
			return DistanceOutput{PointA: closestA, PointB: closestB, Distance: 0}
		}
	}

	_, closestA, closestB := closestOnSimplex(simplex, worldA, worldB)
	return DistanceOutput{PointA: closestA, PointB: closestB, Distance: closestA.DistanceTo(&closestB)}
}

// closestOnSimplex reduces the simplex to the feature (point, edge, or
// triangle-interior projection) closest to the origin, in the Minkowski
// difference sense, and returns the new search direction plus the
// corresponding closest points on A and B.
func closestOnSimplex(simplex []simplexVertex, worldA, worldB []math32.Vector2) (math32.Vector2, math32.Vector2, math32.Vector2) {

	switch len(simplex) {
	case 1:
		sv := simplex[0]
		return sv.w, worldA[sv.indexA], worldB[sv.indexB]

	case 2:
		a, b := simplex[0], simplex[1]
		ab := b.w
		ab.Sub(&a.w)
		t := float32(0)
		denom := ab.LengthSq()
		if denom > 1e-18 {
			var negA math32.Vector2
			negA.Copy(&a.w).Negate()
			t = negA.Dot(&ab) / denom
			t = math32.Clamp(t, 0, 1)
		}
		var closest math32.Vector2
		closest.Copy(&ab).MultiplyScalar(t).Add(&a.w)

		var pa, pb math32.Vector2
		pa.SubVectors(&worldA[b.indexA], &worldA[a.indexA]).MultiplyScalar(t).Add(&worldA[a.indexA])
		pb.SubVectors(&worldB[b.indexB], &worldB[a.indexB]).MultiplyScalar(t).Add(&worldB[a.indexB])
		return closest, pa, pb

	default:
		// Triangle case: pick the closest of its three edges (the origin
		// can't be "inside" a 2D Minkowski-difference polygon of only 3
		// points in any way that matters for our shape sizes/tolerances).
		bestD := math32.Infinity
		var bestDir, bestA, bestB math32.Vector2
		pairs := [][2]int{{0, 1}, {1, 2}, {2, 0}}
		for _, pr := range pairs {
			d, a, b := closestOnSimplex([]simplexVertex{simplex[pr[0]], simplex[pr[1]]}, worldA, worldB)
			if d.LengthSq() < bestD {
				bestD = d.LengthSq()
				bestDir, bestA, bestB = d, a, b
			}
		}
		return bestDir, bestA, bestB
	}
}
