// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// CollideCircles computes the manifold between two circles.
func CollideCircles(a *CircleShape, xfA math32.Transform2, b *CircleShape, xfB math32.Transform2) Manifold {

	m := Manifold{Type: ManifoldCircles}

	var pA, pB math32.Vector2
	xfA.TransformPoint(&a.Center, &pA)
	xfB.TransformPoint(&b.Center, &pB)

	var d math32.Vector2
	d.SubVectors(&pB, &pA)
	distSq := d.LengthSq()
	rSum := a.radius + b.radius
	if distSq > rSum*rSum {
		return m
	}

	m.LocalPoint = a.Center
	m.Points = []ManifoldPoint{{LocalPoint: b.Center, ID: ContactFeature{TypeA: FeatureVertex, TypeB: FeatureVertex}}}
	return m
}

// CollidePolygonAndCircle computes the manifold between a polygon and a
// circle. The circle is always treated as shape B regardless of the call
// site's argument order convention used elsewhere in the dispatch table.
func CollidePolygonAndCircle(poly *PolygonShape, xfA math32.Transform2, circle *CircleShape, xfB math32.Transform2) Manifold {

	m := Manifold{Type: ManifoldFaceA}

	// Circle center in polygon's local frame.
	var c math32.Vector2
	xfB.TransformPoint(&circle.Center, &c)
	var cLocal math32.Vector2
	xfA.InvTransformPoint(&c, &cLocal)

	// Find the edge with max separation.
	n := len(poly.Vertices)
	separation := -math32.Infinity
	normalIndex := 0
	for i := 0; i < n; i++ {
		var d math32.Vector2
		d.SubVectors(&cLocal, &poly.Vertices[i])
		s := poly.Normals[i].Dot(&d)
		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	radius := poly.radius + circle.radius
	if separation > radius {
		return m
	}

	v1 := poly.Vertices[normalIndex]
	v2 := poly.Vertices[(normalIndex+1)%n]

	if separation < 1e-12 {
		// Center is inside the polygon: use the face normal directly.
		m.LocalNormal = poly.Normals[normalIndex]
		var mid math32.Vector2
		mid.AddVectors(&v1, &v2).MultiplyScalar(0.5)
		m.LocalPoint = mid
		m.Points = []ManifoldPoint{{LocalPoint: circle.Center, ID: ContactFeature{TypeA: FeatureFace, IndexA: uint8(normalIndex)}}}
		return m
	}

	var u1, u2 math32.Vector2
	u1.SubVectors(&cLocal, &v1)
	u2.SubVectors(&cLocal, &v2)
	var edge, negEdge math32.Vector2
	edge.SubVectors(&v2, &v1)
	negEdge.Copy(&edge).Negate()

	if u1.Dot(&edge) <= 0 {
		if cLocal.DistanceToSquared(&v1) > radius*radius {
			return m
		}
		m.LocalNormal.SubVectors(&cLocal, &v1).Normalize()
		m.LocalPoint = v1
	} else if u2.Dot(&negEdge) <= 0 {
		if cLocal.DistanceToSquared(&v2) > radius*radius {
			return m
		}
		m.LocalNormal.SubVectors(&cLocal, &v2).Normalize()
		m.LocalPoint = v2
	} else {
		m.LocalNormal = poly.Normals[normalIndex]
		var mid math32.Vector2
		mid.AddVectors(&v1, &v2).MultiplyScalar(0.5)
		m.LocalPoint = mid
	}

	m.Points = []ManifoldPoint{{LocalPoint: circle.Center, ID: ContactFeature{TypeA: FeatureFace, IndexA: uint8(normalIndex)}}}
	return m
}
