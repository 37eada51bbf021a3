// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

type clipVertex struct {
	v  math32.Vector2
	id ContactFeature
}

// findMaxSeparation returns the edge index of polyA with the largest
// separation against polyB, and that separation, with both polygons
// expressed via xfA/xfB.
func findMaxSeparation(polyA *PolygonShape, xfA math32.Transform2, polyB *PolygonShape, xfB math32.Transform2) (int, float32) {

	// Work in polyA's local frame: transform polyB's vertices via
	// inverse(xfA) * xfB.
	var rel math32.Transform2
	rel.MulT(&xfA, &xfB)

	bestIndex := 0
	bestSeparation := -math32.Infinity

	for i, n := range polyA.Normals {
		var worstDist float32 = math32.Infinity
		for _, v := range polyB.Vertices {
			var vLocal math32.Vector2
			rel.TransformPoint(&v, &vLocal)
			var d math32.Vector2
			d.SubVectors(&vLocal, &polyA.Vertices[i])
			s := n.Dot(&d)
			if s < worstDist {
				worstDist = s
			}
		}
		if worstDist > bestSeparation {
			bestSeparation = worstDist
			bestIndex = i
		}
	}
	return bestIndex, bestSeparation
}

func incidentEdge(polyB *PolygonShape, xfB math32.Transform2, referenceNormalWorld math32.Vector2) [2]clipVertex {

	bestIndex := 0
	minDot := math32.Infinity
	for i, n := range polyB.Normals {
		var worldN math32.Vector2
		xfB.TransformVector(&n, &worldN)
		d := worldN.Dot(&referenceNormalWorld)
		if d < minDot {
			minDot = d
			bestIndex = i
		}
	}

	i1 := bestIndex
	i2 := (bestIndex + 1) % len(polyB.Vertices)

	var c [2]clipVertex
	xfB.TransformPoint(&polyB.Vertices[i1], &c[0].v)
	c[0].id = ContactFeature{IndexA: uint8(i1), TypeA: FeatureFace, IndexB: uint8(i1), TypeB: FeatureVertex}
	xfB.TransformPoint(&polyB.Vertices[i2], &c[1].v)
	c[1].id = ContactFeature{IndexA: uint8(i1), TypeA: FeatureFace, IndexB: uint8(i2), TypeB: FeatureVertex}
	return c
}

// clipSegmentToLine clips the segment in against the half-plane
// normal.Dot(x) <= offset, returning the (possibly shortened) segment.
func clipSegmentToLine(in [2]clipVertex, normal math32.Vector2, offset float32, edgeIndex int) ([2]clipVertex, int) {

	var out [2]clipVertex
	count := 0

	d0 := normal.Dot(&in[0].v) - offset
	d1 := normal.Dot(&in[1].v) - offset

	if d0 <= 0 {
		out[count] = in[0]
		count++
	}
	if d1 <= 0 {
		out[count] = in[1]
		count++
	}

	if d0*d1 < 0 {
		t := d0 / (d0 - d1)
		var v math32.Vector2
		v.SubVectors(&in[1].v, &in[0].v)
		v.MultiplyScalar(t)
		v.Add(&in[0].v)
		out[count] = clipVertex{v: v, id: ContactFeature{IndexA: uint8(edgeIndex), TypeA: FeatureFace, IndexB: in[0].id.IndexB, TypeB: FeatureVertex}}
		count++
	}
	return out, count
}

// CollidePolygons computes the manifold between two convex polygons via
// separating-axis reference/incident face selection and Sutherland-Hodgman
// clipping against the reference face's side planes.
func CollidePolygons(polyA *PolygonShape, xfA math32.Transform2, polyB *PolygonShape, xfB math32.Transform2) Manifold {

	m := Manifold{}
	totalRadius := polyA.radius + polyB.radius

	edgeA, sepA := findMaxSeparation(polyA, xfA, polyB, xfB)
	if sepA > totalRadius {
		return m
	}
	edgeB, sepB := findMaxSeparation(polyB, xfB, polyA, xfA)
	if sepB > totalRadius {
		return m
	}

	var refPoly, incPoly *PolygonShape
	var refXf, incXf math32.Transform2
	var refEdge int
	flip := false

	const tol = 0.1 * 0.005
	if sepB > sepA+tol {
		refPoly, incPoly = polyB, polyA
		refXf, incXf = xfB, xfA
		refEdge = edgeB
		flip = true
	} else {
		refPoly, incPoly = polyA, polyB
		refXf, incXf = xfA, xfB
		refEdge = edgeA
		flip = false
	}

	var refNormalWorld math32.Vector2
	refXf.TransformVector(&refPoly.Normals[refEdge], &refNormalWorld)

	incident := incidentEdge(incPoly, incXf, refNormalWorld)

	i1 := refEdge
	i2 := (refEdge + 1) % len(refPoly.Vertices)
	var v11, v12 math32.Vector2
	refXf.TransformPoint(&refPoly.Vertices[i1], &v11)
	refXf.TransformPoint(&refPoly.Vertices[i2], &v12)

	var tangent math32.Vector2
	tangent.SubVectors(&v12, &v11)
	tangent.Normalize()

	negTangent := tangent
	negTangent.Negate()
	sideOffset1 := -tangent.Dot(&v11) + totalRadius
	clipped1, n1 := clipSegmentToLine(incident, negTangent, sideOffset1, i1)
	if n1 < 2 {
		return m
	}

	sideOffset2 := tangent.Dot(&v12) + totalRadius
	in2 := [2]clipVertex{clipped1[0], clipped1[1]}
	clipped2, n2 := clipSegmentToLine(in2, tangent, sideOffset2, i2)
	if n2 < 2 {
		return m
	}

	var refNormal math32.Vector2
	refNormal.Set(tangent.Y, -tangent.X)

	points := make([]ManifoldPoint, 0, 2)
	for i := 0; i < 2; i++ {
		sep := refNormal.Dot(&clipped2[i].v) - refNormal.Dot(&v11) - totalRadius
		if sep <= 0 {
			var local math32.Vector2
			incXf.InvTransformPoint(&clipped2[i].v, &local)
			id := clipped2[i].id
			if flip {
				id = ContactFeature{IndexA: id.IndexB, TypeA: id.TypeB, IndexB: id.IndexA, TypeB: id.TypeA}
			}
			points = append(points, ManifoldPoint{LocalPoint: local, ID: id})
		}
	}
	if len(points) == 0 {
		return m
	}

	if flip {
		m.Type = ManifoldFaceB
		m.LocalNormal = refPoly.Normals[refEdge]
	} else {
		m.Type = ManifoldFaceA
		m.LocalNormal = refPoly.Normals[refEdge]
	}
	m.LocalPoint = refPoly.Vertices[i1]
	m.Points = points
	return m
}
