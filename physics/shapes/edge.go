// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// EdgeShape is a single line segment, optionally carrying "ghost" vertices
// on either side (unused by this engine's simplified edge-polygon routine,
// kept for source compatibility with chain-derived edges).
type EdgeShape struct {
	V1, V2       math32.Vector2
	HasV0, HasV3 bool
	V0, V3       math32.Vector2
	radius       float32
}

// NewEdge creates and returns a pointer to a new EdgeShape between v1 and v2.
func NewEdge(v1, v2 math32.Vector2) *EdgeShape {

	return &EdgeShape{V1: v1, V2: v2, radius: PolygonRadius}
}

func (s *EdgeShape) Kind() Kind { return Edge }

func (s *EdgeShape) ChildCount() int { return 1 }

func (s *EdgeShape) Radius() float32 { return s.radius }

func (s *EdgeShape) TestPoint(xf math32.Transform2, p math32.Vector2) bool {

	return false // an infinitely thin edge contains no area
}

func (s *EdgeShape) ComputeAABB(xf math32.Transform2, childIndex int) math32.Box2 {

	var v1, v2 math32.Vector2
	xf.TransformPoint(&s.V1, &v1)
	xf.TransformPoint(&s.V2, &v2)
	var min, max math32.Vector2
	min.Copy(&v1).Min(&v2)
	max.Copy(&v1).Max(&v2)
	var r math32.Vector2
	r.Set(s.radius, s.radius)
	min.Sub(&r)
	max.Add(&r)
	return *math32.NewBox2(&min, &max)
}

func (s *EdgeShape) ComputeMass(density float32) MassData {

	var center math32.Vector2
	center.AddVectors(&s.V1, &s.V2).MultiplyScalar(0.5)
	return MassData{Mass: 0, Center: center, I: 0}
}

func (s *EdgeShape) RayCast(input *RayCastInput, xf math32.Transform2, childIndex int) (RayCastOutput, bool) {

	var p1, p2, v1, v2 math32.Vector2
	xf.InvTransformPoint(&input.P1, &p1)
	xf.InvTransformPoint(&input.P2, &p2)
	v1 = s.V1
	v2 = s.V2

	var e math32.Vector2
	e.SubVectors(&v2, &v1)
	var eUnit math32.Vector2
	eUnit.Copy(&e)
	length := eUnit.Length()
	if length < 1e-12 {
		return RayCastOutput{}, false
	}
	eUnit.Normalize()

	var normal math32.Vector2
	normal.Set(eUnit.Y, -eUnit.X)

	var d math32.Vector2
	d.SubVectors(&p2, &p1)
	denom := normal.Dot(&d)
	if denom == 0 {
		return RayCastOutput{}, false
	}

	var v1p1 math32.Vector2
	v1p1.SubVectors(&v1, &p1)
	t := normal.Dot(&v1p1) / denom
	if t < 0 || t > input.MaxFraction {
		return RayCastOutput{}, false
	}

	var hit math32.Vector2
	hit.Copy(&d).MultiplyScalar(t).Add(&p1)
	var hitRel math32.Vector2
	hitRel.SubVectors(&hit, &v1)
	s2 := hitRel.Dot(&eUnit)
	if s2 < 0 || s2 > length {
		return RayCastOutput{}, false
	}

	if denom > 0 {
		normal.Negate()
	}
	var worldNormal math32.Vector2
	xf.TransformVector(&normal, &worldNormal)
	return RayCastOutput{Normal: worldNormal, Fraction: t}, true
}

func (s *EdgeShape) Proxy(childIndex int) DistanceProxy {

	return DistanceProxy{Vertices: []math32.Vector2{s.V1, s.V2}, Radius: s.radius}
}

// AsPolygon degenerates the edge to a two-vertex, two-sided "polygon" so
// the narrow-phase dispatch can reuse CollidePolygons/CollidePolygonAndCircle
// instead of a separate edge-specific clipping routine.
func (s *EdgeShape) AsPolygon() *PolygonShape {

	var tangent math32.Vector2
	tangent.SubVectors(&s.V2, &s.V1)
	tangent.Normalize()
	var normal math32.Vector2
	normal.Set(tangent.Y, -tangent.X)
	var negNormal math32.Vector2
	negNormal.Copy(&normal).Negate()

	return &PolygonShape{
		Vertices: []math32.Vector2{s.V1, s.V2},
		Normals:  []math32.Vector2{normal, negNormal},
		radius:   s.radius,
	}
}
