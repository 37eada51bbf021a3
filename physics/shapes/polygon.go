// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// PolygonShape is a convex polygon of up to MaxPolygonVertices vertices,
// wound counter-clockwise, carrying a small constant skin radius.
type PolygonShape struct {
	Vertices []math32.Vector2
	Normals  []math32.Vector2
	Centroid math32.Vector2
	radius   float32
}

// NewBox creates and returns a pointer to a new axis-aligned box polygon
// centered at the local origin with the given half-width and half-height.
func NewBox(hx, hy float32) *PolygonShape {

	return NewPolygon([]math32.Vector2{
		{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy},
	})
}

// NewPolygon creates and returns a pointer to a new PolygonShape from a set
// of points, computing the convex hull, winding, normals and centroid.
func NewPolygon(points []math32.Vector2) *PolygonShape {

	p := &PolygonShape{radius: PolygonRadius}
	hull := convexHull(points)
	p.Vertices = hull
	p.Normals = make([]math32.Vector2, len(hull))
	n := len(hull)
	for i := 0; i < n; i++ {
		edge := hull[(i+1)%n]
		edge.Sub(&hull[i])
		var normal math32.Vector2
		normal.Set(edge.Y, -edge.X)
		normal.Normalize()
		p.Normals[i] = normal
	}
	p.Centroid = computeCentroid(hull)
	return p
}

// convexHull computes the counter-clockwise convex hull of points using a
// gift-wrapping scan, sufficient for the small vertex counts (<=8) this
// engine deals with.
func convexHull(points []math32.Vector2) []math32.Vector2 {

	n := len(points)
	if n <= 2 {
		return points
	}
	// Find the leftmost-lowest point to start from.
	start := 0
	for i := 1; i < n; i++ {
		if points[i].X < points[start].X || (points[i].X == points[start].X && points[i].Y < points[start].Y) {
			start = i
		}
	}

	hull := make([]math32.Vector2, 0, n)
	hull = append(hull, points[start])
	cur := start
	for {
		next := (cur + 1) % n
		for i := 0; i < n; i++ {
			if i == cur {
				continue
			}
			cross := cross2(points[cur], points[next], points[i])
			if cross < 0 {
				next = i
			}
		}
		if next == start {
			break
		}
		hull = append(hull, points[next])
		cur = next
		if len(hull) > MaxPolygonVertices {
			break
		}
	}
	return hull
}

func cross2(o, a, b math32.Vector2) float32 {

	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func computeCentroid(vs []math32.Vector2) math32.Vector2 {

	var c math32.Vector2
	area := float32(0)
	origin := vs[0]
	for i := 1; i+1 < len(vs); i++ {
		e1 := vs[i]
		e1.Sub(&origin)
		e2 := vs[i+1]
		e2.Sub(&origin)
		a := e1.Cross(&e2)
		triArea := 0.5 * a
		area += triArea
		c.X += triArea * (e1.X + e2.X) / 3
		c.Y += triArea * (e1.Y + e2.Y) / 3
	}
	if area > 1e-12 {
		c.MultiplyScalar(1.0 / area)
	}
	c.Add(&origin)
	return c
}

func (s *PolygonShape) Kind() Kind { return Polygon }

func (s *PolygonShape) ChildCount() int { return 1 }

func (s *PolygonShape) Radius() float32 { return s.radius }

func (s *PolygonShape) TestPoint(xf math32.Transform2, p math32.Vector2) bool {

	var local math32.Vector2
	xf.InvTransformPoint(&p, &local)
	for i := range s.Vertices {
		d := local
		d.Sub(&s.Vertices[i])
		if s.Normals[i].Dot(&d) > 0 {
			return false
		}
	}
	return true
}

func (s *PolygonShape) ComputeAABB(xf math32.Transform2, childIndex int) math32.Box2 {

	var min, max math32.Vector2
	xf.TransformPoint(&s.Vertices[0], &min)
	max = min
	for i := 1; i < len(s.Vertices); i++ {
		var v math32.Vector2
		xf.TransformPoint(&s.Vertices[i], &v)
		min.Min(&v)
		max.Max(&v)
	}
	var r math32.Vector2
	r.Set(s.radius, s.radius)
	min.Sub(&r)
	max.Add(&r)
	return *math32.NewBox2(&min, &max)
}

func (s *PolygonShape) ComputeMass(density float32) MassData {

	// Standard polygon mass formula via triangle fan from the first vertex.
	var center math32.Vector2
	area := float32(0)
	I := float32(0)
	origin := s.Vertices[0]
	const inv3 = 1.0 / 3.0

	for i := 1; i+1 < len(s.Vertices); i++ {
		e1 := s.Vertices[i]
		e1.Sub(&origin)
		e2 := s.Vertices[i+1]
		e2.Sub(&origin)

		d := e1.Cross(&e2)
		triArea := 0.5 * d
		area += triArea

		center.X += triArea * inv3 * (e1.X + e2.X)
		center.Y += triArea * inv3 * (e1.Y + e2.Y)

		intx2 := e1.X*e1.X + e2.X*e1.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e2.Y*e1.Y + e2.Y*e2.Y
		I += (0.25 * inv3 * d) * (intx2 + inty2)
	}

	mass := density * area
	if area > 1e-12 {
		center.MultiplyScalar(1.0 / area)
	}
	center.Add(&origin)

	// Shift I from origin to the centroid, then to the local origin (0,0).
	I = density * I
	var oc math32.Vector2
	oc.Copy(&center)
	oc.Sub(&origin)
	I -= mass * oc.Dot(&oc)

	var c2 math32.Vector2
	c2.Copy(&center)
	I += mass * c2.Dot(&c2)

	return MassData{Mass: mass, Center: center, I: I}
}

func (s *PolygonShape) RayCast(input *RayCastInput, xf math32.Transform2, childIndex int) (RayCastOutput, bool) {

	var p1, d math32.Vector2
	xf.InvTransformPoint(&input.P1, &p1)
	var p2 math32.Vector2
	xf.InvTransformPoint(&input.P2, &p2)
	d.SubVectors(&p2, &p1)

	lower, upper := float32(0), input.MaxFraction
	index := -1

	for i := range s.Vertices {
		var vp1 math32.Vector2
		vp1.SubVectors(&s.Vertices[i], &p1)
		num := s.Normals[i].Dot(&vp1)
		den := s.Normals[i].Dot(&d)
		if den == 0 {
			if num < 0 {
				return RayCastOutput{}, false
			}
		} else {
			if den < 0 && num < lower*den {
				lower = num / den
				index = i
			} else if den > 0 && num < upper*den {
				upper = num / den
			}
		}
		if upper < lower {
			return RayCastOutput{}, false
		}
	}

	if index >= 0 {
		var normal math32.Vector2
		xf.TransformVector(&s.Normals[index], &normal)
		return RayCastOutput{Normal: normal, Fraction: lower}, true
	}
	return RayCastOutput{}, false
}

func (s *PolygonShape) Proxy(childIndex int) DistanceProxy {

	return DistanceProxy{Vertices: s.Vertices, Radius: s.radius}
}
