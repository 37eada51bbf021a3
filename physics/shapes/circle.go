// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// CircleShape is a solid circle of a given radius, offset from the
// fixture's body-local origin by Center.
type CircleShape struct {
	Center math32.Vector2
	radius float32
}

// NewCircle creates and returns a pointer to a new CircleShape centered at
// the local origin with the given radius.
func NewCircle(radius float32) *CircleShape {

	return &CircleShape{radius: radius}
}

func (s *CircleShape) Kind() Kind { return Circle }

func (s *CircleShape) ChildCount() int { return 1 }

func (s *CircleShape) Radius() float32 { return s.radius }

func (s *CircleShape) TestPoint(xf math32.Transform2, p math32.Vector2) bool {

	var center math32.Vector2
	xf.TransformPoint(&s.Center, &center)
	d := p
	d.Sub(&center)
	return d.LengthSq() <= s.radius*s.radius
}

func (s *CircleShape) ComputeAABB(xf math32.Transform2, childIndex int) math32.Box2 {

	var center math32.Vector2
	xf.TransformPoint(&s.Center, &center)
	var min, max math32.Vector2
	min.Set(center.X-s.radius, center.Y-s.radius)
	max.Set(center.X+s.radius, center.Y+s.radius)
	return *math32.NewBox2(&min, &max)
}

func (s *CircleShape) ComputeMass(density float32) MassData {

	mass := density * math32.Pi * s.radius * s.radius
	// I about local origin = I about center + mass * d^2 (parallel axis)
	I := mass * (0.5*s.radius*s.radius + s.Center.Dot(&s.Center))
	return MassData{Mass: mass, Center: s.Center, I: I}
}

func (s *CircleShape) RayCast(input *RayCastInput, xf math32.Transform2, childIndex int) (RayCastOutput, bool) {

	var position math32.Vector2
	xf.TransformPoint(&s.Center, &position)
	var s2p math32.Vector2
	s2p.SubVectors(&input.P1, &position)
	b := s2p.LengthSq() - s.radius*s.radius

	var d math32.Vector2
	d.SubVectors(&input.P2, &input.P1)
	c := s2p.Dot(&d)
	rr := d.LengthSq()
	sigma := c*c - rr*b
	if sigma < 0 || rr < 1e-12 {
		return RayCastOutput{}, false
	}

	t := -(c + math32.Sqrt(sigma))
	if t >= 0 && t <= input.MaxFraction*rr {
		t /= rr
		var normal math32.Vector2
		normal.AddVectors(&s2p, normal.Copy(&d).MultiplyScalar(t))
		normal.Normalize()
		return RayCastOutput{Normal: normal, Fraction: t}, true
	}
	return RayCastOutput{}, false
}

func (s *CircleShape) Proxy(childIndex int) DistanceProxy {

	return DistanceProxy{Vertices: []math32.Vector2{s.Center}, Radius: s.radius}
}
