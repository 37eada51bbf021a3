// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package narrowphase dispatches a pair of fixtures' shapes to the correct
// pairwise manifold routine in package shapes, by shape Kind. It is the
// "given two fixtures, produce a contact manifold" collaborator the core
// consumes at an interface, isolated so ContactManager never needs a
// switch over shape kinds itself.
package narrowphase

import (
	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physics/shapes"
)

// Collide produces the manifold for one fixture pair's given child shapes.
// Shape kinds are canonicalized internally (Circle is always treated as
// shape B against a Polygon/Edge reference face) regardless of which side
// of the call the caller passed it on.
func Collide(shapeA shapes.Shape, xfA math32.Transform2, childA int, shapeB shapes.Shape, xfB math32.Transform2, childB int) shapes.Manifold {

	a := reduceToPolyOrCircle(shapeA, childA)
	b := reduceToPolyOrCircle(shapeB, childB)

	switch av := a.(type) {
	case *shapes.CircleShape:
		switch bv := b.(type) {
		case *shapes.CircleShape:
			return shapes.CollideCircles(av, xfA, bv, xfB)
		case *shapes.PolygonShape:
			// CollidePolygonAndCircle always treats its first argument as
			// the reference ("A") shape; here that's our B, so relabel the
			// manifold type without touching the already-correctly-framed
			// local geometry.
			m := shapes.CollidePolygonAndCircle(bv, xfB, av, xfA)
			m.Type = shapes.ManifoldFaceB
			return m
		}
	case *shapes.PolygonShape:
		switch bv := b.(type) {
		case *shapes.CircleShape:
			return shapes.CollidePolygonAndCircle(av, xfA, bv, xfB)
		case *shapes.PolygonShape:
			return shapes.CollidePolygons(av, xfA, bv, xfB)
		}
	}
	return shapes.Manifold{}
}

// reduceToPolyOrCircle turns any Shape's given child into either a
// *CircleShape or a *PolygonShape, the only two kinds the manifold routines
// in package shapes natively understand; Edge and Chain children degenerate
// to a thin two-sided polygon.
func reduceToPolyOrCircle(s shapes.Shape, child int) interface{} {

	switch v := s.(type) {
	case *shapes.CircleShape:
		return v
	case *shapes.PolygonShape:
		return v
	case *shapes.EdgeShape:
		return v.AsPolygon()
	case *shapes.ChainShape:
		edge := v.GetChildEdge(child)
		return edge.AsPolygon()
	default:
		return nil
	}
}
