// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// ChainShape is an open polyline of connected edges. Each edge is a
// separate narrow-phase/broad-phase child, matching spec's "chain shapes
// have many children" note: a fixture built on a Chain gets one proxy per
// segment.
type ChainShape struct {
	Vertices []math32.Vector2
}

// NewChain creates and returns a pointer to a new ChainShape through the
// given vertices, in order.
func NewChain(vertices []math32.Vector2) *ChainShape {

	return &ChainShape{Vertices: vertices}
}

func (s *ChainShape) Kind() Kind { return Chain }

func (s *ChainShape) ChildCount() int {

	if len(s.Vertices) < 2 {
		return 0
	}
	return len(s.Vertices) - 1
}

func (s *ChainShape) Radius() float32 { return PolygonRadius }

// GetChildEdge returns the EdgeShape for the given child index, the form
// ComputeAABB, RayCast and Proxy on Chain delegate to.
func (s *ChainShape) GetChildEdge(childIndex int) *EdgeShape {

	e := NewEdge(s.Vertices[childIndex], s.Vertices[childIndex+1])
	if childIndex > 0 {
		e.HasV0 = true
		e.V0 = s.Vertices[childIndex-1]
	}
	if childIndex+2 < len(s.Vertices) {
		e.HasV3 = true
		e.V3 = s.Vertices[childIndex+2]
	}
	return e
}

func (s *ChainShape) TestPoint(xf math32.Transform2, p math32.Vector2) bool {

	return false
}

func (s *ChainShape) ComputeAABB(xf math32.Transform2, childIndex int) math32.Box2 {

	return s.GetChildEdge(childIndex).ComputeAABB(xf, 0)
}

func (s *ChainShape) ComputeMass(density float32) MassData {

	return MassData{}
}

func (s *ChainShape) RayCast(input *RayCastInput, xf math32.Transform2, childIndex int) (RayCastOutput, bool) {

	return s.GetChildEdge(childIndex).RayCast(input, xf, 0)
}

func (s *ChainShape) Proxy(childIndex int) DistanceProxy {

	return s.GetChildEdge(childIndex).Proxy(0)
}
