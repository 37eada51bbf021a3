// Package shapes implements the geometric collaborator the simulation core
// consumes only at an interface: shape primitives, their pairwise
// narrow-phase manifold routines, and the shape-level time-of-impact
// primitive. None of this package knows about bodies, joints, or islands;
// everything here is a pure function of shapes and transforms.
package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// Kind tags the concrete variant of a Shape for the narrow-phase dispatch
// table, playing the role of a per-kind vtable selector.
type Kind int

const (
	Circle Kind = iota
	Polygon
	Edge
	Chain
)

func (k Kind) String() string {

	switch k {
	case Circle:
		return "Circle"
	case Polygon:
		return "Polygon"
	case Edge:
		return "Edge"
	case Chain:
		return "Chain"
	default:
		return "Unknown"
	}
}

// MassData describes the mass distribution of a shape at a given density,
// in the shape's own local frame.
type MassData struct {
	Mass   float32
	Center math32.Vector2
	I      float32 // rotational inertia about the local origin
}

// Shape is the interface the core consumes for every geometric primitive
// attached to a fixture. A shape may have more than one "child" (only
// Chain does, one child per edge segment).
type Shape interface {
	Kind() Kind
	ChildCount() int
	Radius() float32
	TestPoint(xf math32.Transform2, p math32.Vector2) bool
	ComputeAABB(xf math32.Transform2, childIndex int) math32.Box2
	ComputeMass(density float32) MassData
	RayCast(input *RayCastInput, xf math32.Transform2, childIndex int) (RayCastOutput, bool)
	// Proxy returns the distance/GJK proxy (vertex set + skin radius) for
	// the given child, used by Distance and TimeOfImpact.
	Proxy(childIndex int) DistanceProxy
}

// RayCastInput is the input to a single-shape ray cast.
type RayCastInput struct {
	P1, P2      math32.Vector2
	MaxFraction float32
}

// RayCastOutput is the result of a successful single-shape ray cast.
type RayCastOutput struct {
	Normal   math32.Vector2
	Fraction float32
}
