// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physics/narrowphase"
	"github.com/g3n/rb2d/physics/shapes"
)

// Manifold is the narrow-phase result a ContactListener is handed; an
// alias so callers never need to import physics/shapes themselves just to
// read contact.Manifold().
type Manifold = shapes.Manifold

type contactFlags uint8

const (
	contactFlagTouching contactFlags = 1 << iota
	contactFlagEnabled
	contactFlagToi
	contactFlagFilter // cached ShouldCollide result is stale, re-evaluate
)

// ContactEdge links a Body to one Contact it participates in, as one node
// of the body's intrusive contact-edge list (one edge per endpoint).
type ContactEdge struct {
	Other   *Body
	Contact *Contact
	prev, next *ContactEdge
}

// Contact is created when two fixtures' (child) AABBs begin overlapping in
// the broad-phase, and destroyed when they stop. It owns the manifold, the
// touching/enabled flags, override friction/restitution, and the TOI
// bookkeeping used by the continuous-collision sub-stepper.
type Contact struct {
	id entityID

	fixtureA, fixtureB       *Fixture
	childIndexA, childIndexB int

	flags contactFlags

	manifold    shapes.Manifold
	oldManifold shapes.Manifold

	friction    float32
	restitution float32
	tangentSpeed float32

	toi      float32
	toiCount int

	nodeA, nodeB ContactEdge

	prev, next *Contact
}

// ID returns this contact's debug correlation identifier.
func (c *Contact) ID() string { return c.id.String() }

// FixtureA returns the first fixture of the pair.
func (c *Contact) FixtureA() *Fixture { return c.fixtureA }

// FixtureB returns the second fixture of the pair.
func (c *Contact) FixtureB() *Fixture { return c.fixtureB }

// ChildIndexA returns which child of FixtureA's shape this contact covers.
func (c *Contact) ChildIndexA() int { return c.childIndexA }

// ChildIndexB returns which child of FixtureB's shape this contact covers.
func (c *Contact) ChildIndexB() int { return c.childIndexB }

// Manifold returns the current contact manifold. The listener must not
// retain the returned pointer past the callback.
func (c *Contact) Manifold() *Manifold { return &c.manifold }

// IsTouching reports whether the manifold currently has contact points.
func (c *Contact) IsTouching() bool { return c.flags&contactFlagTouching != 0 }

// IsEnabled reports whether this contact will be solved this sub-step. A
// PreSolve listener can call SetEnabled(false) to veto it for the current
// sub-step only; narrow-phase re-enables by default on its next update.
func (c *Contact) IsEnabled() bool { return c.flags&contactFlagEnabled != 0 }

// SetEnabled vetoes or restores this sub-step's solve. The effect does not
// persist past the current narrow-phase pass.
func (c *Contact) SetEnabled(flag bool) {

	if flag {
		c.flags |= contactFlagEnabled
	} else {
		c.flags &^= contactFlagEnabled
	}
}

// Friction returns the combined friction coefficient (geometric mean of
// the two fixtures', unless overridden).
func (c *Contact) Friction() float32 { return c.friction }

// SetFriction overrides the friction used by this contact's solver.
func (c *Contact) SetFriction(f float32) { c.friction = f }

// ResetFriction restores the combined-default friction.
func (c *Contact) ResetFriction() {

	c.friction = math32.Sqrt(c.fixtureA.friction * c.fixtureB.friction)
}

// Restitution returns the combined restitution coefficient (max of the
// two fixtures', unless overridden).
func (c *Contact) Restitution() float32 { return c.restitution }

// SetRestitution overrides the restitution used by this contact's solver.
func (c *Contact) SetRestitution(r float32) { c.restitution = r }

// ResetRestitution restores the combined-default restitution.
func (c *Contact) ResetRestitution() {

	c.restitution = math32.Max(c.fixtureA.restitution, c.fixtureB.restitution)
}

// TangentSpeed returns the target surface velocity along the tangent
// direction (e.g. for a conveyor-belt fixture).
func (c *Contact) TangentSpeed() float32 { return c.tangentSpeed }

// SetTangentSpeed sets the target tangential surface speed.
func (c *Contact) SetTangentSpeed(v float32) { c.tangentSpeed = v }

// IsSensorContact reports whether either fixture is a sensor; sensor
// contacts compute a touching flag but never enter the solver.
func (c *Contact) IsSensorContact() bool {

	return c.fixtureA.isSensor || c.fixtureB.isSensor
}

func newContact(fixtureA *Fixture, childA int, fixtureB *Fixture, childB int) *Contact {

	c := &Contact{
		id:          newEntityID(),
		fixtureA:    fixtureA,
		childIndexA: childA,
		fixtureB:    fixtureB,
		childIndexB: childB,
		flags:       contactFlagEnabled,
	}
	c.friction = math32.Sqrt(fixtureA.friction * fixtureB.friction)
	c.restitution = math32.Max(fixtureA.restitution, fixtureB.restitution)
	return c
}

// update runs the narrow-phase for this contact, refreshing the manifold
// and warm-starting its impulses from the previous manifold's matching
// contact-feature ids. It returns the previous touching state so the
// caller (ContactManager) can detect the transition and fire Begin/End.
func (c *Contact) update() (wasTouching bool) {

	wasTouching = c.IsTouching()
	c.oldManifold = c.manifold

	// A PreSolve veto (SetEnabled(false)) lasts only until this next pass.
	c.flags |= contactFlagEnabled

	bodyA, bodyB := c.fixtureA.body, c.fixtureB.body

	if c.IsSensorContact() {
		shapeA, shapeB := c.fixtureA.shape, c.fixtureB.shape
		touching := testShapeOverlap(shapeA, bodyA.xf, c.childIndexA, shapeB, bodyB.xf, c.childIndexB)
		c.manifold = shapes.Manifold{}
		if touching {
			c.flags |= contactFlagTouching
		} else {
			c.flags &^= contactFlagTouching
		}
		return wasTouching
	}

	c.manifold = narrowphase.Collide(c.fixtureA.shape, bodyA.xf, c.childIndexA, c.fixtureB.shape, bodyB.xf, c.childIndexB)
	touching := len(c.manifold.Points) > 0
	if touching {
		c.flags |= contactFlagTouching
	} else {
		c.flags &^= contactFlagTouching
	}

	// Warm start: carry forward impulses from points whose contact-feature
	// id persisted between the old and new manifold.
	for i := range c.manifold.Points {
		np := &c.manifold.Points[i]
		for _, op := range c.oldManifold.Points {
			if op.ID == np.ID {
				np.NormalImpulse = op.NormalImpulse
				np.TangentImpulse = op.TangentImpulse
				break
			}
		}
	}
	return wasTouching
}

// testShapeOverlap determines touching for a sensor pair using the
// distance query rather than a full manifold, since sensors never need
// contact points - only the boolean.
func testShapeOverlap(shapeA shapes.Shape, xfA math32.Transform2, childA int, shapeB shapes.Shape, xfB math32.Transform2, childB int) bool {

	proxyA := shapeA.Proxy(childA)
	proxyB := shapeB.Proxy(childB)
	out := shapes.Distance(proxyA, xfA, proxyB, xfB)
	return out.Distance < proxyA.Radius+proxyB.Radius+linearSlop
}
