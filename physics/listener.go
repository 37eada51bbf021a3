// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

// ContactImpulse carries the final per-point accumulated impulses from one
// velocity solve, handed to PostSolve. The listener must not retain it.
type ContactImpulse struct {
	NormalImpulses  [maxManifoldPoints]float32
	TangentImpulses [maxManifoldPoints]float32
	Count           int
}

// ContactListener receives the contact lifecycle events fired during
// World.Step. Implementations must not mutate the world from within any
// callback and must not retain the Contact or its manifold past the call.
type ContactListener interface {
	// BeginContact fires once when a contact's touching flag flips false
	// to true.
	BeginContact(c *Contact)
	// EndContact fires once when touching flips true to false, or when a
	// touching contact is destroyed (possibly outside of a Step call).
	EndContact(c *Contact)
	// PreSolve fires after narrow-phase updates a contact's manifold,
	// possibly more than once per step under TOI sub-stepping. The old
	// manifold (pre-update) is supplied for comparison.
	PreSolve(c *Contact, oldManifold *Manifold)
	// PostSolve fires once per contact per island after the velocity
	// solver has computed final impulses.
	PostSolve(c *Contact, impulse *ContactImpulse)
}

// ContactFilter decides whether two fixtures should generate a contact at
// all, overriding the default group/category/mask precedence rules.
type ContactFilter interface {
	ShouldCollide(fixtureA, fixtureB *Fixture) bool
}

// NullContactListener is a ContactListener that does nothing; World uses it
// until SetContactListener is called.
type NullContactListener struct{}

func (NullContactListener) BeginContact(c *Contact)                    {}
func (NullContactListener) EndContact(c *Contact)                      {}
func (NullContactListener) PreSolve(c *Contact, oldManifold *Manifold) {}
func (NullContactListener) PostSolve(c *Contact, impulse *ContactImpulse) {}

// defaultContactFilter implements the spec's precedence rules: groupIndex
// first (when both non-zero and equal), else category/mask bits, plus the
// hard same-body / static-pair / collideConnected=false exclusions applied
// upstream by ContactManager before ShouldCollide is ever consulted.
type defaultContactFilter struct{}

func (defaultContactFilter) ShouldCollide(fixtureA, fixtureB *Fixture) bool {

	return shouldCollideFilters(fixtureA.filter, fixtureB.filter)
}
