// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physics/shapes"
)

// contactPointConstraint is the per-point solver state for one manifold
// point: its anchors relative to each body's center of mass, effective
// normal/tangent mass, velocity bias (restitution) and the running
// separation used for position correction.
type contactPointConstraint struct {
	rA, rB          math32.Vector2
	normalMass      float32
	tangentMass     float32
	velocityBias    float32
	normalImpulse   float32
	tangentImpulse  float32
	separation      float32
	localPoint      math32.Vector2
}

// contactConstraint is one contact's solver state for the current island
// solve: shared normal/tangent directions, combined friction/restitution,
// and up to two point constraints (enabling the 2x2 block solve).
type contactConstraint struct {
	contact *Contact

	indexA, indexB         int
	invMassA, invMassB     float32
	invIA, invIB           float32
	localCenterA, localCenterB math32.Vector2

	radiusA, radiusB float32
	friction         float32
	restitution      float32

	normal math32.Vector2
	points [maxManifoldPoints]contactPointConstraint
	count  int

	worldManifold shapes.WorldManifold
}

// contactSolver resolves the velocity and position constraints for one
// island's contact array via sequential impulses, with an exact 2x2 block
// solve when a manifold carries two points (improves stacked-box
// stability over solving each point independently).
type contactSolver struct {
	step        stepContext
	constraints []contactConstraint
}

func newContactSolver(step stepContext, contacts []*Contact) *contactSolver {

	cs := &contactSolver{step: step, constraints: make([]contactConstraint, len(contacts))}
	for i, c := range contacts {
		cs.initConstraint(&cs.constraints[i], c)
	}
	return cs
}

func (cs *contactSolver) initConstraint(cc *contactConstraint, c *Contact) {

	bodyA, bodyB := c.fixtureA.body, c.fixtureB.body

	cc.contact = c
	cc.indexA = cs.bodyIndex(bodyA)
	cc.indexB = cs.bodyIndex(bodyB)
	cc.invMassA = bodyA.invMass
	cc.invMassB = bodyB.invMass
	cc.invIA = bodyA.invI
	cc.invIB = bodyB.invI
	cc.localCenterA = bodyA.localCenter
	cc.localCenterB = bodyB.localCenter
	cc.radiusA = c.fixtureA.shape.Radius()
	cc.radiusB = c.fixtureB.shape.Radius()
	cc.friction = c.friction
	cc.restitution = c.restitution
	cc.count = len(c.manifold.Points)

	xfA := stateTransform(cs.step.states[cc.indexA], bodyA.localCenter)
	xfB := stateTransform(cs.step.states[cc.indexB], bodyB.localCenter)
	wm := shapes.ComputeWorldManifold(&c.manifold, xfA, cc.radiusA, xfB, cc.radiusB)
	cc.worldManifold = wm
	cc.normal = wm.Normal

	stateA := cs.step.states[cc.indexA]
	stateB := cs.step.states[cc.indexB]

	for i := 0; i < cc.count; i++ {
		mp := &c.manifold.Points[i]
		pc := &cc.points[i]
		pc.localPoint = mp.LocalPoint
		pc.rA.SubVectors(&wm.Points[i], &stateA.c)
		pc.rB.SubVectors(&wm.Points[i], &stateB.c)
		pc.separation = wm.Separations[i]

		rnA := pc.rA.Cross(&cc.normal)
		rnB := pc.rB.Cross(&cc.normal)
		kNormal := cc.invMassA + cc.invMassB + cc.invIA*rnA*rnA + cc.invIB*rnB*rnB
		if kNormal > 0 {
			pc.normalMass = 1 / kNormal
		}

		var tangent math32.Vector2
		tangent.Set(cc.normal.Y, -cc.normal.X)
		rtA := pc.rA.Cross(&tangent)
		rtB := pc.rB.Cross(&tangent)
		kTangent := cc.invMassA + cc.invMassB + cc.invIA*rtA*rtA + cc.invIB*rtB*rtB
		if kTangent > 0 {
			pc.tangentMass = 1 / kTangent
		}

		// Restitution bias, applied only above the jitter-avoiding
		// velocity threshold.
		var relVel math32.Vector2
		var wrA, wrB math32.Vector2
		wrA.Set(-stateA.w*pc.rA.Y, stateA.w*pc.rA.X)
		wrB.Set(-stateB.w*pc.rB.Y, stateB.w*pc.rB.X)
		relVel.Copy(&stateB.v).Add(&wrB)
		var vA math32.Vector2
		vA.Copy(&stateA.v).Add(&wrA)
		relVel.Sub(&vA)
		vn := relVel.Dot(&cc.normal)
		pc.velocityBias = 0
		if vn < -velocityThreshold {
			pc.velocityBias = -cc.restitution * vn
		}

		pc.normalImpulse = mp.NormalImpulse
		pc.tangentImpulse = mp.TangentImpulse
	}
}

func stateTransform(s bodyState, localCenter math32.Vector2) math32.Transform2 {

	var xf math32.Transform2
	xf.Rot.SetAngle(s.a)
	var rotatedCenter math32.Vector2
	xf.Rot.MulVec2(&localCenter, &rotatedCenter)
	xf.Pos.SubVectors(&s.c, &rotatedCenter)
	return xf
}

func (cs *contactSolver) bodyIndex(b *Body) int {

	return cs.step.bodyIndex(b)
}

// warmStart applies the carried-forward impulses from the previous step so
// the velocity solve starts near the converged solution instead of from
// rest.
func (cs *contactSolver) warmStart() {

	for i := range cs.constraints {
		cc := &cs.constraints[i]
		stateA := &cs.step.states[cc.indexA]
		stateB := &cs.step.states[cc.indexB]

		var tangent math32.Vector2
		tangent.Set(cc.normal.Y, -cc.normal.X)

		for j := 0; j < cc.count; j++ {
			pc := &cc.points[j]
			var p math32.Vector2
			var n, t math32.Vector2
			n.Copy(&cc.normal).MultiplyScalar(pc.normalImpulse)
			t.Copy(&tangent).MultiplyScalar(pc.tangentImpulse)
			p.AddVectors(&n, &t)

			applyImpulse(stateA, -cc.invMassA, -cc.invIA, pc.rA, p)
			applyImpulse(stateB, cc.invMassB, cc.invIB, pc.rB, p)
		}
	}
}

func applyImpulse(s *bodyState, invMass, invI float32, r, p math32.Vector2) {

	var scaled math32.Vector2
	scaled.Copy(&p).MultiplyScalar(invMass)
	s.v.Add(&scaled)
	s.w += invI * r.Cross(&p)
}

// solveVelocity runs one sequential-impulse velocity iteration across all
// contact constraints: tangent (friction) impulses first, then normal
// impulses, with a 2x2 block solve when a manifold has two points.
func (cs *contactSolver) solveVelocity() {

	for i := range cs.constraints {
		cc := &cs.constraints[i]
		stateA := &cs.step.states[cc.indexA]
		stateB := &cs.step.states[cc.indexB]

		var tangent math32.Vector2
		tangent.Set(cc.normal.Y, -cc.normal.X)

		// Friction first: clamp to the cone using the *previous*
		// iteration's normal impulse, matching the canonical ordering.
		for j := 0; j < cc.count; j++ {
			pc := &cc.points[j]
			relVel := relativeVelocity(stateA, stateB, pc.rA, pc.rB)
			vt := relVel.Dot(&tangent)
			lambda := -pc.tangentMass * vt

			maxFriction := cc.friction * pc.normalImpulse
			newImpulse := math32.Clamp(pc.tangentImpulse+lambda, -maxFriction, maxFriction)
			lambda = newImpulse - pc.tangentImpulse
			pc.tangentImpulse = newImpulse

			var p math32.Vector2
			p.Copy(&tangent).MultiplyScalar(lambda)
			applyImpulse(stateA, -cc.invMassA, -cc.invIA, pc.rA, p)
			applyImpulse(stateB, cc.invMassB, cc.invIB, pc.rB, p)
		}

		if cc.count == 1 {
			pc := &cc.points[0]
			relVel := relativeVelocity(stateA, stateB, pc.rA, pc.rB)
			vn := relVel.Dot(&cc.normal)
			lambda := -pc.normalMass * (vn - pc.velocityBias)
			newImpulse := math32.Max(pc.normalImpulse+lambda, 0)
			lambda = newImpulse - pc.normalImpulse
			pc.normalImpulse = newImpulse

			var p math32.Vector2
			p.Copy(&cc.normal).MultiplyScalar(lambda)
			applyImpulse(stateA, -cc.invMassA, -cc.invIA, pc.rA, p)
			applyImpulse(stateB, cc.invMassB, cc.invIB, pc.rB, p)
			continue
		}

		if cc.count == 2 {
			cs.solveBlock(cc, stateA, stateB)
		}
	}
}

func relativeVelocity(stateA, stateB *bodyState, rA, rB math32.Vector2) math32.Vector2 {

	var wrA, wrB math32.Vector2
	wrA.Set(-stateA.w*rA.Y, stateA.w*rA.X)
	wrB.Set(-stateB.w*rB.Y, stateB.w*rB.X)
	var vA, vB math32.Vector2
	vA.Copy(&stateA.v).Add(&wrA)
	vB.Copy(&stateB.v).Add(&wrB)
	var rel math32.Vector2
	rel.SubVectors(&vB, &vA)
	return rel
}

// solveBlock solves the 2x2 normal-impulse LCP exactly, trying all four
// sign combinations (both active, point1 only, point2 only, neither) in
// turn and accepting the first that yields a non-negative, separating
// solution - the canonical block-solver fallback cascade.
func (cs *contactSolver) solveBlock(cc *contactConstraint, stateA, stateB *bodyState) {

	p1, p2 := &cc.points[0], &cc.points[1]

	rn1A := p1.rA.Cross(&cc.normal)
	rn1B := p1.rB.Cross(&cc.normal)
	rn2A := p2.rA.Cross(&cc.normal)
	rn2B := p2.rB.Cross(&cc.normal)

	k11 := cc.invMassA + cc.invMassB + cc.invIA*rn1A*rn1A + cc.invIB*rn1B*rn1B
	k22 := cc.invMassA + cc.invMassB + cc.invIA*rn2A*rn2A + cc.invIB*rn2B*rn2B
	k12 := cc.invMassA + cc.invMassB + cc.invIA*rn1A*rn2A + cc.invIB*rn1B*rn2B

	const maxConditionNumber = 1000.0
	if k11*k11 < maxConditionNumber*(k11*k22-k12*k12) {
		cs.solveBlockStable(cc, stateA, stateB, k11, k12, k22)
		return
	}

	// Ill-conditioned (near-parallel) block: fall back to sequential
	// single-point solves for both points rather than inverting a
	// degenerate matrix.
	cs.solveSinglePoint(cc, p1, stateA, stateB)
	cs.solveSinglePoint(cc, p2, stateA, stateB)
}

func (cs *contactSolver) solveSinglePoint(cc *contactConstraint, pc *contactPointConstraint, stateA, stateB *bodyState) {

	relVel := relativeVelocity(stateA, stateB, pc.rA, pc.rB)
	vn := relVel.Dot(&cc.normal)
	lambda := -pc.normalMass * (vn - pc.velocityBias)
	newImpulse := math32.Max(pc.normalImpulse+lambda, 0)
	lambda = newImpulse - pc.normalImpulse
	pc.normalImpulse = newImpulse

	var p math32.Vector2
	p.Copy(&cc.normal).MultiplyScalar(lambda)
	applyImpulse(stateA, -cc.invMassA, -cc.invIA, pc.rA, p)
	applyImpulse(stateB, cc.invMassB, cc.invIB, pc.rB, p)
}

// solveBlockStable tries, in turn: both points active (exact 2x2 solve),
// point 1 only, point 2 only, neither - accepting the first candidate
// whose resulting impulses and post-impulse velocities are all
// non-negative, the standard block-solver cascade.
func (cs *contactSolver) solveBlockStable(cc *contactConstraint, stateA, stateB *bodyState, k11, k12, k22 float32) {

	p1, p2 := &cc.points[0], &cc.points[1]
	a := math32.Vector2{X: p1.normalImpulse, Y: p2.normalImpulse}

	relVel1 := relativeVelocity(stateA, stateB, p1.rA, p1.rB)
	relVel2 := relativeVelocity(stateA, stateB, p2.rA, p2.rB)
	vn1 := relVel1.Dot(&cc.normal)
	vn2 := relVel2.Dot(&cc.normal)

	var b math32.Vector2
	b.Set(vn1-p1.velocityBias, vn2-p2.velocityBias)

	var k math32.Mat22
	k.Col1.Set(k11, k12)
	k.Col2.Set(k12, k22)

	kA := k.MulVec2(&a, nil)
	var negB math32.Vector2
	negB.SubVectors(&b, kA)
	negB.Negate()

	x := k.Solve(&negB, nil)
	if x.X >= 0 && x.Y >= 0 {
		cs.applyBlockDelta(cc, stateA, stateB, x.X-a.X, x.Y-a.Y)
		p1.normalImpulse = x.X
		p2.normalImpulse = x.Y
		return
	}

	// The remaining cases work from negB = -(b - K*a): the relative normal
	// velocities (minus bias) with the accumulated impulses removed.

	// Point 1 alone; point 2 implicitly zeroed.
	x1 := p1.normalMass * negB.X
	if x1 >= 0 && k12*x1-negB.Y >= 0 {
		cs.applyBlockDelta(cc, stateA, stateB, x1-a.X, -a.Y)
		p1.normalImpulse = x1
		p2.normalImpulse = 0
		return
	}

	// Point 2 alone; point 1 implicitly zeroed.
	x2 := p2.normalMass * negB.Y
	if x2 >= 0 && k12*x2-negB.X >= 0 {
		cs.applyBlockDelta(cc, stateA, stateB, -a.X, x2-a.Y)
		p1.normalImpulse = 0
		p2.normalImpulse = x2
		return
	}

	// Neither point active.
	if negB.X <= 0 && negB.Y <= 0 {
		cs.applyBlockDelta(cc, stateA, stateB, -a.X, -a.Y)
		p1.normalImpulse = 0
		p2.normalImpulse = 0
	}
}

func (cs *contactSolver) applyBlockDelta(cc *contactConstraint, stateA, stateB *bodyState, d1, d2 float32) {

	p1, p2 := &cc.points[0], &cc.points[1]
	var imp1, imp2 math32.Vector2
	imp1.Copy(&cc.normal).MultiplyScalar(d1)
	imp2.Copy(&cc.normal).MultiplyScalar(d2)

	applyImpulse(stateA, -cc.invMassA, -cc.invIA, p1.rA, imp1)
	applyImpulse(stateB, cc.invMassB, cc.invIB, p1.rB, imp1)
	applyImpulse(stateA, -cc.invMassA, -cc.invIA, p2.rA, imp2)
	applyImpulse(stateB, cc.invMassB, cc.invIB, p2.rB, imp2)
}

// storeImpulses writes the solved impulses back into the contact's
// manifold points, so the next step's update() can warm-start from them,
// and fills a ContactImpulse for PostSolve.
func (cs *contactSolver) storeImpulses() []ContactImpulse {

	out := make([]ContactImpulse, len(cs.constraints))
	for i := range cs.constraints {
		cc := &cs.constraints[i]
		var imp ContactImpulse
		imp.Count = cc.count
		for j := 0; j < cc.count; j++ {
			cc.contact.manifold.Points[j].NormalImpulse = cc.points[j].normalImpulse
			cc.contact.manifold.Points[j].TangentImpulse = cc.points[j].tangentImpulse
			imp.NormalImpulses[j] = cc.points[j].normalImpulse
			imp.TangentImpulses[j] = cc.points[j].tangentImpulse
		}
		out[i] = imp
	}
	return out
}

// solvePosition runs one Baumgarte-style position-correction iteration,
// using non-linear projection directly on the position/angle state
// (rather than another velocity solve), and returns the largest remaining
// penetration across all constraints so the caller can stop early once it
// is within linearSlop.
func (cs *contactSolver) solvePosition() float32 {

	maxError := float32(0)

	for i := range cs.constraints {
		cc := &cs.constraints[i]
		stateA := &cs.step.states[cc.indexA]
		stateB := &cs.step.states[cc.indexB]

		xfA := stateTransform(*stateA, cc.localCenterA)
		xfB := stateTransform(*stateB, cc.localCenterB)

		wm := shapes.ComputeWorldManifold(&cc.contact.manifold, xfA, cc.radiusA, xfB, cc.radiusB)

		for j := 0; j < cc.count && j < len(wm.Points); j++ {

			var rA, rB math32.Vector2
			rA.SubVectors(&wm.Points[j], &stateA.c)
			rB.SubVectors(&wm.Points[j], &stateB.c)

			separation := wm.Separations[j]
			C := math32.Clamp(baumgarte*(separation+linearSlop), -maxLinearCorrection, 0)
			if separation < maxError {
				maxError = separation
			}

			rnA := rA.Cross(&cc.normal)
			rnB := rB.Cross(&cc.normal)
			k := cc.invMassA + cc.invMassB + cc.invIA*rnA*rnA + cc.invIB*rnB*rnB
			var impulse float32
			if k > 0 {
				impulse = -C / k
			}

			var p math32.Vector2
			p.Copy(&cc.normal).MultiplyScalar(impulse)

			var corrA, corrB math32.Vector2
			corrA.Copy(&p).MultiplyScalar(-cc.invMassA)
			stateA.c.Add(&corrA)
			stateA.a -= cc.invIA * rA.Cross(&p)

			corrB.Copy(&p).MultiplyScalar(cc.invMassB)
			stateB.c.Add(&corrB)
			stateB.a += cc.invIB * rB.Cross(&p)
		}
	}

	return maxError
}
