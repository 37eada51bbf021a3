// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// FrictionJoint applies up to MaxForce of linear drag and MaxTorque of
// angular drag between the two bodies with no positional target at all -
// a brake, not a constraint, typically layered under another joint to
// damp out residual relative motion.

func (j *Joint) initFriction(step stepContext) {

	qA, qB := j.prepare(step)
	stateA := step.states[j.indexA]
	stateB := step.states[j.indexB]

	j.rA = rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	j.rB = rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	rawMass := iA + iB
	if rawMass > 0 {
		j.axialMass = 1 / rawMass
	} else {
		j.axialMass = 0
	}

	j.k3.Col1.X = mA + mB + iA*j.rA.Y*j.rA.Y + iB*j.rB.Y*j.rB.Y
	j.k3.Col1.Y = -iA*j.rA.X*j.rA.Y - iB*j.rB.X*j.rB.Y
	j.k3.Col2.X = j.k3.Col1.Y
	j.k3.Col2.Y = mA + mB + iA*j.rA.X*j.rA.X + iB*j.rB.X*j.rB.X

	applyImpulse(&step.states[j.indexA], -mA, -iA, j.rA, j.impulse)
	step.states[j.indexA].w -= iA * j.angularImpulse
	applyImpulse(&step.states[j.indexB], mB, iB, j.rB, j.impulse)
	step.states[j.indexB].w += iB * j.angularImpulse
}

func (j *Joint) solveVelocityFriction(step stepContext) {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	{
		Cdot := stateB.w - stateA.w
		impulse := -j.axialMass * Cdot
		oldImpulse := j.angularImpulse
		maxImpulse := step.dt * j.maxTorque
		j.angularImpulse = math32.Clamp(oldImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = j.angularImpulse - oldImpulse
		stateA.w -= iA * impulse
		stateB.w += iB * impulse
	}

	vpB := crossWR(stateB.w, j.rB)
	vpB.Add(&stateB.v)
	vpA := crossWR(stateA.w, j.rA)
	vpA.Add(&stateA.v)
	var Cdot math32.Vector2
	Cdot.SubVectors(&vpB, &vpA)

	var negCdot math32.Vector2
	negCdot.Copy(&Cdot).Negate()
	delta := j.k3.Solve(&negCdot, nil)

	oldImpulse := j.impulse
	j.impulse.Copy(delta).Add(&oldImpulse)

	maxImpulse := step.dt * j.maxForce
	if j.impulse.Length() > maxImpulse {
		j.impulse.SetLength(maxImpulse)
	}

	var appliedDelta math32.Vector2
	appliedDelta.SubVectors(&j.impulse, &oldImpulse)
	applyImpulse(stateA, -mA, -iA, j.rA, appliedDelta)
	applyImpulse(stateB, mB, iB, j.rB, appliedDelta)
}
