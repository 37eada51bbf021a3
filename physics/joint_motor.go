// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// MotorJoint drives BodyB toward LinearOffset/AngularOffset relative to
// BodyA's frame, velocity-only (no position correction pass - the position
// error is fed back into the velocity solve scaled by CorrectionFactor
// instead), clamped to MaxForce/MaxTorque. Used to script one body's motion
// relative to another (e.g. a conveyor following a belt body) rather than
// to pin them together rigidly.

func (j *Joint) initMotor(step stepContext) {

	qA, qB := j.prepare(step)
	stateA := step.states[j.indexA]
	stateB := step.states[j.indexB]

	var negCenterA, negCenterB math32.Vector2
	negCenterA.Copy(&j.localCenterA).Negate()
	negCenterB.Copy(&j.localCenterB).Negate()
	j.rA = rotVec(qA, negCenterA)
	j.rB = rotVec(qB, negCenterB)

	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	j.k3.Col1.X = mA + mB + iA*j.rA.Y*j.rA.Y + iB*j.rB.Y*j.rB.Y
	j.k3.Col1.Y = -iA*j.rA.X*j.rA.Y - iB*j.rB.X*j.rB.Y
	j.k3.Col2.X = j.k3.Col1.Y
	j.k3.Col2.Y = mA + mB + iA*j.rA.X*j.rA.X + iB*j.rB.X*j.rB.X

	rawMass := iA + iB
	if rawMass > 0 {
		j.axialMass = 1 / rawMass
	} else {
		j.axialMass = 0
	}

	offsetWorld := rotVec(qA, j.linearOffset)
	var C math32.Vector2
	C.Copy(&stateB.c).Add(&j.rB)
	var originA math32.Vector2
	originA.Copy(&stateA.c).Add(&j.rA)
	C.Sub(&originA)
	C.Sub(&offsetWorld)
	j.axis = C // linear error, reused field

	j.bias = stateB.a - stateA.a - j.angularOffset // angular error

	applyImpulse(&step.states[j.indexA], -mA, -iA, j.rA, j.impulse)
	step.states[j.indexA].w -= iA * j.angularImpulse
	applyImpulse(&step.states[j.indexB], mB, iB, j.rB, j.impulse)
	step.states[j.indexB].w += iB * j.angularImpulse
}

func (j *Joint) solveVelocityMotor(step stepContext) {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB
	invH := float32(0)
	if step.dt > 0 {
		invH = 1 / step.dt
	}

	{
		Cdot := stateB.w - stateA.w + invH*j.correctionFactor*j.bias
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
	var bias math32.Vector2
	bias.Copy(&j.axis).MultiplyScalar(invH * j.correctionFactor)
	Cdot.Add(&bias)

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
