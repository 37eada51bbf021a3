// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// MouseJoint pulls BodyB's LocalAnchorB toward a world-space Target through
// a soft (FrequencyHz/DampingRatio) spring, clamped to MaxForce. BodyA is
// conventionally a static anchor and never enters the Jacobian - only
// BodyB's velocity is driven.

func (j *Joint) initMouse(step stepContext) {

	j.indexB = step.bodyIndex(j.bodyB)
	j.localCenterB = j.bodyB.localCenter
	j.invMassB = j.bodyB.invMass
	j.invIB = j.bodyB.invI

	stateB := &step.states[j.indexB]

	var qB math32.Rot
	qB.SetAngle(stateB.a)
	j.rB = rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	mass := j.bodyB.mass
	omega := 2 * math32.Pi * j.frequencyHz
	d := 2 * mass * j.dampingRatio * omega
	k := mass * omega * omega
	h := step.dt
	j.gamma = h * (d + h*k)
	if j.gamma != 0 {
		j.gamma = 1 / j.gamma
	}
	beta := h * k * j.gamma

	var K math32.Mat22
	K.Col1.X = j.invMassB + j.invIB*j.rB.Y*j.rB.Y + j.gamma
	K.Col1.Y = -j.invIB * j.rB.X * j.rB.Y
	K.Col2.X = K.Col1.Y
	K.Col2.Y = j.invMassB + j.invIB*j.rB.X*j.rB.X + j.gamma
	j.k3 = K

	var c math32.Vector2
	c.Copy(&stateB.c).Add(&j.rB)
	c.Sub(&j.target)
	c.MultiplyScalar(beta)
	j.bias = 0
	j.axis = c // store the position-bias term in axis (unused otherwise here)

	stateB.w *= 0.98

	applyImpulse(stateB, j.invMassB, j.invIB, j.rB, j.impulse)
}

func (j *Joint) solveVelocityMouse(step stepContext) {

	stateB := &step.states[j.indexB]

	vpB := crossWR(stateB.w, j.rB)
	vpB.Add(&stateB.v)

	var rhs math32.Vector2
	rhs.Copy(&vpB).Add(&j.axis)
	var gammaImp math32.Vector2
	gammaImp.Copy(&j.impulse).MultiplyScalar(j.gamma)
	rhs.Add(&gammaImp)
	rhs.Negate()

	impulse := j.k3.Solve(&rhs, nil)

	oldImpulse := j.impulse
	j.impulse.Copy(impulse).Add(&oldImpulse)

	maxImpulse := step.dt * j.maxForce
	if j.impulse.Length() > maxImpulse {
		j.impulse.SetLength(maxImpulse)
	}

	var delta math32.Vector2
	delta.SubVectors(&j.impulse, &oldImpulse)
	applyImpulse(stateB, j.invMassB, j.invIB, j.rB, delta)
}
