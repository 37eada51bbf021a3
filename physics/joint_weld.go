// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// WeldJoint rigidly fixes both the relative position and the relative
// angle between the two bodies, making FrequencyHz > 0 soften only the
// angular part (a rigid weld with a compliant hinge, useful for absorbing
// shock without the joint itself fracturing).

func (j *Joint) initWeld(step stepContext) {

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

	if j.frequencyHz > 0 {
		C := stateB.a - stateA.a - j.referenceAngle
		omega := 2 * math32.Pi * j.frequencyHz
		d := 2 * j.axialMass * j.dampingRatio * omega
		k := j.axialMass * omega * omega
		h := step.dt
		j.gamma = h * (d + h*k)
		if j.gamma != 0 {
			j.gamma = 1 / j.gamma
		}
		j.bias = C * h * k * j.gamma
		invM := rawMass + j.gamma
		if invM > 0 {
			j.axialMass = 1 / invM
		} else {
			j.axialMass = 0
		}
	} else {
		j.gamma = 0
		j.bias = 0
	}

	j.k3.Col1.X = mA + mB + j.rA.Y*j.rA.Y*iA + j.rB.Y*j.rB.Y*iB
	j.k3.Col1.Y = -j.rA.Y*j.rA.X*iA - j.rB.Y*j.rB.X*iB
	j.k3.Col2.X = j.k3.Col1.Y
	j.k3.Col2.Y = mA + mB + j.rA.X*j.rA.X*iA + j.rB.X*j.rB.X*iB

	var p math32.Vector2
	p.Set(j.impulse.X, j.impulse.Y)
	applyImpulse(&step.states[j.indexA], -mA, -iA, j.rA, p)
	step.states[j.indexA].w -= iA * j.angularImpulse
	applyImpulse(&step.states[j.indexB], mB, iB, j.rB, p)
	step.states[j.indexB].w += iB * j.angularImpulse
}

func (j *Joint) solveVelocityWeld(step stepContext) {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	{
		Cdot := stateB.w - stateA.w
		impulse := -j.axialMass * (Cdot + j.bias + j.gamma*j.angularImpulse)
		j.angularImpulse += impulse
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
	impulse := j.k3.Solve(&negCdot, nil)
	j.impulse.X += impulse.X
	j.impulse.Y += impulse.Y

	applyImpulse(stateA, -mA, -iA, j.rA, *impulse)
	applyImpulse(stateB, mB, iB, j.rB, *impulse)
}

func (j *Joint) solvePositionWeld(step stepContext) bool {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	angularError := float32(0)
	if j.frequencyHz == 0 {
		C := stateB.a - stateA.a - j.referenceAngle
		rawMass := iA + iB
		var impulse float32
		if rawMass > 0 {
			impulse = -C / rawMass
		}
		stateA.a -= iA * impulse
		stateB.a += iB * impulse
		angularError = math32.Abs(C)
	}

	var qA, qB math32.Rot
	qA.SetAngle(stateA.a)
	qB.SetAngle(stateB.a)
	rA := rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	rB := rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	var C math32.Vector2
	C.Copy(&stateB.c).Add(&rB)
	var cA math32.Vector2
	cA.Copy(&stateA.c).Add(&rA)
	C.Sub(&cA)
	positionError := C.Length()

	var K math32.Mat22
	K.Col1.X = mA + mB + iA*rA.Y*rA.Y + iB*rB.Y*rB.Y
	K.Col1.Y = -iA*rA.X*rA.Y - iB*rB.X*rB.Y
	K.Col2.X = K.Col1.Y
	K.Col2.Y = mA + mB + iA*rA.X*rA.X + iB*rB.X*rB.X

	var negC math32.Vector2
	negC.Copy(&C).Negate()
	impulse := K.Solve(&negC, nil)

	var corrA math32.Vector2
	corrA.Copy(impulse).MultiplyScalar(-mA)
	stateA.c.Add(&corrA)
	stateA.a -= iA * rA.Cross(impulse)

	var corrB math32.Vector2
	corrB.Copy(impulse).MultiplyScalar(mB)
	stateB.c.Add(&corrB)
	stateB.a += iB * rB.Cross(impulse)

	return positionError <= linearSlop && angularError <= angularSlop
}
