// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// RevoluteJoint pins the two bodies to a shared point and constrains their
// relative angle to an optional [LowerLimit, UpperLimit] range, with an
// optional motor driving MotorSpeed up to MaxMotorTorque.

func localAnchorOffset(anchor, localCenter math32.Vector2) math32.Vector2 {

	return math32.Vector2{X: anchor.X - localCenter.X, Y: anchor.Y - localCenter.Y}
}

func (j *Joint) initRevolute(step stepContext) {

	qA, qB := j.prepare(step)

	j.rA = rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	j.rB = rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB
	fixedRotation := iA+iB == 0

	j.k3.Col1.X = mA + mB + j.rA.Y*j.rA.Y*iA + j.rB.Y*j.rB.Y*iB
	j.k3.Col1.Y = -j.rA.Y*j.rA.X*iA - j.rB.Y*j.rB.X*iB
	j.k3.Col2.X = j.k3.Col1.Y
	j.k3.Col2.Y = mA + mB + j.rA.X*j.rA.X*iA + j.rB.X*j.rB.X*iB

	j.axialMass = iA + iB
	if j.axialMass > 0 {
		j.axialMass = 1 / j.axialMass
	}

	if !j.enableMotor || fixedRotation {
		j.motorImpulse = 0
	}

	if j.enableLimit && !fixedRotation {
		jointAngle := step.states[j.indexB].a - step.states[j.indexA].a - j.referenceAngle
		if math32.Abs(j.upperLimit-j.lowerLimit) < 2*angularSlop {
			j.limitState = limitEqual
		} else if jointAngle <= j.lowerLimit {
			if j.limitState != limitAtLower {
				j.angularImpulse = 0
			}
			j.limitState = limitAtLower
		} else if jointAngle >= j.upperLimit {
			if j.limitState != limitAtUpper {
				j.angularImpulse = 0
			}
			j.limitState = limitAtUpper
		} else {
			j.limitState = limitInactive
			j.angularImpulse = 0
		}
	} else {
		j.limitState = limitInactive
	}

	var p math32.Vector2
	p.Set(j.impulse.X, j.impulse.Y)
	L := j.angularImpulse + j.motorImpulse

	applyImpulse(&step.states[j.indexA], -mA, -iA, j.rA, p)
	step.states[j.indexA].w -= iA * L
	applyImpulse(&step.states[j.indexB], mB, iB, j.rB, p)
	step.states[j.indexB].w += iB * L
}

func (j *Joint) solveVelocityRevolute(step stepContext) {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB
	fixedRotation := iA+iB == 0

	if j.enableMotor && j.limitState != limitEqual && !fixedRotation {
		Cdot := stateB.w - stateA.w - j.motorSpeed
		impulse := -j.axialMass * Cdot
		oldImpulse := j.motorImpulse
		maxImpulse := step.dt * j.maxMotorTorque
		j.motorImpulse = math32.Clamp(oldImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = j.motorImpulse - oldImpulse
		stateA.w -= iA * impulse
		stateB.w += iB * impulse
	}

	if j.enableLimit && !fixedRotation {
		Cdot := stateB.w - stateA.w
		impulse := -j.axialMass * Cdot
		switch j.limitState {
		case limitAtLower:
			newImpulse := math32.Max(j.angularImpulse+impulse, 0)
			impulse = newImpulse - j.angularImpulse
			j.angularImpulse = newImpulse
		case limitAtUpper:
			newImpulse := math32.Min(j.angularImpulse+impulse, 0)
			impulse = newImpulse - j.angularImpulse
			j.angularImpulse = newImpulse
		default:
			j.angularImpulse += impulse
		}
		stateA.w -= iA * impulse
		stateB.w += iB * impulse
	}

	var rel math32.Vector2
	vpB := crossWR(stateB.w, j.rB)
	vpB.Add(&stateB.v)
	vpA := crossWR(stateA.w, j.rA)
	vpA.Add(&stateA.v)
	rel.SubVectors(&vpB, &vpA)

	var negCdot math32.Vector2
	negCdot.Copy(&rel).Negate()
	impulse := j.k3.Solve(&negCdot, nil)
	j.impulse.X += impulse.X
	j.impulse.Y += impulse.Y

	applyImpulse(stateA, -mA, -iA, j.rA, *impulse)
	applyImpulse(stateB, mB, iB, j.rB, *impulse)
}

func (j *Joint) solvePositionRevolute(step stepContext) bool {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	iA, iB := j.invIA, j.invIB
	fixedRotation := iA+iB == 0

	angularError := float32(0)
	positionError := float32(0)

	if j.enableLimit && !fixedRotation {
		angle := stateB.a - stateA.a - j.referenceAngle
		var limitImpulse float32
		switch j.limitState {
		case limitEqual:
			C := math32.Clamp(angle-j.lowerLimit, -maxAngularCorrection, maxAngularCorrection)
			limitImpulse = -j.axialMass * C
			angularError = math32.Abs(C)
		case limitAtLower:
			C := angle - j.lowerLimit
			angularError = -C
			C = math32.Clamp(C+angularSlop, -maxAngularCorrection, 0)
			limitImpulse = -j.axialMass * C
		case limitAtUpper:
			C := angle - j.upperLimit
			angularError = C
			C = math32.Clamp(C-angularSlop, 0, maxAngularCorrection)
			limitImpulse = -j.axialMass * C
		}
		stateA.a -= iA * limitImpulse
		stateB.a += iB * limitImpulse
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
	positionError = C.Length()

	mA, mB := j.invMassA, j.invMassB
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
