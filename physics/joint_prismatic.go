// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// PrismaticJoint constrains the two bodies to slide along LocalAxisA with
// no relative rotation, with an optional translational [LowerLimit,
// UpperLimit] and a motor driving MotorSpeed up to MaxMotorForce.
//
// The perpendicular+angular degrees of freedom are solved as one 2x2 block
// (math32 has no Mat33); the axial limit/motor is solved as an independent
// scalar constraint and position-corrected in a separate pass before the
// perp+angular pass, rather than Box2D's single combined 3x3 solve.

func perp2(axis math32.Vector2) math32.Vector2 {

	return math32.Vector2{X: -axis.Y, Y: axis.X}
}

// applyLinearImpulse applies an impulse to a body's linear velocity only;
// used by joints that track the resulting angular impulse separately
// rather than through an r x p cross product.
func applyLinearImpulse(s *bodyState, invMass float32, p math32.Vector2) {

	var scaled math32.Vector2
	scaled.Copy(&p).MultiplyScalar(invMass)
	s.v.Add(&scaled)
}

func (j *Joint) initPrismatic(step stepContext) {

	qA, qB := j.prepare(step)
	stateA := step.states[j.indexA]
	stateB := step.states[j.indexB]

	j.rA = rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	j.rB = rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	var d math32.Vector2
	d.Copy(&stateB.c).Add(&j.rB)
	var originA math32.Vector2
	originA.Copy(&stateA.c).Add(&j.rA)
	d.Sub(&originA)

	j.axis = rotVec(qA, j.localAxisA)
	var dPlusRA math32.Vector2
	dPlusRA.Copy(&d).Add(&j.rA)
	j.a1 = dPlusRA.Cross(&j.axis)
	j.a2 = j.rB.Cross(&j.axis)

	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB
	k := mA + mB + iA*j.a1*j.a1 + iB*j.a2*j.a2
	if k > 0 {
		j.axialMass = 1 / k
	} else {
		j.axialMass = 0
	}

	j.perp = perp2(j.axis)
	j.s1 = dPlusRA.Cross(&j.perp)
	j.s2 = j.rB.Cross(&j.perp)

	if !j.enableMotor {
		j.motorImpulse = 0
	}

	if j.enableLimit {
		translation := j.axis.Dot(&d)
		if math32.Abs(j.upperLimit-j.lowerLimit) < 2*linearSlop {
			j.limitState = limitEqual
		} else if translation <= j.lowerLimit {
			if j.limitState != limitAtLower {
				j.axialImpulse = 0
			}
			j.limitState = limitAtLower
		} else if translation >= j.upperLimit {
			if j.limitState != limitAtUpper {
				j.axialImpulse = 0
			}
			j.limitState = limitAtUpper
		} else {
			j.limitState = limitInactive
			j.axialImpulse = 0
		}
	} else {
		j.limitState = limitInactive
		j.axialImpulse = 0
	}

	axialSum := j.motorImpulse + j.axialImpulse
	var p math32.Vector2
	var perpPart, axisPart math32.Vector2
	perpPart.Copy(&j.perp).MultiplyScalar(j.impulse.X)
	axisPart.Copy(&j.axis).MultiplyScalar(axialSum)
	p.AddVectors(&perpPart, &axisPart)

	LA := j.impulse.X*j.s1 + j.impulse.Y + axialSum*j.a1
	LB := j.impulse.X*j.s2 + j.impulse.Y + axialSum*j.a2

	applyLinearImpulse(&step.states[j.indexA], -mA, p)
	step.states[j.indexA].w -= iA * LA
	applyLinearImpulse(&step.states[j.indexB], mB, p)
	step.states[j.indexB].w += iB * LB
}

func (j *Joint) solveVelocityPrismatic(step stepContext) {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	var relV math32.Vector2
	relV.SubVectors(&stateB.v, &stateA.v)

	if j.enableMotor && j.limitState != limitEqual {
		Cdot := j.axis.Dot(&relV) + j.a2*stateB.w - j.a1*stateA.w - j.motorSpeed
		impulse := j.axialMass * -Cdot
		oldImpulse := j.motorImpulse
		maxImpulse := step.dt * j.maxMotorForce
		j.motorImpulse = math32.Clamp(oldImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = j.motorImpulse - oldImpulse

		var p math32.Vector2
		p.Copy(&j.axis).MultiplyScalar(impulse)
		applyLinearImpulse(stateA, -mA, p)
		stateA.w -= iA * impulse * j.a1
		applyLinearImpulse(stateB, mB, p)
		stateB.w += iB * impulse * j.a2
	}

	if j.enableLimit && j.limitState != limitInactive {
		Cdot := j.axis.Dot(&relV) + j.a2*stateB.w - j.a1*stateA.w
		impulse := -j.axialMass * Cdot
		switch j.limitState {
		case limitAtLower:
			newImpulse := math32.Max(j.axialImpulse+impulse, 0)
			impulse = newImpulse - j.axialImpulse
			j.axialImpulse = newImpulse
		case limitAtUpper:
			newImpulse := math32.Min(j.axialImpulse+impulse, 0)
			impulse = newImpulse - j.axialImpulse
			j.axialImpulse = newImpulse
		default:
			j.axialImpulse += impulse
		}

		var p math32.Vector2
		p.Copy(&j.axis).MultiplyScalar(impulse)
		applyLinearImpulse(stateA, -mA, p)
		stateA.w -= iA * impulse * j.a1
		applyLinearImpulse(stateB, mB, p)
		stateB.w += iB * impulse * j.a2
	}

	var Cdot math32.Vector2
	Cdot.X = j.perp.Dot(&relV) + j.s2*stateB.w - j.s1*stateA.w
	Cdot.Y = stateB.w - stateA.w

	k11 := mA + mB + iA*j.s1*j.s1 + iB*j.s2*j.s2
	k12 := iA*j.s1 + iB*j.s2
	k22 := iA + iB
	if k22 == 0 {
		k22 = 1
	}
	var K math32.Mat22
	K.Col1.Set(k11, k12)
	K.Col2.Set(k12, k22)

	var negCdot math32.Vector2
	negCdot.Copy(&Cdot).Negate()
	df := K.Solve(&negCdot, nil)
	j.impulse.X += df.X
	j.impulse.Y += df.Y

	var p math32.Vector2
	p.Copy(&j.perp).MultiplyScalar(df.X)
	LA := df.X*j.s1 + df.Y
	LB := df.X*j.s2 + df.Y

	applyLinearImpulse(stateA, -mA, p)
	stateA.w -= iA * LA
	applyLinearImpulse(stateB, mB, p)
	stateB.w += iB * LB
}

func (j *Joint) solvePositionPrismatic(step stepContext) bool {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	var qA, qB math32.Rot
	qA.SetAngle(stateA.a)
	qB.SetAngle(stateB.a)

	rA := rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	rB := rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	var d math32.Vector2
	d.Copy(&stateB.c).Add(&rB)
	var originA math32.Vector2
	originA.Copy(&stateA.c).Add(&rA)
	d.Sub(&originA)

	axis := rotVec(qA, j.localAxisA)
	var dPlusRA math32.Vector2
	dPlusRA.Copy(&d).Add(&rA)
	a1 := dPlusRA.Cross(&axis)
	a2 := rB.Cross(&axis)

	linearError := float32(0)

	if j.enableLimit {
		translation := axis.Dot(&d)
		var C float32
		switch {
		case math32.Abs(j.upperLimit-j.lowerLimit) < 2*linearSlop:
			C = math32.Clamp(translation, -maxLinearCorrection, maxLinearCorrection)
		case translation <= j.lowerLimit:
			C = math32.Clamp(translation-j.lowerLimit+linearSlop, -maxLinearCorrection, 0)
		case translation >= j.upperLimit:
			C = math32.Clamp(translation-j.upperLimit-linearSlop, 0, maxLinearCorrection)
		}
		if C != 0 {
			k := mA + mB + iA*a1*a1 + iB*a2*a2
			var impulse float32
			if k > 0 {
				impulse = -C / k
			}
			var p math32.Vector2
			p.Copy(&axis).MultiplyScalar(impulse)
			LA := impulse * a1
			LB := impulse * a2

			var corrA math32.Vector2
			corrA.Copy(&p).MultiplyScalar(-mA)
			stateA.c.Add(&corrA)
			stateA.a -= iA * LA

			var corrB math32.Vector2
			corrB.Copy(&p).MultiplyScalar(mB)
			stateB.c.Add(&corrB)
			stateB.a += iB * LB

			linearError = math32.Max(linearError, math32.Abs(C))

			qA.SetAngle(stateA.a)
			qB.SetAngle(stateB.a)
			rA = rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
			rB = rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))
			d.Copy(&stateB.c).Add(&rB)
			originA.Copy(&stateA.c).Add(&rA)
			d.Sub(&originA)
			axis = rotVec(qA, j.localAxisA)
			dPlusRA.Copy(&d).Add(&rA)
		}
	}

	perp := perp2(axis)
	s1 := dPlusRA.Cross(&perp)
	s2 := rB.Cross(&perp)

	C1x := perp.Dot(&d)
	C1y := stateB.a - stateA.a - j.referenceAngle
	linearError = math32.Max(linearError, math32.Abs(C1x))
	angularError := math32.Abs(C1y)

	k11 := mA + mB + iA*s1*s1 + iB*s2*s2
	k12 := iA*s1 + iB*s2
	k22 := iA + iB
	if k22 == 0 {
		k22 = 1
	}
	var K math32.Mat22
	K.Col1.Set(k11, k12)
	K.Col2.Set(k12, k22)

	var C math32.Vector2
	C.Set(C1x, C1y)
	var negC math32.Vector2
	negC.Copy(&C).Negate()
	impulse := K.Solve(&negC, nil)

	var p math32.Vector2
	p.Copy(&perp).MultiplyScalar(impulse.X)
	LA := impulse.X*s1 + impulse.Y
	LB := impulse.X*s2 + impulse.Y

	var corrA math32.Vector2
	corrA.Copy(&p).MultiplyScalar(-mA)
	stateA.c.Add(&corrA)
	stateA.a -= iA * LA

	var corrB math32.Vector2
	corrB.Copy(&p).MultiplyScalar(mB)
	stateB.c.Add(&corrB)
	stateB.a += iB * LB

	return linearError <= linearSlop && angularError <= angularSlop
}
