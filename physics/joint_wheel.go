// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// WheelJoint constrains the bodies to translate only along LocalAxisA (the
// suspension axis, held by an optional FrequencyHz/DampingRatio spring
// rather than rigidly) while leaving relative rotation free except for an
// optional motor driving MotorSpeed up to MaxMotorTorque - the classic
// car-wheel suspension joint.

func (j *Joint) initWheel(step stepContext) {

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
	j.perp = perp2(j.axis)

	var dPlusRA math32.Vector2
	dPlusRA.Copy(&d).Add(&j.rA)

	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	j.a1 = dPlusRA.Cross(&j.axis)
	j.a2 = j.rB.Cross(&j.axis)
	mSpring := mA + mB + iA*j.a1*j.a1 + iB*j.a2*j.a2
	if mSpring > 0 {
		j.axialMass = 1 / mSpring
	} else {
		j.axialMass = 0
	}

	j.gamma = 0
	j.bias = 0
	if j.frequencyHz > 0 {
		C := j.axis.Dot(&d)
		omega := 2 * math32.Pi * j.frequencyHz
		dashpot := 2 * j.axialMass * j.dampingRatio * omega
		k := j.axialMass * omega * omega
		h := step.dt
		j.gamma = h * (dashpot + h*k)
		if j.gamma != 0 {
			j.gamma = 1 / j.gamma
		}
		j.bias = C * h * k * j.gamma
		invMass := mSpring + j.gamma
		if invMass > 0 {
			j.axialMass = 1 / invMass
		} else {
			j.axialMass = 0
		}
	}

	j.s1 = dPlusRA.Cross(&j.perp)
	j.s2 = j.rB.Cross(&j.perp)
	mPerp := mA + mB + iA*j.s1*j.s1 + iB*j.s2*j.s2
	if mPerp > 0 {
		j.perpMass = 1 / mPerp
	} else {
		j.perpMass = 0
	}

	if !j.enableMotor {
		j.motorImpulse = 0
	}

	var p math32.Vector2
	var perpPart, axisPart math32.Vector2
	perpPart.Copy(&j.perp).MultiplyScalar(j.axialImpulse)
	axisPart.Copy(&j.axis).MultiplyScalar(j.angularImpulse)
	p.AddVectors(&perpPart, &axisPart)
	LA := j.axialImpulse*j.s1 + j.angularImpulse*j.a1
	LB := j.axialImpulse*j.s2 + j.angularImpulse*j.a2

	applyLinearImpulse(&step.states[j.indexA], -mA, p)
	step.states[j.indexA].w -= iA*LA + iA*j.motorImpulse
	applyLinearImpulse(&step.states[j.indexB], mB, p)
	step.states[j.indexB].w += iB*LB + iB*j.motorImpulse
}

func (j *Joint) solveVelocityWheel(step stepContext) {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	mA, mB, iA, iB := j.invMassA, j.invMassB, j.invIA, j.invIB

	var relV math32.Vector2
	relV.SubVectors(&stateB.v, &stateA.v)

	// Spring (axial); without a spring the axis is left free.
	if j.frequencyHz > 0 {
		Cdot := j.axis.Dot(&relV) + j.a2*stateB.w - j.a1*stateA.w
		impulse := -j.axialMass * (Cdot + j.bias + j.gamma*j.angularImpulse)
		j.angularImpulse += impulse

		var p math32.Vector2
		p.Copy(&j.axis).MultiplyScalar(impulse)
		applyLinearImpulse(stateA, -mA, p)
		stateA.w -= iA * impulse * j.a1
		applyLinearImpulse(stateB, mB, p)
		stateB.w += iB * impulse * j.a2
	}

	// Motor.
	if j.enableMotor {
		motorMass := iA + iB
		if motorMass > 0 {
			motorMass = 1 / motorMass
		}
		Cdot := stateB.w - stateA.w - j.motorSpeed
		impulse := -motorMass * Cdot
		oldImpulse := j.motorImpulse
		maxImpulse := step.dt * j.maxMotorTorque
		j.motorImpulse = math32.Clamp(oldImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = j.motorImpulse - oldImpulse
		stateA.w -= iA * impulse
		stateB.w += iB * impulse
	}

	// Perpendicular separation.
	{
		Cdot := j.perp.Dot(&relV) + j.s2*stateB.w - j.s1*stateA.w
		impulse := -j.perpMass * Cdot
		j.axialImpulse += impulse

		var p math32.Vector2
		p.Copy(&j.perp).MultiplyScalar(impulse)
		applyLinearImpulse(stateA, -mA, p)
		stateA.w -= iA * impulse * j.s1
		applyLinearImpulse(stateB, mB, p)
		stateB.w += iB * impulse * j.s2
	}
}

func (j *Joint) solvePositionWheel(step stepContext) bool {

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
	perp := perp2(axis)

	var dPlusRA math32.Vector2
	dPlusRA.Copy(&d).Add(&rA)
	s1 := dPlusRA.Cross(&perp)
	s2 := rB.Cross(&perp)

	C := perp.Dot(&d)
	k := mA + mB + iA*s1*s1 + iB*s2*s2
	var impulse float32
	if k > 0 {
		impulse = -C / k
	}

	var p math32.Vector2
	p.Copy(&perp).MultiplyScalar(impulse)
	LA := impulse * s1
	LB := impulse * s2

	var corrA math32.Vector2
	corrA.Copy(&p).MultiplyScalar(-mA)
	stateA.c.Add(&corrA)
	stateA.a -= iA * LA

	var corrB math32.Vector2
	corrB.Copy(&p).MultiplyScalar(mB)
	stateB.c.Add(&corrB)
	stateB.a += iB * LB

	return math32.Abs(C) <= linearSlop
}
