// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// PulleyJoint couples two bodies through a rope run over two fixed ground
// anchors: lengthA + Ratio*lengthB is held at the constant computed when the
// joint is created. The velocity pass enforces this in both directions; the
// position pass only pulls the rope in when it is too long and never pushes.

const minPulleyLength = 2 * linearSlop

func (j *Joint) initPulley(step stepContext) {

	qA, qB := j.prepare(step)
	stateA := step.states[j.indexA]
	stateB := step.states[j.indexB]

	j.rA = rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	j.rB = rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	var pA, pB math32.Vector2
	pA.Copy(&stateA.c).Add(&j.rA)
	pB.Copy(&stateB.c).Add(&j.rB)

	j.axis.SubVectors(&pA, &j.groundAnchorA) // reuse axis as uA scratch
	uA := j.axis
	lengthA := uA.Length()
	if lengthA > minPulleyLength {
		uA.MultiplyScalar(1 / lengthA)
	} else {
		uA.Set(0, 0)
	}

	j.perp.SubVectors(&pB, &j.groundAnchorB) // reuse perp as uB scratch
	uB := j.perp
	lengthB := uB.Length()
	if lengthB > minPulleyLength {
		uB.MultiplyScalar(1 / lengthB)
	} else {
		uB.Set(0, 0)
	}

	ruA := j.rA.Cross(&uA)
	ruB := j.rB.Cross(&uB)

	mA := j.invMassA + j.invIA*ruA*ruA
	mB := j.invMassB + j.invIB*ruB*ruB
	k := mA + j.ratio*j.ratio*mB
	if k > 0 {
		j.axialMass = 1 / k
	} else {
		j.axialMass = 0
	}

	j.axis = uA
	j.perp = uB
}

func (j *Joint) solveVelocityPulley(step stepContext) {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]

	vpA := crossWR(stateA.w, j.rA)
	vpA.Add(&stateA.v)
	vpB := crossWR(stateB.w, j.rB)
	vpB.Add(&stateB.v)

	Cdot := -j.axis.Dot(&vpA) - j.ratio*j.perp.Dot(&vpB)
	impulse := -j.axialMass * Cdot
	j.axialImpulse += impulse

	var pA, pB math32.Vector2
	pA.Copy(&j.axis).MultiplyScalar(-impulse)
	pB.Copy(&j.perp).MultiplyScalar(-j.ratio * impulse)

	applyImpulse(stateA, j.invMassA, j.invIA, j.rA, pA)
	applyImpulse(stateB, j.invMassB, j.invIB, j.rB, pB)
}

func (j *Joint) solvePositionPulley(step stepContext) bool {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]

	var qA, qB math32.Rot
	qA.SetAngle(stateA.a)
	qB.SetAngle(stateB.a)

	rA := rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	rB := rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	var pA, pB math32.Vector2
	pA.Copy(&stateA.c).Add(&rA)
	pB.Copy(&stateB.c).Add(&rB)

	var uA math32.Vector2
	uA.SubVectors(&pA, &j.groundAnchorA)
	lengthA := uA.Length()
	if lengthA > minPulleyLength {
		uA.MultiplyScalar(1 / lengthA)
	} else {
		uA.Set(0, 0)
		lengthA = 0
	}

	var uB math32.Vector2
	uB.SubVectors(&pB, &j.groundAnchorB)
	lengthB := uB.Length()
	if lengthB > minPulleyLength {
		uB.MultiplyScalar(1 / lengthB)
	} else {
		uB.Set(0, 0)
		lengthB = 0
	}

	C := j.constant - lengthA - j.ratio*lengthB
	impulse := -j.axialMass * C
	if impulse < 0 {
		impulse = 0 // rope can go slack, never push
	}

	var pAimp, pBimp math32.Vector2
	pAimp.Copy(&uA).MultiplyScalar(-impulse)
	pBimp.Copy(&uB).MultiplyScalar(-j.ratio * impulse)

	mA, iA := j.invMassA, j.invIA
	mB, iB := j.invMassB, j.invIB

	var corrA math32.Vector2
	corrA.Copy(&pAimp).MultiplyScalar(mA)
	stateA.c.Add(&corrA)
	stateA.a += iA * rA.Cross(&pAimp)

	var corrB math32.Vector2
	corrB.Copy(&pBimp).MultiplyScalar(mB)
	stateB.c.Add(&corrB)
	stateB.a += iB * rB.Cross(&pBimp)

	return math32.Abs(C) < linearSlop
}
