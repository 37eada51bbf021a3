// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// RopeJoint caps the separation between the two anchors at MaxLength; the
// bodies are free to move closer together, only stretching past MaxLength
// is resisted - an inequality constraint, unlike DistanceJoint's equality.

func (j *Joint) initRope(step stepContext) {

	qA, qB := j.prepare(step)
	stateA := step.states[j.indexA]
	stateB := step.states[j.indexB]

	j.rA = rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	j.rB = rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	var u math32.Vector2
	u.Copy(&stateB.c).Add(&j.rB)
	var originA math32.Vector2
	originA.Copy(&stateA.c).Add(&j.rA)
	u.Sub(&originA)

	j.length = u.Length()
	C := j.length - j.maxLength
	if C > 0 {
		j.limitState = limitAtUpper
	} else {
		j.limitState = limitInactive
	}

	if j.length > linearSlop {
		u.MultiplyScalar(1 / j.length)
	} else {
		u.Set(0, 0)
	}
	j.axis = u

	crA := j.rA.Cross(&u)
	crB := j.rB.Cross(&u)
	invMass := j.invMassA + j.invIA*crA*crA + j.invMassB + j.invIB*crB*crB
	if invMass > 0 {
		j.axialMass = 1 / invMass
	} else {
		j.axialMass = 0
	}

	if j.limitState != limitAtUpper {
		j.axialImpulse = 0
	}

	var p math32.Vector2
	p.Copy(&u).MultiplyScalar(j.axialImpulse)
	applyImpulse(&step.states[j.indexA], -j.invMassA, -j.invIA, j.rA, p)
	applyImpulse(&step.states[j.indexB], j.invMassB, j.invIB, j.rB, p)
}

func (j *Joint) solveVelocityRope(step stepContext) {

	if j.limitState != limitAtUpper {
		return
	}

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]

	vpB := crossWR(stateB.w, j.rB)
	vpB.Add(&stateB.v)
	vpA := crossWR(stateA.w, j.rA)
	vpA.Add(&stateA.v)
	var rel math32.Vector2
	rel.SubVectors(&vpB, &vpA)
	Cdot := j.axis.Dot(&rel)

	C := j.length - j.maxLength
	var bias float32
	if C > 0 {
		bias = C / step.dt
	}

	impulse := -j.axialMass * (Cdot + bias)
	oldImpulse := j.axialImpulse
	j.axialImpulse = math32.Min(0, oldImpulse+impulse)
	impulse = j.axialImpulse - oldImpulse

	var p math32.Vector2
	p.Copy(&j.axis).MultiplyScalar(impulse)
	applyImpulse(stateA, -j.invMassA, -j.invIA, j.rA, p)
	applyImpulse(stateB, j.invMassB, j.invIB, j.rB, p)
}

func (j *Joint) solvePositionRope(step stepContext) bool {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]

	var qA, qB math32.Rot
	qA.SetAngle(stateA.a)
	qB.SetAngle(stateB.a)
	rA := rotVec(qA, localAnchorOffset(j.localAnchorA, j.localCenterA))
	rB := rotVec(qB, localAnchorOffset(j.localAnchorB, j.localCenterB))

	var u math32.Vector2
	u.Copy(&stateB.c).Add(&rB)
	var originA math32.Vector2
	originA.Copy(&stateA.c).Add(&rA)
	u.Sub(&originA)

	length := u.Length()
	if length > linearSlop {
		u.MultiplyScalar(1 / length)
	} else {
		u.Set(0, 0)
	}
	C := math32.Clamp(length-j.maxLength, 0, maxLinearCorrection)

	crA := rA.Cross(&u)
	crB := rB.Cross(&u)
	invMass := j.invMassA + j.invIA*crA*crA + j.invMassB + j.invIB*crB*crB
	var impulse float32
	if invMass > 0 {
		impulse = -C / invMass
	}

	var p math32.Vector2
	p.Copy(&u).MultiplyScalar(impulse)

	var corrA math32.Vector2
	corrA.Copy(&p).MultiplyScalar(-j.invMassA)
	stateA.c.Add(&corrA)
	stateA.a -= j.invIA * rA.Cross(&p)

	var corrB math32.Vector2
	corrB.Copy(&p).MultiplyScalar(j.invMassB)
	stateB.c.Add(&corrB)
	stateB.a += j.invIB * rB.Cross(&p)

	return length-j.maxLength < linearSlop
}
