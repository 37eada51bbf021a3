// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// DistanceJoint holds the two bodies at a fixed (or, with FrequencyHz > 0,
// spring-soft) separation between their local anchor points.

func (j *Joint) initDistance(step stepContext) {

	qA, qB := j.prepare(step)

	j.rA = *qA.MulVec2(&math32.Vector2{
		X: j.localAnchorA.X - j.localCenterA.X,
		Y: j.localAnchorA.Y - j.localCenterA.Y,
	}, nil)
	j.rB = *qB.MulVec2(&math32.Vector2{
		X: j.localAnchorB.X - j.localCenterB.X,
		Y: j.localAnchorB.Y - j.localCenterB.Y,
	}, nil)

	stateA := step.states[j.indexA]
	stateB := step.states[j.indexB]

	var u math32.Vector2
	u.Copy(&stateB.c).Add(&j.rB)
	var cA math32.Vector2
	cA.Copy(&stateA.c).Add(&j.rA)
	u.Sub(&cA)

	length := u.Length()
	if length > linearSlop {
		u.MultiplyScalar(1 / length)
	} else {
		u.Set(0, 0)
	}
	j.axis = u

	crA := j.rA.Cross(&u)
	crB := j.rB.Cross(&u)
	invMass := j.invMassA + j.invIA*crA*crA + j.invMassB + j.invIB*crB*crB
	if invMass != 0 {
		j.axialMass = 1 / invMass
	} else {
		j.axialMass = 0
	}

	if j.frequencyHz > 0 {
		C := length - j.length
		omega := 2 * math32.Pi * j.frequencyHz
		d := 2 * j.axialMass * j.dampingRatio * omega
		k := j.axialMass * omega * omega
		h := step.dt
		j.gamma = h * (d + h*k)
		if j.gamma != 0 {
			j.gamma = 1 / j.gamma
		}
		j.bias = C * h * k * j.gamma
		invMass += j.gamma
		if invMass != 0 {
			j.axialMass = 1 / invMass
		} else {
			j.axialMass = 0
		}
	} else {
		j.gamma = 0
		j.bias = 0
	}

	var p math32.Vector2
	p.Copy(&u).MultiplyScalar(j.axialImpulse)
	applyImpulse(&step.states[j.indexA], -j.invMassA, -j.invIA, j.rA, p)
	applyImpulse(&step.states[j.indexB], j.invMassB, j.invIB, j.rB, p)
}

func (j *Joint) solveVelocityDistance(step stepContext) {

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]

	vpA := crossWR(stateA.w, j.rA)
	vpA.Add(&stateA.v)
	vpB := crossWR(stateB.w, j.rB)
	vpB.Add(&stateB.v)
	var rel math32.Vector2
	rel.SubVectors(&vpB, &vpA)
	Cdot := j.axis.Dot(&rel)

	impulse := -j.axialMass * (Cdot + j.bias + j.gamma*j.axialImpulse)
	j.axialImpulse += impulse

	var p math32.Vector2
	p.Copy(&j.axis).MultiplyScalar(impulse)
	applyImpulse(stateA, -j.invMassA, -j.invIA, j.rA, p)
	applyImpulse(stateB, j.invMassB, j.invIB, j.rB, p)
}

func (j *Joint) solvePositionDistance(step stepContext) bool {

	if j.frequencyHz > 0 {
		return true
	}

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]

	var qA, qB math32.Rot
	qA.SetAngle(stateA.a)
	qB.SetAngle(stateB.a)

	rA := *qA.MulVec2(&math32.Vector2{X: j.localAnchorA.X - j.localCenterA.X, Y: j.localAnchorA.Y - j.localCenterA.Y}, nil)
	rB := *qB.MulVec2(&math32.Vector2{X: j.localAnchorB.X - j.localCenterB.X, Y: j.localAnchorB.Y - j.localCenterB.Y}, nil)

	var u math32.Vector2
	u.Copy(&stateB.c).Add(&rB)
	var cA math32.Vector2
	cA.Copy(&stateA.c).Add(&rA)
	u.Sub(&cA)

	length := u.Length()
	if length > linearSlop {
		u.MultiplyScalar(1 / length)
	} else {
		u.Set(0, 0)
	}
	C := math32.Clamp(length-j.length, -maxLinearCorrection, maxLinearCorrection)

	crA := rA.Cross(&u)
	crB := rB.Cross(&u)
	invMass := j.invMassA + j.invIA*crA*crA + j.invMassB + j.invIB*crB*crB
	var impulse float32
	if invMass != 0 {
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

	return math32.Abs(C) < linearSlop
}
