// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// GearJoint couples the relative angle of two RevoluteJoints by Ratio:
// (angleA - angleC - refA) + Ratio*(angleB - angleD - refB) is held
// constant, where A/C are BodyB/BodyA of the first coupled joint and B/D
// are BodyB/BodyA of the second - the classic gear-train constraint.
//
// Only revolute-revolute coupling is implemented (the common gear-train
// case); PrismaticJoint coupling from Box2D's full GearJoint is out of
// scope here since it would require tracking each sub-joint's axis and
// anchor in addition to its angle, for a configuration this engine's
// examples don't otherwise exercise.

func (j *Joint) gearReady() bool { return j.bodyC != nil && j.bodyD != nil }

func (j *Joint) initGear(step stepContext) {

	if !j.gearReady() {
		return
	}

	j.indexA = step.bodyIndex(j.bodyA)
	j.indexB = step.bodyIndex(j.bodyB)
	j.indexC = step.bodyIndex(j.bodyC)
	j.indexD = step.bodyIndex(j.bodyD)

	j.invIA = j.bodyA.invI
	j.invIB = j.bodyB.invI
	iC := j.bodyC.invI
	iD := j.bodyD.invI

	mass := j.invIA + iC + j.ratio*j.ratio*(j.invIB+iD)
	if mass > 0 {
		j.axialMass = 1 / mass
	} else {
		j.axialMass = 0
	}

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	stateC := &step.states[j.indexC]
	stateD := &step.states[j.indexD]

	impulse := j.axialImpulse
	stateA.w += j.invIA * impulse
	stateC.w -= iC * impulse
	stateB.w += j.ratio * j.invIB * impulse
	stateD.w -= j.ratio * iD * impulse
}

func (j *Joint) solveVelocityGear(step stepContext) {

	if !j.gearReady() {
		return
	}

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	stateC := &step.states[j.indexC]
	stateD := &step.states[j.indexD]
	iC := j.bodyC.invI
	iD := j.bodyD.invI

	Cdot := (stateA.w - stateC.w) + j.ratio*(stateB.w-stateD.w)
	impulse := -j.axialMass * Cdot
	j.axialImpulse += impulse

	stateA.w += j.invIA * impulse
	stateC.w -= iC * impulse
	stateB.w += j.ratio * j.invIB * impulse
	stateD.w -= j.ratio * iD * impulse
}

func (j *Joint) solvePositionGear(step stepContext) bool {

	if !j.gearReady() {
		return true
	}

	stateA := &step.states[j.indexA]
	stateB := &step.states[j.indexB]
	stateC := &step.states[j.indexC]
	stateD := &step.states[j.indexD]
	iC := j.bodyC.invI
	iD := j.bodyD.invI

	coordA := stateA.a - stateC.a - j.gearRefAngleA
	coordB := stateB.a - stateD.a - j.gearRefAngleB
	C := (coordA + j.ratio*coordB) - j.constant

	var impulse float32
	if j.axialMass > 0 {
		impulse = -j.axialMass * C
	}

	stateA.a += j.invIA * impulse
	stateC.a -= iC * impulse
	stateB.a += j.ratio * j.invIB * impulse
	stateD.a -= j.ratio * iD * impulse

	return math32.Abs(C) <= linearSlop
}
