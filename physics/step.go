// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// Step advances the simulation by dt, running velocityIters velocity
// iterations and positionIters position-correction iterations per island,
// per §4.4's sequence: lock, refresh contacts, solve discrete islands,
// solve the continuous (TOI) phase, unlock. PostSolve is not buffered: it
// fires as each island finishes solving, while the world is still locked.
func (w *World) Step(dt float32, velocityIters, positionIters int) {

	w.locked = true

	w.contactManager.FindNewContacts()
	w.contactManager.Collide()

	if dt > 0 {
		w.solve(dt, velocityIters, positionIters)
		if w.continuousPhysics {
			w.solveTOI(dt)
		}
	}

	w.locked = false
}

func (w *World) solve(dt float32, velocityIters, positionIters int) {

	for b := w.bodyList; b != nil; b = b.next {
		b.flags &^= flagIslandProcessed
	}

	invDt := float32(0)
	if dt > 0 {
		invDt = 1 / dt
	}

	islands := w.buildIslands()
	for _, island := range islands {
		w.solveIsland(island, dt, invDt, velocityIters, positionIters)
	}

	for b := w.bodyList; b != nil; b = b.next {
		if b.kind == StaticBody || !b.IsAwake() || !b.IsEnabled() {
			continue
		}
		b.synchronizeTransform()
		b.synchronizeFixtures()
	}
}

func (w *World) solveIsland(island *Island, dt, invDt float32, velocityIters, positionIters int) {

	step := island.stepContext(dt, invDt, 1, velocityIters, positionIters)

	for i, b := range island.bodies {
		if b.kind != DynamicBody {
			continue
		}
		s := &step.states[i]

		var accel math32.Vector2
		accel.Copy(&w.gravity).MultiplyScalar(b.gravityScale)
		var forceAccel math32.Vector2
		forceAccel.Copy(&b.force).MultiplyScalar(b.invMass)
		accel.Add(&forceAccel)
		accel.MultiplyScalar(dt)
		s.v.Add(&accel)
		s.w += dt * b.invI * b.torque

		s.v.MultiplyScalar(1 / (1 + dt*b.linearDamping))
		s.w *= 1 / (1 + dt*b.angularDamping)
	}

	for _, j := range island.joints {
		j.initVelocityConstraints(step)
	}
	cs := newContactSolver(step, island.contacts)
	cs.warmStart()

	for iter := 0; iter < velocityIters; iter++ {
		for _, j := range island.joints {
			j.solveVelocityConstraints(step)
		}
		cs.solveVelocity()
	}

	for i, b := range island.bodies {
		if b.kind == StaticBody {
			continue
		}
		s := &step.states[i]

		var translation math32.Vector2
		translation.Copy(&s.v).MultiplyScalar(dt)
		if translation.LengthSq() > maxTranslationSquared {
			ratio := maxTranslation / translation.Length()
			translation.MultiplyScalar(ratio)
		}
		s.c.Add(&translation)

		rotation := dt * s.w
		if rotation*rotation > maxRotationSquared {
			ratio := maxRotation / math32.Abs(rotation)
			rotation *= ratio
		}
		s.a += rotation
	}

	for iter := 0; iter < positionIters; iter++ {
		jointsOK := true
		for _, j := range island.joints {
			if !j.solvePositionConstraints(step) {
				jointsOK = false
			}
		}
		contactError := cs.solvePosition()
		if jointsOK && contactError >= -linearSlop*3 {
			break
		}
	}

	island.writeBack()
	w.evaluateSleep(island, dt)

	impulses := cs.storeImpulses()
	for i, c := range island.contacts {
		if c.IsTouching() {
			w.contactManager.listener.PostSolve(c, &impulses[i])
		}
	}
}

func (w *World) evaluateSleep(island *Island, dt float32) {

	minSleepTime := math32.Infinity
	allowSleep := true

	linTolSq := linearSleepTolerance * linearSleepTolerance
	angTolSq := angularSleepTolerance * angularSleepTolerance

	for _, b := range island.bodies {
		if b.kind == StaticBody {
			continue
		}
		if !b.allowSleep() {
			allowSleep = false
			b.sleepTime = 0
		} else if b.linearVelocity.LengthSq() > linTolSq || b.angularVelocity*b.angularVelocity > angTolSq {
			b.sleepTime = 0
		} else {
			b.sleepTime += dt
		}
		if b.sleepTime < minSleepTime {
			minSleepTime = b.sleepTime
		}
	}

	if allowSleep && minSleepTime >= timeToSleep {
		for _, b := range island.bodies {
			if b.kind != StaticBody {
				b.setAwake(false)
			}
		}
	}
}
