// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physics/shapes"
)

const toiIslandBodyCap = 2 + 2*maxSubSteps

// advanceToTOI collapses the body's sweep to the single interpolated pose
// at fraction alpha, discarding the rest of this step's planned motion -
// the body now sits exactly where the TOI engine says it first touches.
func (b *Body) advanceToTOI(alpha float32) {

	b.sweep.Advance(alpha)
	b.sweep.C = b.sweep.C0
	b.sweep.A = b.sweep.A0
	b.synchronizeTransform()
}

// pairIsTOIActive reports whether this contact's bodies form one of the
// two pairings §4.4 step 4 sub-steps: dynamic-vs-static (always), or
// dynamic-bullet-vs-dynamic (only if at least one side is a bullet).
// Two non-bullet dynamic bodies tunnel risk is accepted; ordinary discrete
// collision handles them.
func pairIsTOIActive(bodyA, bodyB *Body) bool {

	if bodyA.kind != DynamicBody && bodyB.kind != DynamicBody {
		return false
	}
	if bodyA.kind == DynamicBody && bodyB.kind == DynamicBody {
		return bodyA.IsBullet() || bodyB.IsBullet()
	}
	return true
}

// solveTOI runs the continuous-collision sub-stepping phase: repeatedly
// finds the globally earliest time of impact among eligible contacts,
// advances that pair to it, and resolves a small island built by BFS
// around the pair, until no contact reports an impact before t=1 or the
// sub-step cap is reached.
func (w *World) solveTOI(dt float32) {

	for c := w.contactManager.contactList; c != nil; c = c.next {
		c.flags &^= contactFlagToi
		c.toiCount = 0
		c.toi = 1
	}

	for iter := 0; iter < maxSubSteps; iter++ {

		var minContact *Contact
		minAlpha := float32(1)

		for c := w.contactManager.contactList; c != nil; c = c.next {
			if !c.IsEnabled() || c.IsSensorContact() {
				continue
			}
			if c.toiCount >= maxSubSteps {
				continue
			}

			var alpha float32
			if c.flags&contactFlagToi != 0 {
				alpha = c.toi
			} else {
				bodyA, bodyB := c.fixtureA.body, c.fixtureB.body
				if !pairIsTOIActive(bodyA, bodyB) {
					c.flags |= contactFlagToi
					c.toi = 1
					continue
				}
				if !bodyA.IsAwake() && !bodyB.IsAwake() {
					continue
				}

				proxyA := c.fixtureA.shape.Proxy(c.childIndexA)
				proxyB := c.fixtureB.shape.Proxy(c.childIndexB)

				out := shapes.TimeOfImpact(proxyA, bodyA.sweep, proxyB, bodyB.sweep, 1)
				alpha = float32(1)
				if out.State == shapes.TOITouching {
					alpha = math32.Min(1, out.T)
				}
				c.toi = alpha
				c.flags |= contactFlagToi
			}

			if alpha < minAlpha {
				minAlpha = alpha
				minContact = c
			}
		}

		if minContact == nil || minAlpha > 1-10*linearSlop {
			break
		}

		bodyA, bodyB := minContact.fixtureA.body, minContact.fixtureB.body
		bodyA.advanceToTOI(minAlpha)
		bodyB.advanceToTOI(minAlpha)

		minContact.update()
		minContact.flags &^= contactFlagToi
		minContact.toiCount++

		if !minContact.IsTouching() {
			continue
		}

		bodyA.setAwake(true)
		bodyB.setAwake(true)

		island := w.buildTOIIsland(bodyA, bodyB)
		remaining := (1 - minAlpha) * dt
		w.solveTOIIsland(island, remaining)

		for _, c2 := range island.contacts {
			c2.flags |= contactFlagToi
		}
	}
}

// buildTOIIsland gathers the two impacting bodies plus any additional
// bodies reachable by BFS across currently-touching contacts, capped at
// toiIslandBodyCap. Unlike the discrete island builder, joints never
// participate - the TOI solve is a pure contact-position/velocity
// correction pass, matching the engine's reference behavior.
func (w *World) buildTOIIsland(seedA, seedB *Body) *Island {

	island := newIsland(toiIslandBodyCap, toiIslandBodyCap, 0)
	queue := []*Body{seedA, seedB}
	seedA.flags |= flagToiProcessed
	seedB.flags |= flagToiProcessed

	for len(queue) > 0 && len(island.bodies) < toiIslandBodyCap {
		b := queue[0]
		queue = queue[1:]
		island.add(b)

		if b.kind == StaticBody {
			continue
		}

		for ce := b.contactList; ce != nil; ce = ce.next {
			c := ce.Contact
			if !c.IsTouching() || !c.IsEnabled() || c.IsSensorContact() {
				continue
			}
			if !containsContact(island.contacts, c) {
				island.contacts = append(island.contacts, c)
			}

			other := ce.Other
			if other.flags&flagToiProcessed != 0 {
				continue
			}
			if len(island.bodies) >= toiIslandBodyCap {
				continue
			}
			other.flags |= flagToiProcessed
			queue = append(queue, other)
		}
	}

	for _, b := range island.bodies {
		b.flags &^= flagToiProcessed
	}
	return island
}

func containsContact(cs []*Contact, c *Contact) bool {

	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

// solveTOIIsland resolves one TOI island's contact constraints at the
// just-advanced positions: position-correct first (no warm start, tighter
// tolerance than the discrete pass), then a short velocity solve to kill
// the remaining approach velocity, then a final plain Euler position
// integration over the remaining time h = (1-alpha)*dt.
func (w *World) solveTOIIsland(island *Island, h float32) {

	step := island.stepContext(h, 0, 1, 0, 0)

	cs := newContactSolver(step, island.contacts)

	for i := 0; i < maxTOIIterations; i++ {
		if cs.solvePosition() >= -1.5*linearSlop {
			break
		}
	}

	for i := 0; i < 4; i++ {
		cs.solveVelocity()
	}

	for i, b := range island.bodies {
		if b.kind == StaticBody {
			continue
		}
		s := &step.states[i]
		var translation math32.Vector2
		translation.Copy(&s.v).MultiplyScalar(h)
		s.c.Add(&translation)
		s.a += h * s.w
	}

	island.writeBack()
	for _, b := range island.bodies {
		if b.kind != StaticBody {
			b.sweep.C0 = b.sweep.C
			b.sweep.A0 = b.sweep.A
		}
	}
}
