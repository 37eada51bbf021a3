// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// bodyState is the island-local, index-addressable position/velocity pair
// the solver reads and writes during one island solve, kept as flat
// parallel arrays (rather than pointer chasing into Body) for cache
// locality, per the spec's flat-array-per-island design note.
type bodyState struct {
	c math32.Vector2 // center of mass position
	a float32        // angle
	v math32.Vector2
	w float32
}

// stepContext carries the per-step timing and the current island's
// position/velocity arrays to every joint/contact solve call.
type stepContext struct {
	dt, invDt, dtRatio float32
	velocityIterations int
	positionIterations int
	states             []bodyState
	index              map[*Body]int
}

// bodyIndex resolves a body to its island-local slot in states, the index
// every contact/joint solver uses to reach its bodyState.
func (sc *stepContext) bodyIndex(b *Body) int {

	return sc.index[b]
}

// Island is the transient, per-step arena of bodies/contacts/joints built
// by a single DFS from one awake seed body, plus the parallel solver
// state arrays indexed by island-local position.
type Island struct {
	bodies   []*Body
	contacts []*Contact
	joints   []*Joint
	states   []bodyState
	index    map[*Body]int
}

func newIsland(bodyCap, contactCap, jointCap int) *Island {

	return &Island{
		bodies:   make([]*Body, 0, bodyCap),
		contacts: make([]*Contact, 0, contactCap),
		joints:   make([]*Joint, 0, jointCap),
		index:    make(map[*Body]int, bodyCap),
	}
}

func (is *Island) add(b *Body) {

	if _, ok := is.index[b]; ok {
		return
	}
	is.index[b] = len(is.bodies)
	is.bodies = append(is.bodies, b)
}

// buildIslands performs the DFS/union-find over awake, enabled, non-static
// bodies described in §4.3: every unprocessed awake body seeds a new
// island; traversal crosses contact edges (skipping disabled/non-touching/
// sensor contacts) and joint edges (skipping joints on a disabled body).
// Static bodies enter islands as leaves but are never DFS roots and are
// unmarked at island close so they can re-enter later islands this step.
func (w *World) buildIslands() []*Island {

	var islands []*Island
	stack := make([]*Body, 0, 64)

	for seed := w.bodyList; seed != nil; seed = seed.next {
		if seed.flags&flagIslandProcessed != 0 {
			continue
		}
		if !seed.IsAwake() || !seed.IsEnabled() || seed.kind == StaticBody {
			continue
		}

		island := newIsland(16, 16, 16)
		stack = stack[:0]
		stack = append(stack, seed)
		seed.flags |= flagIslandProcessed

		for len(stack) > 0 {
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			island.add(b)

			if b.kind == StaticBody {
				continue
			}
			if !b.IsAwake() {
				b.setAwake(true)
			}

			for ce := b.contactList; ce != nil; ce = ce.next {
				c := ce.Contact
				if !c.IsTouching() || !c.IsEnabled() || c.IsSensorContact() {
					continue
				}
				island.contacts = append(island.contacts, c)
				other := ce.Other
				if other.flags&flagIslandProcessed != 0 {
					continue
				}
				if !other.IsEnabled() {
					continue
				}
				other.flags |= flagIslandProcessed
				stack = append(stack, other)
			}

			for je := b.jointList; je != nil; je = je.next {
				other := je.Other
				if !other.IsEnabled() {
					continue
				}
				island.joints = append(island.joints, je.Joint)
				if other.flags&flagIslandProcessed != 0 {
					continue
				}
				other.flags |= flagIslandProcessed
				stack = append(stack, other)
			}
		}

		// Dedup joints (each joint reachable from both endpoints' edge
		// lists would otherwise be appended twice).
		island.joints = dedupJoints(island.joints)

		for _, b := range island.bodies {
			if b.kind == StaticBody {
				b.flags &^= flagIslandProcessed
			}
		}

		islands = append(islands, island)
	}

	return islands
}

// stepContext builds the solver's timing+state bundle for this island,
// seeding states from each body's current position/velocity.
func (is *Island) stepContext(dt, invDt, dtRatio float32, velocityIterations, positionIterations int) stepContext {

	is.states = make([]bodyState, len(is.bodies))
	for i, b := range is.bodies {
		is.states[i] = bodyState{
			c: b.sweep.C,
			a: b.sweep.A,
			v: b.linearVelocity,
			w: b.angularVelocity,
		}
	}
	return stepContext{
		dt:                 dt,
		invDt:              invDt,
		dtRatio:            dtRatio,
		velocityIterations: velocityIterations,
		positionIterations: positionIterations,
		states:             is.states,
		index:              is.index,
	}
}

// writeBack copies the solved states back into each body's sweep/velocity.
func (is *Island) writeBack() {

	for i, b := range is.bodies {
		s := is.states[i]
		b.sweep.C = s.c
		b.sweep.A = s.a
		b.linearVelocity = s.v
		b.angularVelocity = s.w
	}
}

func dedupJoints(joints []*Joint) []*Joint {

	seen := make(map[*Joint]bool, len(joints))
	out := joints[:0]
	for _, j := range joints {
		if seen[j] {
			continue
		}
		seen[j] = true
		out = append(out, j)
	}
	return out
}
