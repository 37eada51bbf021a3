// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/physics/broadphase"
	"github.com/g3n/rb2d/physics/narrowphase"
	"github.com/g3n/rb2d/util/logger"
)

// contactManager owns the broad-phase tree, the contact listener/filter,
// and the intrusive list of live contacts. It is the sole mutator of the
// broad-phase between steps, per §5's shared-resource rule.
type contactManager struct {
	broadPhase *broadphase.Tree
	listener   ContactListener
	filter     ContactFilter

	contactList  *Contact
	contactCount int

	log *logger.Logger
}

func newContactManager(log *logger.Logger) *contactManager {

	return &contactManager{
		broadPhase: broadphase.NewTree(),
		listener:   NullContactListener{},
		filter:     defaultContactFilter{},
		log:        log,
	}
}

func (cm *contactManager) addContact(c *Contact) {

	c.prev = nil
	c.next = cm.contactList
	if cm.contactList != nil {
		cm.contactList.prev = c
	}
	cm.contactList = c
	cm.contactCount++

	bodyA, bodyB := c.fixtureA.body, c.fixtureB.body

	c.nodeA.Other = bodyB
	c.nodeA.Contact = c
	c.nodeA.prev = nil
	c.nodeA.next = bodyA.contactList
	if bodyA.contactList != nil {
		bodyA.contactList.prev = &c.nodeA
	}
	bodyA.contactList = &c.nodeA

	c.nodeB.Other = bodyA
	c.nodeB.Contact = c
	c.nodeB.prev = nil
	c.nodeB.next = bodyB.contactList
	if bodyB.contactList != nil {
		bodyB.contactList.prev = &c.nodeB
	}
	bodyB.contactList = &c.nodeB
}

// Destroy unlinks a contact from both bodies and the manager's list,
// firing EndContact first if it was touching. May be called outside a
// Step (e.g. from DestroyBody's cascade), per §4.2.
func (cm *contactManager) Destroy(c *Contact) {

	if c.IsTouching() {
		cm.listener.EndContact(c)
	}

	bodyA, bodyB := c.fixtureA.body, c.fixtureB.body
	unlinkContactEdge(bodyA, &c.nodeA)
	unlinkContactEdge(bodyB, &c.nodeB)

	if c.prev != nil {
		c.prev.next = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	}
	if cm.contactList == c {
		cm.contactList = c.next
	}
	cm.contactCount--
}

func unlinkContactEdge(b *Body, edge *ContactEdge) {

	if edge.prev != nil {
		edge.prev.next = edge.next
	} else {
		b.contactList = edge.next
	}
	if edge.next != nil {
		edge.next.prev = edge.prev
	}
	edge.prev = nil
	edge.next = nil
}

// FindNewContacts asks the broad-phase for proxy pairs that started
// overlapping since the last call, and creates a Contact for each pair
// that survives the same-body, filter and already-exists checks. Fixture
// "A" is the one whose proxy has the lower broad-phase id, as handed over
// by the broad-phase's id-ordered pair enumeration.
func (cm *contactManager) FindNewContacts() {

	cm.broadPhase.UpdatePairs(func(userDataA, userDataB interface{}) {

		proxyA := userDataA.(*fixtureProxy)
		proxyB := userDataB.(*fixtureProxy)
		fixtureA := proxyA.fixture
		fixtureB := proxyB.fixture
		childA := proxyA.childIndex
		childB := proxyB.childIndex

		bodyA, bodyB := fixtureA.body, fixtureB.body
		if bodyA == bodyB {
			return
		}
		if !bodyA.shouldCollide(bodyB) {
			return
		}
		if cm.connectedAndNotColliding(bodyA, bodyB) {
			return
		}
		if !cm.filter.ShouldCollide(fixtureA, fixtureB) {
			return
		}
		if cm.contactExists(bodyA, fixtureA, childA, fixtureB, childB) {
			return
		}

		c := newContact(fixtureA, childA, fixtureB, childB)
		cm.addContact(c)
		cm.log.Debug("contact created fixtureA=%s fixtureB=%s", fixtureA.ID(), fixtureB.ID())
	})
}

func (cm *contactManager) connectedAndNotColliding(bodyA, bodyB *Body) bool {

	for je := bodyA.jointList; je != nil; je = je.next {
		if je.Other == bodyB && !je.Joint.collideConnected {
			return true
		}
	}
	return false
}

func (cm *contactManager) contactExists(bodyA *Body, fixtureA *Fixture, childA int, fixtureB *Fixture, childB int) bool {

	for ce := bodyA.contactList; ce != nil; ce = ce.next {
		c := ce.Contact
		if c.fixtureA == fixtureA && c.fixtureB == fixtureB && c.childIndexA == childA && c.childIndexB == childB {
			return true
		}
		if c.fixtureA == fixtureB && c.fixtureB == fixtureA && c.childIndexA == childB && c.childIndexB == childA {
			return true
		}
	}
	return false
}

// Collide refreshes every contact whose AABBs still overlap: runs
// narrow-phase, updates the touching flag, and fires Begin/EndContact on
// transitions plus PreSolve for every pair that is touching after the
// update. Pairs of two non-static bodies that are both asleep are not
// updated.
// Contacts whose fattened AABBs no longer overlap are destroyed.
func (cm *contactManager) Collide() {

	c := cm.contactList
	for c != nil {
		next := c.next

		fixtureA, fixtureB := c.fixtureA, c.fixtureB
		childA, childB := c.childIndexA, c.childIndexB

		if c.flags&contactFlagFilter != 0 {
			bodyA, bodyB := fixtureA.body, fixtureB.body
			if cm.connectedAndNotColliding(bodyA, bodyB) || !cm.filter.ShouldCollide(fixtureA, fixtureB) {
				cm.Destroy(c)
				c = next
				continue
			}
			c.flags &^= contactFlagFilter
		}

		proxyIDA := fixtureA.proxies[childA].proxyID
		proxyIDB := fixtureB.proxies[childB].proxyID
		aabbA := cm.broadPhase.FatAABB(proxyIDA)
		aabbB := cm.broadPhase.FatAABB(proxyIDB)
		if !aabbA.IsIntersectionBox(&aabbB) {
			cm.Destroy(c)
			c = next
			continue
		}

		bodyA, bodyB := fixtureA.body, fixtureB.body
		if !bodyA.IsAwake() && !bodyB.IsAwake() && bodyA.kind != StaticBody && bodyB.kind != StaticBody {
			c = next
			continue
		}

		wasTouching := c.update()
		touching := c.IsTouching()

		if !wasTouching && touching {
			cm.listener.BeginContact(c)
		}
		if wasTouching && !touching {
			cm.listener.EndContact(c)
		}
		if touching {
			cm.listener.PreSolve(c, &c.oldManifold)
		}

		c = next
	}
}
