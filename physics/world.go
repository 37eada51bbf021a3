// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physerr"
	"github.com/g3n/rb2d/physics/broadphase"
	"github.com/g3n/rb2d/physics/shapes"
	"github.com/g3n/rb2d/util/logger"
)

// QueryCallback is invoked once per fixture whose proxy overlaps a
// World.QueryAABB box; returning false stops the query early.
type QueryCallback func(f *Fixture) bool

// RayCastCallback is invoked once per fixture the ray hits during
// World.RayCast. Semantics match §6: 0 stops the cast, 1 continues as if
// unhit, a negative value ignores this fixture, and (0,1] clips the ray to
// that fraction of its original length and continues.
type RayCastCallback func(f *Fixture, point, normal math32.Vector2, fraction float32) float32

// World is the top-level simulation container: it owns the body and joint
// lists, drives Step, and holds the contact manager (which in turn owns
// the broad-phase, the listener and the filter).
type World struct {
	bodyList  *Body
	bodyCount int

	jointList  *Joint
	jointCount int

	contactManager *contactManager

	gravity math32.Vector2
	locked  bool

	continuousPhysics bool

	log *logger.Logger
}

var rootLogger = logger.New("rb2d", nil)

// NewWorld returns a World with the given gravity vector, continuous
// collision detection enabled, and a child logger named "rb2d/world".
func NewWorld(gravity math32.Vector2) *World {

	w := &World{
		gravity:           gravity,
		continuousPhysics: true,
		log:               logger.New("world", rootLogger),
	}
	w.contactManager = newContactManager(w.log)
	return w
}

// Gravity returns the world's uniform gravity acceleration.
func (w *World) Gravity() math32.Vector2 { return w.gravity }

// SetGravity replaces the world's uniform gravity acceleration.
func (w *World) SetGravity(g math32.Vector2) { w.gravity = g }

// SetContactListener installs the listener receiving Begin/End/Pre/Post
// solve events. A nil listener restores the no-op default.
func (w *World) SetContactListener(l ContactListener) {

	if l == nil {
		l = NullContactListener{}
	}
	w.contactManager.listener = l
}

// SetContactFilter installs the filter deciding whether two fixtures may
// generate a contact at all. A nil filter restores the default
// group/category/mask precedence rules.
func (w *World) SetContactFilter(f ContactFilter) {

	if f == nil {
		f = defaultContactFilter{}
	}
	w.contactManager.filter = f
}

// SetContinuousPhysics toggles the TOI sub-stepping phase of Step.
func (w *World) SetContinuousPhysics(flag bool) { w.continuousPhysics = flag }

// IsLocked reports whether the world is currently inside Step; mutating
// calls fail-fast with physerr.InvalidState while true.
func (w *World) IsLocked() bool { return w.locked }

// BodyList returns the head of the creation-ordered body list.
func (w *World) BodyList() *Body { return w.bodyList }

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int { return w.bodyCount }

// JointList returns the head of the creation-ordered joint list.
func (w *World) JointList() *Joint { return w.jointList }

// JointCount returns the number of live joints.
func (w *World) JointCount() int { return w.jointCount }

// ContactList returns the head of the contact manager's contact list.
func (w *World) ContactList() *Contact { return w.contactManager.contactList }

// ContactCount returns the number of live contacts.
func (w *World) ContactCount() int { return w.contactManager.contactCount }

// CreateBody allocates a new Body from def and links it into the world.
// Fails with physerr.InvalidState while the world is locked.
func (w *World) CreateBody(def BodyDef) (*Body, error) {

	if w.locked {
		return nil, physerr.New(physerr.InvalidState, "CreateBody", "world is locked")
	}

	b := &Body{
		id:           newEntityID(),
		kind:         def.Type,
		world:        w,
		xf:           math32.Transform2{Pos: def.Position},
		linearVelocity:  def.LinearVelocity,
		angularVelocity: def.AngularVelocity,
		linearDamping:   def.LinearDamping,
		angularDamping:  def.AngularDamping,
		gravityScale:    def.GravityScale,
		UserData:        def.UserData,
	}
	b.xf.Rot.SetAngle(def.Angle)
	b.sweep.A0 = def.Angle
	b.sweep.A = def.Angle
	b.xf.TransformPoint(&b.localCenter, &b.sweep.C)
	b.sweep.C0 = b.sweep.C

	if def.Awake && def.Type != StaticBody {
		b.flags |= flagAwake
	}
	if def.AllowSleep {
		b.flags |= flagAutoSleep
	}
	if def.FixedRotation {
		b.flags |= flagFixedRotation
	}
	if def.Bullet {
		b.flags |= flagBullet
	}
	if def.Enabled {
		b.flags |= flagEnabled
	}

	b.next = w.bodyList
	if w.bodyList != nil {
		w.bodyList.prev = b
	}
	w.bodyList = b
	w.bodyCount++

	w.log.Debug("body created id=%s type=%d", b.ID(), b.kind)
	return b, nil
}

// DestroyBody unlinks b and cascades destruction to its fixtures (and
// their proxies), its contact edges (firing EndContact for touching
// ones), and every joint attached to it (firing no listener itself, per
// §4.1 joint-destroyed is only implied by the caller observing JointList).
// Fails with physerr.InvalidState while the world is locked.
func (w *World) DestroyBody(b *Body) error {

	if w.locked {
		return physerr.New(physerr.InvalidState, "DestroyBody", "world is locked")
	}

	je := b.jointList
	for je != nil {
		next := je.next
		w.DestroyJoint(je.Joint)
		je = next
	}

	ce := b.contactList
	for ce != nil {
		next := ce.next
		w.contactManager.Destroy(ce.Contact)
		ce = next
	}

	f := b.fixtureList
	for f != nil {
		next := f.next
		if len(f.proxies) > 0 {
			f.destroyProxies(w.contactManager.broadPhase)
		}
		f = next
	}
	b.fixtureList = nil
	b.fixtureCount = 0

	if b.prev != nil {
		b.prev.next = b.next
	} else {
		w.bodyList = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	}
	w.bodyCount--

	w.log.Debug("body destroyed id=%s", b.ID())
	return nil
}

// CreateJoint allocates a joint from def, links it into both bodies' joint
// edge lists and the world's joint list, wakes both bodies, and (for
// Pulley/Gear kinds) computes the constant term from the bodies' current
// configuration. If CollideConnected is false, any existing contact
// between the pair is destroyed. Fails with physerr.InvalidState while
// locked, or physerr.InvalidArgument if BodyA == BodyB.
func (w *World) CreateJoint(def JointDef) (*Joint, error) {

	if w.locked {
		return nil, physerr.New(physerr.InvalidState, "CreateJoint", "world is locked")
	}
	if def.BodyA == nil || def.BodyB == nil {
		return nil, physerr.New(physerr.InvalidArgument, "CreateJoint", "both bodies must be non-nil")
	}
	if def.BodyA == def.BodyB {
		return nil, physerr.New(physerr.InvalidArgument, "CreateJoint", "a joint cannot connect a body to itself")
	}

	j := newJoint(def)

	j.edgeA.Other = j.bodyB
	j.edgeA.Joint = j
	j.edgeA.next = j.bodyA.jointList
	if j.bodyA.jointList != nil {
		j.bodyA.jointList.prev = &j.edgeA
	}
	j.bodyA.jointList = &j.edgeA

	j.edgeB.Other = j.bodyA
	j.edgeB.Joint = j
	j.edgeB.next = j.bodyB.jointList
	if j.bodyB.jointList != nil {
		j.bodyB.jointList.prev = &j.edgeB
	}
	j.bodyB.jointList = &j.edgeB

	j.next = w.jointList
	if w.jointList != nil {
		w.jointList.prev = j
	}
	w.jointList = j
	w.jointCount++

	if !def.CollideConnected {
		ce := j.bodyA.contactList
		for ce != nil {
			next := ce.next
			if ce.Other == j.bodyB {
				w.contactManager.Destroy(ce.Contact)
			}
			ce = next
		}
	}

	j.bodyA.SetAwake(true)
	j.bodyB.SetAwake(true)

	switch j.kind {
	case PulleyJoint:
		anchorA := j.bodyA.WorldPoint(j.localAnchorA)
		anchorB := j.bodyB.WorldPoint(j.localAnchorB)
		lengthA0 := anchorA.DistanceTo(&j.groundAnchorA)
		lengthB0 := anchorB.DistanceTo(&j.groundAnchorB)
		j.constant = lengthA0 + j.ratio*lengthB0
	case GearJoint:
		if j.joint1 != nil && j.joint2 != nil {
			coordA0 := j.joint1.bodyB.Angle() - j.joint1.bodyA.Angle() - j.gearRefAngleA
			coordB0 := j.joint2.bodyB.Angle() - j.joint2.bodyA.Angle() - j.gearRefAngleB
			j.constant = coordA0 + j.ratio*coordB0
		}
	}

	w.log.Debug("joint created id=%s kind=%s", j.ID(), j.kind)
	return j, nil
}

// DestroyJoint unlinks j from both bodies and the world's joint list and
// wakes both bodies. Caller responsibility per §3: a Gear joint must be
// destroyed before either of its two referent joints. Fails with
// physerr.InvalidState while locked.
func (w *World) DestroyJoint(j *Joint) error {

	if w.locked {
		return physerr.New(physerr.InvalidState, "DestroyJoint", "world is locked")
	}

	unlinkJointEdge(j.bodyA, &j.edgeA)
	unlinkJointEdge(j.bodyB, &j.edgeB)

	if j.prev != nil {
		j.prev.next = j.next
	} else {
		w.jointList = j.next
	}
	if j.next != nil {
		j.next.prev = j.prev
	}
	w.jointCount--

	j.bodyA.SetAwake(true)
	j.bodyB.SetAwake(true)

	w.log.Debug("joint destroyed id=%s kind=%s", j.ID(), j.kind)
	return nil
}

func unlinkJointEdge(b *Body, edge *JointEdge) {

	if edge.prev != nil {
		edge.prev.next = edge.next
	} else {
		b.jointList = edge.next
	}
	if edge.next != nil {
		edge.next.prev = edge.prev
	}
	edge.prev = nil
	edge.next = nil
}

// ClearForces zeroes every dynamic body's accumulated force and torque.
// Never called implicitly by Step; the caller must invoke it explicitly
// after a step (or a series of sub-steps sharing one force application).
func (w *World) ClearForces() {

	for b := w.bodyList; b != nil; b = b.next {
		b.force.Set(0, 0)
		b.torque = 0
	}
}

// QueryAABB enumerates every fixture whose broad-phase proxy overlaps aabb.
func (w *World) QueryAABB(cb QueryCallback, aabb math32.Box2) {

	w.contactManager.broadPhase.Query(func(proxyID int) bool {
		proxy := w.contactManager.broadPhase.UserData(proxyID).(*fixtureProxy)
		return cb(proxy.fixture)
	}, aabb)
}

// RayCast casts a segment from p1 to p2 against every fixture whose proxy
// the ray crosses, narrowed per-fixture via its own shape's RayCast.
func (w *World) RayCast(cb RayCastCallback, p1, p2 math32.Vector2) {

	w.contactManager.broadPhase.RayCast(func(input broadphase.RayCastInput, proxyID int) float32 {
		proxy := w.contactManager.broadPhase.UserData(proxyID).(*fixtureProxy)
		f := proxy.fixture

		shapeInput := shapes.RayCastInput{P1: input.P1, P2: input.P2, MaxFraction: input.MaxFraction}
		out, hit := f.RayCast(&shapeInput, proxy.childIndex)
		if !hit {
			return 1
		}
		var point, dir math32.Vector2
		dir.SubVectors(&input.P2, &input.P1)
		point.Copy(&dir).MultiplyScalar(out.Fraction).Add(&input.P1)
		return cb(f, point, out.Normal, out.Fraction)
	}, broadphase.RayCastInput{P1: p1, P2: p2, MaxFraction: 1})
}
