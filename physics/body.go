// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physics/shapes"
)

// BodyType distinguishes how a Body participates in the simulation.
type BodyType int

const (
	// StaticBody never moves; infinite mass, zero velocity.
	StaticBody BodyType = iota
	// KinematicBody moves only as the user drives its velocity directly;
	// infinite mass, unaffected by forces or collisions.
	KinematicBody
	// DynamicBody is fully simulated: forces, collisions and joints move it.
	DynamicBody
)

// BodyDef are the parameters used to create a Body via World.CreateBody.
type BodyDef struct {
	Type            BodyType
	Position        math32.Vector2
	Angle           float32
	LinearVelocity  math32.Vector2
	AngularVelocity float32
	LinearDamping   float32
	AngularDamping  float32
	AllowSleep      bool
	Awake           bool
	FixedRotation   bool
	Bullet          bool
	Enabled         bool
	GravityScale    float32
	UserData        interface{}
}

// NewBodyDef returns a BodyDef with the engine's conventional defaults.
func NewBodyDef() BodyDef {

	return BodyDef{
		Type:         StaticBody,
		AllowSleep:   true,
		Awake:        true,
		Enabled:      true,
		GravityScale: 1,
	}
}

type bodyFlags uint16

const (
	flagIslandProcessed bodyFlags = 1 << iota
	flagAwake
	flagAutoSleep
	flagFixedRotation
	flagBullet
	flagEnabled
	flagToiProcessed
)

// Body is a rigid frame: a world transform, velocity expressed at its
// center of mass, accumulated force/torque, mass properties, and the
// intrusive lists of fixtures/joint edges/contact edges attached to it.
type Body struct {
	id    entityID
	kind  BodyType
	flags bodyFlags

	world *World

	xf    math32.Transform2
	sweep shapes.Sweep

	linearVelocity  math32.Vector2
	angularVelocity float32

	force  math32.Vector2
	torque float32

	mass, invMass float32
	I, invI       float32
	localCenter   math32.Vector2

	linearDamping  float32
	angularDamping float32
	gravityScale   float32

	sleepTime float32

	fixtureList  *Fixture
	fixtureCount int

	jointList   *JointEdge
	contactList *ContactEdge

	prev, next *Body

	UserData interface{}
}

// ID returns this body's debug correlation identifier.
func (b *Body) ID() string { return b.id.String() }

// Type returns the body's kind.
func (b *Body) Type() BodyType { return b.kind }

// Transform returns the current body-origin transform.
func (b *Body) Transform() math32.Transform2 { return b.xf }

// Position returns the body origin's world position.
func (b *Body) Position() math32.Vector2 { return b.xf.Pos }

// Angle returns the current orientation in radians.
func (b *Body) Angle() float32 { return b.sweep.A }

// WorldCenter returns the center of mass in world coordinates.
func (b *Body) WorldCenter() math32.Vector2 { return b.sweep.C }

// LocalCenter returns the center of mass in the body's local frame.
func (b *Body) LocalCenter() math32.Vector2 { return b.localCenter }

// LinearVelocity returns the velocity of the center of mass.
func (b *Body) LinearVelocity() math32.Vector2 { return b.linearVelocity }

// SetLinearVelocity sets the velocity of the center of mass. No-op on static
// bodies.
func (b *Body) SetLinearVelocity(v math32.Vector2) {

	if b.kind == StaticBody {
		return
	}
	if v.LengthSq() > 0 {
		b.setAwake(true)
	}
	b.linearVelocity = v
}

// AngularVelocity returns the angular velocity in rad/s.
func (b *Body) AngularVelocity() float32 { return b.angularVelocity }

// SetAngularVelocity sets the angular velocity. No-op on static bodies.
func (b *Body) SetAngularVelocity(w float32) {

	if b.kind == StaticBody {
		return
	}
	if w*w > 0 {
		b.setAwake(true)
	}
	b.angularVelocity = w
}

// Mass returns the body's total mass in kg.
func (b *Body) Mass() float32 { return b.mass }

// InverseMass returns 1/mass, 0 for static and kinematic bodies.
func (b *Body) InverseMass() float32 { return b.invMass }

// Inertia returns the rotational inertia about the center of mass.
func (b *Body) Inertia() float32 { return b.I }

// IsAwake reports whether the body participates in the next solve.
func (b *Body) IsAwake() bool { return b.flags&flagAwake != 0 }

// IsEnabled reports whether the body has broad-phase proxies and solves.
func (b *Body) IsEnabled() bool { return b.flags&flagEnabled != 0 }

// IsBullet reports whether the body is CCD'd against other dynamic bodies.
func (b *Body) IsBullet() bool { return b.flags&flagBullet != 0 }

// SetBullet toggles continuous collision detection against other dynamic
// bodies. Static-body sweeps are always treated conservatively regardless.
func (b *Body) SetBullet(flag bool) {

	if flag {
		b.flags |= flagBullet
	} else {
		b.flags &^= flagBullet
	}
}

// IsFixedRotation reports whether the body's rotational inertia is locked.
func (b *Body) IsFixedRotation() bool { return b.flags&flagFixedRotation != 0 }

// SetFixedRotation locks or unlocks rotation and recomputes mass data.
func (b *Body) SetFixedRotation(flag bool) {

	already := b.flags&flagFixedRotation != 0
	if already == flag {
		return
	}
	if flag {
		b.flags |= flagFixedRotation
	} else {
		b.flags &^= flagFixedRotation
	}
	b.angularVelocity = 0
	b.ResetMassData()
}

func (b *Body) setAwake(flag bool) {

	if flag {
		if b.flags&flagAwake == 0 {
			b.flags |= flagAwake
			b.sleepTime = 0
		}
	} else {
		b.flags &^= flagAwake
		b.sleepTime = 0
		b.linearVelocity.Set(0, 0)
		b.angularVelocity = 0
		b.force.Set(0, 0)
		b.torque = 0
	}
}

// SetAwake wakes or puts the body to sleep directly. Static bodies ignore
// wake requests (they are never part of a DFS root).
func (b *Body) SetAwake(flag bool) {

	if b.kind == StaticBody {
		return
	}
	b.setAwake(flag)
}

func (b *Body) allowSleep() bool { return b.flags&flagAutoSleep != 0 }

// SetAllowSleep controls whether this body can be put to sleep by the
// solver's sleep evaluation.
func (b *Body) SetAllowSleep(flag bool) {

	if flag {
		b.flags |= flagAutoSleep
	} else {
		b.flags &^= flagAutoSleep
		b.setAwake(true)
	}
}

// ApplyForce applies a force at a world point, waking the body if asleep.
func (b *Body) ApplyForce(force, point math32.Vector2, wake bool) {

	if b.kind != DynamicBody {
		return
	}
	if wake && !b.IsAwake() {
		b.setAwake(true)
	}
	if !b.IsAwake() {
		return
	}
	b.force.Add(&force)
	var r math32.Vector2
	r.SubVectors(&point, &b.sweep.C)
	b.torque += r.Cross(&force)
}

// ApplyForceToCenter applies a force through the center of mass, so it
// contributes no torque.
func (b *Body) ApplyForceToCenter(force math32.Vector2, wake bool) {

	if b.kind != DynamicBody {
		return
	}
	if wake && !b.IsAwake() {
		b.setAwake(true)
	}
	if !b.IsAwake() {
		return
	}
	b.force.Add(&force)
}

// ApplyTorque applies a torque about the center of mass.
func (b *Body) ApplyTorque(torque float32, wake bool) {

	if b.kind != DynamicBody {
		return
	}
	if wake && !b.IsAwake() {
		b.setAwake(true)
	}
	if !b.IsAwake() {
		return
	}
	b.torque += torque
}

// ApplyLinearImpulse applies an instantaneous impulse at a world point.
func (b *Body) ApplyLinearImpulse(impulse, point math32.Vector2, wake bool) {

	if b.kind != DynamicBody {
		return
	}
	if wake && !b.IsAwake() {
		b.setAwake(true)
	}
	if !b.IsAwake() {
		return
	}
	var scaled math32.Vector2
	scaled.Copy(&impulse).MultiplyScalar(b.invMass)
	b.linearVelocity.Add(&scaled)

	var r math32.Vector2
	r.SubVectors(&point, &b.sweep.C)
	b.angularVelocity += b.invI * r.Cross(&impulse)
}

// ApplyAngularImpulse applies an instantaneous angular impulse.
func (b *Body) ApplyAngularImpulse(impulse float32, wake bool) {

	if b.kind != DynamicBody {
		return
	}
	if wake && !b.IsAwake() {
		b.setAwake(true)
	}
	if !b.IsAwake() {
		return
	}
	b.angularVelocity += b.invI * impulse
}

// WorldPoint transforms a body-local point into world coordinates.
func (b *Body) WorldPoint(local math32.Vector2) math32.Vector2 {

	var out math32.Vector2
	b.xf.TransformPoint(&local, &out)
	return out
}

// LocalPoint transforms a world point into this body's local frame.
func (b *Body) LocalPoint(world math32.Vector2) math32.Vector2 {

	var out math32.Vector2
	b.xf.InvTransformPoint(&world, &out)
	return out
}

// WorldVector rotates a local direction vector into world space.
func (b *Body) WorldVector(local math32.Vector2) math32.Vector2 {

	var out math32.Vector2
	b.xf.TransformVector(&local, &out)
	return out
}

// LinearVelocityFromWorldPoint returns the velocity of the material point
// of the body that is currently at the given world position.
func (b *Body) LinearVelocityFromWorldPoint(worldPoint math32.Vector2) math32.Vector2 {

	var r math32.Vector2
	r.SubVectors(&worldPoint, &b.sweep.C)
	var perp math32.Vector2
	perp.Set(-b.angularVelocity*r.Y, b.angularVelocity*r.X)
	perp.Add(&b.linearVelocity)
	return perp
}

// FixtureList returns the head of this body's intrusive fixture list.
func (b *Body) FixtureList() *Fixture { return b.fixtureList }

// JointList returns the head of this body's intrusive joint edge list.
func (b *Body) JointList() *JointEdge { return b.jointList }

// ContactList returns the head of this body's intrusive contact edge list.
func (b *Body) ContactList() *ContactEdge { return b.contactList }

// Next returns the next body in the world's creation-ordered list.
func (b *Body) Next() *Body { return b.next }

func (b *Body) synchronizeTransform() {

	b.xf = b.sweep.GetTransform(1)
}

// synchronizeFixtures recomputes broad-phase proxy AABBs after the body's
// transform has changed, using the swept motion for a fattened AABB.
func (b *Body) synchronizeFixtures() {

	xf1 := b.sweep.GetTransform(0)
	for f := b.fixtureList; f != nil; f = f.next {
		f.synchronize(b.world.contactManager.broadPhase, xf1, b.xf)
	}
}

// ResetMassData recomputes mass, inverse mass, rotational inertia and the
// local center of mass from the attached fixtures' density. Static and
// kinematic bodies always end up with zero mass/inertia. A Dynamic body
// with no fixtures, or whose fixtures sum to zero mass, gets the
// canonical fallback of 1 kg at the origin.
func (b *Body) ResetMassData() {

	b.mass = 0
	b.invMass = 0
	b.I = 0
	b.invI = 0
	b.localCenter.Set(0, 0)

	if b.kind == StaticBody || b.kind == KinematicBody {
		b.sweep.C0 = b.xf.Pos
		b.sweep.C = b.xf.Pos
		b.sweep.A0 = b.sweep.A
		return
	}

	var center math32.Vector2
	for f := b.fixtureList; f != nil; f = f.next {
		if f.density == 0 {
			continue
		}
		md := f.massData()
		b.mass += md.Mass
		var weighted math32.Vector2
		weighted.Copy(&md.Center).MultiplyScalar(md.Mass)
		center.Add(&weighted)
		b.I += md.I
	}

	if b.mass > 0 {
		b.invMass = 1 / b.mass
		center.MultiplyScalar(b.invMass)
	} else {
		b.mass = 1
		b.invMass = 1
	}

	if b.I > 0 && b.flags&flagFixedRotation == 0 {
		b.I -= b.mass * center.LengthSq()
		b.invI = 1 / b.I
	} else {
		b.I = 0
		b.invI = 0
	}

	oldCenter := b.sweep.C
	b.localCenter = center
	b.xf.TransformPoint(&center, &b.sweep.C)
	b.sweep.C0 = b.sweep.C

	var delta, rotDelta math32.Vector2
	delta.SubVectors(&b.sweep.C, &oldCenter)
	rotDelta.Set(-b.angularVelocity*delta.Y, b.angularVelocity*delta.X)
	b.linearVelocity.Add(&rotDelta)
}

// SetMassData overrides the computed mass data with explicit values,
// bypassing density-driven computation (e.g. for a known compound shape).
func (b *Body) SetMassData(md shapes.MassData) {

	if b.kind != DynamicBody {
		return
	}
	b.mass = md.Mass
	if b.mass <= 0 {
		b.mass = 1
	}
	b.invMass = 1 / b.mass

	if md.I > 0 && b.flags&flagFixedRotation == 0 {
		b.I = md.I - b.mass*md.Center.LengthSq()
		b.invI = 1 / b.I
	} else {
		b.I = 0
		b.invI = 0
	}

	oldCenter := b.sweep.C
	b.localCenter = md.Center
	b.xf.TransformPoint(&md.Center, &b.sweep.C)
	b.sweep.C0 = b.sweep.C

	var delta, rotDelta math32.Vector2
	delta.SubVectors(&b.sweep.C, &oldCenter)
	rotDelta.Set(-b.angularVelocity*delta.Y, b.angularVelocity*delta.X)
	b.linearVelocity.Add(&rotDelta)
}

// SetTransform teleports the body to the given position/angle, bypassing
// the velocity solver. It is undefined behavior to call this while the
// world is locked; callers should check World.IsLocked first.
func (b *Body) SetTransform(pos math32.Vector2, angle float32) {

	b.xf.Set(pos, angle)
	b.sweep.A0 = angle
	b.sweep.A = angle
	b.xf.TransformPoint(&b.localCenter, &b.sweep.C)
	b.sweep.C0 = b.sweep.C

	if b.world != nil {
		b.synchronizeFixtures()
	}
}

func (b *Body) shouldCollide(other *Body) bool {

	if b.kind != DynamicBody && other.kind != DynamicBody {
		return false
	}
	return true
}
