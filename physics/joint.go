// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
)

// JointKind tags which of the eleven joint variants a Joint is, selecting
// its small per-kind dispatch table (init/solve-velocity/solve-position)
// the way a vtable would in a non-tagged-union design.
type JointKind int

const (
	DistanceJoint JointKind = iota
	RevoluteJoint
	PrismaticJoint
	PulleyJoint
	GearJoint
	MouseJoint
	WheelJoint
	WeldJoint
	FrictionJoint
	RopeJoint
	MotorJoint
)

func (k JointKind) String() string {

	names := [...]string{"Distance", "Revolute", "Prismatic", "Pulley", "Gear",
		"Mouse", "Wheel", "Weld", "Friction", "Rope", "Motor"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// JointDef carries every kind's construction parameters; only the fields
// relevant to Kind are consulted, matching the "tagged variant" design the
// world's CreateJoint factory dispatches on.
type JointDef struct {
	Kind             JointKind
	BodyA, BodyB     *Body
	CollideConnected bool
	UserData         interface{}

	LocalAnchorA, LocalAnchorB math32.Vector2
	LocalAxisA                 math32.Vector2
	ReferenceAngle             float32

	Length        float32
	FrequencyHz   float32
	DampingRatio  float32

	EnableLimit           bool
	LowerLimit, UpperLimit float32
	EnableMotor           bool
	MotorSpeed            float32
	MaxMotorTorque        float32
	MaxMotorForce         float32

	GroundAnchorA, GroundAnchorB math32.Vector2
	Ratio                        float32
	Joint1, Joint2               *Joint

	Target   math32.Vector2
	MaxForce float32

	MaxLength float32

	MaxTorque        float32
	LinearOffset     math32.Vector2
	AngularOffset    float32
	CorrectionFactor float32
}

// Joint constrains the relative motion of two bodies (one may be static).
// Solver state (effective masses, biases, accumulated impulses) lives
// alongside the per-kind parameters in the same struct rather than a
// separate vtable, per the flat tagged-variant layout the solver favors
// for cache locality across an island's joint array.
type Joint struct {
	id   entityID
	kind JointKind

	bodyA, bodyB     *Body
	collideConnected bool
	UserData         interface{}

	edgeA, edgeB JointEdge

	prev, next *Joint

	localAnchorA, localAnchorB math32.Vector2
	localAxisA                 math32.Vector2
	referenceAngle             float32

	length       float32
	frequencyHz  float32
	dampingRatio float32

	enableLimit            bool
	lowerLimit, upperLimit float32
	enableMotor            bool
	motorSpeed             float32
	maxMotorTorque         float32
	maxMotorForce          float32

	groundAnchorA, groundAnchorB math32.Vector2
	ratio                        float32
	joint1, joint2               *Joint
	constant                     float32

	target   math32.Vector2
	maxForce float32

	maxLength float32

	maxTorque        float32
	linearOffset     math32.Vector2
	angularOffset    float32
	correctionFactor float32

	// Shared solver scratch, recomputed each InitVelocityConstraints.
	indexA, indexB         int
	localCenterA, localCenterB math32.Vector2
	invMassA, invMassB     float32
	invIA, invIB           float32

	rA, rB           math32.Vector2
	mass             math32.Mat22
	axialMass        float32
	impulse          math32.Vector2
	axialImpulse     float32
	motorImpulse     float32
	lowerImpulse     float32
	upperImpulse     float32
	angularImpulse   float32
	gamma, bias      float32
	axis, perp       math32.Vector2
	s1, s2, a1, a2   float32
	k3               math32.Mat22 // point-to-point mass for revolute/weld
	limitState       limitState

	// Gear joint scratch: the "ground-side" body of each coupled sub-joint
	// and its island index, plus each sub-joint's reference angle.
	bodyC, bodyD           *Body
	indexC, indexD         int
	gearRefAngleA, gearRefAngleB float32

	// Wheel joint scratch: perpendicular-constraint effective mass (the
	// spring's own mass lives in axialMass, shared with distance/prismatic).
	perpMass float32
}

// limitState tags which side (if any) of a joint's angular or translational
// limit is currently active, selecting which rows of its velocity/position
// solve are clamped one-sided versus solved as an equality.
type limitState int8

const (
	limitInactive limitState = iota
	limitAtLower
	limitAtUpper
	limitEqual
)

// ID returns this joint's debug correlation identifier.
func (j *Joint) ID() string { return j.id.String() }

// Kind returns which of the eleven variants this joint is.
func (j *Joint) Kind() JointKind { return j.kind }

// BodyA returns the first attached body.
func (j *Joint) BodyA() *Body { return j.bodyA }

// BodyB returns the second attached body.
func (j *Joint) BodyB() *Body { return j.bodyB }

// CollideConnected reports whether the two bodies still collide with each
// other despite being jointed.
func (j *Joint) CollideConnected() bool { return j.collideConnected }

// Next returns the next joint in the world's creation-ordered list.
func (j *Joint) Next() *Joint { return j.next }

// JointEdge links a Body to one Joint it participates in, as one node of
// the body's intrusive joint-edge list.
type JointEdge struct {
	Other *Body
	Joint *Joint
	prev, next *JointEdge
}

func newJoint(def JointDef) *Joint {

	j := &Joint{
		id:               newEntityID(),
		kind:             def.Kind,
		bodyA:            def.BodyA,
		bodyB:            def.BodyB,
		collideConnected: def.CollideConnected,
		UserData:         def.UserData,
		localAnchorA:     def.LocalAnchorA,
		localAnchorB:     def.LocalAnchorB,
		localAxisA:       def.LocalAxisA,
		referenceAngle:   def.ReferenceAngle,
		length:           def.Length,
		frequencyHz:      def.FrequencyHz,
		dampingRatio:     def.DampingRatio,
		enableLimit:      def.EnableLimit,
		lowerLimit:       def.LowerLimit,
		upperLimit:       def.UpperLimit,
		enableMotor:      def.EnableMotor,
		motorSpeed:       def.MotorSpeed,
		maxMotorTorque:   def.MaxMotorTorque,
		maxMotorForce:    def.MaxMotorForce,
		groundAnchorA:    def.GroundAnchorA,
		groundAnchorB:    def.GroundAnchorB,
		ratio:            def.Ratio,
		joint1:           def.Joint1,
		joint2:           def.Joint2,
		target:           def.Target,
		maxForce:         def.MaxForce,
		maxLength:        def.MaxLength,
		maxTorque:        def.MaxTorque,
		linearOffset:     def.LinearOffset,
		angularOffset:    def.AngularOffset,
		correctionFactor: def.CorrectionFactor,
	}
	if j.ratio == 0 {
		j.ratio = 1
	}

	// GearJoint couples two other (revolute-only, see joint_gear.go) joints
	// through their shared "ground-side" bodies, resolved once here rather
	// than re-derived every step.
	if j.kind == GearJoint && j.joint1 != nil && j.joint2 != nil &&
		j.joint1.kind == RevoluteJoint && j.joint2.kind == RevoluteJoint {
		j.bodyC = j.joint1.bodyA
		j.bodyD = j.joint2.bodyA
		j.gearRefAngleA = j.joint1.referenceAngle
		j.gearRefAngleB = j.joint2.referenceAngle
	}
	return j
}

// rotVec rotates v by q, returning a new vector - a value-returning
// convenience wrapper around Rot.MulVec2's pointer-target form.
func rotVec(q math32.Rot, v math32.Vector2) math32.Vector2 {

	return *q.MulVec2(&v, nil)
}

// crossWR computes the angular-times-radius cross product w x r, the
// tangential velocity contribution of an angular velocity w at offset r.
func crossWR(w float32, r math32.Vector2) math32.Vector2 {

	return math32.Vector2{X: -w * r.Y, Y: w * r.X}
}

// prepare resolves this joint's bodies to island-local indices and solver
// coefficients, and returns each body's current rotation - the common
// first step of every joint kind's initVelocityConstraints.
func (j *Joint) prepare(step stepContext) (qA, qB math32.Rot) {

	j.indexA = step.bodyIndex(j.bodyA)
	j.indexB = step.bodyIndex(j.bodyB)
	j.localCenterA = j.bodyA.localCenter
	j.localCenterB = j.bodyB.localCenter
	j.invMassA = j.bodyA.invMass
	j.invMassB = j.bodyB.invMass
	j.invIA = j.bodyA.invI
	j.invIB = j.bodyB.invI

	qA.SetAngle(step.states[j.indexA].a)
	qB.SetAngle(step.states[j.indexB].a)
	return
}

// initVelocityConstraints dispatches to the per-kind setup routine, run
// once per island solve before the velocity iteration loop.
func (j *Joint) initVelocityConstraints(step stepContext) {

	switch j.kind {
	case DistanceJoint:
		j.initDistance(step)
	case RevoluteJoint:
		j.initRevolute(step)
	case PrismaticJoint:
		j.initPrismatic(step)
	case PulleyJoint:
		j.initPulley(step)
	case GearJoint:
		j.initGear(step)
	case MouseJoint:
		j.initMouse(step)
	case WheelJoint:
		j.initWheel(step)
	case WeldJoint:
		j.initWeld(step)
	case FrictionJoint:
		j.initFriction(step)
	case RopeJoint:
		j.initRope(step)
	case MotorJoint:
		j.initMotor(step)
	}
}

func (j *Joint) solveVelocityConstraints(step stepContext) {

	switch j.kind {
	case DistanceJoint:
		j.solveVelocityDistance(step)
	case RevoluteJoint:
		j.solveVelocityRevolute(step)
	case PrismaticJoint:
		j.solveVelocityPrismatic(step)
	case PulleyJoint:
		j.solveVelocityPulley(step)
	case GearJoint:
		j.solveVelocityGear(step)
	case MouseJoint:
		j.solveVelocityMouse(step)
	case WheelJoint:
		j.solveVelocityWheel(step)
	case WeldJoint:
		j.solveVelocityWeld(step)
	case FrictionJoint:
		j.solveVelocityFriction(step)
	case RopeJoint:
		j.solveVelocityRope(step)
	case MotorJoint:
		j.solveVelocityMotor(step)
	}
}

// solvePositionConstraints returns true if the joint's position error is
// within tolerance, used by the island solver to early-exit its position
// iteration loop once every joint and contact reports converged.
func (j *Joint) solvePositionConstraints(step stepContext) bool {

	switch j.kind {
	case DistanceJoint:
		return j.solvePositionDistance(step)
	case RevoluteJoint:
		return j.solvePositionRevolute(step)
	case PrismaticJoint:
		return j.solvePositionPrismatic(step)
	case PulleyJoint:
		return j.solvePositionPulley(step)
	case GearJoint:
		return j.solvePositionGear(step)
	case MouseJoint:
		return true // soft constraint only, no position correction
	case WheelJoint:
		return j.solvePositionWheel(step)
	case WeldJoint:
		return j.solvePositionWeld(step)
	case FrictionJoint:
		return true
	case RopeJoint:
		return j.solvePositionRope(step)
	case MotorJoint:
		return true
	}
	return true
}
