// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physics"
	"github.com/g3n/rb2d/physics/shapes"
)

const (
	dt     = 1.0 / 60.0
	vIters = 8
	pIters = 3
)

func stepN(w *physics.World, n int) {

	for i := 0; i < n; i++ {
		w.Step(dt, vIters, pIters)
		w.ClearForces()
	}
}

func newBoxBody(t *testing.T, w *physics.World, kind physics.BodyType, x, y float32) *physics.Body {

	def := physics.NewBodyDef()
	def.Type = kind
	def.Position = math32.Vector2{X: x, Y: y}
	b, err := w.CreateBody(def)
	require.NoError(t, err)
	fdef := physics.NewFixtureDef(shapes.NewBox(0.5, 0.5))
	fdef.Density = 1
	_, err = b.CreateFixture(fdef)
	require.NoError(t, err)
	return b
}

// Scenario 1: free fall.
func TestScenario_FreeFall(t *testing.T) {

	w := physics.NewWorld(math32.Vector2{X: 0, Y: -10})
	box := newBoxBody(t, w, physics.DynamicBody, 0, 10)

	stepN(w, 60)

	assert.InDelta(t, 5.0, box.Position().Y, 0.02)
}

// Scenario 2: resting stack falls asleep at the stacked integer heights.
func TestScenario_RestingStack(t *testing.T) {

	w := physics.NewWorld(math32.Vector2{X: 0, Y: -10})
	newBoxBody(t, w, physics.StaticBody, 0, 0)

	// Ground top face sits at y=0.5 (center 0, half-height 0.5); boxes of
	// half-height 0.5 already resting flush give integer-height centers.
	boxes := []*physics.Body{
		newBoxBody(t, w, physics.DynamicBody, 0, 1),
		newBoxBody(t, w, physics.DynamicBody, 0, 2),
		newBoxBody(t, w, physics.DynamicBody, 0, 3),
	}

	stepN(w, 120)

	for i, b := range boxes {
		assert.Falsef(t, b.IsAwake(), "box %d should be asleep", i)
		assert.InDelta(t, float64(i+1), float64(b.Position().Y), 1e-2)
	}
}

// Scenario 3: a non-bullet dynamic body tunnels through a thin static wall
// at high speed; a bullet-flagged body is caught by CCD.
func TestScenario_BulletThroughWall(t *testing.T) {

	wallDef := func(w *physics.World) {
		def := physics.NewBodyDef()
		def.Type = physics.StaticBody
		def.Position = math32.Vector2{X: 0, Y: 0}
		wall, err := w.CreateBody(def)
		require.NoError(t, err)
		fdef := physics.NewFixtureDef(shapes.NewBox(0.05, 2))
		_, err = wall.CreateFixture(fdef)
		require.NoError(t, err)
	}

	t.Run("without bullet flag the box tunnels through", func(t *testing.T) {
		w := physics.NewWorld(math32.Vector2{})
		w.SetContinuousPhysics(false)
		wallDef(w)

		def := physics.NewBodyDef()
		def.Type = physics.DynamicBody
		def.Position = math32.Vector2{X: -5, Y: 0}
		box, err := w.CreateBody(def)
		require.NoError(t, err)
		fdef := physics.NewFixtureDef(shapes.NewBox(0.1, 0.1))
		fdef.Density = 1
		_, err = box.CreateFixture(fdef)
		require.NoError(t, err)
		box.SetLinearVelocity(math32.Vector2{X: 200, Y: 0})

		stepN(w, 5)

		assert.Greater(t, box.Position().X, float32(0.15))
	})

	t.Run("with bullet flag CCD stops the box at the wall", func(t *testing.T) {
		w := physics.NewWorld(math32.Vector2{})
		wallDef(w)

		def := physics.NewBodyDef()
		def.Type = physics.DynamicBody
		def.Position = math32.Vector2{X: -5, Y: 0}
		def.Bullet = true
		box, err := w.CreateBody(def)
		require.NoError(t, err)
		fdef := physics.NewFixtureDef(shapes.NewBox(0.1, 0.1))
		fdef.Density = 1
		_, err = box.CreateFixture(fdef)
		require.NoError(t, err)
		box.SetLinearVelocity(math32.Vector2{X: 200, Y: 0})

		stepN(w, 5)

		assert.LessOrEqual(t, box.Position().X, float32(-0.05+0.2))
	})
}

// Scenario 4: a revolute-jointed disk driven by a motor rotates toward the
// target angle implied by motorSpeed * elapsed time.
func TestScenario_RevoluteMotor(t *testing.T) {

	w := physics.NewWorld(math32.Vector2{X: 0, Y: -10})

	groundDef := physics.NewBodyDef()
	groundDef.Type = physics.StaticBody
	ground, err := w.CreateBody(groundDef)
	require.NoError(t, err)

	diskDef := physics.NewBodyDef()
	diskDef.Type = physics.DynamicBody
	disk, err := w.CreateBody(diskDef)
	require.NoError(t, err)
	fdef := physics.NewFixtureDef(shapes.NewCircle(0.5))
	fdef.Density = 1
	_, err = disk.CreateFixture(fdef)
	require.NoError(t, err)

	_, err = w.CreateJoint(physics.JointDef{
		Kind:           physics.RevoluteJoint,
		BodyA:          ground,
		BodyB:          disk,
		EnableMotor:    true,
		MotorSpeed:     math32.Pi,
		MaxMotorTorque: 100,
	})
	require.NoError(t, err)

	stepN(w, 4*60)

	assert.InDelta(t, 4*math.Pi, float64(disk.Angle()), 0.05)
}

// Scenario 5: same-negative-groupIndex fixtures interpenetrate without a
// BeginContact ever firing.
func TestScenario_FilterGroupIndex(t *testing.T) {

	w := physics.NewWorld(math32.Vector2{})
	listener := &recordingListener{}
	w.SetContactListener(listener)

	mk := func(x float32) *physics.Body {
		def := physics.NewBodyDef()
		def.Type = physics.DynamicBody
		def.Position = math32.Vector2{X: x, Y: 0}
		b, err := w.CreateBody(def)
		require.NoError(t, err)
		fdef := physics.NewFixtureDef(shapes.NewCircle(1))
		fdef.Density = 1
		fdef.Filter = physics.Filter{CategoryBits: 1, MaskBits: 0xFFFF, GroupIndex: -1}
		_, err = b.CreateFixture(fdef)
		require.NoError(t, err)
		return b
	}

	a := mk(-0.5)
	b := mk(0.5)

	stepN(w, 30)

	assert.Equal(t, 0, listener.begins)
	posA, posB := a.Position(), b.Position()
	dist := posA.DistanceTo(&posB)
	assert.Less(t, dist, float32(2))
}

// Scenario 6: a sensor reports overlap without exerting any collision
// response; only gravity moves the passing body.
func TestScenario_Sensor(t *testing.T) {

	w := physics.NewWorld(math32.Vector2{X: 0, Y: -10})
	listener := &recordingListener{}
	w.SetContactListener(listener)

	sensorDef := physics.NewBodyDef()
	sensorDef.Type = physics.StaticBody
	sensor, err := w.CreateBody(sensorDef)
	require.NoError(t, err)
	sfdef := physics.NewFixtureDef(shapes.NewBox(2, 2))
	sfdef.IsSensor = true
	_, err = sensor.CreateFixture(sfdef)
	require.NoError(t, err)

	circleDef := physics.NewBodyDef()
	circleDef.Type = physics.DynamicBody
	circleDef.Position = math32.Vector2{X: 0, Y: 5}
	circle, err := w.CreateBody(circleDef)
	require.NoError(t, err)
	cfdef := physics.NewFixtureDef(shapes.NewCircle(0.2))
	cfdef.Density = 1
	_, err = circle.CreateFixture(cfdef)
	require.NoError(t, err)

	stepN(w, 120)

	assert.GreaterOrEqual(t, listener.begins, 1)
	assert.GreaterOrEqual(t, listener.ends, 1)
	// Free-fall-only motion: the sensor exerted no response, so the circle
	// should have fallen well past the sensor box instead of resting on it.
	assert.Less(t, circle.Position().Y, float32(-3))
}

type recordingListener struct {
	begins, ends int
}

func (l *recordingListener) BeginContact(c *physics.Contact)                           { l.begins++ }
func (l *recordingListener) EndContact(c *physics.Contact)                             { l.ends++ }
func (l *recordingListener) PreSolve(c *physics.Contact, old *physics.Manifold)        {}
func (l *recordingListener) PostSolve(c *physics.Contact, imp *physics.ContactImpulse) {}
