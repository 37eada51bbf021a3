// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physerr"
	"github.com/g3n/rb2d/physics/shapes"
)

func newDynamicBox(t *testing.T, w *World, x, y float32) *Body {

	def := NewBodyDef()
	def.Type = DynamicBody
	def.Position = math32.Vector2{X: x, Y: y}
	b, err := w.CreateBody(def)
	require.NoError(t, err)
	_, err = b.CreateFixture(boxFixtureDef())
	require.NoError(t, err)
	return b
}

func boxFixtureDef() FixtureDef {

	fdef := NewFixtureDef(shapes.NewBox(0.5, 0.5))
	fdef.Density = 1
	return fdef
}

func TestWorld_LockedRejectsMutation(t *testing.T) {

	w := NewWorld(math32.Vector2{X: 0, Y: -10})
	a := newDynamicBox(t, w, 0, 5)
	b := newDynamicBox(t, w, 0, 0)

	w.locked = true
	defer func() { w.locked = false }()

	_, err := w.CreateBody(NewBodyDef())
	assert.True(t, physerr.Is(err, physerr.InvalidState))

	assert.True(t, physerr.Is(w.DestroyBody(a), physerr.InvalidState))

	_, err = w.CreateJoint(JointDef{Kind: DistanceJoint, BodyA: a, BodyB: b})
	assert.True(t, physerr.Is(err, physerr.InvalidState))

	_, err = a.CreateFixture(boxFixtureDef())
	assert.True(t, physerr.Is(err, physerr.InvalidState))

	assert.True(t, w.IsLocked())
}

func TestWorld_CreateJointRejectsSelfLoop(t *testing.T) {

	w := NewWorld(math32.Vector2{})
	a := newDynamicBox(t, w, 0, 0)

	_, err := w.CreateJoint(JointDef{Kind: DistanceJoint, BodyA: a, BodyB: a})
	require.Error(t, err)
	assert.True(t, physerr.Is(err, physerr.InvalidArgument))
}

func TestWorld_DestroyBodyCascadesToJointsAndFixtures(t *testing.T) {

	w := NewWorld(math32.Vector2{})
	a := newDynamicBox(t, w, 0, 0)
	b := newDynamicBox(t, w, 2, 0)

	_, err := w.CreateJoint(JointDef{Kind: DistanceJoint, BodyA: a, BodyB: b, Length: 2})
	require.NoError(t, err)
	require.Equal(t, 1, w.JointCount())

	require.NoError(t, w.DestroyBody(a))

	assert.Equal(t, 0, w.JointCount())
	assert.Equal(t, 1, w.BodyCount())
	assert.Nil(t, b.JointList())
}

func TestBody_StaticHasZeroMassAndVelocity(t *testing.T) {

	w := NewWorld(math32.Vector2{})
	def := NewBodyDef()
	def.Type = StaticBody
	ground, err := w.CreateBody(def)
	require.NoError(t, err)
	_, err = ground.CreateFixture(boxFixtureDef())
	require.NoError(t, err)

	assert.Equal(t, float32(0), ground.Mass())
	assert.Equal(t, float32(0), ground.InverseMass())

	ground.SetLinearVelocity(math32.Vector2{X: 5, Y: 5})
	ground.SetAngularVelocity(3)
	assert.Equal(t, math32.Vector2{X: 0, Y: 0}, ground.LinearVelocity())
	assert.Equal(t, float32(0), ground.AngularVelocity())
}

func TestBody_DynamicWithZeroDensityFallsBackToUnitMass(t *testing.T) {

	w := NewWorld(math32.Vector2{})
	def := NewBodyDef()
	def.Type = DynamicBody
	b, err := w.CreateBody(def)
	require.NoError(t, err)

	fdef := NewFixtureDef(shapes.NewBox(0.5, 0.5))
	_, err = b.CreateFixture(fdef) // density left at zero
	require.NoError(t, err)
	b.ResetMassData()

	assert.Equal(t, float32(1), b.Mass())
	assert.Equal(t, float32(0), b.Inertia())
}

func TestBody_FixedRotationZeroesInertia(t *testing.T) {

	w := NewWorld(math32.Vector2{})
	b := newDynamicBox(t, w, 0, 0)
	require.Greater(t, b.Inertia(), float32(0))

	b.SetFixedRotation(true)
	assert.Equal(t, float32(0), b.Inertia())
	assert.True(t, b.IsFixedRotation())
}
