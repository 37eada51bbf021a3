// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// MaxManifoldPoints bounds the number of contact points a single manifold
// can carry (one polygon-polygon contact needs at most two in 2D).
const MaxManifoldPoints = 2

// FeatureType distinguishes a vertex feature from a face feature when
// identifying which pair of geometric features produced a contact point.
type FeatureType uint8

const (
	FeatureVertex FeatureType = iota
	FeatureFace
)

// ContactFeature packs the persistent identity of a contact point: which
// features of shape A and shape B produced it. Matching ids across steps
// is how warm-starting finds the right impulse to reuse.
type ContactFeature struct {
	IndexA, IndexB uint8
	TypeA, TypeB   FeatureType
}

// ContactID is ContactFeature viewed as a single comparable key.
type ContactID = ContactFeature

// ManifoldType distinguishes how the manifold's LocalPoint/LocalNormal
// should be interpreted.
type ManifoldType int

const (
	ManifoldCircles ManifoldType = iota
	ManifoldFaceA
	ManifoldFaceB
)

// ManifoldPoint is one contact point in a manifold, in the local frame of
// whichever shape ManifoldType designates as the reference face (or shape A
// for ManifoldCircles). NormalImpulse/TangentImpulse are filled in and
// persisted by the solver across steps for warm-starting; narrow-phase
// code leaves them zero.
type ManifoldPoint struct {
	LocalPoint     math32.Vector2
	NormalImpulse  float32
	TangentImpulse float32
	ID             ContactID
}

// Manifold is the narrow-phase's output: up to two points sharing one
// normal, approximating the contact region between two fixtures.
type Manifold struct {
	Type        ManifoldType
	LocalNormal math32.Vector2
	LocalPoint  math32.Vector2
	Points      []ManifoldPoint
}

// WorldManifold is a manifold evaluated into world space for a particular
// pair of transforms, ready for the solver's Jacobians.
type WorldManifold struct {
	Normal      math32.Vector2
	Points      []math32.Vector2
	Separations []float32
}

// ComputeWorldManifold evaluates m into world space given the two shapes'
// radii and transforms.
func ComputeWorldManifold(m *Manifold, xfA math32.Transform2, radiusA float32, xfB math32.Transform2, radiusB float32) WorldManifold {

	var wm WorldManifold
	if len(m.Points) == 0 {
		return wm
	}

	switch m.Type {
	case ManifoldCircles:
		var pointA, pointB math32.Vector2
		xfA.TransformPoint(&m.LocalPoint, &pointA)
		xfB.TransformPoint(&m.Points[0].LocalPoint, &pointB)
		normal := pointB
		normal.Sub(&pointA)
		if normal.LengthSq() > 1e-18 {
			normal.Normalize()
		} else {
			normal.Set(1, 0)
		}
		wm.Normal = normal
		var cA, cB math32.Vector2
		cA.Copy(&normal).MultiplyScalar(radiusA).Add(&pointA)
		cB.Copy(&normal).MultiplyScalar(-radiusB).Add(&pointB)
		var mid math32.Vector2
		mid.AddVectors(&cA, &cB).MultiplyScalar(0.5)
		wm.Points = []math32.Vector2{mid}
		sep := pointB.DistanceTo(&pointA) - radiusA - radiusB
		wm.Separations = []float32{sep}

	default:
		var refXf, otherXf math32.Transform2
		var refRadius, otherRadius float32
		flip := m.Type == ManifoldFaceB
		if !flip {
			refXf, otherXf = xfA, xfB
			refRadius, otherRadius = radiusA, radiusB
		} else {
			refXf, otherXf = xfB, xfA
			refRadius, otherRadius = radiusB, radiusA
		}

		var normal math32.Vector2
		refXf.TransformVector(&m.LocalNormal, &normal)
		var planePoint math32.Vector2
		refXf.TransformPoint(&m.LocalPoint, &planePoint)

		wm.Points = make([]math32.Vector2, len(m.Points))
		wm.Separations = make([]float32, len(m.Points))
		for i, p := range m.Points {
			var clipPoint math32.Vector2
			otherXf.TransformPoint(&p.LocalPoint, &clipPoint)

			var d math32.Vector2
			d.SubVectors(&clipPoint, &planePoint)
			sep := d.Dot(&normal) - refRadius - otherRadius

			var cA, cB math32.Vector2
			cA.Copy(&clipPoint)
			var off math32.Vector2
			off.Copy(&normal).MultiplyScalar(refRadius - d.Dot(&normal))
			cA.Add(&off)
			cB.Copy(&clipPoint).Add(cB.Copy(&normal).MultiplyScalar(-otherRadius))
			var mid math32.Vector2
			mid.AddVectors(&cA, &cB).MultiplyScalar(0.5)

			wm.Points[i] = mid
			wm.Separations[i] = sep
		}
		if flip {
			normal.Negate()
		}
		wm.Normal = normal
	}
	return wm
}

// PointState classifies how a manifold point changed relative to the
// previous step's manifold, used to fire Begin/EndContact precisely and to
// decide which warm-start impulse a point should inherit.
type PointState int

const (
	PointNull PointState = iota
	PointAdd
	PointPersist
	PointRemove
)

// GetPointStates classifies every point of the old and new manifolds.
func GetPointStates(old, cur *Manifold) (stateOld, stateNew []PointState) {

	stateOld = make([]PointState, len(old.Points))
	stateNew = make([]PointState, len(cur.Points))

	for i := range old.Points {
		stateOld[i] = PointRemove
		for j := range cur.Points {
			if cur.Points[j].ID == old.Points[i].ID {
				stateOld[i] = PointPersist
				break
			}
		}
	}
	for j := range cur.Points {
		stateNew[j] = PointAdd
		for i := range old.Points {
			if old.Points[i].ID == cur.Points[j].ID {
				stateNew[j] = PointPersist
				break
			}
		}
	}
	return
}
