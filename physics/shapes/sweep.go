// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// Sweep describes a body's swept motion over one step: the center-of-mass
// position and angle at the start (C0/A0) and end (C/A) of the step, plus
// the local center used to reconstruct the origin transform at any
// fraction in between.
type Sweep struct {
	LocalCenter math32.Vector2
	C0, C       math32.Vector2
	A0, A       float32
}

// GetTransform interpolates this sweep at fraction beta in [0,1] and
// returns the body-origin transform (not the center-of-mass transform).
func (s *Sweep) GetTransform(beta float32) math32.Transform2 {

	var xf math32.Transform2
	var c math32.Vector2
	c.Copy(&s.C0).MultiplyScalar(1 - beta)
	var c1 math32.Vector2
	c1.Copy(&s.C).MultiplyScalar(beta)
	c.Add(&c1)

	angle := (1-beta)*s.A0 + beta*s.A
	xf.Rot.SetAngle(angle)

	var rotatedCenter math32.Vector2
	xf.Rot.MulVec2(&s.LocalCenter, &rotatedCenter)
	xf.Pos.SubVectors(&c, &rotatedCenter)
	return xf
}

// Advance moves this sweep's t0 forward to the given fraction alpha,
// keeping the same end state. Used after a TOI sub-step consumes part of
// the remaining time.
func (s *Sweep) Advance(alpha float32) {

	var c0, c1 math32.Vector2
	c0.Copy(&s.C0).MultiplyScalar(1 - alpha)
	c1.Copy(&s.C).MultiplyScalar(alpha)
	s.C0.AddVectors(&c0, &c1)
	s.A0 = (1-alpha)*s.A0 + alpha*s.A
}
