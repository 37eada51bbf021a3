// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Rot represents a 2D rotation as a sine/cosine pair. Keeping both
// components avoids a trigonometric call on every use and keeps the
// integration of angular velocity numerically well-behaved.
type Rot struct {
	S float32
	C float32
}

// NewRotFromAngle creates and returns a pointer to a new Rot representing
// the given angle in radians.
func NewRotFromAngle(angle float32) *Rot {

	r := new(Rot)
	r.SetAngle(angle)
	return r
}

// NewRotIdentity creates and returns a pointer to a new identity Rot (zero angle).
func NewRotIdentity() *Rot {

	return &Rot{S: 0, C: 1}
}

// SetAngle sets this rotation from an angle in radians.
// Returns the pointer to this updated rotation.
func (r *Rot) SetAngle(angle float32) *Rot {

	r.S = Sin(angle)
	r.C = Cos(angle)
	return r
}

// SetIdentity sets this rotation to the identity rotation.
// Returns the pointer to this updated rotation.
func (r *Rot) SetIdentity() *Rot {

	r.S = 0
	r.C = 1
	return r
}

// Angle returns the angle in radians represented by this rotation.
func (r *Rot) Angle() float32 {

	return Atan2(r.S, r.C)
}

// Copy copies other into this rotation. Returns the pointer to this updated rotation.
func (r *Rot) Copy(other *Rot) *Rot {

	r.S = other.S
	r.C = other.C
	return r
}

// Mul sets this rotation to the composition q * s (apply s first, then q).
// Returns the pointer to this updated rotation.
func (r *Rot) Mul(q, s *Rot) *Rot {

	newS := q.S*s.C + q.C*s.S
	newC := q.C*s.C - q.S*s.S
	r.S = newS
	r.C = newC
	return r
}

// MulT sets this rotation to the inverse composition qT * r: the relative
// rotation that takes q's frame to s's frame. Returns the pointer to this updated rotation.
func (r *Rot) MulT(q, s *Rot) *Rot {

	newS := q.C*s.S - q.S*s.C
	newC := q.C*s.C + q.S*s.S
	r.S = newS
	r.C = newC
	return r
}

// MulVec2 rotates vector v by this rotation, storing the result in optionalTarget
// if provided (and returning it), or a new vector otherwise.
func (r *Rot) MulVec2(v *Vector2, optionalTarget *Vector2) *Vector2 {

	var result *Vector2
	if optionalTarget == nil {
		result = NewVec2()
	} else {
		result = optionalTarget
	}
	x := r.C*v.X - r.S*v.Y
	y := r.S*v.X + r.C*v.Y
	result.X = x
	result.Y = y
	return result
}

// MulTVec2 rotates vector v by the inverse of this rotation, storing the result
// in optionalTarget if provided (and returning it), or a new vector otherwise.
func (r *Rot) MulTVec2(v *Vector2, optionalTarget *Vector2) *Vector2 {

	var result *Vector2
	if optionalTarget == nil {
		result = NewVec2()
	} else {
		result = optionalTarget
	}
	x := r.C*v.X + r.S*v.Y
	y := -r.S*v.X + r.C*v.Y
	result.X = x
	result.Y = y
	return result
}
