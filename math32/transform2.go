// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Transform2 represents a 2D rigid transform: a translation plus a rotation.
// It maps a point from a body's local frame into the world frame:
// world = Pos + Rot * local.
type Transform2 struct {
	Pos Vector2
	Rot Rot
}

// NewTransform2Identity creates and returns a pointer to a new identity Transform2.
func NewTransform2Identity() *Transform2 {

	t := new(Transform2)
	t.SetIdentity()
	return t
}

// SetIdentity sets this transform to zero translation and zero rotation.
// Returns the pointer to this updated transform.
func (t *Transform2) SetIdentity() *Transform2 {

	t.Pos.Set(0, 0)
	t.Rot.SetIdentity()
	return t
}

// Set sets this transform from a position and an angle in radians.
// Returns the pointer to this updated transform.
func (t *Transform2) Set(pos *Vector2, angle float32) *Transform2 {

	t.Pos.Copy(pos)
	t.Rot.SetAngle(angle)
	return t
}

// Copy copies other into this transform. Returns the pointer to this updated transform.
func (t *Transform2) Copy(other *Transform2) *Transform2 {

	t.Pos.Copy(&other.Pos)
	t.Rot.Copy(&other.Rot)
	return t
}

// TransformPoint maps a local-frame point to the world frame.
// Stores the result in optionalTarget, if provided, and also returns it.
func (t *Transform2) TransformPoint(local *Vector2, optionalTarget *Vector2) *Vector2 {

	result := t.Rot.MulVec2(local, optionalTarget)
	return result.Add(&t.Pos)
}

// InvTransformPoint maps a world-frame point into this transform's local frame.
// Stores the result in optionalTarget, if provided, and also returns it.
func (t *Transform2) InvTransformPoint(world *Vector2, optionalTarget *Vector2) *Vector2 {

	var px Vector2
	px.SubVectors(world, &t.Pos)
	return t.Rot.MulTVec2(&px, optionalTarget)
}

// TransformVector rotates (but does not translate) a local-frame direction
// vector into the world frame. Stores the result in optionalTarget, if
// provided, and also returns it.
func (t *Transform2) TransformVector(local *Vector2, optionalTarget *Vector2) *Vector2 {

	return t.Rot.MulVec2(local, optionalTarget)
}

// Mul sets this transform to the composition of applying b then a: a * b.
// Returns the pointer to this updated transform.
func (t *Transform2) Mul(a, b *Transform2) *Transform2 {

	var rotB Vector2
	a.Rot.MulVec2(&b.Pos, &rotB)
	var pos Vector2
	pos.AddVectors(&rotB, &a.Pos)
	var rot Rot
	rot.Mul(&a.Rot, &b.Rot)
	t.Pos.Copy(&pos)
	t.Rot.Copy(&rot)
	return t
}

// MulT sets this transform to the relative transform that maps frame b's
// points into frame a's local points: inverse(a) * b.
// Returns the pointer to this updated transform.
func (t *Transform2) MulT(a, b *Transform2) *Transform2 {

	var dp Vector2
	dp.SubVectors(&b.Pos, &a.Pos)
	var pos Vector2
	a.Rot.MulTVec2(&dp, &pos)
	var rot Rot
	rot.MulT(&a.Rot, &b.Rot)
	t.Pos.Copy(&pos)
	t.Rot.Copy(&rot)
	return t
}

// Mat22 is a 2x2 matrix used for the effective mass of a point-to-point
// constraint (e.g. the block solver's 2x2 system).
type Mat22 struct {
	Col1, Col2 Vector2
}

// NewMat22Identity creates and returns a pointer to a new identity Mat22.
func NewMat22Identity() *Mat22 {

	m := new(Mat22)
	m.Col1.Set(1, 0)
	m.Col2.Set(0, 1)
	return m
}

// SetZero sets all entries of this matrix to zero. Returns the pointer to this updated matrix.
func (m *Mat22) SetZero() *Mat22 {

	m.Col1.Set(0, 0)
	m.Col2.Set(0, 0)
	return m
}

// Determinant returns the determinant of this matrix.
func (m *Mat22) Determinant() float32 {

	return m.Col1.X*m.Col2.Y - m.Col2.X*m.Col1.Y
}

// Inverse computes the inverse of this matrix, storing it in optionalTarget
// if provided, and also returns it. If the matrix is singular, the zero
// matrix is returned (caller is responsible for checking degeneracy).
func (m *Mat22) Inverse(optionalTarget *Mat22) *Mat22 {

	var result *Mat22
	if optionalTarget == nil {
		result = new(Mat22)
	} else {
		result = optionalTarget
	}
	det := m.Determinant()
	if det != 0 {
		det = 1.0 / det
	}
	result.Col1.X = det * m.Col2.Y
	result.Col1.Y = -det * m.Col1.Y
	result.Col2.X = -det * m.Col2.X
	result.Col2.Y = det * m.Col1.X
	return result
}

// Solve solves the system m*x = b for x, storing the result in optionalTarget
// if provided, and also returns it.
func (m *Mat22) Solve(b *Vector2, optionalTarget *Vector2) *Vector2 {

	var result *Vector2
	if optionalTarget == nil {
		result = NewVec2()
	} else {
		result = optionalTarget
	}
	a11, a12, a21, a22 := m.Col1.X, m.Col2.X, m.Col1.Y, m.Col2.Y
	det := a11*a22 - a12*a21
	if det != 0 {
		det = 1.0 / det
	}
	result.X = det * (a22*b.X - a12*b.Y)
	result.Y = det * (a11*b.Y - a21*b.X)
	return result
}

// MulVec2 multiplies this matrix by vector v, storing the result in
// optionalTarget if provided, and also returns it.
func (m *Mat22) MulVec2(v *Vector2, optionalTarget *Vector2) *Vector2 {

	var result *Vector2
	if optionalTarget == nil {
		result = NewVec2()
	} else {
		result = optionalTarget
	}
	x := m.Col1.X*v.X + m.Col2.X*v.Y
	y := m.Col1.Y*v.X + m.Col2.Y*v.Y
	result.X = x
	result.Y = y
	return result
}
