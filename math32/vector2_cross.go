// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Cross returns the 2D scalar cross product (z component of the 3D cross
// product) of this vector with other.
func (v *Vector2) Cross(other *Vector2) float32 {

	return v.X*other.Y - v.Y*other.X
}

// CrossScalar sets this vector to the cross product of a scalar s
// (treated as the z component of a 3D vector) and vector a: s * (0,0,1) x a.
// Returns the pointer to this updated vector.
func (v *Vector2) CrossScalar(s float32, a *Vector2) *Vector2 {

	v.X = -s * a.Y
	v.Y = s * a.X
	return v
}

// Skew returns the vector perpendicular to v, rotated 90 degrees counter-clockwise:
// (-v.Y, v.X). Used to turn a radius vector into a tangential velocity direction.
func (v *Vector2) Skew(optionalTarget *Vector2) *Vector2 {

	var result *Vector2
	if optionalTarget == nil {
		result = NewVec2()
	} else {
		result = optionalTarget
	}
	result.X = -v.Y
	result.Y = v.X
	return result
}
