// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector2_Add(t *testing.T) {

	tests := []struct {
		a, b     Vector2
		expected Vector2
	}{
		{Vector2{1, 2}, Vector2{3, 4}, Vector2{4, 6}},
		{Vector2{0, 0}, Vector2{0, 0}, Vector2{0, 0}},
		{Vector2{-1, 5}, Vector2{1, -5}, Vector2{0, 0}},
	}

	for i, test := range tests {
		v := test.a
		v.Add(&test.b)
		assert.Equalf(t, test.expected, v, "case %d", i)
	}
}

func TestVector2_DotLength(t *testing.T) {

	a := Vector2{3, 4}
	assert.Equal(t, float32(5), a.Length())
	assert.Equal(t, float32(25), a.LengthSq())

	b := Vector2{1, 0}
	c := Vector2{0, 1}
	assert.Equal(t, float32(0), b.Dot(&c))
}

func TestVector2_Normalize(t *testing.T) {

	v := Vector2{3, 4}
	v.Normalize()
	assert.InDelta(t, 1.0, v.Length(), 1e-6)
}

func TestVector2_NormalizeZero(t *testing.T) {

	v := Vector2{0, 0}
	v.Normalize()
	assert.Equal(t, float32(0), v.X)
	assert.Equal(t, float32(0), v.Y)
}

func TestVector2_MinMaxClamp(t *testing.T) {

	v := Vector2{5, -5}
	other := Vector2{2, -2}
	v.Min(&other)
	assert.Equal(t, Vector2{2, -5}, v)

	v2 := Vector2{5, -5}
	v2.Max(&other)
	assert.Equal(t, Vector2{5, -2}, v2)

	lo := Vector2{0, 0}
	hi := Vector2{10, 10}
	v3 := Vector2{-1, 20}
	v3.Clamp(&lo, &hi)
	assert.Equal(t, Vector2{0, 10}, v3)
}

func TestVector2_DistanceTo(t *testing.T) {

	a := Vector2{0, 0}
	b := Vector2{3, 4}
	assert.Equal(t, float32(5), a.DistanceTo(&b))
	assert.Equal(t, float32(25), a.DistanceToSquared(&b))
}

func TestVector2_Equals(t *testing.T) {

	a := Vector2{1, 2}
	b := Vector2{1, 2}
	c := Vector2{1, 3}
	assert.True(t, a.Equals(&b))
	assert.False(t, a.Equals(&c))
}

func TestVector2_SetLength(t *testing.T) {

	v := Vector2{3, 4}
	v.SetLength(10)
	assert.InDelta(t, 10.0, v.Length(), 1e-5)
}
