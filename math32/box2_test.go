// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox2_NewAndAccessors(t *testing.T) {

	min := Vector2{-1, -2}
	max := Vector2{3, 4}
	b := NewBox2(&min, &max)

	assert.Equal(t, min, b.Min())
	assert.Equal(t, max, b.Max())
}

func TestBox2_ContainsBox(t *testing.T) {

	outer := NewBox2(&Vector2{0, 0}, &Vector2{10, 10})
	inner := NewBox2(&Vector2{2, 2}, &Vector2{4, 4})
	overlapping := NewBox2(&Vector2{-1, 2}, &Vector2{4, 4})

	assert.True(t, outer.ContainsBox(inner))
	assert.False(t, outer.ContainsBox(overlapping))
}

func TestBox2_IsIntersectionBox(t *testing.T) {

	a := NewBox2(&Vector2{0, 0}, &Vector2{2, 2})
	b := NewBox2(&Vector2{1, 1}, &Vector2{3, 3})
	c := NewBox2(&Vector2{5, 5}, &Vector2{6, 6})

	assert.True(t, a.IsIntersectionBox(b))
	assert.False(t, a.IsIntersectionBox(c))
}

func TestBox2_Union(t *testing.T) {

	a := NewBox2(&Vector2{0, 0}, &Vector2{1, 1})
	b := NewBox2(&Vector2{-1, 2}, &Vector2{3, 4})

	a.Union(b)
	assert.Equal(t, Vector2{-1, 0}, a.Min())
	assert.Equal(t, Vector2{3, 4}, a.Max())
}

func TestBox2_Copy(t *testing.T) {

	a := NewBox2(&Vector2{1, 1}, &Vector2{2, 2})
	var b Box2
	b.Copy(a)
	assert.Equal(t, a.Min(), b.Min())
	assert.Equal(t, a.Max(), b.Max())
}
