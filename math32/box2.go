// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box2 represents a 2D axis-aligned bounding box defined by two points: the
// point with minimum coordinates and the point with maximum coordinates. It
// is the type the broad-phase tree and fixture proxies fatten and query.
type Box2 struct {
	min Vector2
	max Vector2
}

// NewBox2 creates and returns a pointer to a new Box2 defined
// by its minimum and maximum coordinates.
func NewBox2(min, max *Vector2) *Box2 {

	b := new(Box2)
	b.Set(min, max)
	return b
}

// Set sets this bounding box minimum and maximum coordinates.
// Returns pointer to this updated bounding box.
func (b *Box2) Set(min, max *Vector2) *Box2 {

	if min != nil {
		b.min = *min
	} else {
		b.min.Set(Infinity, Infinity)
	}
	if max != nil {
		b.max = *max
	} else {
		b.max.Set(-Infinity, -Infinity)
	}
	return b
}

// Copy copy other to this bounding box.
// Returns pointer to this updated bounding box.
func (b *Box2) Copy(box *Box2) *Box2 {

	b.min = box.min
	b.max = box.max
	return b
}

// ContainsBox returns if this bounding box contains other box.
func (b *Box2) ContainsBox(other *Box2) bool {

	if (b.min.X <= other.min.X) && (other.max.X <= b.max.X) &&
		(b.min.Y <= other.min.Y) && (other.max.Y <= b.max.Y) {
		return true

	}
	return false
}

// IsIntersectionBox returns if other box intersects this one.
func (b *Box2) IsIntersectionBox(other *Box2) bool {

	// using 4 splitting lines to rule out intersections.
	if other.max.X < b.min.X || other.min.X > b.max.X ||
		other.max.Y < b.min.Y || other.min.Y > b.max.Y {
		return false
	}
	return true
}

// Union sets this box to the union with other box.
// Returns pointer to this updated bounding box.
func (b *Box2) Union(other *Box2) *Box2 {

	b.min.Min(&other.min)
	b.max.Max(&other.max)
	return b
}
