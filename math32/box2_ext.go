// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Min returns the minimum corner of this bounding box.
func (b *Box2) Min() Vector2 { return b.min }

// Max returns the maximum corner of this bounding box.
func (b *Box2) Max() Vector2 { return b.max }
