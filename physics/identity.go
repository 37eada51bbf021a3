// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/google/uuid"

// entityID is a debug-only correlation identifier stamped on every Body,
// Fixture, Joint and Contact at creation. It is never used by the engine
// itself as a lookup key - pool indices serve that role - but it lets log
// lines from independent runs or processes be correlated with each other.
type entityID uuid.UUID

func newEntityID() entityID {

	return entityID(uuid.New())
}

func (id entityID) String() string {

	return uuid.UUID(id).String()
}
