// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics implements a 2D rigid-body simulation core: the
// world/body/fixture/joint/contact graph, island discovery, the
// constraint-based velocity/position solver and continuous collision
// detection. Shape primitives and narrow-phase routines (package shapes),
// the broad-phase spatial index (package broadphase) and 2D math
// (package math32) are consumed only through the interfaces declared here.
package physics

import "github.com/g3n/rb2d/math32"

const (
	linearSlop           = 0.005
	angularSlop          = 2.0 / 180.0 * math32.Pi
	polygonRadius        = 2.0 * linearSlop
	velocityThreshold    = 1.0
	maxTranslation       = 2.0
	maxTranslationSquared = maxTranslation * maxTranslation
	maxRotation          = 0.5 * math32.Pi
	maxRotationSquared   = maxRotation * maxRotation
	baumgarte            = 0.2
	toiBaumgarte         = 0.75
	maxLinearCorrection  = 0.2
	maxAngularCorrection = 8.0 / 180.0 * math32.Pi
	linearSleepTolerance  = 0.01
	angularSleepTolerance = 2.0 / 180.0 * math32.Pi
	timeToSleep          = 0.5
	maxManifoldPoints    = 2
	maxSubSteps          = 8
	maxTOIIterations     = 20
	maxTOIRootIterations = 50
	aabbExtension        = 0.1
	aabbMultiplier       = 4.0
)
