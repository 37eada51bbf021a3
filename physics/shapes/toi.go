// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"github.com/g3n/rb2d/math32"
)

// TOIState is the outcome of a TimeOfImpact query.
type TOIState int

const (
	TOIUnknown TOIState = iota
	TOIFailed
	TOIOverlapped
	TOITouching
	TOISeparated
)

// TOIOutput is the result of a shape-pair time-of-impact query.
type TOIOutput struct {
	State TOIState
	T     float32
}

const toiMaxIterations = 20

// TimeOfImpact finds the smallest fraction t in [0, tMax] at which proxyA
// (swept by sweepA) and proxyB (swept by sweepB) first come within
// `target` of touching, via bisection-guarded conservative advancement:
// at each iteration the true distance-minus-radii function is sampled (not
// linearized), so the bisection is slower per-iteration than a tangent-line
// root-find but never overshoots a thin sliver the linear approximation
// could step past.
func TimeOfImpact(proxyA DistanceProxy, sweepA Sweep, proxyB DistanceProxy, sweepB Sweep, tMax float32) TOIOutput {

	totalRadius := proxyA.Radius + proxyB.Radius
	target := math32.Max(linearSlop, totalRadius-3*linearSlop)
	tolerance := float32(0.25 * linearSlop)

	separationAt := func(t float32) float32 {
		xfA := sweepA.GetTransform(t)
		xfB := sweepB.GetTransform(t)
		out := Distance(proxyA, xfA, proxyB, xfB)
		return out.Distance - totalRadius
	}

	s0 := separationAt(0)
	if s0 < target-tolerance {
		return TOIOutput{State: TOIOverlapped, T: 0}
	}

	sMax := separationAt(tMax)
	if sMax > target+tolerance {
		return TOIOutput{State: TOISeparated, T: tMax}
	}
	if sMax >= target-tolerance && sMax <= target+tolerance {
		return TOIOutput{State: TOITouching, T: tMax}
	}

	lo, hi := float32(0), tMax
	for iter := 0; iter < toiMaxIterations; iter++ {
		mid := 0.5 * (lo + hi)
		s := separationAt(mid)
		if s >= target-tolerance && s <= target+tolerance {
			return TOIOutput{State: TOITouching, T: mid}
		}
		if s > target+tolerance {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-6 {
			return TOIOutput{State: TOITouching, T: hi}
		}
	}
	return TOIOutput{State: TOIFailed, T: hi}
}
