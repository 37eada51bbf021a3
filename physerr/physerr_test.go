// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {

	err := New(InvalidArgument, "CreateJoint", "bodies must differ")
	assert.Equal(t, "CreateJoint: InvalidArgument: bodies must differ", err.Error())
	assert.True(t, Is(err, InvalidArgument))
	assert.False(t, Is(err, InvalidState))
}

func TestNewf(t *testing.T) {

	err := Newf(NumericDegeneracy, "solvePulley", "ratio %d is singular", 0)
	assert.Contains(t, err.Error(), "ratio 0 is singular")
	assert.True(t, Is(err, NumericDegeneracy))
}

func TestWrap(t *testing.T) {

	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := Wrap(InvalidArgument, "scene.Load: parse", cause)

	assert.True(t, Is(err, InvalidArgument))
	assert.ErrorIs(t, err, cause)
}

func TestWrapNil(t *testing.T) {

	assert.Nil(t, Wrap(InvalidState, "op", nil))
}

func TestIs_NonPhyserr(t *testing.T) {

	assert.False(t, Is(errors.New("plain error"), InvalidArgument))
}

func TestKindString(t *testing.T) {

	assert.Equal(t, "InvalidArgument", InvalidArgument.String())
	assert.Equal(t, "InvalidState", InvalidState.String())
	assert.Equal(t, "NumericDegeneracy", NumericDegeneracy.String())
	assert.Equal(t, "ResourceExhaustion", ResourceExhaustion.String())
}
