// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g3n/rb2d/physerr"
)

const sampleDoc = `
gravity: [0, -10]
bodies:
  - name: ground
    type: static
    position: [0, 0]
    fixtures:
      - shape: box
        halfWidth: 5
        halfHeight: 0.5
  - name: ball
    type: dynamic
    position: [0, 5]
    fixtures:
      - shape: circle
        radius: 0.5
        density: 1
        friction: 0.3
        restitution: 0.1
joints:
  - kind: distance
    bodyA: ground
    bodyB: ball
    length: 4
`

func TestLoad_Success(t *testing.T) {

	w, bodies, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, float32(-10), w.Gravity().Y)
	assert.Equal(t, 2, w.BodyCount())
	assert.Equal(t, 1, w.JointCount())

	ground, ok := bodies["ground"]
	require.True(t, ok)
	ball, ok := bodies["ball"]
	require.True(t, ok)
	assert.NotEqual(t, ground, ball)
}

func TestLoad_UnknownShape(t *testing.T) {

	doc := `
bodies:
  - name: a
    fixtures:
      - shape: blob
`
	_, _, err := Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, physerr.Is(err, physerr.InvalidArgument))
}

func TestLoad_UnknownBodyType(t *testing.T) {

	doc := `
bodies:
  - name: a
    type: floaty
`
	_, _, err := Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, physerr.Is(err, physerr.InvalidArgument))
}

func TestLoad_JointReferencesUnknownBody(t *testing.T) {

	doc := `
bodies:
  - name: a
    type: dynamic
joints:
  - kind: distance
    bodyA: a
    bodyB: missing
`
	_, _, err := Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, physerr.Is(err, physerr.InvalidArgument))
}

func TestLoad_MalformedYAML(t *testing.T) {

	_, _, err := Load(strings.NewReader("gravity: [0, -10"))
	require.Error(t, err)
	assert.True(t, physerr.Is(err, physerr.InvalidArgument))
}

func TestLoad_EdgeNeedsExactlyTwoVertices(t *testing.T) {

	doc := `
bodies:
  - name: a
    fixtures:
      - shape: edge
        vertices:
          - [0, 0]
`
	_, _, err := Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, physerr.Is(err, physerr.InvalidArgument))
}
