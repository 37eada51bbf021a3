// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene loads a World's initial bodies, fixtures and joints from a
// YAML document, so a level or test fixture can be authored as data rather
// than Go code.
package scene

import (
	"io"

	"gopkg.in/yaml.v2"

	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physerr"
	"github.com/g3n/rb2d/physics"
	"github.com/g3n/rb2d/physics/shapes"
)

// Doc is the top-level YAML shape: world gravity plus a flat list of named
// bodies and a list of joints referencing them by name.
type Doc struct {
	Gravity [2]float32 `yaml:"gravity"`
	Bodies  []BodyDoc  `yaml:"bodies"`
	Joints  []JointDoc `yaml:"joints"`
}

// BodyDoc describes one body and its fixtures.
type BodyDoc struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"` // "static", "kinematic", "dynamic"
	Position [2]float32   `yaml:"position"`
	Angle    float32      `yaml:"angle"`
	Bullet   bool         `yaml:"bullet"`
	Fixtures []FixtureDoc `yaml:"fixtures"`
}

// FixtureDoc describes one fixture's shape and material properties.
type FixtureDoc struct {
	Shape       string       `yaml:"shape"` // "circle", "box", "polygon", "edge"
	Radius      float32      `yaml:"radius"`
	HalfWidth   float32      `yaml:"halfWidth"`
	HalfHeight  float32      `yaml:"halfHeight"`
	Vertices    [][2]float32 `yaml:"vertices"`
	Density     float32      `yaml:"density"`
	Friction    float32      `yaml:"friction"`
	Restitution float32      `yaml:"restitution"`
	IsSensor    bool         `yaml:"isSensor"`
	Category    uint16       `yaml:"category"`
	Mask        uint16       `yaml:"mask"`
	Group       int16        `yaml:"group"`
}

// JointDoc describes one joint connecting two bodies by name. Only the
// kinds with a small, YAML-friendly parameter set are supported; build
// anything richer (pulley, gear, wheel, weld) directly in Go.
type JointDoc struct {
	Kind             string     `yaml:"kind"` // "distance", "revolute", "prismatic", "rope", "friction", "motor"
	BodyA            string     `yaml:"bodyA"`
	BodyB            string     `yaml:"bodyB"`
	LocalAnchorA     [2]float32 `yaml:"localAnchorA"`
	LocalAnchorB     [2]float32 `yaml:"localAnchorB"`
	LocalAxisA       [2]float32 `yaml:"localAxisA"`
	CollideConnected bool       `yaml:"collideConnected"`
	Length           float32    `yaml:"length"`
	EnableLimit      bool       `yaml:"enableLimit"`
	LowerLimit       float32    `yaml:"lowerLimit"`
	UpperLimit       float32    `yaml:"upperLimit"`
	EnableMotor      bool       `yaml:"enableMotor"`
	MotorSpeed       float32    `yaml:"motorSpeed"`
	MaxMotorForce    float32    `yaml:"maxMotorForce"`
	MaxMotorTorque   float32    `yaml:"maxMotorTorque"`
}

// wrapErr folds err into a *physerr.Error tagged with op, preserving its
// Kind when it already came from the physics package (e.g. a locked-world
// InvalidState) rather than flattening every failure to InvalidArgument.
func wrapErr(op string, err error) error {

	if err == nil {
		return nil
	}
	if pe, ok := err.(*physerr.Error); ok {
		return physerr.Wrap(pe.Kind, op, err)
	}
	return physerr.Wrap(physerr.InvalidArgument, op, err)
}

// Load parses r as a scene Doc and populates a new World from it, returning
// the world and a name -> *physics.Body index for wiring up joints or test
// assertions the Doc itself doesn't cover.
func Load(r io.Reader) (*physics.World, map[string]*physics.Body, error) {

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, wrapErr("scene.Load: read", err)
	}

	var doc Doc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, wrapErr("scene.Load: parse", err)
	}

	w := physics.NewWorld(math32.Vector2{X: doc.Gravity[0], Y: doc.Gravity[1]})
	bodies := make(map[string]*physics.Body, len(doc.Bodies))

	for _, bd := range doc.Bodies {
		def := physics.NewBodyDef()
		kind, err := parseBodyType(bd.Type)
		if err != nil {
			return nil, nil, wrapErr("scene.Load: body "+bd.Name, err)
		}
		def.Type = kind
		def.Position = math32.Vector2{X: bd.Position[0], Y: bd.Position[1]}
		def.Angle = bd.Angle
		def.Bullet = bd.Bullet

		b, err := w.CreateBody(def)
		if err != nil {
			return nil, nil, wrapErr("scene.Load: body "+bd.Name, err)
		}

		for _, fd := range bd.Fixtures {
			sh, err := parseShape(fd)
			if err != nil {
				return nil, nil, wrapErr("scene.Load: body "+bd.Name+" fixture", err)
			}
			fdef := physics.NewFixtureDef(sh)
			fdef.Density = fd.Density
			if fd.Friction != 0 {
				fdef.Friction = fd.Friction
			}
			fdef.Restitution = fd.Restitution
			fdef.IsSensor = fd.IsSensor
			if fd.Category != 0 || fd.Mask != 0 || fd.Group != 0 {
				fdef.Filter = physics.Filter{CategoryBits: fd.Category, MaskBits: fd.Mask, GroupIndex: fd.Group}
			} else {
				fdef.Filter = physics.DefaultFilter()
			}
			if _, err := b.CreateFixture(fdef); err != nil {
				return nil, nil, wrapErr("scene.Load: body "+bd.Name+" fixture", err)
			}
		}

		if bd.Name != "" {
			bodies[bd.Name] = b
		}
	}

	for _, jd := range doc.Joints {
		if err := createJoint(w, bodies, jd); err != nil {
			return nil, nil, wrapErr("scene.Load: joint", err)
		}
	}

	return w, bodies, nil
}

func parseBodyType(s string) (physics.BodyType, error) {

	switch s {
	case "", "static":
		return physics.StaticBody, nil
	case "kinematic":
		return physics.KinematicBody, nil
	case "dynamic":
		return physics.DynamicBody, nil
	default:
		return 0, physerr.Newf(physerr.InvalidArgument, "parseBodyType", "unknown body type %q", s)
	}
}

func parseShape(fd FixtureDoc) (shapes.Shape, error) {

	switch fd.Shape {
	case "circle":
		return shapes.NewCircle(fd.Radius), nil
	case "box":
		return shapes.NewBox(fd.HalfWidth, fd.HalfHeight), nil
	case "polygon":
		return shapes.NewPolygon(vectorsFrom(fd.Vertices)), nil
	case "edge":
		if len(fd.Vertices) != 2 {
			return nil, physerr.Newf(physerr.InvalidArgument, "parseShape", "edge shape needs exactly 2 vertices, got %d", len(fd.Vertices))
		}
		vs := vectorsFrom(fd.Vertices)
		return shapes.NewEdge(vs[0], vs[1]), nil
	case "chain":
		return shapes.NewChain(vectorsFrom(fd.Vertices)), nil
	default:
		return nil, physerr.Newf(physerr.InvalidArgument, "parseShape", "unknown shape %q", fd.Shape)
	}
}

func vectorsFrom(pts [][2]float32) []math32.Vector2 {

	out := make([]math32.Vector2, len(pts))
	for i, p := range pts {
		out[i] = math32.Vector2{X: p[0], Y: p[1]}
	}
	return out
}

func createJoint(w *physics.World, bodies map[string]*physics.Body, jd JointDoc) error {

	bodyA, ok := bodies[jd.BodyA]
	if !ok {
		return physerr.Newf(physerr.InvalidArgument, "createJoint", "unknown bodyA %q", jd.BodyA)
	}
	bodyB, ok := bodies[jd.BodyB]
	if !ok {
		return physerr.Newf(physerr.InvalidArgument, "createJoint", "unknown bodyB %q", jd.BodyB)
	}

	def := physics.JointDef{
		BodyA:            bodyA,
		BodyB:            bodyB,
		LocalAnchorA:     math32.Vector2{X: jd.LocalAnchorA[0], Y: jd.LocalAnchorA[1]},
		LocalAnchorB:     math32.Vector2{X: jd.LocalAnchorB[0], Y: jd.LocalAnchorB[1]},
		LocalAxisA:       math32.Vector2{X: jd.LocalAxisA[0], Y: jd.LocalAxisA[1]},
		CollideConnected: jd.CollideConnected,
		Length:           jd.Length,
		EnableLimit:      jd.EnableLimit,
		LowerLimit:       jd.LowerLimit,
		UpperLimit:       jd.UpperLimit,
		EnableMotor:      jd.EnableMotor,
		MotorSpeed:       jd.MotorSpeed,
		MaxMotorForce:    jd.MaxMotorForce,
		MaxMotorTorque:   jd.MaxMotorTorque,
	}

	switch jd.Kind {
	case "distance":
		def.Kind = physics.DistanceJoint
	case "revolute":
		def.Kind = physics.RevoluteJoint
	case "prismatic":
		def.Kind = physics.PrismaticJoint
	case "rope":
		def.Kind = physics.RopeJoint
	case "friction":
		def.Kind = physics.FrictionJoint
	case "motor":
		def.Kind = physics.MotorJoint
	default:
		return physerr.Newf(physerr.InvalidArgument, "createJoint", "unsupported scene joint kind %q", jd.Kind)
	}

	_, err := w.CreateJoint(def)
	return wrapErr("createJoint", err)
}
