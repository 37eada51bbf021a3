// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/rb2d/math32"
	"github.com/g3n/rb2d/physerr"
	"github.com/g3n/rb2d/physics/broadphase"
	"github.com/g3n/rb2d/physics/shapes"
)

// Filter controls which fixture pairs collide. Two fixtures collide unless
// groupIndex excludes them (both non-zero and equal: sign decides), else
// by category/mask bits: (catA & maskB) != 0 && (catB & maskA) != 0.
type Filter struct {
	CategoryBits uint16
	MaskBits     uint16
	GroupIndex   int16
}

// DefaultFilter collides with everything and excludes nothing by group.
func DefaultFilter() Filter {

	return Filter{CategoryBits: 0x0001, MaskBits: 0xFFFF, GroupIndex: 0}
}

func shouldCollideFilters(a, b Filter) bool {

	if a.GroupIndex == b.GroupIndex && a.GroupIndex != 0 {
		return a.GroupIndex > 0
	}
	return (a.CategoryBits&b.MaskBits) != 0 && (b.CategoryBits&a.MaskBits) != 0
}

// FixtureDef are the parameters used to create a Fixture via
// Body.CreateFixture.
type FixtureDef struct {
	Shape       shapes.Shape
	Density     float32
	Friction    float32
	Restitution float32
	IsSensor    bool
	Filter      Filter
	UserData    interface{}
}

// NewFixtureDef returns a FixtureDef with the engine's conventional
// defaults (friction 0.2, no restitution, collides with everything).
func NewFixtureDef(shape shapes.Shape) FixtureDef {

	return FixtureDef{
		Shape:    shape,
		Friction: 0.2,
		Filter:   DefaultFilter(),
	}
}

type fixtureProxy struct {
	aabb       math32.Box2
	fixture    *Fixture
	childIndex int
	proxyID    int
}

// Fixture binds one Shape to a Body with density/friction/restitution,
// a collision Filter, a sensor flag, and one broad-phase proxy per child
// shape (a chain shape has one child per edge).
type Fixture struct {
	id   entityID
	body *Body
	next *Fixture

	shape       shapes.Shape
	density     float32
	friction    float32
	restitution float32
	isSensor    bool
	filter      Filter

	proxies []fixtureProxy

	UserData interface{}
}

// ID returns this fixture's debug correlation identifier.
func (f *Fixture) ID() string { return f.id.String() }

// Body returns the owning body.
func (f *Fixture) Body() *Body { return f.body }

// Shape returns the fixture's attached shape.
func (f *Fixture) Shape() shapes.Shape { return f.shape }

// Next returns the next fixture in the owning body's intrusive list.
func (f *Fixture) Next() *Fixture { return f.next }

// IsSensor reports whether this fixture reports overlap without
// participating in collision response.
func (f *Fixture) IsSensor() bool { return f.isSensor }

// SetSensor toggles the sensor flag; takes effect on the next Collide pass.
func (f *Fixture) SetSensor(flag bool) { f.isSensor = flag }

// Density returns the fixture's density in kg/m^2.
func (f *Fixture) Density() float32 { return f.density }

// SetDensity sets the density. The body's mass is NOT recomputed until the
// caller explicitly calls Body.ResetMassData.
func (f *Fixture) SetDensity(d float32) { f.density = d }

// Friction returns the Coulomb friction coefficient.
func (f *Fixture) Friction() float32 { return f.friction }

// SetFriction sets the friction coefficient used by new contacts; existing
// contacts keep the value captured when they were created.
func (f *Fixture) SetFriction(v float32) { f.friction = v }

// Restitution returns the restitution coefficient.
func (f *Fixture) Restitution() float32 { return f.restitution }

// SetRestitution sets the restitution coefficient for future contacts.
func (f *Fixture) SetRestitution(v float32) { f.restitution = v }

// Filter returns the current collision filter.
func (f *Fixture) Filter() Filter { return f.filter }

// SetFilter replaces the collision filter. Existing contacts of this
// fixture are flagged so the contact manager's next Collide pass re-checks
// them against the new filter and destroys those it now rejects.
func (f *Fixture) SetFilter(filt Filter) {

	f.filter = filt
	if f.body == nil {
		return
	}
	for ce := f.body.contactList; ce != nil; ce = ce.next {
		if ce.Contact.fixtureA == f || ce.Contact.fixtureB == f {
			ce.Contact.flags |= contactFlagFilter
		}
	}
}

// AABB returns the fattened broad-phase AABB for the given child index.
func (f *Fixture) AABB(childIndex int) math32.Box2 {

	return f.proxies[childIndex].aabb
}

func (f *Fixture) massData() shapes.MassData {

	return f.shape.ComputeMass(f.density)
}

// TestPoint reports whether the world point lies inside this fixture's
// shape.
func (f *Fixture) TestPoint(p math32.Vector2) bool {

	return f.shape.TestPoint(f.body.xf, p)
}

// RayCast casts a ray against this fixture's shape, matching the
// RayCastInput/Output contract of the underlying shapes package.
func (f *Fixture) RayCast(input *shapes.RayCastInput, childIndex int) (shapes.RayCastOutput, bool) {

	return f.shape.RayCast(input, f.body.xf, childIndex)
}

func (f *Fixture) createProxies(bp *broadphase.Tree, xf math32.Transform2) {

	n := f.shape.ChildCount()
	f.proxies = make([]fixtureProxy, n)
	for i := 0; i < n; i++ {
		aabb := f.shape.ComputeAABB(xf, i)
		id := bp.CreateProxy(aabb, &f.proxies[i])
		f.proxies[i] = fixtureProxy{aabb: aabb, fixture: f, childIndex: i, proxyID: id}
	}
}

func (f *Fixture) destroyProxies(bp *broadphase.Tree) {

	for i := range f.proxies {
		bp.DestroyProxy(f.proxies[i].proxyID)
	}
	f.proxies = nil
}

// synchronize recomputes each child's AABB at the new transform and
// notifies the broad-phase with the swept displacement from the old
// transform, so the dynamic tree can predict future motion.
func (f *Fixture) synchronize(bp *broadphase.Tree, xf1, xf2 math32.Transform2) {

	for i := range f.proxies {
		aabb1 := f.shape.ComputeAABB(xf1, i)
		aabb2 := f.shape.ComputeAABB(xf2, i)
		aabb2Min := aabb2.Min()
		aabb1Min := aabb1.Min()
		var displacement math32.Vector2
		displacement.SubVectors(&aabb2Min, &aabb1Min)
		aabb1Max := aabb1.Max()
		var merged math32.Box2
		merged.Set(&aabb1Min, &aabb1Max)
		merged.Union(&aabb2)
		f.proxies[i].aabb = merged
		bp.MoveProxy(f.proxies[i].proxyID, merged, displacement)
	}
}

// CreateFixture attaches a new fixture to b, registering one broad-phase
// proxy per child shape and recomputing the body's mass data. Fails if the
// world is mid-Step, per §5's re-entrancy contract.
func (b *Body) CreateFixture(def FixtureDef) (*Fixture, error) {

	if b.world != nil && b.world.locked {
		return nil, physerr.New(physerr.InvalidState, "CreateFixture", "world is locked")
	}
	if def.Shape == nil {
		return nil, physerr.New(physerr.InvalidArgument, "CreateFixture", "shape is nil")
	}

	f := &Fixture{
		id:          newEntityID(),
		body:        b,
		shape:       def.Shape,
		density:     def.Density,
		friction:    def.Friction,
		restitution: def.Restitution,
		isSensor:    def.IsSensor,
		filter:      def.Filter,
		UserData:    def.UserData,
	}

	f.next = b.fixtureList
	b.fixtureList = f
	b.fixtureCount++

	if b.IsEnabled() {
		f.createProxies(b.world.contactManager.broadPhase, b.xf)
	}

	if f.density > 0 {
		b.ResetMassData()
	}
	return f, nil
}

// DestroyFixture detaches f from its body, destroying its broad-phase
// proxies, any contacts it participates in (EndContact firing for
// touching ones), and recomputing mass data. Fails if the world is locked.
func (b *Body) DestroyFixture(f *Fixture) error {

	if b.world != nil && b.world.locked {
		return physerr.New(physerr.InvalidState, "DestroyFixture", "world is locked")
	}

	if b.world != nil {
		ce := b.contactList
		for ce != nil {
			next := ce.next
			c := ce.Contact
			if c.fixtureA == f || c.fixtureB == f {
				b.world.contactManager.Destroy(c)
			}
			ce = next
		}
	}

	prev := (*Fixture)(nil)
	cur := b.fixtureList
	for cur != nil {
		if cur == f {
			if prev != nil {
				prev.next = cur.next
			} else {
				b.fixtureList = cur.next
			}
			b.fixtureCount--
			break
		}
		prev = cur
		cur = cur.next
	}

	if b.world != nil && len(f.proxies) > 0 {
		f.destroyProxies(b.world.contactManager.broadPhase)
	}

	b.ResetMassData()
	return nil
}
