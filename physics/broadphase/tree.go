// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package broadphase implements the dynamic AABB tree the simulation core
// consumes only through its proxy/query/ray-cast/pair-enumeration
// interface: CreateProxy/DestroyProxy/MoveProxy/TouchProxy/Query/RayCast/
// UpdatePairs.
package broadphase

import (
	"github.com/g3n/rb2d/math32"
)

const nullNode = -1

const (
	aabbExtension  = 0.1
	aabbMultiplier = 4.0
)

type node struct {
	aabb        math32.Box2
	userData    interface{}
	parent      int
	left, right int
	height      int
	moved       bool
}

func (n *node) isLeaf() bool { return n.left == nullNode }

// Tree is a dynamic bounding-volume hierarchy over fattened AABBs. Proxy
// ids are indices into the internal node pool and remain stable until
// DestroyProxy, even as the tree rebalances around them.
type Tree struct {
	nodes    []node
	root     int
	freeList int
	moveBuffer []int
}

// NewTree returns an empty dynamic tree.
func NewTree() *Tree {

	t := &Tree{root: nullNode, freeList: nullNode}
	return t
}

func (t *Tree) allocateNode() int {

	if t.freeList == nullNode {
		n := node{parent: nullNode, left: nullNode, right: nullNode, height: -1}
		t.nodes = append(t.nodes, n)
		t.freeList = len(t.nodes) - 1
		t.nodes[t.freeList].parent = nullNode
	}
	id := t.freeList
	t.freeList = t.nodes[id].parent
	t.nodes[id].parent = nullNode
	t.nodes[id].left = nullNode
	t.nodes[id].right = nullNode
	t.nodes[id].height = 0
	t.nodes[id].moved = false
	return id
}

func (t *Tree) freeNode(id int) {

	t.nodes[id].parent = t.freeList
	t.nodes[id].height = -1
	t.freeList = id
}

// CreateProxy inserts a leaf for the given (fattened) AABB and user data,
// returning its proxy id.
func (t *Tree) CreateProxy(aabb math32.Box2, userData interface{}) int {

	id := t.allocateNode()
	var r math32.Vector2
	r.Set(aabbExtension, aabbExtension)
	fat := fatten(aabb, r)
	t.nodes[id].aabb = fat
	t.nodes[id].userData = userData
	t.nodes[id].height = 0
	t.nodes[id].moved = true
	t.insertLeaf(id)
	return id
}

func fatten(aabb math32.Box2, r math32.Vector2) math32.Box2 {

	min := aabb.Min()
	max := aabb.Max()
	min.Sub(&r)
	max.Add(&r)
	var out math32.Box2
	out.Set(&min, &max)
	return out
}

// DestroyProxy removes a leaf from the tree.
func (t *Tree) DestroyProxy(proxyID int) {

	t.removeLeaf(proxyID)
	t.freeNode(proxyID)
}

// MoveProxy re-inserts a proxy's leaf if its tight AABB has moved outside
// the node's current fattened AABB, predicting further motion along
// displacement so repeated small moves in one direction don't thrash.
func (t *Tree) MoveProxy(proxyID int, aabb math32.Box2, displacement math32.Vector2) bool {

	if boxContains(&t.nodes[proxyID].aabb, &aabb) {
		return false
	}

	t.removeLeaf(proxyID)

	var r math32.Vector2
	r.Set(aabbExtension, aabbExtension)
	fat := fatten(aabb, r)

	min := fat.Min()
	max := fat.Max()
	if displacement.X < 0 {
		min.X += displacement.X * aabbMultiplier
	} else {
		max.X += displacement.X * aabbMultiplier
	}
	if displacement.Y < 0 {
		min.Y += displacement.Y * aabbMultiplier
	} else {
		max.Y += displacement.Y * aabbMultiplier
	}
	fat.Set(&min, &max)

	t.nodes[proxyID].aabb = fat
	t.nodes[proxyID].moved = true
	t.insertLeaf(proxyID)
	return true
}

// TouchProxy marks a proxy as moved so the next UpdatePairs reconsiders its
// overlaps, without changing its AABB (used when a filter or sensor flag
// changes rather than a transform).
func (t *Tree) TouchProxy(proxyID int) {

	t.nodes[proxyID].moved = true
}

// UserData returns the user data associated with a proxy.
func (t *Tree) UserData(proxyID int) interface{} { return t.nodes[proxyID].userData }

// FatAABB returns the current fattened AABB of a proxy.
func (t *Tree) FatAABB(proxyID int) math32.Box2 { return t.nodes[proxyID].aabb }

func boxContains(outer, inner *math32.Box2) bool {

	return outer.ContainsBox(inner)
}

func (t *Tree) insertLeaf(leaf int) {

	if t.root == nullNode {
		t.root = leaf
		t.nodes[leaf].parent = nullNode
		return
	}

	leafAABB := t.nodes[leaf].aabb
	index := t.root
	for !t.nodes[index].isLeaf() {
		left := t.nodes[index].left
		right := t.nodes[index].right

		area := perimeter(&t.nodes[index].aabb)

		var combined math32.Box2
		combined.Copy(&t.nodes[index].aabb)
		combined.Union(&leafAABB)
		combinedArea := perimeter(&combined)

		cost := 2 * combinedArea
		inheritCost := 2 * (combinedArea - area)

		costLeft := childCost(t, left, &leafAABB) + inheritCost
		costRight := childCost(t, right, &leafAABB) + inheritCost

		if cost < costLeft && cost < costRight {
			break
		}
		if costLeft < costRight {
			index = left
		} else {
			index = right
		}
	}

	sibling := index
	oldParent := t.nodes[sibling].parent
	newParent := t.allocateNode()
	t.nodes[newParent].parent = oldParent
	var combined math32.Box2
	combined.Copy(&t.nodes[sibling].aabb)
	combined.Union(&leafAABB)
	t.nodes[newParent].aabb = combined
	t.nodes[newParent].height = t.nodes[sibling].height + 1

	if oldParent != nullNode {
		if t.nodes[oldParent].left == sibling {
			t.nodes[oldParent].left = newParent
		} else {
			t.nodes[oldParent].right = newParent
		}
		t.nodes[newParent].left = sibling
		t.nodes[newParent].right = leaf
		t.nodes[sibling].parent = newParent
		t.nodes[leaf].parent = newParent
	} else {
		t.nodes[newParent].left = sibling
		t.nodes[newParent].right = leaf
		t.nodes[sibling].parent = newParent
		t.nodes[leaf].parent = newParent
		t.root = newParent
	}

	t.fixup(t.nodes[leaf].parent)
}

func childCost(t *Tree, child int, leafAABB *math32.Box2) float32 {

	var combined math32.Box2
	combined.Copy(&t.nodes[child].aabb)
	combined.Union(leafAABB)
	cost := perimeter(&combined)
	if !t.nodes[child].isLeaf() {
		cost -= perimeter(&t.nodes[child].aabb)
	}
	return cost
}

func (t *Tree) fixup(index int) {

	for index != nullNode {
		index = t.balance(index)

		left := t.nodes[index].left
		right := t.nodes[index].right

		t.nodes[index].height = 1 + maxInt(t.nodes[left].height, t.nodes[right].height)
		var combined math32.Box2
		combined.Copy(&t.nodes[left].aabb)
		combined.Union(&t.nodes[right].aabb)
		t.nodes[index].aabb = combined

		index = t.nodes[index].parent
	}
}

func (t *Tree) removeLeaf(leaf int) {

	if leaf == t.root {
		t.root = nullNode
		return
	}

	parent := t.nodes[leaf].parent
	grandParent := t.nodes[parent].parent
	var sibling int
	if t.nodes[parent].left == leaf {
		sibling = t.nodes[parent].right
	} else {
		sibling = t.nodes[parent].left
	}

	if grandParent != nullNode {
		if t.nodes[grandParent].left == parent {
			t.nodes[grandParent].left = sibling
		} else {
			t.nodes[grandParent].right = sibling
		}
		t.nodes[sibling].parent = grandParent
		t.freeNode(parent)
		t.fixup(grandParent)
	} else {
		t.root = sibling
		t.nodes[sibling].parent = nullNode
		t.freeNode(parent)
	}
}

// balance performs a single AVL-style rotation at index if the subtree is
// unbalanced by more than one level, keeping query/insert cost near
// O(log n) as proxies churn.
func (t *Tree) balance(iA int) int {

	a := &t.nodes[iA]
	if a.isLeaf() || a.height < 2 {
		return iA
	}

	iB := a.left
	iC := a.right
	b := &t.nodes[iB]
	c := &t.nodes[iC]

	balanceFactor := c.height - b.height

	if balanceFactor > 1 {
		iF := c.left
		iG := c.right
		f := &t.nodes[iF]
		g := &t.nodes[iG]

		c.left = iA
		c.parent = a.parent
		a.parent = iC

		if c.parent != nullNode {
			if t.nodes[c.parent].left == iA {
				t.nodes[c.parent].left = iC
			} else {
				t.nodes[c.parent].right = iC
			}
		} else {
			t.root = iC
		}

		if f.height > g.height {
			c.right = iF
			a.right = iG
			g.parent = iA
			var combined math32.Box2
			combined.Copy(&b.aabb)
			combined.Union(&g.aabb)
			a.aabb = combined
			a.height = 1 + maxInt(b.height, g.height)
			c.height = 1 + maxInt(a.height, f.height)
		} else {
			c.right = iG
			a.right = iF
			f.parent = iA
			var combined math32.Box2
			combined.Copy(&b.aabb)
			combined.Union(&f.aabb)
			a.aabb = combined
			a.height = 1 + maxInt(b.height, f.height)
			c.height = 1 + maxInt(a.height, g.height)
		}
		return iC
	}

	if balanceFactor < -1 {
		iD := b.left
		iE := b.right
		d := &t.nodes[iD]
		e := &t.nodes[iE]

		b.left = iA
		b.parent = a.parent
		a.parent = iB

		if b.parent != nullNode {
			if t.nodes[b.parent].left == iA {
				t.nodes[b.parent].left = iB
			} else {
				t.nodes[b.parent].right = iB
			}
		} else {
			t.root = iB
		}

		if d.height > e.height {
			b.right = iD
			a.left = iE
			e.parent = iA
			var combined math32.Box2
			combined.Copy(&c.aabb)
			combined.Union(&e.aabb)
			a.aabb = combined
			a.height = 1 + maxInt(c.height, e.height)
			b.height = 1 + maxInt(a.height, d.height)
		} else {
			b.right = iE
			a.left = iD
			d.parent = iA
			var combined math32.Box2
			combined.Copy(&c.aabb)
			combined.Union(&d.aabb)
			a.aabb = combined
			a.height = 1 + maxInt(c.height, d.height)
			b.height = 1 + maxInt(a.height, e.height)
		}
		return iB
	}

	return iA
}

func perimeter(b *math32.Box2) float32 {

	min := b.Min()
	max := b.Max()
	wx := max.X - min.X
	wy := max.Y - min.Y
	return 2 * (wx + wy)
}

func maxInt(a, b int) int {

	if a > b {
		return a
	}
	return b
}

// QueryCallback is invoked once per overlapping proxy found by Query; it
// returns false to stop the query early.
type QueryCallback func(proxyID int) bool

// Query enumerates every proxy whose fattened AABB overlaps aabb.
func (t *Tree) Query(cb QueryCallback, aabb math32.Box2) {

	if t.root == nullNode {
		return
	}
	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nullNode {
			continue
		}
		n := &t.nodes[id]
		if !n.aabb.IsIntersectionBox(&aabb) {
			continue
		}
		if n.isLeaf() {
			if !cb(id) {
				return
			}
		} else {
			stack = append(stack, n.left, n.right)
		}
	}
}
