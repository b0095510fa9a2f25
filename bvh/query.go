package bvh

import (
	"math"

	"github.com/achilleasa/aabbtree/types"
)

// The number of entries in the traversal stack. Each internal node visited
// keeps its left child on the stack while the right subtree is explored, so
// the stack fills up once a path gets close to this many levels deep.
const MaxStackDepth = 64

// A ray with an origin, a direction that does not need to be normalized and
// the max parametric distance that is considered for intersections.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	Range  float32
}

// Get the reciprocal ray direction. Zero components map to MaxFloat32 so
// that slab tests never divide by zero.
func (r Ray) invDir() types.Vec3 {
	var inv types.Vec3
	for axis := 0; axis < 3; axis++ {
		if r.Dir[axis] == 0 {
			inv[axis] = math.MaxFloat32
		} else {
			inv[axis] = 1.0 / r.Dir[axis]
		}
	}
	return inv
}

// The outcome of a ray traversal.
type QueryResult struct {
	// Number of intersected leafs. This may exceed the destination
	// capacity.
	Hits int

	// Number of object indices written to the destination slice.
	Stored int

	// Number of intersected internal nodes whose children were skipped
	// because the traversal stack was full. A non-zero value means that
	// Hits may be incomplete.
	Dropped int
}

// Returns true if the query results did not fit in the destination slice.
func (r QueryResult) Truncated() bool {
	return r.Stored < r.Hits
}

// Collect the objects whose boxes, grown by padding on every side, intersect
// the ray and return the number of hits. Object indices are written to dest
// in traversal order until it is full; the returned count keeps increasing
// past len(dest) so callers can detect truncation.
func (t *Tree) Query(ray Ray, padding types.Vec3, dest []int32) int {
	return t.Trace(ray, padding, dest).Hits
}

// Trace works like Query but also reports how many results were stored and
// whether any subtrees were skipped due to the traversal stack limit.
func (t *Tree) Trace(ray Ray, padding types.Vec3, dest []int32) QueryResult {
	var res QueryResult
	if len(t.nodes) == 0 {
		return res
	}

	invDir := ray.invDir()

	var stack [MaxStackDepth]int32
	stack[0] = 0
	sp := 1

	for sp > 0 {
		sp--
		node := &t.nodes[stack[sp]]

		if !slabTest(ray.Origin, invDir, ray.Range, node.AABB, padding) {
			continue
		}

		if node.IsLeaf() {
			if res.Hits < len(dest) {
				dest[res.Hits] = node.Object
				res.Stored++
			}
			res.Hits++
			continue
		}

		if sp+2 > MaxStackDepth {
			res.Dropped++
			continue
		}
		stack[sp] = node.Left
		stack[sp+1] = node.Right
		sp += 2
	}

	return res
}

// Returns true if the ray intersects box grown by padding on every side.
func RayIntersectsAABB(ray Ray, box AABB, padding types.Vec3) bool {
	return slabTest(ray.Origin, ray.invDir(), ray.Range, box, padding)
}

// Intersect the per-axis [near, far] parametric intervals of the padded box
// with [0, maxDist].
func slabTest(origin, invDir types.Vec3, maxDist float32, box AABB, padding types.Vec3) bool {
	var tmin, tmax float32 = 0, maxDist

	for axis := 0; axis < 3; axis++ {
		t1 := (box.Min[axis] - padding[axis] - origin[axis]) * invDir[axis]
		t2 := (box.Max[axis] + padding[axis] - origin[axis]) * invDir[axis]

		if invDir[axis] < 0 {
			t1, t2 = t2, t1
		}

		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}

		if tmin > tmax {
			return false
		}
	}

	return true
}
