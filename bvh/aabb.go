package bvh

import (
	"math"

	"github.com/achilleasa/aabbtree/types"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// An axis-aligned bounding box defined by its min and max corners.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Create an inverted box that acts as the identity element for Union.
func EmptyAABB() AABB {
	return AABB{
		Min: types.Splat(math.MaxFloat32),
		Max: types.Splat(-math.MaxFloat32),
	}
}

// Return the smallest box enclosing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Get the box side lengths.
func (b AABB) Extent() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the box center.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the box center along a single axis.
func (b AABB) Centroid(axis Axis) float32 {
	return (b.Min[axis] + b.Max[axis]) * 0.5
}

// Select the axis with the greatest extent. Ties are resolved in favor of
// the later axis: X must strictly exceed both Y and Z and Y must strictly
// exceed Z to be selected.
func (b AABB) LongestAxis() Axis {
	side := b.Extent()
	switch {
	case side[XAxis] > side[YAxis] && side[XAxis] > side[ZAxis]:
		return XAxis
	case side[YAxis] > side[ZAxis]:
		return YAxis
	}
	return ZAxis
}

// Grow the box by padding on every side.
func (b AABB) Pad(padding types.Vec3) AABB {
	return AABB{
		Min: b.Min.Sub(padding),
		Max: b.Max.Add(padding),
	}
}

// Returns true if other lies entirely within b.
func (b AABB) Contains(other AABB) bool {
	for axis := XAxis; axis <= ZAxis; axis++ {
		if other.Min[axis] < b.Min[axis] || other.Max[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Returns true if no component is NaN and min <= max along every axis.
func (b AABB) Valid() bool {
	if b.Min.HasNaN() || b.Max.HasNaN() {
		return false
	}
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}
