package bvh

import (
	"math/rand"

	"github.com/achilleasa/aabbtree/types"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	return AABB{
		Min: types.XYZ(minX, minY, minZ),
		Max: types.XYZ(maxX, maxY, maxZ),
	}
}

// The three box scene used by several tests: three unit cubes along the X axis.
func lineScene() []AABB {
	return []AABB{
		box(0, 0, 0, 1, 1, 1),
		box(5, 0, 0, 6, 1, 1),
		box(10, 0, 0, 11, 1, 1),
	}
}

func randomBoxes(rng *rand.Rand, count int) []AABB {
	boxes := make([]AABB, count)
	for i := range boxes {
		var minV, side types.Vec3
		for axis := 0; axis < 3; axis++ {
			minV[axis] = rng.Float32()*100 - 50
			side[axis] = rng.Float32() * 5
		}
		// Sprinkle some point boxes.
		if i%7 == 0 {
			side = types.Vec3{}
		}
		boxes[i] = AABB{Min: minV, Max: minV.Add(side)}
	}
	return boxes
}

func randomRay(rng *rand.Rand) Ray {
	var origin, dir types.Vec3
	for axis := 0; axis < 3; axis++ {
		origin[axis] = rng.Float32()*120 - 60
		dir[axis] = rng.Float32()*2 - 1
	}
	// Exercise axis-aligned rays as well.
	if rng.Intn(4) == 0 {
		dir[rng.Intn(3)] = 0
	}
	return Ray{Origin: origin, Dir: dir, Range: 200}
}
