package bvh

import (
	"fmt"
	"math"
	"time"

	"github.com/achilleasa/aabbtree/log"
	"github.com/achilleasa/aabbtree/partition"
)

// A box tagged with its position in the builder input.
type indexedAABB struct {
	box   AABB
	index int32
}

type stats struct {
	leafs    int
	maxDepth int
}

type builder struct {
	logger log.Logger

	// Caller-provided node storage.
	nodes []Node

	// Scratch list that gets sorted in place while partitioning.
	items []indexedAABB

	// Index of the next free slot in nodes.
	nodeCount int32

	stats stats
}

// Get the number of nodes required for building a BVH over n boxes.
func RequiredNodes(n int) int {
	if n <= 0 {
		return 0
	}
	return 2*n - 1
}

// Construct a BVH over a list of boxes. The node list is allocated to fit.
//
// The Object field of each leaf node contains the index of its box in the
// boxes slice.
func Build(boxes []AABB) (*Tree, error) {
	return BuildInto(make([]Node, RequiredNodes(len(boxes))), boxes)
}

// Construct a BVH over a list of boxes using the supplied node storage, which
// must hold at least RequiredNodes(len(boxes)) entries. The returned tree
// references a prefix of nodes.
//
// The builder recursively splits the boxes at the median of their centroids
// along the longest axis of the enclosing box. Each leaf holds a single box
// and nodes are emitted in pre-order so the root is always node 0.
func BuildInto(nodes []Node, boxes []AABB) (*Tree, error) {
	if len(boxes) > (math.MaxInt32+1)/2 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyBoxes, len(boxes))
	}

	required := RequiredNodes(len(boxes))
	if len(nodes) < required {
		return nil, fmt.Errorf("%w: need %d nodes; got %d", ErrInsufficientCapacity, required, len(nodes))
	}

	if len(boxes) == 0 {
		return &Tree{nodes: nodes[:0]}, nil
	}

	items := make([]indexedAABB, len(boxes))
	for index, box := range boxes {
		if !box.Valid() {
			return nil, fmt.Errorf("%w: box %d has min (%v) and max (%v)", ErrInvalidAABB, index, box.Min, box.Max)
		}
		items[index] = indexedAABB{box: box, index: int32(index)}
	}

	b := &builder{
		logger: log.New("bvh builder"),
		nodes:  nodes[:required],
		items:  items,
	}

	start := time.Now()
	b.subdivide(0, len(items), 0)
	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.maxDepth, b.nodeCount, b.stats.leafs,
	)

	return &Tree{
		nodes:    b.nodes,
		leafs:    b.stats.leafs,
		maxDepth: b.stats.maxDepth,
	}, nil
}

// Partition items in the [start, end) range and return the node index.
func (b *builder) subdivide(start, end, depth int) int32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	nodeIndex := b.nodeCount
	b.nodeCount++
	node := &b.nodes[nodeIndex]

	node.AABB = EmptyAABB()
	for _, item := range b.items[start:end] {
		node.AABB = node.AABB.Union(item.box)
	}

	count := end - start
	if count == 1 {
		node.SetObject(b.items[start].index)
		b.stats.leafs++
		return nodeIndex
	}

	axis := node.LongestAxis()
	partition.Sort(b.items[start:end], compareCentroids, axis)

	mid := start + count/2
	left := b.subdivide(start, mid, depth+1)
	right := b.subdivide(mid, end, depth+1)

	// Recursion never reallocates nodes so the pointer is still valid.
	node.SetChildNodes(left, right)
	return nodeIndex
}

// Order boxes by their centroid along axis.
func compareCentroids(a, b *indexedAABB, axis Axis) int {
	ca := a.box.Centroid(axis)
	cb := b.box.Centroid(axis)
	switch {
	case ca < cb:
		return -1
	case ca > cb:
		return 1
	}
	return 0
}
