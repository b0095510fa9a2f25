package bvh

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestBuildNodeCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n <= 64; n++ {
		boxes := randomBoxes(rng, n)
		tree, err := Build(boxes)
		if err != nil {
			t.Fatalf("[n=%d] %v", n, err)
		}

		expCount := 2*n - 1
		if n == 0 {
			expCount = 0
		}
		if tree.Len() != expCount {
			t.Fatalf("[n=%d] expected bvh tree to have %d nodes; got %d", n, expCount, tree.Len())
		}
		if tree.Leafs() != n {
			t.Fatalf("[n=%d] expected %d leafs; got %d", n, n, tree.Leafs())
		}
		if err = tree.Validate(boxes); err != nil {
			t.Fatalf("[n=%d] %v", n, err)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	tree, err := Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !tree.Empty() {
		t.Fatalf("expected empty tree; got %d nodes", tree.Len())
	}
}

func TestBuildSingleLeaf(t *testing.T) {
	b := box(1, 2, 3, 4, 5, 6)
	tree, err := Build([]AABB{b})
	if err != nil {
		t.Fatal(err)
	}

	if tree.Len() != 1 {
		t.Fatalf("expected a single node; got %d", tree.Len())
	}
	root := tree.Nodes()[0]
	if !root.IsLeaf() || root.Right != LeafNode || root.Object != 0 {
		t.Fatalf("expected root to be a leaf for object 0; got %+v", root)
	}
	if root.AABB != b {
		t.Fatalf("expected leaf box %v; got %v", b, root.AABB)
	}
}

func TestBuildLayout(t *testing.T) {
	tree, err := Build(lineScene())
	if err != nil {
		t.Fatal(err)
	}

	type spec struct {
		left, right, object int32
		bbox                AABB
	}
	specs := []spec{
		{1, 2, InternalNode, box(0, 0, 0, 11, 1, 1)},
		{LeafNode, LeafNode, 0, box(0, 0, 0, 1, 1, 1)},
		{3, 4, InternalNode, box(5, 0, 0, 11, 1, 1)},
		{LeafNode, LeafNode, 1, box(5, 0, 0, 6, 1, 1)},
		{LeafNode, LeafNode, 2, box(10, 0, 0, 11, 1, 1)},
	}

	nodes := tree.Nodes()
	if len(nodes) != len(specs) {
		t.Fatalf("expected bvh tree to have %d nodes; got %d", len(specs), len(nodes))
	}
	for index, s := range specs {
		n := nodes[index]
		if n.Left != s.left || n.Right != s.right || n.Object != s.object {
			t.Fatalf("[node %d] expected children (%d, %d) and object %d; got (%d, %d) and %d", index, s.left, s.right, s.object, n.Left, n.Right, n.Object)
		}
		if n.AABB != s.bbox {
			t.Fatalf("[node %d] expected box %v; got %v", index, s.bbox, n.AABB)
		}
	}

	if tree.MaxDepth() != 2 {
		t.Fatalf("expected max depth 2; got %d", tree.MaxDepth())
	}
}

func TestBuildDoesNotReorderInput(t *testing.T) {
	boxes := []AABB{
		box(9, 0, 0, 10, 1, 1),
		box(0, 0, 0, 1, 1, 1),
		box(4, 0, 0, 5, 1, 1),
	}
	orig := append([]AABB(nil), boxes...)

	if _, err := Build(boxes); err != nil {
		t.Fatal(err)
	}
	for index := range boxes {
		if boxes[index] != orig[index] {
			t.Fatalf("expected input box %d to be left untouched", index)
		}
	}
}

func TestBuildSplitsAlongLongestAxis(t *testing.T) {
	// Boxes spread along Z; the left subtree must hold the two lowest ones.
	boxes := []AABB{
		box(0, 0, 30, 1, 1, 31),
		box(0, 0, 0, 1, 1, 1),
		box(0, 0, 20, 1, 1, 21),
		box(0, 0, 10, 1, 1, 11),
	}
	tree, err := Build(boxes)
	if err != nil {
		t.Fatal(err)
	}

	nodes := tree.Nodes()
	left := nodes[nodes[0].Left]
	exp := box(0, 0, 0, 1, 1, 11)
	if left.AABB != exp {
		t.Fatalf("expected left subtree box %v; got %v", exp, left.AABB)
	}
}

func TestBuildCoincidentBoxes(t *testing.T) {
	boxes := make([]AABB, 17)
	for i := range boxes {
		boxes[i] = box(1, 1, 1, 1, 1, 1)
	}

	tree, err := Build(boxes)
	if err != nil {
		t.Fatal(err)
	}
	if err = tree.Validate(boxes); err != nil {
		t.Fatal(err)
	}
}

func TestBuildIntoCallerStorage(t *testing.T) {
	storage := make([]Node, 10)
	tree, err := BuildInto(storage, lineScene())
	if err != nil {
		t.Fatal(err)
	}

	if tree.Len() != 5 {
		t.Fatalf("expected bvh tree to have 5 nodes; got %d", tree.Len())
	}
	if &tree.Nodes()[0] != &storage[0] {
		t.Fatal("expected tree to use the supplied node storage")
	}
}

func TestBuildIntoErrors(t *testing.T) {
	_, err := BuildInto(make([]Node, 4), lineScene())
	if !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("expected to get %v; got %v", ErrInsufficientCapacity, err)
	}

	boxes := lineScene()
	boxes[1] = box(5, 0, 0, 4, 1, 1)
	_, err = Build(boxes)
	if !errors.Is(err, ErrInvalidAABB) {
		t.Fatalf("expected to get %v; got %v", ErrInvalidAABB, err)
	}

	boxes[1] = box(5, 0, float32(math.NaN()), 6, 1, 1)
	_, err = Build(boxes)
	if !errors.Is(err, ErrInvalidAABB) {
		t.Fatalf("expected to get %v; got %v", ErrInvalidAABB, err)
	}
}

func TestRequiredNodes(t *testing.T) {
	type spec struct {
		n   int
		exp int
	}
	specs := []spec{{-1, 0}, {0, 0}, {1, 1}, {2, 3}, {3, 5}, {100, 199}}
	for _, s := range specs {
		if got := RequiredNodes(s.n); got != s.exp {
			t.Fatalf("expected RequiredNodes(%d) to be %d; got %d", s.n, s.exp, got)
		}
	}
}

func TestBuildBoundsEnclosesDescendants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	boxes := randomBoxes(rng, 300)
	tree, err := Build(boxes)
	if err != nil {
		t.Fatal(err)
	}

	nodes := tree.Nodes()
	var check func(nodeIndex int32, ancestors []AABB)
	check = func(nodeIndex int32, ancestors []AABB) {
		node := nodes[nodeIndex]
		for depth, anc := range ancestors {
			if !anc.Contains(node.AABB) {
				t.Fatalf("node %d escapes its ancestor at depth %d", nodeIndex, depth)
			}
		}
		if node.IsLeaf() {
			return
		}
		ancestors = append(ancestors, node.AABB)
		check(node.Left, ancestors)
		check(node.Right, ancestors)
	}
	check(0, nil)
}
