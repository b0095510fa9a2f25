package bvh

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/olekukonko/tablewriter"
)

// A bounding volume hierarchy stored as a flat node list with the root at
// index 0. Trees are immutable once built and safe for concurrent queries.
type Tree struct {
	nodes []Node

	leafs    int
	maxDepth int
}

// Get the tree nodes. The returned slice must not be modified.
func (t *Tree) Nodes() []Node {
	return t.nodes
}

// Get the number of tree nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Returns true if the tree contains no nodes.
func (t *Tree) Empty() bool {
	return len(t.nodes) == 0
}

// Get the number of leaf nodes.
func (t *Tree) Leafs() int {
	return t.leafs
}

// Get the depth of the deepest leaf. The root is at depth 0.
func (t *Tree) MaxDepth() int {
	return t.maxDepth
}

// Get the box enclosing all tree contents.
func (t *Tree) Bounds() AABB {
	if len(t.nodes) == 0 {
		return EmptyAABB()
	}
	return t.nodes[0].AABB
}

// Render a table with tree statistics.
func (t *Tree) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", len(t.nodes))})
	table.Append([]string{"Leafs", fmt.Sprintf("%d", t.leafs)})
	table.Append([]string{"Internal nodes", fmt.Sprintf("%d", len(t.nodes)-t.leafs)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", t.maxDepth)})
	if len(t.nodes) != 0 {
		table.Append([]string{"Bounds", fmt.Sprintf("min(%v) max(%v)", t.nodes[0].Min, t.nodes[0].Max)})
	}
	table.SetFooter([]string{"Size", fmtSize(t.nodes)})

	table.Render()
	return buf.String()
}

// Check that the tree is a valid hierarchy over boxes. The tree must contain
// one leaf per box with a matching AABB, every object index must appear
// exactly once and every internal node must tightly enclose its children.
func (t *Tree) Validate(boxes []AABB) error {
	if len(t.nodes) != RequiredNodes(len(boxes)) {
		return fmt.Errorf("%w: expected %d nodes for %d boxes; got %d", ErrMalformedTree, RequiredNodes(len(boxes)), len(boxes), len(t.nodes))
	}
	if len(t.nodes) == 0 {
		return nil
	}

	v := validator{
		tree:    t,
		boxes:   boxes,
		visited: make([]bool, len(t.nodes)),
		objects: make([]bool, len(boxes)),
	}
	if err := v.visit(0); err != nil {
		return err
	}

	for index, seen := range v.visited {
		if !seen {
			return fmt.Errorf("%w: node %d is unreachable", ErrMalformedTree, index)
		}
	}
	return nil
}

type validator struct {
	tree    *Tree
	boxes   []AABB
	visited []bool
	objects []bool
}

func (v *validator) visit(nodeIndex int32) error {
	if nodeIndex < 0 || int(nodeIndex) >= len(v.tree.nodes) {
		return fmt.Errorf("%w: node index %d out of range", ErrMalformedTree, nodeIndex)
	}
	if v.visited[nodeIndex] {
		return fmt.Errorf("%w: node %d is referenced more than once", ErrMalformedTree, nodeIndex)
	}
	v.visited[nodeIndex] = true

	node := &v.tree.nodes[nodeIndex]
	if node.IsLeaf() {
		if node.Right != LeafNode {
			return fmt.Errorf("%w: leaf node %d has right child %d", ErrMalformedTree, nodeIndex, node.Right)
		}
		if node.Object < 0 || int(node.Object) >= len(v.boxes) {
			return fmt.Errorf("%w: leaf node %d references object %d out of range", ErrMalformedTree, nodeIndex, node.Object)
		}
		if v.objects[node.Object] {
			return fmt.Errorf("%w: object %d is stored in more than one leaf", ErrMalformedTree, node.Object)
		}
		v.objects[node.Object] = true

		if node.AABB != v.boxes[node.Object] {
			return fmt.Errorf("%w: leaf node %d box does not match object %d", ErrMalformedTree, nodeIndex, node.Object)
		}
		return nil
	}

	if node.Object != InternalNode {
		return fmt.Errorf("%w: internal node %d references object %d", ErrMalformedTree, nodeIndex, node.Object)
	}
	if err := v.visit(node.Left); err != nil {
		return err
	}
	if err := v.visit(node.Right); err != nil {
		return err
	}

	union := v.tree.nodes[node.Left].Union(v.tree.nodes[node.Right].AABB)
	if node.AABB != union {
		return fmt.Errorf("%w: node %d box is not the union of its children", ErrMalformedTree, nodeIndex)
	}
	return nil
}

// Calculate the space used by a node list and return back a formatted value
// with the appropriate byte/kb/mb unit.
func fmtSize(nodes []Node) string {
	totalBytes := float32(int(reflect.TypeOf(Node{}).Size()) * len(nodes))

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
