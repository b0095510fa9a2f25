package bvh

const (
	// Value of the Left and Right fields of leaf nodes.
	LeafNode int32 = -1

	// Value of the Object field of internal nodes.
	InternalNode int32 = -1
)

// A node in the flat BVH node list. Nodes reference their children by index
// into the same list:
//
// - internal nodes store the L/R child indices and set Object to InternalNode
// - leaf nodes set both Left and Right to LeafNode and store the input index
// of their box in Object
type Node struct {
	AABB

	Left  int32
	Right int32

	Object int32
}

// Returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.Left == LeafNode
}

// Set left and right child node indices.
func (n *Node) SetChildNodes(left, right int32) {
	n.Left = left
	n.Right = right
	n.Object = InternalNode
}

// Turn node into a leaf holding a single object.
func (n *Node) SetObject(index int32) {
	n.Left = LeafNode
	n.Right = LeafNode
	n.Object = index
}
