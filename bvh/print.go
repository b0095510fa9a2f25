package bvh

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Print the tree to stdout.
func (t *Tree) Print() {
	t.Fprint(os.Stdout)
}

// Write an indented pre-order dump of the tree nodes to w. Each node is
// indented by two spaces per level. Child indices that are negative or out of
// range are skipped.
func (t *Tree) Fprint(w io.Writer) error {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.fprintNode(w, 0, 0)
}

func (t *Tree) fprintNode(w io.Writer, nodeIndex int32, depth int) error {
	// A well-formed tree is never deeper than its node count; stop early on
	// malformed trees that contain cycles.
	if nodeIndex < 0 || int(nodeIndex) >= len(t.nodes) || depth >= len(t.nodes) {
		return nil
	}

	node := &t.nodes[nodeIndex]
	_, err := fmt.Fprintf(w, "%snode_idx: %d, min(%v), max(%v), obj_idx: %d\n",
		strings.Repeat("  ", depth), nodeIndex, node.Min, node.Max, node.Object,
	)
	if err != nil {
		return err
	}

	if err = t.fprintNode(w, node.Left, depth+1); err != nil {
		return err
	}
	return t.fprintNode(w, node.Right, depth+1)
}
