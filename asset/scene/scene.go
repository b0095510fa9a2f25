package scene

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/aabbtree/bvh"
	"github.com/olekukonko/tablewriter"
)

// A named scene object reduced to its bounding box.
type Object struct {
	Name string
	BBox bvh.AABB
}

// A scene is a flat list of objects. The position of each object in the list
// is the object index reported by BVH queries.
type Scene struct {
	Objects []Object

	// Paths or URLs of the scene file and every file it includes.
	Sources []string
}

// Append an object to the scene and return its index.
func (sc *Scene) Add(name string, bbox bvh.AABB) int32 {
	sc.Objects = append(sc.Objects, Object{Name: name, BBox: bbox})
	return int32(len(sc.Objects) - 1)
}

// Get the bounding boxes of all scene objects.
func (sc *Scene) Boxes() []bvh.AABB {
	boxes := make([]bvh.AABB, len(sc.Objects))
	for index, obj := range sc.Objects {
		boxes[index] = obj.BBox
	}
	return boxes
}

// Get the name of the object at index or an empty string if the index is
// out of range.
func (sc *Scene) ObjectName(index int32) string {
	if index < 0 || int(index) >= len(sc.Objects) {
		return ""
	}
	return sc.Objects[index].Name
}

// Get the box enclosing all scene objects.
func (sc *Scene) Bounds() bvh.AABB {
	bounds := bvh.EmptyAABB()
	for _, obj := range sc.Objects {
		bounds = bounds.Union(obj.BBox)
	}
	return bounds
}

// Build a BVH over the scene objects.
func (sc *Scene) BuildTree() (*bvh.Tree, error) {
	return bvh.Build(sc.Boxes())
}

// Render a table with scene information.
func (sc *Scene) Stats() string {
	pointObjects := 0
	for _, obj := range sc.Objects {
		if obj.BBox.Min == obj.BBox.Max {
			pointObjects++
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Objects", fmt.Sprintf("%d", len(sc.Objects))})
	table.Append([]string{"Point objects", fmt.Sprintf("%d", pointObjects)})
	if len(sc.Objects) != 0 {
		bounds := sc.Bounds()
		table.Append([]string{"Bounds", fmt.Sprintf("min(%v) max(%v)", bounds.Min, bounds.Max)})
	}

	table.Render()
	return buf.String()
}
