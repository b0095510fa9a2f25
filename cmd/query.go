package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/aabbtree/asset/scene"
	"github.com/achilleasa/aabbtree/bvh"
	"github.com/achilleasa/aabbtree/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Query parameters collected from the command line.
type queryOptions struct {
	Ray      bvh.Ray
	Padding  types.Vec3
	Capacity int
}

func newQueryOptions(origin, dir, padding string, rayRange float64, capacity int) (queryOptions, error) {
	var opts queryOptions
	var err error

	if opts.Ray.Origin, err = types.ParseVec3(origin); err != nil {
		return opts, fmt.Errorf("invalid ray origin: %w", err)
	}
	if opts.Ray.Dir, err = types.ParseVec3(dir); err != nil {
		return opts, fmt.Errorf("invalid ray direction: %w", err)
	}
	if padding != "" {
		if opts.Padding, err = types.ParseVec3(padding); err != nil {
			return opts, fmt.Errorf("invalid padding: %w", err)
		}
	}
	if opts.Ray.Origin.HasNaN() || opts.Ray.Dir.HasNaN() || opts.Padding.HasNaN() {
		return opts, errors.New("ray origin, direction and padding must not contain NaN values")
	}
	if rayRange < 0 {
		return opts, fmt.Errorf("ray range must be non-negative; got %f", rayRange)
	}
	if capacity < 0 {
		return opts, fmt.Errorf("capacity must be non-negative; got %d", capacity)
	}

	opts.Ray.Range = float32(rayRange)
	opts.Capacity = capacity
	return opts, nil
}

// Build a BVH for a scene and list the objects intersected by a ray.
func QueryTree(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("query expects exactly one scene file argument")
	}

	opts, err := newQueryOptions(
		ctx.String("origin"),
		ctx.String("dir"),
		ctx.String("padding"),
		ctx.Float64("range"),
		ctx.Int("capacity"),
	)
	if err != nil {
		return err
	}

	sc, tree, err := loadTree(ctx.Args().First())
	if err != nil {
		return err
	}

	dest := make([]int32, opts.Capacity)
	res := tree.Trace(opts.Ray, opts.Padding, dest)

	logger.Noticef("ray origin(%v) dir(%v) range %.2f hit %d object(s)", opts.Ray.Origin, opts.Ray.Dir, opts.Ray.Range, res.Hits)
	if res.Truncated() {
		logger.Warningf("%d hits exceed capacity %d; only the first %d are listed", res.Hits, opts.Capacity, res.Stored)
	}
	if res.Dropped != 0 {
		logger.Warningf("traversal stack exhausted; skipped the children of %d node(s)", res.Dropped)
	}

	fmt.Print(renderHits(sc, dest[:res.Stored]))
	return nil
}

// Render a table with the objects referenced by a list of query hits.
func renderHits(sc *scene.Scene, hits []int32) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Object", "Name", "Min", "Max"})
	for _, objIndex := range hits {
		row := []string{fmt.Sprintf("%d", objIndex), sc.ObjectName(objIndex), "", ""}
		if int(objIndex) < len(sc.Objects) {
			bbox := sc.Objects[objIndex].BBox
			row[2] = bbox.Min.String()
			row[3] = bbox.Max.String()
		}
		table.Append(row)
	}
	table.SetFooter([]string{"Hits", fmt.Sprintf("%d", len(hits)), "", ""})

	table.Render()
	return buf.String()
}
