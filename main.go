package main

import (
	"os"

	"github.com/achilleasa/aabbtree/cmd"
	"github.com/achilleasa/aabbtree/watcher"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "aabbtree"
	app.Usage = "build bounding volume hierarchies over scene objects and query them with rays"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "q",
			Usage: "only log warnings and errors",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build a BVH tree for one or more scenes",
			Description: `
Parse a scene definition from a wavefront obj file or a box list (.aabb), reduce
each scene object to its axis-aligned bounding box and build a BVH tree over
the boxes. The tree is validated and its statistics are logged.

Scene files can be local paths or http/https URLs.`,
			ArgsUsage: "scene_file1.obj scene_file2.aabb ...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "print, p",
					Usage: "dump the tree nodes to stdout",
				},
			},
			Action: cmd.BuildTree,
		},
		{
			Name:  "query",
			Usage: "list the scene objects intersected by a ray",
			Description: `
Build a BVH tree for a scene and trace a single ray through it. Boxes can be
grown by a padding vector before testing them against the ray. Hits are listed
in traversal order.`,
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "origin, o",
					Value: "0,0,0",
					Usage: "ray origin as x,y,z",
				},
				cli.StringFlag{
					Name:  "dir, d",
					Value: "0,0,1",
					Usage: "ray direction as x,y,z",
				},
				cli.Float64Flag{
					Name:  "range, r",
					Value: 1000,
					Usage: "max ray distance",
				},
				cli.StringFlag{
					Name:  "padding",
					Value: "0,0,0",
					Usage: "padding applied to each box as x,y,z",
				},
				cli.IntFlag{
					Name:  "capacity, c",
					Value: 64,
					Usage: "max number of hits to collect",
				},
			},
			Action: cmd.QueryTree,
		},
		{
			Name:  "watch",
			Usage: "rebuild the BVH tree for a scene whenever it changes",
			Description: `
Build a BVH tree for a local scene file and rebuild it each time the scene file
or any local file it includes via "call" is modified, until the process is
interrupted. Remote (http/https) files are not watched.`,
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.DurationFlag{
					Name:  "debounce",
					Value: watcher.DefaultDebounce,
					Usage: "wait for this long after the last change before rebuilding",
				},
			},
			Action: cmd.WatchScene,
		},
	}

	app.Run(os.Args)
}
