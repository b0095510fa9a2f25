package cmd

import (
	"errors"
	"os"

	"github.com/achilleasa/aabbtree/asset/scene"
	"github.com/achilleasa/aabbtree/asset/scene/reader"
	"github.com/achilleasa/aabbtree/bvh"
	"github.com/urfave/cli"
)

// Build and validate a BVH tree for each scene argument.
func BuildTree(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing scene file argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		_, tree, err := loadTree(ctx.Args().Get(idx))
		if err != nil {
			return err
		}

		if ctx.Bool("print") {
			if err = tree.Fprint(os.Stdout); err != nil {
				return err
			}
		}
	}

	return nil
}

// Read a scene and build a validated BVH tree over its objects.
func loadTree(sceneFile string) (*scene.Scene, *bvh.Tree, error) {
	logger.Noticef("parsing scene: %s", sceneFile)
	sc, err := reader.ReadScene(sceneFile)
	if err != nil {
		return nil, nil, err
	}

	tree, err := sc.BuildTree()
	if err != nil {
		return nil, nil, err
	}

	if err = tree.Validate(sc.Boxes()); err != nil {
		return nil, nil, err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	logger.Noticef("bvh information:\n%s", tree.Stats())

	return sc, tree, nil
}
