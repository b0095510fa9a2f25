package cmd

import (
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/achilleasa/aabbtree/asset/scene"
	"github.com/achilleasa/aabbtree/watcher"
	"github.com/urfave/cli"
)

// Build a BVH tree for a scene and rebuild it whenever the scene file or any
// local file it includes changes.
func WatchScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("watch expects exactly one scene file argument")
	}
	sceneFile := ctx.Args().First()

	sc, _, err := loadTree(sceneFile)
	if err != nil {
		return err
	}

	w, err := watcher.New(ctx.Duration("debounce"))
	if err != nil {
		return err
	}
	defer w.Close()

	var rebuild watcher.ChangeFunc
	rebuild = func(path string) {
		logger.Noticef("scene file %s changed; rebuilding", path)
		sc, _, err := loadTree(sceneFile)
		if err != nil {
			logger.Errorf("rebuild failed: %v", err)
			return
		}

		// Pick up files that were included by the edit.
		if err = w.Watch(localSources(sc), rebuild); err != nil {
			logger.Warningf("could not watch included files: %v", err)
		}
	}

	if err = w.Watch(localSources(sc), rebuild); err != nil {
		return err
	}
	w.Start()

	logger.Notice("watching for changes; press ctrl+c to exit")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	signal.Stop(sigChan)

	logger.Notice("shutting down")
	return nil
}

// Get the scene files that can be watched for changes. Remote files are
// skipped.
func localSources(sc *scene.Scene) []string {
	var files []string
	for _, src := range sc.Sources {
		if strings.Contains(src, "://") {
			logger.Infof("not watching remote scene file %s", src)
			continue
		}
		files = append(files, src)
	}
	return files
}
