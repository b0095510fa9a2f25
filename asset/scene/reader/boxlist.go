package reader

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/achilleasa/aabbtree/asset"
	"github.com/achilleasa/aabbtree/asset/scene"
	"github.com/achilleasa/aabbtree/bvh"
	"github.com/achilleasa/aabbtree/log"
)

// Reads plain text box lists. Each non-comment line is either:
//
//	box <name> <minX> <minY> <minZ> <maxX> <maxY> <maxZ>
//	call <file>
type boxListReader struct {
	errorStack
	logger log.Logger

	scene *scene.Scene
}

// Create a new box list reader.
func newBoxListReader() *boxListReader {
	return &boxListReader{
		logger: log.New("box list reader"),
		scene:  &scene.Scene{},
	}
}

// Read scene definition.
func (r *boxListReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing box list from "%s"`, sceneRes.Path())
	start := time.Now()

	if err := r.parse(sceneRes); err != nil {
		return nil, err
	}
	r.scene.Sources = r.sources

	r.logger.Noticef("parsed %d boxes in %d ms", len(r.scene.Objects), time.Since(start).Nanoseconds()/1e6)
	return r.scene, nil
}

func (r *boxListReader) parse(res *asset.Resource) error {
	var lineNum int = 0

	r.enterFile(res.Path())
	defer r.leaveFile()

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			if r.isOpen(incRes.Path()) {
				incRes.Close()
				return r.emitError(res.Path(), lineNum, "include cycle detected; %s is already being parsed", incRes.Path())
			}
			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "box":
			if len(lineTokens) != 8 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "box"; expected 7 arguments; got %d`, len(lineTokens)-1)
			}

			bbox, err := parseBox(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.scene.Add(lineTokens[1], bbox)
		default:
			return r.emitError(res.Path(), lineNum, `unsupported statement "%s"`, lineTokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err.Error())
	}
	return nil
}

// Parse the min/max corners of a box statement.
func parseBox(lineTokens []string) (bvh.AABB, error) {
	var bbox bvh.AABB
	var err error

	if bbox.Min, err = parseVec3At(lineTokens, 2); err != nil {
		return bbox, err
	}
	if bbox.Max, err = parseVec3At(lineTokens, 5); err != nil {
		return bbox, err
	}
	if !bbox.Valid() {
		return bbox, fmt.Errorf("box min (%v) exceeds max (%v)", bbox.Min, bbox.Max)
	}
	return bbox, nil
}
