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
	"github.com/achilleasa/aabbtree/types"
)

// Name of the object that receives faces defined before any o/g statement.
const defaultObjectName = "default"

// An object under construction.
type wavefrontObject struct {
	name  string
	bbox  bvh.AABB
	faces int
}

// Reads wavefront obj files and reduces each object (o/g statements) to the
// bounding box of the vertices referenced by its faces.
type wavefrontSceneReader struct {
	errorStack
	logger log.Logger

	objects    []*wavefrontObject
	vertexList []types.Vec3
}

// Create a new wavefront scene reader.
func newWavefrontReader() *wavefrontSceneReader {
	return &wavefrontSceneReader{
		logger: log.New("wavefront scene reader"),
	}
}

// Read scene definition.
func (r *wavefrontSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	err := r.parse(sceneRes)
	if err != nil {
		return nil, err
	}
	r.verifyLastParsedObject()

	sc := &scene.Scene{Sources: r.sources}
	for _, obj := range r.objects {
		sc.Add(obj.name, obj.bbox)
	}

	r.logger.Noticef("parsed %d objects in %d ms", len(sc.Objects), time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}

func (r *wavefrontSceneReader) parse(res *asset.Resource) error {
	var lineNum int = 0

	r.enterFile(res.Path())
	defer r.leaveFile()

	// The main obj file may include (call) several other object files. Each
	// object file contains 1-based indices (when they are positive). By
	// tracking the current vertex offset we can apply it while parsing faces
	// to select the correct coordinates.
	relVertexOffset := len(r.vertexList)

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
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.verifyLastParsedObject()
			r.objects = append(r.objects, &wavefrontObject{name: lineTokens[1], bbox: bvh.EmptyAABB()})
		case "f":
			if len(r.objects) == 0 {
				r.objects = append(r.objects, &wavefrontObject{name: defaultObjectName, bbox: bvh.EmptyAABB()})
			}

			err := r.parseFace(lineTokens, relVertexOffset, r.objects[len(r.objects)-1])
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		case "vn", "vt", "vp", "s", "l", "usemtl", "mtllib":
			// Shading and material data do not affect object bounds.
		default:
			r.logger.Debugf(`[%s: %d] ignoring unsupported statement "%s"`, res.Path(), lineNum, lineTokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err.Error())
	}
	return nil
}

// Drop the most recently defined object if it has no faces.
func (r *wavefrontSceneReader) verifyLastParsedObject() {
	lastIndex := len(r.objects) - 1
	if lastIndex >= 0 && r.objects[lastIndex].faces == 0 {
		r.logger.Warningf(`dropping object "%s" as it contains no polygons`, r.objects[lastIndex].name)
		r.objects = r.objects[:lastIndex]
	}
}

// Extend the object bbox with the vertices referenced by a face. Each face
// argument may use the v, v/vt, v//vn or v/vt/vn format; only the vertex
// index is used.
func (r *wavefrontSceneReader) parseFace(lineTokens []string, relVertexOffset int, obj *wavefrontObject) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	bbox := obj.bbox
	for arg := 0; arg < len(lineTokens)-1; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}

		v := r.vertexList[vOffset]
		bbox = bbox.Union(bvh.AABB{Min: v, Max: v})
	}

	obj.bbox = bbox
	obj.faces++
	return nil
}
