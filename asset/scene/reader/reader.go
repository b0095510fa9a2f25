package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/aabbtree/asset"
	"github.com/achilleasa/aabbtree/asset/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from a local file or http/https URL.
func ReadScene(filename string) (*scene.Scene, error) {
	reader, err := readerFor(filename)
	if err != nil {
		return nil, err
	}

	// Local paths are made absolute so that they compare equal to the
	// resolved paths of included files.
	if !strings.Contains(filename, "://") {
		if absPath, err := filepath.Abs(filename); err == nil {
			filename = absPath
		}
	}

	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}

// Select reader based on file extension.
func readerFor(filename string) (Reader, error) {
	switch {
	case strings.HasSuffix(filename, ".obj"):
		return newWavefrontReader(), nil
	case strings.HasSuffix(filename, ".aabb"):
		return newBoxListReader(), nil
	}
	return nil, fmt.Errorf("readScene: unsupported file format")
}

// Tracks include frames so that errors in included files can be reported
// along with the location of every file that led to them. It also keeps the
// paths of the files currently being parsed so include cycles can be caught
// and the list of every file that contributed to the scene.
type errorStack struct {
	frames []string

	openFiles []string
	sources   []string
}

// Mark a file as being parsed.
func (s *errorStack) enterFile(path string) {
	s.openFiles = append(s.openFiles, path)
	for _, src := range s.sources {
		if src == path {
			return
		}
	}
	s.sources = append(s.sources, path)
}

// Mark the most recently entered file as fully parsed.
func (s *errorStack) leaveFile() {
	s.openFiles = s.openFiles[:len(s.openFiles)-1]
}

// Returns true if path is already being parsed further up the include chain.
func (s *errorStack) isOpen(path string) bool {
	for _, open := range s.openFiles {
		if open == path {
			return true
		}
	}
	return false
}

func (s *errorStack) pushFrame(msg string) {
	s.frames = append([]string{msg}, s.frames...)
}

func (s *errorStack) popFrame() {
	s.frames = s.frames[1:]
}

func (s *errorStack) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(s.frames, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s\n%s", msg, strings.Join(s.frames, "\n"))
	}

	return fmt.Errorf("%s", strings.Trim(errMsg, "\n"))
}
