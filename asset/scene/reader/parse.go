package reader

import (
	"fmt"
	"strconv"

	"github.com/achilleasa/aabbtree/types"
)

// Parse the three components following the keyword at lineTokens[offset-1].
func parseVec3At(lineTokens []string, offset int) (types.Vec3, error) {
	if len(lineTokens) < offset+3 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected %d arguments; got %d`, lineTokens[0], offset+2, len(lineTokens)-1)
	}

	v := types.Vec3{}
	for axis := 0; axis < 3; axis++ {
		coord, err := strconv.ParseFloat(lineTokens[offset+axis], 32)
		if err != nil {
			return v, err
		}
		v[axis] = float32(coord)
	}
	return v, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	return parseVec3At(lineTokens, 1)
}

// Convert a 1-based or negative (relative to the end of the list) index into
// a list offset. Positive indices are shifted by relOffset which is the list
// length at the time the current file started being parsed.
func selectCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	if index < 0 {
		offset = coordListLen + int(index)
	} else {
		offset = relOffset + int(index-1)
	}
	if offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}
