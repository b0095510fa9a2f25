package bvh

import "errors"

var (
	ErrInsufficientCapacity = errors.New("bvh: insufficient node storage capacity")
	ErrInvalidAABB          = errors.New("bvh: invalid aabb")
	ErrTooManyBoxes         = errors.New("bvh: too many boxes")
	ErrMalformedTree        = errors.New("bvh: malformed tree")
)
