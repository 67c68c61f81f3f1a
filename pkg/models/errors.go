package models

import "errors"

var (
	ErrUnsupportedFormat = errors.New("models: unsupported mesh format")
	ErrInvalidIndices    = errors.New("models: invalid index buffer")
	ErrEmptyMesh         = errors.New("models: mesh has no triangles")
	ErrMissingPositions  = errors.New("models: primitive has no POSITION attribute")
)
