package render

import "errors"

var (
	ErrNoPath          = errors.New("render: no render path attached")
	ErrPathUnavailable = errors.New("render: no render path for raster mode")
	ErrNoCamera        = errors.New("render: no camera defined")
	ErrInvalidSize     = errors.New("render: framebuffer size must be positive")
)
