package lison

import (
	"fmt"
	"math"
)

// RenderConfig controls the mapping from document units to
// device pixels.
type RenderConfig struct {
	Resolution float64 // device pixels per inch
	Scale      float64 // additional zoom factor
}

// DefaultRenderConfig renders at 96 pixels per inch, without zoom.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{Resolution: 96, Scale: 1}
}

// Factor returns the uniform scale applied to every coordinate
// and length of img.
func (conf RenderConfig) Factor(img *Image) float64 {
	return conf.Resolution / img.UnitPerInch * conf.Scale
}

// Dimensions returns the size in pixels of the rendered image,
// rounding the scaled width and height to the nearest integer.
// An error wrapping ErrBadDimension is returned if one of them
// is not in [1, math.MaxInt32].
func (conf RenderConfig) Dimensions(img *Image) (width, height int, err error) {
	factor := conf.Factor(img)
	width, err = dimension("width", img.Width*factor)
	if err != nil {
		return 0, 0, err
	}
	height, err = dimension("height", img.Height*factor)
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func dimension(name string, v float64) (int, error) {
	r := math.Round(v)
	// NaN fails both comparisons
	if !(r > 0 && r <= math.MaxInt32) {
		return 0, fmt.Errorf("lison: %w: %s %g", ErrBadDimension, name, v)
	}
	return int(r), nil
}
