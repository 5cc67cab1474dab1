package component

import "image/color"

// Wall is static arena geometry, an axis-aligned box on the ground plane.
type Wall struct {
	Width  float64
	Depth  float64
	Height float64
	Color  color.Color
}

var WallComponent = NewComponent[Wall]()
