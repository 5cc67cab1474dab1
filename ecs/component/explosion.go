package component

import "image/color"

// Explosion is a short-lived visual blast.
type Explosion struct {
	Radius   float64
	Duration float64
	Elapsed  float64
	Color    color.Color
}

var ExplosionComponent = NewComponent[Explosion]()
