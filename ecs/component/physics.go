package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

type BodyKind int

const (
	BodyTank BodyKind = iota + 1
	BodyShell
	BodyWall
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Chipmunk's X/Y plane is the world's X/Z ground plane.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Kind   BodyKind
	Width  float64
	Length float64
	Height float64
	Radius float64
	Mass   float64
	Static bool
	Sensor bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// HullRadius is the radius of the circle that bounds the collider.
func (b *PhysicsBody) HullRadius() float64 {
	if b == nil {
		return 0
	}
	if b.Radius > 0 {
		return b.Radius
	}
	hw, hl := b.Width/2, b.Length/2
	if hw <= 0 || hl <= 0 {
		return 0
	}
	return math.Hypot(hw, hl)
}
