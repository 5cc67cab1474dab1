package component

import (
	"image/color"

	"github.com/Ali-Parandeh/tanks/common"
)

type Tank struct {
	Player int
	Name   string
	Color  color.Color

	Spawn    common.Vec3
	SpawnYaw float64

	// ControlsEnabled is false between rounds.
	ControlsEnabled bool
	Wins            int
}

var TankComponent = NewComponent[Tank]()

// Movement drives a tank across the ground plane.
type Movement struct {
	Speed     float64
	TurnSpeed float64 // degrees per second

	// Outputs for the physics step.
	DriveVelocity common.Vec3
	TurnRate      float64 // radians per second
}

var MovementComponent = NewComponent[Movement]()

// Knockback is blast velocity that decays back to zero.
type Knockback struct {
	Velocity common.Vec3
	Damping  float64
}

var KnockbackComponent = NewComponent[Knockback]()
