package component

import "github.com/Ali-Parandeh/tanks/common"

type Shell struct {
	Owner uint64

	// Velocity is the ground-plane launch velocity; Y is unused.
	Velocity common.Vec3

	// VerticalSpeed drives the transform's Y; ground-plane motion belongs to
	// the physics body.
	VerticalSpeed  float64
	Radius         float64
	MaxDamage      float64
	ExplosionForce float64
	BlastRadius    float64
	Exploded       bool
}

var ShellComponent = NewComponent[Shell]()

// ShellImpact is added by the physics step when a shell touches a tank or wall.
type ShellImpact struct {
	Other uint64
}

var ShellImpactComponent = NewComponent[ShellImpact]()
