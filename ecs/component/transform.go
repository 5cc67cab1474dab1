package component

import "github.com/Ali-Parandeh/tanks/common"

// Transform places an entity in the world. Yaw is in radians around +Y.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
