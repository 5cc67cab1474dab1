package system

import (
	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/go-gl/mathgl/mgl64"
)

// TankMovementSystem turns tanks and sets their drive velocity from input.
// Entities with a physics body are moved by the physics step; the rest are
// integrated here.
type TankMovementSystem struct{}

func NewTankMovementSystem() *TankMovementSystem {
	return &TankMovementSystem{}
}

func (s *TankMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach4(w,
		component.TankComponent.Kind(),
		component.MovementComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, tank *component.Tank, move *component.Movement, input *component.Input, transform *component.Transform) {
			if !tank.ControlsEnabled || !isActive(w, e) {
				move.DriveVelocity = common.Vec3{}
				move.TurnRate = 0
				return
			}

			move.TurnRate = -input.TurnAxis * mgl64.DegToRad(move.TurnSpeed)
			transform.Yaw += move.TurnRate * dt
			move.DriveVelocity = common.Forward(transform.Yaw).Scale(input.MoveAxis * move.Speed)

			if !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
				transform.Position = transform.Position.Add(move.DriveVelocity.Scale(dt))
			}
		})
}

// isActive treats entities without an Active component as enabled.
func isActive(w *ecs.World, e ecs.Entity) bool {
	a, ok := ecs.Get(w, e, component.ActiveComponent.Kind())
	return !ok || a.Enabled
}
