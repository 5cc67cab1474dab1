package system

import (
	"math"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// ShellSpawner creates a shell owned by a tank at origin, launched with velocity.
type ShellSpawner func(w *ecs.World, owner ecs.Entity, origin, velocity common.Vec3) (ecs.Entity, error)

const (
	clipShotCharging = "shot_charging"
	clipShotFiring   = "shot_firing"
)

// TankShootingSystem charges the launch force while fire is held and
// releases a shell on button up or at full charge.
type TankShootingSystem struct {
	spawn ShellSpawner
	log   *log.Logger
}

func NewTankShootingSystem(spawn ShellSpawner) *TankShootingSystem {
	return &TankShootingSystem{spawn: spawn, log: log.WithPrefix("shooting")}
}

func (s *TankShootingSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach4(w,
		component.TankComponent.Kind(),
		component.ShootingComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, tank *component.Tank, shoot *component.Shooting, input *component.Input, transform *component.Transform) {
			if !tank.ControlsEnabled || !isActive(w, e) || shoot.MaxLaunchForce <= 0 {
				return
			}
			if shoot.ChargeSpeed == 0 && shoot.MaxChargeTime > 0 {
				shoot.ChargeSpeed = (shoot.MaxLaunchForce - shoot.MinLaunchForce) / shoot.MaxChargeTime
			}

			shoot.AimValue = shoot.MinLaunchForce

			switch {
			case shoot.CurrentLaunchForce >= shoot.MaxLaunchForce && !shoot.Fired:
				shoot.CurrentLaunchForce = shoot.MaxLaunchForce
				s.fire(w, e, shoot, transform)
			case input.FireDown:
				shoot.Fired = false
				shoot.Charging = true
				shoot.CurrentLaunchForce = shoot.MinLaunchForce
				requestClip(w, e, clipShotCharging)
			case input.FireHeld && !shoot.Fired:
				shoot.CurrentLaunchForce += shoot.ChargeSpeed * dt
				shoot.AimValue = shoot.CurrentLaunchForce
			case input.FireUp && !shoot.Fired:
				s.fire(w, e, shoot, transform)
			}
		})
}

func (s *TankShootingSystem) fire(w *ecs.World, e ecs.Entity, shoot *component.Shooting, transform *component.Transform) {
	shoot.Fired = true
	shoot.Charging = false

	origin, velocity := LaunchParams(shoot, transform)
	if s.spawn != nil {
		if _, err := s.spawn(w, e, origin, velocity); err != nil {
			s.log.Error("spawn shell", "tank", e, "err", err)
		}
	}

	haltClip(w, e, clipShotCharging)
	requestClip(w, e, clipShotFiring)
	shoot.CurrentLaunchForce = shoot.MinLaunchForce
}

// LaunchParams places the muzzle in front of the tank and returns the shell's
// launch velocity for the current charge.
func LaunchParams(shoot *component.Shooting, transform *component.Transform) (origin, velocity common.Vec3) {
	forward := common.Forward(transform.Yaw)
	origin = transform.Position.Add(forward.Scale(shoot.FireOffset))
	origin.Y += shoot.FireHeight

	pitch := mgl64.DegToRad(shoot.FirePitch)
	force := shoot.CurrentLaunchForce
	velocity = forward.Scale(force * math.Cos(pitch))
	velocity.Y = force * math.Sin(pitch)
	return origin, velocity
}

// ResetShooting puts a tank's fire control back to its resting charge.
func ResetShooting(shoot *component.Shooting) {
	if shoot == nil {
		return
	}
	shoot.CurrentLaunchForce = shoot.MinLaunchForce
	shoot.AimValue = shoot.MinLaunchForce
	shoot.Fired = false
	shoot.Charging = false
}

func requestClip(w *ecs.World, e ecs.Entity, name string) {
	if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		a.Request(name)
	}
}

func haltClip(w *ecs.World, e ecs.Entity, name string) {
	if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		a.Halt(name)
	}
}
