package entity

import (
	"fmt"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/prefabs"
)

const (
	defaultShellRadius   = 0.2
	defaultShellMass     = 0.1
	defaultShellDamage   = 100.0
	defaultShellForce    = 1000.0
	defaultBlastRadius   = 5.0
	defaultShellLifetime = 2.0
)

// NewShell launches a shell from origin. velocity carries both the ground
// speed and the upward speed; the physics body moves the former and the shell
// system integrates the latter.
func NewShell(w *ecs.World, spec *prefabs.ShellSpec, owner ecs.Entity, origin, velocity common.Vec3) (_ ecs.Entity, err error) {
	if spec == nil {
		return 0, fmt.Errorf("shell: nil spec")
	}

	radius := orDefault(spec.Radius, defaultShellRadius)

	shell := ecs.CreateEntity(w)
	defer func() {
		if err != nil {
			ecs.DestroyEntity(w, shell)
		}
	}()
	if err := ecs.Add(w, shell, component.ShellComponent.Kind(), &component.Shell{
		Owner:          uint64(owner),
		Velocity:       velocity.XZ(),
		VerticalSpeed:  velocity.Y,
		Radius:         radius,
		MaxDamage:      orDefault(spec.MaxDamage, defaultShellDamage),
		ExplosionForce: orDefault(spec.ExplosionForce, defaultShellForce),
		BlastRadius:    orDefault(spec.BlastRadius, defaultBlastRadius),
	}); err != nil {
		return 0, fmt.Errorf("shell: add shell: %w", err)
	}

	yaw := 0.0
	if owner.Valid() {
		if t, ok := ecs.Get(w, owner, component.TransformComponent.Kind()); ok {
			yaw = t.Yaw
		}
	}
	if err := ecs.Add(w, shell, component.TransformComponent.Kind(), &component.Transform{Position: origin, Yaw: yaw}); err != nil {
		return 0, fmt.Errorf("shell: add transform: %w", err)
	}

	if err := ecs.Add(w, shell, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyShell,
		Radius: radius,
		Mass:   orDefault(spec.Mass, defaultShellMass),
		Sensor: true,
	}); err != nil {
		return 0, fmt.Errorf("shell: add physics body: %w", err)
	}

	if err := ecs.Add(w, shell, component.TTLComponent.Kind(), &component.TTL{
		Seconds: orDefault(spec.MaxLifetime, defaultShellLifetime),
	}); err != nil {
		return 0, fmt.Errorf("shell: add ttl: %w", err)
	}

	return shell, nil
}
