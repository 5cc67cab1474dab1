package system

import (
	"math"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/charmbracelet/log"
)

// ExplosionSpawner places a blast effect in the world.
type ExplosionSpawner func(w *ecs.World, at common.Vec3) (ecs.Entity, error)

// ShellSystem flies shells along their arc and detonates them on impact or
// when they reach the ground.
type ShellSystem struct {
	explode ExplosionSpawner
	log     *log.Logger
}

func NewShellSystem(explode ExplosionSpawner) *ShellSystem {
	return &ShellSystem{explode: explode, log: log.WithPrefix("shell")}
}

func (s *ShellSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.ShellComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, shell *component.Shell, transform *component.Transform) {
		if shell.Exploded {
			return
		}

		shell.VerticalSpeed -= common.Gravity * dt
		transform.Position.Y += shell.VerticalSpeed * dt

		hit := ecs.Has(w, e, component.ShellImpactComponent.Kind())
		if transform.Position.Y <= 0 {
			transform.Position.Y = 0
			hit = true
		}
		if !hit {
			return
		}

		shell.Exploded = true
		s.detonate(w, shell, transform.Position)
		ecs.DestroyEntity(w, e)
	})
}

func (s *ShellSystem) detonate(w *ecs.World, shell *component.Shell, at common.Vec3) {
	radius := shell.BlastRadius
	dt := w.DeltaTime()

	for _, e := range w.Query(component.TankComponent.Kind(), component.TransformComponent.Kind()) {
		if !isActive(w, e) {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		hull := 0.0
		mass := 1.0
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			hull = body.HullRadius()
			if body.Mass > 0 {
				mass = body.Mass
			}
		}

		dist := at.Dist(transform.Position)
		if dist-hull > radius {
			continue
		}

		if kb, ok := ecs.Get(w, e, component.KnockbackComponent.Kind()); ok {
			kb.Velocity = kb.Velocity.Add(KnockbackImpulse(at, transform.Position, shell.ExplosionForce, radius, mass, dt))
		}

		damage := BlastDamage(dist, radius, shell.MaxDamage)
		if damage <= 0 {
			continue
		}
		AddDamage(w, e, damage)
		s.log.Debug("shell hit", "tank", e, "distance", dist, "damage", damage)
	}

	if s.explode != nil {
		if _, err := s.explode(w, at); err != nil {
			s.log.Error("spawn explosion", "err", err)
		}
	}
}

// BlastDamage scales maxDamage linearly from full at the centre to nothing at
// the edge of the blast.
func BlastDamage(dist, radius, maxDamage float64) float64 {
	if radius <= 0 {
		return 0
	}
	return math.Max(0, (radius-dist)/radius*maxDamage)
}

// KnockbackImpulse is the velocity change a blast at origin gives a body at
// target over one step. It pushes along the ground only.
func KnockbackImpulse(origin, target common.Vec3, force, radius, mass, dt float64) common.Vec3 {
	if radius <= 0 || mass <= 0 || force == 0 {
		return common.Vec3{}
	}
	dir := target.Sub(origin).XZ()
	if dir.Len() == 0 {
		return common.Vec3{}
	}
	falloff := common.Clamp01(1 - target.Dist(origin)/radius)
	return dir.Normalize().Scale(force * dt * falloff / mass)
}

// AddDamage accumulates damage for the health system to apply.
func AddDamage(w *ecs.World, e ecs.Entity, amount float64) {
	if req, ok := ecs.Get(w, e, component.DamageRequestComponent.Kind()); ok {
		req.Amount += amount
		return
	}
	_ = ecs.Add(w, e, component.DamageRequestComponent.Kind(), &component.DamageRequest{Amount: amount})
}
