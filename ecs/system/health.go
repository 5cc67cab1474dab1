package system

import (
	"image/color"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/charmbracelet/log"
)

// HealthSystem applies queued damage and takes tanks out when they run dry.
type HealthSystem struct {
	explode ExplosionSpawner
	log     *log.Logger
}

func NewHealthSystem(explode ExplosionSpawner) *HealthSystem {
	return &HealthSystem{explode: explode, log: log.WithPrefix("health")}
}

func (s *HealthSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, health *component.Health) {
		if req, ok := ecs.Get(w, e, component.DamageRequestComponent.Kind()); ok {
			ecs.Remove(w, e, component.DamageRequestComponent.Kind())
			if !health.Dead && req.Amount > 0 {
				health.Current -= req.Amount
			}
		}

		health.BarColor = HealthColor(health)

		if health.Current <= 0 && !health.Dead {
			s.kill(w, e, health)
		}
	})
}

func (s *HealthSystem) kill(w *ecs.World, e ecs.Entity, health *component.Health) {
	health.Dead = true

	if active, ok := ecs.Get(w, e, component.ActiveComponent.Kind()); ok {
		active.Enabled = false
	}

	player := 0
	if tank, ok := ecs.Get(w, e, component.TankComponent.Kind()); ok {
		player = tank.Player
	}

	if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && s.explode != nil {
		if _, err := s.explode(w, transform.Position); err != nil {
			s.log.Error("spawn tank explosion", "tank", e, "err", err)
		}
	}

	s.log.Info("tank destroyed", "player", player)
	w.Events().Push(ecs.Event{
		Type: ecs.EventTankDestroyed,
		Data: ecs.TankDestroyedEvent{Entity: e, Player: player},
	})
}

// HealthColor blends from the zero colour to the full colour by the fraction
// of health left.
func HealthColor(health *component.Health) color.NRGBA {
	if health.FullColor == nil || health.ZeroColor == nil || health.Starting <= 0 {
		return health.BarColor
	}
	return common.LerpColor(health.ZeroColor, health.FullColor, health.Current/health.Starting)
}

// ResetHealth restores a tank to full health for a new round.
func ResetHealth(health *component.Health) {
	if health == nil {
		return
	}
	health.Current = health.Starting
	health.Dead = false
	health.BarColor = HealthColor(health)
}
