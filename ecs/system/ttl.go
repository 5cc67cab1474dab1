package system

import (
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

// TTLSystem counts TTL components down by the step and destroys entities
// whose time has run out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})

	ecs.ForEach(w, component.ExplosionComponent.Kind(), func(e ecs.Entity, ex *component.Explosion) {
		ex.Elapsed += dt
		if ex.Duration > 0 && ex.Elapsed >= ex.Duration && !ecs.Has(w, e, component.TTLComponent.Kind()) {
			ecs.DestroyEntity(w, e)
		}
	})
}
