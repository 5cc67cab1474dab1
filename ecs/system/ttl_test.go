package system

import (
	"testing"

	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

func TestTTLSystem(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewTTLSystem())

	short := ecs.CreateEntity(w)
	must(t, ecs.Add(w, short, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.05}))
	long := ecs.CreateEntity(w)
	must(t, ecs.Add(w, long, component.TTLComponent.Kind(), &component.TTL{Seconds: 1}))
	// explosions without a TTL expire on their own duration
	blast := ecs.CreateEntity(w)
	must(t, ecs.Add(w, blast, component.ExplosionComponent.Kind(), &component.Explosion{Duration: 0.1}))

	w.Update(0.04)
	if !ecs.IsAlive(w, short) || !ecs.IsAlive(w, blast) {
		t.Fatalf("nothing should expire yet")
	}
	ex, _ := ecs.Get(w, blast, component.ExplosionComponent.Kind())
	if !approx(ex.Elapsed, 0.04) {
		t.Fatalf("explosion should age with the step, got %v", ex.Elapsed)
	}

	w.Update(0.04)
	if ecs.IsAlive(w, short) {
		t.Fatalf("short-lived entity should be gone")
	}
	if !ecs.IsAlive(w, long) {
		t.Fatalf("long-lived entity should remain")
	}

	w.Update(0.04)
	if ecs.IsAlive(w, blast) {
		t.Fatalf("finished explosion should be gone")
	}
}
