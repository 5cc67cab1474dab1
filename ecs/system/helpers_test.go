package system

import (
	"fmt"
	"math"
	"testing"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func approxVec(a, b common.Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

// addTank builds a bare tank at pos with controls enabled.
func addTank(t *testing.T, w *ecs.World, player int, pos common.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TankComponent.Kind(), &component.Tank{
		Player:          player,
		Name:            fmt.Sprintf("Player %d", player),
		Spawn:           pos,
		ControlsEnabled: true,
	}))
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	must(t, ecs.Add(w, e, component.ActiveComponent.Kind(), &component.Active{Enabled: true}))
	must(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	return e
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// systemFunc adapts a function to ecs.System.
type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }

// eventRecorder drains the event queue so tests can look at what was pushed
// before the world flushes it.
type eventRecorder struct {
	events []ecs.Event
}

func (p *eventRecorder) Update(w *ecs.World) {
	p.events = append(p.events, w.Events().Drain()...)
}
