package system

import (
	"errors"
	"math"
	"testing"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

const pulseScript = `
think := func(bot, state) {
	if is_undefined(state.ticks) {
		state.ticks = 0
	}
	state.ticks = state.ticks + 1
	bot.drive(0.5)
	bot.turn(-2)
	bot.fire(state.ticks < 3)
}
`

func newBotWorld(t *testing.T, src string) (*ecs.World, *BotSystem, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	bots := NewBotSystem()
	if src != "" {
		loads := 0
		bots.load = func(name string) ([]byte, error) {
			loads++
			if loads > 1 {
				t.Fatalf("script %q compiled more than once", name)
			}
			return []byte(src), nil
		}
	}
	w.AddSystem(bots)

	e := addTank(t, w, 2, common.Vec3{})
	must(t, ecs.Add(w, e, component.BotControllerComponent.Kind(), &component.BotController{Script: "bot.tengo"}))
	must(t, ecs.Add(w, e, component.ShootingComponent.Kind(), &component.Shooting{MinLaunchForce: 15, MaxLaunchForce: 30, CurrentLaunchForce: 15, FirePitch: 10}))
	return w, bots, e
}

func TestBotSystemDrivesInput(t *testing.T) {
	w, _, e := newBotWorld(t, pulseScript)
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())

	steps := []struct {
		name           string
		down, held, up bool
	}{
		{"press", true, true, false},
		{"hold", false, true, false},
		{"release", false, false, true},
		{"idle", false, false, false},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			w.Update(0.02)
			if in.MoveAxis != 0.5 || in.TurnAxis != -1 {
				t.Fatalf("expected axes 0.5/-1, got %v/%v", in.MoveAxis, in.TurnAxis)
			}
			if in.FireDown != s.down || in.FireHeld != s.held || in.FireUp != s.up {
				t.Fatalf("expected fire %v/%v/%v, got %+v", s.down, s.held, s.up, in)
			}
		})
	}
}

func TestBotSystemIdleWithoutControls(t *testing.T) {
	w, _, e := newBotWorld(t, pulseScript)
	tank, _ := ecs.Get(w, e, component.TankComponent.Kind())
	tank.ControlsEnabled = false

	w.Update(0.02)
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if *in != (component.Input{}) {
		t.Fatalf("bot without controls should not move, got %+v", in)
	}
}

func TestBotSystemBadScript(t *testing.T) {
	w, bots, e := newBotWorld(t, "think := func(bot, state) { bot.drive(")
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.MoveAxis = 1

	w.Update(0.02)
	w.Update(0.02)
	if *in != (component.Input{}) {
		t.Fatalf("broken script should leave the tank idle, got %+v", in)
	}
	if !bots.failed["bot.tengo"] {
		t.Fatalf("broken script should be remembered")
	}

	bots.Reload()
	if bots.failed["bot.tengo"] {
		t.Fatalf("reload should forget failures")
	}
}

func TestBotSystemLoadError(t *testing.T) {
	w, bots, _ := newBotWorld(t, "")
	bots.load = func(string) ([]byte, error) { return nil, errors.New("missing") }

	w.Update(0.02)
	if !bots.failed["bot.tengo"] {
		t.Fatalf("missing script should be marked failed")
	}
}

func TestBundledBotChasesEnemy(t *testing.T) {
	w, _, e := newBotWorld(t, "")
	addTank(t, w, 1, common.Vec3{Z: 30})

	w.Update(0.02)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if in.MoveAxis != 1 {
		t.Fatalf("expected the bot to close distance, got move %v", in.MoveAxis)
	}
	if math.Abs(in.TurnAxis) > eps {
		t.Fatalf("enemy dead ahead, expected no turn, got %v", in.TurnAxis)
	}
	if !in.FireDown {
		t.Fatalf("expected the bot to start charging, got %+v", in)
	}
}

func TestBearing(t *testing.T) {
	cases := []struct {
		name   string
		yaw    float64
		target common.Vec3
		want   float64
	}{
		{"ahead", 0, common.Vec3{Z: 10}, 0},
		{"right", 0, common.Vec3{X: 10}, 90},
		{"left", 0, common.Vec3{X: -10}, -90},
		{"behind_right", 0, common.Vec3{X: 10, Z: -10}, 135},
		{"turned_right", -math.Pi / 2, common.Vec3{X: 10}, 0},
		{"same_spot", 0, common.Vec3{}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Bearing(common.Vec3{}, c.yaw, c.target); !approx(got, c.want) {
				t.Fatalf("Bearing = %v, want %v", got, c.want)
			}
		})
	}
}
