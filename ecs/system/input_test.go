package system

import (
	"testing"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

func TestSmoothAxis(t *testing.T) {
	cases := []struct {
		name    string
		current float64
		raw     float64
		want    float64
	}{
		{"rise_from_rest", 0, 1, 0.3},
		{"fall_back", 0.5, 0, 0.2},
		{"settle_at_zero", -0.1, 0, 0},
		{"clamp_at_full", 0.95, 1, 1},
		{"reverse_snaps_through_zero", 0.5, -1, -0.3},
		{"raw_clamped", 0, 5, 0.3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := smoothAxis(c.current, c.raw, 0.1)
			if !approx(got, c.want) {
				t.Fatalf("smoothAxis(%v, %v) = %v, want %v", c.current, c.raw, got, c.want)
			}
		})
	}
}

func TestInputSystemReadsPlayersAndSkipsBots(t *testing.T) {
	w := ecs.NewWorld()
	human := addTank(t, w, 1, common.Vec3{})
	bot := addTank(t, w, 2, common.Vec3{X: 5})
	must(t, ecs.Add(w, bot, component.BotControllerComponent.Kind(), &component.BotController{Script: "bot.tengo"}))

	var asked []int
	w.AddSystem(NewInputSystem(func(player int) RawInput {
		asked = append(asked, player)
		return RawInput{Move: 1, Turn: -1, FireDown: true, FireHeld: true}
	}))
	w.Update(0.1)

	if len(asked) != 1 || asked[0] != 1 {
		t.Fatalf("expected only player 1 to be read, got %v", asked)
	}

	in, _ := ecs.Get(w, human, component.InputComponent.Kind())
	if in.RawMove != 1 || in.RawTurn != -1 {
		t.Fatalf("raw axes not stored: %+v", in)
	}
	if !approx(in.MoveAxis, 0.3) || !approx(in.TurnAxis, -0.3) {
		t.Fatalf("expected smoothed axes 0.3/-0.3, got %v/%v", in.MoveAxis, in.TurnAxis)
	}
	if !in.FireDown || !in.FireHeld || in.FireUp {
		t.Fatalf("fire flags not copied: %+v", in)
	}

	botIn, _ := ecs.Get(w, bot, component.InputComponent.Kind())
	if *botIn != (component.Input{}) {
		t.Fatalf("bot input should be untouched, got %+v", botIn)
	}
}
