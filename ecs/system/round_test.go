package system

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/storage"
)

type fakeRecorder struct {
	rounds  []storage.RoundResult
	matches []storage.MatchResult
	err     error
}

func (f *fakeRecorder) SaveRound(r storage.RoundResult) error {
	f.rounds = append(f.rounds, r)
	return f.err
}

func (f *fakeRecorder) SaveMatch(m storage.MatchResult) error {
	f.matches = append(f.matches, m)
	return f.err
}

func newRoundWorld(t *testing.T, rec RoundRecorder) (*ecs.World, *component.Round, []ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	sys := NewRoundSystem(rec)
	sys.now = func() time.Time { return time.Unix(1700000000, 0) }
	w.AddSystem(sys)

	var tanks []ecs.Entity
	for i, x := range []float64{-10, 10} {
		e := addTank(t, w, i+1, common.Vec3{X: x})
		must(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Starting: 100, Current: 100}))
		tanks = append(tanks, e)
	}

	re := ecs.CreateEntity(w)
	must(t, ecs.Add(w, re, component.RoundComponent.Kind(), &component.Round{RoundsToWin: 2, StartDelay: 0.1, EndDelay: 0.1}))
	round, _ := ecs.Get(w, re, component.RoundComponent.Kind())
	return w, round, tanks
}

func knockOut(w *ecs.World, e ecs.Entity) {
	active, _ := ecs.Get(w, e, component.ActiveComponent.Kind())
	active.Enabled = false
	health, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	health.Current = 0
	health.Dead = true
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.Position = common.Vec3{X: 99, Z: 99}
}

func controlsEnabled(w *ecs.World, e ecs.Entity) bool {
	tank, _ := ecs.Get(w, e, component.TankComponent.Kind())
	return tank.ControlsEnabled
}

func TestRoundSystemMatchFlow(t *testing.T) {
	rec := &fakeRecorder{}
	w, round, tanks := newRoundWorld(t, rec)

	w.Update(0.1)
	if round.Number != 1 || round.Phase != component.RoundStarting || round.Message != "ROUND 1" {
		t.Fatalf("expected round 1 starting, got %+v", round)
	}
	if round.MatchID != "m1700000000000000000" {
		t.Fatalf("unexpected match id %q", round.MatchID)
	}
	if controlsEnabled(w, tanks[0]) {
		t.Fatalf("controls should be locked during the start delay")
	}

	w.Update(0.1)
	if round.Phase != component.RoundPlaying || !controlsEnabled(w, tanks[0]) || round.Message != "" {
		t.Fatalf("expected play with controls on, got %+v", round)
	}

	knockOut(w, tanks[1])
	w.Update(0.1)
	if round.Phase != component.RoundEnding || round.RoundWinner != 1 {
		t.Fatalf("expected player 1 to take the round, got %+v", round)
	}
	if !strings.HasPrefix(round.Message, "PLAYER 1 WINS THE ROUND!") {
		t.Fatalf("unexpected banner %q", round.Message)
	}
	if len(rec.rounds) != 1 || rec.rounds[0].Winner != 1 || rec.rounds[0].Round != 1 || rec.rounds[0].WinnerName != "Player 1" {
		t.Fatalf("expected round 1 recorded for player 1, got %+v", rec.rounds)
	}
	if controlsEnabled(w, tanks[0]) {
		t.Fatalf("controls should lock when the round ends")
	}

	w.Update(0.1)
	if round.Number != 2 || round.Phase != component.RoundStarting {
		t.Fatalf("expected round 2 starting, got %+v", round)
	}
	active, _ := ecs.Get(w, tanks[1], component.ActiveComponent.Kind())
	health, _ := ecs.Get(w, tanks[1], component.HealthComponent.Kind())
	tr, _ := ecs.Get(w, tanks[1], component.TransformComponent.Kind())
	if !active.Enabled || health.Dead || health.Current != 100 || tr.Position != (common.Vec3{X: 10}) {
		t.Fatalf("tank 2 should be back at spawn, got active=%v health=%+v pos=%+v", active.Enabled, health, tr.Position)
	}

	w.Update(0.1)
	knockOut(w, tanks[1])
	w.Update(0.1)
	if round.Phase != component.MatchOver || round.MatchWinner != 1 {
		t.Fatalf("expected player 1 to take the match, got %+v", round)
	}
	if !strings.HasPrefix(round.Message, "PLAYER 1 WINS THE GAME!") || !strings.Contains(round.Message, "PLAYER 1: 2 WINS") {
		t.Fatalf("unexpected banner %q", round.Message)
	}
	if len(rec.matches) != 1 {
		t.Fatalf("expected one match recorded, got %d", len(rec.matches))
	}
	m := rec.matches[0]
	if m.Winner != 1 || m.Rounds != 2 || len(m.Scores) != 2 || m.Scores[0].Wins != 2 || m.Scores[1].Wins != 0 {
		t.Fatalf("unexpected match result %+v", m)
	}

	w.Update(0.1)
	if round.Number != 1 || round.MatchWinner != 0 {
		t.Fatalf("expected a fresh match, got %+v", round)
	}
	tank, _ := ecs.Get(w, tanks[0], component.TankComponent.Kind())
	if tank.Wins != 0 {
		t.Fatalf("wins should reset for a new match, got %d", tank.Wins)
	}
}

func TestRoundSystemDraw(t *testing.T) {
	rec := &fakeRecorder{}
	w, round, tanks := newRoundWorld(t, rec)
	w.Update(0.1)
	w.Update(0.1)

	knockOut(w, tanks[0])
	knockOut(w, tanks[1])
	w.Update(0.1)

	if round.RoundWinner != 0 || round.Phase != component.RoundEnding {
		t.Fatalf("expected a draw, got %+v", round)
	}
	if !strings.HasPrefix(round.Message, "DRAW!") {
		t.Fatalf("unexpected banner %q", round.Message)
	}
	if len(rec.rounds) != 1 || rec.rounds[0].Winner != 0 {
		t.Fatalf("expected a draw recorded, got %+v", rec.rounds)
	}
}

func TestRoundSystemKeepsPlayingWhenRecorderFails(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	w, round, tanks := newRoundWorld(t, rec)
	w.Update(0.1)
	w.Update(0.1)
	knockOut(w, tanks[1])
	w.Update(0.1)
	w.Update(0.1)

	if round.Number != 2 {
		t.Fatalf("a failing recorder should not stall the match, round %d", round.Number)
	}
}

func TestRoundSystemRequestsCameraSnap(t *testing.T) {
	w, _, _ := newRoundWorld(t, nil)
	cam, _ := newTestCamera(t, w, false)

	w.Update(0.1)
	if !ecs.Has(w, cam, component.CameraSnapRequestComponent.Kind()) {
		t.Fatalf("a new round should snap the camera")
	}
}

func TestResetTanksClearsShells(t *testing.T) {
	w := ecs.NewWorld()
	shell := addShell(t, w, common.Vec3{Y: 1}, 0)
	e := addTank(t, w, 1, common.Vec3{X: 3})
	AddDamage(w, e, 20)

	ResetTanks(w)
	if ecs.IsAlive(w, shell) {
		t.Fatalf("shells in flight should be cleared")
	}
	if ecs.Has(w, e, component.DamageRequestComponent.Kind()) {
		t.Fatalf("pending damage should be dropped")
	}
}
