package system

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/storage"
	"github.com/charmbracelet/log"
)

// RoundRecorder persists finished rounds and matches.
type RoundRecorder interface {
	SaveRound(storage.RoundResult) error
	SaveMatch(storage.MatchResult) error
}

// RoundSystem runs the match: a start delay with controls locked, play until
// at most one tank is left, then an end delay showing the score.
type RoundSystem struct {
	recorder RoundRecorder
	now      func() time.Time
	log      *log.Logger
}

func NewRoundSystem(recorder RoundRecorder) *RoundSystem {
	return &RoundSystem{recorder: recorder, now: time.Now, log: log.WithPrefix("round")}
}

func (s *RoundSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventTankDestroyed {
			continue
		}
		if data, ok := evt.Data.(ecs.TankDestroyedEvent); ok {
			s.log.Debug("tank out", "player", data.Player)
		}
	}

	e, ok := w.First(component.RoundComponent.Kind())
	if !ok {
		return
	}
	round, _ := ecs.Get(w, e, component.RoundComponent.Kind())
	dt := w.DeltaTime()

	if round.Number == 0 {
		s.startMatch(round)
		s.startRound(w, round)
		return
	}

	switch round.Phase {
	case component.RoundStarting:
		round.Timer -= dt
		if round.Timer <= 0 {
			round.Phase = component.RoundPlaying
			round.Message = ""
			round.Elapsed = 0
			setControls(w, true)
		}
	case component.RoundPlaying:
		round.Elapsed += dt
		if activeTanks(w) <= 1 {
			s.endRound(w, round)
		}
	case component.RoundEnding, component.MatchOver:
		round.Timer -= dt
		if round.Timer > 0 {
			return
		}
		if round.Phase == component.MatchOver {
			s.startMatch(round)
			resetWins(w)
		}
		s.startRound(w, round)
	}
}

func (s *RoundSystem) startMatch(round *component.Round) {
	round.Number = 0
	round.RoundWinner = 0
	round.MatchWinner = 0
	round.MatchID = fmt.Sprintf("m%d", s.now().UnixNano())
	s.log.Info("match started", "match", round.MatchID)
}

func (s *RoundSystem) startRound(w *ecs.World, round *component.Round) {
	ResetTanks(w)
	setControls(w, false)
	RequestCameraSnap(w)

	round.Number++
	round.Phase = component.RoundStarting
	round.Timer = round.StartDelay
	round.RoundWinner = 0
	round.Message = fmt.Sprintf("ROUND %d", round.Number)
	s.log.Info("round started", "round", round.Number)
}

func (s *RoundSystem) endRound(w *ecs.World, round *component.Round) {
	setControls(w, false)

	winner, winnerTank := roundWinner(w)
	if winnerTank != nil {
		winnerTank.Wins++
		round.RoundWinner = winner
		if round.RoundsToWin > 0 && winnerTank.Wins >= round.RoundsToWin {
			round.MatchWinner = winner
		}
	}

	round.Phase = component.RoundEnding
	if round.MatchWinner != 0 {
		round.Phase = component.MatchOver
	}
	round.Timer = round.EndDelay
	round.Message = EndMessage(w, round)
	s.log.Info("round over", "round", round.Number, "winner", round.RoundWinner)

	s.record(w, round, winnerTank)
}

func (s *RoundSystem) record(w *ecs.World, round *component.Round, winner *component.Tank) {
	if s.recorder == nil {
		return
	}

	name := ""
	if winner != nil {
		name = winner.Name
	}
	at := s.now()
	err := s.recorder.SaveRound(storage.RoundResult{
		MatchID:    round.MatchID,
		Round:      round.Number,
		Winner:     round.RoundWinner,
		WinnerName: name,
		Duration:   round.Elapsed,
		PlayedAt:   at,
	})
	if err != nil {
		s.log.Warn("could not save round", "err", err)
	}

	if round.MatchWinner == 0 {
		return
	}
	result := storage.MatchResult{
		MatchID:    round.MatchID,
		Winner:     round.MatchWinner,
		WinnerName: name,
		Rounds:     round.Number,
		PlayedAt:   at,
	}
	for _, tank := range tanksByPlayer(w) {
		result.Scores = append(result.Scores, storage.PlayerScore{Player: tank.Player, Name: tank.Name, Wins: tank.Wins})
	}
	if err := s.recorder.SaveMatch(result); err != nil {
		s.log.Warn("could not save match", "err", err)
	}
}

// EndMessage is the banner shown between rounds.
func EndMessage(w *ecs.World, round *component.Round) string {
	var b strings.Builder

	tanks := tanksByPlayer(w)
	nameOf := func(player int) string {
		for _, t := range tanks {
			if t.Player == player {
				return strings.ToUpper(t.Name)
			}
		}
		return fmt.Sprintf("PLAYER %d", player)
	}

	switch {
	case round.MatchWinner != 0:
		b.WriteString(nameOf(round.MatchWinner) + " WINS THE GAME!")
	case round.RoundWinner != 0:
		b.WriteString(nameOf(round.RoundWinner) + " WINS THE ROUND!")
	default:
		b.WriteString("DRAW!")
	}

	b.WriteString("\n\n")
	for _, t := range tanks {
		fmt.Fprintf(&b, "%s: %d WINS\n", strings.ToUpper(t.Name), t.Wins)
	}
	return b.String()
}

// ResetTanks puts every tank back on its spawn point with full health and
// clears shells still in flight.
func ResetTanks(w *ecs.World) {
	for _, e := range w.Query(component.ShellComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}

	ecs.ForEach2(w, component.TankComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tank *component.Tank, transform *component.Transform) {
		transform.Position = tank.Spawn
		transform.Yaw = tank.SpawnYaw

		if active, ok := ecs.Get(w, e, component.ActiveComponent.Kind()); ok {
			active.Enabled = true
		}
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			ResetHealth(health)
		}
		if shoot, ok := ecs.Get(w, e, component.ShootingComponent.Kind()); ok {
			ResetShooting(shoot)
		}
		if kb, ok := ecs.Get(w, e, component.KnockbackComponent.Kind()); ok {
			kb.Velocity = common.Vec3{}
		}
		if move, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
			move.DriveVelocity = common.Vec3{}
			move.TurnRate = 0
		}
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			*input = component.Input{}
		}
		ecs.Remove(w, e, component.DamageRequestComponent.Kind())
	})
}

func setControls(w *ecs.World, enabled bool) {
	ecs.ForEach(w, component.TankComponent.Kind(), func(_ ecs.Entity, tank *component.Tank) {
		tank.ControlsEnabled = enabled
	})
}

func resetWins(w *ecs.World) {
	ecs.ForEach(w, component.TankComponent.Kind(), func(_ ecs.Entity, tank *component.Tank) {
		tank.Wins = 0
	})
}

func activeTanks(w *ecs.World) int {
	n := 0
	for _, e := range w.Query(component.TankComponent.Kind()) {
		if isActive(w, e) {
			n++
		}
	}
	return n
}

// roundWinner returns the only tank still active, if there is exactly one.
func roundWinner(w *ecs.World) (int, *component.Tank) {
	var winner *component.Tank
	for _, e := range w.Query(component.TankComponent.Kind()) {
		if !isActive(w, e) {
			continue
		}
		if winner != nil {
			return 0, nil
		}
		winner, _ = ecs.Get(w, e, component.TankComponent.Kind())
	}
	if winner == nil {
		return 0, nil
	}
	return winner.Player, winner
}

func tanksByPlayer(w *ecs.World) []*component.Tank {
	var tanks []*component.Tank
	ecs.ForEach(w, component.TankComponent.Kind(), func(_ ecs.Entity, tank *component.Tank) {
		tanks = append(tanks, tank)
	})
	sort.Slice(tanks, func(i, j int) bool { return tanks[i].Player < tanks[j].Player })
	return tanks
}
