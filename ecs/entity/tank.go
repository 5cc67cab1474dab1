package entity

import (
	"fmt"
	"image/color"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/prefabs"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultTankSpeed     = 12.0
	defaultTankTurnSpeed = 180.0
	defaultTankHealth    = 100.0
	defaultMinLaunch     = 15.0
	defaultMaxLaunch     = 30.0
	defaultMaxCharge     = 0.75
	defaultTankWidth     = 1.6
	defaultTankLength    = 2.2
	defaultTankHeight    = 2.0
)

var (
	defaultFullHealthColor = color.NRGBA{G: 0xff, A: 0xff}
	defaultZeroHealthColor = color.NRGBA{R: 0xff, A: 0xff}
)

// TankOptions picks the seat a tank occupies.
type TankOptions struct {
	// Player is 1-based and indexes spec.Players.
	Player int
	// BotScript hands the tank to a script instead of a keyboard.
	BotScript string
	// Silent skips loading audio.
	Silent bool
}

func NewTank(w *ecs.World, spec *prefabs.TankSpec, opts TankOptions) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("tank: nil spec")
	}
	if opts.Player < 1 {
		return 0, fmt.Errorf("tank: invalid player %d", opts.Player)
	}

	tank := ecs.CreateEntity(w)
	if err := addTankComponents(w, tank, spec, opts); err != nil {
		ecs.DestroyEntity(w, tank)
		return 0, err
	}
	return tank, nil
}

// addTankComponents attaches everything a tank needs. The caller destroys
// the entity when it fails so no partial tank is left in the world.
func addTankComponents(w *ecs.World, tank ecs.Entity, spec *prefabs.TankSpec, opts TankOptions) error {
	seat := playerSeat(spec, opts.Player)
	spawn := common.Vec3{X: seat.Spawn.X, Z: seat.Spawn.Z}
	spawnYaw := mgl64.DegToRad(seat.Spawn.Yaw)

	if err := ecs.Add(w, tank, component.TankTagComponent.Kind(), &component.TankTag{}); err != nil {
		return fmt.Errorf("tank: add tank tag: %w", err)
	}
	if err := ecs.Add(w, tank, component.CameraTargetComponent.Kind(), &component.CameraTarget{}); err != nil {
		return fmt.Errorf("tank: add camera target: %w", err)
	}

	if err := ecs.Add(w, tank, component.TankComponent.Kind(), &component.Tank{
		Player:   opts.Player,
		Name:     seat.Name,
		Color:    seat.Color.Or(color.White),
		Spawn:    spawn,
		SpawnYaw: spawnYaw,
	}); err != nil {
		return fmt.Errorf("tank: add tank: %w", err)
	}

	if err := ecs.Add(w, tank, component.TransformComponent.Kind(), &component.Transform{
		Position: spawn,
		Yaw:      spawnYaw,
	}); err != nil {
		return fmt.Errorf("tank: add transform: %w", err)
	}

	if err := ecs.Add(w, tank, component.ActiveComponent.Kind(), &component.Active{Enabled: true}); err != nil {
		return fmt.Errorf("tank: add active: %w", err)
	}

	if err := ecs.Add(w, tank, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fmt.Errorf("tank: add input: %w", err)
	}
	if opts.BotScript != "" {
		if err := ecs.Add(w, tank, component.BotControllerComponent.Kind(), &component.BotController{Script: opts.BotScript}); err != nil {
			return fmt.Errorf("tank: add bot controller: %w", err)
		}
	}

	move := &component.Movement{}
	applyMovement(move, spec.Movement)
	if err := ecs.Add(w, tank, component.MovementComponent.Kind(), move); err != nil {
		return fmt.Errorf("tank: add movement: %w", err)
	}

	health := &component.Health{}
	applyHealth(health, spec.Health)
	health.Current = health.Starting
	health.BarColor = barColor(health)
	if err := ecs.Add(w, tank, component.HealthComponent.Kind(), health); err != nil {
		return fmt.Errorf("tank: add health: %w", err)
	}

	shoot := &component.Shooting{}
	applyShooting(shoot, spec.Shooting)
	shoot.CurrentLaunchForce = shoot.MinLaunchForce
	shoot.AimValue = shoot.MinLaunchForce
	if err := ecs.Add(w, tank, component.ShootingComponent.Kind(), shoot); err != nil {
		return fmt.Errorf("tank: add shooting: %w", err)
	}

	if err := ecs.Add(w, tank, component.KnockbackComponent.Kind(), &component.Knockback{Damping: spec.Knockback.Damping}); err != nil {
		return fmt.Errorf("tank: add knockback: %w", err)
	}

	if err := ecs.Add(w, tank, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyTank,
		Width:  orDefault(spec.Body.Width, defaultTankWidth),
		Length: orDefault(spec.Body.Length, defaultTankLength),
		Height: orDefault(spec.Body.Height, defaultTankHeight),
		Mass:   orDefault(spec.Body.Mass, 1),
	}); err != nil {
		return fmt.Errorf("tank: add physics body: %w", err)
	}

	if opts.Silent {
		return nil
	}

	audioComp, err := buildAudioComponent(spec.Audio)
	if err != nil {
		return fmt.Errorf("tank: %w", err)
	}
	if audioComp != nil {
		if err := ecs.Add(w, tank, component.AudioComponent.Kind(), audioComp); err != nil {
			return fmt.Errorf("tank: add audio: %w", err)
		}
	}

	engine, err := buildEngineAudio(spec.Engine)
	if err != nil {
		return fmt.Errorf("tank: %w", err)
	}
	if engine != nil {
		if err := ecs.Add(w, tank, component.EngineAudioComponent.Kind(), engine); err != nil {
			return fmt.Errorf("tank: add engine audio: %w", err)
		}
	}

	return nil
}

// ApplyTankSpec pushes tuning values from spec onto every live tank. Seats,
// colliders, and audio stay as built.
func ApplyTankSpec(w *ecs.World, spec *prefabs.TankSpec) error {
	if spec == nil {
		return fmt.Errorf("tank: nil spec")
	}

	for _, e := range w.Query(component.TankComponent.Kind()) {
		if move, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
			applyMovement(move, spec.Movement)
		}
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			applyHealth(health, spec.Health)
			if health.Current > health.Starting {
				health.Current = health.Starting
			}
			health.BarColor = barColor(health)
		}
		if shoot, ok := ecs.Get(w, e, component.ShootingComponent.Kind()); ok {
			applyShooting(shoot, spec.Shooting)
		}
		if kb, ok := ecs.Get(w, e, component.KnockbackComponent.Kind()); ok {
			kb.Damping = spec.Knockback.Damping
		}
		if engine, ok := ecs.Get(w, e, component.EngineAudioComponent.Kind()); ok {
			engine.Volume = spec.Engine.Volume
		}
	}
	return nil
}

func playerSeat(spec *prefabs.TankSpec, player int) prefabs.PlayerSpec {
	var seat prefabs.PlayerSpec
	if player <= len(spec.Players) {
		seat = spec.Players[player-1]
	}
	if seat.Name == "" {
		seat.Name = fmt.Sprintf("Player %d", player)
	}
	return seat
}

func applyMovement(move *component.Movement, spec prefabs.MovementSpec) {
	move.Speed = orDefault(spec.Speed, defaultTankSpeed)
	move.TurnSpeed = orDefault(spec.TurnSpeed, defaultTankTurnSpeed)
}

func applyHealth(health *component.Health, spec prefabs.HealthSpec) {
	health.Starting = orDefault(spec.Starting, defaultTankHealth)
	health.FullColor = spec.FullColor.Or(defaultFullHealthColor)
	health.ZeroColor = spec.ZeroColor.Or(defaultZeroHealthColor)
}

func barColor(health *component.Health) color.NRGBA {
	return common.LerpColor(health.ZeroColor, health.FullColor, health.Current/health.Starting)
}

func applyShooting(shoot *component.Shooting, spec prefabs.ShootingSpec) {
	shoot.MinLaunchForce = orDefault(spec.MinLaunchForce, defaultMinLaunch)
	shoot.MaxLaunchForce = orDefault(spec.MaxLaunchForce, defaultMaxLaunch)
	shoot.MaxChargeTime = orDefault(spec.MaxChargeTime, defaultMaxCharge)
	shoot.ChargeSpeed = (shoot.MaxLaunchForce - shoot.MinLaunchForce) / shoot.MaxChargeTime
	shoot.FireOffset = spec.FireOffset
	shoot.FireHeight = spec.FireHeight
	shoot.FirePitch = spec.FirePitch
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
