package system

import (
	"math"
	"testing"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

type shot struct {
	owner            ecs.Entity
	origin, velocity common.Vec3
}

func newShootingWorld(t *testing.T) (*ecs.World, ecs.Entity, *[]shot) {
	t.Helper()
	w := ecs.NewWorld()
	var shots []shot
	w.AddSystem(NewTankShootingSystem(func(_ *ecs.World, owner ecs.Entity, origin, velocity common.Vec3) (ecs.Entity, error) {
		shots = append(shots, shot{owner, origin, velocity})
		return 0, nil
	}))

	e := addTank(t, w, 1, common.Vec3{})
	must(t, ecs.Add(w, e, component.ShootingComponent.Kind(), &component.Shooting{
		MinLaunchForce:     15,
		MaxLaunchForce:     30,
		MaxChargeTime:      0.75,
		CurrentLaunchForce: 15,
		FireOffset:         1.4,
		FireHeight:         1.7,
	}))
	return w, e, &shots
}

func setFire(w *ecs.World, e ecs.Entity, down, held, up bool) {
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.FireDown, in.FireHeld, in.FireUp = down, held, up
}

func TestTankShootingChargeAndRelease(t *testing.T) {
	w, e, shots := newShootingWorld(t)
	shoot, _ := ecs.Get(w, e, component.ShootingComponent.Kind())

	setFire(w, e, true, true, false)
	w.Update(0.25)
	if !shoot.Charging || shoot.CurrentLaunchForce != 15 {
		t.Fatalf("expected charging at min force, got %+v", shoot)
	}

	setFire(w, e, false, true, false)
	w.Update(0.25)
	if !approx(shoot.CurrentLaunchForce, 20) || !approx(shoot.AimValue, 20) {
		t.Fatalf("expected force 20 after a quarter second, got %v (aim %v)", shoot.CurrentLaunchForce, shoot.AimValue)
	}

	setFire(w, e, false, false, true)
	w.Update(0.02)
	if len(*shots) != 1 {
		t.Fatalf("expected one shell, got %d", len(*shots))
	}
	s := (*shots)[0]
	if s.owner != e {
		t.Fatalf("shell owner %v, want %v", s.owner, e)
	}
	if !approxVec(s.origin, common.Vec3{Y: 1.7, Z: 1.4}) {
		t.Fatalf("unexpected muzzle %+v", s.origin)
	}
	if !approxVec(s.velocity, common.Vec3{Z: 20}) {
		t.Fatalf("unexpected launch velocity %+v", s.velocity)
	}
	if shoot.CurrentLaunchForce != 15 || shoot.Charging {
		t.Fatalf("fire control should reset after a shot, got %+v", shoot)
	}
}

func TestTankShootingAutoFiresAtMax(t *testing.T) {
	w, e, shots := newShootingWorld(t)

	setFire(w, e, true, true, false)
	w.Update(0.02)
	setFire(w, e, false, true, false)
	w.Update(1)
	if len(*shots) != 0 {
		t.Fatalf("should not fire while the charge crosses max")
	}
	w.Update(0.02)
	if len(*shots) != 1 {
		t.Fatalf("expected auto-fire at max charge, got %d shots", len(*shots))
	}
	if got := (*shots)[0].velocity.Len(); !approx(got, 30) {
		t.Fatalf("expected launch speed 30, got %v", got)
	}

	// Holding on, then letting go, must not fire a second shell.
	w.Update(0.02)
	setFire(w, e, false, false, true)
	w.Update(0.02)
	if len(*shots) != 1 {
		t.Fatalf("expected a single shell per press, got %d", len(*shots))
	}
}

func TestTankShootingNeedsControls(t *testing.T) {
	w, e, shots := newShootingWorld(t)
	tank, _ := ecs.Get(w, e, component.TankComponent.Kind())
	tank.ControlsEnabled = false

	setFire(w, e, true, true, false)
	w.Update(0.02)
	setFire(w, e, false, false, true)
	w.Update(0.02)
	if len(*shots) != 0 {
		t.Fatalf("tank without controls fired %d shells", len(*shots))
	}
}

func TestLaunchParams(t *testing.T) {
	shoot := &component.Shooting{CurrentLaunchForce: 20, FireOffset: 2, FireHeight: 1, FirePitch: 30}
	tr := &component.Transform{Position: common.Vec3{X: 3}, Yaw: -math.Pi / 2}

	origin, vel := LaunchParams(shoot, tr)
	if !approxVec(origin, common.Vec3{X: 5, Y: 1}) {
		t.Fatalf("unexpected origin %+v", origin)
	}
	want := common.Vec3{X: 20 * math.Cos(math.Pi/6), Y: 20 * math.Sin(math.Pi/6)}
	if !approxVec(vel, want) {
		t.Fatalf("expected velocity %+v, got %+v", want, vel)
	}
}
