package camera

import (
	"math"
	"testing"

	"github.com/Ali-Parandeh/tanks/common"
)

func TestSmoothDampConvergesWithoutOvershoot(t *testing.T) {
	steps := []float64{0.016, 0.02, 0.1, 0.5}
	for _, dt := range steps {
		current, velocity := 0.0, 0.0
		prev := current
		for i := 0; i < int(3/dt); i++ {
			current = SmoothDamp(current, 10, &velocity, 0.2, dt)
			if current < prev {
				t.Fatalf("dt=%v step %d: moved backwards %v -> %v", dt, i, prev, current)
			}
			if current > 10 {
				t.Fatalf("dt=%v step %d: overshot to %v", dt, i, current)
			}
			prev = current
		}
		if math.Abs(current-10) > 1e-3 {
			t.Fatalf("dt=%v: did not settle, got %v", dt, current)
		}
	}
}

func TestSmoothDampZeroDeltaIsNoop(t *testing.T) {
	v := 3.0
	if got := SmoothDamp(1, 5, &v, 0.2, 0); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if v != 3 {
		t.Fatalf("velocity changed: %v", v)
	}
}

func TestAdvanceSettlesOnFraming(t *testing.T) {
	r := defaultRig(1)
	s := &State{Size: 30}
	f := Framing{Position: common.Vec3{X: 8, Z: -6}, Size: 9}

	prevDist := s.Position.Dist(f.Position)
	prevSize := s.Size
	for i := 0; i < 200; i++ {
		r.Advance(s, 0.02, f)
		d := s.Position.Dist(f.Position)
		if d > prevDist+1e-12 {
			t.Fatalf("step %d: moved away from target", i)
		}
		if s.Size > prevSize || s.Size < f.Size {
			t.Fatalf("step %d: zoom not monotonic, got %v", i, s.Size)
		}
		prevDist, prevSize = d, s.Size
	}
	if prevDist > 1e-3 || math.Abs(s.Size-f.Size) > 1e-3 {
		t.Fatalf("did not settle: dist %v size %v", prevDist, s.Size)
	}
	if s.Position.Y != 0 {
		t.Fatalf("camera height drifted to %v", s.Position.Y)
	}
}

func TestAdvanceKeepsVelocitiesSeparate(t *testing.T) {
	r := defaultRig(1)
	s := &State{Size: 6.5}
	// Only the zoom target moves.
	r.Advance(s, 0.02, Framing{Size: 20})
	if s.MoveVelocity != (common.Vec3{}) {
		t.Fatalf("position velocity picked up zoom motion: %+v", s.MoveVelocity)
	}
	if s.ZoomVelocity <= 0 {
		t.Fatalf("expected positive zoom velocity, got %v", s.ZoomVelocity)
	}
}

func TestSnapThenAdvanceHolds(t *testing.T) {
	r := defaultRig(16.0 / 9.0)
	s := &State{Position: common.Vec3{Y: 4}, Size: 40, MoveVelocity: common.Vec3{X: 5}, ZoomVelocity: -2}
	targets := []Target{at(-7, 0, 3), at(12, 0, -1), inactiveAt(99, 0, 99)}

	r.Snap(s, targets)
	if s.MoveVelocity != (common.Vec3{}) || s.ZoomVelocity != 0 {
		t.Fatalf("snap should clear velocities, got %+v", s)
	}
	want := *s

	r.Advance(s, 0.02, r.DesiredFraming(s, targets))
	if *s != want {
		t.Fatalf("expected no movement after snap, got %+v want %+v", *s, want)
	}
}

func TestAdvanceNilStateIsNoop(t *testing.T) {
	r := defaultRig(1)
	r.Advance(nil, 0.02, Framing{Size: 3})
	r.Snap(nil, nil)
}
