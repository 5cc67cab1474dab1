package camera

import (
	"math"

	"github.com/Ali-Parandeh/tanks/common"
)

func isActive(t Target) bool {
	return t != nil && t.Active()
}

// framable reports the target's position when it is active and finite.
func framable(t Target) (common.Vec3, bool) {
	if !isActive(t) {
		return common.Vec3{}, false
	}
	p := t.Position()
	if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return common.Vec3{}, false
	}
	return p, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DesiredFraming works out where the camera should aim and how far it should
// zoom out to keep every active target visible. Targets with a non-finite
// position are ignored like inactive ones. With nothing left to frame the
// camera holds its position at minimum zoom. The camera height never changes.
func (r *Rig) DesiredFraming(s *State, targets []Target) Framing {
	var current State
	if s != nil {
		current = *s
	}

	var sum common.Vec3
	n := 0
	for _, t := range targets {
		p, ok := framable(t)
		if !ok {
			continue
		}
		sum = sum.Add(p)
		n++
	}
	if n == 0 {
		return Framing{Position: current.Position, Size: r.cfg.MinSize}
	}

	desired := common.Vec3{
		X: sum.X / float64(n),
		Y: current.Position.Y,
		Z: sum.Z / float64(n),
	}
	if !finite(desired.X) || !finite(desired.Z) {
		return Framing{Position: current.Position, Size: r.cfg.MinSize}
	}

	aspect := r.aspect()
	size := 0.0
	for _, t := range targets {
		p, ok := framable(t)
		if !ok {
			continue
		}
		local := r.rotateToLocal(p.Sub(desired))
		size = math.Max(size, math.Abs(local.Y))
		size = math.Max(size, math.Abs(local.X)/aspect)
	}
	size += r.cfg.ScreenEdgeBuffer
	size = math.Max(size, r.cfg.MinSize)

	return Framing{Position: desired, Size: size}
}

// Advance moves the camera one fixed step toward f.
func (r *Rig) Advance(s *State, dt float64, f Framing) {
	if s == nil || dt <= 0 {
		return
	}
	s.Position = SmoothDampVec3(s.Position, f.Position, &s.MoveVelocity, r.cfg.DampTime, dt)
	s.Size = SmoothDamp(s.Size, f.Size, &s.ZoomVelocity, r.cfg.DampTime, dt)
}

// Snap jumps straight to the desired framing and drops any momentum.
func (r *Rig) Snap(s *State, targets []Target) {
	if s == nil {
		return
	}
	f := r.DesiredFraming(s, targets)
	s.Position = f.Position
	s.Size = f.Size
	s.MoveVelocity = common.Vec3{}
	s.ZoomVelocity = 0
}
