// Package camera frames a set of moving targets with an orthographic camera.
//
// The rig keeps every active target on screen: it aims at the average target
// position and picks the smallest orthographic half-height that still fits
// all of them plus an edge buffer. Movement toward that framing is smoothed
// with a critically damped spring so the camera never overshoots.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultDampTime         = 0.2
	DefaultScreenEdgeBuffer = 4.0
	DefaultMinSize          = 6.5
)

var ErrInvalidConfig = errors.New("camera: invalid config")

// AspectSource reports the current viewport width divided by its height.
type AspectSource interface {
	Aspect() float64
}

// FixedAspect is an AspectSource that never changes.
type FixedAspect float64

func (a FixedAspect) Aspect() float64 { return float64(a) }

// Target is anything the camera should keep in view. The rig never holds on to
// targets between calls; callers pass the current set every tick.
type Target interface {
	Position() common.Vec3
	Active() bool
}

// Config is fixed once a Rig is built.
type Config struct {
	// DampTime is roughly the time the camera takes to reach its framing.
	DampTime float64
	// ScreenEdgeBuffer pads the framed extent, in world units.
	ScreenEdgeBuffer float64
	// MinSize is the smallest orthographic half-height the camera zooms to.
	MinSize float64
	// Aspect supplies the viewport aspect ratio; nil means 1.
	Aspect AspectSource
	// Pitch and Yaw orient the rig, in degrees.
	Pitch float64
	Yaw   float64
}

func (c Config) Validate() error {
	switch {
	case c.DampTime < 0 || math.IsNaN(c.DampTime):
		return fmt.Errorf("%w: damp time %v", ErrInvalidConfig, c.DampTime)
	case c.ScreenEdgeBuffer < 0 || math.IsNaN(c.ScreenEdgeBuffer):
		return fmt.Errorf("%w: screen edge buffer %v", ErrInvalidConfig, c.ScreenEdgeBuffer)
	case c.MinSize < 0 || math.IsNaN(c.MinSize):
		return fmt.Errorf("%w: min size %v", ErrInvalidConfig, c.MinSize)
	}
	return nil
}

// State is the mutable part of the camera, carried from one tick to the next.
// Position and zoom keep separate smoothing velocities.
type State struct {
	Position     common.Vec3
	Size         float64
	MoveVelocity common.Vec3
	ZoomVelocity float64
}

// Framing is where the camera wants to be this tick.
type Framing struct {
	Position common.Vec3
	Size     float64
}

// Rig computes and applies framings for one camera.
type Rig struct {
	cfg Config

	// toLocal undoes the rig orientation: yaw about Y, then pitch about X.
	toLocal mgl64.Quat
}

func NewRig(cfg Config) *Rig {
	orientation := mgl64.AnglesToQuat(mgl64.DegToRad(cfg.Yaw), mgl64.DegToRad(cfg.Pitch), 0, mgl64.YXZ)
	return &Rig{
		cfg:     cfg,
		toLocal: orientation.Inverse(),
	}
}

func (r *Rig) Config() Config {
	return r.cfg
}

func (r *Rig) aspect() float64 {
	if r.cfg.Aspect == nil {
		return 1
	}
	a := r.cfg.Aspect.Aspect()
	if a <= 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return 1
	}
	return a
}

// rotateToLocal expresses a world-space offset in the rig's axes.
func (r *Rig) rotateToLocal(d common.Vec3) common.Vec3 {
	v := r.toLocal.Rotate(mgl64.Vec3{d.X, d.Y, d.Z})
	return common.Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// ToLocal converts a world point into the camera's local frame.
func (r *Rig) ToLocal(s *State, p common.Vec3) common.Vec3 {
	var origin common.Vec3
	if s != nil {
		origin = s.Position
	}
	return r.rotateToLocal(p.Sub(origin))
}

// ToScreen projects a world point onto a screen of the given size.
func (r *Rig) ToScreen(s *State, p common.Vec3, screenW, screenH float64) (float64, float64) {
	local := r.ToLocal(s, p)
	scale := r.PixelsPerUnit(s, screenH)
	return screenW/2 + local.X*scale, screenH/2 - local.Y*scale
}

// PixelsPerUnit is the world-to-screen scale for the current zoom.
func (r *Rig) PixelsPerUnit(s *State, screenH float64) float64 {
	size := r.cfg.MinSize
	if s != nil && s.Size > 0 {
		size = s.Size
	}
	if size <= 0 {
		size = 1
	}
	return (screenH / 2) / size
}
