package system

import (
	"github.com/Ali-Parandeh/tanks/camera"
	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

// CameraSystem keeps every CameraTarget entity in frame.
type CameraSystem struct {
	targets []camera.Target
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

type entityTarget struct {
	pos    common.Vec3
	active bool
}

func (t entityTarget) Position() common.Vec3 { return t.pos }
func (t entityTarget) Active() bool          { return t.active }

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	cs.targets = CameraTargets(w, cs.targets[:0])

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if cam.Rig == nil {
			return
		}

		if ecs.Has(w, e, component.CameraSnapRequestComponent.Kind()) {
			cam.Rig.Snap(&cam.State, cs.targets)
			ecs.Remove(w, e, component.CameraSnapRequestComponent.Kind())
			return
		}

		framing := cam.Rig.DesiredFraming(&cam.State, cs.targets)
		cam.Rig.Advance(&cam.State, w.DeltaTime(), framing)
	})
}

// CameraTargets appends a snapshot of every entity tagged CameraTarget to dst.
// Entities without an Active component count as active.
func CameraTargets(w *ecs.World, dst []camera.Target) []camera.Target {
	for _, e := range w.Query(component.CameraTargetComponent.Kind(), component.TransformComponent.Kind()) {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		active := true
		if a, ok := ecs.Get(w, e, component.ActiveComponent.Kind()); ok {
			active = a.Enabled
		}
		dst = append(dst, entityTarget{pos: transform.Position, active: active})
	}
	return dst
}

// RequestCameraSnap asks every camera to jump to its framing on the next tick.
func RequestCameraSnap(w *ecs.World) {
	for _, e := range w.Query(component.CameraComponent.Kind()) {
		_ = ecs.Add(w, e, component.CameraSnapRequestComponent.Kind(), &component.CameraSnapRequest{})
	}
}
