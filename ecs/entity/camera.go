package entity

import (
	"fmt"

	"github.com/Ali-Parandeh/tanks/camera"
	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/prefabs"
)

// CameraConfig turns a camera spec into a rig config, filling zero fields
// with the rig defaults.
func CameraConfig(spec *prefabs.CameraSpec, aspect camera.AspectSource) camera.Config {
	cfg := camera.Config{
		DampTime:         camera.DefaultDampTime,
		ScreenEdgeBuffer: camera.DefaultScreenEdgeBuffer,
		MinSize:          camera.DefaultMinSize,
		Aspect:           aspect,
	}
	if spec == nil {
		return cfg
	}
	if spec.DampTime != 0 {
		cfg.DampTime = spec.DampTime
	}
	if spec.ScreenEdgeBuffer != 0 {
		cfg.ScreenEdgeBuffer = spec.ScreenEdgeBuffer
	}
	if spec.MinSize != 0 {
		cfg.MinSize = spec.MinSize
	}
	cfg.Pitch = spec.Pitch
	cfg.Yaw = spec.Yaw
	return cfg
}

// NewCamera spawns the framing camera. A failed build leaves nothing behind.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec, aspect camera.AspectSource) (_ ecs.Entity, err error) {
	cfg := CameraConfig(spec, aspect)
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}

	height := 0.0
	if spec != nil {
		height = spec.Height
	}

	cam := ecs.CreateEntity(w)
	defer func() {
		if err != nil {
			ecs.DestroyEntity(w, cam)
		}
	}()
	if err := ecs.Add(w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		Rig: camera.NewRig(cfg),
		State: camera.State{
			Position: common.Vec3{Y: height},
			Size:     cfg.MinSize,
		},
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	// Frame the tanks straight away instead of flying in from the origin.
	if err := ecs.Add(w, cam, component.CameraSnapRequestComponent.Kind(), &component.CameraSnapRequest{}); err != nil {
		return 0, fmt.Errorf("camera: add snap request: %w", err)
	}

	return cam, nil
}

// ApplyCameraSpec rebuilds every camera rig from spec, keeping the camera's
// current state and aspect source.
func ApplyCameraSpec(w *ecs.World, spec *prefabs.CameraSpec) error {
	if spec == nil {
		return fmt.Errorf("camera: nil spec")
	}
	var err error
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		var aspect camera.AspectSource
		if cam.Rig != nil {
			aspect = cam.Rig.Config().Aspect
		}
		cfg := CameraConfig(spec, aspect)
		if verr := cfg.Validate(); verr != nil {
			err = fmt.Errorf("camera: %w", verr)
			return
		}
		cam.Rig = camera.NewRig(cfg)
		cam.State.Position.Y = spec.Height
	})
	return err
}
