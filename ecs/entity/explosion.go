package entity

import (
	"fmt"
	"image/color"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/prefabs"
)

const (
	clipShellExplosion = "shell_explosion"
	clipTankExplosion  = "tank_explosion"

	defaultExplosionRadius   = 4.0
	defaultExplosionDuration = 1.0
)

var defaultExplosionColor = color.NRGBA{R: 0xff, G: 0x80, B: 0x20, A: 0xff}

// NewShellExplosion leaves the blast effect where a shell went off.
func NewShellExplosion(w *ecs.World, spec *prefabs.ShellSpec, at common.Vec3, silent bool) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("explosion: nil shell spec")
	}
	var clips []prefabs.AudioSpec
	if !silent {
		clips = clipsNamed(spec.Audio, clipShellExplosion)
	}
	return newExplosion(w, spec.Explosion, at, clips)
}

// NewTankExplosion leaves the blast effect where a tank died.
func NewTankExplosion(w *ecs.World, spec *prefabs.TankSpec, at common.Vec3, silent bool) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("explosion: nil tank spec")
	}
	var clips []prefabs.AudioSpec
	if !silent {
		clips = clipsNamed(spec.Audio, clipTankExplosion)
	}
	return newExplosion(w, spec.Explosion, at, clips)
}

func newExplosion(w *ecs.World, spec prefabs.ExplosionSpec, at common.Vec3, clips []prefabs.AudioSpec) (_ ecs.Entity, err error) {
	duration := orDefault(spec.Duration, defaultExplosionDuration)

	ex := ecs.CreateEntity(w)
	defer func() {
		if err != nil {
			ecs.DestroyEntity(w, ex)
		}
	}()
	if err := ecs.Add(w, ex, component.ExplosionComponent.Kind(), &component.Explosion{
		Radius:   orDefault(spec.Radius, defaultExplosionRadius),
		Duration: duration,
		Color:    spec.Color.Or(defaultExplosionColor),
	}); err != nil {
		return 0, fmt.Errorf("explosion: add explosion: %w", err)
	}
	if err := ecs.Add(w, ex, component.TransformComponent.Kind(), &component.Transform{Position: at}); err != nil {
		return 0, fmt.Errorf("explosion: add transform: %w", err)
	}
	if err := ecs.Add(w, ex, component.TTLComponent.Kind(), &component.TTL{Seconds: duration}); err != nil {
		return 0, fmt.Errorf("explosion: add ttl: %w", err)
	}

	audioComp, err := buildAudioComponent(clips)
	if err != nil {
		return 0, fmt.Errorf("explosion: %w", err)
	}
	if audioComp != nil {
		for _, c := range clips {
			audioComp.Request(c.Name)
		}
		if err := ecs.Add(w, ex, component.AudioComponent.Kind(), audioComp); err != nil {
			return 0, fmt.Errorf("explosion: add audio: %w", err)
		}
	}

	return ex, nil
}

func clipsNamed(specs []prefabs.AudioSpec, name string) []prefabs.AudioSpec {
	for _, s := range specs {
		if s.Name == name {
			return []prefabs.AudioSpec{s}
		}
	}
	return nil
}
