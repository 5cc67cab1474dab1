package entity

import (
	"fmt"
	"image/color"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/prefabs"
)

const defaultWallHeight = 3.0

var defaultWallColor = color.NRGBA{R: 0x7a, G: 0x5c, B: 0x3a, A: 0xff}

// NewArena builds the static walls of an arena and returns them in spec order.
// On error no wall of the arena is left in the world.
func NewArena(w *ecs.World, spec *prefabs.ArenaSpec) (_ []ecs.Entity, err error) {
	if spec == nil {
		return nil, fmt.Errorf("arena: nil spec")
	}

	clr := spec.WallColor.Or(defaultWallColor)
	walls := make([]ecs.Entity, 0, len(spec.Walls))
	defer func() {
		if err != nil {
			for _, e := range walls {
				ecs.DestroyEntity(w, e)
			}
		}
	}()
	for i, ws := range spec.Walls {
		if ws.Width <= 0 || ws.Depth <= 0 {
			return nil, fmt.Errorf("arena: wall %d: non-positive extent %gx%g", i, ws.Width, ws.Depth)
		}
		height := orDefault(ws.Height, defaultWallHeight)

		e := ecs.CreateEntity(w)
		walls = append(walls, e)
		if err := ecs.Add(w, e, component.WallComponent.Kind(), &component.Wall{
			Width:  ws.Width,
			Depth:  ws.Depth,
			Height: height,
			Color:  clr,
		}); err != nil {
			return nil, fmt.Errorf("arena: wall %d: add wall: %w", i, err)
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			Position: common.Vec3{X: ws.X, Z: ws.Z},
		}); err != nil {
			return nil, fmt.Errorf("arena: wall %d: add transform: %w", i, err)
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:   component.BodyWall,
			Width:  ws.Width,
			Length: ws.Depth,
			Height: height,
			Static: true,
		}); err != nil {
			return nil, fmt.Errorf("arena: wall %d: add physics body: %w", i, err)
		}
	}
	return walls, nil
}
