package entity

import (
	"fmt"

	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/prefabs"
)

const (
	defaultRoundsToWin = 5
	defaultStartDelay  = 3.0
	defaultEndDelay    = 3.0
)

// NewRound creates the match state entity. The round system starts the first
// round on its first tick.
func NewRound(w *ecs.World, spec *prefabs.RoundSpec) (_ ecs.Entity, err error) {
	r := &component.Round{
		RoundsToWin: defaultRoundsToWin,
		StartDelay:  defaultStartDelay,
		EndDelay:    defaultEndDelay,
	}
	if spec != nil {
		if spec.RoundsToWin > 0 {
			r.RoundsToWin = spec.RoundsToWin
		}
		r.StartDelay = orDefault(spec.StartDelay, defaultStartDelay)
		r.EndDelay = orDefault(spec.EndDelay, defaultEndDelay)
	}

	e := ecs.CreateEntity(w)
	defer func() {
		if err != nil {
			ecs.DestroyEntity(w, e)
		}
	}()
	if err := ecs.Add(w, e, component.RoundComponent.Kind(), r); err != nil {
		return 0, fmt.Errorf("round: add round: %w", err)
	}
	return e, nil
}
