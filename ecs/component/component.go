package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentKind names one component store in the world, typed by the Go
// value it holds. Tank and camera systems look their state up through a kind.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind hands out the next free kind id. The zero kind is never
// returned, so an unset kind reports !Valid.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

// Valid reports whether k came from NewComponentKind.
func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the package-level registration of a component, e.g.
// TankComponent or CameraComponent. Systems call Kind on it to query.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent registers a component type. Call it once per type from a
// package var so every system shares the same kind.
func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// ComponentID indexes the world's component stores.
type ComponentID uint32

var nextComponentID atomic.Uint32
