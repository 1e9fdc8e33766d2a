package component

import (
	"errors"
	"sync/atomic"
)

// Sentinel errors returned by the world when adding components.
var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a component store in a world. Zero is never issued.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind ties a ComponentID to the Go type stored under it, so the
// generic accessors in package ecs stay type safe.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind issues a fresh id. Two kinds of the same T are distinct stores.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

// Valid is false for the zero kind.
func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the package-level registration of a component type, e.g.
// TransformComponent. Systems pass Kind() to ecs.Add, ecs.Get and ecs.ForEach.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
