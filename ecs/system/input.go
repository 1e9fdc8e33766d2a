package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
)

// KeyState reports whether a key is currently held.
type KeyState interface {
	IsKeyPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// InputSystem turns held-key state into press edges: a key counts as pressed
// only on the tick it goes from released to held.
type InputSystem struct {
	keys      KeyState
	toggleKey ebiten.Key
	exportKey ebiten.Key

	toggleHeld bool
	exportHeld bool
	queued     int
}

func NewInputSystem(keys KeyState, toggleKey, exportKey ebiten.Key) *InputSystem {
	if keys == nil {
		keys = ebitenKeys{}
	}
	return &InputSystem{keys: keys, toggleKey: toggleKey, exportKey: exportKey}
}

// QueuePress injects one toggle press edge for the next tick, e.g. from a HUD
// button. A queued press is dropped when the toggle key is held on that tick or
// the one before, since the key itself already produced the edge.
func (i *InputSystem) QueuePress() {
	i.queued++
}

// Rebind switches keys without forgetting what is held: the held state is
// seeded from the new keys, so a key already down does not read as a fresh press.
func (i *InputSystem) Rebind(toggleKey, exportKey ebiten.Key) {
	i.toggleKey, i.exportKey = toggleKey, exportKey
	i.toggleHeld = i.keys.IsKeyPressed(toggleKey)
	i.exportHeld = i.keys.IsKeyPressed(exportKey)
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	toggleHeld := i.keys.IsKeyPressed(i.toggleKey)
	exportHeld := i.keys.IsKeyPressed(i.exportKey)

	togglePressed := toggleHeld && !i.toggleHeld
	if i.queued > 0 {
		togglePressed = togglePressed || (!toggleHeld && !i.toggleHeld)
		i.queued--
	}
	exportPressed := exportHeld && !i.exportHeld

	i.toggleHeld = toggleHeld
	i.exportHeld = exportHeld

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.TogglePressed = togglePressed
		input.ExportPressed = exportPressed
	})
}

// ParseKey resolves a key name such as "Space" or "F2".
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("input: unknown key %q: %w", name, err)
	}
	return k, nil
}
