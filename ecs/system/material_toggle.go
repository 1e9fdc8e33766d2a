package system

import (
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
	"github.com/milk9111/pixelsampler/ecs/render"
)

// MaterialSwap is the payload of an ecs.EventMaterialSwapped event.
type MaterialSwap struct {
	Entity   ecs.Entity
	Variant  component.MaterialVariant
	Material render.MaterialHandle
}

// MaterialToggleSystem flips every tagged entity between the pixel-art and
// the normal material when a toggle press edge arrives.
type MaterialToggleSystem struct {
	PixelArt render.MaterialHandle
	Normal   render.MaterialHandle
}

func NewMaterialToggleSystem(pixelArt, normal render.MaterialHandle) *MaterialToggleSystem {
	return &MaterialToggleSystem{PixelArt: pixelArt, Normal: normal}
}

func (s *MaterialToggleSystem) Update(w *ecs.World) {
	if s == nil || w == nil || !togglePressed(w) {
		return
	}
	ecs.ForEach2(w, component.MaterialVariantComponent.Kind(), component.MeshInstanceComponent.Kind(), func(e ecs.Entity, variant *component.MaterialVariant, mesh *component.MeshInstance) {
		*variant = variant.Next()
		mesh.Material = s.MaterialFor(*variant)
		w.Events().Push(ecs.Event{
			Type: ecs.EventMaterialSwapped,
			Data: MaterialSwap{Entity: e, Variant: *variant, Material: mesh.Material},
		})
	})
}

// MaterialFor returns the handle bound for variant.
func (s *MaterialToggleSystem) MaterialFor(variant component.MaterialVariant) render.MaterialHandle {
	if variant == component.MaterialPixelArt {
		return s.PixelArt
	}
	return s.Normal
}

func togglePressed(w *ecs.World) bool {
	pressed := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		pressed = pressed || in.TogglePressed
	})
	return pressed
}
