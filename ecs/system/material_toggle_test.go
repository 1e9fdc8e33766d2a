package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
	"github.com/milk9111/pixelsampler/ecs/render"
)

const (
	pixelArtHandle render.MaterialHandle = 1
	normalHandle   render.MaterialHandle = 2
)

type fakeKeys map[ebiten.Key]bool

func (k fakeKeys) IsKeyPressed(key ebiten.Key) bool {
	return k[key]
}

func toggleWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	sprite := ecs.CreateEntity(w)
	variant := component.MaterialPixelArt
	if err := ecs.Add(w, sprite, component.MaterialVariantComponent.Kind(), &variant); err != nil {
		t.Fatalf("add variant: %v", err)
	}
	if err := ecs.Add(w, sprite, component.MeshInstanceComponent.Kind(), &component.MeshInstance{Mesh: 1, Material: pixelArtHandle}); err != nil {
		t.Fatalf("add mesh: %v", err)
	}

	controls := ecs.CreateEntity(w)
	if err := ecs.Add(w, controls, component.InputComponent.Kind(), &component.Input{}); err != nil {
		t.Fatalf("add input: %v", err)
	}
	return w, sprite
}

func spriteState(t *testing.T, w *ecs.World, e ecs.Entity) (component.MaterialVariant, render.MaterialHandle) {
	t.Helper()
	v, ok := ecs.Get(w, e, component.MaterialVariantComponent.Kind())
	if !ok {
		t.Fatalf("sprite lost its variant")
	}
	m, ok := ecs.Get(w, e, component.MeshInstanceComponent.Kind())
	if !ok {
		t.Fatalf("sprite lost its mesh instance")
	}
	return *v, m.Material
}

func TestMaterialToggleParity(t *testing.T) {
	for presses := 0; presses <= 5; presses++ {
		w, sprite := toggleWorld(t)
		keys := fakeKeys{}
		scheduler := ecs.NewScheduler(
			NewInputSystem(keys, ebiten.KeySpace, ebiten.KeyF2),
			NewMaterialToggleSystem(pixelArtHandle, normalHandle),
		)
		for i := 0; i < presses; i++ {
			keys[ebiten.KeySpace] = true
			scheduler.Update(w)
			keys[ebiten.KeySpace] = false
			scheduler.Update(w)
		}

		variant, mat := spriteState(t, w, sprite)
		wantVariant, wantMat := component.MaterialPixelArt, pixelArtHandle
		if presses%2 == 1 {
			wantVariant, wantMat = component.MaterialNormal, normalHandle
		}
		if variant != wantVariant || mat != wantMat {
			t.Fatalf("%d presses: got (%v, %d), want (%v, %d)", presses, variant, mat, wantVariant, wantMat)
		}
	}
}

func TestMaterialToggleHeldKeyFiresOnce(t *testing.T) {
	w, sprite := toggleWorld(t)
	keys := fakeKeys{ebiten.KeySpace: true}
	scheduler := ecs.NewScheduler(
		NewInputSystem(keys, ebiten.KeySpace, ebiten.KeyF2),
		NewMaterialToggleSystem(pixelArtHandle, normalHandle),
	)

	for i := 0; i < 30; i++ {
		scheduler.Update(w)
	}
	variant, mat := spriteState(t, w, sprite)
	if variant != component.MaterialNormal || mat != normalHandle {
		t.Fatalf("held key should flip exactly once, got (%v, %d)", variant, mat)
	}
}

func TestMaterialToggleScenario(t *testing.T) {
	w, sprite := toggleWorld(t)
	keys := fakeKeys{}
	scheduler := ecs.NewScheduler(
		NewInputSystem(keys, ebiten.KeySpace, ebiten.KeyF2),
		NewMaterialToggleSystem(pixelArtHandle, normalHandle),
	)

	steps := []struct {
		name    string
		held    bool
		variant component.MaterialVariant
		mat     render.MaterialHandle
	}{
		{"idle", false, component.MaterialPixelArt, pixelArtHandle},
		{"press", true, component.MaterialNormal, normalHandle},
		{"hold", true, component.MaterialNormal, normalHandle},
		{"release", false, component.MaterialNormal, normalHandle},
		{"press_again", true, component.MaterialPixelArt, pixelArtHandle},
		{"release_again", false, component.MaterialPixelArt, pixelArtHandle},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			keys[ebiten.KeySpace] = step.held
			scheduler.Update(w)
			variant, mat := spriteState(t, w, sprite)
			if variant != step.variant || mat != step.mat {
				t.Fatalf("got (%v, %d), want (%v, %d)", variant, mat, step.variant, step.mat)
			}
		})
	}
}

func TestMaterialToggleEmitsSwapEvent(t *testing.T) {
	w, sprite := toggleWorld(t)
	in, _ := ecs.Get(w, mustFirst(t, w), component.InputComponent.Kind())
	in.TogglePressed = true

	NewMaterialToggleSystem(pixelArtHandle, normalHandle).Update(w)

	events := w.Events().DrainType(ecs.EventMaterialSwapped)
	if len(events) != 1 {
		t.Fatalf("expected 1 swap event, got %d", len(events))
	}
	swap, ok := events[0].Data.(MaterialSwap)
	if !ok {
		t.Fatalf("unexpected payload %T", events[0].Data)
	}
	if swap.Entity != sprite || swap.Variant != component.MaterialNormal || swap.Material != normalHandle {
		t.Fatalf("unexpected swap %+v", swap)
	}
}

func TestMaterialToggleWithoutInputIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	variant := component.MaterialNormal
	_ = ecs.Add(w, e, component.MaterialVariantComponent.Kind(), &variant)
	_ = ecs.Add(w, e, component.MeshInstanceComponent.Kind(), &component.MeshInstance{Material: normalHandle})

	NewMaterialToggleSystem(pixelArtHandle, normalHandle).Update(w)

	got, mat := spriteState(t, w, e)
	if got != component.MaterialNormal || mat != normalHandle {
		t.Fatalf("no input entity should mean no toggle, got (%v, %d)", got, mat)
	}
}

func mustFirst(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e, ok := w.First(component.InputComponent.Kind())
	if !ok {
		t.Fatalf("no input entity")
	}
	return e
}

func TestMaterialToggleIndependentSprites(t *testing.T) {
	w, first := toggleWorld(t)

	second := ecs.CreateEntity(w)
	variant := component.MaterialNormal
	if err := ecs.Add(w, second, component.MaterialVariantComponent.Kind(), &variant); err != nil {
		t.Fatalf("add variant: %v", err)
	}
	if err := ecs.Add(w, second, component.MeshInstanceComponent.Kind(), &component.MeshInstance{Mesh: 1, Material: normalHandle}); err != nil {
		t.Fatalf("add mesh: %v", err)
	}

	keys := fakeKeys{}
	scheduler := ecs.NewScheduler(
		NewInputSystem(keys, ebiten.KeySpace, ebiten.KeyF2),
		NewMaterialToggleSystem(pixelArtHandle, normalHandle),
	)
	sys := NewMaterialToggleSystem(pixelArtHandle, normalHandle)

	// each sprite flips once per edge, so they stay out of phase
	for press := 1; press <= 4; press++ {
		keys[ebiten.KeySpace] = true
		scheduler.Update(w)
		keys[ebiten.KeySpace] = false
		scheduler.Update(w)

		odd := press%2 == 1
		for _, c := range []struct {
			name  string
			e     ecs.Entity
			start component.MaterialVariant
		}{
			{"first", first, component.MaterialPixelArt},
			{"second", second, component.MaterialNormal},
		} {
			want := c.start
			if odd {
				want = want.Next()
			}
			v, h := spriteState(t, w, c.e)
			if v != want {
				t.Fatalf("press %d: %s sprite variant = %v, want %v", press, c.name, v, want)
			}
			if h != sys.MaterialFor(v) {
				t.Fatalf("press %d: %s sprite handle %v does not match variant %v", press, c.name, h, v)
			}
		}
	}
}
