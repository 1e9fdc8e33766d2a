package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
)

func TestInputSystemEdges(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})

	keys := fakeKeys{}
	sys := NewInputSystem(keys, ebiten.KeySpace, ebiten.KeyF2)

	steps := []struct {
		name       string
		space, f2  bool
		wantToggle bool
		wantExport bool
	}{
		{"released", false, false, false, false},
		{"space_down", true, false, true, false},
		{"space_held", true, false, false, false},
		{"f2_down_space_held", true, true, false, true},
		{"both_held", true, true, false, false},
		{"both_released", false, false, false, false},
		{"both_down", true, true, true, true},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			keys[ebiten.KeySpace] = step.space
			keys[ebiten.KeyF2] = step.f2
			sys.Update(w)
			in, _ := ecs.Get(w, e, component.InputComponent.Kind())
			if in.TogglePressed != step.wantToggle || in.ExportPressed != step.wantExport {
				t.Fatalf("got toggle=%v export=%v, want toggle=%v export=%v",
					in.TogglePressed, in.ExportPressed, step.wantToggle, step.wantExport)
			}
		})
	}
}

func TestInputSystemQueuedPress(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})

	sys := NewInputSystem(fakeKeys{}, ebiten.KeySpace, ebiten.KeyF2)
	sys.QueuePress()
	sys.QueuePress()

	want := []bool{true, true, false}
	for i, expected := range want {
		sys.Update(w)
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		if in.TogglePressed != expected {
			t.Fatalf("tick %d: toggle=%v, want %v", i, in.TogglePressed, expected)
		}
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		name    string
		want    ebiten.Key
		wantErr bool
	}{
		{"Space", ebiten.KeySpace, false},
		{"F2", ebiten.KeyF2, false},
		{"Escape", ebiten.KeyEscape, false},
		{"NotAKey", 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseKey(c.name)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", c.name, err)
			}
			if got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestInputSystemQueuedPressDuringKeyPress(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})

	keys := fakeKeys{}
	sys := NewInputSystem(keys, ebiten.KeySpace, ebiten.KeyF2)

	// a focused button submitting on the key's release queues a press on the
	// same key stroke the system already reported
	steps := []struct {
		name  string
		space bool
		queue bool
		want  bool
	}{
		{"space_down", true, false, true},
		{"space_up_with_button_submit", false, true, false},
		{"idle", false, false, false},
		{"queued_while_held", true, true, true},
		{"released", false, false, false},
		{"click_alone", false, true, true},
	}
	toggles := 0
	for _, step := range steps {
		keys[ebiten.KeySpace] = step.space
		if step.queue {
			sys.QueuePress()
		}
		sys.Update(w)
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		if in.TogglePressed != step.want {
			t.Fatalf("%s: toggle=%v, want %v", step.name, in.TogglePressed, step.want)
		}
		if in.TogglePressed {
			toggles++
		}
	}
	if toggles != 3 {
		t.Fatalf("expected 3 toggles (two key strokes and one click), got %d", toggles)
	}
}

func TestInputSystemRebindKeepsHeldState(t *testing.T) {
	cases := []struct {
		name      string
		rebindTo  ebiten.Key
		holdAfter ebiten.Key
	}{
		{"same_key", ebiten.KeySpace, ebiten.KeySpace},
		{"new_key_already_held", ebiten.KeyT, ebiten.KeyT},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})

			keys := fakeKeys{ebiten.KeySpace: true, ebiten.KeyT: true}
			sys := NewInputSystem(keys, ebiten.KeySpace, ebiten.KeyF2)
			sys.Update(w)

			sys.Rebind(c.rebindTo, ebiten.KeyF2)
			sys.Update(w)
			in, _ := ecs.Get(w, e, component.InputComponent.Kind())
			if in.TogglePressed {
				t.Fatal("a key held across a rebind must not read as a new press")
			}

			keys[c.holdAfter] = false
			sys.Update(w)
			keys[c.holdAfter] = true
			sys.Update(w)
			in, _ = ecs.Get(w, e, component.InputComponent.Kind())
			if !in.TogglePressed {
				t.Fatal("expected a press after release and re-press of the bound key")
			}
		})
	}
}
