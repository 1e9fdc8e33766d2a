package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/pixelsampler/common"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
	"github.com/milk9111/pixelsampler/ecs/entity"
	"github.com/milk9111/pixelsampler/ecs/system"
	"github.com/milk9111/pixelsampler/prefabs"
)

type GameConfig struct {
	SceneName string
	Debug     bool
	Watch     bool
	Texture   string

	// Keys replaces the keyboard as the source of held keys. Nil reads Ebiten.
	Keys system.KeyState
}

type Game struct {
	cfg GameConfig

	scene     *entity.Scene
	scheduler *ecs.Scheduler
	input     *system.InputSystem
	hud       *HUD
	sound     system.Sound
	clipboard *systemClipboard
	watcher   *prefabs.Watcher
}

func NewGame(cfg GameConfig, spec *prefabs.SceneSpec) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		clipboard: &systemClipboard{},
	}
	if player := newClickSound(); player != nil {
		g.sound = player
	}

	if err := g.load(spec); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds a scene from spec and wires fresh systems to it. The previous
// scene's orbit and material state carry over, and the input system is kept
// so keys held across a reload do not fire again.
func (g *Game) load(spec *prefabs.SceneSpec) error {
	scene, err := entity.BuildScene(spec, entity.Options{TextureOverride: g.cfg.Texture})
	if err != nil {
		return err
	}
	scene.CarryState(g.scene)

	toggleKey, err := system.ParseKey(orDefault(spec.Input.ToggleKey, "Space"))
	if err != nil {
		return err
	}
	exportKey, err := system.ParseKey(orDefault(spec.Input.ExportKey, "F2"))
	if err != nil {
		return err
	}

	if g.input == nil {
		g.input = system.NewInputSystem(g.cfg.Keys, toggleKey, exportKey)
	} else {
		g.input.Rebind(toggleKey, exportKey)
	}
	g.scheduler = ecs.NewScheduler(
		g.input,
		system.NewOrbitCameraSystem(),
		system.NewMaterialToggleSystem(scene.PixelArt, scene.Normal),
		system.NewOrbitExportSystem(g.clipboard),
		system.NewRenderSystem(scene.Assets, scene.Ambient, common.BaseWidth, common.BaseHeight),
		// drawn after the scene so the toast stays on top
		system.NewFeedbackSystem(g.sound),
	)
	g.scene = scene
	g.hud = NewHUD(toggleKey.String(), g.input.QueuePress)
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.Close()
		return ebiten.Termination
	}
	g.pollReload()

	w := g.scene.World
	w.Tick(1 / float64(ebiten.TPS()))
	g.hud.Update()
	g.scheduler.Update(w)

	if sprite, ok := w.First(component.MaterialVariantComponent.Kind()); ok {
		if v, ok := ecs.Get(w, sprite, component.MaterialVariantComponent.Kind()); ok {
			g.hud.SetSampler(*v)
		}
	}
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	changed, err := g.watcher.Poll()
	if err != nil {
		log.Printf("watch %s: %v", prefabs.Dir, err)
	}
	for _, path := range changed {
		if !prefabs.Matches(path, g.cfg.SceneName) {
			continue
		}
		spec, err := prefabs.LoadSceneSpec(g.cfg.SceneName)
		if err != nil {
			log.Printf("reload %s: %v; keeping previous scene", g.cfg.SceneName, err)
			return
		}
		if err := g.load(spec); err != nil {
			log.Printf("reload %s: %v; keeping previous scene", g.cfg.SceneName, err)
			return
		}
		if mod, ok := prefabs.ModTime(g.cfg.SceneName); ok {
			log.Printf("reloaded %s (modified %s)", g.cfg.SceneName, mod.Format("15:04:05"))
		}
		return
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.scene.World
	g.scheduler.Draw(w, screen)
	g.hud.Draw(screen)

	if !g.cfg.Debug {
		return
	}
	msg := fmt.Sprintf("FPS: %.2f  TPS: %.2f  frame: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), w.Time().Frames())
	if cam, ok := w.First(component.OrbitComponent.Kind()); ok {
		if o, ok := ecs.Get(w, cam, component.OrbitComponent.Kind()); ok {
			msg += fmt.Sprintf("\norbit angle: %.3f rad", o.Angle)
		}
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Close releases the prefab watcher.
func (g *Game) Close() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		log.Printf("close watcher: %v", err)
	}
	g.watcher = nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
