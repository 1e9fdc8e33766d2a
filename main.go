package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixelsampler/common"
	"github.com/milk9111/pixelsampler/prefabs"
	"github.com/pkg/profile"
)

func main() {
	sceneName := flag.String("scene", prefabs.SceneFile, "scene spec in prefabs/ (disk copy overrides the embedded one)")
	debug := flag.Bool("debug", false, "show the debug overlay")
	watch := flag.Bool("watch", false, "reload the scene spec when files in prefabs/ change")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	texture := flag.String("texture", "", "texture path used instead of the scene's sprite texture")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown -profile %q (want cpu or mem)", *profileMode)
	}

	spec, err := prefabs.LoadSceneSpec(*sceneName)
	if err != nil {
		log.Fatal(err)
	}

	width, height := spec.Window.Width, spec.Window.Height
	if width <= 0 || height <= 0 {
		width, height = common.BaseWidth, common.BaseHeight
	}
	title := spec.Window.Title
	if title == "" {
		title = "pixelsampler"
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)

	game, err := NewGame(GameConfig{
		SceneName: *sceneName,
		Debug:     *debug,
		Watch:     *watch,
		Texture:   *texture,
	}, spec)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
