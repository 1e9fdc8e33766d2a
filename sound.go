package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/pixelsampler/assets"
)

// newClickSound returns nil when no audio device can be opened.
func newClickSound() (player *audio.Player) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("audio unavailable: %v", r)
			player = nil
		}
	}()
	return assets.NewClickPlayer()
}
