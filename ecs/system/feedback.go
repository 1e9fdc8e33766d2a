package system

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/basicfont"
)

const toastSeconds = 1.5

// Sound is a rewindable one-shot, satisfied by *audio.Player.
type Sound interface {
	Rewind() error
	Play()
}

// FeedbackSystem reacts to material swaps with a fading toast and a click.
type FeedbackSystem struct {
	sound Sound
	face  text.Face
	tween *gween.Tween

	message string
	alpha   float64
}

func NewFeedbackSystem(sound Sound) *FeedbackSystem {
	return &FeedbackSystem{
		sound: sound,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

func (f *FeedbackSystem) Update(w *ecs.World) {
	if f == nil || w == nil {
		return
	}
	for _, evt := range w.Events().DrainType(ecs.EventMaterialSwapped) {
		swap, ok := evt.Data.(MaterialSwap)
		if !ok {
			continue
		}
		f.message = fmt.Sprintf("sampler: %s", swap.Variant)
		f.tween = gween.New(1, 0, toastSeconds, ease.InQuad)
		f.alpha = 1
		if f.sound != nil {
			if err := f.sound.Rewind(); err != nil {
				log.Printf("feedback: rewind click: %v", err)
			} else {
				f.sound.Play()
			}
		}
	}

	if f.tween == nil {
		return
	}
	v, done := f.tween.Update(float32(w.Time().Delta()))
	f.alpha = float64(v)
	if done {
		f.tween = nil
		f.alpha = 0
	}
}

// Toast returns the current message and its opacity in [0, 1].
func (f *FeedbackSystem) Toast() (string, float64) {
	if f == nil || f.alpha <= 0 {
		return "", 0
	}
	return f.message, f.alpha
}

func (f *FeedbackSystem) Draw(_ *ecs.World, screen *ebiten.Image) {
	msg, alpha := f.Toast()
	if msg == "" || screen == nil {
		return
	}
	b := screen.Bounds()
	op := &text.DrawOptions{}
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(float64(b.Dx())/2-float64(len(msg))*7, float64(b.Dy())-64)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, msg, f.face, op)
}
