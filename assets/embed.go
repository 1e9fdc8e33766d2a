package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

//go:embed *.png
var assetsFS embed.FS

// SpriteTexture is the default texture drawn on the sprite quad.
const SpriteTexture = "pixel_sprite.png"

const sampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// DecodeImage decodes an embedded image by assets-relative path.
func DecodeImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// Checkerboard is a procedural stand-in texture: size x size cells of cell pixels,
// alternating a and b, with a transparent one-pixel border so the alpha mask is visible.
func Checkerboard(size, cell int, a, b color.NRGBA) *image.NRGBA {
	if size < 1 {
		size = 1
	}
	if cell < 1 {
		cell = 1
	}
	px := size * cell
	img := image.NewNRGBA(image.Rect(0, 0, px, px))
	for y := 1; y < px-1; y++ {
		for x := 1; x < px-1; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// AudioContext returns the shared audio context, creating it on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(sampleRate)
		}
	})
	return audioContext
}

// ClickPCM renders a short decaying sine blip as 16-bit stereo little-endian PCM.
func ClickPCM(freq float64, seconds float64, volume float64) []byte {
	n := int(seconds * sampleRate)
	if n <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		env := math.Exp(-t * 40)
		v := int16(math.Sin(2*math.Pi*freq*t) * env * volume * math.MaxInt16)
		lo, hi := byte(v), byte(uint16(v)>>8)
		out[i*4], out[i*4+1] = lo, hi
		out[i*4+2], out[i*4+3] = lo, hi
	}
	return out
}

// NewClickPlayer builds an audio player for the toggle click.
func NewClickPlayer() *audio.Player {
	return AudioContext().NewPlayerFromBytes(ClickPCM(880, 0.08, 0.4))
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
