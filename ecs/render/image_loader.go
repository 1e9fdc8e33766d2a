package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixelsampler/assets"
)

// LoadTexture decodes the image at key, applies the alpha mask and caches the
// result under key and cutoff so materials sharing a texture share one image.
func LoadTexture(key string, cutoff float64) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	cacheKey := fmt.Sprintf("%s@%.3f", key, cutoff)
	if img := GetImage(cacheKey); img != nil {
		return img, nil
	}
	src, err := decodeFromAssetsOrFS(key)
	if err != nil {
		return nil, err
	}
	return RegisterTexture(key, src, cutoff), nil
}

// RegisterTexture masks src and caches it the same way LoadTexture does.
func RegisterTexture(key string, src image.Image, cutoff float64) *ebiten.Image {
	img := ebiten.NewImageFromImage(MaskAlpha(src, cutoff))
	RegisterImage(fmt.Sprintf("%s@%.3f", key, cutoff), img)
	return img
}

func decodeFromAssetsOrFS(path string) (image.Image, error) {
	if img, err := assets.DecodeImage(path); err == nil {
		return img, nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return im, nil
			}
		}
	}
	return nil, fmt.Errorf("render: failed to load image %s", path)
}

// MaskAlpha returns a copy of src where every pixel is either fully opaque
// (alpha >= cutoff) or fully transparent. A cutoff <= 0 keeps alpha unchanged.
func MaskAlpha(src image.Image, cutoff float64) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	threshold := cutoff * 0xff
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if cutoff > 0 {
				if float64(c.A) >= threshold {
					c.A = 0xff
				} else {
					c = color.NRGBA{}
				}
			}
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}
