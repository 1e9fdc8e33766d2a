package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/tetra3d"
)

// Material describes how a mesh surface is shaded.
type Material struct {
	Name        string
	BaseColor   color.RGBA
	Texture     *ebiten.Image
	Filter      ebiten.Filter
	AlphaCutoff float64
	DoubleSided bool

	tetra *tetra3d.Material
}

// Sampler names a texture filtering mode as written in scene specs.
type Sampler string

const (
	SamplerPixelArt Sampler = "pixel_art"
	SamplerSmooth   Sampler = "smooth"
)

// Filter maps the sampler to the Ebiten filter tetra3d samples the texture with.
func (s Sampler) Filter() ebiten.Filter {
	if s == SamplerPixelArt {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}

// Tetra returns the tetra3d material for m, built on first use. Textures are
// thresholded at load, so a positive cutoff becomes alpha-clip transparency.
func (m *Material) Tetra() *tetra3d.Material {
	if m.tetra != nil {
		return m.tetra
	}
	t := tetra3d.NewMaterial(m.Name)
	t.Texture = m.Texture
	t.TextureFilterMode = m.Filter
	t.BackfaceCulling = !m.DoubleSided

	c := m.BaseColor
	if c == (color.RGBA{}) {
		c = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	t.Color = tetra3d.NewColor(float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff)

	if m.AlphaCutoff > 0 {
		t.TransparencyMode = tetra3d.TransparencyModeAlphaClip
	}
	m.tetra = t
	return t
}
