package entity

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pixelsampler/assets"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
	"github.com/milk9111/pixelsampler/ecs/render"
	"github.com/milk9111/pixelsampler/prefabs"
)

var (
	white             = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	defaultClearColor = color.RGBA{R: 0x1a, G: 0x4d, B: 0x80, A: 0xff}
	defaultAmbient    = color.RGBA{R: 0x40, G: 0x40, B: 0x4d, A: 0xff}
)

const fallbackTextureKey = "__checkerboard"

// Options adjusts how a scene is built.
type Options struct {
	// TextureOverride replaces the texture of every textured material.
	TextureOverride string
}

// Scene is the application state built at startup: the world, the read-only
// asset table and the handles systems need.
type Scene struct {
	World  *ecs.World
	Assets *render.Assets
	Spec   *prefabs.SceneSpec

	Materials map[string]render.MaterialHandle
	PixelArt  render.MaterialHandle
	Normal    render.MaterialHandle

	Ambient mgl64.Vec3

	entities map[string]ecs.Entity
}

// BuildScene creates materials and entities from spec.
func BuildScene(spec *prefabs.SceneSpec, opts Options) (*Scene, error) {
	if spec == nil {
		return nil, fmt.Errorf("build scene: spec is nil")
	}

	s := &Scene{
		World:     ecs.NewWorld(),
		Assets:    render.NewAssets(),
		Spec:      spec,
		Materials: make(map[string]render.MaterialHandle, len(spec.Materials)),
		Ambient:   colorVec(spec.Render.Ambient.Or(defaultAmbient)),
		entities:  make(map[string]ecs.Entity, len(spec.Entities)),
	}

	names := make([]string, 0, len(spec.Materials))
	for name := range spec.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mat, err := buildMaterial(name, spec.Materials[name], opts)
		if err != nil {
			return nil, fmt.Errorf("build scene: %w", err)
		}
		h, err := s.Assets.AddMaterial(mat)
		if err != nil {
			return nil, fmt.Errorf("build scene: material %q: %w", name, err)
		}
		s.Materials[name] = h
	}

	ctx := &buildContext{
		Assets:    s.Assets,
		Materials: s.Materials,
		Meshes:    make(map[string]render.MeshHandle),
	}
	for _, es := range spec.Entities {
		e, err := BuildEntity(s.World, es, ctx)
		if err != nil {
			return nil, fmt.Errorf("build scene: %w", err)
		}
		s.entities[es.Name] = e
	}
	if ctx.Variants != nil {
		s.PixelArt = ctx.Variants.PixelArt
		s.Normal = ctx.Variants.Normal
	}

	if _, ok := s.World.First(component.CameraComponent.Kind()); !ok {
		return nil, fmt.Errorf("build scene: no entity has a camera")
	}
	return s, nil
}

// Entity returns the entity built for the named spec entry.
func (s *Scene) Entity(name string) (ecs.Entity, bool) {
	if s == nil {
		return 0, false
	}
	e, ok := s.entities[name]
	return e, ok && s.World.IsAlive(e)
}

// CarryState copies the runtime state of prev into s: orbit angles and
// material variants of entities that share a name in both scenes. A reloaded
// scene then continues where the old one left off.
func (s *Scene) CarryState(prev *Scene) {
	if s == nil || prev == nil {
		return
	}
	for name, e := range s.entities {
		old, ok := prev.Entity(name)
		if !ok {
			continue
		}
		if o, ok := ecs.Get(prev.World, old, component.OrbitComponent.Kind()); ok {
			if n, ok := ecs.Get(s.World, e, component.OrbitComponent.Kind()); ok {
				n.Angle = o.Angle
			}
		}
		v, ok := ecs.Get(prev.World, old, component.MaterialVariantComponent.Kind())
		if !ok {
			continue
		}
		nv, ok := ecs.Get(s.World, e, component.MaterialVariantComponent.Kind())
		if !ok {
			continue
		}
		inst, ok := ecs.Get(s.World, e, component.MeshInstanceComponent.Kind())
		if !ok {
			continue
		}
		*nv = *v
		if *nv == component.MaterialPixelArt {
			inst.Material = s.PixelArt
		} else {
			inst.Material = s.Normal
		}
	}
}

func buildMaterial(name string, spec prefabs.MaterialSpec, opts Options) (*render.Material, error) {
	mat := &render.Material{
		Name:        name,
		BaseColor:   spec.Color.Or(white),
		Filter:      render.Sampler(spec.Sampler).Filter(),
		AlphaCutoff: spec.AlphaCutoff.Float(),
		DoubleSided: spec.DoubleSided,
	}
	if spec.Texture == "" {
		return mat, nil
	}

	key := spec.Texture
	if opts.TextureOverride != "" {
		key = opts.TextureOverride
	}
	img, err := render.LoadTexture(key, mat.AlphaCutoff)
	if err != nil {
		log.Printf("material %q: texture %s: %v; using checkerboard", name, key, err)
		img = render.GetImage(fmt.Sprintf("%s@%.3f", fallbackTextureKey, mat.AlphaCutoff))
		if img == nil {
			img = render.RegisterTexture(fallbackTextureKey, assets.Checkerboard(8, 2,
				color.NRGBA{R: 0xe0, G: 0x60, B: 0xc0, A: 0xff},
				color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
			), mat.AlphaCutoff)
		}
	}
	mat.Texture = img
	return mat, nil
}

func colorVec(c color.RGBA) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.R) / 0xff, float64(c.G) / 0xff, float64(c.B) / 0xff}
}
