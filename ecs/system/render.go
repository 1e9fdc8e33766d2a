package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixelsampler/common"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
	"github.com/milk9111/pixelsampler/ecs/render"
	"github.com/solarlune/tetra3d"
)

// RenderSystem mirrors the ECS scene into a tetra3d scene and renders it
// through the first camera entity.
type RenderSystem struct {
	assets *render.Assets
	scene  *tetra3d.Scene
	camera *tetra3d.Camera
	width  int
	height int

	camEntity ecs.Entity
	models    map[ecs.Entity]*tetra3d.Model
	lights    map[ecs.Entity]*tetra3d.PointLight
	seen      map[ecs.Entity]bool
	warned    map[ecs.Entity]bool
}

// NewRenderSystem builds an empty tetra3d scene lit by ambient. The camera
// texture is width x height.
func NewRenderSystem(assets *render.Assets, ambient mgl64.Vec3, width, height int) *RenderSystem {
	scene := tetra3d.NewLibrary().AddScene("pixelsampler")
	scene.World.AmbientLight.Color.Set(float32(ambient.X()), float32(ambient.Y()), float32(ambient.Z()), 1)
	scene.World.AmbientLight.Energy = 1

	return &RenderSystem{
		assets: assets,
		scene:  scene,
		width:  width,
		height: height,
		models: make(map[ecs.Entity]*tetra3d.Model),
		lights: make(map[ecs.Entity]*tetra3d.PointLight),
		seen:   make(map[ecs.Entity]bool),
		warned: make(map[ecs.Entity]bool),
	}
}

// Update syncs models and lights with their entities. A changed MeshInstance
// material swaps the model's bound mesh.
func (r *RenderSystem) Update(w *ecs.World) {
	if r == nil || w == nil {
		return
	}
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	clear(r.seen)
	ecs.ForEach2(w, component.MeshInstanceComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, inst *component.MeshInstance, t *component.Transform) {
		mesh, err := r.assets.Bound(inst.Mesh, inst.Material)
		if err != nil {
			r.warnOnce(e, err)
			return
		}
		r.seen[e] = true
		model, ok := r.models[e]
		if !ok {
			model = tetra3d.NewModel(mesh, e.String())
			r.scene.Root.AddChildren(model)
			r.models[e] = model
		} else if model.Mesh != mesh {
			model.Mesh = mesh
		}
		place(model, *t)
	})
	for e, model := range r.models {
		if !r.seen[e] {
			model.Unparent()
			delete(r.models, e)
		}
	}

	clear(r.seen)
	ecs.ForEach2(w, component.PointLightComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, l *component.PointLight, t *component.Transform) {
		r.seen[e] = true
		light, ok := r.lights[e]
		if !ok {
			light = tetra3d.NewPointLight(e.String(), 1, 1, 1, 1)
			r.scene.Root.AddChildren(light)
			r.lights[e] = light
		}
		light.Color.Set(float32(l.Color.R)/0xff, float32(l.Color.G)/0xff, float32(l.Color.B)/0xff, 1)
		light.Energy = float32(l.Intensity)
		light.Range = l.Range
		light.SetLocalPosition(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	})
	for e, light := range r.lights {
		if !r.seen[e] {
			light.Unparent()
			delete(r.lights, e)
		}
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if r.camera == nil {
		r.camera = tetra3d.NewCamera(r.width, r.height)
		r.scene.Root.AddChildren(r.camera)
	}
	r.camera.SetFieldOfView(mgl64.RadToDeg(cam.FovY))
	r.camera.SetNear(cam.Near)
	r.camera.SetFar(cam.Far)
	place(r.camera, *camTransform)

	screen.Fill(cam.ClearColor)
	r.camera.Clear()
	r.camera.RenderScene(r.scene)
	screen.DrawImage(r.camera.ColorTexture(), nil)
}

// Model returns the tetra3d model mirroring e, if any.
func (r *RenderSystem) Model(e ecs.Entity) (*tetra3d.Model, bool) {
	m, ok := r.models[e]
	return m, ok
}

type placeable interface {
	SetLocalPosition(x, y, z float64)
	SetLocalRotation(rotation tetra3d.Matrix4)
	SetLocalScale(x, y, z float64)
}

func place(n placeable, t component.Transform) {
	n.SetLocalPosition(t.Translation.X(), t.Translation.Y(), t.Translation.Z())

	axis, angle := common.AxisAngle(t.Rotation)
	if angle == 0 {
		n.SetLocalRotation(tetra3d.NewMatrix4())
	} else {
		n.SetLocalRotation(tetra3d.NewMatrix4Rotate(axis.X(), axis.Y(), axis.Z(), angle))
	}

	s := t.EffectiveScale()
	n.SetLocalScale(s.X(), s.Y(), s.Z())
}

func (r *RenderSystem) warnOnce(e ecs.Entity, err error) {
	if r.warned[e] {
		return
	}
	r.warned[e] = true
	log.Printf("render: entity=%s skipped: %v", e, err)
}
