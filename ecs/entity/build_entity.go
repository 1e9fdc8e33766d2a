package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pixelsampler/common"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
	"github.com/milk9111/pixelsampler/ecs/render"
	"github.com/milk9111/pixelsampler/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	Entity    string
	Assets    *render.Assets
	Materials map[string]render.MaterialHandle
	Meshes    map[string]render.MeshHandle
	Variants  *variantBinding
}

// variantBinding records the two materials a material_variant switches
// between. Every toggled entity in a scene must share one pair.
type variantBinding struct {
	PixelArt render.MaterialHandle
	Normal   render.MaterialHandle
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"camera_tag":       addCameraTag,
	"sprite_tag":       addSpriteTag,
	"ground_tag":       addGroundTag,
	"light_tag":        addLightTag,
	"input":            addInput,
	"transform":        addTransform,
	"camera":           addCamera,
	"orbit":            addOrbit,
	"mesh":             addMesh,
	"material_variant": addMaterialVariant,
	"point_light":      addPointLight,
}

// material_variant rebinds the mesh material, so mesh must come first.
var componentBuildOrder = []string{
	"camera_tag",
	"sprite_tag",
	"ground_tag",
	"light_tag",
	"input",
	"transform",
	"camera",
	"orbit",
	"mesh",
	"material_variant",
	"point_light",
}

// BuildEntity creates one entity from spec. On error the partially built
// entity is destroyed.
func BuildEntity(w *ecs.World, spec entityPrefabSpec, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}
	if ctx == nil {
		ctx = &buildContext{}
	}
	ctx.Entity = spec.Name

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: add name: %w", spec.Name, err)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", spec.Name, names)
	}

	return e, nil
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addSpriteTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SpriteTagComponent.Kind(), &component.SpriteTag{})
}

func addGroundTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{})
}

func addLightTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.LightTagComponent.Kind(), &component.LightTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransform(0, 0, 0)
	if spec.Translation != nil {
		t.Translation = vec3(spec.Translation.XYZ())
	}
	if spec.Scale != nil {
		t.Scale = vec3(spec.Scale.XYZ())
	}
	if spec.RotationY != 0 {
		t.Rotation = common.RotationY(spec.RotationY.Float())
	}
	if spec.LookAt != nil {
		t.LookAt(vec3(spec.LookAt.XYZ()), common.Vec3Up)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.FovY == 0 {
		spec.FovY = math.Pi / 4
	}
	if spec.Near == 0 {
		spec.Near = 0.1
	}
	if spec.Far == 0 {
		spec.Far = 100
	}
	if spec.Near < 0 || spec.Far <= spec.Near {
		return fmt.Errorf("camera: near %v and far %v must satisfy 0 < near < far", spec.Near.Float(), spec.Far.Float())
	}
	if spec.FovY <= 0 || spec.FovY >= math.Pi {
		return fmt.Errorf("camera: fov_y %v outside (0, pi)", spec.FovY.Float())
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		FovY:       spec.FovY.Float(),
		Near:       spec.Near.Float(),
		Far:        spec.Far.Float(),
		ClearColor: spec.ClearColor.Or(defaultClearColor),
	})
}

type orbitSpec = prefabs.OrbitComponentSpec

func vec3(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}

func addOrbit(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[orbitSpec](raw)
	if err != nil {
		return fmt.Errorf("decode orbit spec: %w", err)
	}
	orbit := component.Orbit{
		Angle: spec.Angle.Float(),
		Speed: component.DefaultOrbitSpeed,
	}
	if spec.Target != nil {
		orbit.Target = vec3(spec.Target.XYZ())
	}
	if spec.Offset != nil {
		orbit.Offset = vec3(spec.Offset.XYZ())
	} else if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		orbit.Offset = t.Translation.Sub(orbit.Target)
	}
	if spec.Speed != nil {
		if spec.Speed.Float() <= 0 {
			return fmt.Errorf("orbit: speed %v must be positive", spec.Speed.Float())
		}
		orbit.Speed = spec.Speed.Float()
	}
	return ecs.Add(w, e, component.OrbitComponent.Kind(), &orbit)
}

type meshSpec = prefabs.MeshComponentSpec

func addMesh(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[meshSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}
	if ctx.Assets == nil {
		return fmt.Errorf("mesh: no asset table")
	}
	mesh, err := ctx.mesh(spec)
	if err != nil {
		return err
	}
	mat, ok := ctx.Materials[spec.Material]
	if !ok {
		return fmt.Errorf("mesh: unknown material %q", spec.Material)
	}
	return ecs.Add(w, e, component.MeshInstanceComponent.Kind(), &component.MeshInstance{
		Mesh:     mesh,
		Material: mat,
	})
}

// mesh returns a shared handle for spec's shape, creating the mesh on first use.
func (ctx *buildContext) mesh(spec meshSpec) (render.MeshHandle, error) {
	var key string
	var build func() *render.Mesh
	switch spec.Shape {
	case "quad":
		key = "quad"
		build = render.QuadMesh
	case "plane":
		half := spec.HalfSize.Float()
		if half <= 0 {
			return 0, fmt.Errorf("mesh: plane half_size must be positive")
		}
		key = fmt.Sprintf("plane/%g/%d", half, spec.Subdivisions)
		build = func() *render.Mesh { return render.PlaneMesh(half, spec.Subdivisions) }
	default:
		return 0, fmt.Errorf("mesh: unknown shape %q", spec.Shape)
	}
	if h, ok := ctx.Meshes[key]; ok {
		return h, nil
	}
	h, err := ctx.Assets.AddMesh(build())
	if err != nil {
		return 0, fmt.Errorf("mesh %s: %w", key, err)
	}
	if ctx.Meshes == nil {
		ctx.Meshes = make(map[string]render.MeshHandle)
	}
	ctx.Meshes[key] = h
	return h, nil
}

type materialVariantSpec = prefabs.MaterialVariantComponentSpec

func addMaterialVariant(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[materialVariantSpec](raw)
	if err != nil {
		return fmt.Errorf("decode material_variant spec: %w", err)
	}
	inst, ok := ecs.Get(w, e, component.MeshInstanceComponent.Kind())
	if !ok {
		return fmt.Errorf("material_variant requires mesh on the same entity")
	}
	if spec.PixelArt == "" {
		spec.PixelArt = "pixel_art"
	}
	if spec.Normal == "" {
		spec.Normal = "normal"
	}
	pixelArt, ok := ctx.Materials[spec.PixelArt]
	if !ok {
		return fmt.Errorf("material_variant: unknown material %q", spec.PixelArt)
	}
	normal, ok := ctx.Materials[spec.Normal]
	if !ok {
		return fmt.Errorf("material_variant: unknown material %q", spec.Normal)
	}

	binding := variantBinding{PixelArt: pixelArt, Normal: normal}
	if ctx.Variants == nil {
		ctx.Variants = &binding
	} else if *ctx.Variants != binding {
		return fmt.Errorf("material_variant: %q uses a different material pair than an earlier entity", ctx.Entity)
	}

	variant := component.MaterialPixelArt
	switch spec.Initial {
	case "", "pixel_art":
	case "normal":
		variant = component.MaterialNormal
	default:
		return fmt.Errorf("material_variant: unknown initial variant %q", spec.Initial)
	}

	// the bound material always follows the variant
	if variant == component.MaterialPixelArt {
		inst.Material = pixelArt
	} else {
		inst.Material = normal
	}
	return ecs.Add(w, e, component.MaterialVariantComponent.Kind(), &variant)
}

type pointLightSpec = prefabs.PointLightComponentSpec

func addPointLight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pointLightSpec](raw)
	if err != nil {
		return fmt.Errorf("decode point_light spec: %w", err)
	}
	if spec.Intensity < 0 || spec.Range < 0 {
		return fmt.Errorf("point_light: intensity and range must not be negative")
	}
	if spec.Intensity == 0 {
		spec.Intensity = 1
	}
	return ecs.Add(w, e, component.PointLightComponent.Kind(), &component.PointLight{
		Color:     spec.Color.Or(white),
		Intensity: spec.Intensity.Float(),
		Range:     spec.Range.Float(),
		Shadows:   spec.Shadows,
	})
}
