package component

import "github.com/milk9111/pixelsampler/ecs/render"

// MeshInstance binds a shared mesh and material to an entity.
type MeshInstance struct {
	Mesh     render.MeshHandle
	Material render.MaterialHandle
}

var MeshInstanceComponent = NewComponent[MeshInstance]()
