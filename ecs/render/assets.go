package render

import (
	"errors"
	"fmt"

	"github.com/solarlune/tetra3d"
)

// MeshHandle indexes a mesh in an Assets table. The zero handle is invalid.
type MeshHandle int

// MaterialHandle indexes a material in an Assets table. The zero handle is invalid.
type MaterialHandle int

func (h MeshHandle) Valid() bool     { return h > 0 }
func (h MaterialHandle) Valid() bool { return h > 0 }

var ErrUnknownHandle = errors.New("render: unknown handle")

// Assets is the startup-built table of meshes and materials. It is filled once
// and only read afterwards, so handles can be shared freely. The tetra3d meshes
// derived from it are cached per mesh and material pair.
type Assets struct {
	meshes    []*Mesh
	materials []*Material
	bound     map[boundKey]*tetra3d.Mesh
}

type boundKey struct {
	mesh     MeshHandle
	material MaterialHandle
}

func NewAssets() *Assets {
	return &Assets{}
}

// AddMesh validates and registers m.
func (a *Assets) AddMesh(m *Mesh) (MeshHandle, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	a.meshes = append(a.meshes, m)
	return MeshHandle(len(a.meshes)), nil
}

// AddMaterial registers m.
func (a *Assets) AddMaterial(m *Material) (MaterialHandle, error) {
	if m == nil {
		return 0, fmt.Errorf("render: material is nil")
	}
	a.materials = append(a.materials, m)
	return MaterialHandle(len(a.materials)), nil
}

func (a *Assets) Mesh(h MeshHandle) (*Mesh, error) {
	if a == nil || !h.Valid() || int(h) > len(a.meshes) {
		return nil, fmt.Errorf("mesh %d: %w", h, ErrUnknownHandle)
	}
	return a.meshes[h-1], nil
}

func (a *Assets) Material(h MaterialHandle) (*Material, error) {
	if a == nil || !h.Valid() || int(h) > len(a.materials) {
		return nil, fmt.Errorf("material %d: %w", h, ErrUnknownHandle)
	}
	return a.materials[h-1], nil
}

func (a *Assets) MeshCount() int     { return len(a.meshes) }
func (a *Assets) MaterialCount() int { return len(a.materials) }

// Bound returns the tetra3d mesh drawing mesh h with material mat. Swapping a
// model's material is a swap of its bound mesh.
func (a *Assets) Bound(h MeshHandle, mat MaterialHandle) (*tetra3d.Mesh, error) {
	key := boundKey{mesh: h, material: mat}
	if m, ok := a.bound[key]; ok {
		return m, nil
	}
	mesh, err := a.Mesh(h)
	if err != nil {
		return nil, err
	}
	material, err := a.Material(mat)
	if err != nil {
		return nil, err
	}
	if a.bound == nil {
		a.bound = make(map[boundKey]*tetra3d.Mesh)
	}
	m := mesh.Tetra(fmt.Sprintf("mesh%d/%s", h, material.Name), material.Tetra())
	a.bound[key] = m
	return m, nil
}
