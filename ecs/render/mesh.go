package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pixelsampler/common"
	"github.com/solarlune/tetra3d"
)

// Mesh is an indexed triangle list. Meshes are immutable once registered.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       [][2]float64
	Indices   []uint32
}

// Validate checks that attribute slices line up and indices are in range.
func (m *Mesh) Validate() error {
	if m == nil {
		return fmt.Errorf("render: mesh is nil")
	}
	n := len(m.Positions)
	if len(m.Normals) != n || len(m.UVs) != n {
		return fmt.Errorf("render: mesh attribute length mismatch: positions=%d normals=%d uvs=%d", n, len(m.Normals), len(m.UVs))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("render: mesh index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("render: mesh index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// QuadMesh is a unit quad in the XY plane facing +Z.
func QuadMesh() *Mesh {
	normal := mgl64.Vec3{0, 0, 1}
	return &Mesh{
		Positions: []mgl64.Vec3{
			{-0.5, 0.5, 0},
			{-0.5, -0.5, 0},
			{0.5, -0.5, 0},
			{0.5, 0.5, 0},
		},
		Normals: []mgl64.Vec3{normal, normal, normal, normal},
		UVs: [][2]float64{
			{0, 0},
			{0, 1},
			{1, 1},
			{1, 0},
		},
		Indices: []uint32{
			0, 1, 2,
			0, 2, 3,
		},
	}
}

// PlaneMesh is a square in the XZ plane facing +Y, split into subdivisions x subdivisions cells.
func PlaneMesh(halfSize float64, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}
	side := subdivisions + 1
	m := &Mesh{
		Positions: make([]mgl64.Vec3, 0, side*side),
		Normals:   make([]mgl64.Vec3, 0, side*side),
		UVs:       make([][2]float64, 0, side*side),
		Indices:   make([]uint32, 0, subdivisions*subdivisions*6),
	}
	for row := 0; row < side; row++ {
		v := float64(row) / float64(subdivisions)
		for col := 0; col < side; col++ {
			u := float64(col) / float64(subdivisions)
			m.Positions = append(m.Positions, mgl64.Vec3{
				common.Lerp(-halfSize, halfSize, u),
				0,
				common.Lerp(-halfSize, halfSize, v),
			})
			m.Normals = append(m.Normals, common.Vec3Up)
			m.UVs = append(m.UVs, [2]float64{u, v})
		}
	}
	for row := 0; row < subdivisions; row++ {
		for col := 0; col < subdivisions; col++ {
			i0 := uint32(row*side + col)
			i1 := i0 + uint32(side)
			i2 := i1 + 1
			i3 := i0 + 1
			m.Indices = append(m.Indices, i0, i1, i2, i0, i2, i3)
		}
	}
	return m
}

// Tetra converts m into a tetra3d mesh with a single part drawn with mat.
func (m *Mesh) Tetra(name string, mat *tetra3d.Material) *tetra3d.Mesh {
	verts := make([]tetra3d.VertexInfo, len(m.Positions))
	for i, p := range m.Positions {
		v := tetra3d.NewVertex(p.X(), p.Y(), p.Z(), m.UVs[i][0], m.UVs[i][1])
		n := m.Normals[i]
		v.NormalX, v.NormalY, v.NormalZ = n.X(), n.Y(), n.Z()
		verts[i] = v
	}
	indices := make([]int, len(m.Indices))
	for i, idx := range m.Indices {
		indices[i] = int(idx)
	}

	mesh := tetra3d.NewMesh(name, verts...)
	mesh.AddMeshPart(mat, indices...)
	mesh.UpdateBounds()
	return mesh
}
