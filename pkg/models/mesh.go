// Package models loads triangle meshes from glTF files so they can be placed
// in a ray-traced scene.
package models

import (
	"math"

	"github.com/taigrr/raytrace/pkg/math3d"
)

// Mesh represents a triangle mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Vertex holds the attributes the ray tracer uses.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
// Vertices are stored counter-clockwise when seen from the front.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the subset of a glTF PBR material the shader can use.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
	Metallic  float64
	Roughness float64
}

// Shininess maps roughness to a Phong specular exponent: a perfectly rough
// surface gives 1, a mirror-smooth one 256.
func (m Material) Shininess() float64 {
	r := math.Max(0, math.Min(1, m.Roughness))
	return math.Max(1, (1-r)*256)
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]Vertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the three corner positions of face i.
func (m *Mesh) Triangle(i int) (a, b, c math3d.Vec3) {
	f := m.Faces[i].V
	return m.Vertices[f[0]].Position, m.Vertices[f[1]].Position, m.Vertices[f[2]].Position
}

// FaceNormal returns the geometric normal of face i.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	a, b, c := m.Triangle(i)
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// CalculateNormals assigns each face's normal to its vertices (flat shading).
// Shared vertices end up with the normal of the last face that uses them.
func (m *Mesh) CalculateNormals() {
	for i, f := range m.Faces {
		normal := m.FaceNormal(i)
		for _, vi := range f.V {
			m.Vertices[vi].Normal = normal
		}
	}
}

// CalculateSmoothNormals computes area-weighted averaged vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for i, f := range m.Faces {
		a, b, c := m.Triangle(i)
		normal := b.Sub(a).Cross(c.Sub(a)) // Don't normalize yet
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		// Only exact for rotations and uniform scale
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it so its largest dimension
// equals size.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := math.Max(dims.X, math.Max(dims.Y, dims.Z))
	if maxDim <= 0 {
		return
	}
	scale := size / maxDim
	m.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(m.Center().Scale(-1))))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]Vertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// DominantMaterial returns the material used by the most faces, or nil when
// no face has one.
func (m *Mesh) DominantMaterial() *Material {
	counts := make(map[int]int)
	best, bestCount := -1, 0
	for _, f := range m.Faces {
		if f.Material < 0 {
			continue
		}
		counts[f.Material]++
		if c := counts[f.Material]; c > bestCount || (c == bestCount && f.Material < best) {
			best, bestCount = f.Material, c
		}
	}
	return m.GetMaterial(best)
}
