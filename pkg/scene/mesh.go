package scene

import (
	"github.com/taigrr/raytrace/pkg/math3d"
	"github.com/taigrr/raytrace/pkg/models"
	"github.com/taigrr/raytrace/pkg/render"
)

type meshTri struct {
	v0, v1, v2 math3d.Vec3
	n0, n1, n2 math3d.Vec3
	face       math3d.Vec3
}

// MeshObject is a triangle mesh intersected as one object. A bounding box
// test rejects most rays before any triangle is tried.
type MeshObject struct {
	Name string
	Mat  Material

	// Smooth interpolates vertex normals across each face.
	Smooth bool

	tris   []meshTri
	bounds AABB
}

// NewMeshObject copies the triangles of m in their current position.
func NewMeshObject(m *models.Mesh, mat Material) *MeshObject {
	obj := &MeshObject{
		Name: m.Name,
		Mat:  mat,
		tris: make([]meshTri, 0, m.TriangleCount()),
	}

	points := make([]math3d.Vec3, 0, m.TriangleCount()*3)
	for i, f := range m.Faces {
		a, b, c := m.Triangle(i)
		face := m.FaceNormal(i)
		if face.LenSq() == 0 {
			// Degenerate, can never be hit
			continue
		}
		tri := meshTri{
			v0:   a,
			v1:   b,
			v2:   c,
			n0:   orDefault(m.Vertices[f.V[0]].Normal, face),
			n1:   orDefault(m.Vertices[f.V[1]].Normal, face),
			n2:   orDefault(m.Vertices[f.V[2]].Normal, face),
			face: face,
		}
		obj.tris = append(obj.tris, tri)
		points = append(points, a, b, c)
	}
	obj.bounds = NewAABBFromPoints(points...)
	return obj
}

func orDefault(n, fallback math3d.Vec3) math3d.Vec3 {
	if n.LenSq() < 1e-12 {
		return fallback
	}
	return n
}

// MaterialFromModel converts a glTF material. A nil material gives a light
// gray with a moderate highlight.
func MaterialFromModel(m *models.Material) Material {
	if m == nil {
		return NewMaterial(0.8, 0.8, 0.8, 32)
	}
	return Material{
		Diffuse: render.EncodeColor(clamp01(m.BaseColor[0]), clamp01(m.BaseColor[1]), clamp01(m.BaseColor[2])),
		Spec:    m.Shininess(),
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// TriangleCount returns the number of non-degenerate triangles.
func (o *MeshObject) TriangleCount() int { return len(o.tris) }

// Bounds returns the mesh's bounding box.
func (o *MeshObject) Bounds() AABB { return o.bounds }

// Material implements Object.
func (o *MeshObject) Material() Material { return o.Mat }

// RayIntersect implements Object. The whole mesh is one object, so the
// nearest triangle wins.
func (o *MeshObject) RayIntersect(origin, dir math3d.Vec3) (Hit, bool) {
	if len(o.tris) == 0 || !o.bounds.Hit(origin, dir) {
		return Hit{}, false
	}

	best := -1
	var bestDist, bestU, bestV float64
	for i := range o.tris {
		t := &o.tris[i]
		dist, u, v, ok := intersectTriangle(origin, dir, t.v0, t.v1, t.v2)
		if ok && (best < 0 || dist < bestDist) {
			best, bestDist, bestU, bestV = i, dist, u, v
		}
	}
	if best < 0 {
		return Hit{}, false
	}

	t := &o.tris[best]
	normal := t.face
	if o.Smooth {
		w := 1 - bestU - bestV
		normal = t.n0.Scale(w).Add(t.n1.Scale(bestU)).Add(t.n2.Scale(bestV)).Normalize()
		if normal.LenSq() == 0 {
			normal = t.face
		}
	}

	return Hit{
		Distance: bestDist,
		Point:    origin.Add(dir.Scale(bestDist)),
		Normal:   faceForward(normal, dir),
		Object:   o,
	}, true
}
