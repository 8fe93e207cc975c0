package scene

import (
	"github.com/taigrr/raytrace/pkg/math3d"
)

// Triangle is a single two-sided triangle.
type Triangle struct {
	V0, V1, V2 math3d.Vec3
	Mat        Material

	normal math3d.Vec3
}

// NewTriangle creates a triangle; its normal follows the counter-clockwise
// winding of v0, v1, v2.
func NewTriangle(v0, v1, v2 math3d.Vec3, mat Material) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		Mat:    mat,
		normal: v1.Sub(v0).Cross(v2.Sub(v0)).Normalize(),
	}
}

// Normal returns the winding normal.
func (t *Triangle) Normal() math3d.Vec3 { return t.normal }

// Material implements Object.
func (t *Triangle) Material() Material { return t.Mat }

// RayIntersect implements Object.
func (t *Triangle) RayIntersect(origin, dir math3d.Vec3) (Hit, bool) {
	dist, _, _, ok := intersectTriangle(origin, dir, t.V0, t.V1, t.V2)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Distance: dist,
		Point:    origin.Add(dir.Scale(dist)),
		Normal:   faceForward(t.normal, dir),
		Object:   t,
	}, true
}

// intersectTriangle is the Möller-Trumbore test. It returns the ray
// distance of the hit and the barycentric weights of v1 and v2.
func intersectTriangle(origin, dir, v0, v1, v2 math3d.Vec3) (dist, u, v float64, ok bool) {
	const epsilon = 1e-8

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := dir.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := origin.Sub(v0)
	u = f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * dir.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	dist = f * edge2.Dot(q)
	if dist < hitEpsilon {
		return 0, 0, 0, false
	}
	return dist, u, v, true
}
