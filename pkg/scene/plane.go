package scene

import (
	"math"

	"github.com/taigrr/raytrace/pkg/math3d"
)

// Plane is an infinite plane through Point. It is two-sided: the hit normal
// always faces the incoming ray.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
	Mat    Material
}

// NewPlane creates a new plane; normal is normalized.
func NewPlane(point, normal math3d.Vec3, mat Material) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize(), Mat: mat}
}

// Material implements Object.
func (p *Plane) Material() Material { return p.Mat }

// RayIntersect implements Object.
func (p *Plane) RayIntersect(origin, dir math3d.Vec3) (Hit, bool) {
	denom := dir.Dot(p.Normal)

	// Parallel rays never hit
	if math.Abs(denom) < 1e-8 {
		return Hit{}, false
	}

	t := p.Point.Sub(origin).Dot(p.Normal) / denom
	if t < hitEpsilon {
		return Hit{}, false
	}

	return Hit{
		Distance: t,
		Point:    origin.Add(dir.Scale(t)),
		Normal:   faceForward(p.Normal, dir),
		Object:   p,
	}, true
}
