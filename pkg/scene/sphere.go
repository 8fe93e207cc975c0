package scene

import (
	"math"

	"github.com/taigrr/raytrace/pkg/math3d"
)

// Sphere is a solid sphere.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
	Mat    Material
}

// NewSphere creates a new sphere.
func NewSphere(center math3d.Vec3, radius float64, mat Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Mat: mat}
}

// Material implements Object.
func (s *Sphere) Material() Material { return s.Mat }

// RayIntersect implements Object. Rays starting inside the sphere hit the
// far side.
func (s *Sphere) RayIntersect(origin, dir math3d.Vec3) (Hit, bool) {
	oc := origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := dir.Dot(dir)
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Hit{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < hitEpsilon {
		root = (-halfB + sqrtD) / a
		if root < hitEpsilon {
			return Hit{}, false
		}
	}

	point := origin.Add(dir.Scale(root))
	return Hit{
		Distance: root,
		Point:    point,
		Normal:   point.Sub(s.Center).Scale(1 / s.Radius),
		Object:   s,
	}, true
}
