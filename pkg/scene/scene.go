// Package scene defines what a ray can hit: the intersection contract, the
// materials and lights the shader reads, and the built-in primitives.
package scene

import (
	"github.com/taigrr/raytrace/pkg/math3d"
	"github.com/taigrr/raytrace/pkg/render"
)

// hitEpsilon is the smallest distance accepted as a hit. Anything closer is
// treated as the ray's own origin surface.
const hitEpsilon = 1e-6

// Object is anything a ray can intersect.
//
// RayIntersect is called with a unit direction and must be safe for
// concurrent use; objects are read-only during a render.
type Object interface {
	RayIntersect(origin, dir math3d.Vec3) (Hit, bool)
	Material() Material
}

// Hit describes the nearest intersection of a ray with an object.
type Hit struct {
	Distance float64     // along the ray, > 0
	Point    math3d.Vec3 // world-space hit position
	Normal   math3d.Vec3 // unit surface normal
	Object   Object      // the object that was hit
}

// Material holds the surface properties the shader reads.
type Material struct {
	Diffuse render.Color // packed like every other color
	Spec    float64      // Phong exponent
}

// NewMaterial builds a material from normalized channels.
func NewMaterial(r, g, b, spec float64) Material {
	return Material{Diffuse: render.EncodeColor(r, g, b), Spec: spec}
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color    render.Color
	Strength float64
}

// PointLight emits from a single position.
type PointLight struct {
	Position  math3d.Vec3
	Color     render.Color
	Intensity float64
}

// Lights is the light rig of a scene. A nil light is absent and adds
// nothing.
type Lights struct {
	Ambient *AmbientLight
	Point   *PointLight
}

// Scene is an ordered list of objects. Order matters only for ties: the
// first object at a given distance wins.
type Scene struct {
	Objects []Object
}

// Add appends objects to the scene.
func (s *Scene) Add(objs ...Object) {
	s.Objects = append(s.Objects, objs...)
}

// Len returns the number of objects.
func (s *Scene) Len() int { return len(s.Objects) }

// Occluded reports whether any object other than skip is hit from origin
// along dir closer than maxDist. Pass math.Inf(1) to count any hit.
func (s *Scene) Occluded(origin, dir math3d.Vec3, skip Object, maxDist float64) bool {
	for _, obj := range s.Objects {
		if obj == skip {
			continue
		}
		hit, ok := obj.RayIntersect(origin, dir)
		if !ok {
			continue
		}
		if hit.Distance < maxDist {
			return true
		}
	}
	return false
}

// faceForward flips n so it points against dir.
func faceForward(n, dir math3d.Vec3) math3d.Vec3 {
	if n.Dot(dir) > 0 {
		return n.Negate()
	}
	return n
}
