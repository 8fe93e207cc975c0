package scene

import (
	"math"

	"github.com/taigrr/raytrace/pkg/math3d"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

// NewAABBFromPoints creates an AABB that bounds all given points.
func NewAABBFromPoints(points ...math3d.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Hit tests the ray against the box using the slab method. Only the part
// of the ray in front of the origin counts.
func (b AABB) Hit(origin, dir math3d.Vec3) bool {
	tMin, tMax := 0.0, math.Inf(1)
	mins := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	maxs := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	orig := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}

	for axis := range 3 {
		// Parallel to this slab
		if math.Abs(d[axis]) < 1e-12 {
			if orig[axis] < mins[axis] || orig[axis] > maxs[axis] {
				return false
			}
			continue
		}

		inv := 1.0 / d[axis]
		t1 := (mins[axis] - orig[axis]) * inv
		t2 := (maxs[axis] - orig[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
