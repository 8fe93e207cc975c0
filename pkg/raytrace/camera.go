// Package raytrace casts one primary ray per pixel through a scene, shades
// the nearest hit with ambient, diffuse and specular light plus a hard
// shadow, and writes the results into a render.Framebuffer.
package raytrace

import (
	"math"

	"github.com/taigrr/raytrace/pkg/math3d"
)

// Camera is a pinhole camera that always looks down -Z with +Y up.
type Camera struct {
	Position math3d.Vec3
	FOV      float64 // Vertical field of view in degrees
}

// DefaultCamera sits at the origin with a 60 degree field of view.
func DefaultCamera() Camera {
	return Camera{Position: math3d.Zero3(), FOV: 60}
}

// PrimaryRay returns the unit direction through the center of pixel (x, y)
// of a width×height image. Row 0 is the bottom of the picture.
func (c Camera) PrimaryRay(x, y, width, height int) math3d.Vec3 {
	px := 2*((float64(x)+0.5)/float64(width)) - 1
	py := 2*((float64(y)+0.5)/float64(height)) - 1

	// Near plane at distance 1
	t := math.Tan(c.FOV * math.Pi / 360)
	px *= t * float64(width) / float64(height)
	py *= t

	return math3d.V3(px, py, -1).Normalize()
}
