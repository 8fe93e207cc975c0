package raytrace

import (
	"math"

	"github.com/taigrr/raytrace/pkg/math3d"
	"github.com/taigrr/raytrace/pkg/render"
	"github.com/taigrr/raytrace/pkg/scene"
)

// ShadowMode selects which distance decides whether an occluder casts a
// shadow.
type ShadowMode int

const (
	// ShadowOccluderDistance shadows a point only when the occluder sits
	// between the point and the light.
	ShadowOccluderDistance ShadowMode = iota

	// ShadowCameraDistance compares the camera-to-point distance with the
	// point-to-light distance instead, so anything along the light
	// direction shadows a point that is closer to the camera than to the
	// light. Kept for matching renders made that way.
	ShadowCameraDistance
)

// String returns the mode name used in scene files.
func (m ShadowMode) String() string {
	switch m {
	case ShadowCameraDistance:
		return "camera"
	default:
		return "occluder"
	}
}

// channels unpacks a color to normalized RGB in X, Y, Z.
func channels(c render.Color) math3d.Vec3 {
	return math3d.V3(float64(c.R())/255, float64(c.G())/255, float64(c.B())/255)
}

// Shade computes the color of hit for material m:
//
//	(ambient + (1-shadow)*(diffuse+specular)) * base
//
// with every channel capped at 1.
func (rc *RenderContext) Shade(m scene.Material, hit scene.Hit) render.Color {
	base := channels(m.Diffuse)

	var ambient, diffuse, specular math3d.Vec3
	shadow := 0.0

	if a := rc.Lights.Ambient; a != nil {
		ambient = channels(a.Color).Scale(a.Strength)
	}

	if p := rc.Lights.Point; p != nil {
		toLight := p.Position.Sub(hit.Point)
		lightDist := toLight.Len()
		lightDir := toLight.Normalize()
		lightColor := channels(p.Color)

		intensity := p.Intensity * math.Max(0, lightDir.Dot(hit.Normal))
		diffuse = lightColor.Scale(intensity)

		viewDir := rc.Camera.Position.Sub(hit.Point).Normalize()
		reflect := lightDir.MirrorAbout(hit.Normal)
		specIntensity := p.Intensity * math.Pow(math.Max(0, viewDir.Dot(reflect)), m.Spec)
		specular = lightColor.Scale(specIntensity)

		if rc.inShadow(hit, lightDir, lightDist) {
			shadow = 1
		}
	}

	final := ambient.Add(diffuse.Add(specular).Scale(1 - shadow)).Mul(base).ClampMax(1)
	return render.EncodeColor(final.X, final.Y, final.Z)
}

func (rc *RenderContext) inShadow(hit scene.Hit, lightDir math3d.Vec3, lightDist float64) bool {
	if rc.Scene == nil {
		return false
	}
	switch rc.Shadows {
	case ShadowCameraDistance:
		if hit.Distance >= lightDist {
			return false
		}
		return rc.Scene.Occluded(hit.Point, lightDir, hit.Object, math.Inf(1))
	default:
		return rc.Scene.Occluded(hit.Point, lightDir, hit.Object, lightDist)
	}
}
