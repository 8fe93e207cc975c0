package config

import (
	"fmt"
	"strings"

	"github.com/taigrr/raytrace/pkg/animate"
	"github.com/taigrr/raytrace/pkg/math3d"
	"github.com/taigrr/raytrace/pkg/models"
	"github.com/taigrr/raytrace/pkg/raytrace"
	"github.com/taigrr/raytrace/pkg/render"
	"github.com/taigrr/raytrace/pkg/scene"
)

// Job is a built scene ready to render.
type Job struct {
	Context     *raytrace.RenderContext
	Framebuffer *render.Framebuffer

	// Background is painted by Reset before each frame; nil for none.
	Background render.Sampler
}

// Reset clears the framebuffer and repaints the background.
func (j *Job) Reset() {
	j.Framebuffer.Clear()
	if j.Background != nil {
		j.Framebuffer.SetBackground(j.Background)
	}
}

// Build validates the config, loads every referenced asset and returns a
// job whose framebuffer is already reset.
func (c *Config) Build() (*Job, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	fb := render.NewFramebuffer(c.Width, c.Height)
	if cc := c.ClearColor; cc != nil {
		fb.SetClearColor(cc[0], cc[1], cc[2])
	}
	if dc := c.DrawColor; dc != nil {
		fb.SetDrawColor(dc[0], dc[1], dc[2])
	}
	if vp := c.Viewport; vp != nil {
		fb.SetViewport(vp.X, vp.Y, vp.Width, vp.Height)
	}

	bg, err := c.background()
	if err != nil {
		return nil, err
	}
	job := &Job{Framebuffer: fb, Background: bg}

	sc := &scene.Scene{}
	for i, oc := range c.Objects {
		obj, err := c.buildObject(oc)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		sc.Add(obj)
	}

	rc := raytrace.NewRenderContext(sc)
	rc.Camera = raytrace.Camera{Position: c.Camera.vec(), FOV: c.FOV}
	rc.Workers = c.Workers
	rc.Shadows, _ = parseShadows(c.Shadows)
	if a := c.Ambient; a != nil {
		rc.Lights.Ambient = &scene.AmbientLight{Color: a.Color.color(), Strength: a.Strength}
	}
	if p := c.Point; p != nil {
		rc.Lights.Point = &scene.PointLight{Position: p.Position.vec(), Color: p.Color.color(), Intensity: p.Intensity}
	}
	job.Context = rc

	job.Reset()
	return job, nil
}

// background picks the texture file first, then the gradient, then the
// checkerboard. It returns nil when none is set.
func (c *Config) background() (render.Sampler, error) {
	switch {
	case c.Background != "":
		tex, err := render.LoadTexture(c.path(c.Background))
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		if c.Bilinear {
			tex.FilterMode = render.FilterBilinear
		}
		return tex, nil
	case c.Gradient != nil:
		tex := render.NewGradientTexture(1, c.Height, c.Gradient.Top.color(), c.Gradient.Bottom.color())
		tex.WrapU, tex.WrapV = render.WrapClamp, render.WrapClamp
		return tex, nil
	case c.Checker != nil:
		ch := c.Checker
		return render.NewCheckerTexture(c.Width, c.Height, ch.Size, ch.A.color(), ch.B.color()), nil
	}
	return nil, nil
}

func (c *Config) material(name string) (scene.Material, bool) {
	if name == "" {
		return scene.Material{}, false
	}
	m := c.Materials[name]
	return scene.Material{Diffuse: m.Diffuse.color(), Spec: m.Spec}, true
}

func (c *Config) buildObject(oc ObjectConfig) (scene.Object, error) {
	mat, named := c.material(oc.Material)
	if !named && strings.ToLower(oc.Type) != "mesh" {
		mat = scene.MaterialFromModel(nil)
	}

	switch strings.ToLower(oc.Type) {
	case "sphere":
		return scene.NewSphere(oc.Center.vec(), oc.Radius, mat), nil
	case "plane":
		return scene.NewPlane(oc.Point.vec(), oc.Normal.vec(), mat), nil
	case "triangle":
		v := oc.Vertices
		return scene.NewTriangle(v[0].vec(), v[1].vec(), v[2].vec(), mat), nil
	case "mesh":
		loader := models.NewGLTFLoader()
		loader.SmoothNormals = oc.Smooth
		mesh, err := loader.Load(c.path(oc.Path))
		if err != nil {
			return nil, err
		}
		if oc.Fit > 0 {
			mesh.Fit(oc.Fit)
		}
		scale := math3d.V3(1, 1, 1)
		if oc.Scale != nil {
			scale = oc.Scale.vec()
		}
		mesh.Transform(math3d.TRS(oc.Translate.vec(), oc.Rotate.vec(), scale))

		if !named {
			mat = scene.MaterialFromModel(mesh.DominantMaterial())
		}
		obj := scene.NewMeshObject(mesh, mat)
		obj.Smooth = oc.Smooth
		return obj, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownObject, oc.Type)
}

// LightPath returns the point light position for every frame. Without a
// sweep it is the single configured position, or nil without a point
// light.
func (c *Config) LightPath() []math3d.Vec3 {
	if c.Point == nil {
		return nil
	}
	if c.Sweep == nil || c.Sweep.Frames <= 1 {
		return []math3d.Vec3{c.Point.Position.vec()}
	}
	fps := c.Sweep.FPS
	if fps <= 0 {
		fps = 24
	}
	return animate.NewLightSweep(c.Point.Position.vec(), c.Sweep.To.vec(), fps).Path(c.Sweep.Frames)
}

func parseShadows(s string) (raytrace.ShadowMode, error) {
	switch strings.ToLower(s) {
	case "", "occluder":
		return raytrace.ShadowOccluderDistance, nil
	case "camera":
		return raytrace.ShadowCameraDistance, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShadowMode, s)
}

func (v Vec) vec() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// color encodes the channels, clamped to 0-1 so out-of-range values in a
// scene file saturate instead of wrapping.
func (c RGB) color() render.Color {
	cl := func(v float64) float64 { return max(0, min(1, v)) }
	return render.EncodeColor(cl(c[0]), cl(c[1]), cl(c[2]))
}
