package raytrace

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/taigrr/raytrace/pkg/render"
	"github.com/taigrr/raytrace/pkg/scene"
	"golang.org/x/sync/errgroup"
)

// RenderContext holds everything a render pass reads. The framebuffer is
// passed to Render separately and is the only thing a pass writes to.
type RenderContext struct {
	Camera  Camera
	Scene   *scene.Scene
	Lights  scene.Lights
	Shadows ShadowMode

	// Workers caps the number of rows rendered at once. Zero or less uses
	// GOMAXPROCS.
	Workers int

	// Progress, when set, is called after each finished row with the
	// number of rows done so far. It is called from worker goroutines.
	Progress func(done, total int)
}

// NewRenderContext creates a render context with the default camera, no
// lights and occluder-distance shadows.
func NewRenderContext(sc *scene.Scene) *RenderContext {
	return &RenderContext{
		Camera: DefaultCamera(),
		Scene:  sc,
	}
}

// Stats summarizes a render pass.
type Stats struct {
	Pixels   int           // primary rays cast
	Hits     int           // pixels whose ray hit something
	Duration time.Duration // wall time of the pass
}

// Render traces every pixel of fb. See RenderStats.
func (rc *RenderContext) Render(ctx context.Context, fb *render.Framebuffer) error {
	_, err := rc.RenderStats(ctx, fb)
	return err
}

// RenderStats traces every pixel of fb and reports what it did.
//
// For each pixel the primary ray is tested against every object in scene
// order. A hit is kept when it is strictly closer than the pixel's depth
// cell, which is updated on the spot, so ties keep the earlier object.
// When the pixel ends up with a hit its shaded color is written through
// the viewport; pixels without a hit keep whatever color they had.
//
// Rows are rendered concurrently and each row touches only its own cells.
// When ctx is cancelled no new rows start and ctx.Err() is returned.
func (rc *RenderContext) RenderStats(ctx context.Context, fb *render.Framebuffer) (Stats, error) {
	start := time.Now()
	workers := rc.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var hits, rowsDone atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := range fb.Height {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hits.Add(int64(rc.renderRow(fb, y)))
			done := rowsDone.Add(1)
			if rc.Progress != nil {
				rc.Progress(int(done), fb.Height)
			}
			return nil
		})
	}

	err := g.Wait()
	stats := Stats{
		Pixels:   int(rowsDone.Load()) * fb.Width,
		Hits:     int(hits.Load()),
		Duration: time.Since(start),
	}
	if ctx.Err() != nil {
		return stats, ctx.Err()
	}
	return stats, err
}

// renderRow traces row y and returns the number of pixels that hit.
func (rc *RenderContext) renderRow(fb *render.Framebuffer, y int) int {
	var objects []scene.Object
	if rc.Scene != nil {
		objects = rc.Scene.Objects
	}

	hits := 0
	for x := range fb.Width {
		dir := rc.Camera.PrimaryRay(x, y, fb.Width, fb.Height)

		var nearest scene.Hit
		found := false
		for _, obj := range objects {
			hit, ok := obj.RayIntersect(rc.Camera.Position, dir)
			if !ok {
				continue
			}
			if fb.TestDepth(x, y, hit.Distance) {
				hit.Object = obj
				nearest = hit
				found = true
			}
		}

		if found {
			hits++
			fb.VertexPixelColor(x, y, rc.Shade(nearest.Object.Material(), nearest))
		}
	}
	return hits
}
