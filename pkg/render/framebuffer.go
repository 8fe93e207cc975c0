// Package render owns the pixel side of the ray tracer: packed colors, the
// framebuffer with its depth grid and viewport, and the exporters that turn
// a finished frame into bitmap, WebP or terminal output.
package render

import (
	"image"
	"math"
)

// Viewport is a rectangle inside the framebuffer used to map normalized
// device coordinates to pixels. Keeping it inside the framebuffer is the
// caller's responsibility.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Sampler returns a color for normalized texture coordinates.
type Sampler interface {
	Sample(u, v float64) Color
}

// Framebuffer is a grid of packed colors plus a parallel depth grid.
// Both are row-major: the cell for (x, y) lives at y*Width+x.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
	Depth  []float64

	viewport   Viewport
	drawColor  Color
	clearColor Color
}

// NewFramebuffer creates a framebuffer with a white draw color, a black clear
// color and a viewport covering the whole window.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		drawColor:  White,
		clearColor: Black,
	}
	fb.CreateWindow(width, height)
	return fb
}

// CreateWindow (re)allocates both grids, clears them and resets the viewport
// to the full window.
func (fb *Framebuffer) CreateWindow(width, height int) {
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]Color, width*height)
	fb.Depth = make([]float64, width*height)
	fb.Clear()
	fb.SetViewport(0, 0, width, height)
}

// SetViewport stores the viewport rectangle. Buffer contents are untouched.
func (fb *Framebuffer) SetViewport(x, y, width, height int) {
	fb.viewport = Viewport{X: x, Y: y, Width: width, Height: height}
}

// Viewport returns the current viewport.
func (fb *Framebuffer) Viewport() Viewport {
	return fb.viewport
}

// Clear fills the color grid with the clear color and the depth grid with
// +Inf.
func (fb *Framebuffer) Clear() {
	if len(fb.Pixels) == 0 {
		return
	}
	// Use copy-doubling for faster clearing
	fb.Pixels[0] = fb.clearColor
	for i := 1; i < len(fb.Pixels); i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
	fb.Depth[0] = math.Inf(1)
	for i := 1; i < len(fb.Depth); i *= 2 {
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// SetBackground samples s at (x/Width, y/Height) for every pixel and stores
// the result. Depth is not touched.
func (fb *Framebuffer) SetBackground(s Sampler) {
	for y := range fb.Height {
		for x := range fb.Width {
			fb.Pixels[y*fb.Width+x] = s.Sample(float64(x)/float64(fb.Width), float64(y)/float64(fb.Height))
		}
	}
}

// SetDrawColor sets the color used by Vertex writes without an explicit color.
func (fb *Framebuffer) SetDrawColor(r, g, b float64) {
	fb.drawColor = EncodeColor(r, g, b)
}

// SetClearColor sets the color used by Clear.
func (fb *Framebuffer) SetClearColor(r, g, b float64) {
	fb.clearColor = EncodeColor(r, g, b)
}

// DrawColor returns the current draw color.
func (fb *Framebuffer) DrawColor() Color { return fb.drawColor }

// ClearColor returns the current clear color.
func (fb *Framebuffer) ClearColor() Color { return fb.clearColor }

// VertexNDC writes the draw color at normalized device coordinates.
// It reports whether the pixel was written.
func (fb *Framebuffer) VertexNDC(x, y float64) bool {
	return fb.VertexNDCColor(x, y, fb.drawColor)
}

// VertexNDCColor maps (x, y) in [-1, 1] through the viewport and writes c.
// Points that land outside the framebuffer are clipped and false is
// returned.
func (fb *Framebuffer) VertexNDCColor(x, y float64, c Color) bool {
	vp := fb.viewport
	pixelX := (x+1)*(float64(vp.Width)/2) + float64(vp.X)
	pixelY := (y+1)*(float64(vp.Height)/2) + float64(vp.Y)

	if pixelX >= float64(fb.Width) || pixelX < 0 || pixelY >= float64(fb.Height) || pixelY < 0 {
		return false
	}

	// Half-way cases round to even, so e.g. 0.5 lands on column 0.
	return fb.set(int(math.RoundToEven(pixelX)), int(math.RoundToEven(pixelY)), c)
}

// VertexPixel writes the draw color at integer pixel coordinates.
// It reports whether the pixel was written.
func (fb *Framebuffer) VertexPixel(x, y int) bool {
	return fb.VertexPixelColor(x, y, fb.drawColor)
}

// VertexPixelColor writes c at (x, y) if the pixel lies inside both the
// viewport and the framebuffer.
func (fb *Framebuffer) VertexPixelColor(x, y int, c Color) bool {
	vp := fb.viewport
	if x < vp.X || x >= vp.X+vp.Width || y < vp.Y || y >= vp.Y+vp.Height {
		return false
	}
	return fb.set(x, y, c)
}

// set is the single bounds-checked store every write goes through.
func (fb *Framebuffer) set(x, y int, c Color) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	fb.Pixels[y*fb.Width+x] = c
	return true
}

// PixelAt returns the color at (x, y).
// Returns the zero Color if out of bounds.
func (fb *Framebuffer) PixelAt(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DepthAt returns the depth at (x, y), +Inf when out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math.Inf(1)
	}
	return fb.Depth[y*fb.Width+x]
}

// TestDepth stores d at (x, y) when it is strictly closer than the current
// value and reports whether it did. Cells never grow.
func (fb *Framebuffer) TestDepth(x, y int, d float64) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	idx := y*fb.Width + x
	if d < fb.Depth[idx] {
		fb.Depth[idx] = d
		return true
	}
	return false
}

// ToImage converts the framebuffer to a standard Go image.RGBA. Row 0 of the
// framebuffer becomes the bottom row of the image, matching how bitmap
// viewers display the serialized file.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, fb.Height-1-y, fb.Pixels[y*fb.Width+x].ToRGBA())
		}
	}
	return img
}
