package render

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// Texture is an image sampled by normalized coordinates. It implements
// Sampler and is what scene files use as a background.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color // Row-major, row 0 at the top of the source image
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:      width,
		Height:     height,
		Pixels:     make([]Color, width*height),
		WrapU:      WrapRepeat,
		WrapV:      WrapRepeat,
		FilterMode: FilterNearest,
	}
}

// ErrUnsupportedTexture is returned for texture files with an unknown
// extension.
var ErrUnsupportedTexture = errors.New("unsupported texture format")

// Decoders are picked by extension: TGA has no magic number, so content
// sniffing through image.Decode cannot tell it apart from the others.
var textureDecoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
}

// LoadTexture loads a texture from a PNG, JPEG, BMP or TGA file.
func LoadTexture(path string) (*Texture, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := textureDecoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTexture, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image. Alpha is dropped.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())
	for y := range tex.Height {
		for x := range tex.Width {
			tex.SetPixel(x, y, ColorFromRGBA(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// NewGradientTexture creates a vertical gradient texture running from top
// (first row of the image) to bottom.
func NewGradientTexture(width, height int, top, bottom Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		c := lerpColor(top, bottom, t)
		for x := range width {
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}

// SetPixel sets a pixel in the texture.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample samples the texture at UV coordinates (0-1 range). V=0 is the
// bottom of the image.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	u = wrapCoord(u, t.WrapU)
	v = wrapCoord(v, t.WrapV)

	// Image Y=0 at top, V=0 at bottom
	v = 1.0 - v

	switch t.FilterMode {
	case FilterBilinear:
		return t.sampleBilinear(u, v)
	default:
		return t.sampleNearest(u, v)
	}
}

func wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		coord -= math.Floor(coord)
	case WrapClamp:
		coord = math.Max(0, math.Min(1, coord))
	}
	return coord
}

func (t *Texture) sampleNearest(u, v float64) Color {
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.GetPixel(x, y)
}

func (t *Texture) sampleBilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := wrapPixelCoord(x0+1, t.Width, t.WrapU)
	y1 := wrapPixelCoord(y0+1, t.Height, t.WrapV)
	x0 = wrapPixelCoord(x0, t.Width, t.WrapU)
	y0 = wrapPixelCoord(y0, t.Height, t.WrapV)

	top := lerpColor(t.GetPixel(x0, y0), t.GetPixel(x1, y0), tx)
	bot := lerpColor(t.GetPixel(x0, y1), t.GetPixel(x1, y1), tx)
	return lerpColor(top, bot, ty)
}

func wrapPixelCoord(x, size int, mode WrapMode) int {
	switch mode {
	case WrapRepeat:
		x %= size
		if x < 0 {
			x += size
		}
	case WrapClamp:
		x = max(0, min(x, size-1))
	}
	return x
}

// lerpColor interpolates each packed byte independently.
func lerpColor(a, b Color, t float64) Color {
	var out Color
	for i := range out {
		out[i] = uint8(float64(a[i]) + (float64(b[i])-float64(a[i]))*t)
	}
	return out
}

// SolidColor is a Sampler that returns the same color everywhere.
type SolidColor Color

// Sample implements Sampler.
func (s SolidColor) Sample(_, _ float64) Color { return Color(s) }
