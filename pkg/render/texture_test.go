package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestTextureSampleNearest(t *testing.T) {
	a, b := RGB(255, 0, 0), RGB(0, 0, 255)
	tex := NewCheckerTexture(4, 4, 2, a, b)

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		// V is flipped: v near 1 reads the top rows of the image.
		{"top left", 0.1, 0.9, a},
		{"top right", 0.9, 0.9, b},
		{"bottom left", 0.1, 0.1, b},
		{"bottom right", 0.9, 0.1, a},
		{"wraps", 1.1, 0.9, a},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureClamp(t *testing.T) {
	tex := NewGradientTexture(2, 2, RGB(0, 0, 0), RGB(200, 200, 200))
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp

	if got := tex.Sample(-3, 5); got != RGB(0, 0, 0) {
		t.Errorf("clamped top sample = %v, want black", got)
	}
	if got := tex.Sample(4, -2); got != RGB(200, 200, 200) {
		t.Errorf("clamped bottom sample = %v, want gray", got)
	}
}

func TestTextureBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, RGB(0, 0, 0))
	tex.SetPixel(1, 0, RGB(200, 100, 50))
	tex.WrapU = WrapClamp
	tex.FilterMode = FilterBilinear

	got := tex.Sample(0.5, 0.5)
	want := RGB(100, 50, 25)
	if got != want {
		t.Errorf("bilinear midpoint = %v, want %v", got, want)
	}
}

func TestTextureEmpty(t *testing.T) {
	var tex Texture
	if got := tex.Sample(0.5, 0.5); got != (Color{}) {
		t.Errorf("empty texture sample = %v, want zero", got)
	}
}

func TestLoadTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.RGBA{10, 20, 30, 255})

	path := filepath.Join(t.TempDir(), "bg.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width != 3 || tex.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(2, 1); got != RGB(10, 20, 30) {
		t.Errorf("GetPixel(2, 1) = %v, want %v", got, RGB(10, 20, 30))
	}
}

func TestLoadTextureOwnBitmap(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.VertexPixelColor(3, 0, RGB(9, 8, 7))

	path := filepath.Join(t.TempDir(), "bg.bmp")
	if err := fb.SaveBMP(path); err != nil {
		t.Fatal(err)
	}
	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	// Grid row 0 is the bottom image row.
	if got := tex.GetPixel(3, 1); got != RGB(9, 8, 7) {
		t.Errorf("GetPixel(3, 1) = %v, want %v", got, RGB(9, 8, 7))
	}
}

func TestLoadTextureMissing(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadTextureUnsupported(t *testing.T) {
	_, err := LoadTexture("background.gif")
	if !errors.Is(err, ErrUnsupportedTexture) {
		t.Errorf("LoadTexture(.gif) error = %v, want %v", err, ErrUnsupportedTexture)
	}
}
