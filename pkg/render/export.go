package render

import (
	"fmt"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
)

// WritePNG encodes the framebuffer as a PNG, bottom row last.
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, fb.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return saveFile(path, fb.WritePNG)
}

// WriteWebP encodes the framebuffer as a lossless WebP.
func (fb *Framebuffer) WriteWebP(w io.Writer) error {
	if err := nativewebp.Encode(w, fb.ToImage(), nil); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// SaveWebP saves the framebuffer as a WebP file.
func (fb *Framebuffer) SaveWebP(path string) error {
	return saveFile(path, fb.WriteWebP)
}
