package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpHeaderSize     = bmpFileHeaderSize + bmpInfoHeaderSize
)

// WriteBMP serializes the color grid as an uncompressed 24-bit bitmap.
//
// Rows are written in grid order (row 0 first, which bitmap readers treat
// as the bottom row) with no padding between them. Pixels are written in
// their stored B, G, R order.
func (fb *Framebuffer) WriteBMP(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writeBMPHeader(bw, fb.Width, fb.Height); err != nil {
		return fmt.Errorf("write bmp header: %w", err)
	}
	for _, c := range fb.Pixels {
		if _, err := bw.Write(c[:]); err != nil {
			return fmt.Errorf("write bmp pixels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write bmp pixels: %w", err)
	}
	return nil
}

// WriteDepthBMP serializes the depth grid as a grayscale 24-bit bitmap.
// Depths are normalized to [0, 1] over the finite cells; cells that were
// never hit take the minimum (and so come out black).
func (fb *Framebuffer) WriteDepthBMP(w io.Writer) error {
	lo, hi := fb.DepthRange()
	span := hi - lo

	bw := bufio.NewWriter(w)
	if err := writeBMPHeader(bw, fb.Width, fb.Height); err != nil {
		return fmt.Errorf("write depth header: %w", err)
	}
	for _, d := range fb.Depth {
		var v float64
		if !math.IsInf(d, 0) && span > 0 {
			v = (d - lo) / span
		}
		c := EncodeColor(v, v, v)
		if _, err := bw.Write(c[:]); err != nil {
			return fmt.Errorf("write depth pixels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write depth pixels: %w", err)
	}
	return nil
}

// DepthRange returns the smallest and largest finite depth. Both are 0 when
// nothing was hit.
func (fb *Framebuffer) DepthRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, d := range fb.Depth {
		if math.IsInf(d, 0) || math.IsNaN(d) {
			continue
		}
		lo = min(lo, d)
		hi = max(hi, d)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// SaveBMP writes the color grid to path.
func (fb *Framebuffer) SaveBMP(path string) error {
	return saveFile(path, fb.WriteBMP)
}

// SaveDepthBMP writes the normalized depth grid to path.
func (fb *Framebuffer) SaveDepthBMP(path string) error {
	return saveFile(path, fb.WriteDepthBMP)
}

func saveFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}

// writeBMPHeader writes the 14-byte file header and the 40-byte info
// header. Dwords are signed 32-bit and words signed 16-bit, little-endian.
func writeBMPHeader(w io.Writer, width, height int) error {
	imageSize := int32(width * height * 3)
	fields := []any{
		// file header
		[2]byte{'B', 'M'},
		bmpHeaderSize + imageSize,
		int32(0), // reserved
		int32(bmpHeaderSize),
		// info header
		int32(bmpInfoHeaderSize),
		int32(width),
		int32(height),
		int16(1),  // planes
		int16(24), // bits per pixel
		int32(0),  // no compression
		imageSize,
		int32(0),
		int32(0),
		int32(0),
		int32(0),
	}
	for _, v := range fields {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}
