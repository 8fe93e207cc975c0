package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestWriteBMPHeader(t *testing.T) {
	fb := NewFramebuffer(4, 3)

	var buf bytes.Buffer
	if err := fb.WriteBMP(&buf); err != nil {
		t.Fatalf("WriteBMP: %v", err)
	}
	b := buf.Bytes()

	if len(b) != 54+3*4*3 {
		t.Fatalf("file size = %d, want %d", len(b), 54+3*4*3)
	}
	if string(b[:2]) != "BM" {
		t.Errorf("magic = %q, want BM", b[:2])
	}

	le := binary.LittleEndian
	dwords := []struct {
		name string
		off  int
		want int32
	}{
		{"file size", 2, 90},
		{"reserved", 6, 0},
		{"pixel offset", 10, 54},
		{"info size", 14, 40},
		{"width", 18, 4},
		{"height", 22, 3},
		{"compression", 30, 0},
		{"image size", 34, 36},
		{"x resolution", 38, 0},
		{"y resolution", 42, 0},
		{"colors used", 46, 0},
		{"important colors", 50, 0},
	}
	for _, d := range dwords {
		if got := int32(le.Uint32(b[d.off:])); got != d.want {
			t.Errorf("%s = %d, want %d", d.name, got, d.want)
		}
	}
	if got := int16(le.Uint16(b[26:])); got != 1 {
		t.Errorf("planes = %d, want 1", got)
	}
	if got := int16(le.Uint16(b[28:])); got != 24 {
		t.Errorf("bits per pixel = %d, want 24", got)
	}
}

func TestWriteBMPPixelOrder(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.VertexPixelColor(0, 0, EncodeColor(1, 0, 0))
	fb.VertexPixelColor(1, 0, EncodeColor(0, 1, 0))
	fb.VertexPixelColor(0, 1, EncodeColor(0, 0, 1))

	var buf bytes.Buffer
	if err := fb.WriteBMP(&buf); err != nil {
		t.Fatalf("WriteBMP: %v", err)
	}

	// Grid order, B,G,R bytes, no padding.
	want := []byte{
		0, 0, 255, 0, 255, 0,
		255, 0, 0, 0, 0, 0,
	}
	if got := buf.Bytes()[54:]; !bytes.Equal(got, want) {
		t.Errorf("pixel data = %v, want %v", got, want)
	}
}

func TestWriteBMPDecodes(t *testing.T) {
	// Width 4 keeps rows 4-byte aligned so standard readers accept the file.
	fb := NewFramebuffer(4, 3)
	for y := range 3 {
		for x := range 4 {
			fb.VertexPixelColor(x, y, RGB(uint8(x*60), uint8(y*100), 7))
		}
	}

	var buf bytes.Buffer
	if err := fb.WriteBMP(&buf); err != nil {
		t.Fatalf("WriteBMP: %v", err)
	}
	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp.Decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	// Decoders read bottom-up, so grid row y is image row h-1-y.
	for y := range 3 {
		for x := range 4 {
			got := ColorFromRGBA(img.At(x, 2-y))
			if want := fb.PixelAt(x, y); got != want {
				t.Errorf("decoded (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestWriteDepthBMP(t *testing.T) {
	tests := []struct {
		name  string
		depth []float64
		want  []byte
	}{
		{
			name:  "normalizes finite cells",
			depth: []float64{2, 3, 4, 2},
			want:  []byte{0, 127, 255, 0},
		},
		{
			name:  "misses map to minimum",
			depth: []float64{2, math.Inf(1), 4, math.Inf(1)},
			want:  []byte{0, 0, 255, 0},
		},
		{
			name:  "nothing hit",
			depth: []float64{math.Inf(1), math.Inf(1), math.Inf(1), math.Inf(1)},
			want:  []byte{0, 0, 0, 0},
		},
		{
			name:  "flat depth",
			depth: []float64{5, 5, 5, 5},
			want:  []byte{0, 0, 0, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(4, 1)
			copy(fb.Depth, tc.depth)

			var buf bytes.Buffer
			if err := fb.WriteDepthBMP(&buf); err != nil {
				t.Fatalf("WriteDepthBMP: %v", err)
			}
			px := buf.Bytes()[54:]
			if len(px) != 12 {
				t.Fatalf("pixel bytes = %d, want 12", len(px))
			}
			for i, w := range tc.want {
				g := px[i*3 : i*3+3]
				if g[0] != w || g[1] != w || g[2] != w {
					t.Errorf("cell %d = %v, want gray %d", i, g, w)
				}
			}
		})
	}
}

func TestDepthRange(t *testing.T) {
	fb := NewFramebuffer(3, 1)
	copy(fb.Depth, []float64{math.Inf(1), 1.5, 0.25})

	lo, hi := fb.DepthRange()
	if lo != 0.25 || hi != 1.5 {
		t.Errorf("DepthRange() = %v, %v, want 0.25, 1.5", lo, hi)
	}
}

type failWriter struct{}

var errDiskFull = errors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteBMPPropagatesErrors(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	if err := fb.WriteBMP(failWriter{}); !errors.Is(err, errDiskFull) {
		t.Errorf("WriteBMP error = %v, want %v", err, errDiskFull)
	}
	if err := fb.WriteDepthBMP(failWriter{}); !errors.Is(err, errDiskFull) {
		t.Errorf("WriteDepthBMP error = %v, want %v", err, errDiskFull)
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	fb := NewFramebuffer(4, 4)
	fb.VertexPixel(1, 1)
	fb.TestDepth(1, 1, 3)

	saves := []struct {
		name string
		save func(string) error
		size int64
	}{
		{"out.bmp", fb.SaveBMP, 54 + 48},
		{"depth.bmp", fb.SaveDepthBMP, 54 + 48},
		{"out.png", fb.SavePNG, -1},
		{"out.webp", fb.SaveWebP, -1},
	}
	for _, s := range saves {
		t.Run(s.name, func(t *testing.T) {
			path := filepath.Join(dir, s.name)
			if err := s.save(path); err != nil {
				t.Fatalf("save: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if s.size >= 0 && info.Size() != s.size {
				t.Errorf("size = %d, want %d", info.Size(), s.size)
			}
			if info.Size() == 0 {
				t.Error("file is empty")
			}
		})
	}
}

func TestSaveBMPBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	path := filepath.Join(t.TempDir(), "missing", "out.bmp")
	if err := fb.SaveBMP(path); err == nil {
		t.Error("expected error for missing directory")
	}
}

func BenchmarkWriteBMP(b *testing.B) {
	fb := NewFramebuffer(512, 512)
	var buf bytes.Buffer
	for b.Loop() {
		buf.Reset()
		_ = fb.WriteBMP(&buf)
	}
}
