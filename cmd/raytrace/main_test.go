package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/taigrr/raytrace/pkg/config"
	"github.com/taigrr/raytrace/pkg/render"
	"golang.org/x/image/bmp"
)

func TestFramePath(t *testing.T) {
	tests := []struct {
		path   string
		frame  int
		frames int
		want   string
	}{
		{"out.bmp", 0, 1, "out.bmp"},
		{"out.bmp", 3, 10, "out_0003.bmp"},
		{"dir/depth.bmp", 12, 20, "dir/depth_0012.bmp"},
		{"noext", 1, 2, "noext_0001"},
	}
	for _, tt := range tests {
		if got := framePath(tt.path, tt.frame, tt.frames); got != tt.want {
			t.Errorf("framePath(%q, %d, %d) = %q, want %q", tt.path, tt.frame, tt.frames, got, tt.want)
		}
	}
}

func smallScene(dir string) *config.Config {
	cfg := config.Demo()
	cfg.Output = filepath.Join(dir, "out.bmp")
	cfg.Depth = filepath.Join(dir, "depth.bmp")
	cfg.Resolve(config.Flags{Width: 8, Height: 6, Workers: 2})
	return &cfg
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRenderFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := smallScene(dir)
	cfg.WebP = filepath.Join(dir, "out.webp")

	if err := renderFrames(context.Background(), cfg, quietLogger()); err != nil {
		t.Fatalf("renderFrames: %v", err)
	}

	for _, name := range []string{"out.bmp", "depth.bmp"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		img, err := bmp.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
			t.Errorf("%s is %dx%d, want 8x6", name, b.Dx(), b.Dy())
		}
	}
	if _, err := os.Stat(cfg.WebP); err != nil {
		t.Errorf("webp not written: %v", err)
	}
}

func TestRenderFramesSweep(t *testing.T) {
	dir := t.TempDir()
	cfg := smallScene(dir)
	cfg.Output = filepath.Join(dir, "frame.png")
	cfg.Sweep = &config.SweepConfig{To: config.Vec{6, 8, 2}, Frames: 3, FPS: 24}

	if err := renderFrames(context.Background(), cfg, quietLogger()); err != nil {
		t.Fatalf("renderFrames: %v", err)
	}
	for i := range 3 {
		for _, p := range []string{framePath(cfg.Output, i, 3), framePath(cfg.Depth, i, 3)} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("frame %d: %v", i, err)
			}
		}
	}
}

func TestRenderFramesCancelled(t *testing.T) {
	dir := t.TempDir()
	cfg := smallScene(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := renderFrames(ctx, cfg, quietLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(cfg.Output); !errors.Is(err, os.ErrNotExist) {
		t.Error("cancelled render should not write an image")
	}
}

func TestRenderFramesInvalid(t *testing.T) {
	cfg := smallScene(t.TempDir())
	cfg.Shadows = "soft"
	if err := renderFrames(context.Background(), cfg, quietLogger()); !errors.Is(err, config.ErrInvalidShadowMode) {
		t.Errorf("err = %v, want ErrInvalidShadowMode", err)
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	fb := render.NewFramebuffer(2, 2)
	for _, name := range []string{"a.bmp", "b.png", "c.webp", "d.img"} {
		path := filepath.Join(dir, name)
		if err := saveImage(fb, path); err != nil {
			t.Errorf("saveImage(%s): %v", name, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	flags = config.Flags{Width: 10, Height: 20}
	t.Cleanup(func() { flags = config.Flags{} })

	cfg, err := loadConfig(nil)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Width != 10 || cfg.Height != 20 || len(cfg.Objects) == 0 {
		t.Errorf("demo config = %dx%d with %d objects", cfg.Width, cfg.Height, len(cfg.Objects))
	}

	if _, err := loadConfig([]string{filepath.Join(t.TempDir(), "none.json")}); err == nil {
		t.Error("expected error for missing scene")
	}
}
