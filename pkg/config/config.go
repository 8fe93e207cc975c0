// Package config reads JSON scene files and builds them into render jobs.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Validation errors, checked with errors.Is.
var (
	ErrInvalidSize       = errors.New("width and height must be positive")
	ErrInvalidViewport   = errors.New("viewport must have a positive size")
	ErrInvalidFOV        = errors.New("fov must be in (0, 180)")
	ErrUnknownMaterial   = errors.New("unknown material")
	ErrUnknownObject     = errors.New("unknown object type")
	ErrInvalidObject     = errors.New("invalid object")
	ErrInvalidShadowMode = errors.New("shadows must be \"occluder\" or \"camera\"")
	ErrInvalidSweep      = errors.New("sweep needs a point light and frames > 0")
	ErrInvalidBackground = errors.New("checker size must be positive")
)

// Vec is an [x, y, z] triple in JSON.
type Vec [3]float64

// RGB is a color with channels in 0-1.
type RGB [3]float64

// Rect is a viewport rectangle in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MaterialConfig describes a named material.
type MaterialConfig struct {
	Diffuse RGB     `json:"diffuse"`
	Spec    float64 `json:"spec"`
}

// ObjectConfig describes one scene object. Which fields apply depends on
// Type: "sphere", "plane", "triangle" or "mesh".
type ObjectConfig struct {
	Type     string `json:"type"`
	Material string `json:"material,omitempty"`

	// sphere
	Center Vec     `json:"center"`
	Radius float64 `json:"radius"`

	// plane
	Point  Vec `json:"point"`
	Normal Vec `json:"normal"`

	// triangle
	Vertices [3]Vec `json:"vertices"`

	// mesh: path to a .glb/.gltf, placed with fit/scale/rotate/translate
	Path      string  `json:"path"`
	Fit       float64 `json:"fit"`
	Scale     *Vec    `json:"scale,omitempty"`
	Rotate    Vec     `json:"rotate"` // degrees
	Translate Vec     `json:"translate"`
	Smooth    bool    `json:"smooth"`
}

// GradientConfig is a vertical background gradient.
type GradientConfig struct {
	Top    RGB `json:"top"`
	Bottom RGB `json:"bottom"`
}

// CheckerConfig is a checkerboard background with Size pixel squares.
type CheckerConfig struct {
	A    RGB `json:"a"`
	B    RGB `json:"b"`
	Size int `json:"size"`
}

// AmbientConfig is the optional ambient light.
type AmbientConfig struct {
	Color    RGB     `json:"color"`
	Strength float64 `json:"strength"`
}

// PointConfig is the optional point light.
type PointConfig struct {
	Position  Vec     `json:"position"`
	Color     RGB     `json:"color"`
	Intensity float64 `json:"intensity"`
}

// SweepConfig animates the point light toward To over Frames frames.
type SweepConfig struct {
	To     Vec `json:"to"`
	Frames int `json:"frames"`
	FPS    int `json:"fps"`
}

// Config holds a scene and its render settings.
type Config struct {
	// Image
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Viewport   *Rect           `json:"viewport,omitempty"`
	ClearColor *RGB            `json:"clear_color,omitempty"`
	DrawColor  *RGB            `json:"draw_color,omitempty"`
	Background string          `json:"background,omitempty"` // texture file
	Bilinear   bool            `json:"bilinear"`
	Gradient   *GradientConfig `json:"gradient,omitempty"`
	Checker    *CheckerConfig  `json:"checker,omitempty"`

	// Camera
	FOV    float64 `json:"fov"`
	Camera Vec     `json:"camera"`

	// Scene
	Materials map[string]MaterialConfig `json:"materials"`
	Objects   []ObjectConfig            `json:"objects"`
	Ambient   *AmbientConfig            `json:"ambient,omitempty"`
	Point     *PointConfig              `json:"point,omitempty"`
	Shadows   string                    `json:"shadows,omitempty"`
	Sweep     *SweepConfig              `json:"sweep,omitempty"`

	// Output
	Output  string `json:"output"`
	Depth   string `json:"depth"`
	WebP    string `json:"webp,omitempty"`
	Workers int    `json:"workers"`

	// Dir is the directory relative asset paths are resolved against. Load
	// sets it to the scene file's directory.
	Dir string `json:"-"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width   int
	Height  int
	Workers int
	Output  string
	Depth   string
	WebP    string
	Frames  int
	Shadows string
}

// Load reads a JSON scene file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)

	return cfg, nil
}

// Resolve applies flag overrides and fills defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Depth != "" {
		c.Depth = flags.Depth
	}
	if flags.WebP != "" {
		c.WebP = flags.WebP
	}
	if flags.Shadows != "" {
		c.Shadows = flags.Shadows
	}
	if flags.Frames > 0 && c.Sweep != nil {
		c.Sweep.Frames = flags.Frames
	}

	if c.Width == 0 {
		c.Width = 512
	}
	if c.Height == 0 {
		c.Height = 512
	}
	if c.FOV == 0 {
		c.FOV = 60
	}
	if c.Output == "" {
		c.Output = "out.bmp"
	}
	if c.Depth == "" {
		c.Depth = "depth.bmp"
	}
	if c.Shadows == "" {
		c.Shadows = "occluder"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Sweep != nil && c.Sweep.FPS <= 0 {
		c.Sweep.FPS = 24
	}
}

// Validate checks the resolved config. Errors wrap the sentinels above.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if vp := c.Viewport; vp != nil && (vp.Width <= 0 || vp.Height <= 0) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, vp.Width, vp.Height)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("%w: %v", ErrInvalidFOV, c.FOV)
	}
	if _, err := parseShadows(c.Shadows); err != nil {
		return err
	}
	if c.Sweep != nil && (c.Point == nil || c.Sweep.Frames <= 0) {
		return ErrInvalidSweep
	}
	if c.Checker != nil && c.Checker.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBackground, c.Checker.Size)
	}

	for i, obj := range c.Objects {
		if err := c.validateObject(obj); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

func (c *Config) validateObject(obj ObjectConfig) error {
	if obj.Material != "" {
		if _, ok := c.Materials[obj.Material]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownMaterial, obj.Material)
		}
	}

	switch strings.ToLower(obj.Type) {
	case "sphere":
		if obj.Radius <= 0 {
			return fmt.Errorf("%w: sphere radius %v", ErrInvalidObject, obj.Radius)
		}
	case "plane":
		if obj.Normal == (Vec{}) {
			return fmt.Errorf("%w: plane normal is zero", ErrInvalidObject)
		}
	case "triangle":
		v := obj.Vertices
		if v[0] == v[1] || v[1] == v[2] || v[0] == v[2] {
			return fmt.Errorf("%w: triangle has repeated vertices", ErrInvalidObject)
		}
	case "mesh":
		if obj.Path == "" {
			return fmt.Errorf("%w: mesh without path", ErrInvalidObject)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownObject, obj.Type)
	}
	return nil
}

// path resolves p against the config directory.
func (c *Config) path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}
