// raytrace - render a scene file to BMP images
//
// Usage:
//
//	raytrace [scene.json]          render to out.bmp and depth.bmp
//	raytrace preview [scene.json]  show the render in the terminal
//
// Without a scene file the built-in demo scene is used.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/raytrace/pkg/config"
	"github.com/taigrr/raytrace/pkg/render"
)

var (
	flags   config.Flags
	verbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error("raytrace failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "raytrace [scene.json]",
		Short:         "Ray trace a scene to BMP images",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			return renderFrames(cmd.Context(), cfg, log.Default())
		},
	}

	pf := root.PersistentFlags()
	pf.IntVar(&flags.Width, "width", 0, "image width (default 512)")
	pf.IntVar(&flags.Height, "height", 0, "image height (default 512)")
	pf.IntVar(&flags.Workers, "workers", 0, "rows rendered in parallel (default NumCPU)")
	pf.StringVar(&flags.Shadows, "shadows", "", `shadow test: "occluder" or "camera"`)
	pf.BoolVarP(&verbose, "verbose", "v", false, "log render progress")

	f := root.Flags()
	f.StringVarP(&flags.Output, "out", "o", "", "color image path, .bmp/.png/.webp (default out.bmp)")
	f.StringVar(&flags.Depth, "depth", "", "depth image path (default depth.bmp)")
	f.StringVar(&flags.WebP, "webp", "", "also write the color image as WebP")
	f.IntVar(&flags.Frames, "frames", 0, "frames to render when the scene sweeps its light")

	root.AddCommand(newPreviewCmd())
	return root
}

// loadConfig reads the scene named in args, or the demo scene, and applies
// the command line flags.
func loadConfig(args []string) (*config.Config, error) {
	var cfg config.Config
	if len(args) > 0 {
		var err error
		cfg, err = config.Load(args[0])
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Demo()
	}
	cfg.Resolve(flags)
	return &cfg, nil
}

// renderFrames renders every frame of the light path and writes the
// images. A cancelled render writes nothing for that frame.
func renderFrames(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	job, err := cfg.Build()
	if err != nil {
		return err
	}
	rc := job.Context
	fb := job.Framebuffer

	logger.Info("scene loaded",
		"objects", rc.Scene.Len(),
		"size", fmt.Sprintf("%dx%d", fb.Width, fb.Height),
		"workers", rc.Workers,
		"shadows", rc.Shadows,
	)

	lights := cfg.LightPath()
	frames := max(1, len(lights))
	rc.Progress = progressLogger(logger)

	start := time.Now()
	for i := range frames {
		if i > 0 {
			job.Reset()
		}
		if len(lights) > 0 {
			rc.Lights.Point.Position = lights[i]
		}

		stats, err := rc.RenderStats(ctx, fb)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Warn("render cancelled", "frame", i)
			}
			return fmt.Errorf("render frame %d: %w", i, err)
		}

		out := framePath(cfg.Output, i, frames)
		depth := framePath(cfg.Depth, i, frames)
		if err := saveImage(fb, out); err != nil {
			return err
		}
		if err := fb.SaveDepthBMP(depth); err != nil {
			return err
		}
		if cfg.WebP != "" {
			if err := fb.SaveWebP(framePath(cfg.WebP, i, frames)); err != nil {
				return err
			}
		}

		logger.Info("frame done",
			"frame", i,
			"out", out,
			"depth", depth,
			"hits", stats.Hits,
			"pixels", stats.Pixels,
			"took", stats.Duration.Round(time.Millisecond),
		)
	}

	if frames > 1 {
		logger.Info("all frames done", "frames", frames, "took", time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// progressLogger logs roughly every tenth of the rows at debug level.
func progressLogger(logger *log.Logger) func(done, total int) {
	return func(done, total int) {
		step := max(1, total/10)
		if done%step == 0 || done == total {
			logger.Debug("rendering", "rows", done, "of", total)
		}
	}
}

// saveImage picks the encoder from the file extension. Anything that is
// not .png or .webp is written as BMP.
func saveImage(fb *render.Framebuffer, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return fb.SavePNG(path)
	case ".webp":
		return fb.SaveWebP(path)
	default:
		return fb.SaveBMP(path)
	}
}

// framePath numbers path for multi-frame renders: out.bmp becomes
// out_0003.bmp for frame 3.
func framePath(path string, frame, frames int) string {
	if frames <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(path, ext), frame, ext)
}
