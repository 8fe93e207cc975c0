package main

import (
	"context"
	"fmt"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/raytrace/pkg/config"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [scene.json]",
		Short: "Render the scene into the terminal (Esc to quit)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			return preview(cmd.Context(), cfg)
		},
	}
}

// preview sizes the image to the terminal, two pixel rows per cell, and
// re-renders on resize. A sweeping light plays once through its path.
func preview(ctx context.Context, cfg *config.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resized := make(chan uv.WindowSizeEvent, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case resized <- ev:
				default:
				}
			case uv.KeyPressEvent:
				if ev.MatchString("escape", "q", "ctrl+c") {
					cancel()
					return
				}
			}
		}
	}()

	for {
		if err := previewScene(ctx, term, cfg, width, height); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case ev := <-resized:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
		}
	}
}

// previewScene renders every frame of cfg at the terminal size and draws
// each one as soon as it is done.
func previewScene(ctx context.Context, term *uv.Terminal, cfg *config.Config, width, height int) error {
	cfg.Width, cfg.Height = width, height*2
	job, err := cfg.Build()
	if err != nil {
		return err
	}
	rc := job.Context
	area := uv.Rect(0, 0, width, height)

	lights := cfg.LightPath()
	for i := range max(1, len(lights)) {
		if i > 0 {
			job.Reset()
		}
		if len(lights) > 0 {
			rc.Lights.Point.Position = lights[i]
		}

		if err := rc.Render(ctx, job.Framebuffer); err != nil {
			return err
		}

		job.Framebuffer.Draw(term, area)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}
	return nil
}
