package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw renders the framebuffer into terminal cells using half blocks.
// Each terminal row covers two framebuffer rows, so the framebuffer height
// should be 2x the area height. Row 0 of the framebuffer is the bottom of
// the picture, so rows are read from the top of the grid downwards.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := fb.Height - 1 - (row-area.Min.Y)*2
		botY := topY - 1
		if topY < 0 {
			break
		}

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: fb.PixelAt(x, topY).ToRGBA(),
					Bg: cellColor(fb, x, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor returns nil below the last row so an odd height leaves the
// terminal background showing.
func cellColor(fb *Framebuffer, x, y int) color.Color {
	if y < 0 {
		return nil
	}
	return fb.PixelAt(x, y).ToRGBA()
}
