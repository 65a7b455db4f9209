package api

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"wordrush/internal/game"
)

const (
	gridCellSize = 64.0
	gridPadding  = 16.0
)

// RenderGridPNG draws a grid snapshot as a PNG for spectator pages and
// debugging. Inactive cells render as empty slots; letters are centered in
// their cells.
func RenderGridPNG(w io.Writer, snap game.GridSnapshot) error {
	width := int(gridPadding*2 + gridCellSize*float64(snap.Cols))
	height := int(gridPadding*2 + gridCellSize*float64(snap.Rows))

	dc := gg.NewContext(width, height)

	// Background
	dc.SetColor(color.RGBA{250, 250, 255, 255})
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			x := gridPadding + float64(col)*gridCellSize
			y := gridPadding + float64(row)*gridCellSize

			if !snap.Mask[row][col] {
				// Inactive slot: faint outline only
				dc.SetColor(color.RGBA{230, 230, 238, 255})
				dc.DrawRoundedRectangle(x+4, y+4, gridCellSize-8, gridCellSize-8, 8)
				dc.Stroke()
				continue
			}

			dc.SetColor(color.RGBA{255, 214, 90, 255})
			dc.DrawRoundedRectangle(x+4, y+4, gridCellSize-8, gridCellSize-8, 8)
			dc.Fill()

			letter := snap.Cells[row][col]
			if letter == "" {
				continue
			}
			dc.SetColor(color.RGBA{40, 40, 60, 255})
			dc.DrawStringAnchored(letter, x+gridCellSize/2, y+gridCellSize/2, 0.5, 0.5)
		}
	}

	return dc.EncodePNG(w)
}
