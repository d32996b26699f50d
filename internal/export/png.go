package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/san-kum/neomatrix/internal/rgb"
)

// FrameImage returns the frame as an image with one pixel per LED.
func FrameImage(grid [][]rgb.Color) *image.RGBA {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y, row := range grid {
		for x, c := range row {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return img
}

// FrameToPNG writes the frame scaled up by scale with hard pixel edges.
func FrameToPNG(w io.Writer, grid [][]rgb.Color, scale int) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return fmt.Errorf("export: empty frame")
	}
	if scale < 1 {
		return fmt.Errorf("export: scale must be positive, got %d", scale)
	}
	src := FrameImage(grid)
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return png.Encode(w, dst)
}
