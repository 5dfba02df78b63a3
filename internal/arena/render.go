package arena

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// ballSegments is the polygon resolution used to rasterize balls.
const ballSegments = 32

// RenderImage rasterizes a scene into a new RGBA image of the arena size.
// The output depends only on the scene.
func RenderImage(sc Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, sc.Width, sc.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(ColorBackground), image.Point{}, draw.Src)

	for row := 0; row < sc.Rows; row++ {
		for col := 0; col < sc.Cols; col++ {
			if sc.Cell(col, row) == CellFilled {
				fillRect(img, Rect{X: col * sc.SectionSize, Y: row * sc.SectionSize, W: sc.SectionSize, H: sc.SectionSize}, ColorFilled)
			}
		}
	}
	for _, w := range sc.Walls {
		fillRect(img, w, ColorWall)
	}

	z := vector.NewRasterizer(sc.Width, sc.Height)
	for _, b := range sc.Balls {
		z.Reset(sc.Width, sc.Height)
		circlePath(z, float32(b.X), float32(b.Y), float32(sc.BallRadius))
		z.Draw(img, img.Bounds(), image.NewUniform(ColorBall), image.Point{})
	}

	for _, r := range sc.Rays {
		fillRect(img, r.Bounds, RayColor(r.Axis))
	}
	return img
}

func fillRect(img *image.RGBA, r Rect, c color.Color) {
	dst := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Intersect(img.Bounds())
	if dst.Empty() {
		return
	}
	draw.Draw(img, dst, image.NewUniform(c), image.Point{}, draw.Over)
}

func circlePath(z *vector.Rasterizer, cx, cy, r float32) {
	for i := 0; i < ballSegments; i++ {
		theta := 2 * math.Pi * float64(i) / ballSegments
		x := cx + r*float32(math.Cos(theta))
		y := cy + r*float32(math.Sin(theta))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}
