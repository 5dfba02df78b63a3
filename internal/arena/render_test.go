package arena

import (
	"bytes"
	"image/color"
	"testing"
)

func TestRenderImage_Palette(t *testing.T) {
	ts := NewTestSim(WithoutBalls(), WithBall(100, 100, 2, 2))
	ts.Press(400, 300)
	ts.RunTicks(80)

	img := RenderImage(ts.Scene())
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("image is %dx%d, want 800x600", b.Dx(), b.Dy())
	}

	b := ts.Ball(0)
	cases := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"ball centre", b.X, b.Y, ColorBall},
		{"vertical wall", 400, 350, ColorWall},
		{"horizontal wall", 700, 301, ColorWall},
		{"filled section", 650, 450, ColorFilled},
		{"open floor", 50, 550, ColorBackground},
	}
	for _, tc := range cases {
		if got := img.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("%s at (%d,%d) = %v, want %v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRenderImage_RaysUseAxisColours(t *testing.T) {
	ts := NewTestSim(WithoutBalls(), WithWallMode(WallsClassic))
	ts.Press(200, 200)
	ts.RunTicks(10)

	img := RenderImage(ts.Scene())
	if got := img.RGBAAt(240, 200); got != RayColor(Horizontal) {
		t.Errorf("horizontal ray pixel = %v", got)
	}
	if got := img.RGBAAt(201, 240); got != RayColor(Vertical) {
		t.Errorf("vertical ray pixel = %v", got)
	}
}

func TestRenderImage_Deterministic(t *testing.T) {
	ts := NewTestSim()
	ts.Press(500, 400)
	ts.RunTicks(25)
	sc := ts.Scene()

	a := RenderImage(sc)
	b := RenderImage(sc)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("rendering the same scene twice produced different pixels")
	}
}
