package arena

import "fmt"

// Point is an integer pixel position inside the arena.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned pixel rectangle covering [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y int
	W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether the two rectangles share at least one pixel.
// Empty rectangles never intersect anything.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}

// Ball is a moving disc. The radius is shared by all balls and lives in Config.
type Ball struct {
	X, Y   int
	DX, DY int
}

// Bounds returns the ball's bounding box for a given radius.
func (b Ball) Bounds(radius int) Rect {
	return Rect{X: b.X - radius, Y: b.Y - radius, W: radius * 2, H: radius * 2}
}

// Wall is a permanent obstacle built from a completed ray.
type Wall struct {
	Rect
}

// BounceStrategy decides how a ball's velocity changes when it touches a wall
// or a filled section.
type BounceStrategy func(b *Ball)

// BounceBothAxes is the simplified bounce: both velocity components reverse
// regardless of which face was touched.
func BounceBothAxes(b *Ball) {
	b.DX = -b.DX
	b.DY = -b.DY
}
