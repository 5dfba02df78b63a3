package arena

import "image/color"

// Palette is the colour scheme shared by every renderer.
var (
	ColorBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ColorFilled     = color.RGBA{R: 40, G: 70, B: 150, A: 255}
	ColorWall       = color.RGBA{R: 40, G: 200, B: 70, A: 255}
	ColorBall       = color.RGBA{R: 230, G: 50, B: 50, A: 255}
	ColorPreview    = color.RGBA{R: 200, G: 200, B: 200, A: 120}
	ColorGridLine   = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	ColorVisited    = color.RGBA{R: 80, G: 80, B: 20, A: 90}
)

// RayColor is the colour tag of a ray: red for horizontal, blue for vertical.
func RayColor(a Axis) color.RGBA {
	if a == Horizontal {
		return color.RGBA{R: 255, G: 40, B: 40, A: 255}
	}
	return color.RGBA{R: 60, G: 110, B: 255, A: 255}
}

// RaySegment is one present ray as seen by a renderer.
type RaySegment struct {
	Axis   Axis
	From   Point
	To     Point
	Bounds Rect
	State  RayState
}

// Scene is a deep copy of everything a renderer needs. Renderers never touch
// the Sim directly.
type Scene struct {
	Width         int
	Height        int
	SectionSize   int
	Cols          int
	Rows          int
	BallRadius    int
	LineThickness int

	Cells   []CellState // row-major, Cols*Rows
	Visited []bool      // row-major, Cols*Rows
	Walls   []Rect
	Balls   []Point
	Rays    []RaySegment
	Gesture Gesture

	Tick           int
	Outcome        Outcome
	FilledFraction float64
}

// Scene snapshots the current state.
func (s *Sim) Scene() Scene {
	cells, visited := s.grid.snapshot()
	sc := Scene{
		Width:          s.cfg.Width,
		Height:         s.cfg.Height,
		SectionSize:    s.cfg.SectionSize,
		Cols:           s.grid.Cols,
		Rows:           s.grid.Rows,
		BallRadius:     s.cfg.BallRadius,
		LineThickness:  s.cfg.LineThickness,
		Cells:          cells,
		Visited:        visited,
		Walls:          make([]Rect, len(s.walls)),
		Balls:          make([]Point, len(s.balls)),
		Gesture:        s.gesture,
		Tick:           s.tick,
		Outcome:        s.outcome,
		FilledFraction: s.grid.FilledFraction(),
	}
	for i, w := range s.walls {
		sc.Walls[i] = w.Rect
	}
	for i, b := range s.balls {
		sc.Balls[i] = Point{X: b.X, Y: b.Y}
	}
	if d := s.divider; d.Active() {
		for a := Axis(0); a < axisCount; a++ {
			if !d.Present(a) {
				continue
			}
			sc.Rays = append(sc.Rays, RaySegment{
				Axis:   a,
				From:   d.Origin,
				To:     d.Tip(a),
				Bounds: d.Bounds(a, s.cfg.LineThickness),
				State:  d.Rays[a].State,
			})
		}
	}
	return sc
}

// Cell returns the state of section (col, row) in the snapshot.
func (sc Scene) Cell(col, row int) CellState {
	if col < 0 || row < 0 || col >= sc.Cols || row >= sc.Rows {
		return CellEmpty
	}
	return sc.Cells[row*sc.Cols+col]
}

// WasVisited reports whether the last flood fill reached (col, row).
func (sc Scene) WasVisited(col, row int) bool {
	if col < 0 || row < 0 || col >= sc.Cols || row >= sc.Rows {
		return false
	}
	return sc.Visited[row*sc.Cols+col]
}
