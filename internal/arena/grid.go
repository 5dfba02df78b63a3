package arena

// CellState is the fill state of one arena section.
type CellState uint8

const (
	CellEmpty  CellState = iota // still in play
	CellFilled                  // sealed off from every ball; out of play for good
)

func (c CellState) String() string {
	if c == CellFilled {
		return "filled"
	}
	return "empty"
}

// SectionGrid partitions the arena into Size x Size sections. Sections only
// ever go from empty to filled.
type SectionGrid struct {
	Cols int
	Rows int
	Size int

	cells   []CellState
	visited []bool // reached by the last flood fill
	blocked []bool // overlapped by a wall during the last flood fill

	// Pixel lattice for the flood fill, reused between calls.
	width  int
	height int
	mask   []bool
	queue  []int32
}

// NewSectionGrid returns a grid of empty sections. The flood fill covers
// exactly the sections; use newArenaGrid when the arena has a partial strip
// past the last whole section.
func NewSectionGrid(cols, rows, size int) *SectionGrid {
	n := cols * rows
	return &SectionGrid{
		Cols:    cols,
		Rows:    rows,
		Size:    size,
		cells:   make([]CellState, n),
		visited: make([]bool, n),
		blocked: make([]bool, n),
		width:   cols * size,
		height:  rows * size,
	}
}

// newArenaGrid sizes the flood lattice to the whole arena so balls in the
// strip past the last whole section still count.
func newArenaGrid(cfg Config) *SectionGrid {
	sg := NewSectionGrid(cfg.Cols(), cfg.Rows(), cfg.SectionSize)
	sg.width, sg.height = cfg.Width, cfg.Height
	return sg
}

func (sg *SectionGrid) inBounds(col, row int) bool {
	return col >= 0 && col < sg.Cols && row >= 0 && row < sg.Rows
}

// At returns the state of section (col, row). Out-of-range sections read as empty.
func (sg *SectionGrid) At(col, row int) CellState {
	if !sg.inBounds(col, row) {
		return CellEmpty
	}
	return sg.cells[row*sg.Cols+col]
}

// Visited reports whether the last flood fill reached (col, row).
func (sg *SectionGrid) Visited(col, row int) bool {
	return sg.inBounds(col, row) && sg.visited[row*sg.Cols+col]
}

// Blocked reports whether a wall overlapped (col, row) during the last flood fill.
func (sg *SectionGrid) Blocked(col, row int) bool {
	return sg.inBounds(col, row) && sg.blocked[row*sg.Cols+col]
}

// CellOf maps a pixel to its section. ok is false outside the grid.
func (sg *SectionGrid) CellOf(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/sg.Size, y/sg.Size
	return col, row, sg.inBounds(col, row)
}

// CellRect is the pixel rectangle covered by section (col, row).
func (sg *SectionGrid) CellRect(col, row int) Rect {
	return Rect{X: col * sg.Size, Y: row * sg.Size, W: sg.Size, H: sg.Size}
}

// FilledAt reports whether the pixel (x, y) lies in a filled section.
func (sg *SectionGrid) FilledAt(x, y int) bool {
	col, row, ok := sg.CellOf(x, y)
	return ok && sg.At(col, row) == CellFilled
}

// FilledCount is the number of filled sections.
func (sg *SectionGrid) FilledCount() int {
	n := 0
	for _, c := range sg.cells {
		if c == CellFilled {
			n++
		}
	}
	return n
}

// FilledFraction is FilledCount over the number of sections.
func (sg *SectionGrid) FilledFraction() float64 {
	if len(sg.cells) == 0 {
		return 0
	}
	return float64(sg.FilledCount()) / float64(len(sg.cells))
}

// FilledRects returns the pixel rectangle of every filled section.
func (sg *SectionGrid) FilledRects() []Rect {
	var out []Rect
	for row := 0; row < sg.Rows; row++ {
		for col := 0; col < sg.Cols; col++ {
			if sg.cells[row*sg.Cols+col] == CellFilled {
				out = append(out, sg.CellRect(col, row))
			}
		}
	}
	return out
}

// Clear empties every section and forgets the last flood fill.
func (sg *SectionGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i] = CellEmpty
		sg.visited[i] = false
		sg.blocked[i] = false
	}
}

// markBlocked flags every section a wall overlaps.
func (sg *SectionGrid) markBlocked(walls []Wall) {
	for i := range sg.blocked {
		sg.blocked[i] = false
	}
	for _, w := range walls {
		if w.Empty() {
			continue
		}
		c0 := max(0, w.X/sg.Size)
		r0 := max(0, w.Y/sg.Size)
		c1 := min(sg.Cols-1, (w.X+w.W-1)/sg.Size)
		r1 := min(sg.Rows-1, (w.Y+w.H-1)/sg.Size)
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				sg.blocked[row*sg.Cols+col] = true
			}
		}
	}
}

// Recompute runs a multi-source flood fill over arena pixels from every
// ball centre. Wall pixels and pixels of filled sections are impassable, so a
// gap beside a wall or a pocket inside a wall-touched section stays
// connected. A section becomes filled when it is empty, no wall overlaps it
// and the flood reached none of its pixels. It returns the newly filled
// sections as (col, row) points.
func (sg *SectionGrid) Recompute(balls []Ball, walls []Wall) []Point {
	sg.markBlocked(walls)
	for i := range sg.visited {
		sg.visited[i] = false
	}

	w, h := sg.width, sg.height
	if len(sg.mask) != w*h {
		sg.mask = make([]bool, w*h)
	}
	mask := sg.mask
	for i := range mask {
		mask[i] = false
	}
	closeRect := func(r Rect) {
		x0, y0 := max(r.X, 0), max(r.Y, 0)
		x1, y1 := min(r.X+r.W, w), min(r.Y+r.H, h)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				mask[y*w+x] = true
			}
		}
	}
	for _, wl := range walls {
		closeRect(wl.Rect)
	}
	for _, r := range sg.FilledRects() {
		closeRect(r)
	}

	queue := sg.queue[:0]
	reach := func(x, y int) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		i := y*w + x
		if mask[i] {
			return
		}
		mask[i] = true
		queue = append(queue, int32(i))
		if col, row, ok := sg.CellOf(x, y); ok {
			sg.visited[row*sg.Cols+col] = true
		}
	}

	for _, b := range balls {
		if b.X >= 0 && b.Y >= 0 && b.X < w && b.Y < h && !mask[b.Y*w+b.X] {
			reach(b.X, b.Y)
			continue
		}
		// Centre sits on a closed pixel: start from the open pixels right
		// around it instead.
		for y := b.Y - 1; y <= b.Y+1; y++ {
			for x := b.X - 1; x <= b.X+1; x++ {
				reach(x, y)
			}
		}
	}

	for head := 0; head < len(queue); head++ {
		i := int(queue[head])
		x, y := i%w, i/w
		reach(x+1, y)
		reach(x-1, y)
		reach(x, y+1)
		reach(x, y-1)
	}
	sg.queue = queue[:0]

	var filled []Point
	for i, c := range sg.cells {
		if c == CellEmpty && !sg.blocked[i] && !sg.visited[i] {
			sg.cells[i] = CellFilled
			filled = append(filled, Point{X: i % sg.Cols, Y: i / sg.Cols})
		}
	}
	return filled
}

// snapshot copies the cell and visited grids for a Scene.
func (sg *SectionGrid) snapshot() (cells []CellState, visited []bool) {
	cells = make([]CellState, len(sg.cells))
	copy(cells, sg.cells)
	visited = make([]bool, len(sg.visited))
	copy(visited, sg.visited)
	return cells, visited
}
