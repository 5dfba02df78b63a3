package arena

import "fmt"

// Outcome is the state of the round as a whole.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWon             // filled fraction reached Config.WinFraction
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "won"
	default:
		return "unknown"
	}
}

// PointerButton identifies the button of a pointer event.
type PointerButton int

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
	ButtonMiddle
)

// Gesture is the transient press-drag-release state. Current is only used to
// draw a preview; it never affects ray growth.
type Gesture struct {
	Active  bool
	Start   Point
	Current Point
}

// Sim owns every piece of mutable round state. It is not safe for concurrent
// use: one goroutine calls the pointer methods and Step, and renderers read
// Scene values.
type Sim struct {
	cfg     Config
	balls   []Ball
	walls   []Wall
	divider *Divider
	gesture Gesture
	grid    *SectionGrid
	log     *SimLog
	bounce  BounceStrategy

	tick    int
	outcome Outcome
	wonTick int
}

// NewSim validates cfg and starts a round.
func NewSim(cfg Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Balls = append([]BallSpec(nil), cfg.Balls...)
	s := &Sim{
		cfg:    cfg,
		grid:   newArenaGrid(cfg),
		log:    NewSimLog(false),
		bounce: BounceBothAxes,
	}
	s.reset()
	return s, nil
}

// SetLog replaces the event log. A nil log is ignored.
func (s *Sim) SetLog(l *SimLog) {
	if l != nil {
		s.log = l
	}
}

// Reset restores the initial balls and clears walls, rays and sections.
func (s *Sim) Reset() {
	s.log.Add(s.tick, "--", "round", "reset", fmt.Sprintf("after %d ticks", s.tick), float64(s.tick))
	s.reset()
}

func (s *Sim) reset() {
	s.balls = make([]Ball, len(s.cfg.Balls))
	for i, b := range s.cfg.Balls {
		s.balls[i] = Ball{X: b.X, Y: b.Y, DX: b.DX, DY: b.DY}
	}
	s.walls = nil
	s.divider = nil
	s.gesture = Gesture{}
	s.grid.Clear()
	s.tick = 0
	s.outcome = OutcomePlaying
	s.wonTick = 0
}

func (s *Sim) Config() Config { return s.cfg }
func (s *Sim) Tick() int { return s.tick }
func (s *Sim) Outcome() Outcome { return s.outcome }
func (s *Sim) WonTick() int { return s.wonTick }
func (s *Sim) Log() *SimLog { return s.log }
func (s *Sim) Gesture() Gesture { return s.gesture }
func (s *Sim) Grid() *SectionGrid { return s.grid }
func (s *Sim) Balls() []Ball { return append([]Ball(nil), s.balls...) }
func (s *Sim) Walls() []Wall { return append([]Wall(nil), s.walls...) }

// Divider returns a copy of the active divider, or nil when no ray is present.
func (s *Sim) Divider() *Divider {
	if !s.divider.Active() {
		return nil
	}
	d := *s.divider
	return &d
}

// inArena reports whether the pixel lies inside the playfield.
func (s *Sim) inArena(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.cfg.Width && y < s.cfg.Height
}

// insideWall reports whether the pixel lies inside any wall.
func (s *Sim) insideWall(x, y int) bool {
	for _, w := range s.walls {
		if w.Contains(x, y) {
			return true
		}
	}
	return false
}

// PointerDown starts a gesture and spawns a divider at (x, y). Non-primary
// buttons and presses outside the open playfield are ignored. A divider that
// still has rays is discarded without building anything.
func (s *Sim) PointerDown(x, y int, btn PointerButton) {
	reason := ""
	switch {
	case btn != ButtonPrimary:
		reason = "button"
	case s.outcome != OutcomePlaying:
		reason = "round_over"
	case !s.inArena(x, y):
		reason = "outside"
	case s.insideWall(x, y):
		reason = "wall"
	case s.grid.FilledAt(x, y):
		reason = "filled"
	}
	if reason != "" {
		s.log.Add(s.tick, "--", "input", "press_ignored", fmt.Sprintf("%s at (%d,%d)", reason, x, y), 0)
		return
	}

	if s.divider.Active() {
		s.log.Add(s.tick, "--", "divider", "abandoned",
			fmt.Sprintf("at (%d,%d)", s.divider.Origin.X, s.divider.Origin.Y), 0)
	}
	s.divider = NewDivider(x, y)
	s.gesture = Gesture{Active: true, Start: Point{X: x, Y: y}, Current: Point{X: x, Y: y}}
	s.log.Add(s.tick, "--", "divider", "start", fmt.Sprintf("at (%d,%d)", x, y), 0)
}

// PointerDrag records the live pointer position of an active gesture.
func (s *Sim) PointerDrag(x, y int) {
	if !s.gesture.Active {
		return
	}
	s.gesture.Current = Point{X: x, Y: y}
}

// PointerUp ends the gesture. The rays keep growing on their own.
func (s *Sim) PointerUp(x, y int, btn PointerButton) {
	if !s.gesture.Active || btn != ButtonPrimary {
		return
	}
	s.gesture.Active = false
	s.gesture.Current = Point{X: x, Y: y}
}

// Step advances the round by one tick: ray growth, ball motion and
// collisions, wall materialization and region fill. It does nothing once the
// round is won.
func (s *Sim) Step() {
	if s.outcome != OutcomePlaying {
		return
	}
	s.tick++

	filled := s.grid.FilledRects()
	s.growDivider(filled)
	s.moveBalls(filled)
	if s.cfg.WallMode == WallsMaterialize {
		s.materialize()
	}
	if !s.divider.Active() {
		s.divider = nil
	}
}

// Run advances n ticks.
func (s *Sim) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

func (s *Sim) growDivider(filled []Rect) {
	d := s.divider
	if !d.Active() {
		return
	}
	obstacles := make([]Rect, 0, len(s.walls)+len(filled))
	for _, w := range s.walls {
		obstacles = append(obstacles, w.Rect)
	}
	obstacles = append(obstacles, filled...)

	for a := Axis(0); a < axisCount; a++ {
		before, after := d.grow(a, s.cfg, s.balls, obstacles)
		if before == after {
			continue
		}
		tip := d.Tip(a)
		switch after {
		case RayBlocked:
			s.log.Add(s.tick, a.subject(), "ray", "blocked",
				fmt.Sprintf("at (%d,%d)", tip.X, tip.Y), float64(d.Rays[a].Length))
		case RayFrozen:
			s.log.Add(s.tick, a.subject(), "ray", "frozen",
				fmt.Sprintf("at (%d,%d)", tip.X, tip.Y), float64(d.Rays[a].Length))
		}
	}
}

func (s *Sim) moveBalls(filled []Rect) {
	r := s.cfg.BallRadius
	for i := range s.balls {
		b := &s.balls[i]
		b.X += b.DX
		b.Y += b.DY
		box := b.Bounds(r)
		label := fmt.Sprintf("B%d", i)

		if d := s.divider; d != nil {
			for a := Axis(0); a < axisCount; a++ {
				if d.Present(a) && d.Bounds(a, s.cfg.LineThickness).Intersects(box) {
					s.log.Add(s.tick, a.subject(), "ray", "popped",
						fmt.Sprintf("by %s at length %d", label, d.Rays[a].Length), float64(d.Rays[a].Length))
					d.remove(a)
				}
			}
		}

		if s.touchesObstacle(box, filled) {
			s.bounce(b)
			s.log.AddVerbose(s.tick, label, "ball", "bounce",
				fmt.Sprintf("v=(%d,%d)", b.DX, b.DY), 0)
		}

		s.reflectEdges(b)
		s.log.AddVerbose(s.tick, label, "ball", "position",
			fmt.Sprintf("(%d,%d)", b.X, b.Y), 0)
	}
}

func (s *Sim) touchesObstacle(box Rect, filled []Rect) bool {
	for _, w := range s.walls {
		if w.Intersects(box) {
			return true
		}
	}
	for _, f := range filled {
		if f.Intersects(box) {
			return true
		}
	}
	return false
}

// reflectEdges points the velocity back into the arena when the ball box
// touches an edge, then clamps the centre so the box stays inside.
func (s *Sim) reflectEdges(b *Ball) {
	r := s.cfg.BallRadius
	if b.X-r <= 0 {
		b.DX = abs(b.DX)
	} else if b.X+r >= s.cfg.Width {
		b.DX = -abs(b.DX)
	}
	if b.Y-r <= 0 {
		b.DY = abs(b.DY)
	} else if b.Y+r >= s.cfg.Height {
		b.DY = -abs(b.DY)
	}
	b.X = clamp(b.X, r, s.cfg.Width-r)
	b.Y = clamp(b.Y, r, s.cfg.Height-r)
}

// materialize turns every frozen ray into a wall and refills the grid.
func (s *Sim) materialize() {
	d := s.divider
	if d == nil {
		return
	}
	built := false
	for a := Axis(0); a < axisCount; a++ {
		if !d.Present(a) || d.Rays[a].State != RayFrozen {
			continue
		}
		bounds := d.Bounds(a, s.cfg.LineThickness)
		length := d.Rays[a].Length
		d.remove(a)
		if length == 0 {
			continue
		}
		s.walls = append(s.walls, Wall{Rect: bounds})
		s.log.Add(s.tick, a.subject(), "wall", "built", bounds.String(), float64(len(s.walls)))
		built = true
	}
	if built {
		s.refill()
	}
}

// refill recomputes filled sections and checks the win condition.
func (s *Sim) refill() {
	for _, p := range s.grid.Recompute(s.balls, s.walls) {
		s.log.Add(s.tick, "--", "grid", "filled", fmt.Sprintf("(%d,%d)", p.X, p.Y), 0)
	}
	frac := s.grid.FilledFraction()
	if frac >= s.cfg.WinFraction {
		s.outcome = OutcomeWon
		s.wonTick = s.tick
		s.log.Add(s.tick, "--", "round", "won", fmt.Sprintf("filled %.1f%%", frac*100), frac)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
