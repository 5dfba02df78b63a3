package arena

// Axis is the growth direction of a ray.
type Axis int

const (
	Horizontal Axis = iota // grows rightward from the origin
	Vertical               // grows downward from the origin
	axisCount
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// subject is the short SimLog label for a ray.
func (a Axis) subject() string {
	if a == Horizontal {
		return "H"
	}
	return "V"
}

// RayState is the growth state of a present ray.
type RayState int

const (
	RayGrowing RayState = iota // extends by one step per tick
	RayFrozen                  // reached its limit; waits to become a wall
	RayBlocked                 // a ball touched it while growing; never grows again
)

func (s RayState) String() string {
	switch s {
	case RayGrowing:
		return "growing"
	case RayFrozen:
		return "frozen"
	case RayBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Ray is one arm of a divider. Its start is the divider origin; its tip is
// origin + Length along the ray's axis.
type Ray struct {
	Present bool
	Length  int
	State   RayState
}

// Divider is the pair of perpendicular rays spawned by one press. Both rays
// share Origin, so the endpoints are always derived from it.
type Divider struct {
	Origin Point
	Rays   [axisCount]Ray
}

// NewDivider returns a divider at (x, y) with both rays present and growing.
func NewDivider(x, y int) *Divider {
	d := &Divider{Origin: Point{X: x, Y: y}}
	for a := range d.Rays {
		d.Rays[a] = Ray{Present: true, State: RayGrowing}
	}
	return d
}

// Active reports whether any ray is still present.
func (d *Divider) Active() bool {
	if d == nil {
		return false
	}
	for _, r := range d.Rays {
		if r.Present {
			return true
		}
	}
	return false
}

// Present reports whether the ray on axis a exists.
func (d *Divider) Present(a Axis) bool {
	return d != nil && d.Rays[a].Present
}

// Tip returns the growing end of the ray on axis a.
func (d *Divider) Tip(a Axis) Point {
	p := d.Origin
	if a == Horizontal {
		p.X += d.Rays[a].Length
	} else {
		p.Y += d.Rays[a].Length
	}
	return p
}

// Bounds is the swept rectangle of the ray on axis a: from the origin to the
// tip, thickness pixels across. A ray always covers at least its origin pixel.
func (d *Divider) Bounds(a Axis, thickness int) Rect {
	n := max(d.Rays[a].Length, 1)
	if a == Horizontal {
		return Rect{X: d.Origin.X, Y: d.Origin.Y, W: n, H: thickness}
	}
	return Rect{X: d.Origin.X, Y: d.Origin.Y, W: thickness, H: n}
}

// remove drops the ray on axis a.
func (d *Divider) remove(a Axis) {
	d.Rays[a] = Ray{}
}

// touchedBy reports whether any ball box overlaps the ray's bounds.
func (d *Divider) touchedBy(a Axis, balls []Ball, radius, thickness int) bool {
	bounds := d.Bounds(a, thickness)
	for _, b := range balls {
		if bounds.Intersects(b.Bounds(radius)) {
			return true
		}
	}
	return false
}

// limit is the furthest length the ray on axis a may reach: the arena edge or
// the near face of the first obstacle across its path beyond the current tip.
func (d *Divider) limit(a Axis, cfg Config, obstacles []Rect) int {
	tip := d.Tip(a)
	var lane Rect
	var edge int
	if a == Horizontal {
		edge = cfg.Width
		lane = Rect{X: tip.X, Y: tip.Y, W: cfg.Width - tip.X, H: cfg.LineThickness}
	} else {
		edge = cfg.Height
		lane = Rect{X: tip.X, Y: tip.Y, W: cfg.LineThickness, H: cfg.Height - tip.Y}
	}
	for _, o := range obstacles {
		if !lane.Intersects(o) {
			continue
		}
		face := o.X
		if a == Vertical {
			face = o.Y
		}
		edge = min(edge, face)
	}
	origin := d.Origin.X
	if a == Vertical {
		origin = d.Origin.Y
	}
	return max(edge-origin, d.Rays[a].Length)
}

// grow advances the ray on axis a by one tick and returns its state before
// and after. Absent or non-growing rays are left alone.
func (d *Divider) grow(a Axis, cfg Config, balls []Ball, obstacles []Rect) (before, after RayState) {
	r := &d.Rays[a]
	before = r.State
	if !r.Present || r.State != RayGrowing {
		return before, r.State
	}
	if d.touchedBy(a, balls, cfg.BallRadius, cfg.LineThickness) {
		r.State = RayBlocked
		return before, r.State
	}
	lim := d.limit(a, cfg, obstacles)
	r.Length = min(r.Length+cfg.GrowthStep, lim)
	if r.Length >= lim {
		r.State = RayFrozen
	}
	return before, r.State
}
