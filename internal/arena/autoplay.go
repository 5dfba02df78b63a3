package arena

import "math/rand"

// autoplayAttempts is how many random points the bot samples per decision.
const autoplayAttempts = 24

// Autoplayer is a simple bot for headless runs: whenever no divider is active
// it clicks a random open point away from every ball.
type Autoplayer struct {
	rng      *rand.Rand
	cooldown int // ticks to wait after a divider ends
	nextTick int
}

// NewAutoplayer returns a deterministic bot for the given seed.
func NewAutoplayer(seed int64, cooldown int) *Autoplayer {
	return &Autoplayer{
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- game bot
		cooldown: cooldown,
	}
}

// Act presses once if the bot is ready and finds a usable point. It reports
// whether a divider was started.
func (ap *Autoplayer) Act(s *Sim) bool {
	if s.Outcome() != OutcomePlaying || s.divider.Active() {
		return false
	}
	if s.Tick() < ap.nextTick {
		return false
	}
	p, ok := ap.pick(s)
	if !ok {
		return false
	}
	s.PointerDown(p.X, p.Y, ButtonPrimary)
	s.PointerUp(p.X, p.Y, ButtonPrimary)
	ap.nextTick = s.Tick() + ap.cooldown
	return s.divider.Active()
}

// pick samples open points and keeps the first one with clearance from every
// ball and wall.
func (ap *Autoplayer) pick(s *Sim) (Point, bool) {
	cfg := s.cfg
	clearance := cfg.BallRadius * 3
	for i := 0; i < autoplayAttempts; i++ {
		p := Point{X: ap.rng.Intn(cfg.Width), Y: ap.rng.Intn(cfg.Height)}
		if s.insideWall(p.X, p.Y) || s.grid.FilledAt(p.X, p.Y) {
			continue
		}
		probe := Rect{X: p.X - clearance, Y: p.Y - clearance, W: clearance * 2, H: clearance * 2}
		open := true
		for _, b := range s.balls {
			if probe.Intersects(b.Bounds(cfg.BallRadius)) {
				open = false
				break
			}
		}
		if open {
			return p, true
		}
	}
	return Point{}, false
}
