package arena

import "fmt"

// TestSim is a headless round harness used by tests and the headless report.
// It wraps a Sim built from a default config adjusted by options.
type TestSim struct {
	*Sim
	SimLog *SimLog
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // edits the Config before the Sim exists
	simOptSetup                       // acts on the built Sim (walls, presses)
)

// SimOption is a builder step applied to a TestSim during construction.
type SimOption struct {
	kind  simOptionKind
	cfgFn func(*Config)
	simFn func(*TestSim)
}

// WithConfig replaces the whole base config.
func WithConfig(cfg Config) SimOption {
	return SimOption{kind: simOptConfig, cfgFn: func(c *Config) {
		*c = cfg
		c.Balls = append([]BallSpec(nil), cfg.Balls...)
	}}
}

// WithArenaSize sets the playfield dimensions.
func WithArenaSize(w, h int) SimOption {
	return SimOption{kind: simOptConfig, cfgFn: func(c *Config) {
		c.Width = w
		c.Height = h
	}}
}

// WithSectionSize sets the section edge length.
func WithSectionSize(n int) SimOption {
	return SimOption{kind: simOptConfig, cfgFn: func(c *Config) {
		c.SectionSize = n
	}}
}

// WithoutBalls removes the default balls.
func WithoutBalls() SimOption {
	return SimOption{kind: simOptConfig, cfgFn: func(c *Config) {
		c.Balls = nil
	}}
}

// WithBall adds a ball at (x, y) moving by (dx, dy) per tick.
func WithBall(x, y, dx, dy int) SimOption {
	return SimOption{kind: simOptConfig, cfgFn: func(c *Config) {
		c.Balls = append(c.Balls, BallSpec{X: x, Y: y, DX: dx, DY: dy})
	}}
}

// WithWallMode selects materialize or classic rays.
func WithWallMode(m WallMode) SimOption {
	return SimOption{kind: simOptConfig, cfgFn: func(c *Config) {
		c.WallMode = m
	}}
}

// WithWinFraction sets the filled fraction that wins the round.
func WithWinFraction(f float64) SimOption {
	return SimOption{kind: simOptConfig, cfgFn: func(c *Config) {
		c.WinFraction = f
	}}
}

// WithVerbose enables per-tick ball logging.
func WithVerbose(v bool) SimOption {
	return SimOption{kind: simOptSetup, simFn: func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
		ts.SetLog(ts.SimLog)
	}}
}

// WithWall places a finished wall and refills the grid.
func WithWall(x, y, w, h int) SimOption {
	return SimOption{kind: simOptSetup, simFn: func(ts *TestSim) {
		ts.addWall(Rect{X: x, Y: y, W: w, H: h})
	}}
}

// NewTestSim builds a TestSim in two passes: config options, then setup
// options against the built Sim. It panics on an invalid config.
func NewTestSim(opts ...SimOption) *TestSim {
	cfg := DefaultConfig()
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.cfgFn(&cfg)
		}
	}
	s, err := NewSim(cfg)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts := &TestSim{Sim: s, SimLog: s.Log()}
	for _, o := range opts {
		if o.kind == simOptSetup {
			o.simFn(ts)
		}
	}
	return ts
}

// addWall appends a finished wall and refills the grid.
func (s *Sim) addWall(r Rect) {
	s.walls = append(s.walls, Wall{Rect: r})
	s.log.Add(s.tick, "--", "wall", "built", r.String(), float64(len(s.walls)))
	s.refill()
}

// Press is a primary click: pointer down and straight back up.
func (ts *TestSim) Press(x, y int) {
	ts.PointerDown(x, y, ButtonPrimary)
	ts.PointerUp(x, y, ButtonPrimary)
}

// RunTicks advances the round n ticks.
func (ts *TestSim) RunTicks(n int) {
	ts.Run(n)
}

// RunUntil advances up to maxTicks, stopping early if predicate returns
// true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.Tick()
		}
	}
	return -1
}

// Ball returns ball i by value.
func (ts *TestSim) Ball(i int) Ball {
	return ts.balls[i]
}

// SimSnapshot is a lightweight state summary.
type SimSnapshot struct {
	Tick    int
	Balls   []Ball
	Walls   int
	Filled  int
	Outcome Outcome
}

// Snapshot returns the current state of the round.
func (ts *TestSim) Snapshot() SimSnapshot {
	return SimSnapshot{
		Tick:    ts.Tick(),
		Balls:   ts.Balls(),
		Walls:   len(ts.walls),
		Filled:  ts.Grid().FilledCount(),
		Outcome: ts.Outcome(),
	}
}
