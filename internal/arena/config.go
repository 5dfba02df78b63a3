package arena

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// WallMode selects what happens to a ray once it has grown as far as it can.
type WallMode int

const (
	// WallsMaterialize turns a fully grown ray into a permanent wall and
	// recomputes the filled regions.
	WallsMaterialize WallMode = iota
	// WallsClassic leaves fully grown rays inert until a ball pops them or a
	// new press replaces them. No wall is ever built.
	WallsClassic
)

func (m WallMode) String() string {
	switch m {
	case WallsMaterialize:
		return "materialize"
	case WallsClassic:
		return "classic"
	default:
		return "unknown"
	}
}

// ParseWallMode accepts the names produced by WallMode.String.
func ParseWallMode(s string) (WallMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "materialize", "":
		return WallsMaterialize, nil
	case "classic":
		return WallsClassic, nil
	}
	return WallsMaterialize, errors.Errorf("unknown wall mode %q (want materialize or classic)", s)
}

// MarshalJSON writes the mode by name.
func (m WallMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON reads the mode by name.
func (m *WallMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "wall mode must be a string")
	}
	return m.UnmarshalText([]byte(s))
}

// MarshalText writes the mode by name for TOML.
func (m WallMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText reads the mode by name for TOML.
func (m *WallMode) UnmarshalText(text []byte) error {
	mode, err := ParseWallMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// BallSpec is the initial state of one ball.
type BallSpec struct {
	X  int `json:"x" toml:"x"`
	Y  int `json:"y" toml:"y"`
	DX int `json:"dx" toml:"dx"`
	DY int `json:"dy" toml:"dy"`
}

// Config holds every tunable of a round. It is copied into the Sim at
// construction and never mutated afterwards.
type Config struct {
	Width         int           `json:"width" toml:"width"`
	Height        int           `json:"height" toml:"height"`
	BallRadius    int           `json:"ball_radius" toml:"ball_radius"`
	BallSpeed     int           `json:"ball_speed" toml:"ball_speed"`
	SectionSize   int           `json:"section_size" toml:"section_size"`
	GrowthStep    int           `json:"growth_step" toml:"growth_step"`
	LineThickness int           `json:"line_thickness" toml:"line_thickness"`
	TickInterval  time.Duration `json:"tick_interval" toml:"tick_interval"`
	WinFraction   float64       `json:"win_fraction" toml:"win_fraction"`
	WallMode      WallMode      `json:"wall_mode" toml:"wall_mode"`
	Balls         []BallSpec    `json:"balls" toml:"balls"`
}

// DefaultConfig returns the stock 800x600 arena with two balls.
func DefaultConfig() Config {
	const speed = 2
	return Config{
		Width:         800,
		Height:        600,
		BallRadius:    10,
		BallSpeed:     speed,
		SectionSize:   100,
		GrowthStep:    5,
		LineThickness: 2,
		TickInterval:  10 * time.Millisecond,
		WinFraction:   0.75,
		WallMode:      WallsMaterialize,
		Balls: []BallSpec{
			{X: 100, Y: 100, DX: speed, DY: speed},
			{X: 200, Y: 150, DX: -speed, DY: speed},
		},
	}
}

// Cols is the number of whole sections across the arena.
func (c Config) Cols() int { return c.Width / c.SectionSize }

// Rows is the number of whole sections down the arena.
func (c Config) Rows() int { return c.Height / c.SectionSize }

// TicksPerSecond converts TickInterval into a tick rate, at least 1.
func (c Config) TicksPerSecond() int {
	if c.TickInterval <= 0 {
		return 1
	}
	tps := int(time.Second / c.TickInterval)
	if tps < 1 {
		return 1
	}
	return tps
}

// Validate rejects configurations the simulation cannot run.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("arena size must be positive, got %dx%d", c.Width, c.Height)
	case c.BallRadius <= 0:
		return errors.Errorf("ball radius must be positive, got %d", c.BallRadius)
	case c.BallSpeed <= 0:
		return errors.Errorf("ball speed must be positive, got %d", c.BallSpeed)
	case c.SectionSize <= 0:
		return errors.Errorf("section size must be positive, got %d", c.SectionSize)
	case c.SectionSize > c.Width || c.SectionSize > c.Height:
		return errors.Errorf("section size %d does not fit in a %dx%d arena", c.SectionSize, c.Width, c.Height)
	case c.GrowthStep <= 0:
		return errors.Errorf("growth step must be positive, got %d", c.GrowthStep)
	case c.LineThickness <= 0:
		return errors.Errorf("line thickness must be positive, got %d", c.LineThickness)
	case c.TickInterval <= 0:
		return errors.Errorf("tick interval must be positive, got %s", c.TickInterval)
	case c.WinFraction <= 0 || c.WinFraction > 1:
		return errors.Errorf("win fraction must be in (0,1], got %g", c.WinFraction)
	}
	r := c.BallRadius
	for i, b := range c.Balls {
		if b.X-r < 0 || b.X+r > c.Width || b.Y-r < 0 || b.Y+r > c.Height {
			return errors.Errorf("ball %d at (%d,%d) does not fit inside the arena", i, b.X, b.Y)
		}
		if b.DX == 0 && b.DY == 0 {
			return errors.Errorf("ball %d has zero velocity", i)
		}
	}
	return nil
}

// LoadConfig builds a Config from the defaults, an optional JSON or TOML file
// (picked by extension) and an optional dotenv file. Empty paths are skipped.
// Variables already present in the process environment win over the dotenv
// file.
func LoadConfig(path, envPath string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := decodeConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	env := map[string]string{}
	if envPath != "" {
		fileEnv, err := godotenv.Read(envPath)
		if err != nil {
			return cfg, errors.Wrapf(err, "could not read env file (%s)", envPath)
		}
		env = fileEnv
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decodeConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "could not read config (%s)", path)
	}
	unmarshal := json.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unmarshal = toml.Unmarshal
	}
	if err := unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "could not parse config (%s)", path)
	}

	// A file-supplied ball_speed applies to every ball, including the defaults.
	var speed struct {
		BallSpeed *int `json:"ball_speed" toml:"ball_speed"`
	}
	if err := unmarshal(data, &speed); err != nil {
		return errors.Wrapf(err, "could not parse config (%s)", path)
	}
	if speed.BallSpeed != nil {
		cfg.rescaleBalls()
	}
	return nil
}

const envPrefix = "JEZZBALL_"

// ApplyEnv overrides scalar fields from JEZZBALL_* variables, e.g.
// JEZZBALL_WIDTH=1024 or JEZZBALL_TICK_INTERVAL=16ms. Unknown keys are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	ints := map[string]*int{
		"WIDTH":          &c.Width,
		"HEIGHT":         &c.Height,
		"BALL_RADIUS":    &c.BallRadius,
		"BALL_SPEED":     &c.BallSpeed,
		"SECTION_SIZE":   &c.SectionSize,
		"GROWTH_STEP":    &c.GrowthStep,
		"LINE_THICKNESS": &c.LineThickness,
	}
	for name, dst := range ints {
		v, ok := env[envPrefix+name]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s%s", envPrefix, name)
		}
		*dst = n
	}
	if _, ok := env[envPrefix+"BALL_SPEED"]; ok {
		c.rescaleBalls()
	}
	if v, ok := env[envPrefix+"TICK_INTERVAL"]; ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%sTICK_INTERVAL", envPrefix)
		}
		c.TickInterval = d
	}
	if v, ok := env[envPrefix+"WIN_FRACTION"]; ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return errors.Wrapf(err, "%sWIN_FRACTION", envPrefix)
		}
		c.WinFraction = f
	}
	if v, ok := env[envPrefix+"WALL_MODE"]; ok {
		mode, err := ParseWallMode(v)
		if err != nil {
			return err
		}
		c.WallMode = mode
	}
	return nil
}

// rescaleBalls keeps each ball's direction and sets every moving axis to
// BallSpeed.
func (c *Config) rescaleBalls() {
	balls := make([]BallSpec, len(c.Balls))
	for i, b := range c.Balls {
		b.DX = sign(b.DX) * c.BallSpeed
		b.DY = sign(b.DY) * c.BallSpeed
		balls[i] = b
	}
	c.Balls = balls
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
