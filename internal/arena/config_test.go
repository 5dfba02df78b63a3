package arena

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8, cfg.Cols())
	assert.Equal(t, 6, cfg.Rows())
	assert.Equal(t, 100, cfg.TicksPerSecond())
	assert.Equal(t, WallsMaterialize, cfg.WallMode)
	assert.Len(t, cfg.Balls, 2)
}

func TestConfig_ValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero width":        func(c *Config) { c.Width = 0 },
		"zero radius":       func(c *Config) { c.BallRadius = 0 },
		"zero speed":        func(c *Config) { c.BallSpeed = 0 },
		"section too large": func(c *Config) { c.SectionSize = 700 },
		"zero growth":       func(c *Config) { c.GrowthStep = 0 },
		"zero thickness":    func(c *Config) { c.LineThickness = 0 },
		"zero tick":         func(c *Config) { c.TickInterval = 0 },
		"win above one":     func(c *Config) { c.WinFraction = 1.5 },
		"win zero":          func(c *Config) { c.WinFraction = 0 },
		"ball off arena":    func(c *Config) { c.Balls = []BallSpec{{X: 5, Y: 100, DX: 1, DY: 1}} },
		"ball not moving":   func(c *Config) { c.Balls = []BallSpec{{X: 100, Y: 100}} },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}

	cfg := DefaultConfig()
	cfg.Balls = nil
	assert.NoError(t, cfg.Validate(), "a round without balls is valid")
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(map[string]string{
		"JEZZBALL_WIDTH":         "1000",
		"JEZZBALL_BALL_SPEED":    "3",
		"JEZZBALL_TICK_INTERVAL": "20ms",
		"JEZZBALL_WIN_FRACTION":  "0.5",
		"JEZZBALL_WALL_MODE":     "Classic",
		"OTHER_WIDTH":            "1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Width)
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 50, cfg.TicksPerSecond())
	assert.InDelta(t, 0.5, cfg.WinFraction, 1e-9)
	assert.Equal(t, WallsClassic, cfg.WallMode)
	assert.Equal(t, []BallSpec{{X: 100, Y: 100, DX: 3, DY: 3}, {X: 200, Y: 150, DX: -3, DY: 3}}, cfg.Balls)

	assert.Error(t, cfg.ApplyEnv(map[string]string{"JEZZBALL_HEIGHT": "tall"}))
	assert.Error(t, cfg.ApplyEnv(map[string]string{"JEZZBALL_WALL_MODE": "sideways"}))
	assert.Error(t, cfg.ApplyEnv(map[string]string{"JEZZBALL_TICK_INTERVAL": "soon"}))
}

func TestDefaultConfig_FreshBallSlice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Balls[0].DX = 7
	fresh := DefaultConfig()
	assert.Equal(t, 2, fresh.Balls[0].DX, "DefaultConfig must return a fresh ball slice")
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_JSONThenEnvFile(t *testing.T) {
	cfgPath := writeFile(t, "arena.json",
		`{"width":1000,"wall_mode":"classic","tick_interval":16000000,"balls":[{"x":50,"y":50,"dx":3,"dy":-3}]}`)
	envPath := writeFile(t, ".env", "JEZZBALL_HEIGHT=700\nJEZZBALL_BALL_SPEED=4\n")

	cfg, err := LoadConfig(cfgPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Width)
	assert.Equal(t, 700, cfg.Height)
	assert.Equal(t, WallsClassic, cfg.WallMode)
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, []BallSpec{{X: 50, Y: 50, DX: 4, DY: -4}}, cfg.Balls)
	assert.Equal(t, 5, cfg.GrowthStep, "fields absent from the file keep their defaults")
}

func TestLoadConfig_TOML(t *testing.T) {
	cfgPath := writeFile(t, "arena.toml", `
width = 900
wall_mode = "classic"
win_fraction = 0.6

[[balls]]
x = 60
y = 60
dx = 2
dy = -2
`)
	cfg, err := LoadConfig(cfgPath, "")
	require.NoError(t, err)

	assert.Equal(t, 900, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, WallsClassic, cfg.WallMode)
	assert.InDelta(t, 0.6, cfg.WinFraction, 1e-9)
	assert.Equal(t, []BallSpec{{X: 60, Y: 60, DX: 2, DY: -2}}, cfg.Balls)

	bad := writeFile(t, "bad.toml", `wall_mode = "sideways"`)
	_, err = LoadConfig(bad, "")
	assert.ErrorContains(t, err, "could not parse config")
}

func TestLoadConfig_FileBallSpeedRescalesBalls(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "fast.json", `{"ball_speed":4}`), "")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.BallSpeed)
	assert.Equal(t, []BallSpec{{X: 100, Y: 100, DX: 4, DY: 4}, {X: 200, Y: 150, DX: -4, DY: 4}}, cfg.Balls)

	cfg, err = LoadConfig(writeFile(t, "fast.toml", `
ball_speed = 3

[[balls]]
x = 60
y = 60
dx = 1
dy = -5
`), "")
	require.NoError(t, err)
	assert.Equal(t, []BallSpec{{X: 60, Y: 60, DX: 3, DY: -3}}, cfg.Balls)

	cfg, err = LoadConfig(writeFile(t, "plain.json", `{"balls":[{"x":50,"y":50,"dx":3,"dy":-3}]}`), "")
	require.NoError(t, err)
	assert.Equal(t, []BallSpec{{X: 50, Y: 50, DX: 3, DY: -3}}, cfg.Balls, "without ball_speed the file velocities stand")
}

func TestLoadConfig_ProcessEnvWins(t *testing.T) {
	envPath := writeFile(t, ".env", "JEZZBALL_HEIGHT=700\n")
	t.Setenv("JEZZBALL_HEIGHT", "650")

	cfg, err := LoadConfig("", envPath)
	require.NoError(t, err)
	assert.Equal(t, 650, cfg.Height)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.ErrorContains(t, err, "could not read config")

	bad := writeFile(t, "bad.json", `{"wall_mode":"diagonal"}`)
	_, err = LoadConfig(bad, "")
	assert.ErrorContains(t, err, "could not parse config")

	invalid := writeFile(t, "small.json", `{"width":50}`)
	_, err = LoadConfig(invalid, "")
	assert.ErrorContains(t, err, "section size")

	_, err = LoadConfig("", filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "could not read env file")
}

func TestWallMode_JSONRoundTripsByName(t *testing.T) {
	data, err := WallsClassic.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"classic"`, string(data))

	text, err := WallsClassic.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "classic", string(text))

	var m WallMode
	require.NoError(t, m.UnmarshalJSON([]byte(`"materialize"`)))
	assert.Equal(t, WallsMaterialize, m)
	assert.Error(t, m.UnmarshalJSON([]byte(`3`)))
}
