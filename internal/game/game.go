package game

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/jezzball/internal/arena"
)

// borderWidth is the pixel gap between the window edge and the arena.
const borderWidth = 24

// statusTicks is how long a status message stays on the HUD.
const statusTicks = 180

// speeds are the selectable simulation multipliers; 0 is paused.
var speeds = []float64{0, 0.5, 1, 2, 4}

// Game is the ebiten window frontend. It owns a Sim, feeds it pointer
// events and ticks, and draws Scene snapshots.
type Game struct {
	sim    *arena.Sim
	cfg    arena.Config
	feed   *EventFeed
	sounds *SoundBank

	width  int
	height int
	offX   int // pixel offset from window left to arena left
	offY   int // pixel offset from window top to arena top

	showVisited bool
	showHUD     bool
	prevKeys    map[ebiten.Key]bool

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	status      string
	statusUntil int // frame count at which status clears
	frames      int
}

// New builds a window frontend for cfg.
func New(cfg arena.Config) (*Game, error) {
	sim, err := arena.NewSim(cfg)
	if err != nil {
		return nil, err
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	g := &Game{
		sim:      sim,
		cfg:      sim.Config(),
		feed:     NewEventFeed(),
		sounds:   NewSoundBank(ctx),
		width:    borderWidth + cfg.Width + borderWidth + feedPanelWidth,
		height:   max(borderWidth+cfg.Height+borderWidth, 320),
		offX:     borderWidth,
		offY:     borderWidth,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		simSpeed: 1.0,
	}
	return g, nil
}

// WindowSize is the natural window size for the arena plus the side panel.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

func (g *Game) Update() error {
	g.frames++
	g.handleKeys()
	g.handlePointer()

	if g.simSpeed > 0 {
		g.tickAccum += g.simSpeed
		for g.tickAccum >= 1.0 {
			g.tickAccum -= 1.0
			g.sim.Step()
		}
	}

	g.sounds.React(g.feed.Sync(g.sim.Log()))
	if g.frames >= g.statusUntil {
		g.status = ""
	}
	return nil
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.frames + statusTicks
}

// justPressed is an edge-triggered key check against the previous frame.
func (g *Game) justPressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

// handleKeys processes toggles and speed controls.
func (g *Game) handleKeys() {
	cur := map[ebiten.Key]bool{}

	// P=pause/resume, ,=slower, .=faster.
	if g.justPressed(cur, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.justPressed(cur, ebiten.KeyComma) {
		g.simSpeed = slower(g.simSpeed)
	}
	if g.justPressed(cur, ebiten.KeyPeriod) {
		g.simSpeed = faster(g.simSpeed)
	}

	if g.justPressed(cur, ebiten.KeyR) {
		g.sim.Reset()
		g.tickAccum = 0
		g.setStatus("round reset")
	}
	if g.justPressed(cur, ebiten.KeyV) {
		g.showVisited = !g.showVisited
	}
	if g.justPressed(cur, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.justPressed(cur, ebiten.KeyM) {
		if g.sounds.Toggle() {
			g.setStatus("sound off")
		} else {
			g.setStatus("sound on")
		}
	}
	if g.justPressed(cur, ebiten.KeyC) {
		report := arena.Summarize(g.sim).Report()
		if err := clipboard.WriteAll(report); err != nil {
			g.setStatus("copy failed: " + err.Error())
		} else {
			g.setStatus("round report copied")
		}
	}

	g.prevKeys = cur
}

func slower(cur float64) float64 {
	for i, s := range speeds {
		if s >= cur && i > 0 {
			return speeds[i-1]
		}
	}
	return cur
}

func faster(cur float64) float64 {
	for i, s := range speeds {
		if s <= cur && i < len(speeds)-1 && speeds[i+1] > cur {
			return speeds[i+1]
		}
	}
	return cur
}

// handlePointer maps mouse events into arena coordinates.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := mx-g.offX, my-g.offY

	buttons := [...]struct {
		mb  ebiten.MouseButton
		btn arena.PointerButton
	}{
		{ebiten.MouseButtonLeft, arena.ButtonPrimary},
		{ebiten.MouseButtonRight, arena.ButtonSecondary},
		{ebiten.MouseButtonMiddle, arena.ButtonMiddle},
	}
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.mb) {
			g.sim.PointerDown(x, y, b.btn)
		}
	}
	if g.sim.Gesture().Active && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.sim.PointerDrag(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.sim.PointerUp(x, y, arena.ButtonPrimary)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 12, B: 16, A: 255})

	sc := g.sim.Scene()
	g.drawArena(screen, sc)

	ox := float32(g.offX)
	oy := float32(g.offY)
	vector.StrokeRect(screen, ox-1, oy-1, float32(sc.Width)+2, float32(sc.Height)+2, 2.0, color.RGBA{R: 70, G: 70, B: 110, A: 255}, false)

	g.feed.Draw(screen, g.offX+sc.Width+g.offX, g.height)

	if g.showHUD {
		g.drawHUD(screen, sc)
	}
	if sc.Outcome == arena.OutcomeWon {
		g.drawBanner(screen, sc, fmt.Sprintf("CLEARED %.0f%%  R=new round", sc.FilledFraction*100))
	} else if g.simSpeed == 0 {
		g.drawBanner(screen, sc, "PAUSED")
	}
}

func (g *Game) drawArena(screen *ebiten.Image, sc arena.Scene) {
	ox := float32(g.offX)
	oy := float32(g.offY)
	vector.FillRect(screen, ox, oy, float32(sc.Width), float32(sc.Height), arena.ColorBackground, false)

	size := float32(sc.SectionSize)
	for row := 0; row < sc.Rows; row++ {
		for col := 0; col < sc.Cols; col++ {
			x := ox + float32(col)*size
			y := oy + float32(row)*size
			switch {
			case sc.Cell(col, row) == arena.CellFilled:
				vector.FillRect(screen, x, y, size, size, arena.ColorFilled, false)
			case g.showVisited && sc.WasVisited(col, row):
				vector.FillRect(screen, x, y, size, size, arena.ColorVisited, false)
			}
		}
	}
	for col := 1; col < sc.Cols; col++ {
		x := ox + float32(col)*size
		vector.StrokeLine(screen, x, oy, x, oy+float32(sc.Height), 1, arena.ColorGridLine, false)
	}
	for row := 1; row < sc.Rows; row++ {
		y := oy + float32(row)*size
		vector.StrokeLine(screen, ox, y, ox+float32(sc.Width), y, 1, arena.ColorGridLine, false)
	}

	for _, w := range sc.Walls {
		vector.FillRect(screen, ox+float32(w.X), oy+float32(w.Y), float32(w.W), float32(w.H), arena.ColorWall, false)
	}

	if gs := sc.Gesture; gs.Active {
		g.drawPreview(screen, sc, gs)
	}
	for _, r := range sc.Rays {
		b := r.Bounds
		vector.FillRect(screen, ox+float32(b.X), oy+float32(b.Y), float32(b.W), float32(b.H), arena.RayColor(r.Axis), false)
	}

	for _, b := range sc.Balls {
		vector.FillCircle(screen, ox+float32(b.X), oy+float32(b.Y), float32(sc.BallRadius), arena.ColorBall, true)
	}
}

// drawPreview shows where the rays of the held press are heading and a
// marker under the live pointer.
func (g *Game) drawPreview(screen *ebiten.Image, sc arena.Scene, gs arena.Gesture) {
	ox := float32(g.offX)
	oy := float32(g.offY)
	sx, sy := ox+float32(gs.Start.X), oy+float32(gs.Start.Y)
	vector.StrokeLine(screen, sx, sy, ox+float32(sc.Width), sy, 1, arena.ColorPreview, false)
	vector.StrokeLine(screen, sx, sy, sx, oy+float32(sc.Height), 1, arena.ColorPreview, false)

	cx, cy := ox+float32(gs.Current.X), oy+float32(gs.Current.Y)
	vector.StrokeRect(screen, cx-4, cy-4, 8, 8, 1, arena.ColorPreview, false)
}

func speedLabel(s float64) string {
	switch s {
	case 0:
		return "PAUSED"
	case 1:
		return "1x"
	case 2:
		return "2x"
	case 4:
		return "4x"
	}
	return fmt.Sprintf("%.1fx", s)
}

func (g *Game) drawHUD(screen *ebiten.Image, sc arena.Scene) {
	lines := []string{
		fmt.Sprintf("T=%d  filled %.1f%% of %.0f%%  walls %d", sc.Tick, sc.FilledFraction*100, g.cfg.WinFraction*100, len(sc.Walls)),
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed  mode=%s", speedLabel(g.simSpeed), g.cfg.WallMode),
		"R=reset  V=visited  C=copy report  M=mute  H=hide",
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}

	const lineH = 14
	const padX, padY = 6, 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*7 + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(g.offX + 4)
	by := float32(g.offY+sc.Height) - boxH - 4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 6, B: 12, A: 200}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 70, G: 70, B: 120, A: 180}, false)
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, int(bx)+padX, int(by)+padY+(i+1)*lineH-3, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
}

func (g *Game) drawBanner(screen *ebiten.Image, sc arena.Scene, msg string) {
	w := len(msg)*7 + 24
	x := g.offX + (sc.Width-w)/2
	y := g.offY + sc.Height/2 - 16
	vector.FillRect(screen, float32(x), float32(y), float32(w), 32, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), 32, 1, color.RGBA{R: 240, G: 220, B: 60, A: 255}, false)
	text.Draw(screen, msg, basicfont.Face7x13, x+12, y+20, color.RGBA{R: 255, G: 255, B: 200, A: 255})
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
