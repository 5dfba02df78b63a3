// Package term is a terminal frontend for the arena built on tcell. Each
// terminal cell stands for a block of arena pixels.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/jezzball/internal/arena"
)

// renderInterval is the redraw period, independent of the tick rate.
const renderInterval = 33 * time.Millisecond

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleBall    = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleWall    = styleDefault.Foreground(tcell.ColorLime)
	styleFilled  = styleDefault.Foreground(tcell.ColorNavy).Background(tcell.ColorNavy)
	styleRayH    = styleDefault.Foreground(tcell.ColorRed)
	styleRayV    = styleDefault.Foreground(tcell.ColorBlue)
	styleHeader  = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleStatus  = styleDefault.Foreground(tcell.ColorGray)
	styleWon     = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// Frontend drives a Sim from a tcell screen.
type Frontend struct {
	screen tcell.Screen
	sim    *arena.Sim

	scaleX int // arena pixels per terminal column
	scaleY int // arena pixels per terminal row

	paused      bool
	prevButtons tcell.ButtonMask
	status      string
}

// New binds a frontend to an initialised screen.
func New(screen tcell.Screen, sim *arena.Sim) *Frontend {
	f := &Frontend{screen: screen, sim: sim}
	f.resize()
	return f
}

// resize picks a scale so the whole arena fits below the header and above
// the status line.
func (f *Frontend) resize() {
	w, h := f.screen.Size()
	cfg := f.sim.Config()
	f.scaleX = ceilDiv(cfg.Width, max(w, 1))
	f.scaleY = ceilDiv(cfg.Height, max(h-2, 1))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// toArena maps a terminal cell to the arena pixel at its centre.
func (f *Frontend) toArena(col, row int) (int, int) {
	return col*f.scaleX + f.scaleX/2, (row-1)*f.scaleY + f.scaleY/2
}

// Run polls the screen on its own goroutine and serialises input, ticks and
// redraws on the calling one. It returns when the user quits or ctx ends.
func (f *Frontend) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	simTicker := time.NewTicker(f.sim.Config().TickInterval)
	defer simTicker.Stop()
	renderTicker := time.NewTicker(renderInterval)
	defer renderTicker.Stop()

	f.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if f.HandleEvent(ev) {
				return nil
			}
		case <-simTicker.C:
			if !f.paused {
				f.sim.Step()
			}
		case <-renderTicker.C:
			f.Draw()
		}
	}
}

// HandleEvent applies one tcell event and reports whether the user quit.
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.resize()
		f.screen.Sync()
	case *tcell.EventKey:
		return f.handleKey(ev)
	case *tcell.EventMouse:
		f.handleMouse(ev)
	}
	return false
}

func (f *Frontend) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case 'p', 'P':
		f.paused = !f.paused
	case 'n', 'N':
		if f.paused {
			f.sim.Step()
		}
	case 'r', 'R':
		f.sim.Reset()
		f.status = "round reset"
	}
	return false
}

// handleMouse turns tcell's button-state events into press, drag and
// release edges.
func (f *Frontend) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := f.toArena(col, row)
	btns := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	pressed := btns &^ f.prevButtons
	released := f.prevButtons &^ btns
	f.prevButtons = btns

	switch {
	case pressed&tcell.Button1 != 0:
		f.sim.PointerDown(x, y, arena.ButtonPrimary)
	case pressed&tcell.Button2 != 0:
		f.sim.PointerDown(x, y, arena.ButtonSecondary)
	case pressed&tcell.Button3 != 0:
		f.sim.PointerDown(x, y, arena.ButtonMiddle)
	}
	if btns&tcell.Button1 != 0 && pressed&tcell.Button1 == 0 {
		f.sim.PointerDrag(x, y)
	}
	if released&tcell.Button1 != 0 {
		f.sim.PointerUp(x, y, arena.ButtonPrimary)
	}
}

// Draw renders the current scene and shows it.
func (f *Frontend) Draw() {
	sc := f.sim.Scene()
	f.screen.Clear()

	header := fmt.Sprintf("JEZZBALL  T=%d  filled %.1f%%  walls %d", sc.Tick, sc.FilledFraction*100, len(sc.Walls))
	if f.paused {
		header += "  [PAUSED]"
	}
	drawText(f.screen, 0, 0, header, styleHeader)

	cols := ceilDiv(sc.Width, f.scaleX)
	rows := ceilDiv(sc.Height, f.scaleY)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, st := f.cellGlyph(sc, arena.Rect{X: col * f.scaleX, Y: row * f.scaleY, W: f.scaleX, H: f.scaleY})
			f.screen.SetContent(col, row+1, r, nil, st)
		}
	}

	_, h := f.screen.Size()
	status := "drag=divider  p=pause n=step r=reset q=quit"
	if f.status != "" {
		status = f.status + "  |  " + status
	}
	drawText(f.screen, 0, h-1, status, styleStatus)
	if sc.Outcome == arena.OutcomeWon {
		drawText(f.screen, 0, h-1, fmt.Sprintf(" CLEARED at T=%d  r=new round ", f.sim.WonTick()), styleWon)
	}
	f.screen.Show()
}

// cellGlyph picks what one terminal cell shows for the pixel block px. Balls
// win over rays, rays over walls, walls over filled sections.
func (f *Frontend) cellGlyph(sc arena.Scene, px arena.Rect) (rune, tcell.Style) {
	for _, b := range sc.Balls {
		if px.Contains(b.X, b.Y) {
			return 'O', styleBall
		}
	}
	for _, r := range sc.Rays {
		if r.Bounds.Intersects(px) {
			if r.Axis == arena.Horizontal {
				return tcell.RuneHLine, styleRayH
			}
			return tcell.RuneVLine, styleRayV
		}
	}
	for _, w := range sc.Walls {
		if w.Intersects(px) {
			return tcell.RuneBlock, styleWall
		}
	}
	cx, cy := px.X+px.W/2, px.Y+px.H/2
	if sc.SectionSize > 0 && sc.Cell(cx/sc.SectionSize, cy/sc.SectionSize) == arena.CellFilled {
		return tcell.RuneCkBoard, styleFilled
	}
	return ' ', styleDefault
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
