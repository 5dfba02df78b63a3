package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/jezzball/internal/arena"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Subject string // "H", "V", "B0" or "--"
	Kind    string // category/key, e.g. "ray/popped"
	Message string
}

// EventFeed is a ring buffer mirroring the interesting part of a SimLog for
// the side panel. Per-tick ball chatter is skipped.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
	seen    int // SimLog entries already mirrored
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, dropping the oldest when full.
func (f *EventFeed) Add(e FeedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Sync mirrors every SimLog entry recorded since the last call and returns
// the mirrored ones so the caller can react to them (sounds, status line).
func (f *EventFeed) Sync(l *arena.SimLog) []arena.SimLogEntry {
	fresh := l.Since(f.seen)
	f.seen = l.Len()
	var out []arena.SimLogEntry
	for _, e := range fresh {
		if e.Category == "ball" {
			continue
		}
		f.Add(FeedEntry{
			Tick:    e.Tick,
			Subject: e.Subject,
			Kind:    e.Category + "/" + e.Key,
			Message: e.Value,
		})
		out = append(out, e)
	}
	return out
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// feedDotColor tags each line by what it is about.
func feedDotColor(e FeedEntry) color.RGBA {
	switch e.Subject {
	case "H":
		return arena.RayColor(arena.Horizontal)
	case "V":
		return arena.RayColor(arena.Vertical)
	}
	switch e.Kind {
	case "grid/filled":
		return arena.ColorFilled
	case "round/won":
		return color.RGBA{R: 240, G: 220, B: 60, A: 255}
	case "input/press_ignored":
		return color.RGBA{R: 120, G: 120, B: 120, A: 255}
	}
	return arena.ColorWall
}

// Draw renders the feed panel on the right side of the screen.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 10, G: 10, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 50, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 20, G: 20, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := f.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / feedLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 30, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, feedDotColor(e), false)
		line := fmt.Sprintf("%5d %-2s %s %s", e.Tick, e.Subject, e.Kind, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-2)
		y += feedLineHeight
	}
}
