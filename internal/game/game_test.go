package game

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/Garsondee/jezzball/internal/arena"
)

func TestSpeedSteps(t *testing.T) {
	if got := faster(1); got != 2 {
		t.Fatalf("faster(1) = %v", got)
	}
	if got := faster(4); got != 4 {
		t.Fatalf("faster(4) should stay at the top, got %v", got)
	}
	if got := slower(1); got != 0.5 {
		t.Fatalf("slower(1) = %v", got)
	}
	if got := slower(0); got != 0 {
		t.Fatalf("slower(0) should stay paused, got %v", got)
	}
	if got := faster(0); got != 0.5 {
		t.Fatalf("faster(0) = %v", got)
	}
	if speedLabel(0) != "PAUSED" || speedLabel(0.5) != "0.5x" || speedLabel(2) != "2x" {
		t.Fatal("unexpected speed labels")
	}
}

func TestEventFeed_SyncSkipsBallChatter(t *testing.T) {
	ts := arena.NewTestSim(arena.WithVerbose(true))
	f := NewEventFeed()

	ts.Press(400, 300)
	ts.RunTicks(2)
	got := f.Sync(ts.SimLog)
	if len(got) != 1 || got[0].Key != "start" {
		t.Fatalf("first sync = %+v, want only the divider start", got)
	}
	if again := f.Sync(ts.SimLog); len(again) != 0 {
		t.Fatalf("second sync re-mirrored %d entries", len(again))
	}

	ts.PointerDown(-1, -1, arena.ButtonPrimary)
	got = f.Sync(ts.SimLog)
	if len(got) != 1 || got[0].Key != "press_ignored" {
		t.Fatalf("want the ignored press, got %+v", got)
	}
	recent := f.Recent()
	if len(recent) != 2 || recent[1].Kind != "input/press_ignored" {
		t.Fatalf("feed = %+v", recent)
	}
}

func TestEventFeed_RingDropsOldest(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(FeedEntry{Tick: i})
	}
	recent := f.Recent()
	if len(recent) != feedMaxEntries {
		t.Fatalf("len = %d", len(recent))
	}
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("ring order wrong: first=%d last=%d", recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestSynthTone_Shape(t *testing.T) {
	tn := tone{from: 440, to: 440, dur: 100 * time.Millisecond, volume: 0.5}
	pcm := synthTone(tn, 8000)
	if len(pcm) != 800*audioFrameBytes {
		t.Fatalf("pcm len = %d, want %d", len(pcm), 800*audioFrameBytes)
	}
	peak := 0
	for i := 0; i < len(pcm); i += audioFrameBytes {
		l := int16(binary.LittleEndian.Uint16(pcm[i:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i+audioBytesPerSample:]))
		if l != r {
			t.Fatalf("frame %d: channels differ (%d vs %d)", i/audioFrameBytes, l, r)
		}
		peak = max(peak, int(l), -int(l))
	}
	if limit := int(0.5 * 32767); peak > limit || peak < limit/2 {
		t.Fatalf("peak %d outside (%d, %d]", peak, limit/2, limit)
	}
	last := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-audioFrameBytes:]))
	if last > 500 || last < -500 {
		t.Fatalf("tone should fade out, last sample %d", last)
	}
}

func TestCueFor(t *testing.T) {
	cases := map[string]cue{
		"ray/popped": cuePop,
		"wall/built": cueWall,
		"round/won":  cueWin,
	}
	for kind, want := range cases {
		e := arena.SimLogEntry{}
		for i := range kind {
			if kind[i] == '/' {
				e.Category, e.Key = kind[:i], kind[i+1:]
			}
		}
		got, ok := cueFor(e)
		if !ok || got != want {
			t.Errorf("%s: cue=%v ok=%v", kind, got, ok)
		}
	}
	if _, ok := cueFor(arena.SimLogEntry{Category: "ray", Key: "frozen"}); ok {
		t.Error("frozen rays have no sound")
	}

	silent := NewSoundBank(nil)
	silent.React([]arena.SimLogEntry{{Category: "ray", Key: "popped"}})
	if !silent.Toggle() {
		t.Error("first toggle should mute")
	}
}
