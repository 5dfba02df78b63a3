package main

import (
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Garsondee/jezzball/internal/arena"
)

func TestPlayRound_DeterministicPerSeed(t *testing.T) {
	cfg := arena.DefaultConfig()
	a, err := playRound(cfg, 1, 42, 1500, 30)
	if err != nil {
		t.Fatal(err)
	}
	b, err := playRound(cfg, 1, 42, 1500, 30)
	if err != nil {
		t.Fatal(err)
	}
	if a.stats != b.stats {
		t.Fatalf("same seed gave different stats:\n a=%+v\n b=%+v", a.stats, b.stats)
	}
	if !reflect.DeepEqual(a.scene, b.scene) {
		t.Fatal("same seed gave different final scenes")
	}
	if a.stats.DividersStarted == 0 {
		t.Fatal("autoplayer never started a divider")
	}
}

func TestPlayRound_StopsWhenWon(t *testing.T) {
	cfg := arena.DefaultConfig()
	cfg.WinFraction = 0.05
	rs, err := playRound(cfg, 2, 7, 20000, 10)
	if err != nil {
		t.Fatal(err)
	}
	if rs.stats.Outcome != arena.OutcomeWon {
		t.Skipf("seed 7 did not win in 20000 ticks: %+v", rs.stats)
	}
	if rs.stats.Ticks != rs.stats.WonTick {
		t.Fatalf("round kept running after the win: ticks=%d won=%d", rs.stats.Ticks, rs.stats.WonTick)
	}
}

func TestPlayRound_InvalidConfig(t *testing.T) {
	cfg := arena.DefaultConfig()
	cfg.Width = 0
	if _, err := playRound(cfg, 3, 1, 10, 10); err == nil {
		t.Fatal("expected an error for a zero-width arena")
	}
}

func TestSummarize_Aggregates(t *testing.T) {
	all := []runStats{
		{stats: arena.RoundStats{Outcome: arena.OutcomeWon, WonTick: 100, FilledFraction: 0.8, RaysPopped: 2, WallsBuilt: 6, DividersStarted: 4}},
		{stats: arena.RoundStats{Outcome: arena.OutcomePlaying, FilledFraction: 0.4, RaysPopped: 4, WallsBuilt: 2, DividersStarted: 6}},
		{stats: arena.RoundStats{Outcome: arena.OutcomeWon, WonTick: 300, FilledFraction: 0.9}},
	}
	agg := summarize(all)
	if agg.runs != 3 || agg.wins != 2 {
		t.Fatalf("runs=%d wins=%d", agg.runs, agg.wins)
	}
	if got := avgTickString(agg.wonTicks); got != "200.0" {
		t.Fatalf("avg won tick = %s", got)
	}
	if agg.avgPopped != 2 || agg.avgWalls != 8.0/3 || agg.avgStarted != 10.0/3 {
		t.Fatalf("averages wrong: %+v", agg)
	}
	if d := agg.avgFilled - 0.7; d > 1e-9 || d < -1e-9 {
		t.Fatalf("avg filled = %v", agg.avgFilled)
	}
	if winOutcome(agg) != arena.OutcomePlaying {
		t.Fatal("a lost run should keep the aggregate out of the won colour")
	}
	if winOutcome(summarize(all[2:])) != arena.OutcomeWon {
		t.Fatal("all runs won should colour the aggregate as won")
	}
	if avgTickString(nil) != "n/a" || avg(5, 0) != 0 {
		t.Fatal("empty inputs should not divide by zero")
	}
}

func TestWritePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	rs, err := playRound(arena.DefaultConfig(), 4, 3, 200, 20)
	if err != nil {
		t.Fatal(err)
	}
	if err := writePNG(dir, rs); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(pngPath(dir, 4))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("png is %dx%d", b.Dx(), b.Dy())
	}
	if got := filepath.Base(pngPath(dir, 4)); got != "run-004.png" {
		t.Fatalf("png name = %s", got)
	}
}

func TestFillHistory_NeverDecreases(t *testing.T) {
	rs, err := playRound(arena.DefaultConfig(), 5, 11, 1250, 20)
	if err != nil {
		t.Fatal(err)
	}
	// 0, then ticks 100..1200, then the final tick 1250 unless the round was won first.
	if rs.stats.Outcome == arena.OutcomePlaying && len(rs.fillHistory) != 14 {
		t.Fatalf("history has %d samples, want 14", len(rs.fillHistory))
	}
	for i := 1; i < len(rs.fillHistory); i++ {
		if rs.fillHistory[i] < rs.fillHistory[i-1] {
			t.Fatalf("filled area shrank at sample %d: %v", i, rs.fillHistory)
		}
	}
	last := rs.fillHistory[len(rs.fillHistory)-1]
	if d := last - rs.stats.FilledFraction*100; d > 1e-9 || d < -1e-9 {
		t.Fatalf("last sample %v does not match final fill %v", last, rs.stats.FilledFraction*100)
	}

	chart := fillChart(rs)
	if !strings.Contains(chart, "run 5: filled % every 100 ticks") {
		t.Fatalf("chart caption missing:\n%s", chart)
	}
}
