package arena

import (
	"strings"
	"testing"
)

func TestSimLog_Queries(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "--", "divider", "start", "at (10,10)", 0)
	sl.Add(4, "H", "ray", "frozen", "at (800,10)", 790)
	sl.Add(7, "V", "ray", "popped", "by B1 at length 35", 35)
	sl.AddVerbose(7, "B1", "ball", "position", "(5,5)", 0)

	if sl.Len() != 3 {
		t.Fatalf("verbose entry recorded in a quiet log, len=%d", sl.Len())
	}
	if n := sl.CountCategory("ray", ""); n != 2 {
		t.Fatalf("ray entries = %d", n)
	}
	if got := sl.FilterSubject("V"); len(got) != 1 || got[0].NumVal != 35 {
		t.Fatalf("FilterSubject(V) = %+v", got)
	}
	if got := sl.FilterTickRange(2, 7); len(got) != 2 {
		t.Fatalf("tick range 2..7 = %d entries", len(got))
	}
	if got := sl.Since(2); len(got) != 1 || got[0].Key != "popped" {
		t.Fatalf("Since(2) = %+v", got)
	}
	if sl.Since(3) != nil || sl.Since(10) != nil {
		t.Fatal("Since past the end should be empty")
	}
	if e, ok := sl.LastOf("divider", "start"); !ok || e.Tick != 1 {
		t.Fatalf("LastOf = %+v, %v", e, ok)
	}
	if _, ok := sl.LastOf("wall", "built"); ok {
		t.Fatal("LastOf found a missing entry")
	}
	if !sl.HasEntry("ray", "popped", "B1") || sl.HasEntry("ray", "popped", "B0") {
		t.Fatal("HasEntry substring match is wrong")
	}
}

func TestSimLogEntry_String(t *testing.T) {
	e := SimLogEntry{Tick: 42, Subject: "H", Category: "ray", Key: "popped", Value: "by B1 at length 135"}
	want := "[T=042] H    ray       popped           by B1 at length 135"
	if got := e.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestSimLog_Summary(t *testing.T) {
	ts := NewTestSim(WithoutBalls(), WithBall(100, 100, 2, 2), WithWallMode(WallsClassic))
	ts.Press(400, 300)
	ts.RunTicks(2)

	out := ts.SimLog.Summary(ts.Sim)
	for _, want := range []string{"T=002", "B0 at (104,104) v=(2,2)", "Ray H: (400,300)→(410,300) growing"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(ts.SimLog.Format(), "[T=000] --   divider   start            at (400,300)") {
		t.Errorf("formatted log should include the divider start:\n%s", ts.SimLog.Format())
	}
}
