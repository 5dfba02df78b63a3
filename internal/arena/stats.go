package arena

import (
	"fmt"
	"strings"
)

// RoundStats aggregates one round from its event log.
type RoundStats struct {
	Ticks   int
	Outcome Outcome
	WonTick int

	DividersStarted   int
	DividersAbandoned int
	RaysBlocked       int
	RaysFrozen        int
	RaysPopped        int
	WallsBuilt        int
	PressesIgnored    int

	FilledCells    int
	TotalCells     int
	FilledFraction float64
}

// Summarize collects RoundStats for the current round. Only log entries
// recorded since the last reset are counted.
func Summarize(s *Sim) RoundStats {
	rs := RoundStats{
		Ticks:          s.Tick(),
		Outcome:        s.Outcome(),
		WonTick:        s.WonTick(),
		FilledCells:    s.Grid().FilledCount(),
		TotalCells:     s.Grid().Cols * s.Grid().Rows,
		FilledFraction: s.Grid().FilledFraction(),
	}
	for _, e := range currentRound(s.Log().Entries()) {
		switch e.Category + "/" + e.Key {
		case "divider/start":
			rs.DividersStarted++
		case "divider/abandoned":
			rs.DividersAbandoned++
		case "ray/blocked":
			rs.RaysBlocked++
		case "ray/frozen":
			rs.RaysFrozen++
		case "ray/popped":
			rs.RaysPopped++
		case "wall/built":
			rs.WallsBuilt++
		case "input/press_ignored":
			rs.PressesIgnored++
		}
	}
	return rs
}

// currentRound drops everything up to and including the last round/reset.
func currentRound(entries []SimLogEntry) []SimLogEntry {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Category == "round" && entries[i].Key == "reset" {
			return entries[i+1:]
		}
	}
	return entries
}

// Report formats the stats as a short plain-text block.
func (rs RoundStats) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- JezzBall round report ---\n")
	fmt.Fprintf(&b, "ticks=%d outcome=%s", rs.Ticks, rs.Outcome)
	if rs.Outcome == OutcomeWon {
		fmt.Fprintf(&b, " won_at=%d", rs.WonTick)
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "filled=%d/%d (%.1f%%)\n", rs.FilledCells, rs.TotalCells, rs.FilledFraction*100)
	fmt.Fprintf(&b, "dividers: started=%d abandoned=%d\n", rs.DividersStarted, rs.DividersAbandoned)
	fmt.Fprintf(&b, "rays: blocked=%d frozen=%d popped=%d\n", rs.RaysBlocked, rs.RaysFrozen, rs.RaysPopped)
	fmt.Fprintf(&b, "walls built=%d presses ignored=%d\n", rs.WallsBuilt, rs.PressesIgnored)
	return b.String()
}

// WallRate is walls built per divider started, 0 when nothing was started.
func (rs RoundStats) WallRate() float64 {
	if rs.DividersStarted == 0 {
		return 0
	}
	return float64(rs.WallsBuilt) / float64(rs.DividersStarted)
}
