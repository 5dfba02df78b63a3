package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"

	"github.com/Garsondee/jezzball/internal/arena"
)

// sampleEvery is the tick spacing of the fill history.
const sampleEvery = 100

type runStats struct {
	runIndex    int
	seed        int64
	stats       arena.RoundStats
	scene       arena.Scene
	fillHistory []float64 // filled percent every sampleEvery ticks, plus the last tick
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var cooldown int
	var cfgPath string
	var envPath string
	var pngDir string
	var classic bool
	var plot bool
	var progress bool

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&ticks, "ticks", 6000, "maximum ticks per round")
	flag.Int64Var(&seedBase, "seed-base", 42, "autoplayer seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&cooldown, "cooldown", 30, "ticks the autoplayer waits between dividers")
	flag.StringVar(&cfgPath, "config", "", "JSON or TOML arena config (defaults when empty)")
	flag.StringVar(&envPath, "env", "", "dotenv file with JEZZBALL_* overrides")
	flag.StringVar(&pngDir, "png", "", "directory for a final-frame PNG per run")
	flag.BoolVar(&classic, "classic", false, "rays never become walls")
	flag.BoolVar(&plot, "plot", false, "print an ASCII chart of the fill over time per run")
	flag.BoolVar(&progress, "progress", true, "show a progress bar on stderr while rounds run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	cfg, err := arena.LoadConfig(cfgPath, envPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if classic {
		cfg.WallMode = arena.WallsClassic
	}

	fmt.Printf("=== Headless JezzBall Report ===\n")
	fmt.Printf("mode=%s runs=%d ticks=%d seed_base=%d seed_step=%d cooldown=%d\n\n",
		cfg.WallMode, runs, ticks, seedBase, seedStep, cooldown)

	var bar *pb.ProgressBar
	if progress {
		bar = pb.New(runs).Prefix("rounds ")
		bar.Output = os.Stderr
		bar.SetWidth(80)
		bar.Start()
	}

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := playRound(cfg, i+1, seed, ticks, cooldown)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		all = append(all, rs)
		if pngDir != "" {
			if err := writePNG(pngDir, rs); err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	for _, rs := range all {
		printRun(rs, plot)
	}
	printAggregate(all)
}

// playRound runs one autoplayed round until it is won or ticks run out.
func playRound(cfg arena.Config, runIndex int, seed int64, ticks, cooldown int) (runStats, error) {
	sim, err := arena.NewSim(cfg)
	if err != nil {
		return runStats{}, errors.Wrapf(err, "run %d", runIndex)
	}
	bot := arena.NewAutoplayer(seed, cooldown)
	history := []float64{0}
	for i := 0; i < ticks && sim.Outcome() == arena.OutcomePlaying; i++ {
		bot.Act(sim)
		sim.Step()
		if sim.Tick()%sampleEvery == 0 {
			history = append(history, sim.Grid().FilledFraction()*100)
		}
	}
	if sim.Tick()%sampleEvery != 0 {
		history = append(history, sim.Grid().FilledFraction()*100)
	}
	return runStats{
		runIndex:    runIndex,
		seed:        seed,
		stats:       arena.Summarize(sim),
		scene:       sim.Scene(),
		fillHistory: history,
	}, nil
}

func fillChart(rs runStats) string {
	return asciigraph.Plot(rs.fillHistory,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("run %d: filled %% every %d ticks", rs.runIndex, sampleEvery)))
}

func pngPath(dir string, runIndex int) string {
	return filepath.Join(dir, fmt.Sprintf("run-%03d.png", runIndex))
}

func writePNG(dir string, rs runStats) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "could not create png dir (%s)", dir)
	}
	path := pngPath(dir, rs.runIndex)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	defer f.Close()
	if err := png.Encode(f, arena.RenderImage(rs.scene)); err != nil {
		return errors.Wrapf(err, "could not encode %s", path)
	}
	return nil
}

func outcomeColor(o arena.Outcome) chalk.Color {
	if o == arena.OutcomeWon {
		return chalk.Green
	}
	return chalk.Yellow
}

func printRun(rs runStats, plot bool) {
	s := rs.stats
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome: %s%s%s ticks=%d filled=%.1f%%\n",
		outcomeColor(s.Outcome), s.Outcome, chalk.Reset, s.Ticks, s.FilledFraction*100)
	fmt.Printf("dividers: started=%d abandoned=%d walls=%d wall_rate=%.2f\n",
		s.DividersStarted, s.DividersAbandoned, s.WallsBuilt, s.WallRate())
	fmt.Printf("rays: blocked=%d frozen=%d popped=%d\n", s.RaysBlocked, s.RaysFrozen, s.RaysPopped)
	if plot {
		fmt.Println(fillChart(rs))
	}
	fmt.Println()
}

type aggregate struct {
	runs       int
	wins       int
	wonTicks   []int
	avgFilled  float64
	avgPopped  float64
	avgWalls   float64
	avgStarted float64
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all)}
	var filled float64
	popped, walls, started := 0, 0, 0
	for _, rs := range all {
		s := rs.stats
		if s.Outcome == arena.OutcomeWon {
			agg.wins++
			agg.wonTicks = append(agg.wonTicks, s.WonTick)
		}
		filled += s.FilledFraction
		popped += s.RaysPopped
		walls += s.WallsBuilt
		started += s.DividersStarted
	}
	if agg.runs > 0 {
		agg.avgFilled = filled / float64(agg.runs)
	}
	agg.avgPopped = avg(popped, agg.runs)
	agg.avgWalls = avg(walls, agg.runs)
	agg.avgStarted = avg(started, agg.runs)
	return agg
}

func printAggregate(all []runStats) {
	agg := summarize(all)
	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("runs=%d wins=%s%d%s avg_won_tick=%s\n",
		agg.runs, outcomeColor(winOutcome(agg)), agg.wins, chalk.Reset, avgTickString(agg.wonTicks))
	fmt.Printf("avg_per_run: filled=%.1f%% dividers=%.1f walls=%.1f popped=%.1f\n",
		agg.avgFilled*100, agg.avgStarted, agg.avgWalls, agg.avgPopped)
}

// winOutcome colours the aggregate green only when every run was won.
func winOutcome(agg aggregate) arena.Outcome {
	if agg.runs > 0 && agg.wins == agg.runs {
		return arena.OutcomeWon
	}
	return arena.OutcomePlaying
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
