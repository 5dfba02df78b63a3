package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"

	"github.com/Garsondee/jezzball/internal/arena"
	"github.com/Garsondee/jezzball/internal/term"
)

func main() {
	var cfgPath, envPath string
	flag.StringVar(&cfgPath, "config", "", "JSON or TOML arena config (defaults when empty)")
	flag.StringVar(&envPath, "env", "", "dotenv file with JEZZBALL_* overrides")
	flag.Parse()

	cfg, err := arena.LoadConfig(cfgPath, envPath)
	if err != nil {
		log.Fatal(err)
	}
	sim, err := arena.NewSim(cfg)
	if err != nil {
		log.Fatal(err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("could not create screen: %v", err)
	}
	if err := s.Init(); err != nil {
		log.Fatalf("could not initialize screen: %v", err)
	}
	s.EnableMouse()
	s.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := term.New(s, sim).Run(ctx)
	stop()
	s.Fini()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatal(runErr)
	}

	rs := arena.Summarize(sim)
	color := chalk.Yellow
	if rs.Outcome == arena.OutcomeWon {
		color = chalk.Green
	}
	fmt.Print(color, rs.Report(), chalk.Reset)
}
