package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/jezzball/internal/arena"
	"github.com/Garsondee/jezzball/internal/game"
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
	g, err := game.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("JezzBall")
	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetTPS(cfg.TicksPerSecond())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
