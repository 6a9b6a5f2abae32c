package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file, defaults apply when empty")
	debug := flag.Bool("debug", false, "log every actor message")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.Fatalf("💥 cannot load configuration: %v", err)
		}
	}

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	ctx := context.Background()
	engine, err := simulation.NewEngine(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("💥 cannot start the flock: %v", err)
	}
	defer engine.Stop(ctx)

	ebiten.SetWindowSize(int(2*cfg.WorldWidth), int(2*cfg.WorldHeight))
	ebiten.SetWindowTitle("Fishes")
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(NewGame(ctx, cfg, engine)); err != nil {
		log.Fatal(err)
	}
}
