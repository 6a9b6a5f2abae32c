package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file, defaults apply when empty")
	logFile := flag.String("log", "", "append actor logs to this file, the terminal is busy drawing")
	debug := flag.Bool("debug", false, "log every actor message")
	flag.Parse()

	if err := run(*configFile, *logFile, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "fishterm: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, logFile string, debug bool) error {
	cfg := simulation.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configFile); err != nil {
			return err
		}
	}

	logger := golog.DiscardLogger
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		level := golog.InfoLevel
		if debug {
			level = golog.DebugLevel
		}
		logger = golog.New(level, f)
	}

	ctx := context.Background()
	engine, err := simulation.NewEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Stop(ctx)

	view, err := NewView(ctx, cfg, engine)
	if err != nil {
		return err
	}
	defer view.cleanup()

	return view.run()
}
