package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-sprites/internal/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON or YAML configuration file")
	size := flag.Int("size", -1, "number of boids, overrides the configuration")
	logFile := flag.String("log", "", "write warnings to this file, the screen belongs to the flock")
	fps := flag.Int("fps", 30, "frames per second")
	flag.Parse()

	if err := run(*configFile, *size, *logFile, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "flock-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string, size int, logFile string, fps int) error {
	cfg := simulation.TerminalConfig()
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfigOver(simulation.TerminalConfig(), configFile); err != nil {
			return err
		}
	}
	if size >= 0 {
		cfg.FlockSize = size
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if fps < 1 {
		return fmt.Errorf("fps must be >= 1, got %d", fps)
	}

	var logger golog.Logger = golog.DiscardLogger
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = golog.New(golog.WarningLevel, f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app, err := simulation.NewTermApp(screen, cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	app.Run(ctx, time.Second/time.Duration(fps))
	return nil
}
