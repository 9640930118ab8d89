package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-roam/internal/config"
	"github.com/leterax/go-roam/internal/logger"
	"github.com/leterax/go-roam/pkg/debug"
	"github.com/leterax/go-roam/pkg/game"
	"github.com/leterax/go-roam/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		slog.Error("roam failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command line flags
	configPath := flag.String("config", "", "Config file (.yaml, .yml or .toml)")
	headless := flag.Bool("headless", false, "Run without a window on a fixed tick")
	hz := flag.Int("hz", game.DefaultHz, "Headless ticks per second")
	ticks := flag.Int("ticks", 0, "Headless ticks to run (0 runs until interrupted)")
	script := flag.String("script", "", `Headless key script, e.g. "0:+KeyW,120:-KeyW"`)
	seed := flag.Int64("seed", 0, "Cube layout seed (0 picks one from the clock)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "", "Log format: console, text or json")
	debugPanel := flag.Bool("debug", false, "Read panel commands from stdin and show a status line")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if cfg.World.Seed == 0 {
		cfg.World.Seed = time.Now().UnixNano()
	}

	log := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log.Info("starting Go-Roam",
		"config", *configPath,
		"seed", cfg.World.Seed,
		"cubes", cfg.World.CubeCount,
		"boundary", cfg.Boundary(),
		"headless", *headless)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []game.Option
	if *configPath != "" {
		watcher, err := config.Watch(*configPath)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			defer watcher.Close()
			opts = append(opts, game.WithReloads(watcher.Updates, watcher.Errors))
		}
	}

	camera := render.NewCamera(mgl32.Vec3{0, cfg.Physics.GroundHeight, 0})
	g, err := game.New(cfg, camera, opts...)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	if *debugPanel {
		console := debug.NewConsole(g.Panel(), os.Stdin, os.Stdout)
		g.AttachConsole(console)
		console.Start(ctx)
		defer console.Close()
	}

	if *headless {
		keys, err := game.ParseScript(*script)
		if err != nil {
			return err
		}
		err = game.RunHeadless(ctx, g, game.HeadlessConfig{Hz: *hz, Ticks: *ticks, Script: keys})
		return shutdown(log, err)
	}

	sceneCfg := render.DefaultSceneConfig()
	sceneCfg.CubeCount = cfg.World.CubeCount
	sceneCfg.CubeSpread = cfg.World.CubeSpread
	sceneCfg.FloorSize = cfg.World.FloorSize
	scene := render.NewScene(sceneCfg, rand.New(rand.NewSource(cfg.World.Seed)))

	return shutdown(log, game.RunWindow(ctx, g, scene))
}

// shutdown treats an interrupt as a normal exit
func shutdown(log *slog.Logger, err error) error {
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		err = nil
	}
	if err == nil {
		log.Info("shutting down")
	}
	return err
}
