// cmd/boost/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-boost/pkg/config"
	"github.com/opd-ai/go-boost/pkg/event"
	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/render"
	engorender "github.com/opd-ai/go-boost/pkg/render/engo"
	"github.com/opd-ai/go-boost/pkg/vehicle"
	"github.com/opd-ai/go-boost/pkg/world"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'engo', 'terminal' or 'headless'")
	startLevel := flag.Int("level", -1, "Start level index (overrides config)")
	debug := flag.Bool("debug", false, "Enable the debug keys (c toggles collisions, l skips a level)")
	width := flag.Int("width", 1024, "Window width (Engo only)")
	height := flag.Int("height", 768, "Window height (Engo only)")
	ticks := flag.Int("ticks", 600, "Number of ticks to simulate (headless only)")
	logPath := flag.String("log", "", "Write logs to this file instead of stdout")
	flag.Parse()

	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())
	logger, closeLog, err := newLogger(*renderer, *logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if *startLevel >= 0 {
		gameConfig.Levels.Start = *startLevel
	}
	if *debug {
		gameConfig.Debug = true
	}

	bus := event.NewEventBus()
	subscribeLogging(ctx, bus, logger)

	w, err := world.New(ctx, gameConfig, world.WithLogger(logger), world.WithEventBus(bus))
	if err != nil {
		logger.Error(ctx, "Failed to create world", err)
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			logger.Info(ctx, "Shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	switch *renderer {
	case "engo":
		startEngoRenderer(ctx, w, gameConfig, float32(*width), float32(*height), logger)
	case "headless":
		summary := runHeadless(ctx, w, *ticks, thrustAutopilot(gameConfig.Physics.TickRate))
		logger.Info(ctx, "Headless run finished",
			"ticks", summary.Ticks,
			"level", summary.Level,
			"state", summary.State.String(),
			"engine_starts", summary.EngineStarts,
			"one_shots", summary.OneShots,
		)
	case "terminal":
		if err := startTerminalRenderer(ctx, w); err != nil {
			logger.Error(ctx, "Terminal renderer failed", err)
			os.Exit(1)
		}
	default:
		logger.Error(ctx, "Unknown renderer", nil, "renderer", *renderer)
		os.Exit(2)
	}
}

// newLogger picks the log destination. The terminal renderer owns stdout,
// so its logs are dropped unless a file is given.
func newLogger(renderer, path string) (*logging.Logger, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLoggerWithWriter(f), func() { f.Close() }, nil
	}
	if renderer == "terminal" {
		return logging.Discard(), func() {}, nil
	}
	return logging.NewLogger(), func() {}, nil
}

// loadConfig reads path if it exists, then applies environment overrides
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	return gameConfig, nil
}

// subscribeLogging logs the lifecycle events
func subscribeLogging(ctx context.Context, bus *event.Bus, logger *logging.Logger) {
	bus.Subscribe(event.StateChanged, func(e event.Event) {
		if se, ok := e.(*event.StateEvent); ok {
			logger.Info(ctx, "Vehicle state changed",
				"from", se.From.String(),
				"to", se.To.String(),
			)
		}
	})

	bus.Subscribe(event.LevelLoaded, func(e event.Event) {
		if le, ok := e.(*event.LevelEvent); ok {
			logger.Info(ctx, "Level loaded",
				"index", le.Index,
				"name", le.Name,
			)
		}
	})

	bus.Subscribe(event.LevelLoadFailed, func(e event.Event) {
		if le, ok := e.(*event.LevelEvent); ok {
			logger.Error(ctx, "Level load failed", le.Err,
				"index", le.Index,
			)
		}
	})
}

// startEngoRenderer opens the window and blocks until it is closed
func startEngoRenderer(ctx context.Context, w *world.World, cfg *config.GameConfig, width, height float32, logger *logging.Logger) {
	scene := engorender.NewGameScene(ctx, w, cfg.VehicleConfig().Emitters, width, height, logger)

	opts := engo.RunOptions{
		Title:    "Boost",
		Width:    int(width),
		Height:   int(height),
		VSync:    true,
		FPSLimit: cfg.Physics.TickRate,
	}

	engo.Run(opts, scene)
}

// startTerminalRenderer plays in the terminal until the player quits
func startTerminalRenderer(ctx context.Context, w *world.World) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	host := render.NewTerminalHost(screen, render.DefaultHoldWindow)
	return host.Run(ctx, w)
}

// headlessSummary is what a headless run reports
type headlessSummary struct {
	Ticks        uint64
	Level        int
	State        vehicle.State
	EngineStarts int
	OneShots     int
}

// runHeadless steps w for up to ticks ticks without a display
func runHeadless(ctx context.Context, w *world.World, ticks int, input world.InputSource) headlessSummary {
	engineStarts, oneShots := 0, 0
	mixer := w.Mixer()

	w.RunTicks(ticks, input, func(world.Snapshot) bool {
		// every level load builds a new mixer
		if w.Mixer() != mixer {
			engineStarts += mixer.LoopStarts()
			oneShots += mixer.OneShots()
			mixer = w.Mixer()
		}
		return ctx.Err() == nil
	})

	return headlessSummary{
		Ticks:        w.Tick(),
		Level:        w.Levels().CurrentLevelIndex(),
		State:        w.Controller().State(),
		EngineStarts: engineStarts + w.Mixer().LoopStarts(),
		OneShots:     oneShots + w.Mixer().OneShots(),
	}
}

// thrustAutopilot burns for one second out of every two and never steers.
// It is enough to lift off and crash back onto the level.
func thrustAutopilot(tickRate int) world.InputSource {
	if tickRate <= 0 {
		tickRate = 60
	}
	tick := 0
	return func() vehicle.Input {
		in := vehicle.Input{Thrust: tick%(2*tickRate) < tickRate}
		tick++
		return in
	}
}
