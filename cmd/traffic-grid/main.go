package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/traffic-grid/audio"
	"github.com/lixenwraith/traffic-grid/config"
	"github.com/lixenwraith/traffic-grid/core"
	"github.com/lixenwraith/traffic-grid/engine"
	"github.com/lixenwraith/traffic-grid/input"
	"github.com/lixenwraith/traffic-grid/render"
	"github.com/lixenwraith/traffic-grid/status"
)

// frameInterval paces redraws independently of the tick rate
const frameInterval = 33 * time.Millisecond

var (
	configFlag    = flag.String("config", "", "Layout file (TOML); empty uses the built-in crossroads")
	seedFlag      = flag.Uint64("seed", 0, "Random seed; 0 keeps the layout's seed or picks one from the clock")
	debugFlag     = flag.Bool("debug", false, "Write debug log to logs/traffic-grid.log")
	soundFlag     = flag.Bool("sound", false, "Enable audio cues")
	tickFlag      = flag.Duration("tick", 0, "Tick interval, overrides the layout's tick_ms")
	lookAheadFlag = flag.String("lookahead", "", "Movement rule: simple or speed")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logger, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "traffic-grid: %v\n", err)
		os.Exit(1)
	}
	grid, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "traffic-grid: %v\n", err)
		os.Exit(1)
	}
	logger.Info("grid built", "rows", grid.Rows(), "columns", grid.Columns(), "seed", grid.Seed(), "lookahead", cfg.Sim.LookAhead)

	switch *colorModeFlag {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashTerminal(screen)
	defer func() {
		core.SetCrashTerminal(nil)
		screen.Fini()
	}()
	screen.EnableMouse()
	screen.HideCursor()

	reg := status.NewRegistry()
	sim := engine.NewSimulation(grid, reg, nil, logger, cfg.TickInterval())
	renderer := render.NewTerminalRenderer(screen, reg)

	obstacle, _ := config.ParseColor(cfg.Grid.Obstacle)
	editor := input.NewEditor(sim, renderer, obstacle, cfg.Sim.SeedProbability, logger)

	if *soundFlag {
		sm := audio.NewSoundManager(audio.LoadConfig())
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", "err", err)
		} else {
			defer sm.Cleanup()
			sim.OnTick(sm.OnTick)
			editor.OnToggleSound(sm.Toggle, sm.Enabled())
		}
	}

	// Opens paused so the layout can be edited before traffic flows
	sim.Pause()
	sim.Start()
	defer sim.Stop()

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(frameInterval)
	defer frameTicker.Stop()

	draw := func() {
		fs := editor.FrameState()
		sim.View(func(g *engine.Grid) { renderer.RenderFrame(g, fs) })
	}
	draw()

	for {
		select {
		case ev := <-eventChan:
			if !editor.HandleEvent(ev) {
				logger.Info("quit requested")
				return
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			draw()

		case <-frameTicker.C:
			draw()
		}
	}
}

// loadConfig reads the layout and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return nil, err
		}
	}
	applyOverrides(cfg, *seedFlag, *lookAheadFlag, *tickFlag)
	return cfg, nil
}

// applyOverrides folds command-line settings into cfg; zero values leave the layout untouched
func applyOverrides(cfg *config.Config, seed uint64, lookAhead string, tick time.Duration) {
	if seed != 0 {
		cfg.Sim.Seed = seed
	}
	if cfg.Sim.Seed == 0 {
		cfg.Sim.Seed = uint64(time.Now().UnixNano())
	}
	if lookAhead != "" {
		cfg.Sim.LookAhead = lookAhead
	}
	if tick > 0 {
		cfg.Sim.TickMs = int(tick / time.Millisecond)
	}
}
