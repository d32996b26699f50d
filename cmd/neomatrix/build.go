package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/neomatrix/internal/config"
	"github.com/san-kum/neomatrix/internal/engine"
)

// setupLogging installs a stderr logger for the engine.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// resolveConfig layers the config file, an optional preset and the changed
// flags, in that order. A scene argument picks the scene.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Scene.Name = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scene.Name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scene.Name))
		}
		cfg.Scene = p.Scene
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Scene.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.Scene.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Scene.Seed = seed
	}
	if flags.Changed("bodies") {
		cfg.Scene.Bodies = bodies
	}
	if flags.Changed("columns") {
		cfg.Matrix.Columns = columns
	}
	if flags.Changed("rows") {
		cfg.Matrix.Rows = rows
	}
	if flags.Changed("wiring") {
		cfg.Matrix.Wiring = wiring
	}
	if flags.Changed("format") {
		cfg.Color.Format = format
	}
	if flags.Changed("brightness") {
		cfg.Color.Brightness = brightness
	}
	if flags.Changed("mode") {
		cfg.Display.Mode = mode
	}
	if flags.Changed("reflect") {
		cfg.Display.Reflect = reflect
	}
	if flags.Changed("param") {
		if cfg.Scene.Params == nil {
			cfg.Scene.Params = make(map[string]float64, len(params))
		}
		for k, v := range params {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("param %s: %w", k, err)
			}
			cfg.Scene.Params[k] = f
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
