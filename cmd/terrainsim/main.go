// Package main is the entry point for the headless terrain simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/config"
	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/internal/sim"
)

var (
	flagTicks      = flag.Int("ticks", 300, "Number of ticks to simulate")
	flagCamera     = flag.Bool("camera", false, "Use a perspective camera for visibility")
	flagPaintEvery = flag.Int("paint-every", 5, "Ticks between paint strokes (0 disables painting)")
	flagWriteCfg   = flag.String("write-config", "", "Write the effective config to this path and exit")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if *flagWriteCfg != "" {
		if err := cfg.SaveTo(*flagWriteCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Terramesh Simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	opts := sim.DefaultOptions()
	opts.Camera = *flagCamera
	opts.PaintEvery = *flagPaintEvery

	s, err := sim.New(cfg, opts)
	if err != nil {
		logger.Error("failed to create simulation", zap.Error(err))
		os.Exit(1)
	}
	defer s.Close()

	if err := s.Run(*flagTicks); err != nil {
		logger.Error("simulation error", zap.Error(err))
		os.Exit(1)
	}

	u := s.Updater()
	logger.Info("simulation closed normally",
		zap.Int("mesh_updates", u.Updates),
		zap.Int("mesh_removes", u.Removes),
		zap.Int("uploaded_triangles", u.UploadedTris))
}
