// Package main is the entry point for the plastic gallery viewer.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/plastic-gallery/internal/app"
	"github.com/Faultbox/plastic-gallery/internal/config"
	"github.com/Faultbox/plastic-gallery/internal/logger"
	"github.com/Faultbox/plastic-gallery/internal/manifest"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Plastic Gallery ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	descs, err := manifest.Load(cfg.Gallery.Manifest)
	if err != nil {
		logger.Error("failed to load lineup", zap.String("manifest", cfg.Gallery.Manifest), zap.Error(err))
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create gallery", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Open(context.Background(), descs); err != nil {
		logger.Error("failed to open lineup", zap.Error(err))
		a.Close()
		os.Exit(1)
	}

	if err := a.Run(); err != nil {
		logger.Error("gallery error", zap.Error(err))
		a.Close()
		os.Exit(1)
	}

	logger.Info("gallery closed normally")
}
