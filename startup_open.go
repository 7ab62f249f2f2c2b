package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/epicycles/internal/media"
	"github.com/olivier-w/epicycles/internal/ui"
	"go.uber.org/zap"
)

// config mirrors the command-line flags.
type config struct {
	fps       int
	terms     int
	maxPoints int
	window    float64
	sweepHz   float64
	pngPath   string
	wavPath   string
	seconds   float64
	logPath   string
	logLevel  string
}

func (c config) uiOptions(log *zap.Logger) ui.Options {
	opts := ui.Options{
		FPS:        c.fps,
		Terms:      c.terms,
		SweepHz:    c.sweepHz,
		PNGPath:    c.pngPath,
		WAVPath:    c.wavPath,
		WAVSeconds: c.seconds,
		Logger:     log,
	}
	return opts
}

// loadSource reads a path source. An empty path selects the default shape.
func loadSource(path string, cfg config) (ui.Source, error) {
	if path == "" {
		return ui.Source{}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return ui.Source{}, err
	}
	if info.IsDir() {
		return ui.Source{}, fmt.Errorf("%s is a directory", path)
	}

	if !media.IsSupportedFile(path) {
		return ui.Source{}, fmt.Errorf("unsupported format %s (supported: %s)",
			strings.ToLower(filepath.Ext(path)), media.SupportedExtsList())
	}

	points, err := media.LoadPath(path, media.LoadOptions{MaxPoints: cfg.maxPoints, Seconds: cfg.window})
	if err != nil {
		return ui.Source{}, err
	}
	return ui.Source{Title: media.ReadMetadata(path).Label(), Points: points}, nil
}

func buildModel(path string, cfg config, log *zap.Logger) (ui.Model, error) {
	src, err := loadSource(path, cfg)
	if err != nil {
		return ui.Model{}, err
	}
	log.Info("source loaded", zap.String("path", path), zap.Int("points", len(src.Points)))
	return ui.New(src, cfg.uiOptions(log))
}
