package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/epicycles/internal/export"
	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/logging"
	"github.com/olivier-w/epicycles/internal/media"
	"github.com/olivier-w/epicycles/internal/playback"
	"github.com/olivier-w/epicycles/internal/scope"
	"github.com/olivier-w/epicycles/internal/shape"
	"go.uber.org/zap"
)

const headlessSize = 800

func main() {
	var cfg config
	flag.IntVar(&cfg.fps, "fps", 30, "animation frames per second")
	flag.IntVar(&cfg.terms, "terms", 0, "dominant terms to draw (0 = all)")
	flag.IntVar(&cfg.maxPoints, "max-points", media.DefaultMaxPoints, "maximum path length read from audio files")
	flag.Float64Var(&cfg.window, "window", 0, "seconds of audio read from files (0 = whole file)")
	flag.Float64Var(&cfg.sweepHz, "sweep-hz", scope.DefaultSweepHz, "path retraces per second in audio output")
	flag.StringVar(&cfg.pngPath, "png", "", "write a PNG snapshot and exit")
	flag.StringVar(&cfg.wavPath, "wav", "", "write XY audio as WAV and exit")
	flag.Float64Var(&cfg.seconds, "seconds", 5, "WAV duration in seconds")
	flag.StringVar(&cfg.logPath, "log", "", "append JSON logs to this file")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: epicycles [flags] [file (%s)]\n", media.SupportedExtsList())
		flag.PrintDefaults()
	}
	flag.Parse()

	log, closeLog, err := logging.New(cfg.logPath, logging.ParseLevel(cfg.logLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	path := flag.Arg(0)

	if cfg.pngPath != "" || cfg.wavPath != "" {
		if err := runHeadless(path, cfg, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			closeLog()
			os.Exit(1)
		}
		return
	}

	var model tea.Model
	if path == "" {
		model = newStartupModel(cfg, log)
	} else {
		m, err := buildModel(path, cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			closeLog()
			os.Exit(1)
		}
		model = m
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		log.Error("program failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// runHeadless writes the requested exports without starting the TUI.
func runHeadless(path string, cfg config, log *zap.Logger) error {
	src, err := loadSource(path, cfg)
	if err != nil {
		return err
	}
	points := src.Points
	if len(points) == 0 {
		points = shape.Triforce(headlessSize, headlessSize)
	}

	driver, err := playback.NewDriver(log, points)
	if err != nil {
		return err
	}
	driver.SetTerms(cfg.terms)
	active := driver.Active()

	if cfg.pngPath != "" {
		if err := export.WritePNG(cfg.pngPath, active, export.PNGOptions{Width: headlessSize, Height: headlessSize}); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.pngPath, err)
		}
		log.Info("exported", zap.String("kind", "PNG"), zap.String("path", cfg.pngPath))
		fmt.Printf("wrote %s (%s)\n", cfg.pngPath, describe(active, driver.Len()))
	}

	if cfg.wavPath != "" {
		osc := scope.NewOscillator(cfg.sweepHz)
		osc.SetComponents(active)
		if err := export.WriteWAVFile(cfg.wavPath, osc, cfg.seconds); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.wavPath, err)
		}
		log.Info("exported", zap.String("kind", "WAV"), zap.String("path", cfg.wavPath))
		fmt.Printf("wrote %s (%.1fs at %.0f Hz sweep)\n", cfg.wavPath, cfg.seconds, osc.SweepHz())
	}
	return nil
}

func describe(active []fourier.Component, total int) string {
	return fmt.Sprintf("%d of %d terms", len(active), total)
}
