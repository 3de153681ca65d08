package main

import (
	"log/slog"
	"os"

	"KolamStudio/internal/config"
	"KolamStudio/internal/ui"

	"github.com/gogpu/gg"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Level())
	gg.SetLogger(logger.With("component", "gg"))

	logger.Info("starting kolam studio",
		"width", cfg.Canvas.Width, "height", cfg.Canvas.Height,
		"history", cfg.History.Capacity)
	ui.RunApp(cfg, logger)
}

// loadConfig reads the file named by the first argument, or kolam.yaml
// when there is none.
func loadConfig(args []string) (*config.Config, error) {
	if len(args) > 0 && args[0] != "" {
		return config.Load(args[0])
	}
	return config.LoadDefault()
}
