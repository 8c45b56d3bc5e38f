package main

import (
	"log/slog"
	"os"

	"github.com/fishfinder/fishfinder-go/cmd"
	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		slog.Error("Error loading configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if settings.Main.Log.Enabled {
		fileLogger, closeLog, err := logging.NewFileLogger(settings.Main.Log.Path, settings.Main.Name, level)
		if err != nil {
			logging.Fatal("Error opening log file", "path", settings.Main.Log.Path, "error", err)
		}
		defer closeLog() //nolint:errcheck // process is exiting
		logging.SetStructured(fileLogger)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Fatal("Command execution failed", "error", err)
	}
}
