package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

func newLogger() *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(handler)
}

// setupEngineLogging configures the board engine's logrus logger and, when
// LOG_FILE is set, mirrors it into a rotating file.
func setupEngineLogging() error {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	mines.Log.SetLevel(level)
	mines.Log.SetFormatter(&logrus.TextFormatter{ForceColors: config.Development()})

	logFile, ok, err := config.NewLogFile()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	hook, err := logFile.Hook(level)
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", logFile.Filename, err)
	}
	mines.Log.AddHook(hook)
	return nil
}
