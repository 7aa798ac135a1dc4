package main

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger returns a logger writing records of at least the given level on outW
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

/*
Logger returns the logger configured through the root command flags.
The verbose flag lowers the level to debug.
*/
func (rcc *rootCmdConfig) Logger() *slog.Logger {
	if rcc.logger == nil {
		level := rcc.logLevel
		if rcc.verbose {
			level = "debug"
		}
		rcc.logger = newLogger(level, rcc.logFormat, rcc.logOutput)
	}
	return rcc.logger
}

// Logf logs the formatted message at info level
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rcc.Logger().Info(fmt.Sprintf(format, a...))
}
