// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/alnvdl/wcf-truco/cliparse"
)

// Rotation settings for LOG_FILE
const (
	maxSizeMB  = 10
	maxBackups = 5
	maxAgeDays = 30
)

// Setup installs the default slog logger described by cfg. Logs go to stderr
// as text, or to a rotated file as JSON when cfg.LogFile is set. The returned
// closer flushes and closes the file.
func Setup(cfg cliparse.Config) io.Closer {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
		return nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(file, opts)))
	return file
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
