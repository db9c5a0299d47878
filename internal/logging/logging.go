// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/platform-engineering-labs/albalias/internal/config"
	"github.com/platform-engineering-labs/albalias/internal/util"
)

const NoLoggingLevel = slog.Level(100) // A level higher than any standard level to disable logging

func SetupInitialLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.RFC3339,
		}),
	))

	redirectStandardLog()
}

// SetupLogging routes slog to a rotating log file and, unless disabled with
// NoLoggingLevel, to the console.
func SetupLogging(loggingConfig *config.LoggingConfig) {
	var fileHandler slog.Handler
	if loggingConfig.FilePath != "" {
		if err := util.EnsureFileFolderHierarchy(loggingConfig.FilePath); err != nil {
			slog.Error("Failed to create log folder hierarchy", "error", err)
		} else {
			lumber := &lumberjack.Logger{
				Filename: loggingConfig.FilePath,
				MaxSize:  10,
				Compress: true,
			}
			fileHandler = tint.NewHandler(lumber, &tint.Options{
				Level:      loggingConfig.FileLogLevel,
				TimeFormat: time.RFC3339,
				NoColor:    true,
			})
		}
	}

	var consoleHandler slog.Handler
	if loggingConfig.ConsoleLogLevel != NoLoggingLevel {
		consoleHandler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      loggingConfig.ConsoleLogLevel,
			TimeFormat: time.Kitchen,
		})
	}

	slog.SetDefault(slog.New(&MultiLevelHandler{
		fileHandler:    fileHandler,
		consoleHandler: consoleHandler,
	}))

	redirectStandardLog()
}

// overwrite standard log so it's always redirected to slog, in case some deep dep is using it
func redirectStandardLog() {
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

// MultiLevelHandler fans records out to a file and a console handler, each with
// its own level. Either handler may be nil.
type MultiLevelHandler struct {
	fileHandler    slog.Handler
	consoleHandler slog.Handler
}

func (h *MultiLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.fileHandler != nil && h.fileHandler.Enabled(ctx, level) {
		return true
	}
	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, level) {
		return true
	}
	return false
}

func (h *MultiLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fileHandler != nil && h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}

	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, r.Level) {
		if err := h.consoleHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

func (h *MultiLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &MultiLevelHandler{}

	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithAttrs(attrs)
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithAttrs(attrs)
	}

	return newHandler
}

func (h *MultiLevelHandler) WithGroup(name string) slog.Handler {
	newHandler := &MultiLevelHandler{}

	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithGroup(name)
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithGroup(name)
	}

	return newHandler
}
