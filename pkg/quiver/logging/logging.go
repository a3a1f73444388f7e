// Package logging builds the zap loggers used by plugins and the
// development server. Console output is human oriented; the optional file
// sink is JSON with size-based rotation, since plugin hosts rarely rotate
// logs themselves.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger settings.
type Config struct {
	// Level is a zap level name ("debug", "info", "warn", "error").
	// Defaults to "info".
	Level string

	// File enables a rotated JSON log file at the given path.
	File string

	// MaxSizeMB, MaxBackups, and MaxAgeDays control file rotation.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Console enables the stderr console sink. On by default when no file
	// is configured.
	Console bool
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var cores []zapcore.Core
	if cfg.Console || cfg.File == "" {
		encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 14),
			Compress:   true,
		}
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
