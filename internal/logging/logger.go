package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig controls the on-disk log rotation policy.
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	log      zerolog.Logger
	rotating *lumberjack.Logger
)

func init() {
	// Usable before Init is called (early bootstrap, tests).
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Init configures logging to stdout and a rotating file under dir.
func Init(level string, dir string, rotation RotationConfig) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	rotating = &lumberjack.Logger{
		Filename:   filepath.Join(dir, "guardian.log"),
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	multi := io.MultiWriter(console, rotating)

	log = zerolog.New(multi).With().Timestamp().Logger().Level(parseLevel(level))
	return nil
}

// Close flushes and closes the rotating file writer.
func Close() {
	if rotating != nil {
		rotating.Close()
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func Debug(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

func Info(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

func Warn(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func Error(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

// Critical logs at fatal severity without terminating the process.
func Critical(format string, args ...interface{}) {
	log.WithLevel(zerolog.FatalLevel).Msgf(format, args...)
}
