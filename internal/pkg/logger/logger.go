package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level          string // debug, info, warn, error
	Format         string // json, pretty, console
	FileEnabled    bool
	FilePath       string // logs directory path
	RotationSize   int    // MB
	RetentionDays  int
	ServiceName    string
	ServiceVersion string
}

// Init initializes the global logger
func Init(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer

	// Console writer
	if cfg.Format == "pretty" || cfg.Format == "console" {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
			NoColor:    false,
		})
	} else {
		writers = append(writers, os.Stderr)
	}

	// File writers (if enabled)
	if cfg.FileEnabled {
		if err := os.MkdirAll(cfg.FilePath, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		// Main app log
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.FilePath, "app.log"),
			MaxSize:    cfg.RotationSize,
			MaxAge:     cfg.RetentionDays,
			MaxBackups: 10,
			Compress:   true,
		})

		// Error log (ERROR and above only)
		writers = append(writers, &errorLevelWriter{
			w: &lumberjack.Logger{
				Filename:   filepath.Join(cfg.FilePath, "error.log"),
				MaxSize:    cfg.RotationSize,
				MaxAge:     cfg.RetentionDays,
				MaxBackups: 10,
				Compress:   true,
			},
		})
	}

	multi := zerolog.MultiLevelWriter(writers...)

	logger := zerolog.New(multi).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Logger()

	log.Logger = logger

	log.Info().
		Str("level", cfg.Level).
		Str("format", cfg.Format).
		Bool("file_enabled", cfg.FileEnabled).
		Msg("Logger initialized")

	return nil
}

// errorLevelWriter drops everything below ERROR.
type errorLevelWriter struct {
	w io.Writer
}

func (e *errorLevelWriter) Write(p []byte) (int, error) {
	// Plain Write calls carry no level; treat them as below ERROR.
	return len(p), nil
}

func (e *errorLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.ErrorLevel {
		return len(p), nil
	}
	return e.w.Write(p)
}

// NewQueryLogger creates a logger for database queries
func NewQueryLogger(logPath string, rotationSize int, retentionDays int) zerolog.Logger {
	if logPath == "" {
		return log.Logger
	}

	if err := os.MkdirAll(logPath, 0755); err != nil {
		log.Warn().Err(err).Msg("Failed to create query log directory, using default logger")
		return log.Logger
	}

	queryLogFile := &lumberjack.Logger{
		Filename:   filepath.Join(logPath, "query.log"),
		MaxSize:    rotationSize,
		MaxAge:     retentionDays,
		MaxBackups: 5,
		Compress:   true,
	}

	return zerolog.New(queryLogFile).With().
		Timestamp().
		Str("type", "query").
		Logger()
}

// NewAccessLogger creates a logger for HTTP access logs
func NewAccessLogger(logPath string, rotationSize int, retentionDays int) zerolog.Logger {
	if logPath == "" {
		return log.Logger
	}

	if err := os.MkdirAll(logPath, 0755); err != nil {
		log.Warn().Err(err).Msg("Failed to create access log directory, using default logger")
		return log.Logger
	}

	accessLogFile := &lumberjack.Logger{
		Filename:   filepath.Join(logPath, "access.log"),
		MaxSize:    rotationSize,
		MaxAge:     retentionDays,
		MaxBackups: 10,
		Compress:   true,
	}

	return zerolog.New(accessLogFile).With().
		Timestamp().
		Str("type", "access").
		Logger()
}

// GetLogger returns the global logger
func GetLogger() *zerolog.Logger {
	return &log.Logger
}
