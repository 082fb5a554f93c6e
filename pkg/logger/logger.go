package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level represents logging level
type Level = zerolog.Level

// Logger levels
const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config holds logger configuration
type Config struct {
	Level      Level
	TimeFormat string
	Output     io.Writer
	Pretty     bool
}

// Logger wraps zerolog.Logger
type Logger struct {
	ZL zerolog.Logger
}

// NewLogger creates a new logger instance
func NewLogger(cfg *Config) *Logger {
	if cfg == nil {
		cfg = &Config{
			Level:      InfoLevel,
			TimeFormat: time.RFC3339,
			Output:     os.Stdout,
		}
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	out := cfg.Output
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: cfg.TimeFormat,
		}
	}

	zl := zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()

	return &Logger{ZL: zl}
}

// WithFields returns a child logger carrying the given fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{ZL: l.ZL.With().Fields(fields).Logger()}
}

func (l *Logger) Info(msg string) {
	l.ZL.Info().Msg(msg)
}

func (l *Logger) Warn(msg string) {
	l.ZL.Warn().Msg(msg)
}

func (l *Logger) Error(err error, msg string) {
	l.ZL.Error().Err(err).Msg(msg)
}

func (l *Logger) Fatal(err error, msg string) {
	l.ZL.Fatal().Err(err).Msg(msg)
}

func (l *Logger) Debug(msg string) {
	l.ZL.Debug().Msg(msg)
}
