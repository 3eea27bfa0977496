package logging

import (
	"context"
	"io"
)

// LogLevel represents the severity level of a log entry
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// Logger interface defines the logging contract with context support
type Logger interface {
	// Context-aware logging methods
	DebugContext(ctx context.Context, message string, args ...map[string]interface{})
	InfoContext(ctx context.Context, message string, args ...map[string]interface{})
	WarnContext(ctx context.Context, message string, args ...map[string]interface{})
	ErrorContext(ctx context.Context, message string, args ...map[string]interface{})
	FatalContext(ctx context.Context, message string, args ...map[string]interface{})
	LogContext(ctx context.Context, level LogLevel, message string, args ...map[string]interface{})

	Debug(message string, context ...map[string]interface{})
	Info(message string, context ...map[string]interface{})
	Warn(message string, context ...map[string]interface{})
	Error(message string, context ...map[string]interface{})
	Fatal(message string, context ...map[string]interface{})
	Log(level LogLevel, message string, context ...map[string]interface{})

	// Logger modifiers
	WithContext(context map[string]interface{}) Logger
	WithChannel(channel string) Logger
}

// Config represents logging configuration
type Config struct {
	DefaultChannel string        `json:"default_channel"`
	Console        ConsoleConfig `json:"console"`
	JSON           JSONConfig    `json:"json"`
}

// ConsoleConfig represents console logging configuration. Writer defaults to
// stderr so generated output on stdout stays clean.
type ConsoleConfig struct {
	Level    LogLevel  `json:"level"`
	Colorize bool      `json:"colorize"`
	Writer   io.Writer `json:"-"`
}

// JSONConfig represents JSON file logging configuration
type JSONConfig struct {
	Enabled bool     `json:"enabled"`
	Path    string   `json:"path"`
	Level   LogLevel `json:"level"`
}
