package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel string mapping
var logLevelNames = map[LogLevel]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warning",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

var logrusLevels = map[LogLevel]logrus.Level{
	DebugLevel: logrus.DebugLevel,
	InfoLevel:  logrus.InfoLevel,
	WarnLevel:  logrus.WarnLevel,
	ErrorLevel: logrus.ErrorLevel,
	FatalLevel: logrus.FatalLevel,
}

// GetLevelName returns the string name for a log level
func GetLevelName(level LogLevel) string {
	if name, exists := logLevelNames[level]; exists {
		return name
	}
	return "unknown"
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

func toLogrus(level LogLevel) logrus.Level {
	if l, ok := logrusLevels[level]; ok {
		return l
	}
	return logrus.InfoLevel
}

// DefaultConfig returns a default logging configuration
func DefaultConfig() Config {
	return Config{
		DefaultChannel: "scaffold",
		Console: ConsoleConfig{
			Level:    InfoLevel,
			Colorize: true,
		},
		JSON: JSONConfig{
			Enabled: false,
			Path:    "storage/logs/scaffold.log",
			Level:   DebugLevel,
		},
	}
}
