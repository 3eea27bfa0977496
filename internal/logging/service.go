package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Service owns the logrus logger and the files it writes to
type Service struct {
	config Config
	logger *logrus.Logger
	file   *os.File
}

// NewService creates a logging service from configuration. The console
// channel always exists; the JSON file channel is added when enabled.
func NewService(config Config) (*Service, error) {
	if config.DefaultChannel == "" {
		config.DefaultChannel = DefaultConfig().DefaultChannel
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service := &Service{config: config, logger: logger}

	console := config.Console.Writer
	if console == nil {
		console = os.Stderr
	}
	// The logger's own output is discarded, so terminal detection never
	// applies and colors are forced or disabled explicitly.
	logger.AddHook(newWriterHook(console, &logrus.TextFormatter{
		ForceColors:   config.Console.Colorize,
		DisableColors: !config.Console.Colorize,
		FullTimestamp: true,
	}, config.Console.Level))

	lowest := config.Console.Level

	if config.JSON.Enabled {
		if err := os.MkdirAll(filepath.Dir(config.JSON.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(config.JSON.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to setup JSON logging: %w", err)
		}
		service.file = file
		logger.AddHook(newWriterHook(file, &logrus.JSONFormatter{}, config.JSON.Level))

		if config.JSON.Level < lowest {
			lowest = config.JSON.Level
		}
	}

	logger.SetLevel(toLogrus(lowest))
	return service, nil
}

// Logger returns the default channel
func (s *Service) Logger() Logger {
	return newChannel(s.config.DefaultChannel, s.logger)
}

// Channel returns a named channel
func (s *Service) Channel(name string) Logger {
	return newChannel(name, s.logger)
}

// Close closes the JSON log file, if any
func (s *Service) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
