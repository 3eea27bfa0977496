package main

import (
	"context"
	"fmt"
	"io"

	"github.com/onyx-go/scaffold/internal/config"
	"github.com/onyx-go/scaffold/internal/history"
	"github.com/onyx-go/scaffold/internal/logging"
	"github.com/onyx-go/scaffold/internal/scaffold"
	"github.com/onyx-go/scaffold/internal/storage"
)

// Env lazily builds the services a command needs and closes them afterwards
type Env struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer

	config   *config.Config
	settings *config.Settings
	logs     *logging.Service
	store    *history.SQLStore
}

// Settings loads configuration from the project directory once
func (e *Env) Settings() (*config.Settings, error) {
	if e.config != nil && e.config.Loaded() {
		return e.settings, nil
	}

	repo, settings, err := config.Resolve(e.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	e.config = repo
	e.settings = settings
	return settings, nil
}

// Config returns the loaded configuration repository
func (e *Env) Config() (config.Repository, error) {
	if _, err := e.Settings(); err != nil {
		return nil, err
	}
	return e.config, nil
}

// Logger returns the default channel, logging to stderr and optionally a
// JSON file
func (e *Env) Logger() (logging.Logger, error) {
	if e.logs != nil {
		return e.logs.Logger(), nil
	}

	settings, err := e.Settings()
	if err != nil {
		return nil, err
	}

	logConfig := logging.DefaultConfig()
	logConfig.Console = logging.ConsoleConfig{
		Level:    logging.ParseLogLevel(settings.LogLevel),
		Colorize: settings.LogColor,
		Writer:   e.Stderr,
	}
	if settings.LogFile != "" {
		logConfig.JSON = logging.JSONConfig{Enabled: true, Path: settings.LogFile, Level: logging.DebugLevel}
	}

	logs, err := logging.NewService(logConfig)
	if err != nil {
		return nil, err
	}
	e.logs = logs
	return logs.Logger(), nil
}

// History opens the generation ledger. It returns nil when history is
// disabled in configuration.
func (e *Env) History(ctx context.Context) (history.Store, error) {
	if e.store != nil {
		return e.store, nil
	}

	settings, err := e.Settings()
	if err != nil {
		return nil, err
	}
	if !settings.History {
		return nil, nil
	}

	store, err := history.Open(ctx, settings.HistoryDriver, settings.HistoryDSN)
	if err != nil {
		return nil, err
	}
	e.store = store
	return store, nil
}

// Generator wires storage, stubs, logging and history into a generator
func (e *Env) Generator(ctx context.Context, pretend bool) (*scaffold.Generator, error) {
	settings, err := e.Settings()
	if err != nil {
		return nil, err
	}

	logger, err := e.Logger()
	if err != nil {
		return nil, err
	}

	storageConfig := storage.DefaultConfig()
	storageConfig.RootPath = settings.BasePath
	files, err := storage.NewLocalDriver(storageConfig)
	if err != nil {
		return nil, err
	}

	genConfig := scaffold.Config{
		Namespace: settings.Namespace,
		AppPath:   settings.AppPath,
		StubPath:  settings.StubPath,
		Pretend:   pretend,
		Logger:    e.logs.Channel("generator"),
	}

	if !pretend {
		store, err := e.History(ctx)
		if err != nil {
			logger.WarnContext(ctx, "history disabled for this run", map[string]interface{}{"error": err.Error()})
		} else if store != nil {
			genConfig.History = store
		}
	}

	return scaffold.NewGenerator(files, genConfig), nil
}

// Close releases the ledger connection and the log file
func (e *Env) Close() {
	if e.store != nil {
		e.store.Close()
		e.store = nil
	}
	if e.logs != nil {
		e.logs.Close()
		e.logs = nil
	}
}
