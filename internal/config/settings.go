package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Configuration keys. Each is read from the environment as its upper-case
// form (SCAFFOLD_HISTORY_DRIVER) or from scaffold.json as a nested object.
const (
	KeyBasePath      = "scaffold_base_path"
	KeyAppPath       = "scaffold_app_path"
	KeyNamespace     = "scaffold_namespace"
	KeyStubPath      = "scaffold_stub_path"
	KeyLogLevel      = "scaffold_log_level"
	KeyLogFile       = "scaffold_log_file"
	KeyLogColor      = "scaffold_log_color"
	KeyHistory       = "scaffold_history"
	KeyHistoryDriver = "scaffold_history_driver"
	KeyHistoryDSN    = "scaffold_history_dsn"
	KeyHistoryLimit  = "scaffold_history_limit"
	KeyEnv           = "scaffold_env"
)

// History drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Settings is the typed configuration of the scaffold tool
type Settings struct {
	BasePath      string
	AppPath       string
	Namespace     string
	StubPath      string
	LogLevel      string
	LogFile       string
	LogColor      bool
	History       bool
	HistoryDriver string
	HistoryDSN    string
	HistoryLimit  int
	Env           string
}

// NewScaffoldConfig wires the providers for a project directory: defaults,
// then dir/scaffold.json, then dir/.env, then SCAFFOLD_* environment variables.
func NewScaffoldConfig(dir string) *Config {
	c := NewConfig()

	c.AddProvider(NewMemoryProvider("defaults", map[string]interface{}{
		KeyBasePath:      dir,
		KeyAppPath:       "app",
		KeyNamespace:     "App",
		KeyLogLevel:      "info",
		KeyHistory:       true,
		KeyHistoryDriver: DriverSQLite,
		KeyHistoryLimit:  20,
		KeyEnv:           GetEnv("APP_ENV", "local"),
	}))
	c.AddProvider(&FileProvider{Path: filepath.Join(dir, "scaffold.json"), Prefix: "scaffold"})
	if dotenv, err := NewDotEnvProvider(filepath.Join(dir, ".env")); err == nil {
		c.AddProvider(dotenv)
	}
	c.AddProvider(&EnvProvider{Prefix: "SCAFFOLD_"})

	c.AddValidator(KeyBasePath, RequiredValidator)
	c.AddValidator(KeyNamespace, RequiredValidator)
	c.AddValidator(KeyHistory, BoolValidator)
	c.AddValidator(KeyLogColor, BoolValidator)
	c.AddValidator(KeyHistoryDriver, ChainValidator(RequiredValidator, OneOfValidator(DriverSQLite, DriverPostgres, DriverMySQL)))
	c.AddValidator(KeyHistoryLimit, ChainValidator(RequiredValidator, NonNegativeIntValidator))
	c.AddValidator(KeyLogLevel, OneOfValidator("debug", "info", "warn", "warning", "error", "fatal"))

	return c
}

// Load reads the configuration for dir and resolves it into Settings
func Load(dir string) (*Settings, error) {
	_, settings, err := Resolve(dir)
	return settings, err
}

// Resolve is Load that also returns the loaded repository
func Resolve(dir string) (*Config, *Settings, error) {
	c := NewScaffoldConfig(dir)
	if err := c.Load(); err != nil {
		return nil, nil, err
	}
	settings, err := SettingsFrom(c)
	if err != nil {
		return nil, nil, err
	}
	return c, settings, nil
}

// SettingsFrom resolves typed settings from a loaded repository. Relative
// log and sqlite paths are anchored at the base path, and the resolved paths
// are written back so the repository shows the values actually used.
func SettingsFrom(c Repository) (*Settings, error) {
	s := &Settings{
		BasePath:      c.GetString(KeyBasePath, "."),
		AppPath:       c.GetString(KeyAppPath, "app"),
		Namespace:     c.GetString(KeyNamespace, "App"),
		StubPath:      c.GetString(KeyStubPath),
		LogLevel:      c.GetString(KeyLogLevel, "info"),
		LogFile:       c.GetString(KeyLogFile),
		LogColor:      c.GetBool(KeyLogColor),
		History:       c.GetBool(KeyHistory, true),
		HistoryDriver: strings.ToLower(strings.TrimSpace(c.GetString(KeyHistoryDriver, DriverSQLite))),
		HistoryDSN:    c.GetString(KeyHistoryDSN),
		HistoryLimit:  c.GetInt(KeyHistoryLimit, 20),
		Env:           c.GetString(KeyEnv, "local"),
	}

	if s.LogFile != "" && !filepath.IsAbs(s.LogFile) {
		s.LogFile = filepath.Join(s.BasePath, s.LogFile)
		if err := c.Set(KeyLogFile, s.LogFile); err != nil {
			return nil, err
		}
	}

	if s.History && s.HistoryDSN == "" {
		if s.HistoryDriver != DriverSQLite {
			return nil, fmt.Errorf("configuration key %s is required for driver %s", KeyHistoryDSN, s.HistoryDriver)
		}
		s.HistoryDSN = filepath.Join(s.BasePath, ".scaffold", "history.db")
		if err := c.Set(KeyHistoryDSN, s.HistoryDSN); err != nil {
			return nil, err
		}
	}

	return s, nil
}
