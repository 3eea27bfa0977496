package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvProvider loads configuration from environment variables. With a Prefix
// only matching variables are read. Keys are lower-cased.
type EnvProvider struct {
	Prefix string
}

func (ep *EnvProvider) Name() string {
	return "env"
}

func (ep *EnvProvider) Load() (map[string]interface{}, error) {
	result := make(map[string]interface{})

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[0], ep.Prefix) {
			continue
		}
		result[strings.ToLower(parts[0])] = parts[1]
	}

	return result, nil
}

// DotEnvProvider loads configuration from a .env file
type DotEnvProvider struct {
	filepath string
}

// NewDotEnvProvider fails when the file does not exist so callers can treat
// the .env file as optional
func NewDotEnvProvider(filepath string) (*DotEnvProvider, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, fmt.Errorf("env file %s does not exist", filepath)
	}

	return &DotEnvProvider{filepath: filepath}, nil
}

func (dep *DotEnvProvider) Name() string {
	return fmt.Sprintf("dotenv:%s", dep.filepath)
}

// Load reads the file without touching the process environment
func (dep *DotEnvProvider) Load() (map[string]interface{}, error) {
	values, err := godotenv.Read(dep.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", dep.filepath, err)
	}

	result := make(map[string]interface{}, len(values))
	for key, value := range values {
		result[strings.ToLower(key)] = value
	}
	return result, nil
}

// FileProvider loads a JSON file. Nested objects are flattened into
// underscore-joined keys under Prefix, so {"history": {"driver": "mysql"}}
// with prefix "scaffold" becomes scaffold_history_driver.
type FileProvider struct {
	Path   string
	Prefix string
}

func (fp *FileProvider) Name() string {
	return fmt.Sprintf("file:%s", fp.Path)
}

func (fp *FileProvider) Load() (map[string]interface{}, error) {
	data, err := os.ReadFile(fp.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, err
	}

	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fp.Path, err)
	}

	return FlattenMap(values, fp.Prefix), nil
}

// MemoryProvider allows for in-memory configuration (defaults and tests)
type MemoryProvider struct {
	name   string
	values map[string]interface{}
}

func NewMemoryProvider(name string, values map[string]interface{}) *MemoryProvider {
	return &MemoryProvider{
		name:   name,
		values: values,
	}
}

func (mp *MemoryProvider) Name() string {
	return fmt.Sprintf("memory:%s", mp.name)
}

func (mp *MemoryProvider) Load() (map[string]interface{}, error) {
	// Return a copy to prevent external modification
	result := make(map[string]interface{})
	for k, v := range mp.values {
		result[k] = v
	}
	return result, nil
}
