package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Config merges values from providers in order; later providers override
// earlier ones. Keys are normalized with NormalizeKey.
type Config struct {
	values     map[string]interface{}
	providers  []ConfigProvider
	validators map[string]ConfigValidator
	mutex      sync.RWMutex
	loaded     bool
}

// NewConfig creates an empty configuration manager
func NewConfig() *Config {
	return &Config{
		values:     make(map[string]interface{}),
		providers:  make([]ConfigProvider, 0),
		validators: make(map[string]ConfigValidator),
	}
}

// AddProvider adds a configuration provider
func (c *Config) AddProvider(provider ConfigProvider) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.providers = append(c.providers, provider)
}

// AddValidator adds a validator for a configuration key
func (c *Config) AddValidator(key string, validator ConfigValidator) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.validators[NormalizeKey(key)] = validator
}

// Load loads configuration from all providers
func (c *Config) Load() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.values = make(map[string]interface{})

	for _, provider := range c.providers {
		values, err := provider.Load()
		if err != nil {
			return fmt.Errorf("failed to load from provider %s: %w", provider.Name(), err)
		}

		for key, value := range values {
			c.values[NormalizeKey(key)] = value
		}
	}

	for key, value := range c.values {
		if validator, exists := c.validators[key]; exists {
			if err := validator(key, value); err != nil {
				return fmt.Errorf("validation failed for key %s: %w", key, err)
			}
		}
	}

	c.loaded = true
	return nil
}

// Get retrieves a configuration value
func (c *Config) Get(key string, defaultValue ...interface{}) interface{} {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if value, exists := c.values[NormalizeKey(key)]; exists && value != nil {
		return value
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return nil
}

// GetString retrieves a string configuration value
func (c *Config) GetString(key string, defaultValue ...string) string {
	value := c.Get(key)
	if str, ok := value.(string); ok {
		return str
	}

	if value != nil {
		return fmt.Sprintf("%v", value)
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return ""
}

// GetInt retrieves an integer configuration value
func (c *Config) GetInt(key string, defaultValue ...int) int {
	value := c.Get(key)

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if intValue, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return intValue
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return 0
}

// GetBool retrieves a boolean configuration value
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	value := c.Get(key)

	if b, ok := value.(bool); ok {
		return b
	}

	if str, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(str)) {
		case "true", "1", "yes", "on", "enable", "enabled":
			return true
		case "false", "0", "no", "off", "disable", "disabled":
			return false
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return false
}

// Set sets a configuration value after validating it
func (c *Config) Set(key string, value interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key = NormalizeKey(key)
	if validator, exists := c.validators[key]; exists {
		if err := validator(key, value); err != nil {
			return fmt.Errorf("validation failed for key %s: %w", key, err)
		}
	}

	c.values[key] = value
	return nil
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, exists := c.values[NormalizeKey(key)]
	return exists
}

// All returns a copy of all configuration values
func (c *Config) All() map[string]interface{} {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make(map[string]interface{}, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Loaded reports whether Load has completed successfully
func (c *Config) Loaded() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.loaded
}

var _ Repository = (*Config)(nil)
