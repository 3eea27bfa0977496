package config

// ConfigProvider interface for different configuration sources
type ConfigProvider interface {
	Load() (map[string]interface{}, error)
	Name() string
}

// ConfigValidator function type for validating configuration values
type ConfigValidator func(key string, value interface{}) error

// Repository interface for configuration storage and retrieval
type Repository interface {
	Get(key string, defaultValue ...interface{}) interface{}
	GetString(key string, defaultValue ...string) string
	GetInt(key string, defaultValue ...int) int
	GetBool(key string, defaultValue ...bool) bool
	Set(key string, value interface{}) error
	Has(key string) bool
	All() map[string]interface{}
}
