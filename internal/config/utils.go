package config

import (
	"os"
	"strings"
)

// FlattenMap flattens a nested map, joining keys with underscores and
// lower-casing them
func FlattenMap(m map[string]interface{}, prefix string) map[string]interface{} {
	result := make(map[string]interface{})

	for k, v := range m {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "_" + key
		}

		if nested, ok := v.(map[string]interface{}); ok {
			for nestedKey, nestedValue := range FlattenMap(nested, key) {
				result[nestedKey] = nestedValue
			}
		} else {
			result[key] = v
		}
	}

	return result
}

// NormalizeKey lower-cases a key and turns dots into underscores, so
// "SCAFFOLD_HISTORY_DRIVER" and "scaffold.history.driver" name the same value
func NormalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, ".", "_"))
}

// GetEnv is a utility function to get environment variables
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
