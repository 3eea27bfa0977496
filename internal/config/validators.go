package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// RequiredValidator ensures a configuration value is not nil or empty
func RequiredValidator(key string, value interface{}) error {
	if value == nil {
		return fmt.Errorf("configuration key %s is required", key)
	}

	if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
		return fmt.Errorf("configuration key %s cannot be empty", key)
	}

	return nil
}

// OneOfValidator validates that a value is one of the allowed values.
// Strings compare case-insensitively.
func OneOfValidator(validValues ...interface{}) ConfigValidator {
	return func(key string, value interface{}) error {
		for _, valid := range validValues {
			if reflect.DeepEqual(value, valid) {
				return nil
			}
			s, ok1 := value.(string)
			v, ok2 := valid.(string)
			if ok1 && ok2 && strings.EqualFold(strings.TrimSpace(s), v) {
				return nil
			}
		}
		return fmt.Errorf("configuration key %s must be one of: %v", key, validValues)
	}
}

// BoolValidator validates that a value can be converted to a boolean
func BoolValidator(key string, value interface{}) error {
	switch v := value.(type) {
	case bool:
		return nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "false", "1", "0", "yes", "no", "on", "off", "enable", "disable", "enabled", "disabled":
			return nil
		default:
			return fmt.Errorf("configuration key %s must be a valid boolean value", key)
		}
	default:
		return fmt.Errorf("configuration key %s must be a boolean", key)
	}
}

// NonNegativeIntValidator validates that a value is a whole number of zero or more
func NonNegativeIntValidator(key string, value interface{}) error {
	var n int
	switch v := value.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if v != float64(int(v)) {
			return fmt.Errorf("configuration key %s must be a whole number", key)
		}
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("configuration key %s must be a whole number", key)
		}
		n = parsed
	default:
		return fmt.Errorf("configuration key %s must be a whole number", key)
	}

	if n < 0 {
		return fmt.Errorf("configuration key %s cannot be negative", key)
	}
	return nil
}

// ChainValidator allows chaining multiple validators
func ChainValidator(validators ...ConfigValidator) ConfigValidator {
	return func(key string, value interface{}) error {
		for _, validator := range validators {
			if err := validator(key, value); err != nil {
				return err
			}
		}
		return nil
	}
}
