package config

import (
	"reflect"
	"strings"
)

// GetBoolValue retrieves a boolean value from a nested struct based on a dot-separated path.
// It returns the provided defaultValue if the specified field is not explicitly set or is nil.
func GetBoolValue(config interface{}, fieldPath string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	val := reflect.ValueOf(config)
	for _, field := range strings.Split(fieldPath, ".") {
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return defaultValue
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct {
			return defaultValue
		}

		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Bool()
	} else if val.Kind() == reflect.Bool {
		return val.Bool()
	}

	return defaultValue
}

// SetThen returns value when it is set, otherwise defaultValue.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(&value).Elem().IsZero() {
		return defaultValue
	}
	return value
}
