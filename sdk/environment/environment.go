// Package environment provides support for env vars and .env loading.
package environment

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when present. Missing files are not an error at
// startup; deployed environments set real variables.
func LoadEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// GetEnvOrDefault retrieves an environment variable value, returning a
// fallback if the variable is not set.
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvKeyPrefix constructs a prefixed environment variable key. An empty
// prefix returns the key unchanged.
func GetEnvKeyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", prefix, key)
}

// GetPrefixEnvOrDefault retrieves a prefixed environment variable value with
// a fallback.
func GetPrefixEnvOrDefault(prefix, key, fallback string) string {
	return GetEnvOrDefault(GetEnvKeyPrefix(prefix, key), fallback)
}
