package utils

import (
	"os"
	"strconv"
)

// Env lookup helpers. Unset or unparseable values fall back to the
// supplied default rather than failing startup.

func GetEnvAsString(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultVal
}

func GetEnvAsInt(key string, defaultVal int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultVal
	}
	return parsed
}

func GetEnvAsUint64(key string, defaultVal uint64) uint64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultVal
	}
	return parsed
}
